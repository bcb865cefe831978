package hunter

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rolodexd/rolodex/shared"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestClient(config shared.HunterConfig) *Client {
	return NewClient(config, zap.NewNop().Sugar())
}

func TestVerifyWithoutAPIKey(t *testing.T) {
	client := newTestClient(shared.HunterConfig{})

	// No credential configured -> deterministic mock score for any input
	for _, email := range []string{"stark@avengers.com", "web@avengers.com", "not-an-email"} {
		result := client.Verify(context.Background(), email)

		assert.Equal(t, 50, result.Score, "mock score should always be 50")
		assert.Equal(t, MOCKED_KEY, result.Status)
	}
}

func TestVerify(t *testing.T) {
	testCases := []struct {
		desc     string
		handler  http.HandlerFunc
		expected Result
	}{
		{
			desc: "extracts the score from a successful lookup",
			handler: func(rw http.ResponseWriter, r *http.Request) {
				fmt.Fprint(rw, `{"data":{"score":97,"result":"deliverable"}}`)
			},
			expected: Result{Score: 97, Status: VERIFIED},
		},
		{
			desc: "defaults to 50 when the response carries no score",
			handler: func(rw http.ResponseWriter, r *http.Request) {
				fmt.Fprint(rw, `{"data":{"result":"risky"}}`)
			},
			expected: Result{Score: 50, Status: VERIFIED},
		},
		{
			desc: "falls back to 40 on an http error response",
			handler: func(rw http.ResponseWriter, r *http.Request) {
				rw.WriteHeader(http.StatusTooManyRequests)
			},
			expected: Result{Score: 40, Status: API_ERROR},
		},
		{
			desc: "falls back to 48 on an undecodable response",
			handler: func(rw http.ResponseWriter, r *http.Request) {
				fmt.Fprint(rw, "<html>definitely not json</html>")
			},
			expected: Result{Score: 48, Status: UNEXPECTED_ERROR},
		},
	}

	for _, tcase := range testCases {
		t.Run(tcase.desc, func(t *testing.T) {
			testServer := httptest.NewServer(tcase.handler)
			defer testServer.Close()

			client := newTestClient(shared.HunterConfig{APIKey: "test-key", BaseURL: testServer.URL})
			result := client.Verify(context.Background(), "stark@avengers.com")

			assert.Equal(t, tcase.expected, result)
		})
	}
}

func TestVerifySendsEmailAndCredential(t *testing.T) {
	var requestedPath string
	var requestedQuery map[string][]string

	testServer := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		requestedQuery = r.URL.Query()
		fmt.Fprint(rw, `{"data":{"score":80}}`)
	}))
	defer testServer.Close()

	client := newTestClient(shared.HunterConfig{APIKey: "test-key", BaseURL: testServer.URL})
	client.Verify(context.Background(), "stark@avengers.com")

	assert.Equal(t, "/v2/email-verifier", requestedPath)
	assert.Equal(t, []string{"stark@avengers.com"}, requestedQuery["email"])
	assert.Equal(t, []string{"test-key"}, requestedQuery["api_key"])
}

func TestVerifyNetworkError(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {}))

	// Close right away so the lookup has nothing to connect to
	testServer.Close()

	client := newTestClient(shared.HunterConfig{APIKey: "test-key", BaseURL: testServer.URL})
	result := client.Verify(context.Background(), "stark@avengers.com")

	assert.Equal(t, Result{Score: 45, Status: NETWORK_ERROR}, result)
}
