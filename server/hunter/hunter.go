// Package hunter scores email addresses via the hunter.io email-verifier
// API. Lookups never fail outward: any degraded call falls back to a
// deterministic lower-confidence score, so writes are never blocked on the
// external service.
package hunter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rolodexd/rolodex/shared"
	"go.uber.org/zap"
)

type Status string

const (
	MOCKED_KEY       Status = "mocked_key"
	VERIFIED         Status = "verified"
	API_ERROR        Status = "api_error"
	NETWORK_ERROR    Status = "network_error"
	UNEXPECTED_ERROR Status = "unexpected_error"
)

const (
	defaultBaseURL = "https://api.hunter.io"
	requestTimeout = 5 * time.Second

	mockedScore     = 50
	defaultScore    = 50
	apiErrorScore   = 40
	networkErrScore = 45
	unexpectedScore = 48
)

type Result struct {
	Score  int    `json:"score"`
	Status Status `json:"status"`
}

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logg       *zap.SugaredLogger
}

func NewClient(config shared.HunterConfig, logg *zap.SugaredLogger) *Client {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		apiKey:     config.APIKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		logg:       logg,
	}
}

type verifierResponse struct {
	Data struct {
		Score *int `json:"score"`
	} `json:"data"`
}

// Verify returns a confidence score for email. Exactly one attempt is made
// per call - no retries, no cancellation beyond the client timeout.
func (c *Client) Verify(ctx context.Context, email string) Result {
	if c.apiKey == "" {
		return Result{Score: mockedScore, Status: MOCKED_KEY}
	}

	query := url.Values{}
	query.Set("email", email)
	query.Set("api_key", c.apiKey)
	endpoint := fmt.Sprintf("%v/v2/email-verifier?%v", c.baseURL, query.Encode())

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logg.Errorf("hunter: unable to build verifier request: %v", err)
		return Result{Score: unexpectedScore, Status: UNEXPECTED_ERROR}
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		c.logg.Warnf("hunter: verifier request failed for %v: %v", email, err)
		return Result{Score: networkErrScore, Status: NETWORK_ERROR}
	}
	defer response.Body.Close()

	if response.StatusCode >= http.StatusBadRequest {
		c.logg.Warnf("hunter: verifier returned %v for %v", response.StatusCode, email)
		return Result{Score: apiErrorScore, Status: API_ERROR}
	}

	payload := verifierResponse{}
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		c.logg.Warnf("hunter: unable to decode verifier response for %v: %v", email, err)
		return Result{Score: unexpectedScore, Status: UNEXPECTED_ERROR}
	}

	if payload.Data.Score == nil {
		return Result{Score: defaultScore, Status: VERIFIED}
	}

	return Result{Score: *payload.Data.Score, Status: VERIFIED}
}
