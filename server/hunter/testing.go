package hunter

import "context"

// ClientStub stands in for the hunter client in tests & records every
// email it was asked to verify.
type ClientStub struct {
	Result         Result
	VerifiedEmails []string
}

func (stub *ClientStub) Verify(ctx context.Context, email string) Result {
	stub.VerifiedEmails = append(stub.VerifiedEmails, email)
	return stub.Result
}
