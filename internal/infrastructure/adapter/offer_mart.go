package adapter

import "context"

const stubPreApprovedLimit = 100000

// StubOfferMart reports a fixed pre-approved limit for every customer.
type StubOfferMart struct{}

func NewStubOfferMart() *StubOfferMart {
	return &StubOfferMart{}
}

func (s *StubOfferMart) PreApprovedLimit(ctx context.Context, customerID string) (int64, error) {
	return stubPreApprovedLimit, nil
}
