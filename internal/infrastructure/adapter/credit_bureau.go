// Package adapter holds demo stand-ins for external bureau and offer
// systems. Both return fixed values so the tiered underwriting policy is
// exercisable without live integrations.
package adapter

import "context"

const stubCreditScore = 750

// StubCreditBureau reports a fixed bureau score for every applicant.
type StubCreditBureau struct{}

func NewStubCreditBureau() *StubCreditBureau {
	return &StubCreditBureau{}
}

func (s *StubCreditBureau) FetchScore(ctx context.Context, pan string) (int, error) {
	return stubCreditScore, nil
}
