// Package port declares the outbound interfaces of the loan workflow domain.
// Infrastructure adapters implement them; use cases depend only on these.
package port

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/model"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/pkg/events"
)

// ErrNotFound is returned by repositories when no entity exists for the
// given key.
var ErrNotFound = errors.New("not found")

// SessionRepository stores chat workflow sessions keyed by session ID.
type SessionRepository interface {
	Save(ctx context.Context, session *model.Session) error
	FindByID(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
	// Lock serializes processing for one session and returns the unlock func.
	Lock(id string) func()
}

// ApplicationRepository stores the loan application records that mirror
// session progress.
type ApplicationRepository interface {
	Save(ctx context.Context, app *model.LoanApplication) error
	FindByID(ctx context.Context, id string) (*model.LoanApplication, error)
	FindAll(ctx context.Context) ([]*model.LoanApplication, error)
}

// User is a registered demo borrower account.
type User struct {
	ID        string
	Email     string
	FullName  string
	CreatedAt time.Time
}

// UserRepository stores demo user accounts for email login.
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// EventPublisher delivers domain events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event events.DomainEvent) error
}

// PANResult is the outcome of a PAN lookup against the verification sandbox.
type PANResult struct {
	Valid          bool
	RegisteredName string
	Category       string
	Source         string
}

// PANVerifier checks a PAN against an external verification provider.
type PANVerifier interface {
	VerifyPAN(ctx context.Context, pan, name string) (PANResult, error)
}

// ExplainRequest carries the decision context handed to the explainer.
type ExplainRequest struct {
	Decision     string
	LoanAmount   int64
	Salary       int64
	EMI          decimal.Decimal
	RiskScore    int
	RiskLevel    string
	RiskFactors  []string
	CustomerName string
}

// DecisionExplainer produces a customer-facing narrative for an
// underwriting outcome.
type DecisionExplainer interface {
	Explain(ctx context.Context, req ExplainRequest) (string, error)
}

// CreditBureauClient fetches an applicant's bureau score.
type CreditBureauClient interface {
	FetchScore(ctx context.Context, pan string) (int, error)
}

// OfferMartClient fetches the pre-approved offer limit for an applicant.
type OfferMartClient interface {
	PreApprovedLimit(ctx context.Context, customerID string) (int64, error)
}

// SanctionLetter is a rendered sanction letter document.
type SanctionLetter struct {
	FileName    string
	ContentType string
	Data        []byte
}

// LetterRenderer renders the sanction letter for an approved loan.
type LetterRenderer interface {
	RenderSanctionLetter(ctx context.Context, session *model.Session) (SanctionLetter, error)
}
