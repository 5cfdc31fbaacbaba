package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/application/agent"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/model"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/port"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/service"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/pkg/events"
)

var fixedNow = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*model.Session
	saveErr  error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*model.Session)}
}

func (r *fakeSessionRepo) Save(_ context.Context, s *model.Session) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID()] = s
	return nil
}

func (r *fakeSessionRepo) FindByID(_ context.Context, id string) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	return s, nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return port.ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) Lock(string) func() { return func() {} }

type fakeApplicationRepo struct {
	mu   sync.Mutex
	apps map[string]*model.LoanApplication
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[string]*model.LoanApplication)}
}

func (r *fakeApplicationRepo) Save(_ context.Context, a *model.LoanApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apps[a.ID()] = a
	return nil
}

func (r *fakeApplicationRepo) FindByID(_ context.Context, id string) (*model.LoanApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	return a, nil
}

func (r *fakeApplicationRepo) FindAll(_ context.Context) ([]*model.LoanApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.LoanApplication, 0, len(r.apps))
	for _, a := range r.apps {
		out = append(out, a)
	}
	return out, nil
}

type capturingPublisher struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func (p *capturingPublisher) Publish(_ context.Context, e events.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *capturingPublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

type stubLetterRenderer struct {
	err error
}

func (s *stubLetterRenderer) RenderSanctionLetter(_ context.Context, session *model.Session) (port.SanctionLetter, error) {
	if s.err != nil {
		return port.SanctionLetter{}, s.err
	}
	return port.SanctionLetter{
		FileName:    "sanction_" + session.ID() + ".pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-"),
	}, nil
}

type panicAgent struct{}

func (panicAgent) Handle(context.Context, *model.Session, string) (string, error) {
	panic("handler blew up")
}

type supervisorFixture struct {
	uc        *ProcessMessage
	sessions  *fakeSessionRepo
	apps      *fakeApplicationRepo
	publisher *capturingPublisher
}

func newSupervisorFixture() *supervisorFixture {
	logger := slog.Default()
	gate := service.NewGate(nil, logger)

	f := &supervisorFixture{
		sessions:  newFakeSessionRepo(),
		apps:      newFakeApplicationRepo(),
		publisher: &capturingPublisher{},
	}
	f.uc = NewProcessMessage(
		f.sessions,
		f.apps,
		f.publisher,
		Agents{
			Sales:        agent.NewSales(),
			Verification: agent.NewVerification(gate, logger, fixedNow),
			Underwriting: agent.NewUnderwriting(agent.Defaults{}, logger, fixedNow),
			Sanction:     agent.NewSanction(&stubLetterRenderer{}, nil, logger),
		},
		logger,
		fixedNow,
	)
	return f
}
