package memory

import (
	"context"
	"sync"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/model"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/port"
)

// ApplicationRepository stores loan applications in a process-wide map.
type ApplicationRepository struct {
	mu   sync.RWMutex
	apps map[string]*model.LoanApplication
}

func NewApplicationRepository() *ApplicationRepository {
	return &ApplicationRepository{apps: make(map[string]*model.LoanApplication)}
}

func (r *ApplicationRepository) Save(_ context.Context, app *model.LoanApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apps[app.ID()] = app
	return nil
}

func (r *ApplicationRepository) FindByID(_ context.Context, id string) (*model.LoanApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	return app, nil
}

func (r *ApplicationRepository) FindAll(_ context.Context) ([]*model.LoanApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.LoanApplication, 0, len(r.apps))
	for _, app := range r.apps {
		out = append(out, app)
	}
	return out, nil
}
