package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/application/dto"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/port"
)

// Applications exposes the read-only loan application views used for
// audit and traceability.
type Applications struct {
	applications port.ApplicationRepository
}

func NewApplications(applications port.ApplicationRepository) *Applications {
	return &Applications{applications: applications}
}

// List returns all applications, newest first.
func (uc *Applications) List(ctx context.Context) (dto.ApplicationListResponse, error) {
	apps, err := uc.applications.FindAll(ctx)
	if err != nil {
		return dto.ApplicationListResponse{}, fmt.Errorf("list applications: %w", err)
	}

	views := make([]dto.ApplicationView, 0, len(apps))
	for _, a := range apps {
		views = append(views, dto.NewApplicationView(a))
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})

	return dto.ApplicationListResponse{Total: len(views), Applications: views}, nil
}

// Get returns one application by its ID.
func (uc *Applications) Get(ctx context.Context, applicationID string) (dto.ApplicationView, error) {
	applicationID = strings.TrimSpace(applicationID)
	if applicationID == "" {
		return dto.ApplicationView{}, fmt.Errorf("application id is required")
	}

	app, err := uc.applications.FindByID(ctx, applicationID)
	if err != nil {
		return dto.ApplicationView{}, fmt.Errorf("load application: %w", err)
	}
	return dto.NewApplicationView(app), nil
}
