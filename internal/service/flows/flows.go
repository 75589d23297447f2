// Package flows manages authored onboarding flows: named step sequences
// targeting a user type, served to clients next to the chat API.
package flows

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/aiden/internal/core"
)

type Service struct {
	repo core.FlowsRepository
}

func NewService(repo core.FlowsRepository) *Service {
	return &Service{repo: repo}
}

// Create persists a flow, generating an id and creation time when the
// client supplies none.
func (s *Service) Create(ctx context.Context, flow core.OnboardingFlow) (core.OnboardingFlow, error) {
	if flow.ID == "" {
		flow.ID = uuid.NewString()
	}
	if flow.CreatedAt.IsZero() {
		flow.CreatedAt = time.Now().UTC()
	}
	if len(flow.Steps) == 0 {
		flow.Steps = json.RawMessage("[]")
	}

	if err := s.repo.SaveFlow(ctx, flow); err != nil {
		return core.OnboardingFlow{}, fmt.Errorf("save flow: %w", err)
	}
	return flow, nil
}

func (s *Service) List(ctx context.Context) ([]core.OnboardingFlow, error) {
	flows, err := s.repo.ListFlows(ctx)
	if err != nil {
		return nil, fmt.Errorf("list flows: %w", err)
	}
	return flows, nil
}
