package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/sandevgo/aiden/internal/core"
)

// listFlowsLimit caps how many flows a single listing returns.
const listFlowsLimit = 100

type FlowsRepo struct {
	db *sql.DB
}

func NewFlowsRepo(db *sql.DB) *FlowsRepo {
	return &FlowsRepo{db: db}
}

func (r *FlowsRepo) SaveFlow(ctx context.Context, flow core.OnboardingFlow) error {
	steps := string(flow.Steps)
	if steps == "" {
		steps = "[]"
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO onboarding_flows (id, name, steps, target_user_type, created_at) VALUES (?, ?, ?, ?, ?)`,
		flow.ID, flow.Name, steps, flow.TargetUserType, flow.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: insert flow: %v", core.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *FlowsRepo) ListFlows(ctx context.Context) ([]core.OnboardingFlow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, steps, target_user_type, created_at FROM onboarding_flows ORDER BY created_at LIMIT ?`,
		listFlowsLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: query flows: %v", core.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var flows []core.OnboardingFlow
	for rows.Next() {
		var flow core.OnboardingFlow
		var steps string
		if err := rows.Scan(&flow.ID, &flow.Name, &steps, &flow.TargetUserType, &flow.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan flow: %v", core.ErrStoreUnavailable, err)
		}
		flow.Steps = json.RawMessage(steps)
		flows = append(flows, flow)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate flows: %v", core.ErrStoreUnavailable, err)
	}
	return flows, nil
}
