package flows

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/sandevgo/aiden/internal/core"
	"github.com/sandevgo/aiden/internal/storage/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_GeneratesIDAndDefaults(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memstore.New())

	created, err := svc.Create(ctx, core.OnboardingFlow{
		Name:           "First login",
		TargetUserType: "user",
	})
	require.NoError(t, err)

	_, err = uuid.Parse(created.ID)
	assert.NoError(t, err, "generated id should be a uuid")
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, json.RawMessage("[]"), created.Steps)
}

func TestCreate_KeepsClientValues(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memstore.New())

	created, err := svc.Create(ctx, core.OnboardingFlow{
		ID:             "flow-42",
		Name:           "Power user tour",
		Steps:          json.RawMessage(`[{"title":"Shortcuts"}]`),
		TargetUserType: "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "flow-42", created.ID)

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Power user tour", listed[0].Name)
}
