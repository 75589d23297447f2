package memstore

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sandevgo/aiden/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := New()

	require.NoError(t, store.Append(ctx, "sess-1", core.Message{Role: core.RoleUser, Content: "hi"}))
	require.NoError(t, store.Append(ctx, "sess-1", core.Message{Role: core.RoleAssistant, Content: "hello"}))

	history, err := store.Read(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, core.RoleUser, history[0].Role)
	assert.Equal(t, "hi", history[0].Content)
	assert.Equal(t, core.RoleAssistant, history[1].Role)
	assert.Equal(t, "hello", history[1].Content)
}

func TestGetOrCreate(t *testing.T) {
	ctx := context.Background()
	store := New()

	sess, err := store.GetOrCreate(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", sess.ID)
	assert.Empty(t, sess.Messages)
	assert.False(t, sess.CreatedAt.IsZero())

	require.NoError(t, store.Append(ctx, "sess-1", core.Message{Role: core.RoleUser, Content: "hi"}))

	again, err := store.GetOrCreate(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, sess.CreatedAt, again.CreatedAt)
	assert.Len(t, again.Messages, 1)
}

func TestConcurrentAppends_NoLostUpdates(t *testing.T) {
	ctx := context.Background()
	store := New()

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			msg := core.Message{Role: core.RoleUser, Content: fmt.Sprintf("msg-%d", i)}
			if err := store.Append(ctx, "sess-1", msg); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	history, err := store.Read(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, history, n)

	seen := make(map[string]bool, n)
	for _, msg := range history {
		seen[msg.Content] = true
	}
	for i := 0; i < n; i++ {
		assert.True(t, seen[fmt.Sprintf("msg-%d", i)], "missing msg-%d", i)
	}
}

func TestConcurrentGetOrCreate_SingleSession(t *testing.T) {
	ctx := context.Background()
	store := New()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.GetOrCreate(ctx, "sess-1"); err != nil {
				t.Error(err)
			}
			if err := store.Append(ctx, "sess-1", core.Message{Role: core.RoleUser, Content: "x"}); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	history, err := store.Read(ctx, "sess-1")
	require.NoError(t, err)
	assert.Len(t, history, n)
}

func TestDelete_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := New()

	require.NoError(t, store.Append(ctx, "sess-1", core.Message{Role: core.RoleUser, Content: "hi"}))
	require.NoError(t, store.Delete(ctx, "sess-1"))
	require.NoError(t, store.Delete(ctx, "sess-1"))
	require.NoError(t, store.Delete(ctx, "never-existed"))

	history, err := store.Read(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestDeleteIdle(t *testing.T) {
	ctx := context.Background()
	store := New()

	require.NoError(t, store.Append(ctx, "old", core.Message{Role: core.RoleUser, Content: "hi"}))
	time.Sleep(10 * time.Millisecond)
	cutoff := time.Now().UTC()
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, store.Append(ctx, "fresh", core.Message{Role: core.RoleUser, Content: "hi"}))

	count, err := store.DeleteIdle(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	old, err := store.Read(ctx, "old")
	require.NoError(t, err)
	assert.Empty(t, old)

	fresh, err := store.Read(ctx, "fresh")
	require.NoError(t, err)
	assert.Len(t, fresh, 1)
}

func TestFlows(t *testing.T) {
	ctx := context.Background()
	store := New()

	flow := core.OnboardingFlow{
		ID:             "flow-1",
		Name:           "Admin setup",
		Steps:          []byte(`[{"title":"Invite your team"}]`),
		TargetUserType: "admin",
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, store.SaveFlow(ctx, flow))

	flows, err := store.ListFlows(ctx)
	require.NoError(t, err)
	require.Len(t, flows, 1)
	assert.Equal(t, "Admin setup", flows[0].Name)
}
