package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sandevgo/aiden/internal/core"
	"github.com/sandevgo/aiden/pkg/log"
	"github.com/sandevgo/aiden/pkg/retry"
)

// FallbackReply masks generation backend failures; the turn completes
// normally and the failure is only logged.
const FallbackReply = "I apologize, but I'm having trouble processing your request right now. Please try again in a moment."

// Coordinator runs one conversational turn end to end. Turns for distinct
// sessions run fully in parallel; two concurrent turns on the same session
// key may interleave, and the store's atomic append is the only ordering
// primitive. Messages are never lost, but total turn order is not promised.
type Coordinator struct {
	store      core.SessionStore
	generator  core.Generator
	retrier    *retry.Retrier
	windowSize int
}

func NewCoordinator(store core.SessionStore, generator core.Generator, windowSize int) *Coordinator {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	return &Coordinator{
		store:     store,
		generator: generator,
		retrier: retry.NewRetrier(&retry.Config{
			MaxRetries:    2,
			BackoffFactor: 2,
			InitialDelay:  500 * time.Millisecond,
			MaxDelay:      2 * time.Second,
			Jitter:        100 * time.Millisecond,
		}),
		windowSize: windowSize,
	}
}

// HandleTurn appends the user message, builds the bounded generation window
// (fresh directive first, then the non-system part of the trimmed history),
// calls the generator, appends the reply and returns it. Empty input is a
// no-op: no store mutation, no generation call.
func (c *Coordinator) HandleTurn(ctx context.Context, sessionKey, userText string, page *core.PageContext, userType string) (string, error) {
	if userText == "" {
		return "", core.ErrEmptyMessage
	}

	logger := log.FromCtx(ctx)

	if _, err := c.store.GetOrCreate(ctx, sessionKey); err != nil {
		return "", fmt.Errorf("get or create session: %w", err)
	}

	userMsg := core.Message{
		Role:      core.RoleUser,
		Content:   userText,
		Timestamp: time.Now().UTC(),
	}
	if err := c.store.Append(ctx, sessionKey, userMsg); err != nil {
		return "", fmt.Errorf("append user message: %w", err)
	}

	history, err := c.store.Read(ctx, sessionKey)
	if err != nil {
		return "", fmt.Errorf("read history: %w", err)
	}

	directive := Compose(page, userType)
	trimmed := Trim(history, c.windowSize)

	// The directive replaces any system content in stored history for this
	// call, so only non-system messages from the trimmed window follow it.
	window := make([]core.Message, 0, len(trimmed)+1)
	window = append(window, directive)
	for _, msg := range trimmed {
		if msg.Role != core.RoleSystem {
			window = append(window, msg)
		}
	}

	if e := logger.Debug(); e.Enabled() {
		e.Str("session", sessionKey).
			Int("messages", len(window)).
			Int("prompt_tokens", promptTokens(window)).
			Msg("generation window ready")
	}

	var reply string
	genErr := c.retrier.Do(ctx, func() error {
		text, err := c.generator.Generate(ctx, window)
		if err != nil {
			return err
		}
		reply = text
		return nil
	})
	if genErr != nil {
		if errors.Is(genErr, context.Canceled) || errors.Is(genErr, context.DeadlineExceeded) {
			// Caller went away mid-turn; abandon the turn instead of
			// recording a fallback nobody will read.
			return "", genErr
		}
		logger.Error().Err(genErr).Str("session", sessionKey).Msg("generation failed, sending fallback reply")
		reply = FallbackReply
	}

	assistantMsg := core.Message{
		Role:      core.RoleAssistant,
		Content:   reply,
		Timestamp: time.Now().UTC(),
	}
	if err := c.store.Append(ctx, sessionKey, assistantMsg); err != nil {
		return "", fmt.Errorf("append assistant message: %w", err)
	}

	return reply, nil
}
