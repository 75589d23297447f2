package core

import "errors"

var (
	// ErrStoreUnavailable marks any session store failure. Callers match it
	// with errors.Is to distinguish persistence trouble from bad input.
	ErrStoreUnavailable = errors.New("session store unavailable")

	// ErrGenerationFailed marks a text-generation backend failure. The
	// coordinator masks it with a fallback reply; it never reaches clients.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrEmptyMessage is returned for a turn with no user text. No store
	// mutation and no generation call happen for such turns.
	ErrEmptyMessage = errors.New("empty message")
)
