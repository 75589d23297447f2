package chat

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sandevgo/aiden/internal/core"
)

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

// promptTokens estimates the token footprint of a generation window for
// debug logging. Best effort: returns -1 when the encoding is unavailable.
func promptTokens(messages []core.Message) int {
	encodingOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			encoding = enc
		}
	})
	if encoding == nil {
		return -1
	}

	total := 0
	for _, msg := range messages {
		total += len(encoding.Encode(msg.Content, nil, nil))
	}
	return total
}
