package chat

import "github.com/sandevgo/aiden/internal/core"

// DefaultWindowSize bounds how many non-system messages a generation call
// sees.
const DefaultWindowSize = 10

// Trim reduces history to a bounded generation window: every system message
// is kept, plus the maxMessages most recent non-system messages. System
// messages come first in the result, each partition in original order. The
// reordering is deliberate even though it can move a system message ahead of
// older chatter. Histories short enough already are returned unchanged.
func Trim(history []core.Message, maxMessages int) []core.Message {
	if len(history) <= maxMessages {
		return history
	}

	var system, other []core.Message
	for _, msg := range history {
		if msg.Role == core.RoleSystem {
			system = append(system, msg)
		} else {
			other = append(other, msg)
		}
	}

	if len(other) > maxMessages {
		other = other[len(other)-maxMessages:]
	}

	return append(system, other...)
}
