package chat

import (
	"reflect"
	"testing"

	"github.com/sandevgo/aiden/internal/core"
)

func msg(role, content string) core.Message {
	return core.Message{Role: role, Content: content}
}

func TestTrim(t *testing.T) {
	tests := []struct {
		name        string
		history     []core.Message
		maxMessages int
		expected    []core.Message
	}{
		{
			name:        "empty history",
			history:     nil,
			maxMessages: 10,
			expected:    nil,
		},
		{
			name: "short history is returned unchanged",
			history: []core.Message{
				msg(core.RoleUser, "1"),
				msg(core.RoleAssistant, "2"),
				msg(core.RoleUser, "3"),
			},
			maxMessages: 10,
			expected: []core.Message{
				msg(core.RoleUser, "1"),
				msg(core.RoleAssistant, "2"),
				msg(core.RoleUser, "3"),
			},
		},
		{
			name: "history at the limit is returned unchanged",
			history: []core.Message{
				msg(core.RoleUser, "1"),
				msg(core.RoleAssistant, "2"),
			},
			maxMessages: 2,
			expected: []core.Message{
				msg(core.RoleUser, "1"),
				msg(core.RoleAssistant, "2"),
			},
		},
		{
			name: "keeps the most recent non-system suffix",
			history: []core.Message{
				msg(core.RoleUser, "1"),
				msg(core.RoleAssistant, "2"),
				msg(core.RoleUser, "3"),
				msg(core.RoleAssistant, "4"),
			},
			maxMessages: 2,
			expected: []core.Message{
				msg(core.RoleUser, "3"),
				msg(core.RoleAssistant, "4"),
			},
		},
		{
			name: "system messages survive trimming and move to the front",
			history: []core.Message{
				msg(core.RoleUser, "1"),
				msg(core.RoleSystem, "sys-a"),
				msg(core.RoleUser, "2"),
				msg(core.RoleAssistant, "3"),
				msg(core.RoleSystem, "sys-b"),
				msg(core.RoleUser, "4"),
			},
			maxMessages: 2,
			expected: []core.Message{
				msg(core.RoleSystem, "sys-a"),
				msg(core.RoleSystem, "sys-b"),
				msg(core.RoleAssistant, "3"),
				msg(core.RoleUser, "4"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Trim(tt.history, tt.maxMessages)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Trim() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTrim_TwoSystemTwelveOthers(t *testing.T) {
	history := []core.Message{
		msg(core.RoleSystem, "sys-1"),
		msg(core.RoleSystem, "sys-2"),
	}
	for i := 0; i < 12; i++ {
		role := core.RoleUser
		if i%2 == 1 {
			role = core.RoleAssistant
		}
		history = append(history, msg(role, string(rune('a'+i))))
	}

	got := Trim(history, DefaultWindowSize)

	if len(got) != 12 {
		t.Fatalf("expected 12 messages, got %d", len(got))
	}
	if got[0].Content != "sys-1" || got[1].Content != "sys-2" {
		t.Errorf("expected system messages first, got %q %q", got[0].Content, got[1].Content)
	}
	// last 10 of the 12 non-system messages, oldest first
	if got[2].Content != "c" {
		t.Errorf("expected first kept non-system message %q, got %q", "c", got[2].Content)
	}
	if got[11].Content != "l" {
		t.Errorf("expected last kept non-system message %q, got %q", "l", got[11].Content)
	}
}

func TestTrim_ThreeMessagesDefaultWindow(t *testing.T) {
	history := []core.Message{
		msg(core.RoleUser, "hi"),
		msg(core.RoleAssistant, "hello"),
		msg(core.RoleUser, "help"),
	}

	got := Trim(history, DefaultWindowSize)
	if !reflect.DeepEqual(got, history) {
		t.Errorf("expected identity on short history, got %v", got)
	}
}
