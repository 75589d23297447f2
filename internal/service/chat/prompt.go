package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/aiden/internal/core"
)

const basePersona = `You are Aiden, an advanced AI onboarding assistant for B2B SaaS platforms. Your mission is to help users navigate, understand, and successfully onboard to their SaaS platform.

Core Capabilities:
- Provide contextual, page-aware guidance
- Offer step-by-step onboarding assistance
- Answer questions about features and functionality
- Suggest next best actions based on user context
- Help users overcome confusion and friction points

Personality:
- Friendly, professional, and encouraging
- Proactive in offering help
- Clear and concise in explanations
- Empathetic to user struggles

Response Guidelines:
- Keep responses under 150 words for better readability
- Offer specific, actionable advice
- Ask clarifying questions when needed
- Provide examples when helpful
- Use emojis sparingly but effectively`

// Compose builds the per-turn system directive from the base persona plus
// the request's page and user context. It runs fresh every turn and its
// result is never persisted into session history.
func Compose(page *core.PageContext, userType string) core.Message {
	var b strings.Builder
	b.WriteString(basePersona)

	if page != nil {
		title := page.PageTitle
		if title == "" {
			title = "Unknown"
		}
		fmt.Fprintf(&b, "\n\nCurrent Page Context: %s - %s", title, page.URL)
		if len(page.Features) > 0 {
			fmt.Fprintf(&b, "\nAvailable Features: %s", strings.Join(page.Features, ", "))
		}
	}

	if userType != "" && userType != core.DefaultUserType {
		fmt.Fprintf(&b, "\n\nUser Type: %s - Tailor responses accordingly", userType)
	}

	return core.Message{
		Role:      core.RoleSystem,
		Content:   b.String(),
		Timestamp: time.Now().UTC(),
	}
}
