// File: services/intelligence/ruleBased.go
package ai

import (
	"context"

	"glamsalon/services/conversation"
)

// RuleBasedGenerator is the no-API fallback: canned replies keyed off the
// detected intent, with retrieved context passed through verbatim when
// present. Used when no Gemini key is configured.
type RuleBasedGenerator struct{}

func (RuleBasedGenerator) Generate(ctx context.Context, query, systemPrompt, ragContext string) (string, error) {
	if ragContext != "" {
		return "Here's what I found in our salon documents:\n\n" + ragContext +
			"\n\nWould you like to book an appointment?", nil
	}

	switch conversation.DetectIntent(query) {
	case conversation.IntentQuestion:
		return "💇‍♀️ We offer the following services:\n\n" +
			"• Haircuts & Styling\n" +
			"• Hair Coloring\n" +
			"• Facials & Skincare\n" +
			"• Manicure & Pedicure\n" +
			"• Makeup & Spa Services\n\n" +
			"Would you like to book an appointment?", nil
	default:
		return "Hi 👋 Welcome to Glamour Salon!\n\n" +
			"You can ask me about our services or say:\n" +
			"👉 I want to book a haircut tomorrow", nil
	}
}
