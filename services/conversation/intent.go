package conversation

import "strings"

// Intents routed by the assistant.
const (
	IntentBooking  = "booking"
	IntentQuestion = "question"
	IntentGeneral  = "general"
)

var bookingKeywords = []string{
	"book", "appointment", "schedule", "reserve",
	"haircut", "facial", "manicure", "pedicure",
	"spa", "massage", "makeup", "coloring",
}

var questionKeywords = []string{
	"what", "when", "where", "how", "price",
	"cost", "services", "offer", "available",
}

// DetectIntent classifies a message as booking, question or general via
// keyword matching. Booking keywords take precedence over question keywords.
func DetectIntent(message string) string {
	lower := strings.ToLower(message)

	for _, word := range bookingKeywords {
		if strings.Contains(lower, word) {
			return IntentBooking
		}
	}
	for _, word := range questionKeywords {
		if strings.Contains(lower, word) {
			return IntentQuestion
		}
	}
	return IntentGeneral
}
