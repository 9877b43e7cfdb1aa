package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectIntent(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"book verb", "I'd like to book an appointment", IntentBooking},
		{"service keyword", "haircut tomorrow?", IntentBooking},
		{"schedule", "can we schedule something", IntentBooking},
		{"price question", "what is the price of a trim?", IntentQuestion},
		{"hours question", "when do you open?", IntentQuestion},
		{"cost", "how much does it cost", IntentQuestion},
		{"booking beats question", "what time can I book a facial?", IntentBooking},
		{"greeting", "hello there!", IntentGeneral},
		{"thanks", "thanks, bye", IntentGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectIntent(tt.message))
		})
	}
}
