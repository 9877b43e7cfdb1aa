// File: utils/constants.go
package utils

import "time"

// ChatHistoryPrefix is the prefix used for Redis conversation history keys.
const ChatHistoryPrefix = "chat:history:"

// ChatHistoryTTL is the time-to-live for conversation history entries.
const ChatHistoryTTL = 30 * time.Minute

// Business hours: appointments may start at 09:00 up to, but excluding, 20:00.
const (
	BusinessOpenHour  = 9
	BusinessCloseHour = 20
)

// SalonServices is the catalogue of bookable services.
var SalonServices = []string{
	"Haircut",
	"Hair Coloring",
	"Manicure",
	"Pedicure",
	"Facial",
	"Massage",
	"Hair Spa",
	"Bridal Makeup",
	"Party Makeup",
}
