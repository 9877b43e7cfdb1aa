package notification

import (
	"context"

	"glamsalon/models"
)

// NotificationService delivers booking confirmations to customers. Delivery
// failure never unwinds a persisted booking; callers log and continue.
type NotificationService interface {
	SendBookingConfirmation(ctx context.Context, booking *models.Booking, record models.BookingRecord) (string, error)
}
