package notification

import (
	"context"

	"glamsalon/models"

	"go.uber.org/zap"
)

// EmailNotificationService is the demo transport: it logs the confirmation
// instead of sending mail, mirroring a disabled SMTP setup. Swapping in a
// real provider only requires another NotificationService implementation.
type EmailNotificationService struct {
	Logger *zap.Logger
}

func NewEmailNotificationService(logger *zap.Logger) *EmailNotificationService {
	return &EmailNotificationService{Logger: logger}
}

func (s *EmailNotificationService) SendBookingConfirmation(
	ctx context.Context,
	booking *models.Booking,
	record models.BookingRecord,
) (string, error) {
	s.Logger.Info("booking confirmation email simulated",
		zap.String("bookingID", booking.ID),
		zap.String("to", record[models.FieldEmail]),
		zap.String("service", booking.BookingType),
		zap.String("date", booking.Date),
		zap.String("time", booking.Time),
	)
	return "📧 Email notification simulated (email service disabled for demo).", nil
}
