package models

import "time"

// Required booking fields, in the order the assistant asks for them.
// The field set is closed: a BookingRecord never carries other keys.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldBookingType = "booking_type"
	FieldDate        = "date"
	FieldTime        = "time"
)

// RequiredFields fixes the slot-filling question order.
var RequiredFields = []string{
	FieldName, FieldEmail, FieldPhone, FieldBookingType, FieldDate, FieldTime,
}

// BookingRecord is the structured record assembled during a booking
// conversation: field name -> collected string value.
type BookingRecord map[string]string

// MissingFields returns the required fields not yet present, in question order.
func (r BookingRecord) MissingFields() []string {
	var missing []string
	for _, f := range RequiredFields {
		if r[f] == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// IsComplete reports whether every required field has a non-empty value.
func (r BookingRecord) IsComplete() bool {
	return len(r.MissingFields()) == 0
}

// Clone returns an independent copy of the record.
func (r BookingRecord) Clone() BookingRecord {
	out := make(BookingRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Customer is the persisted customer identity, keyed by email.
type Customer struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone" json:"phone"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Booking represents a confirmed booking record.
type Booking struct {
	ID          string    `bson:"id" json:"id"`                     // Unique booking identifier (UUID)
	CustomerID  string    `bson:"customer_id" json:"customer_id"`   // Customer who made the booking
	BookingType string    `bson:"booking_type" json:"booking_type"` // Canonical service label, e.g. "Haircut"
	Date        string    `bson:"date" json:"date"`                 // Booking date in "YYYY-MM-DD" format
	Time        string    `bson:"time" json:"time"`                 // Booking time in "HH:MM" 24-hour format
	Status      string    `bson:"status" json:"status"`             // e.g. "confirmed"
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`     // Timestamp when booking was created
}
