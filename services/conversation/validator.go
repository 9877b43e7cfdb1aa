package conversation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"glamsalon/models"
	"glamsalon/utils"
)

// Anchored patterns: validation demands the whole value matches, unlike
// extraction which scans inside surrounding text.
var (
	emailExact = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	dateExact  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeExact  = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// FieldValidator checks a single named field's value against its domain
// constraints. Pure: no state, no side effects.
type FieldValidator struct {
	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

func NewFieldValidator() *FieldValidator {
	return &FieldValidator{now: time.Now}
}

// Validate returns whether the value is acceptable for the field, and a
// human-readable reason when it is not. Fields without defined constraints
// are accepted unconditionally.
func (v *FieldValidator) Validate(field, value string) (bool, string) {
	switch field {
	case models.FieldEmail:
		return v.validateEmail(value)
	case models.FieldPhone:
		return v.validatePhone(value)
	case models.FieldDate:
		return v.validateDate(value)
	case models.FieldTime:
		return v.validateTime(value)
	default:
		return true, ""
	}
}

// ValidateRecord checks every required field of a complete record. It is the
// last gate before persistence, so malformed data can never reach the
// database even if a pattern slipped through extraction.
func (v *FieldValidator) ValidateRecord(record models.BookingRecord) (bool, string) {
	for _, field := range models.RequiredFields {
		if record[field] == "" {
			return false, fmt.Sprintf("Missing required field: %s", field)
		}
	}
	for _, field := range models.RequiredFields {
		if ok, reason := v.Validate(field, record[field]); !ok {
			return false, reason
		}
	}
	return true, ""
}

func (v *FieldValidator) validateEmail(value string) (bool, string) {
	if !emailExact.MatchString(value) {
		return false, "Invalid email format. Please provide a valid email address."
	}
	return true, ""
}

func (v *FieldValidator) validatePhone(value string) (bool, string) {
	digits := strings.NewReplacer("-", "", ".", "", " ", "").Replace(value)
	if len(digits) != 10 {
		return false, "Invalid phone number. Please provide a valid 10-digit phone number."
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false, "Invalid phone number. Please provide a valid 10-digit phone number."
		}
	}
	return true, ""
}

func (v *FieldValidator) validateDate(value string) (bool, string) {
	if !dateExact.MatchString(value) {
		return false, "Invalid date format. Please enter date as YYYY-MM-DD."
	}
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return false, "That date does not exist. Please enter a real date as YYYY-MM-DD."
	}
	today := v.now()
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if d.Before(today) {
		return false, "That date is in the past. Please pick today or a future date."
	}
	return true, ""
}

func (v *FieldValidator) validateTime(value string) (bool, string) {
	m := timeExact.FindStringSubmatch(value)
	if m == nil {
		return false, "Invalid time format. Please enter time as HH:MM (24-hour)."
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return false, "That time does not exist. Please enter time as HH:MM (24-hour)."
	}
	if hour < utils.BusinessOpenHour || hour >= utils.BusinessCloseHour {
		return false, fmt.Sprintf(
			"We are open %02d:00 to %02d:00. Please pick a time within business hours.",
			utils.BusinessOpenHour, utils.BusinessCloseHour,
		)
	}
	return true, ""
}
