package conversation

import (
	"fmt"
	"strings"

	"glamsalon/models"
)

// SessionState tracks where a booking conversation stands.
type SessionState int

const (
	// StateCollecting: the session is still gathering required fields.
	StateCollecting SessionState = iota
	// StateAwaitingConfirmation: all fields are present and a summary has
	// been shown; the session waits for a yes/no.
	StateAwaitingConfirmation
)

var questions = map[string]string{
	models.FieldName:  "What's your name?",
	models.FieldEmail: "What's your email address?",
	models.FieldPhone: "What's your phone number? (10 digits)",
	models.FieldBookingType: "Which service would you like? " +
		"(Haircut, Hair Coloring, Manicure, Pedicure, Facial, Massage, Hair Spa, Bridal Makeup, Party Makeup)",
	models.FieldDate: "What date would you prefer? (YYYY-MM-DD)",
	models.FieldTime: "What time works for you? (HH:MM)",
}

var (
	affirmatives = map[string]bool{
		"yes": true, "y": true, "confirm": true, "correct": true, "yeah": true, "yep": true,
	}
	negatives = map[string]bool{
		"no": true, "n": true, "incorrect": true, "wrong": true, "nope": true,
	}
)

// SlotFillingSession drives one booking conversation: it accumulates fields
// extracted from free-form messages until the record is complete, then holds
// the completed record while the user confirms or rejects it.
//
// A session is not safe for concurrent use; the owner serializes access
// (see SessionManager).
type SlotFillingSession struct {
	extractor *FieldExtractor
	record    models.BookingRecord
	state     SessionState
}

func NewSlotFillingSession(extractor *FieldExtractor) *SlotFillingSession {
	return &SlotFillingSession{
		extractor: extractor,
		record:    make(models.BookingRecord),
	}
}

// Reset clears the record and returns to collecting.
func (s *SlotFillingSession) Reset() {
	s.record = make(models.BookingRecord)
	s.state = StateCollecting
}

// Ingest runs extraction over an utterance, merges the results, and returns
// either the next question or, once the record is complete, the confirmation
// summary. Extracted fields overwrite previously stored values; name is the
// exception, extracted at most once (the extractor skips it when known).
// If nothing is extracted the current question is re-issued unchanged.
func (s *SlotFillingSession) Ingest(utterance string) string {
	if s.state != StateCollecting {
		return s.ConfirmationSummary()
	}

	known := make(map[string]bool, len(s.record))
	for field, value := range s.record {
		if value != "" {
			known[field] = true
		}
	}

	for field, value := range s.extractor.Extract(utterance, known) {
		s.record[field] = value
	}

	if s.record.IsComplete() {
		s.state = StateAwaitingConfirmation
		return s.ConfirmationSummary()
	}

	question, _ := s.NextQuestion()
	return question
}

// Confirm classifies a reply while awaiting confirmation. The session state
// is left untouched: on acceptance the caller persists the record and then
// calls Reset, so a failed persist can be retried without re-collecting.
func (s *SlotFillingSession) Confirm(reply string) models.ConfirmOutcome {
	normalized := strings.ToLower(strings.TrimSpace(reply))
	switch {
	case affirmatives[normalized]:
		return models.ConfirmAccepted
	case negatives[normalized]:
		return models.ConfirmRejected
	default:
		return models.ConfirmUnrecognized
	}
}

// IsComplete reports whether all six required fields are filled.
func (s *SlotFillingSession) IsComplete() bool {
	return s.record.IsComplete()
}

// AwaitingConfirmation reports whether a summary is pending a yes/no.
func (s *SlotFillingSession) AwaitingConfirmation() bool {
	return s.state == StateAwaitingConfirmation
}

// NextQuestion returns the prompt for the first missing field in the fixed
// field order, or false when the record is complete.
func (s *SlotFillingSession) NextQuestion() (string, bool) {
	missing := s.record.MissingFields()
	if len(missing) == 0 {
		return "", false
	}
	return questions[missing[0]], true
}

// Record returns a copy of the collected fields for persistence.
func (s *SlotFillingSession) Record() models.BookingRecord {
	return s.record.Clone()
}

// ConfirmationSummary renders all collected values for the user to confirm.
func (s *SlotFillingSession) ConfirmationSummary() string {
	if !s.record.IsComplete() {
		return "Cannot generate summary - missing information."
	}

	return fmt.Sprintf(`📋 Booking Summary

Name: %s
Email: %s
Phone: %s
Service: %s
Date: %s
Time: %s

Is this information correct? Reply yes to confirm or no to edit.`,
		s.record[models.FieldName],
		s.record[models.FieldEmail],
		s.record[models.FieldPhone],
		s.record[models.FieldBookingType],
		s.record[models.FieldDate],
		s.record[models.FieldTime],
	)
}
