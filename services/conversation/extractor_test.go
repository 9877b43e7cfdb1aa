package conversation

import (
	"testing"

	"glamsalon/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_Phone_SeparatorVariants(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
	}{
		{"bare digits", "you can reach me at 9876543210 anytime"},
		{"hyphens", "call 987-654-3210 please"},
		{"dots", "number is 987.654.3210"},
		{"spaces", "it's 987 654 3210 thanks"},
		{"mixed", "try 987-654 3210"},
	}

	e := NewFieldExtractor()
	known := map[string]bool{models.FieldName: true}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.utterance, known)
			assert.Equal(t, "9876543210", got[models.FieldPhone])
		})
	}
}

func TestExtract_Email(t *testing.T) {
	e := NewFieldExtractor()
	known := map[string]bool{models.FieldName: true}

	got := e.Extract("my email is jane.doe+salon@example.co.uk ok?", known)
	assert.Equal(t, "jane.doe+salon@example.co.uk", got[models.FieldEmail])

	got = e.Extract("no email here", known)
	_, ok := got[models.FieldEmail]
	assert.False(t, ok)
}

func TestExtract_Date(t *testing.T) {
	e := NewFieldExtractor()
	known := map[string]bool{models.FieldName: true}

	got := e.Extract("let's do 2026-12-01 if possible", known)
	assert.Equal(t, "2026-12-01", got[models.FieldDate])

	// No calendar validation at extraction time.
	got = e.Extract("how about 2026-99-99", known)
	assert.Equal(t, "2026-99-99", got[models.FieldDate])
}

func TestExtract_Time_ZeroPadsHour(t *testing.T) {
	tests := []struct {
		utterance string
		want      string
	}{
		{"come at 9:30", "09:30"},
		{"come at 15:00", "15:00"},
		{"maybe 7:05 works", "07:05"},
	}

	e := NewFieldExtractor()
	known := map[string]bool{models.FieldName: true}

	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			got := e.Extract(tt.utterance, known)
			assert.Equal(t, tt.want, got[models.FieldTime])
		})
	}
}

func TestExtract_Service_PriorityOrder(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		want      string
	}{
		{"haircut", "i need a haircut", "Haircut"},
		{"cut maps to haircut", "just a quick cut", "Haircut"},
		{"bridal beats makeup", "bridal makeup for my wedding", "Bridal Makeup"},
		{"party beats makeup", "party makeup please", "Party Makeup"},
		{"bare makeup is party", "some makeup", "Party Makeup"},
		{"coloring", "hair coloring appointment", "Hair Coloring"},
		{"color", "i want a new hair color", "Hair Coloring"},
		{"spa", "a relaxing spa day", "Hair Spa"},
		{"massage", "book me a massage", "Massage"},
	}

	e := NewFieldExtractor()
	known := map[string]bool{models.FieldName: true}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.utterance, known)
			assert.Equal(t, tt.want, got[models.FieldBookingType])
		})
	}
}

func TestExtract_Name_ShortCircuit(t *testing.T) {
	e := NewFieldExtractor()

	tests := []struct {
		name      string
		utterance string
		want      string
	}{
		{"bare name", "harshini", "Harshini"},
		{"two words", "priya sharma", "Priya Sharma"},
		{"filler phrase", "my name is harshini", "Harshini"},
		{"i am filler", "I am Priya", "Priya"},
		{"title cased", "PRIYA", "Priya"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.utterance, map[string]bool{})
			require.Equal(t, tt.want, got[models.FieldName])
			// The name branch is exclusive: nothing else is extracted.
			assert.Len(t, got, 1)
		})
	}
}

func TestExtract_Name_SkippedWhenKnown(t *testing.T) {
	e := NewFieldExtractor()

	got := e.Extract("haircut", map[string]bool{models.FieldName: true})
	_, hasName := got[models.FieldName]
	assert.False(t, hasName)
	assert.Equal(t, "Haircut", got[models.FieldBookingType])
}

func TestExtract_Name_NotTriggeredByLongSentences(t *testing.T) {
	e := NewFieldExtractor()

	// Long non-name sentences must fall through to the other field rules
	// even when no name is known yet.
	got := e.Extract("I want to book a facial next week", map[string]bool{})
	_, hasName := got[models.FieldName]
	assert.False(t, hasName)
	assert.Equal(t, "Facial", got[models.FieldBookingType])
}

func TestExtract_MultipleFieldsInOneMessage(t *testing.T) {
	e := NewFieldExtractor()
	known := map[string]bool{models.FieldName: true}

	got := e.Extract(
		"I want a haircut on 2026-02-10 at 15:00, my email is a@b.com and phone 9876543210",
		known,
	)

	want := map[string]string{
		models.FieldBookingType: "Haircut",
		models.FieldDate:        "2026-02-10",
		models.FieldTime:        "15:00",
		models.FieldEmail:       "a@b.com",
		models.FieldPhone:       "9876543210",
	}
	assert.Equal(t, want, got)
}
