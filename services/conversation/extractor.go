package conversation

import (
	"regexp"
	"strings"

	"glamsalon/models"
)

// Field extraction patterns. All run against the raw utterance; a single
// message may yield several fields at once.
var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`\b\d{10}\b|\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`)
	datePattern  = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	timePattern  = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	nonDigit     = regexp.MustCompile(`\D`)

	namePattern   = regexp.MustCompile(`(?i)^(?:my name is|i am|this is)?\s*([A-Za-z]{2,}(?:\s[A-Za-z]{2,})?)`)
	fillerPattern = regexp.MustCompile(`(?i)^(?:my name is|i am|this is)\s*`)
	alphaOnly     = regexp.MustCompile(`^[A-Za-z]+$`)
)

// serviceKeywords maps utterance keywords to canonical service labels.
// Scanned in order; the first hit wins, so the more specific keywords
// (bridal, party) come before the generic ones (makeup, cut, spa).
var serviceKeywords = []struct {
	keyword string
	label   string
}{
	{"bridal", "Bridal Makeup"},
	{"party", "Party Makeup"},
	{"makeup", "Party Makeup"},
	{"coloring", "Hair Coloring"},
	{"color", "Hair Coloring"},
	{"haircut", "Haircut"},
	{"cut", "Haircut"},
	{"manicure", "Manicure"},
	{"pedicure", "Pedicure"},
	{"facial", "Facial"},
	{"massage", "Massage"},
	{"spa", "Hair Spa"},
}

// FieldExtractor pulls typed booking fields out of free-form utterances
// using deterministic pattern rules.
type FieldExtractor struct{}

func NewFieldExtractor() *FieldExtractor {
	return &FieldExtractor{}
}

// Extract parses an utterance into candidate field values. known holds the
// fields the conversation has already collected; it only gates name
// extraction, which is attempted once per conversation.
//
// Name extraction is deliberately exclusive: when the utterance looks like a
// bare name, the name is the only field returned and every other rule is
// skipped for that message. Name text would otherwise trip the service
// keyword scan ("Art Cutler" contains "cut").
func (e *FieldExtractor) Extract(utterance string, known map[string]bool) map[string]string {
	extracted := make(map[string]string)
	msg := strings.TrimSpace(utterance)
	msgLower := strings.ToLower(msg)

	if !known[models.FieldName] {
		if name, ok := e.extractName(msg); ok {
			extracted[models.FieldName] = name
			return extracted
		}
	}

	if m := emailPattern.FindString(msg); m != "" {
		extracted[models.FieldEmail] = m
	}

	if m := phonePattern.FindString(msg); m != "" {
		extracted[models.FieldPhone] = nonDigit.ReplaceAllString(m, "")
	}

	if m := datePattern.FindString(msg); m != "" {
		extracted[models.FieldDate] = m
	}

	if m := timePattern.FindStringSubmatch(msg); m != nil {
		h, min := m[1], m[2]
		if len(h) == 1 {
			h = "0" + h
		}
		extracted[models.FieldTime] = h + ":" + min
	}

	for _, s := range serviceKeywords {
		if strings.Contains(msgLower, s.keyword) {
			extracted[models.FieldBookingType] = s.label
			break
		}
	}

	return extracted
}

// extractName treats the whole trimmed utterance as a name candidate when it
// is either purely alphabetic once an optional leading filler phrase is
// removed, or no longer than two words.
func (e *FieldExtractor) extractName(msg string) (string, bool) {
	m := namePattern.FindStringSubmatch(msg)
	if m == nil {
		return "", false
	}

	stripped := strings.TrimSpace(fillerPattern.ReplaceAllString(msg, ""))
	if !alphaOnly.MatchString(stripped) && len(strings.Fields(msg)) > 2 {
		return "", false
	}

	return titleCase(m[1]), true
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
