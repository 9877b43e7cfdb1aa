package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"glamsalon/models"
	"glamsalon/services/conversation"
	"glamsalon/services/notification"
	"glamsalon/services/retrieval"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGenerator struct {
	lastRAGContext string
}

func (g *fakeGenerator) Generate(_ context.Context, _, _, ragContext string) (string, error) {
	g.lastRAGContext = ragContext
	if ragContext != "" {
		return "grounded: " + ragContext, nil
	}
	return "generic reply", nil
}

type fakeEmbedder struct{}

func (fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, 8)
	for i, r := range text {
		vec[i%8] += float32(r) * float32(i+1)
	}
	return vec, nil
}

func (e fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := e.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

type fakeBookingRepo struct {
	saved    []models.BookingRecord
	failNext bool
}

func (r *fakeBookingRepo) SaveBooking(_ context.Context, record models.BookingRecord) (*models.Booking, error) {
	if r.failNext {
		r.failNext = false
		return nil, errors.New("database unavailable")
	}
	r.saved = append(r.saved, record.Clone())
	return &models.Booking{
		ID:          "bk-42",
		CustomerID:  "cust-1",
		BookingType: record[models.FieldBookingType],
		Date:        record[models.FieldDate],
		Time:        record[models.FieldTime],
		Status:      "confirmed",
		CreatedAt:   time.Now(),
	}, nil
}

func (r *fakeBookingRepo) ListBookings(context.Context) ([]models.Booking, error) {
	return nil, nil
}

func (r *fakeBookingRepo) CountByService(context.Context) (map[string]int64, error) {
	return nil, nil
}

func (r *fakeBookingRepo) CountUpcoming(context.Context, string) (int64, error) {
	return 0, nil
}

type fakeNotifier struct {
	calls int
	fail  bool
}

func (n *fakeNotifier) SendBookingConfirmation(context.Context, *models.Booking, models.BookingRecord) (string, error) {
	n.calls++
	if n.fail {
		return "", errors.New("smtp refused")
	}
	return "A confirmation email is on its way.", nil
}

type memoryHistory struct {
	msgs map[string][]models.Message
}

func newMemoryHistory() *memoryHistory {
	return &memoryHistory{msgs: make(map[string][]models.Message)}
}

func (h *memoryHistory) Get(_ context.Context, id string) ([]models.Message, error) {
	return h.msgs[id], nil
}

func (h *memoryHistory) Append(_ context.Context, id string, msgs ...models.Message) error {
	h.msgs[id] = append(h.msgs[id], msgs...)
	return nil
}

func (h *memoryHistory) Clear(_ context.Context, id string) error {
	delete(h.msgs, id)
	return nil
}

type serviceFixture struct {
	svc       *DefaultAIService
	generator *fakeGenerator
	repo      *fakeBookingRepo
	notifier  *fakeNotifier
	history   *memoryHistory
	retrieval *retrieval.RetrievalService
}

func newFixture(t *testing.T) *serviceFixture {
	t.Helper()

	embedder := fakeEmbedder{}
	idx := retrieval.NewEmbeddingIndex(t.TempDir(), embedder)
	rs := retrieval.NewRetrievalService(embedder, idx, retrieval.NewDocumentChunker(200, 40), 2, zap.NewNop())

	f := &serviceFixture{
		generator: &fakeGenerator{},
		repo:      &fakeBookingRepo{},
		notifier:  &fakeNotifier{},
		history:   newMemoryHistory(),
		retrieval: rs,
	}
	f.svc = &DefaultAIService{
		Sessions:  conversation.NewSessionManager(conversation.NewFieldExtractor()),
		Validator: conversation.NewFieldValidator(),
		Retrieval: rs,
		Generator: f.generator,
		History:   f.history,
		Bookings:  f.repo,
		Notifier:  f.notifier,
		Logger:    zap.NewNop(),
	}
	return f
}

var _ notification.NotificationService = (*fakeNotifier)(nil)

func send(t *testing.T, f *serviceFixture, convID, text string) *models.ChatResponse {
	t.Helper()
	resp, err := f.svc.ProcessMessage(context.Background(), models.ChatRequest{
		ConversationID: convID,
		Text:           text,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)
	return resp
}

func TestProcessMessage_FullBookingFlow(t *testing.T) {
	f := newFixture(t)
	conv := "c1"

	resp := send(t, f, conv, "I want to book a haircut on 2030-02-10 at 15:00, my email is a@b.com and phone 9876543210")
	assert.Equal(t, conversation.IntentBooking, resp.Intent)
	assert.Contains(t, resp.ResponseText, "Perfect! Let me help you book an appointment.")
	assert.Contains(t, resp.ResponseText, "What's your name?")

	resp = send(t, f, conv, "Priya")
	assert.Contains(t, resp.ResponseText, "Booking Summary")
	assert.Contains(t, resp.ResponseText, "Name: Priya")

	resp = send(t, f, conv, "yes")
	assert.Contains(t, resp.ResponseText, "Booking Confirmed")
	assert.Equal(t, "bk-42", resp.BookingID)
	assert.Equal(t, 1, f.notifier.calls)

	require.Len(t, f.repo.saved, 1)
	saved := f.repo.saved[0]
	assert.Equal(t, "Priya", saved[models.FieldName])
	assert.Equal(t, "Haircut", saved[models.FieldBookingType])
	assert.Equal(t, "2030-02-10", saved[models.FieldDate])
	assert.Equal(t, "15:00", saved[models.FieldTime])

	// The session resets after confirmation: a fresh booking message starts
	// from an empty record.
	resp = send(t, f, conv, "book a massage")
	assert.Contains(t, resp.ResponseText, "What's your name?")
}

func TestProcessMessage_PersistFailureKeepsSessionForRetry(t *testing.T) {
	f := newFixture(t)
	conv := "c1"
	f.repo.failNext = true

	send(t, f, conv, "I want to book a haircut on 2030-02-10 at 15:00, my email is a@b.com and phone 9876543210")
	send(t, f, conv, "Priya")

	resp := send(t, f, conv, "yes")
	assert.Contains(t, resp.ResponseText, "error saving your booking")
	assert.Empty(t, resp.BookingID)
	assert.Empty(t, f.repo.saved)

	// Same conversation, same record: a second yes now succeeds.
	resp = send(t, f, conv, "yes")
	assert.Contains(t, resp.ResponseText, "Booking Confirmed")
	require.Len(t, f.repo.saved, 1)
	assert.Equal(t, "Priya", f.repo.saved[0][models.FieldName])
}

func TestProcessMessage_InvalidRecordIsNeverPersisted(t *testing.T) {
	f := newFixture(t)
	conv := "c1"

	// 22:00 is outside business hours; extraction accepts it, the
	// pre-persistence validation must not.
	send(t, f, conv, "I want to book a haircut on 2030-02-10 at 22:00, my email is a@b.com and phone 9876543210")
	send(t, f, conv, "Priya")

	resp := send(t, f, conv, "yes")
	assert.Contains(t, resp.ResponseText, "error saving your booking")
	assert.Empty(t, f.repo.saved)
	assert.Zero(t, f.notifier.calls)
}

func TestProcessMessage_RejectionResetsSession(t *testing.T) {
	f := newFixture(t)
	conv := "c1"

	send(t, f, conv, "I want to book a haircut on 2030-02-10 at 15:00, my email is a@b.com and phone 9876543210")
	send(t, f, conv, "Priya")

	resp := send(t, f, conv, "no")
	assert.Contains(t, resp.ResponseText, "start over")
	assert.Empty(t, f.repo.saved)

	// Out of booking mode: a general message routes to plain generation.
	resp = send(t, f, conv, "hello!")
	assert.Equal(t, conversation.IntentGeneral, resp.Intent)
	assert.Equal(t, "generic reply", resp.ResponseText)
}

func TestProcessMessage_UnrecognizedConfirmationReplyReprompts(t *testing.T) {
	f := newFixture(t)
	conv := "c1"

	send(t, f, conv, "I want to book a haircut on 2030-02-10 at 15:00, my email is a@b.com and phone 9876543210")
	send(t, f, conv, "Priya")

	resp := send(t, f, conv, "umm maybe")
	assert.Contains(t, resp.ResponseText, "Please reply with 'yes' to confirm or 'no' to make changes.")
	assert.Empty(t, f.repo.saved)

	resp = send(t, f, conv, "yes")
	assert.Contains(t, resp.ResponseText, "Booking Confirmed")
}

func TestProcessMessage_NotifierFailureDoesNotBlockBooking(t *testing.T) {
	f := newFixture(t)
	f.notifier.fail = true
	conv := "c1"

	send(t, f, conv, "I want to book a haircut on 2030-02-10 at 15:00, my email is a@b.com and phone 9876543210")
	send(t, f, conv, "Priya")

	resp := send(t, f, conv, "yes")
	assert.Contains(t, resp.ResponseText, "Booking Confirmed")
	assert.Contains(t, resp.ResponseText, "your booking is saved")
	require.Len(t, f.repo.saved, 1)
}

func TestProcessMessage_QuestionUsesRetrievedContext(t *testing.T) {
	f := newFixture(t)

	_, err := f.retrieval.IngestDocument(context.Background(),
		"We are open Monday through Saturday from 9 AM to 8 PM.")
	require.NoError(t, err)

	resp := send(t, f, "c1", "when are you open?")
	assert.Equal(t, conversation.IntentQuestion, resp.Intent)
	assert.Contains(t, resp.ResponseText, "grounded:")
	assert.Contains(t, f.generator.lastRAGContext, "Monday through Saturday")
}

func TestProcessMessage_QuestionWithEmptyCorpusFallsBack(t *testing.T) {
	f := newFixture(t)

	resp := send(t, f, "c1", "when are you open?")
	assert.Equal(t, conversation.IntentQuestion, resp.Intent)
	assert.Equal(t, "generic reply", resp.ResponseText)
	assert.Empty(t, f.generator.lastRAGContext)
}

func TestProcessMessage_RecordsHistory(t *testing.T) {
	f := newFixture(t)

	send(t, f, "c1", "hello!")
	msgs, err := f.history.Get(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "user", msgs[0].Role)
	assert.Equal(t, "hello!", msgs[0].Content)
	assert.Equal(t, "assistant", msgs[1].Role)
}

func TestProcessMessage_ConversationsAreIsolated(t *testing.T) {
	f := newFixture(t)

	send(t, f, "c1", "I want to book a haircut")
	resp := send(t, f, "c2", "hello!")

	// The second conversation is not dragged into the first one's booking.
	assert.Equal(t, conversation.IntentGeneral, resp.Intent)
}
