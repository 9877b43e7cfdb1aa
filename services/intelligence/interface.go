// File: services/intelligence/interface.go
package ai

import (
	"context"
	"fmt"

	"glamsalon/database/repository"
	"glamsalon/models"
	"glamsalon/services/conversation"
	"glamsalon/services/notification"
	"glamsalon/services/retrieval"

	"go.uber.org/zap"
)

// Generator is the opaque completion capability: given a query, an optional
// system prompt and optional retrieved context, produce a reply.
type Generator interface {
	Generate(ctx context.Context, query, systemPrompt, ragContext string) (string, error)
}

// HistoryStore keeps recent conversation messages per conversation.
type HistoryStore interface {
	Get(ctx context.Context, conversationID string) ([]models.Message, error)
	Append(ctx context.Context, conversationID string, msgs ...models.Message) error
	Clear(ctx context.Context, conversationID string) error
}

// AIService processes one user message per call and returns the assistant's
// reply.
type AIService interface {
	ProcessMessage(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
}

// DefaultAIService routes each message by intent: booking messages drive the
// slot-filling session to completion and confirmation, questions are
// answered with retrieved document context, everything else falls through to
// plain generation.
type DefaultAIService struct {
	Sessions  *conversation.SessionManager
	Validator *conversation.FieldValidator
	Retrieval *retrieval.RetrievalService
	Generator Generator
	History   HistoryStore
	Bookings  repository.BookingRepository
	Notifier  notification.NotificationService
	Logger    *zap.Logger
}

func (s *DefaultAIService) ProcessMessage(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	conv := s.Sessions.Get(req.ConversationID)
	conv.Lock()
	defer conv.Unlock()

	resp, err := s.route(ctx, req, conv)
	if err != nil {
		return nil, err
	}

	s.appendHistory(ctx, req.ConversationID,
		models.Message{Role: "user", Content: req.Text},
		models.Message{Role: "assistant", Content: resp.ResponseText},
	)
	return resp, nil
}

func (s *DefaultAIService) route(ctx context.Context, req models.ChatRequest, conv *conversation.Conversation) (*models.ChatResponse, error) {
	// A pending summary takes precedence over everything else.
	if conv.BookingMode && conv.Flow.AwaitingConfirmation() {
		return s.handleConfirmation(ctx, req, conv)
	}

	if conv.BookingMode {
		return &models.ChatResponse{
			ConversationID: req.ConversationID,
			Intent:         conversation.IntentBooking,
			ResponseText:   conv.Flow.Ingest(req.Text),
		}, nil
	}

	intent := conversation.DetectIntent(req.Text)
	switch intent {
	case conversation.IntentBooking:
		conv.BookingMode = true
		reply := conv.Flow.Ingest(req.Text)
		if !conv.Flow.AwaitingConfirmation() {
			reply = "Perfect! Let me help you book an appointment. " + reply
		}
		return &models.ChatResponse{
			ConversationID: req.ConversationID,
			Intent:         intent,
			ResponseText:   reply,
		}, nil

	case conversation.IntentQuestion:
		return s.handleQuestion(ctx, req, intent)

	default:
		reply, err := s.Generator.Generate(ctx, req.Text, "", "")
		if err != nil {
			return nil, fmt.Errorf("generate response: %w", err)
		}
		return &models.ChatResponse{
			ConversationID: req.ConversationID,
			Intent:         intent,
			ResponseText:   reply,
		}, nil
	}
}

// handleQuestion grounds the reply on retrieved passages when an index
// exists; an empty corpus is not an error and falls back to ungrounded
// generation.
func (s *DefaultAIService) handleQuestion(ctx context.Context, req models.ChatRequest, intent string) (*models.ChatResponse, error) {
	ragContext, ok, err := s.Retrieval.Answer(ctx, req.Text, 0)
	if err != nil {
		s.Logger.Warn("retrieval failed, answering without context", zap.Error(err))
		ok = false
	}

	var reply string
	if ok {
		reply, err = s.Generator.Generate(ctx, req.Text, "", ragContext)
	} else {
		reply, err = s.Generator.Generate(ctx, req.Text, "", "")
	}
	if err != nil {
		return nil, fmt.Errorf("generate response: %w", err)
	}

	return &models.ChatResponse{
		ConversationID: req.ConversationID,
		Intent:         intent,
		ResponseText:   reply,
	}, nil
}

// handleConfirmation resolves the yes/no sub-state. On acceptance the record
// is validated and persisted before the session resets; if either step
// fails, the session stays in awaiting-confirmation with its record intact
// so the user can retry without re-entering data.
func (s *DefaultAIService) handleConfirmation(ctx context.Context, req models.ChatRequest, conv *conversation.Conversation) (*models.ChatResponse, error) {
	resp := &models.ChatResponse{
		ConversationID: req.ConversationID,
		Intent:         conversation.IntentBooking,
	}

	switch conv.Flow.Confirm(req.Text) {
	case models.ConfirmAccepted:
		record := conv.Flow.Record()
		if ok, reason := s.Validator.ValidateRecord(record); !ok {
			resp.ResponseText = fmt.Sprintf(
				"❌ Sorry, there was an error saving your booking: %s\n\nPlease try again.", reason)
			return resp, nil
		}

		booking, err := s.Bookings.SaveBooking(ctx, record)
		if err != nil {
			s.Logger.Error("failed to persist booking", zap.Error(err))
			resp.ResponseText = "❌ Sorry, there was an error saving your booking. Please try again."
			return resp, nil
		}

		emailMsg, err := s.Notifier.SendBookingConfirmation(ctx, booking, record)
		if err != nil {
			s.Logger.Warn("confirmation email failed", zap.String("bookingID", booking.ID), zap.Error(err))
			emailMsg = "We could not send a confirmation email, but your booking is saved."
		}

		conv.Flow.Reset()
		conv.BookingMode = false

		resp.BookingID = booking.ID
		resp.ResponseText = fmt.Sprintf(`✅ Booking Confirmed!

Your appointment has been successfully booked!

Booking ID: #%s
Service: %s
Date: %s
Time: %s

%s

We look forward to seeing you! 💅`,
			booking.ID, booking.BookingType, booking.Date, booking.Time, emailMsg)
		return resp, nil

	case models.ConfirmRejected:
		conv.Flow.Reset()
		conv.BookingMode = false
		resp.ResponseText = "No problem! Let's start over. What would you like to change?"
		return resp, nil

	default:
		resp.ResponseText = "Please reply with 'yes' to confirm or 'no' to make changes."
		return resp, nil
	}
}

func (s *DefaultAIService) appendHistory(ctx context.Context, conversationID string, msgs ...models.Message) {
	if s.History == nil {
		return
	}
	if err := s.History.Append(ctx, conversationID, msgs...); err != nil {
		s.Logger.Warn("failed to record conversation history",
			zap.String("conversationID", conversationID), zap.Error(err))
	}
}
