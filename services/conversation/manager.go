package conversation

import "sync"

// Conversation bundles the slot-filling session for one conversation with
// the booking-mode flag the orchestration layer flips when a booking intent
// is detected. Callers must hold the lock while processing a message; a
// single conversation is processed one utterance at a time.
type Conversation struct {
	mu sync.Mutex

	Flow        *SlotFillingSession
	BookingMode bool
}

func (c *Conversation) Lock()   { c.mu.Lock() }
func (c *Conversation) Unlock() { c.mu.Unlock() }

// SessionManager owns the mapping from conversation ID to session state.
// Independent conversations proceed concurrently; each Conversation carries
// its own lock.
type SessionManager struct {
	mu        sync.Mutex
	extractor *FieldExtractor
	sessions  map[string]*Conversation
}

func NewSessionManager(extractor *FieldExtractor) *SessionManager {
	return &SessionManager{
		extractor: extractor,
		sessions:  make(map[string]*Conversation),
	}
}

// Get returns the conversation for the given ID, creating it on first use.
func (m *SessionManager) Get(conversationID string) *Conversation {
	m.mu.Lock()
	defer m.mu.Unlock()

	conv, ok := m.sessions[conversationID]
	if !ok {
		conv = &Conversation{Flow: NewSlotFillingSession(m.extractor)}
		m.sessions[conversationID] = conv
	}
	return conv
}

// Drop removes a conversation, discarding its state.
func (m *SessionManager) Drop(conversationID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, conversationID)
}
