package memory

import (
	"sync"
	"time"

	"luma-chat-be/pkg/llm"
	"luma-chat-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository holds conversation histories in a TTL cache. Sessions
// expire after the configured idle TTL and the turn list is capped, so the
// store stays bounded no matter how long the process runs.
type SessionRepository struct {
	mu       sync.Mutex
	cache    *cache.Cache
	maxTurns int
}

func NewSessionRepository(ttl time.Duration, maxTurns int) *SessionRepository {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	if maxTurns <= 0 {
		maxTurns = 40
	}
	// Purge expired sessions every 10 minutes
	c := cache.New(ttl, 10*time.Minute)
	return &SessionRepository{
		cache:    c,
		maxTurns: maxTurns,
	}
}

// History returns a copy of the session's turns, oldest first. A copy keeps
// callers from observing appends that race with their own prompt assembly.
func (r *SessionRepository) History(sessionID string) []llm.Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, found := r.get(sessionID)
	if !found {
		return nil
	}
	turns := make([]llm.Message, len(session.Turns))
	copy(turns, session.Turns)
	return turns
}

// AppendTurns atomically appends the user message and the assistant reply
// produced from it. Both land or neither does. When the cap is exceeded the
// oldest turns are dropped pairwise so the history always starts on a user
// turn.
func (r *SessionRepository) AppendTurns(sessionID string, userMessage, assistantReply string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, found := r.get(sessionID)
	if !found {
		session = &store.Session{ID: sessionID}
	}

	session.Turns = append(session.Turns,
		llm.Message{Role: "user", Content: userMessage},
		llm.Message{Role: "assistant", Content: assistantReply},
	)
	if len(session.Turns) > r.maxTurns {
		session.Turns = session.Turns[len(session.Turns)-r.maxTurns:]
	}

	r.cache.Set(sessionID, session, cache.DefaultExpiration)
}

// Delete removes a session outright.
func (r *SessionRepository) Delete(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Delete(sessionID)
}

func (r *SessionRepository) get(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), true
	}
	return nil, false
}
