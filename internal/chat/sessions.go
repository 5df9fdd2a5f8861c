package chat

import (
	"fmt"
	"sync"
	"time"

	"github.com/matiasbenary/mcp-meilisearch/pkg/llm"
)

const defaultMaxSessions = 100

// SessionStore keeps conversation histories in memory, bounded by a fixed
// capacity. When full, the oldest-inserted thread is evicted regardless of
// recent activity. Histories are never expired by time.
type SessionStore struct {
	mu       sync.Mutex
	max      int
	sessions map[string][]llm.Message
	order    []string
}

// NewSessionStore creates a store holding at most max threads.
func NewSessionStore(max int) *SessionStore {
	if max <= 0 {
		max = defaultMaxSessions
	}
	return &SessionStore{
		max:      max,
		sessions: make(map[string][]llm.Message),
	}
}

// NewThreadID mints an identifier for a fresh conversation.
func NewThreadID() string {
	return fmt.Sprintf("thread_%d", time.Now().UnixMilli())
}

// Get returns a copy of the thread's history. A missing thread yields an
// empty history; callers cannot distinguish a new thread from an evicted
// one.
func (s *SessionStore) Get(threadID string) []llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := s.sessions[threadID]
	out := make([]llm.Message, len(history))
	copy(out, history)
	return out
}

// Put replaces the thread's history, evicting the oldest-inserted thread
// when the store is at capacity and the thread is new.
func (s *SessionStore) Put(threadID string, history []llm.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[threadID]; !exists {
		if len(s.order) >= s.max {
			oldest := s.order[0]
			s.order = s.order[1:]
			delete(s.sessions, oldest)
		}
		s.order = append(s.order, threadID)
	}
	s.sessions[threadID] = history
}

// Len reports how many threads are currently stored.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
