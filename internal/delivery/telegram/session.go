package telegram

import (
	"sync"

	"github.com/daniyarm/trivia-game-bot/internal/game"
)

// session holds the state of one chat's quiz round.
//
// The game inside is single-owner and not safe for concurrent use, but two
// goroutines can reach it: the update loop and the delayed-advance timer.
// All game calls therefore go through withGame, which serializes them.
type session struct {
	mu     sync.Mutex
	closed bool

	game       *game.Game
	playerName string

	// Option lists currently shown to the chat. Callback buttons carry
	// indexes into these slices, not the option text itself (callback
	// data is limited to 64 bytes). Both are written by the view during
	// game calls, so the session lock covers them too.
	categories []string
	answers    []string

	// Selections made so far while configuring a round.
	categoryName   string
	difficultyName string
	typeName       string
}

// withGame runs fn while holding the session's lock. Once the session is
// closed the call is dropped; a timer scheduled before /stop must not
// revive the abandoned round.
func (s *session) withGame(fn func(g *game.Game)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	fn(s.game)
}

// close marks the session dead. Only called from inside a game operation,
// so the session lock is already held.
func (s *session) close() {
	s.closed = true
}

// sessionStore provides in-memory storage for quiz sessions by chat ID.
type sessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		sessions: make(map[int64]*session),
	}
}

// Store saves a session for a given chat ID.
func (s *sessionStore) Store(chatID int64, sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[chatID] = sess
}

// Get retrieves the session for a given chat ID, or nil.
func (s *sessionStore) Get(chatID int64) *session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[chatID]
}

// Delete removes the session for a given chat ID.
func (s *sessionStore) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}
