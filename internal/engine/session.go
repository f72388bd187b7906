package engine

import (
	"sync"
	"time"
)

// PendingQuiz is a multiple-choice question awaiting the user's letter.
type PendingQuiz struct {
	ID          string
	Question    string // question plus rendered choices, as shown to the user
	Correct     string // correct letter, upper case
	Explanation string
	Lang        string // reply language the quiz was issued in
}

// PendingChallenge is a fill-the-gap exercise awaiting a one-word answer.
type PendingChallenge struct {
	ID          string
	Context     string
	Answer      string
	Explanation string
	Lang        string
}

// Session is the transient per-user memory. At most one of PendingQuiz and
// PendingChallenge is set at a time; the setters below enforce that.
type Session struct {
	PendingQuiz      *PendingQuiz
	PendingChallenge *PendingChallenge
	LastReply        string
	LastCallAt       time.Time
}

func (s *Session) setPendingQuiz(q *PendingQuiz) {
	s.PendingQuiz = q
	s.PendingChallenge = nil
}

func (s *Session) setPendingChallenge(c *PendingChallenge) {
	s.PendingChallenge = c
	s.PendingQuiz = nil
}

type userEntry struct {
	mu   sync.Mutex
	sess Session
}

// Store holds all user sessions in memory. Sessions are created lazily on
// first use and live until Delete or process exit; nothing is persisted.
// Mutations go through Update, which holds a per-user lock so two messages
// from the same user cannot race. The lock must never be held across a
// backend call.
type Store struct {
	mu    sync.Mutex
	users map[string]*userEntry
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{users: make(map[string]*userEntry)}
}

func (st *Store) entry(userID string) *userEntry {
	st.mu.Lock()
	defer st.mu.Unlock()
	e, ok := st.users[userID]
	if !ok {
		e = &userEntry{}
		st.users[userID] = e
	}
	return e
}

// Update runs fn with exclusive access to the user's session, creating it
// if needed. fn must not block on I/O.
func (st *Store) Update(userID string, fn func(s *Session)) {
	e := st.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.sess)
}

// Snapshot returns a copy of the user's session without creating one.
func (st *Store) Snapshot(userID string) (Session, bool) {
	st.mu.Lock()
	e, ok := st.users[userID]
	st.mu.Unlock()
	if !ok {
		return Session{}, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sess, true
}

// Delete removes the user's session entirely. Deleting an absent session is
// a no-op, so reset stays idempotent.
func (st *Store) Delete(userID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.users, userID)
}

// Len reports how many sessions are live (health/introspection only).
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.users)
}
