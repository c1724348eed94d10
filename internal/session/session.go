// Package session keeps the transient per-user answers of the current conversation.
package session

import (
	"sync"

	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/models"
)

// Answers holds the qualification answers given so far. Empty means not answered.
type Answers struct {
	Geography    string
	ObjectType   string
	Condition    string
	Metrage      *int
	RepairFormat string
	KeysReady    string
	Deadline     string
	MainFear     string
	Budget       string
}

// Session is the in-memory conversation state of one user
type Session struct {
	UserID             int64
	State              string
	Source             string
	SurveyCompleted    bool
	WaitingForQuestion bool
	Answers            Answers
}

// Reset starts a fresh conversation keeping only the completed flag and the given source.
func (s *Session) Reset(source string) {
	if source == "" {
		source = models.DefaultSource
	}
	*s = Session{
		UserID:          s.UserID,
		Source:          source,
		SurveyCompleted: s.SurveyCompleted,
	}
}

type entry struct {
	mu      sync.Mutex
	session Session
}

// Store holds sessions in memory. Work for one user is serialized.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*entry
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]*entry)}
}

func (st *Store) entry(userID int64) *entry {
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.sessions[userID]
	if !ok {
		e = &entry{session: Session{UserID: userID, Source: models.DefaultSource}}
		st.sessions[userID] = e
	}
	return e
}

// With runs fn with exclusive access to the user's session.
// Changes fn makes to the session are kept even when it returns an error.
func (st *Store) With(userID int64, fn func(*Session) error) error {
	e := st.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(&e.session)
}

// Get returns a copy of the user's session
func (st *Store) Get(userID int64) Session {
	e := st.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// Len reports how many users have a session
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
