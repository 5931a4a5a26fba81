package exercises

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"
)

var (
	ErrSessionNotFound = errors.New("exam session not found")
	ErrSessionFinished = errors.New("exam session already finished")
)

// Session is one in-flight timed exam attempt. Answers accumulate as
// the client sends them; the attempt ends either by an explicit submit
// or by the deadline timer firing.
type Session struct {
	ID        string
	UserID    int64
	ExamID    int64
	StartedAt time.Time
	Deadline  time.Time

	answers map[int64]string
	timer   *time.Timer
	done    bool
}

// SessionManager tracks active exam sessions in memory. A single mutex
// guards the map and every session's state; the per-session work under
// the lock is map writes only, so contention stays low.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	// OnExpire runs in the timer goroutine when a session hits its
	// deadline without an explicit submit. The session is already
	// removed from the manager when it fires.
	OnExpire func(expired ExpiredSession)
}

// ExpiredSession is the snapshot handed to OnExpire.
type ExpiredSession struct {
	ID        string
	UserID    int64
	ExamID    int64
	StartedAt time.Time
	Answers   map[int64]string
}

func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]*Session)}
}

// Start opens a session for the given exam. Any previous session the
// user had for the same exam keeps running; the client decides which to
// continue.
func (m *SessionManager) Start(userID, examID int64, limit time.Duration) (*Session, error) {
	id, err := newSessionID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s := &Session{
		ID:        id,
		UserID:    userID,
		ExamID:    examID,
		StartedAt: now,
		Deadline:  now.Add(limit),
		answers:   make(map[int64]string),
	}

	m.mu.Lock()
	m.sessions[id] = s
	s.timer = time.AfterFunc(limit, func() { m.expire(id) })
	m.mu.Unlock()

	return s, nil
}

// RecordAnswer stores one answer on an active session. Answers for the
// same question overwrite earlier ones.
func (m *SessionManager) RecordAnswer(sessionID string, userID, questionID int64, answer string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok || s.UserID != userID {
		return ErrSessionNotFound
	}
	if s.done {
		return ErrSessionFinished
	}

	s.answers[questionID] = answer
	return nil
}

// Finish closes a session by explicit submit. The deadline timer is
// cancelled so the auto-submit path cannot fire afterwards. Returns the
// exam id, the accumulated answers, and the elapsed time.
func (m *SessionManager) Finish(sessionID string, userID int64) (int64, map[int64]string, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok || s.UserID != userID {
		return 0, nil, 0, ErrSessionNotFound
	}
	if s.done {
		return 0, nil, 0, ErrSessionFinished
	}

	s.done = true
	s.timer.Stop()
	delete(m.sessions, sessionID)

	return s.ExamID, s.answers, time.Since(s.StartedAt), nil
}

// expire is the timer path. If Finish won the race and already removed
// the session this is a no-op.
func (m *SessionManager) expire(sessionID string) {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	if !ok || s.done {
		m.mu.Unlock()
		return
	}
	s.done = true
	delete(m.sessions, sessionID)

	snapshot := ExpiredSession{
		ID:        s.ID,
		UserID:    s.UserID,
		ExamID:    s.ExamID,
		StartedAt: s.StartedAt,
		Answers:   s.answers,
	}
	onExpire := m.OnExpire
	m.mu.Unlock()

	if onExpire != nil {
		onExpire(snapshot)
	}
}

// Active reports how many sessions are currently running.
func (m *SessionManager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func newSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
