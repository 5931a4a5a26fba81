package exercises

import (
	"sync"
	"testing"
	"time"
)

func TestSessionRecordAndFinish(t *testing.T) {
	m := NewSessionManager()

	s, err := m.Start(1, 42, time.Minute)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := m.RecordAnswer(s.ID, 1, 10, "101"); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	if err := m.RecordAnswer(s.ID, 1, 11, "first"); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	// Overwrites are allowed.
	if err := m.RecordAnswer(s.ID, 1, 11, "second"); err != nil {
		t.Fatalf("RecordAnswer overwrite: %v", err)
	}

	examID, answers, elapsed, err := m.Finish(s.ID, 1)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if examID != 42 {
		t.Errorf("examID = %d, want 42", examID)
	}
	if answers[10] != "101" || answers[11] != "second" {
		t.Errorf("unexpected answers: %v", answers)
	}
	if elapsed < 0 || elapsed > time.Minute {
		t.Errorf("implausible elapsed time %v", elapsed)
	}

	if m.Active() != 0 {
		t.Errorf("expected no active sessions, got %d", m.Active())
	}
}

func TestSessionWrongUser(t *testing.T) {
	m := NewSessionManager()

	s, err := m.Start(1, 42, time.Minute)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := m.RecordAnswer(s.ID, 2, 10, "x"); err != ErrSessionNotFound {
		t.Errorf("RecordAnswer as other user: got %v, want ErrSessionNotFound", err)
	}
	if _, _, _, err := m.Finish(s.ID, 2); err != ErrSessionNotFound {
		t.Errorf("Finish as other user: got %v, want ErrSessionNotFound", err)
	}
}

func TestSessionDoubleFinish(t *testing.T) {
	m := NewSessionManager()

	s, err := m.Start(1, 42, time.Minute)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	if _, _, _, err := m.Finish(s.ID, 1); err != nil {
		t.Fatalf("first Finish: %v", err)
	}
	if _, _, _, err := m.Finish(s.ID, 1); err != ErrSessionNotFound {
		t.Errorf("second Finish: got %v, want ErrSessionNotFound", err)
	}
}

func TestSessionExpires(t *testing.T) {
	m := NewSessionManager()

	var mu sync.Mutex
	var expired *ExpiredSession
	done := make(chan struct{})
	m.OnExpire = func(e ExpiredSession) {
		mu.Lock()
		expired = &e
		mu.Unlock()
		close(done)
	}

	s, err := m.Start(7, 42, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := m.RecordAnswer(s.ID, 7, 10, "late answer"); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("session never expired")
	}

	mu.Lock()
	defer mu.Unlock()
	if expired.UserID != 7 || expired.ExamID != 42 {
		t.Errorf("unexpected snapshot: %+v", expired)
	}
	if expired.Answers[10] != "late answer" {
		t.Errorf("answers not carried into expiry: %v", expired.Answers)
	}

	// The expired session is gone; a late submit finds nothing.
	if _, _, _, err := m.Finish(s.ID, 7); err != ErrSessionNotFound {
		t.Errorf("Finish after expiry: got %v, want ErrSessionNotFound", err)
	}
}

func TestSessionFinishBeatsTimer(t *testing.T) {
	m := NewSessionManager()

	fired := make(chan struct{}, 1)
	m.OnExpire = func(ExpiredSession) { fired <- struct{}{} }

	s, err := m.Start(1, 42, 30*time.Millisecond)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, _, _, err := m.Finish(s.ID, 1); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	select {
	case <-fired:
		t.Error("timer fired after explicit submit")
	case <-time.After(100 * time.Millisecond):
	}
}
