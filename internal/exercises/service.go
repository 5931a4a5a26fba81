package exercises

import (
	"database/sql"
	"errors"
	"log"
	"math/rand"
	"time"

	"github.com/english-learn/backend/internal/database"
	"github.com/english-learn/backend/internal/metrics"
	"github.com/english-learn/backend/internal/models"
	"github.com/english-learn/backend/internal/progress"
)

var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrExamNotFound     = errors.New("exam not found")
)

type Service struct {
	store    *Store
	progress *progress.Service
	sessions *SessionManager
}

func NewService(store *Store, progressSvc *progress.Service) *Service {
	s := &Service{
		store:    store,
		progress: progressSvc,
		sessions: NewSessionManager(),
	}
	s.sessions.OnExpire = s.onExamExpired
	return s
}

// ── Exercises ──

func (s *Service) ListExerciseTypes() ([]models.ExerciseType, error) {
	return s.store.ListExerciseTypes()
}

func (s *Service) ListExercises(typeKey string, difficultyID int64) ([]models.Exercise, error) {
	return s.store.ListExercises(typeKey, difficultyID)
}

// GetExercise returns the exercise with its answer key stripped. The
// client never sees which option is correct or what the expected text
// is; grading happens server side.
func (s *Service) GetExercise(id int64) (*models.Exercise, error) {
	var e *models.Exercise
	err := database.RetryRead(func() error {
		var err error
		e, err = s.store.GetExercise(id)
		return err
	})
	if err == sql.ErrNoRows {
		return nil, ErrExerciseNotFound
	}
	if err != nil {
		return nil, err
	}

	sanitizeExercise(e)
	return e, nil
}

// sanitizeExercise strips the answer key from an exercise before it
// goes to the client. Matching questions are rewritten into their
// display form: terms keep their pair ids, definitions become a
// shuffled id-less list, and the pairing never leaves the server.
func sanitizeExercise(e *models.Exercise) {
	for i := range e.Questions {
		q := &e.Questions[i]
		q.Answer = ""
		for j := range q.Options {
			q.Options[j].IsCorrect = false
		}
		if len(q.Pairs) > 0 {
			q.Terms = make([]models.MatchItem, len(q.Pairs))
			q.Definitions = make([]string, len(q.Pairs))
			for j, p := range q.Pairs {
				q.Terms[j] = models.MatchItem{ID: p.ID, Text: p.Term}
				q.Definitions[j] = p.Definition
			}
			rand.Shuffle(len(q.Definitions), func(a, b int) {
				q.Definitions[a], q.Definitions[b] = q.Definitions[b], q.Definitions[a]
			})
			q.Pairs = nil
		}
	}
}

// SubmitExercise grades a submission, records the result, and applies
// the gamification side effects: points, streak, and achievements.
func (s *Service) SubmitExercise(userID, exerciseID int64, req models.SubmitExerciseRequest) (*models.SubmitExerciseResponse, error) {
	e, err := s.store.GetExercise(exerciseID)
	if err == sql.ErrNoRows {
		return nil, ErrExerciseNotFound
	}
	if err != nil {
		return nil, err
	}

	score, total := ScoreExercise(e.Questions, req)

	if _, err := s.store.SaveExerciseResult(userID, exerciseID, score, total); err != nil {
		return nil, err
	}
	metrics.ExercisesSubmittedTotal.Inc()

	points := progress.ExercisePoints(score)
	if points > 0 {
		if _, err := s.progress.AwardPoints(userID, points); err != nil {
			return nil, err
		}
	}

	resp := &models.SubmitExerciseResponse{
		Score:                score,
		Total:                total,
		PointsAwarded:        int(points),
		AchievementsUnlocked: []string{},
	}

	if streak, err := s.progress.RecordActivity(userID, time.Now()); err != nil {
		log.Printf("[exercises] failed to record activity for user %d: %v", userID, err)
	} else {
		resp.AchievementsUnlocked = append(resp.AchievementsUnlocked, streak.AchievementsUnlocked...)
	}

	completed, err := s.progress.CountExercises(userID)
	if err != nil {
		log.Printf("[exercises] failed to count exercises for user %d: %v", userID, err)
		completed = 0
	}
	unlocked := s.progress.CheckAndUnlock(userID, progress.AchievementStats{
		ExercisesCompleted: completed,
		PerfectScore:       total > 0 && score == total,
	})
	resp.AchievementsUnlocked = append(resp.AchievementsUnlocked, unlocked...)

	return resp, nil
}

// ── Exams ──

func (s *Service) ListExams() ([]models.Exam, error) {
	return s.store.ListExams()
}

// GetExam returns the exam with its answer key stripped.
func (s *Service) GetExam(id int64) (*models.Exam, error) {
	var e *models.Exam
	err := database.RetryRead(func() error {
		var err error
		e, err = s.store.GetExam(id)
		return err
	})
	if err == sql.ErrNoRows {
		return nil, ErrExamNotFound
	}
	if err != nil {
		return nil, err
	}

	for i := range e.Questions {
		q := &e.Questions[i]
		if q.Type == models.ExamFillInBlanks {
			// Fill-in options only hold the answer key.
			q.Options = nil
			continue
		}
		for j := range q.Options {
			q.Options[j].IsCorrect = false
		}
	}
	return e, nil
}

// StartExam opens a timed session for the exam. The clock starts now;
// when it runs out the attempt is graded with whatever answers arrived.
func (s *Service) StartExam(userID, examID int64) (*models.ExamSessionResponse, error) {
	e, err := s.store.GetExam(examID)
	if err == sql.ErrNoRows {
		return nil, ErrExamNotFound
	}
	if err != nil {
		return nil, err
	}

	limit := time.Duration(e.TimeLimit) * time.Minute
	session, err := s.sessions.Start(userID, examID, limit)
	if err != nil {
		return nil, err
	}

	log.Printf("[exercises] user %d started exam %d, session %s", userID, examID, session.ID)

	return &models.ExamSessionResponse{
		SessionID:        session.ID,
		ExamID:           examID,
		TimeLimitSeconds: int(limit / time.Second),
		DeadlineUnix:     session.Deadline.Unix(),
	}, nil
}

func (s *Service) AnswerExam(sessionID string, userID int64, req models.ExamAnswerRequest) error {
	return s.sessions.RecordAnswer(sessionID, userID, req.QuestionID, req.Answer)
}

// SubmitExam closes the session and grades it.
func (s *Service) SubmitExam(sessionID string, userID int64) (*models.SubmitExamResponse, error) {
	examID, answers, elapsed, err := s.sessions.Finish(sessionID, userID)
	if err != nil {
		return nil, err
	}
	return s.gradeExam(userID, examID, answers, elapsed, false)
}

func (s *Service) onExamExpired(e ExpiredSession) {
	resp, err := s.gradeExam(e.UserID, e.ExamID, e.Answers, time.Since(e.StartedAt), true)
	if err != nil {
		log.Printf("[exercises] failed to auto-submit exam %d for user %d: %v", e.ExamID, e.UserID, err)
		return
	}
	log.Printf("[exercises] auto-submitted exam %d for user %d: %d/%d",
		e.ExamID, e.UserID, resp.Score, resp.TotalPoints)
}

// gradeExam is the single grading path for both explicit submits and
// deadline auto-submits.
func (s *Service) gradeExam(userID, examID int64, answers map[int64]string, elapsed time.Duration, auto bool) (*models.SubmitExamResponse, error) {
	e, err := s.store.GetExam(examID)
	if err != nil {
		return nil, err
	}

	score, totalPoints := ScoreExam(e.Questions, answers)
	timeTaken := int(elapsed / time.Second)

	if _, err := s.store.SaveExamResult(userID, examID, score, totalPoints, timeTaken); err != nil {
		return nil, err
	}
	kind := "manual"
	if auto {
		kind = "auto"
	}
	metrics.ExamsSubmittedTotal.WithLabelValues(kind).Inc()

	points := progress.ExamPoints(score, totalPoints)
	if points > 0 {
		if _, err := s.progress.AwardPoints(userID, points); err != nil {
			return nil, err
		}
	}

	resp := &models.SubmitExamResponse{
		Score:                score,
		TotalPoints:          totalPoints,
		TimeTaken:            timeTaken,
		PointsAwarded:        int(points),
		AutoSubmitted:        auto,
		AchievementsUnlocked: []string{},
	}

	if streak, err := s.progress.RecordActivity(userID, time.Now()); err != nil {
		log.Printf("[exercises] failed to record activity for user %d: %v", userID, err)
	} else {
		resp.AchievementsUnlocked = append(resp.AchievementsUnlocked, streak.AchievementsUnlocked...)
	}

	completed, err := s.progress.CountExams(userID)
	if err != nil {
		log.Printf("[exercises] failed to count exams for user %d: %v", userID, err)
		completed = 0
	}
	unlocked := s.progress.CheckAndUnlock(userID, progress.AchievementStats{
		ExamsCompleted: completed,
		PerfectScore:   totalPoints > 0 && score == totalPoints,
	})
	resp.AchievementsUnlocked = append(resp.AchievementsUnlocked, unlocked...)

	return resp, nil
}

// ── Results ──

func (s *Service) RecentExerciseResults(userID int64, limit int) ([]models.ExerciseResult, error) {
	return s.store.RecentExerciseResults(userID, limit)
}

func (s *Service) RecentExamResults(userID int64, limit int) ([]models.ExamResult, error) {
	return s.store.RecentExamResults(userID, limit)
}
