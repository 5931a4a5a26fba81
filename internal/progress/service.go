package progress

import (
	"fmt"
	"log"
	"time"

	"github.com/english-learn/backend/internal/metrics"
	"github.com/english-learn/backend/internal/models"
)

// Notifier pushes realtime events toward connected clients. The service
// only needs a publish hook; the transport lives elsewhere.
type Notifier interface {
	Publish(userID int64, eventType string, payload interface{})
}

// Event types published by the service.
const (
	EventPointsUpdated       = "points_updated"
	EventStreakUpdated       = "streak_updated"
	EventAchievementUnlocked = "achievement_unlocked"
)

// Repository is the slice of the store the service depends on. The
// production implementation is *Store; tests substitute fakes.
type Repository interface {
	GetOrCreatePoints(userID int64) (*models.UserPoints, error)
	AddPoints(userID, delta int64) (*models.UserPoints, error)
	GetOrCreateStreak(userID int64) (*models.UserStreak, error)
	AdvanceStreak(userID int64, now time.Time) (*models.UserStreak, StreakUpdate, error)
	GetAllAchievements() ([]models.Achievement, error)
	GetUserAchievements(userID int64) ([]models.UserAchievement, error)
	UnlockAchievement(userID int64, name string) (bool, *models.Achievement, error)
	CountExerciseResults(userID int64) (int, error)
	CountExamResults(userID int64) (int, error)
	CountWordsLearned(userID int64) (int, error)
	BumpMastery(userID, contentItemID int64) (int, error)
	GetUserProgress(userID int64) ([]models.UserProgress, error)
}

type Service struct {
	store    Repository
	notifier Notifier
}

func NewService(store Repository, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier}
}

// OnSignup seeds the new account's gamification state: the starting
// point balance and the First Login achievement.
func (s *Service) OnSignup(userID int64) error {
	if _, err := s.store.AddPoints(userID, SignupPoints); err != nil {
		return fmt.Errorf("failed to seed points: %w", err)
	}
	if _, err := s.store.GetOrCreateStreak(userID); err != nil {
		return fmt.Errorf("failed to seed streak: %w", err)
	}
	if _, err := s.unlock(userID, AchievementFirstLogin); err != nil {
		return fmt.Errorf("failed to award first login: %w", err)
	}
	return nil
}

// RecordActivity applies today's activity to the user's streak and
// checks the streak achievement.
func (s *Service) RecordActivity(userID int64, now time.Time) (*models.StreakResponse, error) {
	st, update, err := s.store.AdvanceStreak(userID, now)
	if err != nil {
		return nil, err
	}

	resp := &models.StreakResponse{
		CurrentStreak:        st.CurrentStreak,
		LongestStreak:        st.LongestStreak,
		AchievementsUnlocked: []string{},
	}
	if st.LastActivityDate != nil {
		resp.LastActivityDate = st.LastActivityDate.Format("2006-01-02")
	}

	if update.Extended || update.Reset {
		s.publish(userID, EventStreakUpdated, st)
	}

	unlocked := s.CheckAndUnlock(userID, AchievementStats{CurrentStreak: st.CurrentStreak})
	resp.AchievementsUnlocked = append(resp.AchievementsUnlocked, unlocked...)

	return resp, nil
}

// AwardPoints adds points to the user's balance and publishes the new
// total.
func (s *Service) AwardPoints(userID, delta int64) (*models.UserPoints, error) {
	p, err := s.store.AddPoints(userID, delta)
	if err != nil {
		return nil, err
	}
	s.publish(userID, EventPointsUpdated, p)
	return p, nil
}

// MarkWordLearned bumps the item's mastery level, awards the fixed
// point bonus, and checks the word-count achievement.
func (s *Service) MarkWordLearned(userID, contentItemID int64) (*models.MarkLearnedResponse, error) {
	level, err := s.store.BumpMastery(userID, contentItemID)
	if err != nil {
		return nil, err
	}

	if _, err := s.AwardPoints(userID, MarkLearnedPoints); err != nil {
		return nil, err
	}

	resp := &models.MarkLearnedResponse{
		MasteryLevel:         level,
		PointsAwarded:        MarkLearnedPoints,
		AchievementsUnlocked: []string{},
	}

	learned, err := s.store.CountWordsLearned(userID)
	if err != nil {
		log.Printf("[progress] failed to count words learned for user %d: %v", userID, err)
		return resp, nil
	}
	unlocked := s.CheckAndUnlock(userID, AchievementStats{WordsLearned: learned})
	resp.AchievementsUnlocked = append(resp.AchievementsUnlocked, unlocked...)

	return resp, nil
}

// CheckAndUnlock evaluates the achievement conditions against the given
// stats and unlocks whatever qualifies. Returns the names that were
// newly unlocked. Unlock failures are logged rather than propagated so
// a flaky achievement write never fails the user's main action.
func (s *Service) CheckAndUnlock(userID int64, stats AchievementStats) []string {
	var names []string
	for _, name := range EligibleAchievements(stats) {
		fresh, err := s.unlock(userID, name)
		if err != nil {
			log.Printf("[progress] failed to unlock %q for user %d: %v", name, userID, err)
			continue
		}
		if fresh {
			names = append(names, name)
		}
	}
	return names
}

// unlock awards a single achievement and its point bonus. Returns true
// only for the first unlock.
func (s *Service) unlock(userID int64, name string) (bool, error) {
	fresh, a, err := s.store.UnlockAchievement(userID, name)
	if err != nil {
		return false, err
	}
	if !fresh {
		return false, nil
	}

	log.Printf("[progress] user %d unlocked achievement %q", userID, name)
	metrics.AchievementsUnlockedTotal.Inc()
	s.publish(userID, EventAchievementUnlocked, a)

	if a.Points > 0 {
		if _, err := s.AwardPoints(userID, int64(a.Points)); err != nil {
			log.Printf("[progress] failed to award bonus for %q: %v", name, err)
		}
	}
	return true, nil
}

func (s *Service) GetPoints(userID int64) (*models.UserPoints, error) {
	return s.store.GetOrCreatePoints(userID)
}

func (s *Service) GetStreak(userID int64) (*models.UserStreak, error) {
	return s.store.GetOrCreateStreak(userID)
}

func (s *Service) GetAchievements(userID int64) ([]models.UserAchievement, error) {
	return s.store.GetUserAchievements(userID)
}

func (s *Service) GetAllAchievements() ([]models.Achievement, error) {
	return s.store.GetAllAchievements()
}

func (s *Service) GetProgress(userID int64) ([]models.UserProgress, error) {
	return s.store.GetUserProgress(userID)
}

func (s *Service) CountExercises(userID int64) (int, error) {
	return s.store.CountExerciseResults(userID)
}

func (s *Service) CountExams(userID int64) (int, error) {
	return s.store.CountExamResults(userID)
}

func (s *Service) publish(userID int64, eventType string, payload interface{}) {
	if s.notifier != nil {
		s.notifier.Publish(userID, eventType, payload)
	}
}
