package progress

import (
	"testing"
	"time"

	"github.com/english-learn/backend/internal/models"
)

// fakeRepo keeps the gamification state in maps so service behavior can
// be exercised without a database. UnlockAchievement mirrors the
// production semantics: only the first call for a name reports fresh.
type fakeRepo struct {
	points    map[int64]int64
	unlocked  map[string]bool
	addCalls  []int64
	catalog   map[string]*models.Achievement
	wordCount int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		points:   map[int64]int64{},
		unlocked: map[string]bool{},
		catalog: map[string]*models.Achievement{
			AchievementStreakWarrior: {ID: 2, Name: AchievementStreakWarrior, Points: 50},
			AchievementFirstLogin:    {ID: 1, Name: AchievementFirstLogin, Points: 10},
		},
	}
}

func (f *fakeRepo) GetOrCreatePoints(userID int64) (*models.UserPoints, error) {
	return &models.UserPoints{UserID: userID, TotalPoints: f.points[userID]}, nil
}

func (f *fakeRepo) AddPoints(userID, delta int64) (*models.UserPoints, error) {
	f.points[userID] += delta
	f.addCalls = append(f.addCalls, delta)
	return &models.UserPoints{UserID: userID, TotalPoints: f.points[userID]}, nil
}

func (f *fakeRepo) GetOrCreateStreak(userID int64) (*models.UserStreak, error) {
	return &models.UserStreak{UserID: userID}, nil
}

func (f *fakeRepo) AdvanceStreak(userID int64, now time.Time) (*models.UserStreak, StreakUpdate, error) {
	return &models.UserStreak{UserID: userID, CurrentStreak: 1, LongestStreak: 1}, StreakUpdate{Current: 1, Longest: 1, Extended: true}, nil
}

func (f *fakeRepo) GetAllAchievements() ([]models.Achievement, error) { return nil, nil }

func (f *fakeRepo) GetUserAchievements(userID int64) ([]models.UserAchievement, error) {
	return nil, nil
}

func (f *fakeRepo) UnlockAchievement(userID int64, name string) (bool, *models.Achievement, error) {
	a := f.catalog[name]
	if f.unlocked[name] {
		return false, a, nil
	}
	f.unlocked[name] = true
	return true, a, nil
}

func (f *fakeRepo) CountExerciseResults(userID int64) (int, error) { return 0, nil }
func (f *fakeRepo) CountExamResults(userID int64) (int, error)     { return 0, nil }
func (f *fakeRepo) CountWordsLearned(userID int64) (int, error)    { return f.wordCount, nil }

func (f *fakeRepo) BumpMastery(userID, contentItemID int64) (int, error) { return 1, nil }

func (f *fakeRepo) GetUserProgress(userID int64) ([]models.UserProgress, error) { return nil, nil }

type fakeNotifier struct {
	events []string
}

func (n *fakeNotifier) Publish(userID int64, eventType string, payload interface{}) {
	n.events = append(n.events, eventType)
}

func countEvents(events []string, eventType string) int {
	n := 0
	for _, e := range events {
		if e == eventType {
			n++
		}
	}
	return n
}

func TestCheckAndUnlockIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	svc := NewService(repo, notifier)

	stats := AchievementStats{CurrentStreak: 7}

	first := svc.CheckAndUnlock(1, stats)
	if len(first) != 1 || first[0] != AchievementStreakWarrior {
		t.Fatalf("first check unlocked %v, want [%q]", first, AchievementStreakWarrior)
	}

	second := svc.CheckAndUnlock(1, stats)
	if len(second) != 0 {
		t.Errorf("second check unlocked %v, want none", second)
	}

	if got := countEvents(notifier.events, EventAchievementUnlocked); got != 1 {
		t.Errorf("achievement events published = %d, want 1", got)
	}
	if got := repo.points[1]; got != 50 {
		t.Errorf("total points after double check = %d, want the single 50 bonus", got)
	}
	if len(repo.addCalls) != 1 {
		t.Errorf("AddPoints called %d times, want 1", len(repo.addCalls))
	}
}

func TestOnSignupSeedsPointsAndFirstLogin(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	svc := NewService(repo, notifier)

	if err := svc.OnSignup(7); err != nil {
		t.Fatalf("OnSignup: %v", err)
	}

	// Signup seed plus the First Login bonus.
	if got := repo.points[7]; got != SignupPoints+10 {
		t.Errorf("points after signup = %d, want %d", got, SignupPoints+10)
	}
	if !repo.unlocked[AchievementFirstLogin] {
		t.Error("First Login was not unlocked")
	}

	// A repeated pass must not re-announce the unlock.
	if err := svc.OnSignup(7); err != nil {
		t.Fatalf("second OnSignup: %v", err)
	}
	if got := countEvents(notifier.events, EventAchievementUnlocked); got != 1 {
		t.Errorf("achievement events published = %d, want 1", got)
	}
}
