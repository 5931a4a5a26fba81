package progress

// Achievement names. These must match the rows seeded by the database
// migration; unlocks are looked up by name.
const (
	AchievementFirstLogin       = "First Login"
	AchievementStreakWarrior    = "Streak Warrior"
	AchievementQuizWhiz         = "Quiz Whiz"
	AchievementExerciseChampion = "Exercise Champion"
	AchievementPerfectScore     = "Perfect Score"
	AchievementWordMaster       = "Word Master"
)

// AchievementStats is a snapshot of the counters the achievement
// conditions look at. Callers populate only the fields relevant to the
// event that just happened; zero values never trigger an unlock.
type AchievementStats struct {
	CurrentStreak      int
	ExamsCompleted     int
	ExercisesCompleted int
	PerfectScore       bool
	WordsLearned       int
}

// EligibleAchievements returns the names of every achievement whose
// condition the given stats satisfy. Conditions use exact thresholds
// (== rather than >=) for the counting achievements so that each is
// evaluated at most a handful of times per user; the unlock itself is
// idempotent regardless.
func EligibleAchievements(s AchievementStats) []string {
	var names []string
	if s.CurrentStreak == 7 {
		names = append(names, AchievementStreakWarrior)
	}
	if s.ExamsCompleted == 5 {
		names = append(names, AchievementQuizWhiz)
	}
	if s.ExercisesCompleted == 10 {
		names = append(names, AchievementExerciseChampion)
	}
	if s.PerfectScore {
		names = append(names, AchievementPerfectScore)
	}
	if s.WordsLearned == 50 {
		names = append(names, AchievementWordMaster)
	}
	return names
}
