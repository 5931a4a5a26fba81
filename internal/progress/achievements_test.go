package progress

import (
	"reflect"
	"testing"
)

func TestEligibleAchievements(t *testing.T) {
	tests := []struct {
		name  string
		stats AchievementStats
		want  []string
	}{
		{
			name:  "empty stats unlock nothing",
			stats: AchievementStats{},
			want:  nil,
		},
		{
			name:  "seven day streak",
			stats: AchievementStats{CurrentStreak: 7},
			want:  []string{AchievementStreakWarrior},
		},
		{
			name:  "eight day streak already unlocked",
			stats: AchievementStats{CurrentStreak: 8},
			want:  nil,
		},
		{
			name:  "fifth exam",
			stats: AchievementStats{ExamsCompleted: 5},
			want:  []string{AchievementQuizWhiz},
		},
		{
			name:  "tenth exercise",
			stats: AchievementStats{ExercisesCompleted: 10},
			want:  []string{AchievementExerciseChampion},
		},
		{
			name:  "perfect score",
			stats: AchievementStats{PerfectScore: true},
			want:  []string{AchievementPerfectScore},
		},
		{
			name:  "fifty words learned",
			stats: AchievementStats{WordsLearned: 50},
			want:  []string{AchievementWordMaster},
		},
		{
			name: "several at once",
			stats: AchievementStats{
				ExercisesCompleted: 10,
				PerfectScore:       true,
			},
			want: []string{AchievementExerciseChampion, AchievementPerfectScore},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EligibleAchievements(tt.stats)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("EligibleAchievements(%+v) = %v, want %v", tt.stats, got, tt.want)
			}
		})
	}
}
