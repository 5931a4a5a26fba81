package progress

import "testing"

func TestLevel(t *testing.T) {
	tests := []struct {
		name   string
		points int64
		want   int
	}{
		{"zero points", 0, 1},
		{"just under level two", 99, 1},
		{"exactly level two", 100, 2},
		{"mid level three", 250, 3},
		{"large total", 12345, 124},
		{"negative clamps to one", -50, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Level(tt.points); got != tt.want {
				t.Errorf("Level(%d) = %d, want %d", tt.points, got, tt.want)
			}
		})
	}
}

func TestPointsToNextLevel(t *testing.T) {
	tests := []struct {
		points int64
		want   int64
	}{
		{0, 100},
		{99, 1},
		{100, 100},
		{250, 50},
	}

	for _, tt := range tests {
		if got := PointsToNextLevel(tt.points); got != tt.want {
			t.Errorf("PointsToNextLevel(%d) = %d, want %d", tt.points, got, tt.want)
		}
	}
}

func TestLevelProgress(t *testing.T) {
	if got := LevelProgress(0); got != 0 {
		t.Errorf("LevelProgress(0) = %f, want 0", got)
	}
	if got := LevelProgress(250); got != 0.5 {
		t.Errorf("LevelProgress(250) = %f, want 0.5", got)
	}
}

func TestExercisePoints(t *testing.T) {
	tests := []struct {
		score int
		want  int64
	}{
		{0, 0},
		{3, 30},
		{10, 100},
		{-1, 0},
	}

	for _, tt := range tests {
		if got := ExercisePoints(tt.score); got != tt.want {
			t.Errorf("ExercisePoints(%d) = %d, want %d", tt.score, got, tt.want)
		}
	}
}

func TestExamPoints(t *testing.T) {
	tests := []struct {
		name         string
		score, total int
		want         int64
	}{
		{"perfect", 50, 50, 100},
		{"zero", 0, 50, 0},
		{"73 percent rounds to 70", 73, 100, 70},
		{"75 percent rounds to 80", 75, 100, 80},
		{"half", 25, 50, 50},
		{"zero total", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExamPoints(tt.score, tt.total); got != tt.want {
				t.Errorf("ExamPoints(%d, %d) = %d, want %d", tt.score, tt.total, got, tt.want)
			}
		})
	}
}
