package progress

import (
	"testing"
	"time"
)

func TestAdvanceStreak(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	lastWeek := now.AddDate(0, 0, -7)
	earlierToday := time.Date(2025, 6, 15, 2, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		current      int
		longest      int
		last         *time.Time
		wantCurrent  int
		wantLongest  int
		wantExtended bool
		wantReset    bool
	}{
		{
			name:        "first ever activity",
			last:        nil,
			wantCurrent: 1, wantLongest: 1, wantReset: true,
		},
		{
			name:    "consecutive day extends",
			current: 3, longest: 5, last: &yesterday,
			wantCurrent: 4, wantLongest: 5, wantExtended: true,
		},
		{
			name:    "extension sets new longest",
			current: 5, longest: 5, last: &yesterday,
			wantCurrent: 6, wantLongest: 6, wantExtended: true,
		},
		{
			name:    "same day is a no-op",
			current: 3, longest: 5, last: &earlierToday,
			wantCurrent: 3, wantLongest: 5,
		},
		{
			name:    "gap resets to one",
			current: 9, longest: 9, last: &lastWeek,
			wantCurrent: 1, wantLongest: 9, wantReset: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdvanceStreak(tt.current, tt.longest, tt.last, now)
			if got.Current != tt.wantCurrent {
				t.Errorf("Current = %d, want %d", got.Current, tt.wantCurrent)
			}
			if got.Longest != tt.wantLongest {
				t.Errorf("Longest = %d, want %d", got.Longest, tt.wantLongest)
			}
			if got.Extended != tt.wantExtended {
				t.Errorf("Extended = %v, want %v", got.Extended, tt.wantExtended)
			}
			if got.Reset != tt.wantReset {
				t.Errorf("Reset = %v, want %v", got.Reset, tt.wantReset)
			}
		})
	}
}

func TestAdvanceStreakCrossesMidnight(t *testing.T) {
	// 23:59 yesterday followed by 00:01 today counts as consecutive days.
	last := time.Date(2025, 6, 14, 23, 59, 0, 0, time.UTC)
	now := time.Date(2025, 6, 15, 0, 1, 0, 0, time.UTC)

	got := AdvanceStreak(1, 1, &last, now)
	if !got.Extended || got.Current != 2 {
		t.Errorf("expected extension to 2, got %+v", got)
	}
}
