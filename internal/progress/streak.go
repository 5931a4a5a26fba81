package progress

import "time"

// StreakUpdate is the result of applying one day of activity to a streak.
type StreakUpdate struct {
	Current  int
	Longest  int
	Extended bool
	Reset    bool
}

// AdvanceStreak applies an activity at `now` to a streak whose last
// activity was on `last` (nil for a brand-new streak). Days are compared
// as UTC calendar dates so a user's streak does not depend on which
// server handled the request.
//
// Same day: no change. Previous day: current streak grows by one.
// Any older date (or no prior activity): streak resets to 1. The longest
// streak only ever grows.
func AdvanceStreak(current, longest int, last *time.Time, now time.Time) StreakUpdate {
	today := utcDate(now)

	if last != nil {
		switch utcDate(*last) {
		case today:
			return StreakUpdate{Current: current, Longest: longest}
		case today.AddDate(0, 0, -1):
			next := current + 1
			return StreakUpdate{
				Current:  next,
				Longest:  maxInt(longest, next),
				Extended: true,
			}
		}
	}

	return StreakUpdate{
		Current: 1,
		Longest: maxInt(longest, 1),
		Reset:   true,
	}
}

// utcDate truncates a time to its UTC calendar date.
func utcDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
