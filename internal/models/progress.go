package models

import "time"

// ── Progress Ledger ───────────────────────────────────────

// MaxMasteryLevel caps per-item mastery (0 = unseen, 3 = mastered).
const MaxMasteryLevel = 3

type UserProgress struct {
	ID            int64        `json:"id"`
	UserID        int64        `json:"user_id"`
	ContentItemID int64        `json:"content_item_id"`
	MasteryLevel  int          `json:"mastery_level"`
	LastPracticed time.Time    `json:"last_practiced"`
	ContentItem   *ContentItem `json:"content_item,omitempty"`
}

// ── Points ────────────────────────────────────────────────

type UserPoints struct {
	UserID      int64     `json:"user_id"`
	TotalPoints int64     `json:"total_points"`
	Level       int       `json:"level"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ── Streaks ───────────────────────────────────────────────

type UserStreak struct {
	UserID           int64      `json:"user_id"`
	CurrentStreak    int        `json:"current_streak"`
	LongestStreak    int        `json:"longest_streak"`
	LastActivityDate *time.Time `json:"last_activity_date,omitempty"`
}

// ── Achievements ──────────────────────────────────────────

type Achievement struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Points      int    `json:"points"`
}

type UserAchievement struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	AchievementID int64     `json:"achievement_id"`
	EarnedAt      time.Time `json:"earned_at"`

	Achievement *Achievement `json:"achievement,omitempty"`
}

// ── Responses ─────────────────────────────────────────────

type ProgressResponse struct {
	Items []UserProgress `json:"items"`
}

type StreakResponse struct {
	CurrentStreak        int      `json:"current_streak"`
	LongestStreak        int      `json:"longest_streak"`
	LastActivityDate     string   `json:"last_activity_date,omitempty"`
	AchievementsUnlocked []string `json:"achievements_unlocked"`
}

type MarkLearnedResponse struct {
	MasteryLevel         int      `json:"mastery_level"`
	PointsAwarded        int      `json:"points_awarded"`
	AchievementsUnlocked []string `json:"achievements_unlocked"`
}
