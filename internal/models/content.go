package models

import "time"

// ── Catalog Entities ──────────────────────────────────────

type Category struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type DifficultyLevel struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Difficulty level names seeded by the migration.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

type ContentItem struct {
	ID           int64      `json:"id"`
	Word         string     `json:"word"`
	Definition   string     `json:"definition"`
	PartOfSpeech *string    `json:"part_of_speech,omitempty"`
	Phonetic     *string    `json:"phonetic,omitempty"`
	AudioURL     *string    `json:"audio_url,omitempty"`
	ImageURL     *string    `json:"image_url,omitempty"`
	CategoryID   *int64     `json:"category_id,omitempty"`
	DifficultyID *int64     `json:"difficulty_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Populated on detail reads
	Category   *Category        `json:"category,omitempty"`
	Difficulty *DifficultyLevel `json:"difficulty,omitempty"`
}

type Example struct {
	ID            int64  `json:"id"`
	ContentItemID int64  `json:"content_item_id"`
	Sentence      string `json:"sentence"`
	Translation   string `json:"translation,omitempty"`
}

type RelatedWord struct {
	ID            int64   `json:"id"`
	ContentItemID int64   `json:"content_item_id"`
	Word          string  `json:"word"`
	PartOfSpeech  *string `json:"part_of_speech,omitempty"`
}

type ContentItemDetails struct {
	ContentItem
	Examples     []Example     `json:"examples"`
	RelatedWords []RelatedWord `json:"related_words"`
}

type WordList struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	WordCount   int    `json:"word_count"`
}

type Bookmark struct {
	ID            int64        `json:"id"`
	UserID        int64        `json:"user_id"`
	ContentItemID int64        `json:"content_item_id"`
	CreatedAt     time.Time    `json:"created_at"`
	ContentItem   *ContentItem `json:"content_item,omitempty"`
}

// ── Filters / Requests ────────────────────────────────────

type ContentFilter struct {
	CategoryID   *int64
	DifficultyID *int64
	Search       string
	Limit        int
}

// ── Statistics / Recommendations ──────────────────────────

type UserStatistics struct {
	TotalWords         int              `json:"total_words"`
	CompletedExercises int              `json:"completed_exercises"`
	StreakDays         int              `json:"streak_days"`
	MasteryLevels      MasteryBreakdown `json:"mastery_levels"`
	RecentActivity     []ActivityEntry  `json:"recent_activity"`
}

type MasteryBreakdown struct {
	Beginner     int `json:"beginner"`
	Intermediate int `json:"intermediate"`
	Advanced     int `json:"advanced"`
}

type ActivityEntry struct {
	Date     string `json:"date"`
	Activity string `json:"activity"`
	Score    int    `json:"score"`
}

type RecommendedItem struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Difficulty  string `json:"difficulty"`
	Category    string `json:"category"`
}
