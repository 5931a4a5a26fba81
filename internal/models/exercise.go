package models

import "time"

// ── Exercise Types ────────────────────────────────────────

// Exercise format keys stored in exercise_types.key.
const (
	ExerciseMultipleChoice = "multiple-choice"
	ExerciseFillBlanks     = "fill-blanks"
	ExerciseMatching       = "matching"
	ExerciseAudio          = "audio"
)

type ExerciseType struct {
	ID          int64  `json:"id"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Exercise struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	ExerciseTypeID *int64     `json:"exercise_type_id,omitempty"`
	ContentItemID  *int64     `json:"content_item_id,omitempty"`
	DifficultyID   *int64     `json:"difficulty_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`

	ExerciseType *ExerciseType    `json:"exercise_type,omitempty"`
	Difficulty   *DifficultyLevel `json:"difficulty,omitempty"`
	Questions    []Question       `json:"questions,omitempty"`
}

// Question is one gradable unit inside an exercise. For multiple-choice
// and audio questions exactly one option is flagged correct; fill-blank
// and matching questions carry their answer key in Answer / Pairs.
type Question struct {
	ID         int64       `json:"id"`
	ExerciseID int64       `json:"exercise_id"`
	Prompt     string      `json:"prompt"`
	Type       string      `json:"type"`
	Answer     string      `json:"answer,omitempty"`
	Options    []Option    `json:"options,omitempty"`
	Pairs      []MatchPair `json:"pairs,omitempty"`

	// Display form of a matching question: terms keep their pair ids,
	// definitions come back as a shuffled list with no ids so the
	// pairing stays server side.
	Terms       []MatchItem `json:"terms,omitempty"`
	Definitions []string    `json:"definitions,omitempty"`
}

// MatchItem is the term side of a matching question as shown to the
// client.
type MatchItem struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

type Option struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question_id"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"is_correct"`
}

type MatchPair struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question_id"`
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// ── Exams ─────────────────────────────────────────────────

type Exam struct {
	ID           int64            `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description,omitempty"`
	TimeLimit    int              `json:"time_limit"` // minutes
	DifficultyID *int64           `json:"difficulty_id,omitempty"`
	Difficulty   *DifficultyLevel `json:"difficulty,omitempty"`
	// QuestionCount is filled on list responses where the questions
	// themselves are not loaded.
	QuestionCount int            `json:"question_count,omitempty"`
	Questions     []ExamQuestion `json:"questions,omitempty"`
}

type ExamQuestion struct {
	ID       int64        `json:"id"`
	ExamID   int64        `json:"exam_id"`
	Question string       `json:"question"`
	Type     string       `json:"question_type"` // multiple-choice | fill-in-blanks
	Points   int          `json:"points"`
	Options  []ExamOption `json:"options"`
}

type ExamOption struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"exam_question_id"`
	Text       string `json:"option_text"`
	IsCorrect  bool   `json:"is_correct"`
}

// Exam question type keys.
const (
	ExamMultipleChoice = "multiple-choice"
	ExamFillInBlanks   = "fill-in-blanks"
)

// ── Attempts ──────────────────────────────────────────────

type SubmitExerciseRequest struct {
	// Option answers keyed by question id (multiple-choice, audio).
	OptionAnswers map[int64]int64 `json:"option_answers,omitempty"`
	// Text answers keyed by question id (fill-blanks).
	TextAnswers map[int64]string `json:"text_answers,omitempty"`
	// Matching answers: question id → (term pair id → chosen
	// definition text, as served in the shuffled definition list).
	MatchAnswers map[int64]map[int64]string `json:"match_answers,omitempty"`
}

type ExerciseResult struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	ExerciseID  int64     `json:"exercise_id"`
	Score       int       `json:"score"`
	Total       int       `json:"total_questions"`
	CompletedAt time.Time `json:"completed_at"`

	ExerciseTitle string `json:"exercise_title,omitempty"`
}

type ExamResult struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	ExamID      int64     `json:"exam_id"`
	Score       int       `json:"score"`
	TotalPoints int       `json:"total_points"`
	TimeTaken   int       `json:"time_taken"` // seconds
	CompletedAt time.Time `json:"completed_at"`
}

type SubmitExerciseResponse struct {
	Score                int      `json:"score"`
	Total                int      `json:"total"`
	PointsAwarded        int      `json:"points_awarded"`
	AchievementsUnlocked []string `json:"achievements_unlocked"`
}

type ExamSessionResponse struct {
	SessionID        string `json:"session_id"`
	ExamID           int64  `json:"exam_id"`
	TimeLimitSeconds int    `json:"time_limit_seconds"`
	DeadlineUnix     int64  `json:"deadline_unix"`
}

type ExamAnswerRequest struct {
	QuestionID int64  `json:"question_id"`
	Answer     string `json:"answer"` // option id (as string) or free text
}

type SubmitExamResponse struct {
	Score                int      `json:"score"`
	TotalPoints          int      `json:"total_points"`
	TimeTaken            int      `json:"time_taken"`
	PointsAwarded        int      `json:"points_awarded"`
	AutoSubmitted        bool     `json:"auto_submitted"`
	AchievementsUnlocked []string `json:"achievements_unlocked"`
}
