package exercises

import (
	"testing"

	"github.com/english-learn/backend/internal/models"
)

func mcQuestion(id int64, correct int64, optionIDs ...int64) models.Question {
	q := models.Question{ID: id, Type: models.ExerciseMultipleChoice}
	for _, oid := range optionIDs {
		q.Options = append(q.Options, models.Option{
			ID:        oid,
			IsCorrect: oid == correct,
		})
	}
	return q
}

func TestScoreExerciseMultipleChoice(t *testing.T) {
	questions := []models.Question{
		mcQuestion(1, 11, 10, 11, 12),
		mcQuestion(2, 21, 20, 21, 22),
		mcQuestion(3, 32, 30, 31, 32),
	}

	req := models.SubmitExerciseRequest{
		OptionAnswers: map[int64]int64{
			1: 11, // correct
			2: 20, // wrong
			3: 32, // correct
		},
	}

	score, total := ScoreExercise(questions, req)
	if score != 2 || total != 3 {
		t.Errorf("got %d/%d, want 2/3", score, total)
	}
}

func TestScoreExerciseFillBlanks(t *testing.T) {
	questions := []models.Question{
		{ID: 1, Type: models.ExerciseFillBlanks, Answer: "bed"},
		{ID: 2, Type: models.ExerciseFillBlanks, Answer: "window"},
	}

	tests := []struct {
		name      string
		answers   map[int64]string
		wantScore int
	}{
		{"exact match", map[int64]string{1: "bed", 2: "window"}, 2},
		{"case and whitespace ignored", map[int64]string{1: " Bed ", 2: "WINDOW"}, 2},
		{"wrong answer", map[int64]string{1: "bad", 2: "window"}, 1},
		{"unanswered", map[int64]string{2: "window"}, 1},
		{"empty submission", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, total := ScoreExercise(questions, models.SubmitExerciseRequest{TextAnswers: tt.answers})
			if score != tt.wantScore || total != 2 {
				t.Errorf("got %d/%d, want %d/2", score, total, tt.wantScore)
			}
		})
	}
}

func TestScoreExerciseMatching(t *testing.T) {
	q := models.Question{
		ID:   1,
		Type: models.ExerciseMatching,
		Pairs: []models.MatchPair{
			{ID: 1, Term: "happy", Definition: "feeling joy"},
			{ID: 2, Term: "sad", Definition: "feeling sorrow"},
			{ID: 3, Term: "angry", Definition: "feeling rage"},
			{ID: 4, Term: "calm", Definition: "feeling peace"},
			{ID: 5, Term: "tired", Definition: "needing rest"},
		},
	}

	req := models.SubmitExerciseRequest{
		MatchAnswers: map[int64]map[int64]string{
			// two swapped, one with whitespace and odd case
			1: {
				1: "feeling joy",
				2: "feeling rage",
				3: "feeling sorrow",
				4: " Feeling Peace ",
				5: "needing rest",
			},
		},
	}

	score, total := ScoreExercise([]models.Question{q}, req)
	if score != 3 || total != 5 {
		t.Errorf("got %d/%d, want 3/5", score, total)
	}
}

func TestScoreExerciseAudioUsesOptions(t *testing.T) {
	q := models.Question{
		ID:   1,
		Type: models.ExerciseAudio,
		Options: []models.Option{
			{ID: 10, Text: "ship"},
			{ID: 11, Text: "sheep", IsCorrect: true},
		},
	}

	score, total := ScoreExercise([]models.Question{q}, models.SubmitExerciseRequest{
		OptionAnswers: map[int64]int64{1: 11},
	})
	if score != 1 || total != 1 {
		t.Errorf("got %d/%d, want 1/1", score, total)
	}
}

func TestScoreExam(t *testing.T) {
	questions := []models.ExamQuestion{
		{
			ID: 1, Type: models.ExamMultipleChoice, Points: 10,
			Options: []models.ExamOption{
				{ID: 100, Text: "run"},
				{ID: 101, Text: "ran", IsCorrect: true},
			},
		},
		{
			ID: 2, Type: models.ExamFillInBlanks, Points: 15,
			Options: []models.ExamOption{
				{ID: 200, Text: "children", IsCorrect: true},
			},
		},
		{
			ID: 3, Type: models.ExamMultipleChoice, Points: 10,
			Options: []models.ExamOption{
				{ID: 300, Text: "goed"},
				{ID: 301, Text: "went", IsCorrect: true},
			},
		},
	}

	tests := []struct {
		name      string
		answers   map[int64]string
		wantScore int
	}{
		{
			name:      "all correct",
			answers:   map[int64]string{1: "101", 2: "Children", 3: "301"},
			wantScore: 35,
		},
		{
			name:      "partial",
			answers:   map[int64]string{1: "100", 2: "children"},
			wantScore: 15,
		},
		{
			name:      "no answers still reports full total",
			answers:   nil,
			wantScore: 0,
		},
		{
			name:      "garbage option id scores zero",
			answers:   map[int64]string{1: "not-a-number"},
			wantScore: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, total := ScoreExam(questions, tt.answers)
			if score != tt.wantScore {
				t.Errorf("score = %d, want %d", score, tt.wantScore)
			}
			if total != 35 {
				t.Errorf("total = %d, want 35", total)
			}
		})
	}
}

func TestSanitizeExerciseHidesMatchingKey(t *testing.T) {
	e := &models.Exercise{
		Questions: []models.Question{
			{
				ID:     1,
				Type:   models.ExerciseMultipleChoice,
				Answer: "leak",
				Options: []models.Option{
					{ID: 10, Text: "a", IsCorrect: true},
					{ID: 11, Text: "b"},
				},
			},
			{
				ID:   2,
				Type: models.ExerciseMatching,
				Pairs: []models.MatchPair{
					{ID: 21, Term: "happy", Definition: "feeling joy"},
					{ID: 22, Term: "sad", Definition: "feeling sorrow"},
				},
			},
		},
	}

	sanitizeExercise(e)

	if e.Questions[0].Answer != "" {
		t.Error("answer text survived sanitizing")
	}
	for _, opt := range e.Questions[0].Options {
		if opt.IsCorrect {
			t.Error("correct-option flag survived sanitizing")
		}
	}

	m := e.Questions[1]
	if m.Pairs != nil {
		t.Error("matching pairs survived sanitizing")
	}
	if len(m.Terms) != 2 || m.Terms[0].ID != 21 || m.Terms[0].Text != "happy" {
		t.Errorf("terms = %+v, want the pair ids with term text", m.Terms)
	}
	seen := map[string]bool{}
	for _, d := range m.Definitions {
		seen[d] = true
	}
	if len(m.Definitions) != 2 || !seen["feeling joy"] || !seen["feeling sorrow"] {
		t.Errorf("definitions = %v, want both definition texts", m.Definitions)
	}
}
