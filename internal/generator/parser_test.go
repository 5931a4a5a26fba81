package generator

import (
	"strings"
	"testing"

	"github.com/english-learn/backend/internal/models"
)

func TestParseResponseMultipleChoice(t *testing.T) {
	body := `{
		"title": "Practice: resilient",
		"description": "Meaning and usage.",
		"questions": [
			{"prompt": "What does resilient mean?", "options": [
				{"text": "Able to recover quickly", "is_correct": true},
				{"text": "Easily broken", "is_correct": false},
				{"text": "Very loud", "is_correct": false}
			]}
		]
	}`

	draft, err := ParseResponse(body, models.ExerciseMultipleChoice)
	if err != nil {
		t.Fatalf("ParseResponse: %v", err)
	}
	if draft.Title != "Practice: resilient" {
		t.Errorf("title = %q", draft.Title)
	}
	if len(draft.Questions) != 1 || len(draft.Questions[0].Options) != 3 {
		t.Errorf("unexpected shape: %+v", draft)
	}
}

func TestParseResponseStripsCodeFences(t *testing.T) {
	body := "```json\n" + `{"title": "t", "questions": [{"prompt": "p", "options": [
		{"text": "a", "is_correct": true}, {"text": "b", "is_correct": false}
	]}]}` + "\n```"

	if _, err := ParseResponse(body, models.ExerciseMultipleChoice); err != nil {
		t.Fatalf("ParseResponse with fences: %v", err)
	}
}

func TestParseResponseRejectsBadDrafts(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		exerciseType string
		wantErr      string
	}{
		{
			name:         "not json",
			body:         "sorry, I cannot do that",
			exerciseType: models.ExerciseMultipleChoice,
			wantErr:      "failed to parse",
		},
		{
			name:         "no questions",
			body:         `{"title": "t", "questions": []}`,
			exerciseType: models.ExerciseMultipleChoice,
			wantErr:      "no questions",
		},
		{
			name: "two correct options",
			body: `{"title": "t", "questions": [{"prompt": "p", "options": [
				{"text": "a", "is_correct": true}, {"text": "b", "is_correct": true}
			]}]}`,
			exerciseType: models.ExerciseMultipleChoice,
			wantErr:      "want exactly 1",
		},
		{
			name: "no correct option",
			body: `{"title": "t", "questions": [{"prompt": "p", "options": [
				{"text": "a", "is_correct": false}, {"text": "b", "is_correct": false}
			]}]}`,
			exerciseType: models.ExerciseMultipleChoice,
			wantErr:      "want exactly 1",
		},
		{
			name:         "fill blank without blank",
			body:         `{"title": "t", "questions": [{"prompt": "no blank here", "answer": "word"}]}`,
			exerciseType: models.ExerciseFillBlanks,
			wantErr:      "no blank",
		},
		{
			name:         "fill blank without answer",
			body:         `{"title": "t", "questions": [{"prompt": "a _____ here"}]}`,
			exerciseType: models.ExerciseFillBlanks,
			wantErr:      "missing answer",
		},
		{
			name:         "matching with one pair",
			body:         `{"title": "t", "questions": [{"prompt": "match", "pairs": [{"term": "a", "definition": "b"}]}]}`,
			exerciseType: models.ExerciseMatching,
			wantErr:      "at least 2 pairs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseResponse(tt.body, tt.exerciseType)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestMockClientProducesValidDraft(t *testing.T) {
	resp, err := NewMockClient().Generate(nil, "", "")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := ParseResponse(resp.Content, models.ExerciseMultipleChoice); err != nil {
		t.Fatalf("mock output does not validate: %v", err)
	}
}

func TestBuildUserPromptMentionsShape(t *testing.T) {
	tests := []struct {
		exerciseType string
		want         string
	}{
		{models.ExerciseMultipleChoice, "exactly one marked correct"},
		{models.ExerciseFillBlanks, "_____"},
		{models.ExerciseMatching, "pairs"},
	}

	for _, tt := range tests {
		prompt := BuildUserPrompt(DraftRequest{
			Word: "resilient", Definition: "recovers quickly", ExerciseType: tt.exerciseType,
		})
		if !strings.Contains(prompt, tt.want) {
			t.Errorf("%s prompt missing %q", tt.exerciseType, tt.want)
		}
		if !strings.Contains(prompt, "resilient") {
			t.Errorf("%s prompt missing the word", tt.exerciseType)
		}
	}
}
