package generator

import (
	"fmt"
	"strings"

	"github.com/english-learn/backend/internal/models"
)

// DraftRequest describes one exercise to draft.
type DraftRequest struct {
	Word         string `json:"word"`
	Definition   string `json:"definition"`
	ExerciseType string `json:"exercise_type"`
	Difficulty   string `json:"difficulty"`
	Count        int    `json:"count"`
}

// SystemPrompt frames the model as an ESL content author and pins the
// output contract to raw JSON.
func SystemPrompt() string {
	return `You are an experienced author of English-learning materials for non-native speakers. You write clear, unambiguous vocabulary exercises calibrated to the learner's level.

Rules:
- Every question must be answerable from the word and its definition alone.
- Distractors must be plausible but clearly wrong to someone who knows the word.
- Keep sentences short and free of idioms harder than the target word.
- Respond with raw JSON only. No markdown, no code fences, no commentary.`
}

// BuildUserPrompt renders the request into the generation instruction.
func BuildUserPrompt(req DraftRequest) string {
	count := req.Count
	if count <= 0 {
		count = 4
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = models.DifficultyIntermediate
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create %d %s questions for the English word %q.\n", count, req.ExerciseType, req.Word)
	fmt.Fprintf(&b, "Definition: %s\n", req.Definition)
	fmt.Fprintf(&b, "Learner level: %s\n\n", difficulty)

	switch req.ExerciseType {
	case models.ExerciseFillBlanks:
		b.WriteString(`Each question is a sentence with the target word (or a close variant) replaced by a blank written as "_____". Provide the expected word in "answer".

JSON shape:
{
  "title": "...",
  "description": "...",
  "questions": [
    {"prompt": "sentence with _____", "answer": "expected word"}
  ]
}`)

	case models.ExerciseMatching:
		b.WriteString(`Each question is a set of terms related to the target word, each matched with its definition. Use 4 to 6 pairs per question.

JSON shape:
{
  "title": "...",
  "description": "...",
  "questions": [
    {"prompt": "Match each word with its definition", "pairs": [{"term": "...", "definition": "..."}]}
  ]
}`)

	default: // multiple-choice, audio
		b.WriteString(`Each question has exactly 4 options with exactly one marked correct.

JSON shape:
{
  "title": "...",
  "description": "...",
  "questions": [
    {"prompt": "...", "options": [{"text": "...", "is_correct": true}]}
  ]
}`)
	}

	return b.String()
}
