package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/english-learn/backend/internal/models"
)

// GeneratedExercise is a draft exercise as returned by the model. It is
// not persisted automatically; a reviewer promotes it into the catalog.
type GeneratedExercise struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Questions   []GeneratedQuestion `json:"questions"`
}

type GeneratedQuestion struct {
	Prompt  string            `json:"prompt"`
	Answer  string            `json:"answer,omitempty"`
	Options []GeneratedOption `json:"options,omitempty"`
	Pairs   []GeneratedPair   `json:"pairs,omitempty"`
}

type GeneratedOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type GeneratedPair struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// ParseResponse decodes and validates a model response for the given
// exercise type.
func ParseResponse(responseBody, exerciseType string) (*GeneratedExercise, error) {
	cleaned := stripCodeFences(responseBody)

	var draft GeneratedExercise
	if err := json.Unmarshal([]byte(cleaned), &draft); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateDraft(&draft, exerciseType); err != nil {
		return nil, err
	}

	return &draft, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

func validateDraft(draft *GeneratedExercise, exerciseType string) error {
	var errs []string

	if strings.TrimSpace(draft.Title) == "" {
		errs = append(errs, "missing title")
	}
	if len(draft.Questions) == 0 {
		errs = append(errs, "no questions")
	}

	for i, q := range draft.Questions {
		if strings.TrimSpace(q.Prompt) == "" {
			errs = append(errs, fmt.Sprintf("question %d: missing prompt", i+1))
		}

		switch exerciseType {
		case models.ExerciseFillBlanks:
			if !strings.Contains(q.Prompt, "_____") {
				errs = append(errs, fmt.Sprintf("question %d: prompt has no blank", i+1))
			}
			if strings.TrimSpace(q.Answer) == "" {
				errs = append(errs, fmt.Sprintf("question %d: missing answer", i+1))
			}

		case models.ExerciseMatching:
			if len(q.Pairs) < 2 {
				errs = append(errs, fmt.Sprintf("question %d: needs at least 2 pairs", i+1))
			}
			for j, p := range q.Pairs {
				if strings.TrimSpace(p.Term) == "" || strings.TrimSpace(p.Definition) == "" {
					errs = append(errs, fmt.Sprintf("question %d pair %d: empty term or definition", i+1, j+1))
				}
			}

		default:
			if len(q.Options) < 2 {
				errs = append(errs, fmt.Sprintf("question %d: needs at least 2 options", i+1))
			}
			correct := 0
			for _, o := range q.Options {
				if o.IsCorrect {
					correct++
				}
			}
			if correct != 1 {
				errs = append(errs, fmt.Sprintf("question %d: has %d correct options, want exactly 1", i+1, correct))
			}
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
