package exercises

import (
	"strconv"
	"strings"

	"github.com/english-learn/backend/internal/models"
)

// ScoreExercise grades a submission against the answer key. Matching
// questions count one unit per pair; every other question counts one
// unit. Unanswered units score zero.
func ScoreExercise(questions []models.Question, req models.SubmitExerciseRequest) (score, total int) {
	for _, q := range questions {
		switch q.Type {
		case models.ExerciseMatching:
			total += len(q.Pairs)
			chosen := req.MatchAnswers[q.ID]
			for _, pair := range q.Pairs {
				if answerMatches(chosen[pair.ID], pair.Definition) {
					score++
				}
			}

		case models.ExerciseFillBlanks:
			total++
			if answerMatches(req.TextAnswers[q.ID], q.Answer) {
				score++
			}

		default: // multiple-choice, audio
			total++
			optionID, ok := req.OptionAnswers[q.ID]
			if !ok {
				continue
			}
			for _, opt := range q.Options {
				if opt.ID == optionID && opt.IsCorrect {
					score++
					break
				}
			}
		}
	}
	return score, total
}

// ScoreExam grades a timed exam. Each question is worth its own point
// value; the total is the sum over all questions regardless of how many
// were answered. Multiple-choice answers carry the chosen option id;
// fill-in answers carry free text compared against the keyed option.
func ScoreExam(questions []models.ExamQuestion, answers map[int64]string) (score, totalPoints int) {
	for _, q := range questions {
		totalPoints += q.Points

		answer, ok := answers[q.ID]
		if !ok || answer == "" {
			continue
		}

		switch q.Type {
		case models.ExamFillInBlanks:
			if key, ok := examAnswerKey(q); ok && answerMatches(answer, key) {
				score += q.Points
			}

		default:
			optionID, err := strconv.ParseInt(answer, 10, 64)
			if err != nil {
				continue
			}
			for _, opt := range q.Options {
				if opt.ID == optionID && opt.IsCorrect {
					score += q.Points
					break
				}
			}
		}
	}
	return score, totalPoints
}

// answerMatches compares a typed answer with the expected one, ignoring
// surrounding whitespace and letter case.
func answerMatches(got, want string) bool {
	return strings.EqualFold(strings.TrimSpace(got), strings.TrimSpace(want))
}

// examAnswerKey returns the expected text for a fill-in exam question,
// stored as the option flagged correct.
func examAnswerKey(q models.ExamQuestion) (string, bool) {
	for _, opt := range q.Options {
		if opt.IsCorrect {
			return opt.Text, true
		}
	}
	return "", false
}
