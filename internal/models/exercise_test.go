package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestExamListJSONCarriesQuestionCount(t *testing.T) {
	b, err := json.Marshal(Exam{ID: 1, Title: "Unit 1", TimeLimit: 30, QuestionCount: 7})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"question_count":7`) {
		t.Errorf("exam list payload missing question count: %s", b)
	}
}
