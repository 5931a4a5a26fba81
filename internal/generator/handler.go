package generator

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/english-learn/backend/internal/models"
)

type Handler struct {
	generator *Generator
}

func NewHandler(g *Generator) *Handler {
	return &Handler{generator: g}
}

// DraftExercise produces a reviewable exercise draft for a word. The
// draft is returned to the caller, not written to the catalog.
func (h *Handler) DraftExercise(w http.ResponseWriter, r *http.Request) {
	var req DraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.Word = strings.TrimSpace(req.Word)
	req.Definition = strings.TrimSpace(req.Definition)
	if req.Word == "" || req.Definition == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Word and definition are required"})
		return
	}
	switch req.ExerciseType {
	case models.ExerciseMultipleChoice, models.ExerciseFillBlanks, models.ExerciseMatching, models.ExerciseAudio:
	default:
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Unknown exercise type"})
		return
	}

	draft, usage, err := h.generator.DraftExercise(r.Context(), req)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "Failed to generate draft: " + err.Error()})
		return
	}

	resp := map[string]interface{}{
		"draft": draft,
		"model": h.generator.ModelName(),
	}
	if usage != nil {
		resp["usage"] = map[string]int{
			"prompt_tokens": usage.PromptTokens,
			"output_tokens": usage.OutputTokens,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
