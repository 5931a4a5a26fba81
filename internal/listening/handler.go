package listening

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/english-learn/backend/internal/models"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) ListStories(w http.ResponseWriter, r *http.Request) {
	stories, err := h.store.ListStories()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list stories"})
		return
	}
	if stories == nil {
		stories = []models.Story{}
	}
	writeJSON(w, http.StatusOK, stories)
}

func (h *Handler) GetStory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid story ID"})
		return
	}

	story, err := h.store.GetStory(id)
	if err == sql.ErrNoRows {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Story not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get story"})
		return
	}
	writeJSON(w, http.StatusOK, story)
}

func (h *Handler) ListDialogues(w http.ResponseWriter, r *http.Request) {
	dialogues, err := h.store.ListDialogues()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list dialogues"})
		return
	}
	if dialogues == nil {
		dialogues = []models.Dialogue{}
	}
	writeJSON(w, http.StatusOK, dialogues)
}

func (h *Handler) GetDialogue(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid dialogue ID"})
		return
	}

	dialogue, err := h.store.GetDialogue(id)
	if err == sql.ErrNoRows {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Dialogue not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get dialogue"})
		return
	}
	writeJSON(w, http.StatusOK, dialogue)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
