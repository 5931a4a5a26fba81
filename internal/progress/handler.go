package progress

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/english-learn/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

// ── Points ──

func (h *Handler) GetPoints(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	p, err := h.service.GetPoints(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get points"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ── Streak ──

func (h *Handler) GetStreak(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	st, err := h.service.GetStreak(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get streak"})
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// RecordActivity registers today as an active day for the streak.
func (h *Handler) RecordActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	resp, err := h.service.RecordActivity(userID, time.Now())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update streak"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ── Achievements ──

func (h *Handler) GetAchievements(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	earned, err := h.service.GetAchievements(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get achievements"})
		return
	}
	if earned == nil {
		earned = []models.UserAchievement{}
	}
	writeJSON(w, http.StatusOK, earned)
}

func (h *Handler) ListAllAchievements(w http.ResponseWriter, r *http.Request) {
	all, err := h.service.GetAllAchievements()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list achievements"})
		return
	}
	writeJSON(w, http.StatusOK, all)
}

// ── Mastery ──

func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	items, err := h.service.GetProgress(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get progress"})
		return
	}
	if items == nil {
		items = []models.UserProgress{}
	}
	writeJSON(w, http.StatusOK, models.ProgressResponse{Items: items})
}

// MarkLearned records that the user learned a word.
func (h *Handler) MarkLearned(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	itemID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid content item ID"})
		return
	}

	resp, err := h.service.MarkWordLearned(userID, itemID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to mark word learned"})
		return
	}

	// Learning a word counts toward today's streak too.
	if _, err := h.service.RecordActivity(userID, time.Now()); err != nil {
		log.Printf("[progress] failed to record activity for user %d: %v", userID, err)
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
