package exercises

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

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

// ── Exercises ──

func (h *Handler) ListExerciseTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ListExerciseTypes()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list exercise types"})
		return
	}
	writeJSON(w, http.StatusOK, types)
}

func (h *Handler) ListExercises(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	typeKey := query.Get("type")
	difficultyID := int64(intQueryParam(query, "difficulty_id", 0))

	list, err := h.service.ListExercises(typeKey, difficultyID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list exercises"})
		return
	}
	if list == nil {
		list = []models.Exercise{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) GetExercise(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid exercise ID"})
		return
	}

	e, err := h.service.GetExercise(id)
	if err == ErrExerciseNotFound {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Exercise not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get exercise"})
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *Handler) SubmitExercise(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid exercise ID"})
		return
	}

	var req models.SubmitExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.service.SubmitExercise(userID, id, req)
	if err == ErrExerciseNotFound {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Exercise not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to submit exercise"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ── Exams ──

func (h *Handler) ListExams(w http.ResponseWriter, r *http.Request) {
	exams, err := h.service.ListExams()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list exams"})
		return
	}
	if exams == nil {
		exams = []models.Exam{}
	}
	writeJSON(w, http.StatusOK, exams)
}

func (h *Handler) GetExam(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid exam ID"})
		return
	}

	e, err := h.service.GetExam(id)
	if err == ErrExamNotFound {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Exam not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get exam"})
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *Handler) StartExam(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid exam ID"})
		return
	}

	resp, err := h.service.StartExam(userID, id)
	if err == ErrExamNotFound {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Exam not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to start exam"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) AnswerExam(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	sessionID := mux.Vars(r)["session_id"]

	var req models.ExamAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	err := h.service.AnswerExam(sessionID, userID, req)
	switch err {
	case nil:
		writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
	case ErrSessionNotFound:
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Exam session not found"})
	case ErrSessionFinished:
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Exam session already finished"})
	default:
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to record answer"})
	}
}

func (h *Handler) SubmitExam(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	sessionID := mux.Vars(r)["session_id"]

	resp, err := h.service.SubmitExam(sessionID, userID)
	switch err {
	case nil:
		writeJSON(w, http.StatusOK, resp)
	case ErrSessionNotFound:
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Exam session not found"})
	case ErrSessionFinished:
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Exam session already finished"})
	default:
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to submit exam"})
	}
}

// ── Results ──

func (h *Handler) GetExerciseHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	limit := intQueryParam(r.URL.Query(), "limit", 20)
	results, err := h.service.RecentExerciseResults(userID, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get exercise history"})
		return
	}
	if results == nil {
		results = []models.ExerciseResult{}
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *Handler) GetExamHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	limit := intQueryParam(r.URL.Query(), "limit", 20)
	results, err := h.service.RecentExamResults(userID, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get exam history"})
		return
	}
	if results == nil {
		results = []models.ExamResult{}
	}
	writeJSON(w, http.StatusOK, results)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func intQueryParam(query url.Values, key string, defaultVal int) int {
	s := query.Get(key)
	if s == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return n
}
