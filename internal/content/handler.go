package content

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/english-learn/backend/internal/database"
	"github.com/english-learn/backend/internal/models"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

// ── Catalog ──

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.ListCategories()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list categories"})
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) ListDifficultyLevels(w http.ResponseWriter, r *http.Request) {
	levels, err := h.store.ListDifficultyLevels()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list difficulty levels"})
		return
	}
	writeJSON(w, http.StatusOK, levels)
}

func (h *Handler) ListContentItems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := models.ContentFilter{
		Search: query.Get("search"),
		Limit:  intQueryParam(query, "limit", 100),
	}
	if id := int64(intQueryParam(query, "category_id", 0)); id > 0 {
		filter.CategoryID = &id
	}
	if id := int64(intQueryParam(query, "difficulty_id", 0)); id > 0 {
		filter.DifficultyID = &id
	}

	items, err := h.store.ListContentItems(filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list content items"})
		return
	}
	if items == nil {
		items = []models.ContentItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) GetContentItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid content item ID"})
		return
	}

	var details *models.ContentItemDetails
	err = database.RetryRead(func() error {
		var e error
		details, e = h.store.GetContentItemDetails(id)
		return e
	})
	if err == sql.ErrNoRows {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Content item not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get content item"})
		return
	}
	writeJSON(w, http.StatusOK, details)
}

// ── Word lists ──

func (h *Handler) ListWordLists(w http.ResponseWriter, r *http.Request) {
	lists, err := h.store.ListWordLists()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list word lists"})
		return
	}
	if lists == nil {
		lists = []models.WordList{}
	}
	writeJSON(w, http.StatusOK, lists)
}

func (h *Handler) GetWordList(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid word list ID"})
		return
	}

	list, items, err := h.store.GetWordListItems(id)
	if err == sql.ErrNoRows {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Word list not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get word list"})
		return
	}
	if items == nil {
		items = []models.ContentItem{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"list":  list,
		"items": items,
	})
}

// ── Bookmarks ──

func (h *Handler) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid content item ID"})
		return
	}

	bookmarked, err := h.store.ToggleBookmark(userID, id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to toggle bookmark"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"bookmarked": bookmarked})
}

func (h *Handler) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	bookmarks, err := h.store.ListBookmarks(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list bookmarks"})
		return
	}
	if bookmarks == nil {
		bookmarks = []models.Bookmark{}
	}
	writeJSON(w, http.StatusOK, bookmarks)
}

// ── Statistics / Recommendations ──

func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	stats, err := h.store.GetStatistics(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get statistics"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	limit := intQueryParam(r.URL.Query(), "limit", 5)
	items, err := h.store.GetRecommendations(userID, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get recommendations"})
		return
	}
	if items == nil {
		items = []models.RecommendedItem{}
	}
	writeJSON(w, http.StatusOK, items)
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
