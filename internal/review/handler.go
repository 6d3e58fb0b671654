package review

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/studydeck/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the review endpoints on the protected subrouter.
func (h *Handler) RegisterRoutes(protected *mux.Router) {
	protected.HandleFunc("/review/answer", h.SubmitAnswer).Methods("POST")
	protected.HandleFunc("/review/queue", h.GetQueue).Methods("GET")
	protected.HandleFunc("/review/due-count", h.GetDueCount).Methods("GET")
	protected.HandleFunc("/review/stats", h.GetStats).Methods("GET")
	protected.HandleFunc("/review/progress", h.ResetAll).Methods("DELETE")
	protected.HandleFunc("/review/progress/chapters/{chapterID}", h.ResetChapter).Methods("DELETE")
}

// getUserID extracts the authenticated user ID from the request context.
func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.QuestionID == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "question_id is required"})
		return
	}

	resp := h.service.SubmitAnswer(r.Context(), userID, req.QuestionID, req.Correct)
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetQueue(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	chapterID, ok := chapterQueryParam(w, r)
	if !ok {
		return
	}
	limit := intQueryParam(r, "limit", 20)

	questions, err := h.service.ReviewQueue(r.Context(), userID, chapterID, limit)
	if err != nil {
		log.Printf("[review] GetQueue error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to build review queue"})
		return
	}
	if questions == nil {
		questions = []models.Question{}
	}

	writeJSON(w, http.StatusOK, models.ReviewQueueResponse{
		Questions: questions,
		Total:     len(questions),
	})
}

func (h *Handler) GetDueCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	chapterID, ok := chapterQueryParam(w, r)
	if !ok {
		return
	}

	count, err := h.service.DueCount(r.Context(), userID, chapterID)
	if err != nil {
		log.Printf("[review] GetDueCount error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to count due questions"})
		return
	}

	writeJSON(w, http.StatusOK, models.DueCountResponse{DueCount: count})
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	chapterID, ok := chapterQueryParam(w, r)
	if !ok {
		return
	}

	stats, err := h.service.Stats(r.Context(), userID, chapterID)
	if err != nil {
		log.Printf("[review] GetStats error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to compute stats"})
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) ResetAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	if err := h.service.ResetAll(r.Context(), userID); err != nil {
		log.Printf("[review] ResetAll error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to reset progress"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "progress reset"})
}

func (h *Handler) ResetChapter(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	chapterID, err := strconv.ParseInt(mux.Vars(r)["chapterID"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid chapter ID"})
		return
	}

	if err := h.service.ResetChapter(r.Context(), userID, chapterID); err != nil {
		log.Printf("[review] ResetChapter error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to reset chapter progress"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "chapter progress reset"})
}

// ── Query param helpers ──────────────────────────────────

func chapterQueryParam(w http.ResponseWriter, r *http.Request) (*int64, bool) {
	v := r.URL.Query().Get("chapter_id")
	if v == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid chapter_id"})
		return nil, false
	}
	return &id, true
}

func intQueryParam(r *http.Request, key string, defaultVal int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return defaultVal
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
