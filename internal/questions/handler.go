package questions

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/studydeck/backend/internal/models"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes registers the catalog endpoints on the protected subrouter.
func (h *Handler) RegisterRoutes(protected *mux.Router) {
	protected.HandleFunc("/chapters", h.ListChapters).Methods("GET")
	protected.HandleFunc("/chapters/{chapterID}/questions", h.ListChapterQuestions).Methods("GET")
}

func (h *Handler) ListChapters(w http.ResponseWriter, r *http.Request) {
	chapters, err := h.store.ListChapters(r.Context())
	if err != nil {
		log.Printf("[questions] ListChapters error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list chapters"})
		return
	}
	if chapters == nil {
		chapters = []models.Chapter{}
	}
	writeJSON(w, http.StatusOK, chapters)
}

func (h *Handler) ListChapterQuestions(w http.ResponseWriter, r *http.Request) {
	chapterID, err := strconv.ParseInt(mux.Vars(r)["chapterID"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid chapter ID"})
		return
	}

	questions, err := h.store.ChapterQuestions(r.Context(), chapterID)
	if err != nil {
		log.Printf("[questions] ListChapterQuestions error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list questions"})
		return
	}
	if questions == nil {
		questions = []models.Question{}
	}
	writeJSON(w, http.StatusOK, questions)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
