package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"quizbank/internal/model"
	"quizbank/internal/service"
)

// QuestionHandler handles question CRUD endpoints
type QuestionHandler struct {
	questionSvc *service.QuestionService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questionSvc *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionSvc: questionSvc}
}

// List handles GET /api/questions
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questionSvc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch questions")
		return
	}

	writeJSON(w, http.StatusOK, questions)
}

// Get handles GET /api/questions/{id}
func (h *QuestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	question, err := h.questionSvc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			writeError(w, http.StatusNotFound, "question not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch question")
		return
	}

	writeJSON(w, http.StatusOK, question)
}

// Create handles POST /api/questions
func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.QuestionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	question, err := h.questionSvc.Create(r.Context(), in)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create question")
		return
	}

	writeJSON(w, http.StatusCreated, question)
}

// Update handles PUT /api/questions/{id}
func (h *QuestionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var in model.QuestionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	question, err := h.questionSvc.Update(r.Context(), id, in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, model.ErrNotFound):
			writeError(w, http.StatusNotFound, "question not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update question")
		}
		return
	}

	writeJSON(w, http.StatusOK, question)
}

// Delete handles DELETE /api/questions/{id}
func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.questionSvc.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, model.ErrLastQuestion):
			writeError(w, http.StatusBadRequest, "cannot delete the last remaining question")
		case errors.Is(err, model.ErrNotFound):
			writeError(w, http.StatusNotFound, "question not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to delete question")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "question deleted"})
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid question id")
		return 0, false
	}
	return id, true
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
