package handler

import (
	"net/http"

	"quizbank/internal/service"
)

// HealthHandler reports reachability of the persistence backend
type HealthHandler struct {
	questionSvc *service.QuestionService
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(questionSvc *service.QuestionService) *HealthHandler {
	return &HealthHandler{questionSvc: questionSvc}
}

// Check handles GET /api/health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	status := h.questionSvc.Health(r.Context())

	code := http.StatusOK
	if status.Status != "ok" {
		code = http.StatusInternalServerError
	}

	writeJSON(w, code, status)
}
