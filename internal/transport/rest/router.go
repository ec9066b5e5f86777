package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"quizbank/internal/service"
	"quizbank/internal/transport/rest/handler"
	"quizbank/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	QuestionService *service.QuestionService
	Logger          *zap.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	questionHandler := handler.NewQuestionHandler(c.QuestionService)
	healthHandler := handler.NewHealthHandler(c.QuestionService)

	// CORS first, then request identity and access logging.
	r.Use(corsMiddleware)
	r.Use(middleware.RequestID)
	r.Use(middleware.NewRequestLogger(c.Logger).Handle)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/questions", questionHandler.List).Methods("GET", "OPTIONS")
	api.HandleFunc("/questions", questionHandler.Create).Methods("POST", "OPTIONS")
	api.HandleFunc("/questions/{id}", questionHandler.Get).Methods("GET", "OPTIONS")
	api.HandleFunc("/questions/{id}", questionHandler.Update).Methods("PUT", "OPTIONS")
	api.HandleFunc("/questions/{id}", questionHandler.Delete).Methods("DELETE", "OPTIONS")

	api.HandleFunc("/health", healthHandler.Check).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
