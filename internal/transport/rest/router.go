package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"mindhaven/internal/service"
	"mindhaven/internal/transport/rest/handler"
	"mindhaven/internal/transport/rest/middleware"
	"mindhaven/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	AssessmentService *service.AssessmentService
	AttemptService    *service.AttemptService
	WSHandler         *ws.Handler
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	assessmentHandler := handler.NewAssessmentHandler(c.AssessmentService)
	attemptHandler := handler.NewAttemptHandler(c.AttemptService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/session", authHandler.StartSession).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/clinician/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/assessments", assessmentHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/assessments/{assessmentId}", assessmentHandler.Get).Methods("GET", "OPTIONS")

	// WebSocket route (token in query param)
	v1.HandleFunc("/ws/alerts", c.WSHandler.ClinicianWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// User routes (require user auth)
	userRoutes := v1.NewRoute().Subrouter()
	userRoutes.Use(authMW.RequireUser)

	userRoutes.HandleFunc("/attempts", attemptHandler.Start).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/attempts/{attemptId}", attemptHandler.Get).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/attempts/{attemptId}/answers/{questionId}", attemptHandler.SaveAnswer).Methods("PUT", "OPTIONS")
	userRoutes.HandleFunc("/attempts/{attemptId}/submit", attemptHandler.Submit).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/history", attemptHandler.History).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
