package rest

import (
	"careertest/internal/config"
	"careertest/internal/service"
	"careertest/internal/transport/rest/handler"
	"careertest/internal/transport/rest/middleware"
	"careertest/internal/transport/ws"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService *service.AuthService
	QuizService *service.QuizService
	WSHub       *ws.Hub
	Metrics     http.Handler
	CORS        config.CORSConfig
	Logger      *zap.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	sessionHandler := handler.NewSessionHandler(c.QuizService, c.Logger)
	quizHandler := handler.NewQuizHandler(c.QuizService, c.Logger)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.QuizService, c.Logger)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.CORS))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	if c.Metrics != nil {
		r.Handle("/metrics", c.Metrics).Methods("GET")
	}

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/sessions", sessionHandler.Start).Methods("POST", "OPTIONS")
	v1.HandleFunc("/questions", quizHandler.Questions).Methods("GET", "OPTIONS")
	v1.HandleFunc("/score", quizHandler.Score).Methods("POST", "OPTIONS")

	// WebSocket route (token in query param)
	v1.HandleFunc("/ws/session", wsHandler.RespondentWS).Methods("GET")

	// Respondent routes
	respondentRoutes := v1.NewRoute().Subrouter()
	respondentRoutes.Use(authMW.RequireRespondent)

	respondentRoutes.HandleFunc("/session", quizHandler.State).Methods("GET", "OPTIONS")
	respondentRoutes.HandleFunc("/session", quizHandler.Reset).Methods("DELETE", "OPTIONS")
	respondentRoutes.HandleFunc("/session/choice", quizHandler.Choose).Methods("POST", "OPTIONS")
	respondentRoutes.HandleFunc("/session/next", quizHandler.Next).Methods("POST", "OPTIONS")
	respondentRoutes.HandleFunc("/session/prev", quizHandler.Prev).Methods("POST", "OPTIONS")
	respondentRoutes.HandleFunc("/result", quizHandler.Result).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(cfg config.CORSConfig) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", cfg.AllowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
