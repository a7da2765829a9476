package rest

import (
	"net/http"
	"wellcheck/internal/docs"
	"wellcheck/internal/service"
	"wellcheck/internal/transport/rest/handler"
	"wellcheck/internal/transport/rest/middleware"
	"wellcheck/internal/transport/ws"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	AssessmentService *service.AssessmentService
	ReportService     *service.ReportService
	WSHub             *ws.Hub
	Logger            *zap.Logger
	CORSOrigins       string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	assessmentHandler := handler.NewAssessmentHandler(c.AssessmentService, c.ReportService)
	reportHandler := handler.NewReportHandler(c.ReportService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.Logger)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.CORSOrigins))

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/catalog", assessmentHandler.Catalog).Methods("GET", "OPTIONS")
	v1.HandleFunc("/assessments", assessmentHandler.Start).Methods("POST", "OPTIONS")

	// WebSocket routes (token in query param)
	v1.HandleFunc("/ws/assessments/{id}", wsHandler.RespondentWS).Methods("GET")
	v1.HandleFunc("/ws/host", wsHandler.HostWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	}).Methods("GET")

	// Respondent routes (token must belong to {id})
	respondentRoutes := v1.PathPrefix("/assessments/{id}").Subrouter()
	respondentRoutes.Use(authMW.RequireRespondent)

	respondentRoutes.HandleFunc("", assessmentHandler.Get).Methods("GET", "OPTIONS")
	respondentRoutes.HandleFunc("", assessmentHandler.Discard).Methods("DELETE")
	respondentRoutes.HandleFunc("/answers/{category}/{index:[0-9]+}", assessmentHandler.RecordAnswer).Methods("PUT", "OPTIONS")
	respondentRoutes.HandleFunc("/progress", assessmentHandler.Progress).Methods("GET", "OPTIONS")
	respondentRoutes.HandleFunc("/submit", assessmentHandler.Submit).Methods("POST", "OPTIONS")
	respondentRoutes.HandleFunc("/report", assessmentHandler.Report).Methods("GET", "OPTIONS")

	// Host routes (require host auth)
	hostRoutes := v1.PathPrefix("/reports").Subrouter()
	hostRoutes.Use(authMW.RequireHost)

	hostRoutes.HandleFunc("", reportHandler.List).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/stats", reportHandler.Stats).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/top", reportHandler.Top).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/{id}", reportHandler.Get).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(allowedOrigins string) mux.MiddlewareFunc {
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
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
}
