package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"matchwell/internal/cache"
	"matchwell/internal/service"
	"matchwell/internal/transport/rest/handler"
	"matchwell/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	QuizService      *service.QuizService
	DirectoryService *service.DirectoryService
	GeoService       *service.GeoService
	SubscribeService *service.SubscribeService
	EventSink        *service.EventSink
	Stats            cache.StatsCache
	WSHub            *ws.Hub
	Log              *zap.Logger

	// CORSAllowedOrigins defaults to "*" when empty
	CORSAllowedOrigins string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	quizHandler := handler.NewQuizHandler(c.QuizService)
	resultsHandler := handler.NewResultsHandler(c.QuizService, c.EventSink)
	providerHandler := handler.NewProviderHandler(c.DirectoryService, c.GeoService, c.Stats)
	subscribeHandler := handler.NewSubscribeHandler(c.SubscribeService)
	geoHandler := handler.NewGeoHandler(c.GeoService)
	eventsHandler := handler.NewEventsHandler(c.EventSink)
	wsHandler := ws.NewHandler(c.WSHub, c.Log)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.CORSAllowedOrigins))

	// Legacy share links live outside the versioned API
	r.HandleFunc("/r/{blob}", resultsHandler.LegacyRedirect).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Quiz
	v1.HandleFunc("/quiz/tier1/questions", quizHandler.GetTier1Questions).Methods("GET", "OPTIONS")
	v1.HandleFunc("/quiz/tier2/questions", quizHandler.GetTier2Questions).Methods("GET", "OPTIONS")
	v1.HandleFunc("/quiz/tier1", quizHandler.ScoreTier1).Methods("POST", "OPTIONS")
	v1.HandleFunc("/quiz/tier2", quizHandler.ScoreTier2).Methods("POST", "OPTIONS")
	v1.HandleFunc("/quiz/combined", quizHandler.ScoreCombined).Methods("POST", "OPTIONS")

	// Results
	v1.HandleFunc("/results", resultsHandler.GetResults).Methods("GET", "OPTIONS")
	v1.HandleFunc("/results/share", resultsHandler.Share).Methods("POST", "OPTIONS")
	v1.HandleFunc("/results/s/{code}", resultsHandler.ResolveShare).Methods("GET", "OPTIONS")

	// Directory
	v1.HandleFunc("/providers", providerHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/stats/modalities", providerHandler.TopModalities).Methods("GET", "OPTIONS")

	// Subscribe / feedback / geo
	v1.HandleFunc("/subscribe", subscribeHandler.Subscribe).Methods("POST", "OPTIONS")
	v1.HandleFunc("/feedback", subscribeHandler.Feedback).Methods("POST", "OPTIONS")
	v1.HandleFunc("/geo", geoHandler.Lookup).Methods("GET", "OPTIONS")

	// Analytics ingest
	v1.HandleFunc("/events", eventsHandler.Ingest).Methods("POST", "OPTIONS")

	// Live dashboard feed
	v1.HandleFunc("/ws/stats", wsHandler.StatsWS).Methods("GET")

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
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
