package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/osse101/PredictionContest_Go/docs"
	"github.com/osse101/PredictionContest_Go/internal/contest"
	"github.com/osse101/PredictionContest_Go/internal/database"
	"github.com/osse101/PredictionContest_Go/internal/eventlog"
	"github.com/osse101/PredictionContest_Go/internal/handler"
	"github.com/osse101/PredictionContest_Go/internal/leaderboard"
	"github.com/osse101/PredictionContest_Go/internal/ledger"
	"github.com/osse101/PredictionContest_Go/internal/metrics"
)

// Services bundles what the HTTP API exposes
type Services struct {
	Contest     contest.Service
	Ledger      ledger.Service
	Leaderboard leaderboard.Service
	EventLog    eventlog.Service
}

// Server is the contest HTTP API
type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pinger, svcs Services) *Server {
	r := chi.NewRouter()

	// Outermost first
	guard := NewClientGuard(ClientRatePerSecond, ClientBurst)

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, guard))
	r.Use(RateLimitMiddleware(trustedProxies, guard))
	r.Use(middleware.RequestSize(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	contests := handler.NewContestHandler(svcs.Contest, svcs.Ledger, svcs.Leaderboard, svcs.EventLog)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/contests", func(r chi.Router) {
			r.Get("/", contests.HandleListContests())
			r.Post("/", contests.HandleCreateContest())

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", contests.HandleGetContest())
				r.Post("/cancel", contests.HandleCancelContest())
				r.Get("/leaderboard", contests.HandleGetLeaderboard())
				r.Get("/result", contests.HandleGetResult())
				r.Get("/events", contests.HandleGetEvents())
				r.Get("/participants/{participantID}/history", contests.HandleGetHistory())
			})
		})

		r.Post("/predictions", contests.HandleSubmitPrediction())
		r.Post("/results", contests.HandleResolve())
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
