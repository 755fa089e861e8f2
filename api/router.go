// Package api serves a read-only JSON view of the active survey and the
// result archive.
package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"surveybot/db"
	"surveybot/survey"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ResultStore is the read side of the archive.
type ResultStore interface {
	Result(ctx context.Context, id string) (*survey.Result, error)
	Recent(ctx context.Context, limit int) ([]db.Summary, error)
}

// App holds the API dependencies.
type App struct {
	community *survey.Community
	archive   ResultStore
	logger    *zap.Logger
}

// New creates the API. archive may be nil, in which case the archive routes
// answer 503.
func New(c *survey.Community, archive ResultStore, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{community: c, archive: archive, logger: logger.Named("api")}
}

// Router returns the HTTP handler.
func (a *App) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(a.requestLogger)

	r.Get("/healthz", a.HealthHandler)
	r.Get("/survey/active", a.ActiveSurveyHandler)
	r.Get("/surveys", a.ListSurveysHandler)
	r.Get("/surveys/{id}", a.GetSurveyHandler)

	return r
}

func (a *App) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		a.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)))
	})
}

func parseLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return defaultListLimit
	}
	if n > maxListLimit {
		return maxListLimit
	}
	return n
}
