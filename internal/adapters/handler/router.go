package handler

import (
	_ "embed"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

//go:embed static/index.html
var indexPage []byte

// NewRouter serves the upload form on GET /, uploads on POST /upload and
// answers everything else with 404.
func NewRouter(logger zerolog.Logger, upload http.Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(hlog.NewHandler(logger))
	r.Use(hlog.RequestIDHandler("requestId", "X-Request-Id"))
	r.Use(hlog.AccessHandler(accessLog))
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", index)
	r.Method(http.MethodPost, "/upload", upload)

	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	return r
}

func index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(indexPage); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("failed writing index page")
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeText(w, r, http.StatusNotFound, "Not Found")
}

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Stringer("url", r.URL).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("request handled")
}

func writeText(w http.ResponseWriter, r *http.Request, code int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	if _, err := w.Write([]byte(body)); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("failed writing response")
	}
}
