// Package web serves the study companion over HTTP: a server-rendered page,
// form actions, a JSON state API, a websocket for scroll reports and a
// spreadsheet export of progress.
package web

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/p-n-ai/studymate/internal/app"
	"github.com/p-n-ai/studymate/internal/syllabus"
)

// Config holds dependencies for the HTTP handlers.
type Config struct {
	Controller  *app.Controller
	Syllabus    *syllabus.Syllabus
	Exam        string
	CORSOrigins []string
}

type server struct {
	ctrl           *app.Controller
	syllabus       *syllabus.Syllabus
	exam           string
	originPatterns []string
}

// NewRouter creates the HTTP router.
func NewRouter(cfg Config) http.Handler {
	s := &server{
		ctrl:           cfg.Controller,
		syllabus:       cfg.Syllabus,
		exam:           cfg.Exam,
		originPatterns: originHosts(cfg.CORSOrigins),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", handleHealthz)
	r.Get("/readyz", s.handleReadyz)

	r.Get("/", s.handlePage)
	r.Post("/sections", s.handleSelectSection)
	r.Post("/generate", s.handleGenerate)
	r.Post("/topics/toggle", s.handleToggle)
	r.Route("/quiz/{index}", func(qr chi.Router) {
		qr.Post("/select", s.handleQuizSelect)
		qr.Post("/reveal", s.handleQuizReveal)
	})
	r.Post("/scroll", s.handleScroll)
	r.Get("/scroll/restore", s.handleRestore)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/api/state", s.handleState)
	r.Get("/export/progress.xlsx", s.handleExport)

	return r
}

// requestLogger logs each request with slog once it completes.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		slog.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// originHosts turns allowed origins into websocket origin patterns.
func originHosts(origins []string) []string {
	var hosts []string
	for _, o := range origins {
		if o == "*" {
			hosts = append(hosts, "*")
			continue
		}
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			hosts = append(hosts, u.Host)
		}
	}
	return hosts
}
