package main

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/diewo77/docugen/internal/handlers"
	"github.com/diewo77/docugen/internal/service"
	"github.com/diewo77/docugen/internal/storage"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux *http.ServeMux
	log *zap.Logger
}

// NewApp creates a new application with all routes configured.
func NewApp(db *gorm.DB, docs *service.Documents, store storage.ObjectStore, log *zap.Logger) *App {
	app := &App{
		mux: http.NewServeMux(),
		log: log,
	}

	th := handlers.NewTemplateHandler(db)
	dh := handlers.NewDocumentHandler(docs)
	bh := handlers.NewBrandingHandler(db, store)

	// Templates
	app.mux.HandleFunc("GET /api/templates", th.List)
	app.mux.HandleFunc("POST /api/templates", th.Create)
	app.mux.HandleFunc("GET /api/templates/{id}", th.Get)
	app.mux.HandleFunc("PUT /api/templates/{id}", th.Update)
	app.mux.HandleFunc("DELETE /api/templates/{id}", th.Delete)

	// Documents
	app.mux.HandleFunc("GET /api/documents", dh.List)
	app.mux.HandleFunc("POST /api/documents", dh.Generate)
	app.mux.HandleFunc("POST /api/documents/preview", dh.Preview)
	app.mux.HandleFunc("GET /api/documents/{id}", dh.Get)
	app.mux.HandleFunc("GET /api/documents/{id}/download", dh.Download)
	app.mux.HandleFunc("DELETE /api/documents/{id}", dh.Delete)

	// Branding
	app.mux.HandleFunc("GET /api/branding", bh.Get)
	app.mux.HandleFunc("PUT /api/branding", bh.Update)
	app.mux.HandleFunc("POST /api/branding/logo", bh.UploadLogo)

	app.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return app
}

// ServeHTTP implements http.Handler with request logging.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	a.mux.ServeHTTP(rec, r)
	a.log.Info("request",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", rec.status),
		zap.Duration("duration", time.Since(start)))
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
