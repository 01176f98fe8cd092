package api

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/dfsentinel/sentinel-web/internal/scan"
	"github.com/dfsentinel/sentinel-web/internal/storage"
)

type HealthChecker interface {
	Health(ctx context.Context) (bool, error)
}

type App struct {
	Scans         *scan.Service
	Store         storage.Store
	Inference     HealthChecker
	MaxUploadSize int64
	Logger        *zap.Logger
	templatePath  string
}

func NewApp(scans *scan.Service, store storage.Store, inference HealthChecker, maxUploadSize int64, logger *zap.Logger) *App {
	return &App{
		Scans:         scans,
		Store:         store,
		Inference:     inference,
		MaxUploadSize: maxUploadSize,
		Logger:        logger,
		templatePath:  filepath.Join("web", "templates"),
	}
}

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

func (app *App) HomeHandler(w http.ResponseWriter, r *http.Request) {
	tmplPath := filepath.Join(app.templatePath, "index.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		http.Error(w, "Error loading template", http.StatusInternalServerError)
		return
	}

	if err := tmpl.Execute(w, HomePage()); err != nil {
		http.Error(w, "Error rendering template", http.StatusInternalServerError)
		return
	}
}

// HealthHandler reports this service plus the state of the classifier
// backend, mirroring the backend's own root status shape.
func (app *App) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := struct {
		Status      string `json:"status"`
		ModelLoaded bool   `json:"model_loaded"`
		Backend     string `json:"backend"`
	}{Status: "active"}

	modelLoaded, err := app.Inference.Health(ctx)
	if err != nil {
		status.Backend = "unreachable"
		app.Logger.Debug("backend health probe failed", zap.Error(err))
	} else {
		status.Backend = "reachable"
		status.ModelLoaded = modelLoaded
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

func (app *App) renderAlert(w http.ResponseWriter, message string) {
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprintf(w, `<div class="alert alert-error">%s</div>`, template.HTMLEscapeString(message))
}

func formatFileSize(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case size >= GB:
		return fmt.Sprintf("%.2f GB", float64(size)/float64(GB))
	case size >= MB:
		return fmt.Sprintf("%.2f MB", float64(size)/float64(MB))
	case size >= KB:
		return fmt.Sprintf("%.2f KB", float64(size)/float64(KB))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
