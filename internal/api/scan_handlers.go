package api

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dfsentinel/sentinel-web/internal/scan"
	"github.com/dfsentinel/sentinel-web/internal/storage"
)

var videoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".webm": true,
	".mkv":  true,
	".avi":  true,
}

// UploadHandler accepts the video, validates it client-error-style
// before any classifier involvement, and starts the scan session.
func (app *App) UploadHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, app.MaxUploadSize)

	if err := r.ParseMultipartForm(app.MaxUploadSize); err != nil {
		app.renderAlert(w, "File too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		app.renderAlert(w, "Please choose a video file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "video/") {
		ext := strings.ToLower(filepath.Ext(header.Filename))
		if contentType != "application/octet-stream" || !videoExtensions[ext] {
			app.renderAlert(w, "Only video files are supported")
			return
		}
	}

	storedName, err := app.Store.Save(file, storage.FileInfo{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
	})
	if err != nil {
		app.Logger.Error("failed to store upload", zap.Error(err))
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}

	session := app.Scans.Start(storedName, header.Filename)

	tmplPath := filepath.Join(app.templatePath, "partials", "scanning.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		http.Error(w, "Error loading template", http.StatusInternalServerError)
		return
	}

	data := struct {
		SessionID string
		Filename  string
		Size      string
	}{
		SessionID: session.ID,
		Filename:  header.Filename,
		Size:      formatFileSize(header.Size),
	}

	if err := tmpl.Execute(w, data); err != nil {
		http.Error(w, "Error rendering template", http.StatusInternalServerError)
		return
	}
}

// EventsHandler streams preview frames and the final verdict over SSE.
func (app *App) EventsHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	session, exists := app.Scans.Get(sessionID)
	if !exists {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	clientGone := r.Context().Done()

	for {
		select {
		case update, ok := <-session.Updates:
			if !ok {
				return
			}

			payload := update.Data
			if update.Type == scan.UpdateResult {
				status, pred, _, _ := app.Scans.Snapshot(sessionID)
				if status == scan.StatusDone && pred != nil {
					payload = BuildResultView(sessionID, pred)
				}
			}

			data, err := json.Marshal(payload)
			if err != nil {
				app.Logger.Error("failed to marshal update", zap.Error(err))
				continue
			}

			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", update.Type, string(data))
			flusher.Flush()

		case <-clientGone:
			return
		}
	}
}

// ResultJSONHandler backs the raw-JSON toggle on the result card.
func (app *App) ResultJSONHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	status, pred, errMessage, exists := app.Scans.Snapshot(sessionID)
	if !exists {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	resp := struct {
		Status     string      `json:"status"`
		Prediction interface{} `json:"prediction,omitempty"`
		Error      string      `json:"error,omitempty"`
	}{Status: string(status)}

	if pred != nil {
		resp.Prediction = pred
	}
	if errMessage != "" {
		resp.Error = errMessage
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// ResetHandler tears the session down and hands back the idle panel.
func (app *App) ResetHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	if err := app.Scans.Reset(sessionID); err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	tmplPath := filepath.Join(app.templatePath, "partials", "upload_panel.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		http.Error(w, "Error loading template", http.StatusInternalServerError)
		return
	}

	if err := tmpl.Execute(w, nil); err != nil {
		http.Error(w, "Error rendering template", http.StatusInternalServerError)
		return
	}
}
