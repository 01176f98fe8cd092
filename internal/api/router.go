package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", app.HomeHandler)
	r.Get("/ping", PingHandler)
	r.Get("/health", app.HealthHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/scan", app.UploadHandler)
	r.Get("/scan/{id}/events", app.EventsHandler)
	r.Get("/scan/{id}/result.json", app.ResultJSONHandler)
	r.Post("/scan/{id}/reset", app.ResetHandler)

	fileServer := http.FileServer(http.Dir("./web/static"))
	r.Handle("/static/*", http.StripPrefix("/static", fileServer))

	return r
}
