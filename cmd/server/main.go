package main

import (
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/dfsentinel/sentinel-web/internal/api"
	"github.com/dfsentinel/sentinel-web/internal/config"
	"github.com/dfsentinel/sentinel-web/internal/inference"
	"github.com/dfsentinel/sentinel-web/internal/preview"
	"github.com/dfsentinel/sentinel-web/internal/scan"
	"github.com/dfsentinel/sentinel-web/internal/storage"
	"github.com/dfsentinel/sentinel-web/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to init logger:", err)
	}
	defer zlog.Sync()

	store, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		zlog.Fatal("failed to initialize scratch storage", zap.Error(err))
	}

	sampler := preview.NewSampler(cfg.MaxPreviewFrames, cfg.FrameSize, zlog)
	defer sampler.Cleanup()

	client := inference.NewClient(cfg.InferenceBaseURL, cfg.RequestTimeout(), zlog)
	scans := scan.NewService(sampler, client, store, cfg.MinScanDelay(), zlog)

	app := api.NewApp(scans, store, client, cfg.MaxUploadSize, zlog)
	router := api.NewRouter(app)

	zlog.Info("server starting",
		zap.String("port", cfg.Port),
		zap.String("inference_base_url", cfg.InferenceBaseURL),
		zap.String("upload_dir", cfg.UploadDir),
		zap.Int64("max_upload_size", cfg.MaxUploadSize),
		zap.Duration("min_scan_delay", cfg.MinScanDelay()))

	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		zlog.Fatal("server exited", zap.Error(err))
	}
}
