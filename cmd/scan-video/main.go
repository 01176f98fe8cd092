package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/dfsentinel/sentinel-web/internal/config"
	"github.com/dfsentinel/sentinel-web/internal/inference"
	"github.com/dfsentinel/sentinel-web/internal/preview"
)

// Runs one video through the same sampling and classification path the
// web UI uses, from the command line.
func main() {
	var (
		videoPath = flag.String("video", "", "Path to the video file")
		framesDir = flag.String("frames-out", "", "Optional directory to dump preview frames into")
	)
	flag.Parse()

	if *videoPath == "" {
		log.Fatal("Please provide a video path with -video flag")
	}
	if _, err := os.Stat(*videoPath); err != nil {
		log.Fatal("Video not accessible:", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	ctx := context.Background()
	zlog := zap.NewNop()

	sampler := preview.NewSampler(cfg.MaxPreviewFrames, cfg.FrameSize, zlog)
	defer sampler.Cleanup()

	count := 0
	sampler.Sample(ctx, *videoPath, func(jpegData []byte) {
		count++
		if *framesDir == "" {
			return
		}
		if err := os.MkdirAll(*framesDir, 0755); err != nil {
			log.Printf("Failed to create frames dir: %v", err)
			return
		}
		out := filepath.Join(*framesDir, fmt.Sprintf("preview_%02d.jpg", count))
		if err := os.WriteFile(out, jpegData, 0644); err != nil {
			log.Printf("Failed to write frame: %v", err)
		}
	})
	fmt.Printf("Sampled %d preview frames\n", count)

	video, err := os.Open(*videoPath)
	if err != nil {
		log.Fatal("Failed to open video:", err)
	}
	defer video.Close()

	client := inference.NewClient(cfg.InferenceBaseURL, cfg.RequestTimeout(), zlog)

	fmt.Printf("Classifying via %s ...\n", cfg.InferenceBaseURL)
	start := time.Now()

	pred, err := client.Classify(ctx, video, filepath.Base(*videoPath))
	if err != nil {
		log.Fatal("Classification failed:", err)
	}

	fmt.Printf("\nLabel:      %s\n", pred.Label)
	fmt.Printf("Confidence: %.1f%%\n", pred.Percent())
	fmt.Printf("Evidence:   %d annotated frames\n", len(pred.EvidenceFrames))
	fmt.Printf("Elapsed:    %v\n", time.Since(start).Round(time.Millisecond))
}
