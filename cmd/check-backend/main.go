package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/dfsentinel/sentinel-web/internal/config"
	"github.com/dfsentinel/sentinel-web/internal/inference"
)

// Quick connectivity report against the classifier backend. Exits
// non-zero when the model is unavailable so it can sit in a deploy
// healthcheck.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	fmt.Println("Checking classifier backend")
	fmt.Println("===========================")
	fmt.Printf("Endpoint: %s\n\n", cfg.InferenceBaseURL)

	client := inference.NewClient(cfg.InferenceBaseURL, 10*time.Second, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	modelLoaded, err := client.Health(ctx)
	if err != nil {
		fmt.Printf("Backend unreachable: %v\n", err)
		os.Exit(1)
	}

	if !modelLoaded {
		fmt.Println("Backend reachable but the model is NOT loaded.")
		fmt.Println("Uploads will fail with a 503 until it is.")
		os.Exit(1)
	}

	fmt.Println("Backend reachable, model loaded. Ready for uploads.")
}
