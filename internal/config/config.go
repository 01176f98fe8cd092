package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	InferenceBaseURL      string `env:"INFERENCE_BASE_URL"      envDefault:"http://localhost:8000"`
	RequestTimeoutSeconds int    `env:"REQUEST_TIMEOUT_SECONDS" envDefault:"120"`

	MaxUploadSize int64  `env:"MAX_UPLOAD_SIZE" envDefault:"104857600"`
	UploadDir     string `env:"UPLOAD_DIR"      envDefault:"./uploads"`

	MaxPreviewFrames int `env:"MAX_PREVIEW_FRAMES" envDefault:"10"`
	FrameSize        int `env:"FRAME_SIZE"         envDefault:"320"`
	MinScanMillis    int `env:"MIN_SCAN_MILLIS"    envDefault:"2000"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) MinScanDelay() time.Duration {
	return time.Duration(c.MinScanMillis) * time.Millisecond
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
