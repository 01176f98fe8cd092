package preview

import (
	"bytes"
	"context"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestSampleFallsBackToPlaceholder(t *testing.T) {
	s := NewSampler(10, 320, zap.NewNop())

	tests := []struct {
		name      string
		videoPath func(t *testing.T) string
	}{
		{
			name: "missing file",
			videoPath: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nope.mp4")
			},
		},
		{
			name: "undecodable file",
			videoPath: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "garbage.mp4")
				if err := os.WriteFile(path, []byte("not a video at all"), 0644); err != nil {
					t.Fatalf("Failed to write file: %v", err)
				}
				return path
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var frames [][]byte
			count := s.Sample(context.Background(), tt.videoPath(t), func(jpegData []byte) {
				frames = append(frames, jpegData)
			})

			if count != 1 || len(frames) != 1 {
				t.Fatalf("Expected exactly 1 placeholder frame, got count=%d emitted=%d", count, len(frames))
			}

			img, err := jpeg.Decode(bytes.NewReader(frames[0]))
			if err != nil {
				t.Fatalf("Placeholder frame is not a valid JPEG: %v", err)
			}
			if img.Bounds().Dx() != 320 {
				t.Errorf("Expected 320px wide placeholder, got %d", img.Bounds().Dx())
			}
		})
	}
}

func TestSampleNeverExceedsMaxFrames(t *testing.T) {
	s := NewSampler(3, 160, zap.NewNop())

	var emitted int
	count := s.Sample(context.Background(), filepath.Join(t.TempDir(), "missing.mp4"), func([]byte) {
		emitted++
	})

	if count > 3 || emitted > 3 {
		t.Errorf("Sampler exceeded frame cap: count=%d emitted=%d", count, emitted)
	}
}

func TestSampleCancelledContext(t *testing.T) {
	s := NewSampler(10, 320, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A cancelled context must not hang and must not panic; a placeholder
	// is still acceptable since the probe fails before any ffmpeg work.
	s.Sample(ctx, filepath.Join(t.TempDir(), "missing.mp4"), func([]byte) {})
}

func TestPlaceholderFrame(t *testing.T) {
	data := PlaceholderFrame(320)
	if len(data) == 0 {
		t.Fatal("Placeholder frame is empty")
	}

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Placeholder is not a valid JPEG: %v", err)
	}

	if img.Bounds().Dx() != 320 || img.Bounds().Dy() != 180 {
		t.Errorf("Expected 320x180, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}

	// zero and negative widths fall back to the default size
	if d := PlaceholderFrame(0); len(d) == 0 {
		t.Error("Expected non-empty frame for zero width")
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    float64
		wantErr bool
	}{
		{
			name:   "standard ffmpeg stderr",
			output: "Input #0, mov,mp4\n  Duration: 00:01:30.50, start: 0.000000, bitrate: 1000 kb/s",
			want:   90.5,
		},
		{
			name:    "no duration line",
			output:  "some unrelated output",
			wantErr: true,
		},
		{
			name:    "malformed duration",
			output:  "Duration: N/A,",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDuration(tt.output)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error, got %f", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %f, got %f", tt.want, got)
			}
		})
	}
}
