package preview

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Sampler pulls evenly spaced stills from an uploaded video so the
// browser has something to cycle through while the classifier works.
// The frames are purely decorative: every failure degrades to a
// placeholder image and the caller never sees an error.
type Sampler struct {
	ffmpegPath string
	tempDir    string
	maxFrames  int
	frameSize  int
	logger     *zap.Logger
}

func NewSampler(maxFrames, frameSize int, logger *zap.Logger) *Sampler {
	if maxFrames <= 0 {
		maxFrames = 10
	}
	if frameSize <= 0 {
		frameSize = 320
	}

	s := &Sampler{
		maxFrames: maxFrames,
		frameSize: frameSize,
		logger:    logger,
	}

	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		logger.Warn("ffmpeg not found in PATH, previews degrade to placeholder", zap.Error(err))
		return s
	}
	s.ffmpegPath = ffmpegPath

	tempDir := filepath.Join(os.TempDir(), "sentinel-preview")
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		logger.Warn("failed to create preview temp directory", zap.Error(err))
		s.ffmpegPath = ""
		return s
	}
	s.tempDir = tempDir

	return s
}

// Sample extracts up to maxFrames JPEG stills at even time offsets and
// hands each to emit as soon as it is ready. If nothing can be decoded,
// emit receives exactly one placeholder frame. Returns the frame count.
func (s *Sampler) Sample(ctx context.Context, videoPath string, emit func(jpegData []byte)) int {
	if s.ffmpegPath == "" {
		emit(PlaceholderFrame(s.frameSize))
		return 1
	}

	duration, err := s.videoDuration(ctx, videoPath)
	if err != nil || duration <= 0 {
		s.logger.Debug("preview duration probe failed, using placeholder",
			zap.String("video", videoPath), zap.Error(err))
		emit(PlaceholderFrame(s.frameSize))
		return 1
	}

	emitted := 0
	interval := duration / float64(s.maxFrames+1)

	for i := 1; i <= s.maxFrames; i++ {
		if ctx.Err() != nil {
			break
		}

		timestamp := interval * float64(i)
		frameData, err := s.extractFrame(ctx, videoPath, timestamp)
		if err != nil {
			s.logger.Debug("preview frame extraction failed",
				zap.Float64("timestamp", timestamp), zap.Error(err))
			continue
		}

		emit(frameData)
		emitted++
	}

	if emitted == 0 && ctx.Err() == nil {
		emit(PlaceholderFrame(s.frameSize))
		return 1
	}

	return emitted
}

func (s *Sampler) videoDuration(ctx context.Context, videoPath string) (float64, error) {
	if _, err := os.Stat(videoPath); err != nil {
		return 0, fmt.Errorf("video file not accessible: %w", err)
	}

	// ffprobe gives the cleanest answer when available
	if ffprobePath, err := exec.LookPath("ffprobe"); err == nil {
		cmd := exec.CommandContext(ctx, ffprobePath,
			"-v", "error",
			"-show_entries", "format=duration",
			"-of", "default=noprint_wrappers=1:nokey=1",
			videoPath)

		var stdout bytes.Buffer
		cmd.Stdout = &stdout

		if err := cmd.Run(); err == nil {
			durationStr := strings.TrimSpace(stdout.String())
			if duration, err := strconv.ParseFloat(durationStr, 64); err == nil && duration > 0 {
				return duration, nil
			}
		}
	}

	// Fallback: parse the Duration line out of ffmpeg's stderr
	cmd := exec.CommandContext(ctx, s.ffmpegPath,
		"-i", videoPath,
		"-f", "null",
		"-")

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	_ = cmd.Run()

	return parseDuration(stderr.String())
}

func parseDuration(output string) (float64, error) {
	const prefix = "Duration: "
	start := strings.Index(output, prefix)
	if start == -1 {
		return 0, fmt.Errorf("duration not found in ffmpeg output")
	}

	start += len(prefix)
	end := strings.Index(output[start:], ",")
	if end == -1 {
		return 0, fmt.Errorf("invalid duration format")
	}

	parts := strings.Split(output[start:start+end], ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid duration format: %s", output[start:start+end])
	}

	hours, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, err
	}
	minutes, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, err
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, err
	}

	return hours*3600 + minutes*60 + seconds, nil
}

func (s *Sampler) extractFrame(ctx context.Context, videoPath string, timestamp float64) ([]byte, error) {
	tempFile := filepath.Join(s.tempDir, fmt.Sprintf("frame_%f.jpg", timestamp))
	defer os.Remove(tempFile)

	args := []string{
		"-ss", fmt.Sprintf("%.2f", timestamp),
		"-i", videoPath,
		"-vframes", "1",
		"-vf", fmt.Sprintf("scale='min(%d,iw)':-2", s.frameSize),
		"-q:v", "4",
		"-f", "mjpeg",
		tempFile,
	}

	cmd := exec.CommandContext(ctx, s.ffmpegPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to extract frame at %.2f: %w", timestamp, err)
	}

	file, err := os.Open(tempFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open extracted frame: %w", err)
	}
	defer file.Close()

	// Decode and re-encode so a truncated ffmpeg write never reaches the UI
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}

	return buf.Bytes(), nil
}

func (s *Sampler) Cleanup() error {
	if s.tempDir == "" {
		return nil
	}
	return os.RemoveAll(s.tempDir)
}
