package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dfsentinel/sentinel-web/internal/metrics"
	"github.com/dfsentinel/sentinel-web/internal/models"
)

const predictPath = "/predict_video/"

// Client talks to the external deepfake classifier. One best-effort
// request per scan; no retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type predictResponse struct {
	Label       string   `json:"label"`
	Confidence  float64  `json:"confidence"`
	Filename    string   `json:"filename"`
	ProcessedBy string   `json:"processed_by"`
	Frames      []string `json:"frames"`
	Error       string   `json:"error"`
}

type healthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// Classify uploads the video as multipart field "file" and parses the
// verdict. Errors come back as *Error with a Kind the UI can act on.
func (c *Client) Classify(ctx context.Context, video io.Reader, filename string) (*models.Prediction, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: "failed to build upload request", cause: err}
	}
	if _, err := io.Copy(part, video); err != nil {
		return nil, &Error{Kind: KindTransport, Message: "failed to read video for upload", cause: err}
	}
	if err := mw.Close(); err != nil {
		return nil, &Error{Kind: KindTransport, Message: "failed to build upload request", cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+predictPath, &body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: "failed to create request", cause: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.InferenceRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.logger.Warn("inference request failed", zap.Error(err))
		return nil, &Error{Kind: KindTransport, Message: "could not reach the analysis service", cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: "failed to read response", cause: err}
	}

	var parsed predictResponse
	decodeErr := json.Unmarshal(raw, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := parsed.Error
		if decodeErr != nil || msg == "" {
			msg = fmt.Sprintf("analysis service returned status %d", resp.StatusCode)
		}
		kind := KindServer
		if resp.StatusCode == http.StatusServiceUnavailable {
			kind = KindUnavailable
		}
		c.logger.Warn("inference returned error status",
			zap.Int("status", resp.StatusCode), zap.String("message", msg))
		return nil, &Error{Kind: kind, Message: msg, StatusCode: resp.StatusCode}
	}

	if decodeErr != nil {
		return nil, &Error{Kind: KindDecode, Message: "unexpected response from analysis service", cause: decodeErr}
	}

	// the backend can also signal failure inside a 200 body
	if parsed.Error != "" {
		return nil, &Error{Kind: KindServer, Message: parsed.Error, StatusCode: resp.StatusCode}
	}

	pred := &models.Prediction{
		Label:          parsed.Label,
		Confidence:     parsed.Confidence,
		Filename:       parsed.Filename,
		ProcessedBy:    parsed.ProcessedBy,
		EvidenceFrames: parsed.Frames,
	}
	pred.Confidence = pred.ClampedConfidence()

	c.logger.Info("inference complete",
		zap.String("label", pred.Label),
		zap.Float64("confidence", pred.Confidence),
		zap.Int("evidence_frames", len(pred.EvidenceFrames)))

	return pred, nil
}

// Health reports whether the classifier is reachable and has its model
// loaded, from the backend's root status endpoint.
func (c *Client) Health(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to reach analysis service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("analysis service returned status %d", resp.StatusCode)
	}

	var parsed healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return false, fmt.Errorf("failed to decode status response: %w", err)
	}

	return parsed.ModelLoaded, nil
}
