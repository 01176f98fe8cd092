package scan

import (
	"context"
	"sync"
	"time"

	"github.com/dfsentinel/sentinel-web/internal/models"
)

type Status string

const (
	StatusIdle     Status = "idle"
	StatusScanning Status = "scanning"
	StatusDone     Status = "done"
	StatusError    Status = "error"
)

// Session is one upload-to-verdict pass. At most one is active per
// browser; a new upload replaces the previous session wholesale.
type Session struct {
	ID          string
	Filename    string
	StoredName  string
	Status      Status
	Prediction  *models.Prediction
	ErrMessage  string
	StartedAt   time.Time
	CompletedAt *time.Time

	// Updates feeds the SSE stream; closed when the scan goroutine exits.
	Updates chan Update

	cancel      context.CancelFunc
	releaseOnce sync.Once
	release     func()
}

// Release tears down everything the session owns: the in-flight work,
// the scratch video file, the sampler frames. Safe to call from any
// exit path, any number of times.
func (s *Session) Release() {
	s.releaseOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
		if s.release != nil {
			s.release()
		}
	})
}

type Update struct {
	Type string
	Data interface{}
}

const (
	UpdateFrame  = "frame"
	UpdateResult = "result"
	UpdateError  = "error"
)

type FrameUpdate struct {
	SessionID  string `json:"session_id"`
	Index      int    `json:"index"`
	JPEGBase64 string `json:"jpeg_base64"`
}

type ErrorUpdate struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}
