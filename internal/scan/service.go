package scan

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dfsentinel/sentinel-web/internal/inference"
	"github.com/dfsentinel/sentinel-web/internal/metrics"
	"github.com/dfsentinel/sentinel-web/internal/models"
	"github.com/dfsentinel/sentinel-web/internal/preview"
	"github.com/dfsentinel/sentinel-web/internal/storage"
)

// Classifier is the one call the scan makes to the outside world.
type Classifier interface {
	Classify(ctx context.Context, video io.Reader, filename string) (*models.Prediction, error)
}

type Service struct {
	sampler    *preview.Sampler
	classifier Classifier
	store      storage.Store
	minDelay   time.Duration
	logger     *zap.Logger

	sessions   map[string]*Session
	sessionsMu sync.RWMutex
}

func NewService(sampler *preview.Sampler, classifier Classifier, store storage.Store, minDelay time.Duration, logger *zap.Logger) *Service {
	if minDelay < 0 {
		minDelay = 0
	}

	return &Service{
		sampler:    sampler,
		classifier: classifier,
		store:      store,
		minDelay:   minDelay,
		logger:     logger,
		sessions:   make(map[string]*Session),
	}
}

// Start moves a fresh session into StatusScanning and kicks off the
// background pass: preview sampling streams frames while the classifier
// request runs behind the minimum-delay gate.
func (s *Service) Start(storedName, filename string) *Session {
	ctx, cancel := context.WithCancel(context.Background())

	session := &Session{
		ID:         uuid.New().String(),
		Filename:   filename,
		StoredName: storedName,
		Status:     StatusScanning,
		StartedAt:  time.Now(),
		Updates:    make(chan Update, 64),
		cancel:     cancel,
	}
	session.release = func() {
		if err := s.store.Delete(storedName); err != nil {
			s.logger.Debug("scratch file already gone", zap.String("file", storedName), zap.Error(err))
		}
	}

	s.sessionsMu.Lock()
	s.sessions[session.ID] = session
	s.sessionsMu.Unlock()

	metrics.ScansStartedTotal.Inc()
	metrics.ActiveScans.Inc()

	go s.run(ctx, session)

	return session
}

func (s *Service) Get(sessionID string) (*Session, bool) {
	s.sessionsMu.RLock()
	defer s.sessionsMu.RUnlock()

	session, exists := s.sessions[sessionID]
	return session, exists
}

// Snapshot returns the session's terminal-state fields without racing
// the scan goroutine.
func (s *Service) Snapshot(sessionID string) (Status, *models.Prediction, string, bool) {
	s.sessionsMu.RLock()
	defer s.sessionsMu.RUnlock()

	session, exists := s.sessions[sessionID]
	if !exists {
		return StatusIdle, nil, "", false
	}
	return session.Status, session.Prediction, session.ErrMessage, true
}

// Reset releases the session and forgets it, returning the UI to Idle.
func (s *Service) Reset(sessionID string) error {
	s.sessionsMu.Lock()
	session, exists := s.sessions[sessionID]
	if exists {
		delete(s.sessions, sessionID)
	}
	s.sessionsMu.Unlock()

	if !exists {
		return fmt.Errorf("session not found")
	}

	s.logger.Info("scan reset", zap.String("session", sessionID))
	session.Release()
	return nil
}

func (s *Service) run(ctx context.Context, session *Session) {
	defer close(session.Updates)

	s.logger.Info("scan started",
		zap.String("session", session.ID),
		zap.String("filename", session.Filename))

	videoPath := s.store.Path(session.StoredName)

	// Preview sampling is decorative and must never delay the verdict;
	// it gets its own cancel so the cycling stops once the result lands.
	sampleCtx, stopSampling := context.WithCancel(ctx)
	samplingDone := make(chan struct{})
	go func() {
		defer close(samplingDone)
		index := 0
		s.sampler.Sample(sampleCtx, videoPath, func(jpegData []byte) {
			metrics.PreviewFramesTotal.Inc()
			update := Update{
				Type: UpdateFrame,
				Data: FrameUpdate{
					SessionID:  session.ID,
					Index:      index,
					JPEGBase64: base64.StdEncoding.EncodeToString(jpegData),
				},
			}
			index++
			// never block the sampler on a slow or absent SSE consumer
			select {
			case session.Updates <- update:
			default:
			}
		})
	}()

	pred, err := inference.Gate(ctx, s.minDelay, func() (*models.Prediction, error) {
		video, openErr := s.store.Open(session.StoredName)
		if openErr != nil {
			return nil, fmt.Errorf("opening stored video: %w", openErr)
		}
		defer video.Close()
		return s.classifier.Classify(ctx, video, session.Filename)
	})

	stopSampling()
	<-samplingDone

	now := time.Now()
	metrics.ActiveScans.Dec()

	if ctx.Err() != nil {
		// reset or shutdown already tore the session down
		s.logger.Info("scan cancelled", zap.String("session", session.ID))
		return
	}

	if err != nil {
		message := "Analysis failed. Please try again."
		var infErr *inference.Error
		if errors.As(err, &infErr) {
			message = infErr.Message
		}

		s.sessionsMu.Lock()
		session.Status = StatusError
		session.ErrMessage = message
		session.CompletedAt = &now
		s.sessionsMu.Unlock()

		metrics.ScansCompletedTotal.WithLabelValues(string(StatusError)).Inc()
		s.logger.Warn("scan failed", zap.String("session", session.ID), zap.Error(err))

		session.Updates <- Update{
			Type: UpdateError,
			Data: ErrorUpdate{SessionID: session.ID, Message: message},
		}
		session.Release()
		return
	}

	s.sessionsMu.Lock()
	session.Status = StatusDone
	session.Prediction = pred
	session.CompletedAt = &now
	s.sessionsMu.Unlock()

	metrics.ScansCompletedTotal.WithLabelValues(string(StatusDone)).Inc()
	s.logger.Info("scan complete",
		zap.String("session", session.ID),
		zap.String("label", pred.Label),
		zap.Float64("confidence", pred.Confidence),
		zap.Duration("elapsed", time.Since(session.StartedAt)))

	session.Updates <- Update{Type: UpdateResult, Data: pred}

	// the scratch video has served its purpose; only the verdict remains
	session.Release()
}
