package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/checklist-epi-api/internal/dto"
	"github.com/noah-isme/checklist-epi-api/internal/models"
	appErrors "github.com/noah-isme/checklist-epi-api/pkg/errors"
	"github.com/noah-isme/checklist-epi-api/pkg/jobs"
)

// EvidenceJobType identifies evidence encoding jobs.
const EvidenceJobType = "evidence.encode"

var errEvidenceBusy = appErrors.New("EVIDENCE_QUEUE_FULL", http.StatusServiceUnavailable, "evidence queue is full, try again")

type evidenceSessions interface {
	Get(ctx context.Context, id string) (models.Session, error)
	AttachEvidence(ctx context.Context, id string, version, itemID int, dataURL string) (bool, error)
}

type jobQueue interface {
	Enqueue(job jobs.Job) error
}

// EvidenceServiceConfig tunes upload limits.
type EvidenceServiceConfig struct {
	MaxFileSize int64
}

// EvidenceUpload is the payload of an evidence job. Version is the catalog
// version observed when the upload was accepted.
type EvidenceUpload struct {
	SessionID   string
	ItemID      int
	Version     int
	ContentType string
	Data        []byte
}

// EvidenceService accepts photo uploads and encodes them into data URLs in
// the background.
type EvidenceService struct {
	sessions evidenceSessions
	queue    jobQueue
	cfg      EvidenceServiceConfig
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewEvidenceService constructs the service. The queue is attached with
// UseQueue once it exists, since the queue dispatches to Process.
func NewEvidenceService(sessions evidenceSessions, cfg EvidenceServiceConfig, metrics *MetricsService, logger *zap.Logger) *EvidenceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = 5 << 20
	}
	return &EvidenceService{sessions: sessions, cfg: cfg, metrics: metrics, logger: logger}
}

// UseQueue sets the queue jobs are submitted to.
func (s *EvidenceService) UseQueue(queue jobQueue) {
	s.queue = queue
}

// MaxFileSize reports the upload limit in bytes.
func (s *EvidenceService) MaxFileSize() int64 {
	return s.cfg.MaxFileSize
}

// Submit validates an image upload for an item and queues its encoding.
func (s *EvidenceService) Submit(ctx context.Context, sessionID string, itemID int, r io.Reader) (*dto.EvidenceAccepted, error) {
	if s.queue == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "evidence queue not configured")
	}
	data, err := io.ReadAll(io.LimitReader(r, s.cfg.MaxFileSize+1))
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unable to read uploaded file")
	}
	if int64(len(data)) > s.cfg.MaxFileSize {
		return nil, appErrors.Clone(appErrors.ErrPayloadTooLarge, fmt.Sprintf("file exceeds %d bytes", s.cfg.MaxFileSize))
	}
	if len(data) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "uploaded file is empty")
	}
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, appErrors.Clone(appErrors.ErrUnsupportedMedia, "evidence must be an image")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !hasItem(session.Items, itemID) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "checklist item not found")
	}

	job := jobs.Job{
		ID:   uuid.NewString(),
		Type: EvidenceJobType,
		Payload: EvidenceUpload{
			SessionID:   sessionID,
			ItemID:      itemID,
			Version:     session.CatalogVersion,
			ContentType: contentType,
			Data:        data,
		},
	}
	if err := s.queue.Enqueue(job); err != nil {
		if errors.Is(err, jobs.ErrQueueFull) {
			return nil, errEvidenceBusy
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue evidence")
	}
	return &dto.EvidenceAccepted{JobID: job.ID, ItemID: itemID, CatalogVersion: session.CatalogVersion}, nil
}

// Process encodes the upload and attaches it to the item. Uploads that
// target a reloaded catalog or a deleted session are dropped.
func (s *EvidenceService) Process(ctx context.Context, job jobs.Job) error {
	upload, ok := job.Payload.(EvidenceUpload)
	if !ok {
		return fmt.Errorf("evidence job %s: unexpected payload %T", job.ID, job.Payload)
	}
	dataURL := "data:" + upload.ContentType + ";base64," + base64.StdEncoding.EncodeToString(upload.Data)

	attached, err := s.sessions.AttachEvidence(ctx, upload.SessionID, upload.Version, upload.ItemID, dataURL)
	if err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) && appErr.Code == appErrors.ErrNotFound.Code {
			s.logger.Info("evidence dropped, session gone", zap.String("job_id", job.ID), zap.String("session_id", upload.SessionID))
			s.metrics.RecordEvidence(ResultStale)
			return nil
		}
		return err
	}
	if !attached {
		s.logger.Info("evidence dropped, catalog changed",
			zap.String("job_id", job.ID),
			zap.String("session_id", upload.SessionID),
			zap.Int("item_id", upload.ItemID),
			zap.Int("version", upload.Version),
		)
		s.metrics.RecordEvidence(ResultStale)
		return nil
	}
	s.metrics.RecordEvidence(ResultSuccess)
	return nil
}

// OnResult is the queue hook recording jobs that failed for good.
func (s *EvidenceService) OnResult(job jobs.Job, err error) {
	if err == nil {
		return
	}
	s.logger.Error("evidence job failed", zap.String("job_id", job.ID), zap.Error(err))
	s.metrics.RecordEvidence(ResultFailure)
}

func hasItem(items []models.LineItem, id int) bool {
	for _, item := range items {
		if item.ID == id {
			return true
		}
	}
	return false
}
