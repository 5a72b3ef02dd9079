package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/checklist-epi-api/internal/checklist"
	"github.com/noah-isme/checklist-epi-api/internal/dto"
	"github.com/noah-isme/checklist-epi-api/internal/models"
	appErrors "github.com/noah-isme/checklist-epi-api/pkg/errors"
	"github.com/noah-isme/checklist-epi-api/pkg/export"
	"github.com/noah-isme/checklist-epi-api/pkg/storage"
)

// Content types of the rendered formats.
const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
	ContentTypeCSV  = "text/csv; charset=utf-8"
)

var contentTypes = map[string]string{
	dto.ExportFormatXLSX: ContentTypeXLSX,
	dto.ExportFormatPDF:  ContentTypePDF,
	dto.ExportFormatCSV:  ContentTypeCSV,
}

var generationMessages = map[string]string{
	dto.ExportFormatXLSX: "Erro ao gerar Excel",
	dto.ExportFormatPDF:  "Erro ao gerar PDF",
	dto.ExportFormatCSV:  "Erro ao gerar CSV",
}

type documentRenderer interface {
	Render(doc export.Document) ([]byte, error)
}

type exportStorage interface {
	Save(name string, data []byte) (string, error)
	Read(name string) ([]byte, error)
	CleanupOlderThan(dir string, ttl time.Duration) ([]string, error)
}

type sessionReader interface {
	Get(ctx context.Context, id string) (models.Session, error)
}

// ExportServiceConfig tunes export behaviour.
type ExportServiceConfig struct {
	APIPrefix string
	Location  *time.Location
	ResultTTL time.Duration
}

// ExportRenderers groups the document renderers by format.
type ExportRenderers struct {
	XLSX documentRenderer
	PDF  documentRenderer
	CSV  documentRenderer
}

// ExportService turns checklists into downloadable documents and archives
// them behind signed URLs on request.
type ExportService struct {
	sessions  sessionReader
	storage   exportStorage
	signer    *storage.SignedURLSigner
	renderers map[string]documentRenderer
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	cfg       ExportServiceConfig
	now       func() time.Time
}

// NewExportService constructs an ExportService. Missing renderers fall back
// to logo-less defaults.
func NewExportService(sessions sessionReader, store exportStorage, signer *storage.SignedURLSigner, renderers ExportRenderers, cfg ExportServiceConfig, metrics *MetricsService, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if renderers.XLSX == nil {
		renderers.XLSX = export.NewXLSXExporter(nil)
	}
	if renderers.PDF == nil {
		renderers.PDF = export.NewPDFExporter(nil)
	}
	if renderers.CSV == nil {
		renderers.CSV = export.NewCSVExporter()
	}
	return &ExportService{
		sessions: sessions,
		storage:  store,
		signer:   signer,
		renderers: map[string]documentRenderer{
			dto.ExportFormatXLSX: renderers.XLSX,
			dto.ExportFormatPDF:  renderers.PDF,
			dto.ExportFormatCSV:  renderers.CSV,
		},
		validator: validator.New(),
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// RenderPayload renders a checklist posted by a client.
func (s *ExportService) RenderPayload(ctx context.Context, format string, req dto.ChecklistExportRequest) (*dto.ExportFile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	rows := make([]export.Row, 0, len(req.Lines))
	for _, line := range req.Lines {
		rows = append(rows, export.Row{
			Category:    line.Category,
			Description: line.Description,
			Found:       line.FoundQty.Value,
			Note:        line.Note,
		})
	}
	input := export.ChecklistInput{
		Sector:       req.Sector,
		Mode:         req.Mode,
		TeamClass:    req.TeamClass,
		TeamCode:     req.TeamCode,
		Electrician1: req.Electrician1,
		Electrician2: req.Electrician2,
		Collaborator: req.Collaborator,
		Responsible:  req.Responsible,
		Rows:         rows,
	}
	return s.render(format, input)
}

// RenderSession renders the filtered items of a live session.
func (s *ExportService) RenderSession(ctx context.Context, id, format string) (*dto.ExportFile, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.render(format, SessionExportInput(session))
}

// SessionExportInput maps a session header and its visible items.
func SessionExportInput(session models.Session) export.ChecklistInput {
	visible := checklist.Visible(session)
	rows := make([]export.Row, 0, len(visible))
	for _, item := range visible {
		rows = append(rows, export.Row{
			Category:    string(item.Category),
			Description: item.Description,
			Found:       item.FoundQty,
			Note:        item.Note,
		})
	}
	return export.ChecklistInput{
		Sector:       string(session.Sector),
		Mode:         string(session.Mode),
		TeamClass:    string(session.TeamClass),
		TeamCode:     session.TeamCode,
		Electrician1: session.Electrician1,
		Electrician2: session.Electrician2,
		Collaborator: session.Collaborator,
		Responsible:  session.Responsible,
		Rows:         rows,
	}
}

// Store archives a rendered file and returns its signed download URL.
func (s *ExportService) Store(ctx context.Context, file *dto.ExportFile) (*dto.StoredExport, error) {
	if s.storage == nil || s.signer == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "export archive not configured")
	}
	id := uuid.NewString()
	relPath, err := s.storage.Save(path.Join(id, file.Filename), file.Payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store export")
	}
	token, expiresAt, err := s.signer.Generate(id, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign export")
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}
	s.logger.Info("export archived", zap.String("export_id", id), zap.String("path", relPath))
	return &dto.StoredExport{
		Filename:  file.Filename,
		URL:       fmt.Sprintf("%s/exports/%s", prefix, token),
		ExpiresAt: expiresAt,
	}, nil
}

// Download resolves a signed token to the archived file.
func (s *ExportService) Download(ctx context.Context, token string) (*dto.ExportFile, error) {
	if s.storage == nil || s.signer == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export not found")
	}
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		if errors.Is(err, storage.ErrTokenExpired) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "export link expired")
		}
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export not found")
	}
	payload, err := s.storage.Read(relPath)
	if err != nil {
		s.logger.Warn("archived export unavailable", zap.String("path", relPath), zap.Error(err))
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export not found")
	}
	filename := path.Base(relPath)
	return &dto.ExportFile{
		Filename:    filename,
		ContentType: contentTypes[strings.TrimPrefix(path.Ext(filename), ".")],
		Payload:     payload,
	}, nil
}

// Cleanup removes archived files older than ttl (the configured TTL when
// ttl <= 0).
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if s.storage == nil {
		return nil, nil
	}
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(".", ttl)
}

func (s *ExportService) render(format string, input export.ChecklistInput) (*dto.ExportFile, error) {
	if format == "" {
		format = dto.ExportFormatXLSX
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
	doc := export.BuildChecklistDocument(input, s.now().In(s.cfg.Location))
	payload, err := renderer.Render(doc)
	s.metrics.RecordExport(format, err)
	if err != nil {
		s.logger.Error("render checklist document failed", zap.String("format", format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrGeneration.Code, appErrors.ErrGeneration.Status, generationMessages[format])
	}
	return &dto.ExportFile{
		Filename:    doc.Filename(format),
		ContentType: contentTypes[format],
		Payload:     payload,
	}, nil
}
