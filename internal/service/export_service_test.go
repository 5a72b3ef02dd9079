package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/checklist-epi-api/internal/dto"
	"github.com/noah-isme/checklist-epi-api/internal/models"
	"github.com/noah-isme/checklist-epi-api/pkg/export"
	"github.com/noah-isme/checklist-epi-api/pkg/storage"
)

type rendererStub struct {
	doc export.Document
	err error
}

func (r *rendererStub) Render(doc export.Document) ([]byte, error) {
	r.doc = doc
	if r.err != nil {
		return nil, r.err
	}
	return []byte("rendered"), nil
}

type sessionReaderStub struct {
	session models.Session
	err     error
}

func (s sessionReaderStub) Get(ctx context.Context, id string) (models.Session, error) {
	return s.session, s.err
}

func exportRequest() dto.ChecklistExportRequest {
	return dto.ChecklistExportRequest{
		Sector:       "STC",
		Mode:         "VIATURA",
		TeamClass:    "URBANO",
		TeamCode:     "ECBSN01",
		Electrician1: "Ana",
		Electrician2: "Bruno",
		Responsible:  "Carla",
		Lines: []dto.ExportLine{
			{Category: "EPC", Description: "Cone de sinalização", FoundQty: dto.NewQuantity(2)},
			{Category: "Ferr. Colet", Description: "Escada extensível", Note: "sem sapata"},
		},
	}
}

func newTestExportService(t *testing.T, renderers ExportRenderers) (*ExportService, *storage.LocalStorage) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("secret", time.Hour)
	svc := NewExportService(nil, store, signer, renderers, ExportServiceConfig{APIPrefix: "/api/v1"}, NewMetricsService(), zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC) }
	return svc, store
}

func TestExportServiceRenderPayloadFormats(t *testing.T) {
	svc, _ := newTestExportService(t, ExportRenderers{})
	ctx := context.Background()

	cases := []struct {
		format      string
		filename    string
		contentType string
	}{
		{"", "checklist_epi_epc_ferramental.xlsx", ContentTypeXLSX},
		{"xlsx", "checklist_epi_epc_ferramental.xlsx", ContentTypeXLSX},
		{"pdf", "checklist_epi_epc_ferramental.pdf", ContentTypePDF},
		{"csv", "checklist_epi_epc_ferramental.csv", ContentTypeCSV},
	}
	for _, tc := range cases {
		t.Run("format_"+tc.format, func(t *testing.T) {
			file, err := svc.RenderPayload(ctx, tc.format, exportRequest())
			require.NoError(t, err)
			assert.Equal(t, tc.filename, file.Filename)
			assert.Equal(t, tc.contentType, file.ContentType)
			assert.NotEmpty(t, file.Payload)
		})
	}

	file, err := svc.RenderPayload(ctx, "pdf", exportRequest())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(file.Payload, []byte("%PDF")))

	file, err = svc.RenderPayload(ctx, "csv", exportRequest())
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(file.Payload)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Ferr. Colet", "Escada extensível", "", "sem sapata"}, records[2])
}

func TestExportServiceRenderPayloadBlankQuantity(t *testing.T) {
	renderer := &rendererStub{}
	svc, _ := newTestExportService(t, ExportRenderers{CSV: renderer})

	var req dto.ChecklistExportRequest
	require.NoError(t, json.Unmarshal([]byte(`{"linhas":[
		{"tipo":"EPC","descricao":"Cone","qtdeEncontrada":"","observacao":""},
		{"tipo":"EPC","descricao":"Fita","qtdeEncontrada":4}
	]}`), &req))

	_, err := svc.RenderPayload(context.Background(), "csv", req)
	require.NoError(t, err)
	require.Len(t, renderer.doc.Rows, 2)
	assert.Equal(t, "", renderer.doc.Rows[0].FoundText())
	assert.Equal(t, "4", renderer.doc.Rows[1].FoundText())
}

func TestExportServiceUsesConfiguredTimezone(t *testing.T) {
	renderer := &rendererStub{}
	svc, _ := newTestExportService(t, ExportRenderers{XLSX: renderer})
	svc.cfg.Location = time.FixedZone("BRT", -3*60*60)

	_, err := svc.RenderPayload(context.Background(), "xlsx", exportRequest())
	require.NoError(t, err)
	require.NotEmpty(t, renderer.doc.Info)
	assert.Contains(t, renderer.doc.Info[0].Right.Value, "05/03/2024 09:00:00")
}

func TestExportServiceUnsupportedFormat(t *testing.T) {
	svc, _ := newTestExportService(t, ExportRenderers{})
	_, err := svc.RenderPayload(context.Background(), "docx", exportRequest())
	assertAppErrorCode(t, err, "VALIDATION_ERROR")

	req := exportRequest()
	req.Sector = "DISTRIBUICAO"
	_, err = svc.RenderPayload(context.Background(), "xlsx", req)
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestExportServiceRendererFailure(t *testing.T) {
	svc, _ := newTestExportService(t, ExportRenderers{PDF: &rendererStub{err: errors.New("font missing")}})

	_, err := svc.RenderPayload(context.Background(), "pdf", exportRequest())
	appErr := assertAppErrorCode(t, err, "GENERATION_FAILED")
	assert.Equal(t, "Erro ao gerar PDF", appErr.Message)
	assert.Equal(t, float64(1), testutil.ToFloat64(svc.metrics.exports.WithLabelValues("pdf", ResultFailure)))
}

func TestExportServiceRenderSessionUsesVisibleItems(t *testing.T) {
	renderer := &rendererStub{}
	found := 1
	session := models.Session{
		Header: models.Header{
			Sector:    models.SectorSTC,
			Mode:      models.ModeCollaborator,
			TeamClass: models.TeamClassUrban,
		},
		Filter: models.CategoryFilterAll,
		Items: []models.LineItem{
			{ID: 1, Category: models.CategoryEPI, Description: "Capacete", FoundQty: &found},
			{ID: 2, Category: models.CategoryEPC, Description: "Cone"},
			{ID: 3, Category: models.CategoryIndividualTool, Description: "Alicate", RuralOnly: true},
		},
	}
	svc := NewExportService(sessionReaderStub{session: session}, nil, nil, ExportRenderers{CSV: renderer}, ExportServiceConfig{}, nil, nil)

	file, err := svc.RenderSession(context.Background(), "s1", "csv")
	require.NoError(t, err)
	assert.Equal(t, "checklist_epi_epc_ferramental.csv", file.Filename)
	require.Len(t, renderer.doc.Rows, 1)
	assert.Equal(t, "Capacete", renderer.doc.Rows[0].Description)
}

func TestExportServiceRenderSessionNotFound(t *testing.T) {
	svc := NewExportService(sessionReaderStub{err: errSessionNotFound()}, nil, nil, ExportRenderers{}, ExportServiceConfig{}, nil, nil)
	_, err := svc.RenderSession(context.Background(), "missing", "pdf")
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func TestExportServiceStoreAndDownload(t *testing.T) {
	svc, _ := newTestExportService(t, ExportRenderers{})
	ctx := context.Background()

	file, err := svc.RenderPayload(ctx, "csv", exportRequest())
	require.NoError(t, err)
	stored, err := svc.Store(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, file.Filename, stored.Filename)
	require.True(t, strings.HasPrefix(stored.URL, "/api/v1/exports/"))

	token := strings.TrimPrefix(stored.URL, "/api/v1/exports/")
	downloaded, err := svc.Download(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, file.Payload, downloaded.Payload)
	assert.Equal(t, file.Filename, downloaded.Filename)
	assert.Equal(t, ContentTypeCSV, downloaded.ContentType)

	_, err = svc.Download(ctx, token+"x")
	assertAppErrorCode(t, err, "NOT_FOUND")
	_, err = svc.Download(ctx, "garbage")
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func TestExportServiceExpiredLink(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("secret", time.Millisecond)
	svc := NewExportService(nil, store, signer, ExportRenderers{}, ExportServiceConfig{}, nil, nil)

	stored, err := svc.Store(context.Background(), &dto.ExportFile{Filename: "a.csv", Payload: []byte("x")})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	_, err = svc.Download(context.Background(), strings.TrimPrefix(stored.URL, "/api/v1/exports/"))
	appErr := assertAppErrorCode(t, err, "NOT_FOUND")
	assert.Equal(t, "export link expired", appErr.Message)
}

func TestExportServiceStoreWithoutArchive(t *testing.T) {
	svc := NewExportService(nil, nil, nil, ExportRenderers{}, ExportServiceConfig{}, nil, nil)
	_, err := svc.Store(context.Background(), &dto.ExportFile{Filename: "a.csv"})
	assertAppErrorCode(t, err, "INTERNAL_ERROR")

	removed, err := svc.Cleanup(time.Hour)
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestExportServiceCleanup(t *testing.T) {
	svc, _ := newTestExportService(t, ExportRenderers{})
	stored, err := svc.Store(context.Background(), &dto.ExportFile{Filename: "a.csv", Payload: []byte("x")})
	require.NoError(t, err)

	removed, err := svc.Cleanup(time.Hour)
	require.NoError(t, err)
	assert.Empty(t, removed)

	time.Sleep(5 * time.Millisecond)
	removed, err = svc.Cleanup(time.Millisecond)
	require.NoError(t, err)
	require.Len(t, removed, 1)
	assert.True(t, strings.HasSuffix(removed[0], "/a.csv"))

	_, err = svc.Download(context.Background(), strings.TrimPrefix(stored.URL, "/api/v1/exports/"))
	assertAppErrorCode(t, err, "NOT_FOUND")
}
