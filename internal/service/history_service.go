package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/checklist-epi-api/internal/checklist"
	"github.com/noah-isme/checklist-epi-api/internal/models"
	"github.com/noah-isme/checklist-epi-api/internal/repository"
	appErrors "github.com/noah-isme/checklist-epi-api/pkg/errors"
)

type historyStore interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, payload []byte) error
}

// HistoryServiceConfig tunes the history list.
type HistoryServiceConfig struct {
	Key      string
	Capacity int
}

// HistoryService keeps the capped list of finalized snapshots, newest first,
// and mirrors it to the configured store.
type HistoryService struct {
	store   historyStore
	cfg     HistoryServiceConfig
	metrics *MetricsService
	logger  *zap.Logger

	mu      sync.RWMutex
	entries []models.Snapshot
}

// NewHistoryService constructs the service. Call Load before serving.
func NewHistoryService(store historyStore, cfg HistoryServiceConfig, metrics *MetricsService, logger *zap.Logger) *HistoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = repository.NewMemoryHistoryStore()
	}
	if cfg.Key == "" {
		cfg.Key = "checklist-salvos"
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = checklist.HistoryCapacity
	}
	return &HistoryService{store: store, cfg: cfg, metrics: metrics, logger: logger, entries: []models.Snapshot{}}
}

// Load reads the stored history. Missing, unreadable or corrupted data
// leaves the history empty. It returns the number of snapshots loaded.
func (s *HistoryService) Load(ctx context.Context) int {
	entries := []models.Snapshot{}
	raw, err := s.store.Read(ctx, s.cfg.Key)
	switch {
	case errors.Is(err, repository.ErrHistoryNotFound):
		s.logger.Info("no stored checklist history", zap.String("key", s.cfg.Key))
	case err != nil:
		s.logger.Warn("read checklist history failed", zap.String("key", s.cfg.Key), zap.Error(err))
	default:
		if err := json.Unmarshal(raw, &entries); err != nil {
			s.logger.Warn("discarding corrupted checklist history", zap.String("key", s.cfg.Key), zap.Error(err))
			entries = []models.Snapshot{}
		}
	}
	if len(entries) > s.cfg.Capacity {
		entries = entries[:s.cfg.Capacity]
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	s.metrics.SetHistorySize(len(entries))
	return len(entries)
}

// Append records snap as the newest entry, dropping the oldest beyond
// capacity. Memory is only updated once the store accepted the new list.
func (s *HistoryService) Append(ctx context.Context, snap models.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := checklist.PrependSnapshot(s.entries, snap, s.cfg.Capacity)
	payload, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("marshal checklist history: %w", err)
	}
	if err := s.store.Write(ctx, s.cfg.Key, payload); err != nil {
		return fmt.Errorf("persist checklist history: %w", err)
	}
	s.entries = next
	s.metrics.SetHistorySize(len(next))
	return nil
}

// List returns the snapshots newest first.
func (s *HistoryService) List(ctx context.Context) []models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Snapshot{}, s.entries...)
}

// Get returns a copy of the snapshot with id.
func (s *HistoryService) Get(ctx context.Context, id string) (models.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, entry := range s.entries {
		if entry.ID == id {
			entry.Items = models.CloneItems(entry.Items)
			return entry, nil
		}
	}
	return models.Snapshot{}, appErrors.Clone(appErrors.ErrNotFound, "checklist snapshot not found")
}
