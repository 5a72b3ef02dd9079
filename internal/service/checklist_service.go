package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/checklist-epi-api/internal/checklist"
	"github.com/noah-isme/checklist-epi-api/internal/dto"
	"github.com/noah-isme/checklist-epi-api/internal/models"
	appErrors "github.com/noah-isme/checklist-epi-api/pkg/errors"
)

type historyAppender interface {
	Append(ctx context.Context, snap models.Snapshot) error
}

// ChecklistService owns the in-memory checklist sessions. Every action runs
// under one lock, reading the current state and storing the complete next
// state produced by the checklist reducers.
type ChecklistService struct {
	history   historyAppender
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string

	mu       sync.Mutex
	sessions map[string]models.Session
}

// NewChecklistService constructs the service.
func NewChecklistService(history historyAppender, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *ChecklistService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChecklistService{
		history:   history,
		validator: validate,
		metrics:   metrics,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
		sessions:  make(map[string]models.Session),
	}
}

// Create starts a new session in its initial state.
func (s *ChecklistService) Create(ctx context.Context) models.Session {
	session := checklist.NewSession(s.newID(), s.now())

	s.mu.Lock()
	s.sessions[session.ID] = session
	count := len(s.sessions)
	s.mu.Unlock()

	s.metrics.SetActiveSessions(count)
	s.logger.Debug("checklist session created", zap.String("session_id", session.ID))
	return session.Clone()
}

// Get returns the current state of a session.
func (s *ChecklistService) Get(ctx context.Context, id string) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return models.Session{}, errSessionNotFound()
	}
	return session.Clone(), nil
}

// Delete discards a session.
func (s *ChecklistService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	if _, ok := s.sessions[id]; !ok {
		s.mu.Unlock()
		return errSessionNotFound()
	}
	delete(s.sessions, id)
	count := len(s.sessions)
	s.mu.Unlock()

	s.metrics.SetActiveSessions(count)
	return nil
}

// EvictIdle discards sessions not updated within ttl and reports how many
// were removed.
func (s *ChecklistService) EvictIdle(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	evicted := 0
	for id, session := range s.sessions {
		if session.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}
	count := len(s.sessions)
	s.mu.Unlock()

	if evicted > 0 {
		s.metrics.SetActiveSessions(count)
		s.logger.Info("idle checklist sessions evicted", zap.Int("count", evicted), zap.Duration("ttl", ttl))
	}
	return evicted
}

// Reset starts a new checklist in the same session.
func (s *ChecklistService) Reset(ctx context.Context, id string) (models.Session, error) {
	return s.apply(id, func(current models.Session) (models.Session, error) {
		return checklist.Reset(current, s.now()), nil
	})
}

// SelectSector switches the sector and reloads the catalog.
func (s *ChecklistService) SelectSector(ctx context.Context, id string, req dto.SelectSectorRequest) (models.Session, error) {
	if err := s.validate(req); err != nil {
		return models.Session{}, err
	}
	return s.apply(id, func(current models.Session) (models.Session, error) {
		return checklist.SelectSector(current, models.Sector(req.Sector)), nil
	})
}

// SelectModality switches the OBRAS modality and reloads the catalog.
func (s *ChecklistService) SelectModality(ctx context.Context, id string, req dto.SelectModalityRequest) (models.Session, error) {
	if err := s.validate(req); err != nil {
		return models.Session{}, err
	}
	return s.apply(id, func(current models.Session) (models.Session, error) {
		if current.Sector != models.SectorObras && req.Modality != "" {
			return current, appErrors.Clone(appErrors.ErrValidation, "modality applies to the OBRAS sector only")
		}
		return checklist.SelectModality(current, models.Modality(req.Modality)), nil
	})
}

// SelectMode switches between vehicle and collaborator checklists.
func (s *ChecklistService) SelectMode(ctx context.Context, id string, req dto.SelectModeRequest) (models.Session, error) {
	if err := s.validate(req); err != nil {
		return models.Session{}, err
	}
	return s.apply(id, func(current models.Session) (models.Session, error) {
		return checklist.SelectMode(current, models.Mode(req.Mode)), nil
	})
}

// SelectTeam sets the team code. Non-empty codes must belong to the
// session's sector and modality.
func (s *ChecklistService) SelectTeam(ctx context.Context, id string, req dto.SelectTeamRequest) (models.Session, error) {
	if err := s.validate(req); err != nil {
		return models.Session{}, err
	}
	return s.apply(id, func(current models.Session) (models.Session, error) {
		if req.TeamCode != "" && !teamAvailable(current, req.TeamCode) {
			return current, appErrors.Clone(appErrors.ErrValidation, "team not available for the selected sector")
		}
		return checklist.SelectTeam(current, req.TeamCode), nil
	})
}

// SetNames updates the free-text header fields.
func (s *ChecklistService) SetNames(ctx context.Context, id string, req dto.SetNamesRequest) (models.Session, error) {
	if err := s.validate(req); err != nil {
		return models.Session{}, err
	}
	return s.apply(id, func(current models.Session) (models.Session, error) {
		return checklist.SetNames(current, checklist.Names{
			Electrician1: req.Electrician1,
			Electrician2: req.Electrician2,
			Collaborator: req.Collaborator,
			Responsible:  req.Responsible,
		}), nil
	})
}

// SetFilter sets the category filter.
func (s *ChecklistService) SetFilter(ctx context.Context, id string, req dto.SetFilterRequest) (models.Session, error) {
	if err := s.validate(req); err != nil {
		return models.Session{}, err
	}
	if !checklist.ValidFilter(req.Filter) {
		return models.Session{}, appErrors.Clone(appErrors.ErrValidation, "unknown category filter")
	}
	return s.apply(id, func(current models.Session) (models.Session, error) {
		return checklist.SetFilter(current, req.Filter), nil
	})
}

// UpdateItem edits the found quantity or the note of an item.
func (s *ChecklistService) UpdateItem(ctx context.Context, id string, itemID int, req dto.UpdateItemRequest) (models.Session, error) {
	if err := s.validate(req); err != nil {
		return models.Session{}, err
	}
	patch, err := decodeItemPatch(req)
	if err != nil {
		return models.Session{}, err
	}
	return s.apply(id, func(current models.Session) (models.Session, error) {
		next, err := checklist.UpdateItem(current, itemID, patch)
		if errors.Is(err, checklist.ErrItemNotFound) {
			return current, appErrors.Clone(appErrors.ErrNotFound, "checklist item not found")
		}
		return next, err
	})
}

// AttachEvidence appends an encoded image to an item. It reports false when
// the catalog was reloaded since the upload started or the item is gone.
func (s *ChecklistService) AttachEvidence(ctx context.Context, id string, version, itemID int, dataURL string) (bool, error) {
	attached := false
	_, err := s.apply(id, func(current models.Session) (models.Session, error) {
		next, ok := checklist.AddEvidence(current, version, itemID, dataURL)
		attached = ok
		return next, nil
	})
	return attached, err
}

// SetConfirmation toggles the final confirmation gate.
func (s *ChecklistService) SetConfirmation(ctx context.Context, id string, req dto.SetConfirmationRequest) (models.Session, error) {
	if err := s.validate(req); err != nil {
		return models.Session{}, err
	}
	return s.apply(id, func(current models.Session) (models.Session, error) {
		return checklist.SetConfirmation(current, *req.Confirmed), nil
	})
}

// Finalize validates the header and confirmation, records the snapshot in
// history and only then moves the session to the summary stage.
func (s *ChecklistService) Finalize(ctx context.Context, id string) (models.Session, models.Snapshot, error) {
	var snapshot models.Snapshot
	session, err := s.apply(id, func(current models.Session) (models.Session, error) {
		next, snap, err := checklist.Finalize(current, s.now(), s.newID())
		if err != nil {
			var headerErr *checklist.HeaderError
			switch {
			case errors.As(err, &headerErr):
				return current, appErrors.WithDetails(
					appErrors.Clone(appErrors.ErrHeaderIncomplete, headerErr.Error()),
					map[string]interface{}{"missing": headerErr.Missing},
				)
			case errors.Is(err, checklist.ErrConfirmationRequired):
				return current, appErrors.Clone(appErrors.ErrConfirmationRequired, "Confirme a conferência final antes de finalizar.")
			default:
				return current, err
			}
		}
		if s.history != nil {
			if err := s.history.Append(ctx, snap); err != nil {
				s.logger.Error("persist checklist snapshot failed", zap.String("session_id", id), zap.Error(err))
				return current, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record checklist history")
			}
		}
		snapshot = snap
		return next, nil
	})
	if err != nil {
		return models.Session{}, models.Snapshot{}, err
	}
	s.metrics.RecordFinalize()
	s.logger.Info("checklist finalized",
		zap.String("session_id", id),
		zap.String("snapshot_id", snapshot.ID),
		zap.String("title", snapshot.Title),
	)
	return session, snapshot, nil
}

// Teams lists the teams for the selections.
func (s *ChecklistService) Teams(ctx context.Context, query dto.TeamsQuery) ([]models.Team, error) {
	if err := s.validate(query); err != nil {
		return nil, err
	}
	if query.Sector == "" {
		return checklist.Teams(), nil
	}
	return checklist.TeamsFor(models.Sector(query.Sector), models.Modality(query.Modality)), nil
}

// Categories lists the category filter options for the selections.
func (s *ChecklistService) Categories(ctx context.Context, query dto.CategoriesQuery) ([]string, error) {
	if err := s.validate(query); err != nil {
		return nil, err
	}
	return checklist.CategoryOptions(models.Sector(query.Sector), models.Mode(query.Mode)), nil
}

func (s *ChecklistService) apply(id string, fn func(models.Session) (models.Session, error)) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.sessions[id]
	if !ok {
		return models.Session{}, errSessionNotFound()
	}
	next, err := fn(current.Clone())
	if err != nil {
		return models.Session{}, err
	}
	next.UpdatedAt = s.now()
	s.sessions[id] = next
	return next.Clone(), nil
}

func (s *ChecklistService) validate(v interface{}) error {
	if err := s.validator.Struct(v); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	return nil
}

func teamAvailable(session models.Session, code string) bool {
	for _, team := range checklist.TeamsFor(session.Sector, session.Modality) {
		if team.Code == code {
			return true
		}
	}
	return false
}

func decodeItemPatch(req dto.UpdateItemRequest) (checklist.ItemPatch, error) {
	patch := checklist.ItemPatch{Field: checklist.ItemField(req.Field)}
	raw := bytes.TrimSpace(req.Value)
	switch patch.Field {
	case checklist.FieldFoundQty:
		if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
			return patch, nil
		}
		var found int
		if err := json.Unmarshal(raw, &found); err != nil || found < 0 {
			return patch, appErrors.Clone(appErrors.ErrValidation, "qtdeEncontrada must be a non-negative integer or null")
		}
		patch.FoundQty = &found
	case checklist.FieldNote:
		if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
			return patch, nil
		}
		if err := json.Unmarshal(raw, &patch.Note); err != nil {
			return patch, appErrors.Clone(appErrors.ErrValidation, "observacao must be a string")
		}
	}
	return patch, nil
}

func errSessionNotFound() error {
	return appErrors.Clone(appErrors.ErrNotFound, "checklist session not found")
}
