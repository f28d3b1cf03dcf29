package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/yigit/unidb/internal/app/models"
	"github.com/yigit/unidb/internal/app/registry"
	"github.com/yigit/unidb/internal/app/repositories"
	"github.com/yigit/unidb/internal/pkg/apperrors"
	"github.com/yigit/unidb/internal/pkg/metrics"
)

// Operation names used in logs and metrics
const (
	OpUpdateField = "update_field"
	OpSubmit      = "submit"
	OpBeginEdit   = "begin_edit"
	OpDelete      = "delete"
)

// EntityService runs registry transitions for one session at a time
type EntityService struct {
	sessions *repositories.SessionRepository
	metrics  *metrics.Metrics
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewEntityService creates a new entity service instance. m may be nil.
func NewEntityService(sessions *repositories.SessionRepository, m *metrics.Metrics, logger zerolog.Logger) *EntityService {
	return &EntityService{
		sessions: sessions,
		metrics:  m,
		validate: validator.New(),
		logger:   logger.With().Str("component", "entity_service").Logger(),
	}
}

// Modules returns the navigation table
func (s *EntityService) Modules() []models.Module {
	return models.Modules
}

// Module resolves a module by name
func (s *EntityService) Module(name string) (models.Module, error) {
	m, ok := models.FindModule(name)
	if !ok {
		return models.Module{}, fmt.Errorf("%w: %q", apperrors.ErrModuleNotFound, name)
	}
	return m, nil
}

// Snapshot returns the session's current registry for the module
func (s *EntityService) Snapshot(ctx context.Context, sessionID string, module models.Module) (registry.State, error) {
	state, err := s.sessions.Load(ctx, sessionID, module)
	if err != nil {
		return registry.State{}, fmt.Errorf("error loading %s registry: %w", module.Name, err)
	}
	return state, nil
}

// UpdateField sets one draft value; names outside the schema are rejected
func (s *EntityService) UpdateField(ctx context.Context, sessionID string, module models.Module, name, value string) (registry.State, error) {
	if !module.HasField(name) {
		return registry.State{}, fmt.Errorf("%w: %s.%s", apperrors.ErrUnknownField, module.Name, name)
	}

	state, err := s.sessions.Update(ctx, sessionID, module, func(st registry.State) (registry.State, error) {
		return st.UpdateField(name, value), nil
	})
	if err != nil {
		return registry.State{}, fmt.Errorf("error updating %s draft: %w", module.Name, err)
	}

	s.observe(sessionID, module, OpUpdateField).Str("field", name).Msg("Draft field updated")
	return state, nil
}

// Submit merges fields into the draft and commits it. If any schema field is
// still empty the draft keeps the merged values, nothing is committed, and a
// validation error naming the empty fields is returned with the state.
func (s *EntityService) Submit(ctx context.Context, sessionID string, module models.Module, fields map[string]string) (registry.State, error) {
	for name := range fields {
		if !module.HasField(name) {
			return registry.State{}, fmt.Errorf("%w: %s.%s", apperrors.ErrUnknownField, module.Name, name)
		}
	}

	var (
		missing []string
		mode    registry.Mode
		target  int64
	)
	state, err := s.sessions.Update(ctx, sessionID, module, func(st registry.State) (registry.State, error) {
		for _, f := range module.Fields {
			if v, ok := fields[f.Name]; ok {
				st = st.UpdateField(f.Name, v)
			}
		}

		missing = s.missingFields(module, st)
		if len(missing) > 0 {
			return st, nil
		}

		mode = st.Mode()
		if st.EditTarget != nil {
			target = *st.EditTarget
		}
		return st.Submit(), nil
	})
	if err != nil {
		return registry.State{}, fmt.Errorf("error submitting %s: %w", module.Name, err)
	}

	if len(missing) > 0 {
		s.metrics.ObserveRejected(module.Name)
		s.logger.Debug().Str("module", module.Name).Strs("missing", missing).Msg("Submission rejected")
		return state, apperrors.NewValidationError(
			fmt.Sprintf("%s: required fields are empty: %s", module.Name, strings.Join(missing, ", ")),
			missing,
		)
	}

	event := s.observe(sessionID, module, OpSubmit).Str("mode", string(mode))
	if mode == registry.ModeEdit {
		event = event.Int64("recordId", target)
	} else if n := state.Len(); n > 0 {
		event = event.Int64("recordId", state.Collection[n-1].ID)
	}
	event.Msg("Draft submitted")
	return state, nil
}

// BeginEdit loads a record into the draft
func (s *EntityService) BeginEdit(ctx context.Context, sessionID string, module models.Module, id int64) (registry.State, error) {
	state, err := s.sessions.Update(ctx, sessionID, module, func(st registry.State) (registry.State, error) {
		next, ok := st.BeginEdit(id)
		if !ok {
			return st, fmt.Errorf("%w: %s #%d", apperrors.ErrRecordNotFound, module.Name, id)
		}
		return next, nil
	})
	if err != nil {
		return registry.State{}, err
	}

	s.observe(sessionID, module, OpBeginEdit).Int64("recordId", id).Msg("Edit started")
	return state, nil
}

// Delete removes a record; unknown ids are not an error
func (s *EntityService) Delete(ctx context.Context, sessionID string, module models.Module, id int64) (registry.State, error) {
	state, err := s.sessions.Update(ctx, sessionID, module, func(st registry.State) (registry.State, error) {
		return st.Delete(id), nil
	})
	if err != nil {
		return registry.State{}, fmt.Errorf("error deleting from %s: %w", module.Name, err)
	}

	s.observe(sessionID, module, OpDelete).Int64("recordId", id).Msg("Record deleted")
	return state, nil
}

// missingFields applies the "required" rule to every schema field of the draft
func (s *EntityService) missingFields(module models.Module, st registry.State) []string {
	var missing []string
	for _, f := range module.Fields {
		if err := s.validate.Var(st.Draft[f.Name], "required"); err != nil {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

func (s *EntityService) observe(sessionID string, module models.Module, op string) *zerolog.Event {
	s.metrics.ObserveOperation(module.Name, op)
	return s.logger.Debug().Str("session", sessionID).Str("module", module.Name).Str("op", op)
}
