package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tool-directory/pkg/db"
	"tool-directory/pkg/models"
	"tool-directory/pkg/validation"
)

// ToolStore persists directory entries. *db.DB and *db.MemoryStore satisfy it.
type ToolStore interface {
	CreateTool(ctx context.Context, tool models.ToolCreate) (*models.Tool, error)
	ListTools(ctx context.Context) ([]models.Tool, error)
}

// ValidationError carries the per-field errors of a rejected draft.
type ValidationError struct {
	Fields validation.FieldErrors
}

func (e *ValidationError) Error() string {
	if f, msg, ok := e.Fields.First(); ok {
		return fmt.Sprintf("invalid %s: %s", f, msg)
	}
	return "invalid submission"
}

// ToolService handles business logic for tool submissions
type ToolService struct {
	store     ToolStore
	validator validation.Validator
	log       *zap.SugaredLogger
}

// NewToolService creates a new tool service
func NewToolService(store ToolStore, v validation.Validator, log *zap.SugaredLogger) *ToolService {
	if v == nil {
		v = validation.Schema()
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &ToolService{store: store, validator: v, log: log}
}

// CreateTool validates a draft and stores it. It returns a *ValidationError
// for invalid drafts and db.ErrDuplicate when the name is already taken.
func (s *ToolService) CreateTool(ctx context.Context, draft models.Draft) (*models.Tool, error) {
	if errs := s.validator.Validate(draft); !errs.Valid() {
		return nil, &ValidationError{Fields: errs}
	}

	normalized, err := validation.NormalizeURL(draft.URL)
	if err != nil {
		// Unreachable after validation; keep the error shape consistent.
		return nil, &ValidationError{Fields: validation.FieldErrors{models.FieldURL: validation.MsgInvalidURL}}
	}

	tool, err := s.store.CreateTool(ctx, models.NewToolCreate(draft, normalized))
	if errors.Is(err, db.ErrDuplicate) {
		s.log.Infow("duplicate tool rejected", "name", draft.Name)
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create tool: %w", err)
	}

	s.log.Infow("tool created", "id", tool.ID, "name", tool.Name)
	return tool, nil
}

// ListTools retrieves every tool in the directory
func (s *ToolService) ListTools(ctx context.Context) ([]models.Tool, error) {
	return s.store.ListTools(ctx)
}
