package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/opencampus/scheduler-api/internal/dto"
	"github.com/opencampus/scheduler-api/internal/models"
	appErrors "github.com/opencampus/scheduler-api/pkg/errors"
)

type ruleRepository interface {
	List(ctx context.Context) ([]models.Rule, error)
	FindByID(ctx context.Context, id string) (*models.Rule, error)
	Create(ctx context.Context, rule *models.Rule) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

// RuleService manages free-text scheduling rules. Rules are stored verbatim;
// interpretation happens inside the generator at run time.
type RuleService struct {
	repo      ruleRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRuleService constructs a RuleService.
func NewRuleService(repo ruleRepository, validate *validator.Validate, logger *zap.Logger) *RuleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RuleService{repo: repo, validator: validate, logger: logger}
}

// List returns all rules, newest first.
func (s *RuleService) List(ctx context.Context) ([]models.Rule, error) {
	rules, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rules")
	}
	return rules, nil
}

// Create stores a new rule.
func (s *RuleService) Create(ctx context.Context, req dto.CreateRuleRequest) (*models.Rule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid rule payload")
	}

	rule := &models.Rule{Description: req.Description, Active: req.Active}
	if err := s.repo.Create(ctx, rule); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create rule")
	}

	s.logger.Info("rule created", zap.String("id", rule.ID), zap.Bool("active", rule.Active))
	return rule, nil
}

// SetActive toggles whether a rule influences generation.
func (s *RuleService) SetActive(ctx context.Context, id string, req dto.SetRuleActiveRequest) (*models.Rule, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "rule not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rule")
	}

	if err := s.repo.SetActive(ctx, id, req.Active); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update rule")
	}

	rule, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload rule")
	}
	return rule, nil
}

// Delete removes a rule by id.
func (s *RuleService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "rule not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rule")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete rule")
	}
	return nil
}
