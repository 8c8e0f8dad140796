package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/opencampus/scheduler-api/internal/dto"
	"github.com/opencampus/scheduler-api/internal/models"
	"github.com/opencampus/scheduler-api/internal/scheduler"
	appErrors "github.com/opencampus/scheduler-api/pkg/errors"
)

type generatorCourseSource interface {
	ListByLevel(ctx context.Context, level int) ([]models.Course, error)
}

type generatorRuleSource interface {
	ListActive(ctx context.Context) ([]models.Rule, error)
}

type generatorSessionStore interface {
	ListByLevelGroup(ctx context.Context, level int, group string) ([]models.ScheduleSession, error)
	BulkCreateWithTx(ctx context.Context, tx *sqlx.Tx, sessions []models.ScheduleSession) (int, error)
	BeginTxx(ctx context.Context) (*sqlx.Tx, error)
}

type timetableCacheInvalidator interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

type generatorMetrics interface {
	RecordGeneration(placed, shortfall int)
}

// GeneratorConfig governs rule interpretation defaults.
type GeneratorConfig struct {
	DefaultMaxDailyHours int
	DefaultLabAfterHour  int
}

// GeneratorService orchestrates one timetable generation run: it loads the
// course catalog and active rules, runs the placement engine against the
// group's existing occupancy, and persists the resulting sessions.
type GeneratorService struct {
	courses   generatorCourseSource
	rules     generatorRuleSource
	sessions  generatorSessionStore
	cache     timetableCacheInvalidator
	metrics   generatorMetrics
	validator *validator.Validate
	logger    *zap.Logger
	config    GeneratorConfig
}

// NewGeneratorService wires generator dependencies.
func NewGeneratorService(
	courses generatorCourseSource,
	rules generatorRuleSource,
	sessions generatorSessionStore,
	cache timetableCacheInvalidator,
	metrics generatorMetrics,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg GeneratorConfig,
) *GeneratorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeneratorService{
		courses:   courses,
		rules:     rules,
		sessions:  sessions,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		config:    cfg,
	}
}

// Generate builds and persists a timetable for the requested level and group.
// Existing sessions of the group are treated as occupied cells, so repeated
// runs fill gaps instead of producing conflicts.
func (s *GeneratorService) Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule generation payload")
	}

	courses, err := s.courses.ListByLevel(ctx, req.Level)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load courses")
	}
	if len(courses) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no courses defined for level %d", req.Level))
	}

	existing, err := s.sessions.ListByLevelGroup(ctx, req.Level, req.Group)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load existing sessions")
	}
	preOccupied := make([]models.OccupancyKey, 0, len(existing))
	for _, sess := range existing {
		preOccupied = append(preOccupied, models.OccupancyKey{Day: sess.DayOfWeek, Slot: sess.TimeSlot})
	}

	activeRules, err := s.rules.ListActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load active rules")
	}

	settings := scheduler.InterpretWith(s.baseSettings(), activeRules)
	result := scheduler.Generate(courses, preOccupied, settings)

	if len(result.Assignments) == 0 {
		s.recordMetrics(result)
		return nil, appErrors.Clone(appErrors.ErrNoCapacity, fmt.Sprintf("no sessions could be placed for level %d group %s", req.Level, req.Group))
	}

	sessions := make([]models.ScheduleSession, 0, len(result.Assignments))
	for _, a := range result.Assignments {
		sessions = append(sessions, models.ScheduleSession{
			CourseCode:    a.CourseCode,
			CourseName:    a.CourseName,
			Kind:          string(a.Kind),
			Section:       a.Section,
			Level:         req.Level,
			GroupName:     req.Group,
			DayOfWeek:     a.Day.String(),
			TimeSlot:      a.Slot.Label,
			DurationHours: a.DurationHours,
		})
	}

	tx, err := s.sessions.BeginTxx(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}

	inserted, err := s.sessions.BulkCreateWithTx(ctx, tx, sessions)
	if err != nil {
		_ = tx.Rollback()
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist sessions")
	}
	if err := tx.Commit(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit schedule transaction")
	}

	if s.cache != nil {
		if err := s.cache.DeleteByPattern(ctx, timetableCachePattern(req.Level, req.Group)); err != nil {
			s.logger.Warn("failed to invalidate timetable cache", zap.Error(err))
		}
	}
	s.recordMetrics(result)

	s.logger.Info("timetable generated",
		zap.Int("level", req.Level),
		zap.String("group", req.Group),
		zap.Int("sessions_created", inserted),
		zap.Int("sessions_skipped", len(sessions)-inserted),
	)

	return &dto.GenerateScheduleResponse{
		Level:           req.Level,
		Group:           req.Group,
		SessionsCreated: inserted,
		SessionsSkipped: len(sessions) - inserted,
		Sessions:        sessions,
		Placements:      result.Placements,
	}, nil
}

func (s *GeneratorService) baseSettings() scheduler.RuleSettings {
	settings := scheduler.DefaultRuleSettings()
	if s.config.DefaultMaxDailyHours > 0 {
		settings.MaxDailyHours = s.config.DefaultMaxDailyHours
	}
	if s.config.DefaultLabAfterHour > 0 {
		settings.LabAfterHour = s.config.DefaultLabAfterHour
	}
	return settings
}

func (s *GeneratorService) recordMetrics(result scheduler.Result) {
	if s.metrics == nil {
		return
	}
	shortfall := 0
	for _, p := range result.Placements {
		if p.PlacedHours < p.RequiredHours {
			shortfall += p.RequiredHours - p.PlacedHours
		}
	}
	s.metrics.RecordGeneration(len(result.Assignments), shortfall)
}

func timetableCachePattern(level int, group string) string {
	return fmt.Sprintf("timetable:%d:%s*", level, group)
}
