package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/opencampus/scheduler-api/internal/dto"
	"github.com/opencampus/scheduler-api/internal/models"
	appErrors "github.com/opencampus/scheduler-api/pkg/errors"
	"github.com/opencampus/scheduler-api/pkg/export"
)

// Export formats accepted by the timetable export endpoint.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type scheduleSessionSource interface {
	ListByLevelGroup(ctx context.Context, level int, group string) ([]models.ScheduleSession, error)
	DeleteByLevelGroup(ctx context.Context, level int, group string) error
}

type csvRenderer interface {
	Render(rows []export.TimetableRow) ([]byte, error)
}

type pdfRenderer interface {
	Render(rows []export.TimetableRow, title string) ([]byte, error)
}

// ScheduleService serves stored timetables with read-through caching and
// handles deletion and export.
type ScheduleService struct {
	sessions  scheduleSessionSource
	cache     *CacheService
	csv       csvRenderer
	pdf       pdfRenderer
	validator *validator.Validate
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewScheduleService constructs a ScheduleService.
func NewScheduleService(
	sessions scheduleSessionSource,
	cache *CacheService,
	csv csvRenderer,
	pdf pdfRenderer,
	validate *validator.Validate,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &ScheduleService{
		sessions:  sessions,
		cache:     cache,
		csv:       csv,
		pdf:       pdf,
		validator: validate,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

// GetTimetable returns the stored timetable for a level and group, grouped by
// day for presentation.
func (s *ScheduleService) GetTimetable(ctx context.Context, query dto.TimetableQuery) (*dto.TimetableResponse, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable query")
	}

	cacheKey := timetableCacheKey(query.Level, query.Group)
	var cached dto.TimetableResponse
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return &cached, nil
	}

	sessions, err := s.sessions.ListByLevelGroup(ctx, query.Level, query.Group)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}
	if len(sessions) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no timetable stored for level %d group %s", query.Level, query.Group))
	}

	days := make(map[string][]models.ScheduleSession)
	for _, sess := range sessions {
		days[sess.DayOfWeek] = append(days[sess.DayOfWeek], sess)
	}

	resp := &dto.TimetableResponse{
		Level:    query.Level,
		Group:    query.Group,
		Days:     days,
		Sessions: sessions,
	}

	if err := s.cache.Set(ctx, cacheKey, resp, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache timetable", zap.Error(err))
	}

	return resp, nil
}

// DeleteTimetable clears the stored timetable for a level and group.
func (s *ScheduleService) DeleteTimetable(ctx context.Context, query dto.TimetableQuery) error {
	if err := s.validator.Struct(query); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable query")
	}

	if err := s.sessions.DeleteByLevelGroup(ctx, query.Level, query.Group); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete timetable")
	}

	if err := s.cache.Invalidate(ctx, timetableCachePattern(query.Level, query.Group)); err != nil {
		s.logger.Warn("failed to invalidate timetable cache", zap.Error(err))
	}
	return nil
}

// Export renders the stored timetable in the requested format and returns the
// payload together with its content type and suggested file name.
func (s *ScheduleService) Export(ctx context.Context, query dto.TimetableQuery, format string) ([]byte, string, string, error) {
	timetable, err := s.GetTimetable(ctx, query)
	if err != nil {
		return nil, "", "", err
	}

	rows := make([]export.TimetableRow, 0, len(timetable.Sessions))
	for _, sess := range timetable.Sessions {
		rows = append(rows, export.TimetableRow{
			CourseCode:    sess.CourseCode,
			CourseName:    sess.CourseName,
			Kind:          sess.Kind,
			Section:       sess.Section,
			Day:           sess.DayOfWeek,
			TimeSlot:      sess.TimeSlot,
			DurationHours: sess.DurationHours,
		})
	}

	switch format {
	case ExportFormatCSV:
		payload, err := s.csv.Render(rows)
		if err != nil {
			return nil, "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		name := fmt.Sprintf("timetable-l%d-%s.csv", query.Level, query.Group)
		return payload, "text/csv", name, nil
	case ExportFormatPDF:
		title := fmt.Sprintf("Timetable Level %d Group %s", query.Level, query.Group)
		payload, err := s.pdf.Render(rows, title)
		if err != nil {
			return nil, "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		name := fmt.Sprintf("timetable-l%d-%s.pdf", query.Level, query.Group)
		return payload, "application/pdf", name, nil
	default:
		return nil, "", "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func timetableCacheKey(level int, group string) string {
	return fmt.Sprintf("timetable:%d:%s", level, group)
}
