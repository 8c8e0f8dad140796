package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opencampus/scheduler-api/internal/dto"
	"github.com/opencampus/scheduler-api/internal/service"
	appErrors "github.com/opencampus/scheduler-api/pkg/errors"
	"github.com/opencampus/scheduler-api/pkg/response"
)

type timetableService interface {
	GetTimetable(ctx context.Context, query dto.TimetableQuery) (*dto.TimetableResponse, error)
	DeleteTimetable(ctx context.Context, query dto.TimetableQuery) error
	Export(ctx context.Context, query dto.TimetableQuery, format string) ([]byte, string, string, error)
}

// ScheduleHandler serves stored timetables.
type ScheduleHandler struct {
	service timetableService
}

// NewScheduleHandler creates a new handler.
func NewScheduleHandler(svc timetableService) *ScheduleHandler {
	return &ScheduleHandler{service: svc}
}

// Get godoc
// @Summary Get stored timetable
// @Description Return the stored timetable for a level and group
// @Tags Schedule
// @Produce json
// @Param level query int true "Academic level"
// @Param group query string true "Student group"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schedule [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	var query dto.TimetableQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}

	timetable, err := h.service.GetTimetable(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, timetable, nil)
}

// Delete godoc
// @Summary Delete stored timetable
// @Description Clear the stored timetable for a level and group
// @Tags Schedule
// @Param level query int true "Academic level"
// @Param group query string true "Student group"
// @Success 204 {object} response.Envelope
// @Router /schedule [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	var query dto.TimetableQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}

	if err := h.service.DeleteTimetable(c.Request.Context(), query); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Export godoc
// @Summary Export stored timetable
// @Description Export the stored timetable as CSV or PDF
// @Tags Schedule
// @Produce octet-stream
// @Param level query int true "Academic level"
// @Param group query string true "Student group"
// @Param format query string true "Export format" Enums(csv, pdf)
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schedule/export [get]
func (h *ScheduleHandler) Export(c *gin.Context) {
	var query dto.TimetableQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	format := c.DefaultQuery("format", service.ExportFormatCSV)

	payload, contentType, name, err := h.service.Export(c.Request.Context(), query, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, contentType, payload)
}
