package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opencampus/scheduler-api/internal/dto"
	appErrors "github.com/opencampus/scheduler-api/pkg/errors"
	"github.com/opencampus/scheduler-api/pkg/response"
)

type scheduleGeneratorService interface {
	Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error)
}

// ScheduleGeneratorHandler exposes the timetable generation endpoint.
type ScheduleGeneratorHandler struct {
	service scheduleGeneratorService
}

// NewScheduleGeneratorHandler creates a new handler.
func NewScheduleGeneratorHandler(svc scheduleGeneratorService) *ScheduleGeneratorHandler {
	return &ScheduleGeneratorHandler{service: svc}
}

// Generate godoc
// @Summary Generate timetable
// @Description Build and persist a timetable for one level and student group
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body dto.GenerateScheduleRequest true "Generation payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /schedule/generate [post]
func (h *ScheduleGeneratorHandler) Generate(c *gin.Context) {
	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generation payload"))
		return
	}

	res, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, res, nil)
}
