package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opencampus/scheduler-api/internal/dto"
	"github.com/opencampus/scheduler-api/internal/middleware"
	"github.com/opencampus/scheduler-api/internal/models"
	"github.com/opencampus/scheduler-api/internal/service"
	appErrors "github.com/opencampus/scheduler-api/pkg/errors"
	"github.com/opencampus/scheduler-api/pkg/response"
)

type exportJobService interface {
	CreateJob(ctx context.Context, req dto.CreateExportJobRequest, actorID string) (*dto.ExportJobResponse, error)
	GetStatus(ctx context.Context, id string) (*dto.ExportJobResponse, error)
	ResolveDownload(ctx context.Context, token string) (*service.ExportDownload, error)
}

// ExportJobHandler exposes background timetable export endpoints.
type ExportJobHandler struct {
	service exportJobService
}

// NewExportJobHandler constructs the handler.
func NewExportJobHandler(svc exportJobService) *ExportJobHandler {
	return &ExportJobHandler{service: svc}
}

// Create godoc
// @Summary Queue timetable export
// @Description Queue a background render of the stored timetable to CSV or PDF
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body dto.CreateExportJobRequest true "Export request"
// @Success 202 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /schedule/export-jobs [post]
func (h *ExportJobHandler) Create(c *gin.Context) {
	claims, ok := c.Get(middleware.ContextUserKey)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	jwtClaims := claims.(*models.JWTClaims)

	var req dto.CreateExportJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	job, err := h.service.CreateJob(c.Request.Context(), req, jwtClaims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusAccepted, job, nil)
}

// Status godoc
// @Summary Export job status
// @Description Return the state of a queued timetable export
// @Tags Schedule
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schedule/export-jobs/{id} [get]
func (h *ExportJobHandler) Status(c *gin.Context) {
	job, err := h.service.GetStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// Download godoc
// @Summary Download rendered export
// @Description Stream a finished export file referenced by a signed token
// @Tags Schedule
// @Produce octet-stream
// @Param token path string true "Signed download token"
// @Success 200 {file} binary
// @Failure 403 {object} response.Envelope
// @Router /schedule/download/{token} [get]
func (h *ExportJobHandler) Download(c *gin.Context) {
	download, err := h.service.ResolveDownload(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer download.File.Close() //nolint:errcheck

	info, err := download.File.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to stat export file"))
		return
	}

	extraHeaders := map[string]string{
		"Content-Disposition": `attachment; filename="` + download.Filename + `"`,
	}
	c.DataFromReader(http.StatusOK, info.Size(), download.ContentType, download.File, extraHeaders)
}
