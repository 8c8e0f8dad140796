package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opencampus/scheduler-api/internal/dto"
	"github.com/opencampus/scheduler-api/internal/service"
	appErrors "github.com/opencampus/scheduler-api/pkg/errors"
	"github.com/opencampus/scheduler-api/pkg/response"
)

// RuleHandler wires HTTP endpoints to the rule service.
type RuleHandler struct {
	service *service.RuleService
}

// NewRuleHandler creates a new handler.
func NewRuleHandler(svc *service.RuleService) *RuleHandler {
	return &RuleHandler{service: svc}
}

// List godoc
// @Summary List scheduling rules
// @Description List all scheduling rules, newest first
// @Tags Rules
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /rules [get]
func (h *RuleHandler) List(c *gin.Context) {
	rules, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rules, nil)
}

// Create godoc
// @Summary Create scheduling rule
// @Description Store a free-text scheduling rule
// @Tags Rules
// @Accept json
// @Produce json
// @Param payload body dto.CreateRuleRequest true "Rule payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /rules [post]
func (h *RuleHandler) Create(c *gin.Context) {
	var req dto.CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid rule payload"))
		return
	}

	rule, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, rule)
}

// SetActive godoc
// @Summary Activate or deactivate rule
// @Description Toggle whether a rule influences timetable generation
// @Tags Rules
// @Accept json
// @Produce json
// @Param id path string true "Rule ID"
// @Param payload body dto.SetRuleActiveRequest true "Activation payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /rules/{id}/activate [patch]
func (h *RuleHandler) SetActive(c *gin.Context) {
	var req dto.SetRuleActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	rule, err := h.service.SetActive(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, rule, nil)
}

// Delete godoc
// @Summary Delete scheduling rule
// @Tags Rules
// @Param id path string true "Rule ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /rules/{id} [delete]
func (h *RuleHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
