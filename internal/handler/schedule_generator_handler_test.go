package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/opencampus/scheduler-api/internal/dto"
	internalmiddleware "github.com/opencampus/scheduler-api/internal/middleware"
	"github.com/opencampus/scheduler-api/internal/models"
	appErrors "github.com/opencampus/scheduler-api/pkg/errors"
)

type generatorServiceMock struct {
	captured dto.GenerateScheduleRequest
	err      error
}

func (m *generatorServiceMock) Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	m.captured = req
	if m.err != nil {
		return nil, m.err
	}
	return &dto.GenerateScheduleResponse{Level: req.Level, Group: req.Group, SessionsCreated: 5}, nil
}

func TestScheduleGeneratorHandlerSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &generatorServiceMock{}
	handler := &ScheduleGeneratorHandler{service: mockSvc}

	req, _ := http.NewRequest(http.MethodPost, "/schedule/generate", bytes.NewReader([]byte(`{"level":1,"group":"A"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, 1, mockSvc.captured.Level)
	require.Equal(t, "A", mockSvc.captured.Group)
}

func TestScheduleGeneratorHandlerBadPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &ScheduleGeneratorHandler{service: &generatorServiceMock{}}

	req, _ := http.NewRequest(http.MethodPost, "/schedule/generate", bytes.NewReader([]byte(`{"level":`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleGeneratorHandlerNoCapacity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &ScheduleGeneratorHandler{service: &generatorServiceMock{err: appErrors.ErrNoCapacity}}

	req, _ := http.NewRequest(http.MethodPost, "/schedule/generate", bytes.NewReader([]byte(`{"level":1,"group":"A"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestScheduleGeneratorHandlerUnauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &ScheduleGeneratorHandler{service: &generatorServiceMock{}}
	router := gin.New()
	router.POST("/schedule/generate", internalmiddleware.RequireRoles(models.RoleAdmin), handler.Generate)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/schedule/generate", bytes.NewReader([]byte(`{"level":1,"group":"A"}`)))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestScheduleGeneratorHandlerForbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &ScheduleGeneratorHandler{service: &generatorServiceMock{}}
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(internalmiddleware.ContextUserKey, &models.JWTClaims{UserID: "user-1", Role: models.RoleStudent})
		c.Next()
	})
	router.POST("/schedule/generate", internalmiddleware.RequireRoles(models.RoleAdmin, models.RoleStaff), handler.Generate)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/schedule/generate", bytes.NewReader([]byte(`{"level":1,"group":"A"}`)))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)
}
