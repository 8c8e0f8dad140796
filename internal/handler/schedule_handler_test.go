package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/opencampus/scheduler-api/internal/dto"
	appErrors "github.com/opencampus/scheduler-api/pkg/errors"
)

type timetableServiceMock struct {
	timetable *dto.TimetableResponse
	deleted   bool
	format    string
	err       error
}

func (m *timetableServiceMock) GetTimetable(ctx context.Context, query dto.TimetableQuery) (*dto.TimetableResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.timetable, nil
}

func (m *timetableServiceMock) DeleteTimetable(ctx context.Context, query dto.TimetableQuery) error {
	m.deleted = true
	return m.err
}

func (m *timetableServiceMock) Export(ctx context.Context, query dto.TimetableQuery, format string) ([]byte, string, string, error) {
	if m.err != nil {
		return nil, "", "", m.err
	}
	m.format = format
	return []byte("csv-data"), "text/csv", "timetable.csv", nil
}

func TestScheduleHandlerGetSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &timetableServiceMock{timetable: &dto.TimetableResponse{Level: 1, Group: "A"}}
	handler := &ScheduleHandler{service: mockSvc}
	router := gin.New()
	router.GET("/schedule", handler.Get)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/schedule?level=1&group=A", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, strings.Contains(w.Body.String(), `"group":"A"`))
}

func TestScheduleHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &ScheduleHandler{service: &timetableServiceMock{err: appErrors.ErrNotFound}}
	router := gin.New()
	router.GET("/schedule", handler.Get)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/schedule?level=1&group=A", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestScheduleHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &timetableServiceMock{}
	handler := &ScheduleHandler{service: mockSvc}
	router := gin.New()
	router.DELETE("/schedule", handler.Delete)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/schedule?level=1&group=A", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.True(t, mockSvc.deleted)
}

func TestScheduleHandlerExportDefaultsToCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &timetableServiceMock{}
	handler := &ScheduleHandler{service: mockSvc}
	router := gin.New()
	router.GET("/schedule/export", handler.Export)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/schedule/export?level=1&group=A", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "csv", mockSvc.format)
	require.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	require.True(t, strings.Contains(w.Header().Get("Content-Disposition"), "timetable.csv"))
}
