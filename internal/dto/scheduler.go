package dto

import (
	"github.com/opencampus/scheduler-api/internal/models"
	"github.com/opencampus/scheduler-api/internal/scheduler"
)

// GenerateScheduleRequest instructs the generator to build a timetable for one
// level and student group.
type GenerateScheduleRequest struct {
	Level int    `json:"level" validate:"required,min=1,max=8"`
	Group string `json:"group" validate:"required,min=1,max=16"`
}

// GenerateScheduleResponse returns the persisted timetable together with the
// per-activity placement report.
type GenerateScheduleResponse struct {
	Level           int                         `json:"level"`
	Group           string                      `json:"group"`
	SessionsCreated int                         `json:"sessionsCreated"`
	SessionsSkipped int                         `json:"sessionsSkipped"`
	Sessions        []models.ScheduleSession    `json:"sessions"`
	Placements      []scheduler.CoursePlacement `json:"placements"`
}

// TimetableQuery selects one stored timetable.
type TimetableQuery struct {
	Level int    `form:"level" json:"level" validate:"required,min=1,max=8"`
	Group string `form:"group" json:"group" validate:"required,min=1,max=16"`
}

// TimetableResponse is a stored timetable grouped by day.
type TimetableResponse struct {
	Level    int                                 `json:"level"`
	Group    string                              `json:"group"`
	Days     map[string][]models.ScheduleSession `json:"days"`
	Sessions []models.ScheduleSession            `json:"sessions"`
}
