package models

import "time"

// ActivityKind is the teaching format of a session.
type ActivityKind string

const (
	ActivityLecture  ActivityKind = "LECTURE"
	ActivityTutorial ActivityKind = "TUTORIAL"
	ActivityLab      ActivityKind = "LAB"
)

// SessionAssignment is one placed session in a generator result, still in
// in-memory form with the resolved slot attached.
type SessionAssignment struct {
	CourseCode    string       `json:"course_code"`
	CourseName    string       `json:"course_name"`
	Kind          ActivityKind `json:"kind"`
	Section       int          `json:"section"`
	Day           Day          `json:"day"`
	Slot          TimeSlot     `json:"slot"`
	DurationHours int          `json:"duration_hours"`
}

// Key returns the occupancy cell this assignment claims.
func (a SessionAssignment) Key() OccupancyKey {
	return KeyFor(a.Day, a.Slot)
}

// ScheduleSession is the persisted form of a placed session.
type ScheduleSession struct {
	ID            string    `db:"id" json:"id"`
	CourseCode    string    `db:"course_code" json:"course_code"`
	CourseName    string    `db:"course_name" json:"course_name"`
	Kind          string    `db:"kind" json:"kind"`
	Section       int       `db:"section" json:"section"`
	Level         int       `db:"level" json:"level"`
	GroupName     string    `db:"group_name" json:"group_name"`
	DayOfWeek     string    `db:"day_of_week" json:"day_of_week"`
	TimeSlot      string    `db:"time_slot" json:"time_slot"`
	DurationHours int       `db:"duration_hours" json:"duration_hours"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}
