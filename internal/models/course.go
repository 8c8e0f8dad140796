package models

import "time"

// Course is one offering with its weekly activity hour requirements.
type Course struct {
	ID            string    `db:"id" json:"id"`
	Code          string    `db:"code" json:"code"`
	Name          string    `db:"name" json:"name"`
	LectureHours  int       `db:"lecture_hours" json:"lecture_hours"`
	TutorialHours int       `db:"tutorial_hours" json:"tutorial_hours"`
	LabHours      int       `db:"lab_hours" json:"lab_hours"`
	Level         int       `db:"level" json:"level"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// TotalHours is the course's full weekly load across all activity kinds.
func (c Course) TotalHours() int {
	return c.LectureHours + c.TutorialHours + c.LabHours
}

// CourseFilter carries list query parameters.
type CourseFilter struct {
	Level     int
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}
