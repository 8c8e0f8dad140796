package dto

// CreateCourseRequest carries a new course offering.
type CreateCourseRequest struct {
	Code          string `json:"code" validate:"required,min=2,max=16"`
	Name          string `json:"name" validate:"required,min=2,max=128"`
	LectureHours  int    `json:"lectureHours" validate:"min=0,max=6"`
	TutorialHours int    `json:"tutorialHours" validate:"min=0,max=4"`
	LabHours      int    `json:"labHours" validate:"min=0,max=6"`
	Level         int    `json:"level" validate:"required,min=1,max=8"`
}

// UpdateCourseRequest modifies an existing course offering.
type UpdateCourseRequest struct {
	Code          string `json:"code" validate:"required,min=2,max=16"`
	Name          string `json:"name" validate:"required,min=2,max=128"`
	LectureHours  int    `json:"lectureHours" validate:"min=0,max=6"`
	TutorialHours int    `json:"tutorialHours" validate:"min=0,max=4"`
	LabHours      int    `json:"labHours" validate:"min=0,max=6"`
	Level         int    `json:"level" validate:"required,min=1,max=8"`
}

// CourseListQuery filters the course list.
type CourseListQuery struct {
	Level     int    `form:"level"`
	Search    string `form:"search"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
	Page      int    `form:"page"`
	PageSize  int    `form:"pageSize"`
}
