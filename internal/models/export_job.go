package models

import "time"

// ExportJobStatus tracks an export job through its lifecycle.
type ExportJobStatus string

const (
	ExportStatusQueued     ExportJobStatus = "QUEUED"
	ExportStatusProcessing ExportJobStatus = "PROCESSING"
	ExportStatusFinished   ExportJobStatus = "FINISHED"
	ExportStatusFailed     ExportJobStatus = "FAILED"
)

// ExportJob is a background request to render a stored timetable to a file.
type ExportJob struct {
	ID           string          `db:"id" json:"id"`
	Level        int             `db:"level" json:"level"`
	GroupName    string          `db:"group_name" json:"group"`
	Format       string          `db:"format" json:"format"`
	Status       ExportJobStatus `db:"status" json:"status"`
	ResultURL    *string         `db:"result_url" json:"resultUrl,omitempty"`
	ErrorMessage *string         `db:"error_message" json:"error,omitempty"`
	CreatedBy    string          `db:"created_by" json:"createdBy"`
	CreatedAt    time.Time       `db:"created_at" json:"createdAt"`
	FinishedAt   *time.Time      `db:"finished_at" json:"finishedAt,omitempty"`
}
