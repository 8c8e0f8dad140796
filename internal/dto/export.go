package dto

import "github.com/opencampus/scheduler-api/internal/models"

// CreateExportJobRequest queues a background timetable export.
type CreateExportJobRequest struct {
	Level  int    `json:"level" validate:"required,min=1,max=8"`
	Group  string `json:"group" validate:"required,min=1,max=16"`
	Format string `json:"format" validate:"required,oneof=csv pdf"`
}

// ExportJobResponse reports the state of an export job.
type ExportJobResponse struct {
	ID        string                 `json:"id"`
	Status    models.ExportJobStatus `json:"status"`
	ResultURL *string                `json:"resultUrl,omitempty"`
	Error     *string                `json:"error,omitempty"`
}
