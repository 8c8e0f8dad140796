package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencampus/scheduler-api/internal/models"
)

func exportJobColumns() []string {
	return []string{"id", "level", "group_name", "format", "status", "result_url", "error_message", "created_by", "created_at", "finished_at"}
}

func TestExportJobRepositoryCreateFillsDefaults(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewExportJobRepository(db)

	mock.ExpectExec("INSERT INTO export_jobs").
		WillReturnResult(sqlmock.NewResult(1, 1))

	job := &models.ExportJob{Level: 1, GroupName: "A", Format: "csv", CreatedBy: "admin"}
	err := repo.Create(context.Background(), job)
	require.NoError(t, err)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, models.ExportStatusQueued, job.Status)
	assert.False(t, job.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExportJobRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewExportJobRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(exportJobColumns()).
		AddRow("job-1", 1, "A", "pdf", "FINISHED", "/api/v1/schedule/download/token", nil, "admin", now, now)
	mock.ExpectQuery("SELECT id, level, group_name,.+ FROM export_jobs WHERE id = \\$1").
		WithArgs("job-1").
		WillReturnRows(rows)

	job, err := repo.FindByID(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, models.ExportStatusFinished, job.Status)
	require.NotNil(t, job.ResultURL)
	assert.Contains(t, *job.ResultURL, "token")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExportJobRepositoryUpdatePartial(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewExportJobRepository(db)

	status := models.ExportStatusProcessing
	mock.ExpectExec("UPDATE export_jobs SET status = \\$1 WHERE id = \\$2").
		WithArgs(status, "job-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), "job-1", UpdateExportJobParams{Status: &status})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExportJobRepositoryUpdateNoFields(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewExportJobRepository(db)

	err := repo.Update(context.Background(), "job-1", UpdateExportJobParams{})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExportJobRepositoryListQueued(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewExportJobRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(exportJobColumns()).
		AddRow("job-1", 1, "A", "csv", "QUEUED", nil, nil, "admin", now, nil)
	mock.ExpectQuery("SELECT id, level, group_name,.+ FROM export_jobs WHERE status = 'QUEUED' ORDER BY created_at ASC LIMIT \\$1").
		WithArgs(20).
		WillReturnRows(rows)

	jobs, err := repo.ListQueued(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, models.ExportStatusQueued, jobs[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
