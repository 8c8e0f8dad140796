package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/opencampus/scheduler-api/internal/dto"
	"github.com/opencampus/scheduler-api/internal/models"
	"github.com/opencampus/scheduler-api/internal/repository"
	appErrors "github.com/opencampus/scheduler-api/pkg/errors"
	"github.com/opencampus/scheduler-api/pkg/jobs"
	"github.com/opencampus/scheduler-api/pkg/storage"
)

type exportJobStoreStub struct {
	rows map[string]*models.ExportJob
	seq  int
}

func newExportJobStoreStub() *exportJobStoreStub {
	return &exportJobStoreStub{rows: make(map[string]*models.ExportJob)}
}

func (s *exportJobStoreStub) Create(ctx context.Context, job *models.ExportJob) error {
	s.seq++
	if job.ID == "" {
		job.ID = fmt.Sprintf("job-%d", s.seq)
	}
	if job.Status == "" {
		job.Status = models.ExportStatusQueued
	}
	copied := *job
	s.rows[job.ID] = &copied
	return nil
}

func (s *exportJobStoreStub) FindByID(ctx context.Context, id string) (*models.ExportJob, error) {
	job, ok := s.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *job
	return &copied, nil
}

func (s *exportJobStoreStub) Update(ctx context.Context, id string, params repository.UpdateExportJobParams) error {
	job, ok := s.rows[id]
	if !ok {
		return sql.ErrNoRows
	}
	if params.Status != nil {
		job.Status = *params.Status
	}
	if params.ResultURL != nil {
		url := *params.ResultURL
		job.ResultURL = &url
	}
	if params.ErrorMessage != nil {
		msg := *params.ErrorMessage
		job.ErrorMessage = &msg
	}
	if params.FinishedAt != nil {
		at := *params.FinishedAt
		job.FinishedAt = &at
	}
	return nil
}

func (s *exportJobStoreStub) ListQueued(ctx context.Context, limit int) ([]models.ExportJob, error) {
	out := make([]models.ExportJob, 0)
	for _, job := range s.rows {
		if job.Status == models.ExportStatusQueued {
			out = append(out, *job)
		}
	}
	return out, nil
}

func (s *exportJobStoreStub) ListFinishedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.ExportJob, error) {
	out := make([]models.ExportJob, 0)
	for _, job := range s.rows {
		if job.Status == models.ExportStatusFinished && job.FinishedAt != nil && job.FinishedAt.Before(cutoff) {
			out = append(out, *job)
		}
	}
	return out, nil
}

type dispatcherStub struct {
	enqueued []jobs.Job
	err      error
}

func (d *dispatcherStub) Enqueue(job jobs.Job) error {
	if d.err != nil {
		return d.err
	}
	d.enqueued = append(d.enqueued, job)
	return nil
}

type rendererStub struct {
	payload []byte
	err     error
}

func (r *rendererStub) Export(ctx context.Context, query dto.TimetableQuery, format string) ([]byte, string, string, error) {
	if r.err != nil {
		return nil, "", "", r.err
	}
	name := fmt.Sprintf("timetable-l%d-%s.%s", query.Level, query.Group, format)
	return r.payload, "text/csv", name, nil
}

func newExportJobFixture(t *testing.T, repo exportJobStore, queue jobDispatcher, renderer timetableRenderer) *ExportJobService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("secret", time.Hour)
	return NewExportJobService(repo, queue, store, signer, renderer, nil, zap.NewNop(), ExportJobConfig{APIPrefix: "/api/v1"})
}

func TestExportJobServiceCreateJob(t *testing.T) {
	repo := newExportJobStoreStub()
	queue := &dispatcherStub{}
	svc := newExportJobFixture(t, repo, queue, &rendererStub{payload: []byte("data")})

	resp, err := svc.CreateJob(context.Background(), dto.CreateExportJobRequest{Level: 1, Group: "A", Format: "csv"}, "admin")
	require.NoError(t, err)
	require.Equal(t, models.ExportStatusQueued, resp.Status)
	require.Len(t, queue.enqueued, 1)
	require.Equal(t, resp.ID, queue.enqueued[0].ID)
}

func TestExportJobServiceCreateJobValidatesFormat(t *testing.T) {
	svc := newExportJobFixture(t, newExportJobStoreStub(), &dispatcherStub{}, &rendererStub{})

	_, err := svc.CreateJob(context.Background(), dto.CreateExportJobRequest{Level: 1, Group: "A", Format: "xlsx"}, "admin")
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportJobServiceEnqueueFailureMarksFailed(t *testing.T) {
	repo := newExportJobStoreStub()
	queue := &dispatcherStub{err: errors.New("queue stopped")}
	svc := newExportJobFixture(t, repo, queue, &rendererStub{payload: []byte("data")})

	_, err := svc.CreateJob(context.Background(), dto.CreateExportJobRequest{Level: 1, Group: "A", Format: "csv"}, "admin")
	require.Error(t, err)
	for _, job := range repo.rows {
		require.Equal(t, models.ExportStatusFailed, job.Status)
	}
}

func TestExportWorkerFinishesJob(t *testing.T) {
	repo := newExportJobStoreStub()
	queue := &dispatcherStub{}
	svc := newExportJobFixture(t, repo, queue, &rendererStub{payload: []byte("course_code,day\nCS101,Sunday\n")})

	resp, err := svc.CreateJob(context.Background(), dto.CreateExportJobRequest{Level: 1, Group: "A", Format: "csv"}, "admin")
	require.NoError(t, err)

	worker := NewExportWorker(repo, svc, 3, zap.NewNop())
	err = worker.Handle(context.Background(), jobs.Job{ID: resp.ID})
	require.NoError(t, err)

	job, err := repo.FindByID(context.Background(), resp.ID)
	require.NoError(t, err)
	require.Equal(t, models.ExportStatusFinished, job.Status)
	require.NotNil(t, job.ResultURL)
	require.Contains(t, *job.ResultURL, "/api/v1/schedule/download/")
}

func TestExportWorkerRetriesThenFails(t *testing.T) {
	repo := newExportJobStoreStub()
	svc := newExportJobFixture(t, repo, &dispatcherStub{}, &rendererStub{err: errors.New("render failed")})

	resp, err := svc.CreateJob(context.Background(), dto.CreateExportJobRequest{Level: 1, Group: "A", Format: "csv"}, "admin")
	require.NoError(t, err)

	worker := NewExportWorker(repo, svc, 2, zap.NewNop())

	err = worker.Handle(context.Background(), jobs.Job{ID: resp.ID, Attempt: 0})
	require.Error(t, err)
	job, _ := repo.FindByID(context.Background(), resp.ID)
	require.Equal(t, models.ExportStatusQueued, job.Status)

	err = worker.Handle(context.Background(), jobs.Job{ID: resp.ID, Attempt: 2})
	require.Error(t, err)
	job, _ = repo.FindByID(context.Background(), resp.ID)
	require.Equal(t, models.ExportStatusFailed, job.Status)
	require.NotNil(t, job.FinishedAt)
}

func TestExportJobServiceResolveDownload(t *testing.T) {
	repo := newExportJobStoreStub()
	svc := newExportJobFixture(t, repo, &dispatcherStub{}, &rendererStub{payload: []byte("course_code,day\nCS101,Sunday\n")})

	resp, err := svc.CreateJob(context.Background(), dto.CreateExportJobRequest{Level: 1, Group: "A", Format: "csv"}, "admin")
	require.NoError(t, err)

	worker := NewExportWorker(repo, svc, 3, zap.NewNop())
	require.NoError(t, worker.Handle(context.Background(), jobs.Job{ID: resp.ID}))

	job, err := repo.FindByID(context.Background(), resp.ID)
	require.NoError(t, err)
	require.NotNil(t, job.ResultURL)
	url := *job.ResultURL
	token := url[strings.LastIndex(url, "/")+1:]

	download, err := svc.ResolveDownload(context.Background(), token)
	require.NoError(t, err)
	defer download.File.Close()
	require.Equal(t, "text/csv", download.ContentType)
	require.Contains(t, download.Filename, ".csv")
}

func TestExportJobServiceResolveDownloadRejectsBadToken(t *testing.T) {
	svc := newExportJobFixture(t, newExportJobStoreStub(), &dispatcherStub{}, &rendererStub{})

	_, err := svc.ResolveDownload(context.Background(), "garbage")
	require.Error(t, err)
	require.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestExportJobServiceGetStatusNotFound(t *testing.T) {
	svc := newExportJobFixture(t, newExportJobStoreStub(), &dispatcherStub{}, &rendererStub{})

	_, err := svc.GetStatus(context.Background(), "missing")
	require.ErrorIs(t, err, appErrors.ErrNotFound)
}
