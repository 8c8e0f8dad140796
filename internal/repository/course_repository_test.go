package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencampus/scheduler-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func courseColumns() []string {
	return []string{"id", "code", "name", "lecture_hours", "tutorial_hours", "lab_hours", "level", "created_at", "updated_at"}
}

func TestCourseRepositoryListByLevel(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(courseColumns()).
		AddRow("course-1", "CS101", "Intro to Computing", 3, 1, 2, 1, now, now).
		AddRow("course-2", "MA102", "Calculus I", 3, 2, 0, 1, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, code, name, lecture_hours, tutorial_hours, lab_hours, level, created_at, updated_at FROM courses WHERE level = $1 ORDER BY created_at ASC, code ASC")).
		WithArgs(1).
		WillReturnRows(rows)

	courses, err := repo.ListByLevel(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "CS101", courses[0].Code)
	assert.Equal(t, 6, courses[0].TotalHours())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListWithFilter(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(courseColumns()).
		AddRow("course-1", "CS101", "Intro to Computing", 3, 1, 2, 1, now, now)
	mock.ExpectQuery("SELECT id, code, name,.+ FROM courses WHERE 1=1 AND level = \\$1").
		WithArgs(1).
		WillReturnRows(rows)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM courses WHERE 1=1 AND level = \\$1").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	courses, total, err := repo.List(context.Background(), models.CourseFilter{Level: 1})
	require.NoError(t, err)
	assert.Len(t, courses, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryCreateFillsDefaults(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO courses")).
		WithArgs(sqlmock.AnyArg(), "CS101", "Intro to Computing", 3, 1, 2, 1, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	course := &models.Course{Code: "CS101", Name: "Intro to Computing", LectureHours: 3, TutorialHours: 1, LabHours: 2, Level: 1}
	require.NoError(t, repo.Create(context.Background(), course))
	assert.NotEmpty(t, course.ID)
	assert.False(t, course.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM courses WHERE id = $1")).
		WithArgs("course-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "course-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
