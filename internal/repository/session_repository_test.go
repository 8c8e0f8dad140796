package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencampus/scheduler-api/internal/models"
)

func TestSessionRepositoryListByLevelGroup(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	rows := sqlmock.NewRows([]string{"id", "course_code", "course_name", "kind", "section", "level", "group_name", "day_of_week", "time_slot", "duration_hours", "created_at"}).
		AddRow("sess-1", "CS101", "Intro to Computing", "LECTURE", 1, 1, "A", "Sunday", "08:00 - 08:50", 1, time.Now())
	mock.ExpectQuery("SELECT id, course_code,.+ FROM schedule_sessions WHERE level = \\$1 AND group_name = \\$2").
		WithArgs(1, "A").
		WillReturnRows(rows)

	sessions, err := repo.ListByLevelGroup(context.Background(), 1, "A")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "Sunday", sessions[0].DayOfWeek)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryBulkCreateCountsInsertedRows(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schedule_sessions")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schedule_sessions")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	tx, err := repo.BeginTxx(context.Background())
	require.NoError(t, err)

	sessions := []models.ScheduleSession{
		{CourseCode: "CS101", CourseName: "Intro to Computing", Kind: "LECTURE", Section: 1, Level: 1, GroupName: "A", DayOfWeek: "Sunday", TimeSlot: "08:00 - 08:50", DurationHours: 1},
		{CourseCode: "CS101", CourseName: "Intro to Computing", Kind: "LECTURE", Section: 1, Level: 1, GroupName: "A", DayOfWeek: "Tuesday", TimeSlot: "08:00 - 08:50", DurationHours: 1},
	}

	inserted, err := repo.BulkCreateWithTx(context.Background(), tx, sessions)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted, "conflicting row must not count as inserted")
	assert.NotEmpty(t, sessions[0].ID)
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryBulkCreateNilTx(t *testing.T) {
	db, _, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	_, err := repo.BulkCreateWithTx(context.Background(), nil, nil)
	assert.Error(t, err)
}

func TestSessionRepositoryDeleteByLevelGroup(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schedule_sessions WHERE level = $1 AND group_name = $2")).
		WithArgs(1, "A").
		WillReturnResult(sqlmock.NewResult(0, 5))

	require.NoError(t, repo.DeleteByLevelGroup(context.Background(), 1, "A"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
