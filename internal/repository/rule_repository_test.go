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

func TestRuleRepositoryListActiveOrdersByCreation(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRuleRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "description", "active", "created_at", "updated_at"}).
		AddRow("rule-1", "No classes during lunch break 12:00", true, now.Add(-time.Hour), now).
		AddRow("rule-2", "Labs only after 13", true, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, description, active, created_at, updated_at FROM scheduling_rules WHERE active = TRUE ORDER BY created_at ASC")).
		WillReturnRows(rows)

	rules, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "rule-1", rules[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRuleRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRuleRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO scheduling_rules")).
		WithArgs(sqlmock.AnyArg(), "Max 6 hours per day", true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	rule := &models.Rule{Description: "Max 6 hours per day", Active: true}
	require.NoError(t, repo.Create(context.Background(), rule))
	assert.NotEmpty(t, rule.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRuleRepositorySetActiveNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRuleRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE scheduling_rules SET active = $2, updated_at = $3 WHERE id = $1")).
		WithArgs("missing", false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetActive(context.Background(), "missing", false)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
