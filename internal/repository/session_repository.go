package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/opencampus/scheduler-api/internal/models"
)

// SessionRepository provides persistence for scheduled sessions.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// ListByLevelGroup returns the stored timetable for one level/group ordered by
// day and slot. It doubles as the generator's pre-occupancy source.
func (r *SessionRepository) ListByLevelGroup(ctx context.Context, level int, group string) ([]models.ScheduleSession, error) {
	const query = `SELECT id, course_code, course_name, kind, section, level, group_name, day_of_week, time_slot, duration_hours, created_at
FROM schedule_sessions WHERE level = $1 AND group_name = $2 ORDER BY day_of_week ASC, time_slot ASC`
	var sessions []models.ScheduleSession
	if err := r.db.SelectContext(ctx, &sessions, query, level, group); err != nil {
		return nil, fmt.Errorf("list sessions by level/group: %w", err)
	}
	return sessions, nil
}

// BulkCreateWithTx inserts sessions inside an existing transaction, skipping
// rows whose (level, group, day, slot) cell was concurrently filled. Returns
// how many rows were actually inserted.
func (r *SessionRepository) BulkCreateWithTx(ctx context.Context, tx *sqlx.Tx, sessions []models.ScheduleSession) (int, error) {
	if tx == nil {
		return 0, fmt.Errorf("nil transaction provided")
	}
	now := time.Now().UTC()
	inserted := 0

	const query = `INSERT INTO schedule_sessions (id, course_code, course_name, kind, section, level, group_name, day_of_week, time_slot, duration_hours, created_at)
VALUES (:id, :course_code, :course_name, :kind, :section, :level, :group_name, :day_of_week, :time_slot, :duration_hours, :created_at)
ON CONFLICT (level, group_name, day_of_week, time_slot) DO NOTHING`

	for i := range sessions {
		payload := sessions[i]
		if payload.ID == "" {
			payload.ID = uuid.NewString()
		}
		if payload.CreatedAt.IsZero() {
			payload.CreatedAt = now
		}

		result, err := sqlx.NamedExecContext(ctx, tx, query, &payload)
		if err != nil {
			return inserted, fmt.Errorf("bulk insert session: %w", err)
		}
		if affected, err := result.RowsAffected(); err == nil && affected > 0 {
			inserted++
		}
		sessions[i] = payload
	}
	return inserted, nil
}

// DeleteByLevelGroup clears the stored timetable for one level/group.
func (r *SessionRepository) DeleteByLevelGroup(ctx context.Context, level int, group string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM schedule_sessions WHERE level = $1 AND group_name = $2`, level, group); err != nil {
		return fmt.Errorf("delete sessions by level/group: %w", err)
	}
	return nil
}

// BeginTxx starts a transaction for callers composing multi-step writes.
func (r *SessionRepository) BeginTxx(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, nil)
}
