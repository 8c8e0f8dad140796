package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/opencampus/scheduler-api/internal/models"
)

// RuleRepository provides persistence for scheduling rules.
type RuleRepository struct {
	db *sqlx.DB
}

// NewRuleRepository creates a new rule repository.
func NewRuleRepository(db *sqlx.DB) *RuleRepository {
	return &RuleRepository{db: db}
}

// List returns all rules, newest first.
func (r *RuleRepository) List(ctx context.Context) ([]models.Rule, error) {
	const query = `SELECT id, description, active, created_at, updated_at FROM scheduling_rules ORDER BY created_at DESC`
	var rules []models.Rule
	if err := r.db.SelectContext(ctx, &rules, query); err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	return rules, nil
}

// ListActive returns active rules in insertion order. The generator applies
// them in this order, so later rules win for single-value settings.
func (r *RuleRepository) ListActive(ctx context.Context) ([]models.Rule, error) {
	const query = `SELECT id, description, active, created_at, updated_at FROM scheduling_rules WHERE active = TRUE ORDER BY created_at ASC`
	var rules []models.Rule
	if err := r.db.SelectContext(ctx, &rules, query); err != nil {
		return nil, fmt.Errorf("list active rules: %w", err)
	}
	return rules, nil
}

// FindByID loads a rule by id.
func (r *RuleRepository) FindByID(ctx context.Context, id string) (*models.Rule, error) {
	const query = `SELECT id, description, active, created_at, updated_at FROM scheduling_rules WHERE id = $1`
	var rule models.Rule
	if err := r.db.GetContext(ctx, &rule, query, id); err != nil {
		return nil, err
	}
	return &rule, nil
}

// Create stores a new rule record.
func (r *RuleRepository) Create(ctx context.Context, rule *models.Rule) error {
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = now
	}
	rule.UpdatedAt = now

	const query = `INSERT INTO scheduling_rules (id, description, active, created_at, updated_at) VALUES (:id, :description, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, rule); err != nil {
		return fmt.Errorf("create rule: %w", err)
	}
	return nil
}

// SetActive toggles a rule's active flag.
func (r *RuleRepository) SetActive(ctx context.Context, id string, active bool) error {
	const query = `UPDATE scheduling_rules SET active = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, active, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set rule active: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("rule %s not found", id)
	}
	return nil
}

// Delete removes a rule by id.
func (r *RuleRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM scheduling_rules WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete rule: %w", err)
	}
	return nil
}
