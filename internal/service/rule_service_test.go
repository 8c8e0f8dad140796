package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencampus/scheduler-api/internal/dto"
	"github.com/opencampus/scheduler-api/internal/models"
	appErrors "github.com/opencampus/scheduler-api/pkg/errors"
)

type ruleRepoStub struct {
	rules map[string]*models.Rule
}

func (s *ruleRepoStub) List(ctx context.Context) ([]models.Rule, error) {
	var out []models.Rule
	for _, r := range s.rules {
		out = append(out, *r)
	}
	return out, nil
}

func (s *ruleRepoStub) FindByID(ctx context.Context, id string) (*models.Rule, error) {
	if r, ok := s.rules[id]; ok {
		return r, nil
	}
	return nil, sql.ErrNoRows
}

func (s *ruleRepoStub) Create(ctx context.Context, rule *models.Rule) error {
	rule.ID = "rule-new"
	s.rules[rule.ID] = rule
	return nil
}

func (s *ruleRepoStub) SetActive(ctx context.Context, id string, active bool) error {
	s.rules[id].Active = active
	return nil
}

func (s *ruleRepoStub) Delete(ctx context.Context, id string) error {
	delete(s.rules, id)
	return nil
}

func newRuleFixture() (*RuleService, *ruleRepoStub) {
	repo := &ruleRepoStub{rules: map[string]*models.Rule{
		"rule-1": {ID: "rule-1", Description: "No classes during lunch 12:00", Active: true},
	}}
	return NewRuleService(repo, nil, nil), repo
}

func TestRuleServiceCreate(t *testing.T) {
	service, repo := newRuleFixture()

	rule, err := service.Create(context.Background(), dto.CreateRuleRequest{Description: "Labs only after 13", Active: true})
	require.NoError(t, err)
	assert.Equal(t, "rule-new", rule.ID)
	assert.Contains(t, repo.rules, "rule-new")
}

func TestRuleServiceCreateValidatesDescription(t *testing.T) {
	service, _ := newRuleFixture()

	_, err := service.Create(context.Background(), dto.CreateRuleRequest{Description: ""})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestRuleServiceSetActive(t *testing.T) {
	service, repo := newRuleFixture()

	rule, err := service.SetActive(context.Background(), "rule-1", dto.SetRuleActiveRequest{Active: false})
	require.NoError(t, err)
	assert.False(t, rule.Active)
	assert.False(t, repo.rules["rule-1"].Active)
}

func TestRuleServiceSetActiveNotFound(t *testing.T) {
	service, _ := newRuleFixture()

	_, err := service.SetActive(context.Background(), "missing", dto.SetRuleActiveRequest{Active: true})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestRuleServiceDelete(t *testing.T) {
	service, repo := newRuleFixture()

	require.NoError(t, service.Delete(context.Background(), "rule-1"))
	assert.Empty(t, repo.rules)
}
