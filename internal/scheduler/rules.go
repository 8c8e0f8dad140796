// Package scheduler implements the automatic timetable generator: a greedy,
// best-effort placement of course sessions onto the fixed day/slot catalog,
// constrained by rule-derived settings and already-occupied cells.
package scheduler

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/opencampus/scheduler-api/internal/models"
)

const (
	defaultLabAfterHour  = 12
	defaultMaxDailyHours = 8

	middayTimeCue = "12:00"
)

var smallNumberPattern = regexp.MustCompile(`\d{1,2}`)

// RuleSettings is the run-scoped constraint set derived from active rule text.
// It is built once per generation run and never mutated afterwards.
type RuleSettings struct {
	BlockedSlots  map[string]struct{}
	LabAfterHour  int
	MaxDailyHours int
	BlockedDays   map[models.Day]struct{}
}

// DefaultRuleSettings returns the settings used when no rules are active.
// The canonical midday slot is always blocked.
func DefaultRuleSettings() RuleSettings {
	return RuleSettings{
		BlockedSlots:  map[string]struct{}{models.MiddaySlot.Label: {}},
		LabAfterHour:  defaultLabAfterHour,
		MaxDailyHours: defaultMaxDailyHours,
		BlockedDays:   map[models.Day]struct{}{},
	}
}

// Interpret scans rule descriptions for scheduling cues and builds the
// constraint set. This is a best-effort keyword matcher, not a grammar: text
// that matches nothing leaves the corresponding default in place, and later
// rules overwrite earlier ones for the single-value settings.
func Interpret(rules []models.Rule) RuleSettings {
	return InterpretWith(DefaultRuleSettings(), rules)
}

// InterpretWith behaves like Interpret but starts from the given base
// settings instead of the built-in defaults.
func InterpretWith(base RuleSettings, rules []models.Rule) RuleSettings {
	settings := base
	if settings.BlockedSlots == nil {
		settings.BlockedSlots = map[string]struct{}{models.MiddaySlot.Label: {}}
	}
	if settings.BlockedDays == nil {
		settings.BlockedDays = map[models.Day]struct{}{}
	}

	for _, rule := range rules {
		text := strings.ToLower(rule.Description)

		if strings.Contains(text, middayTimeCue) || strings.Contains(text, "lunch") {
			settings.BlockedSlots[models.MiddaySlot.Label] = struct{}{}
		}

		if strings.Contains(text, "lab") && strings.Contains(text, "after") {
			if hour, ok := firstNumber(text); ok {
				settings.LabAfterHour = hour
			}
		}

		if strings.Contains(text, "hour") && strings.Contains(text, "day") {
			if hours, ok := firstNumber(text); ok {
				settings.MaxDailyHours = hours
			}
		}

		if strings.Contains(text, "no class") {
			for _, day := range models.Week {
				if strings.Contains(text, day.LowerName()) {
					settings.BlockedDays[day] = struct{}{}
				}
			}
		}
	}

	return settings
}

func firstNumber(text string) (int, bool) {
	match := smallNumberPattern.FindString(text)
	if match == "" {
		return 0, false
	}
	value, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return value, true
}
