package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opencampus/scheduler-api/internal/models"
)

func TestAvailableRejectsOccupiedCell(t *testing.T) {
	slot := models.ShortSlots[0]
	state := newRunState([]models.OccupancyKey{models.KeyFor(models.DaySunday, slot)})
	rules := DefaultRuleSettings()

	assert.False(t, state.available(models.DaySunday, slot, 1, rules))
	assert.True(t, state.available(models.DayMonday, slot, 1, rules))
}

func TestAvailableRejectsBlockedLunchSlot(t *testing.T) {
	state := newRunState(nil)
	rules := DefaultRuleSettings()

	assert.False(t, state.available(models.DaySunday, models.MiddaySlot, 1, rules))
}

func TestAvailableRejectsBlockedDay(t *testing.T) {
	state := newRunState(nil)
	rules := DefaultRuleSettings()
	rules.BlockedDays[models.DayThursday] = struct{}{}

	assert.False(t, state.available(models.DayThursday, models.ShortSlots[0], 1, rules))
	assert.True(t, state.available(models.DayWednesday, models.ShortSlots[0], 1, rules))
}

func TestAvailableEnforcesDailyHourCap(t *testing.T) {
	state := newRunState(nil)
	rules := DefaultRuleSettings()
	rules.MaxDailyHours = 2

	state.commit(models.DaySunday, models.ShortSlots[0], 1)
	assert.True(t, state.available(models.DaySunday, models.ShortSlots[1], 1, rules))

	state.commit(models.DaySunday, models.ShortSlots[1], 1)
	assert.False(t, state.available(models.DaySunday, models.ShortSlots[2], 1, rules))
	assert.True(t, state.available(models.DayMonday, models.ShortSlots[2], 1, rules))
}

func TestAvailableEnforcesStartHourWindow(t *testing.T) {
	state := newRunState(nil)
	rules := DefaultRuleSettings()

	early := models.TimeSlot{Label: "07:00 - 07:50", StartHour: 7, DurationHours: 1}
	late := models.TimeSlot{Label: "15:00 - 15:50", StartHour: 15, DurationHours: 1}

	assert.False(t, state.available(models.DaySunday, early, 1, rules))
	assert.False(t, state.available(models.DaySunday, late, 1, rules))
}

func TestCommitIsPureAvailabilityCounterpart(t *testing.T) {
	state := newRunState(nil)
	rules := DefaultRuleSettings()
	slot := models.LongSlots[0]

	assert.True(t, state.available(models.DayTuesday, slot, 2, rules))
	// available must not mutate
	assert.True(t, state.available(models.DayTuesday, slot, 2, rules))

	state.commit(models.DayTuesday, slot, 2)
	assert.False(t, state.available(models.DayTuesday, slot, 2, rules))
	assert.Equal(t, 2, state.dailyHours[models.DayTuesday])
}

func TestTakeSectionIncrements(t *testing.T) {
	state := newRunState(nil)

	assert.Equal(t, sectionBase, state.takeSection())
	assert.Equal(t, sectionBase+1, state.takeSection())
}
