package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opencampus/scheduler-api/internal/models"
)

func TestInterpretDefaults(t *testing.T) {
	settings := Interpret(nil)

	assert.Contains(t, settings.BlockedSlots, models.MiddaySlot.Label)
	assert.Len(t, settings.BlockedSlots, 1)
	assert.Equal(t, 12, settings.LabAfterHour)
	assert.Equal(t, 8, settings.MaxDailyHours)
	assert.Empty(t, settings.BlockedDays)
}

func TestInterpretLunchCue(t *testing.T) {
	settings := Interpret([]models.Rule{
		{Description: "Keep the Lunch break free for everyone"},
		{Description: "Nothing should be scheduled at 12:00"},
	})

	assert.Contains(t, settings.BlockedSlots, models.MiddaySlot.Label)
	assert.Len(t, settings.BlockedSlots, 1, "duplicate cues keep set semantics")
}

func TestInterpretLabAfterHourLastWins(t *testing.T) {
	settings := Interpret([]models.Rule{
		{Description: "lab sessions only after 10"},
		{Description: "Lab slots must come after 13"},
	})

	assert.Equal(t, 13, settings.LabAfterHour)
}

func TestInterpretMaxDailyHours(t *testing.T) {
	settings := Interpret([]models.Rule{
		{Description: "at most 6 hours per day"},
	})

	assert.Equal(t, 6, settings.MaxDailyHours)
}

func TestInterpretBlockedDays(t *testing.T) {
	settings := Interpret([]models.Rule{
		{Description: "No lab sessions after 10"},
		{Description: "no classes on Thursday"},
	})

	assert.Equal(t, 10, settings.LabAfterHour)
	assert.Contains(t, settings.BlockedDays, models.DayThursday)
	assert.Len(t, settings.BlockedDays, 1)
}

func TestInterpretMalformedTextLeavesDefaults(t *testing.T) {
	settings := Interpret([]models.Rule{
		{Description: "students prefer shorter commutes"},
		{Description: ""},
		{Description: "lab after noon"}, // no digits, default stays
	})

	assert.Equal(t, 12, settings.LabAfterHour)
	assert.Equal(t, 8, settings.MaxDailyHours)
	assert.Empty(t, settings.BlockedDays)
}
