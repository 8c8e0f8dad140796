package scheduler

import "github.com/opencampus/scheduler-api/internal/models"

// sectionBase is the first section number handed out in a run. The counter
// advances once per course activity kind processed, placed or not.
const sectionBase = 1

// runState is the mutable state of one generation run: the occupied cell set
// and per-day hour totals. It is owned exclusively by a single Generate call
// and must never be shared across concurrent runs.
type runState struct {
	occupied    map[models.OccupancyKey]struct{}
	dailyHours  map[models.Day]int
	nextSection int
}

func newRunState(preOccupied []models.OccupancyKey) *runState {
	occupied := make(map[models.OccupancyKey]struct{}, len(preOccupied))
	for _, key := range preOccupied {
		occupied[key] = struct{}{}
	}
	return &runState{
		occupied:    occupied,
		dailyHours:  make(map[models.Day]int),
		nextSection: sectionBase,
	}
}

// available reports whether a session of the given duration may legally occupy
// (day, slot). Pure predicate: committing a placement is a separate step.
func (s *runState) available(day models.Day, slot models.TimeSlot, durationHours int, rules RuleSettings) bool {
	if _, used := s.occupied[models.KeyFor(day, slot)]; used {
		return false
	}
	if _, blocked := rules.BlockedSlots[slot.Label]; blocked {
		return false
	}
	if _, blocked := rules.BlockedDays[day]; blocked {
		return false
	}
	if s.dailyHours[day]+durationHours > rules.MaxDailyHours {
		return false
	}
	if slot.StartHour < models.EarliestStartHour || slot.StartHour > models.LatestStartHour {
		return false
	}
	return true
}

// commit claims (day, slot) and accounts its hours. Callers must have checked
// available first.
func (s *runState) commit(day models.Day, slot models.TimeSlot, durationHours int) {
	s.occupied[models.KeyFor(day, slot)] = struct{}{}
	s.dailyHours[day] += durationHours
}

// takeSection returns the next section number and advances the counter.
func (s *runState) takeSection() int {
	section := s.nextSection
	s.nextSection++
	return section
}
