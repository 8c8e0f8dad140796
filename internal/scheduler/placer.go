package scheduler

import "github.com/opencampus/scheduler-api/internal/models"

// lectureDayPattern maps the weekly lecture load to a fixed day spread:
// three or more hours alternate across the week, two hours take the second and
// fourth days, anything else lands on the first day.
func lectureDayPattern(hours int) []models.Day {
	switch {
	case hours >= 3:
		return []models.Day{models.DaySunday, models.DayTuesday, models.DayThursday}
	case hours == 2:
		return []models.Day{models.DayMonday, models.DayWednesday}
	default:
		return []models.Day{models.DaySunday}
	}
}

// placeLectures assigns lecture sessions for one course. It first looks for a
// single short slot that is free on every pattern day, keeping the lecture at
// the same time all week. If none exists it falls back to the first legal slot
// per pattern day. Days with no legal slot are skipped silently.
func placeLectures(course models.Course, section int, state *runState, rules RuleSettings) []models.SessionAssignment {
	pattern := lectureDayPattern(course.LectureHours)

	for _, slot := range models.ShortSlots {
		fitsAll := true
		for _, day := range pattern {
			if !state.available(day, slot, 1, rules) {
				fitsAll = false
				break
			}
		}
		if !fitsAll {
			continue
		}
		out := make([]models.SessionAssignment, 0, len(pattern))
		for _, day := range pattern {
			state.commit(day, slot, 1)
			out = append(out, assignment(course, models.ActivityLecture, section, day, slot))
		}
		return out
	}

	var out []models.SessionAssignment
	remaining := course.LectureHours
	for _, day := range pattern {
		if remaining <= 0 {
			break
		}
		for _, slot := range models.ShortSlots {
			if state.available(day, slot, 1, rules) {
				state.commit(day, slot, 1)
				out = append(out, assignment(course, models.ActivityLecture, section, day, slot))
				remaining--
				break
			}
		}
	}
	return out
}

// placeTutorials assigns tutorial sessions. A two-hour tutorial prefers a
// single long slot and is never split across two long slots; otherwise hours
// are filled greedily with short slots.
func placeTutorials(course models.Course, section int, state *runState, rules RuleSettings) []models.SessionAssignment {
	if course.TutorialHours == 2 {
		for _, day := range models.Week {
			for _, slot := range models.LongSlots {
				if state.available(day, slot, 2, rules) {
					state.commit(day, slot, 2)
					return []models.SessionAssignment{assignment(course, models.ActivityTutorial, section, day, slot)}
				}
			}
		}
	}

	var out []models.SessionAssignment
	remaining := course.TutorialHours
	for _, day := range models.Week {
		for _, slot := range models.ShortSlots {
			if remaining <= 0 {
				return out
			}
			if state.available(day, slot, 1, rules) {
				state.commit(day, slot, 1)
				out = append(out, assignment(course, models.ActivityTutorial, section, day, slot))
				remaining--
			}
		}
	}
	return out
}

// placeLabs assigns lab sessions. Labs may not start before the rule-derived
// earliest lab hour regardless of other legality. Two-hour blocks are placed
// first; leftover hours fall back to short slots.
func placeLabs(course models.Course, section int, state *runState, rules RuleSettings) []models.SessionAssignment {
	var out []models.SessionAssignment
	remaining := course.LabHours

	for _, day := range models.Week {
		for _, slot := range models.LongSlots {
			if remaining < 2 {
				break
			}
			if slot.StartHour < rules.LabAfterHour {
				continue
			}
			if state.available(day, slot, 2, rules) {
				state.commit(day, slot, 2)
				out = append(out, assignment(course, models.ActivityLab, section, day, slot))
				remaining -= 2
			}
		}
	}

	for _, day := range models.Week {
		for _, slot := range models.ShortSlots {
			if remaining <= 0 {
				return out
			}
			if slot.StartHour < rules.LabAfterHour {
				continue
			}
			if state.available(day, slot, 1, rules) {
				state.commit(day, slot, 1)
				out = append(out, assignment(course, models.ActivityLab, section, day, slot))
				remaining--
			}
		}
	}
	return out
}

func assignment(course models.Course, kind models.ActivityKind, section int, day models.Day, slot models.TimeSlot) models.SessionAssignment {
	return models.SessionAssignment{
		CourseCode:    course.Code,
		CourseName:    course.Name,
		Kind:          kind,
		Section:       section,
		Day:           day,
		Slot:          slot,
		DurationHours: slot.DurationHours,
	}
}
