package models

// Day is a teaching day of the Sunday-through-Thursday week.
type Day int

const (
	DaySunday Day = iota
	DayMonday
	DayTuesday
	DayWednesday
	DayThursday
)

// Week lists the teaching days in order. Placement passes iterate this slice,
// so its order is part of the generator's deterministic behavior.
var Week = []Day{DaySunday, DayMonday, DayTuesday, DayWednesday, DayThursday}

var dayNames = map[Day]string{
	DaySunday:    "Sunday",
	DayMonday:    "Monday",
	DayTuesday:   "Tuesday",
	DayWednesday: "Wednesday",
	DayThursday:  "Thursday",
}

var lowerDayNames = map[Day]string{
	DaySunday:    "sunday",
	DayMonday:    "monday",
	DayTuesday:   "tuesday",
	DayWednesday: "wednesday",
	DayThursday:  "thursday",
}

func (d Day) String() string {
	if name, ok := dayNames[d]; ok {
		return name
	}
	return "Unknown"
}

// LowerName returns the lowercase English day name, used for matching day
// mentions in rule text.
func (d Day) LowerName() string {
	return lowerDayNames[d]
}

// DayByName resolves a stored day name back to its Day value.
func DayByName(name string) (Day, bool) {
	for day, n := range dayNames {
		if n == name {
			return day, true
		}
	}
	return 0, false
}

// TimeSlot is one bookable block in the daily grid. The catalog is fixed:
// short slots are fifty minutes, long slots span two adjacent hours.
type TimeSlot struct {
	Label         string `json:"label"`
	StartHour     int    `json:"start_hour"`
	DurationHours int    `json:"duration_hours"`
}

// ShortSlots are the one-hour teaching blocks of a day.
var ShortSlots = []TimeSlot{
	{Label: "08:00 - 08:50", StartHour: 8, DurationHours: 1},
	{Label: "09:00 - 09:50", StartHour: 9, DurationHours: 1},
	{Label: "10:00 - 10:50", StartHour: 10, DurationHours: 1},
	{Label: "11:00 - 11:50", StartHour: 11, DurationHours: 1},
	{Label: "12:00 - 12:50", StartHour: 12, DurationHours: 1},
	{Label: "13:00 - 13:50", StartHour: 13, DurationHours: 1},
}

// LongSlots are the two-hour teaching blocks of a day.
var LongSlots = []TimeSlot{
	{Label: "08:00 - 09:50", StartHour: 8, DurationHours: 2},
	{Label: "10:00 - 11:50", StartHour: 10, DurationHours: 2},
	{Label: "12:00 - 13:50", StartHour: 12, DurationHours: 2},
	{Label: "13:00 - 14:50", StartHour: 13, DurationHours: 2},
}

// MiddaySlot is the canonical lunch block.
var MiddaySlot = ShortSlots[4]

// Start-hour bounds for any placement.
const (
	EarliestStartHour = 8
	LatestStartHour   = 14
)

// SlotByLabel resolves a stored slot label back to its catalog entry.
func SlotByLabel(label string) (TimeSlot, bool) {
	for _, slot := range ShortSlots {
		if slot.Label == label {
			return slot, true
		}
	}
	for _, slot := range LongSlots {
		if slot.Label == label {
			return slot, true
		}
	}
	return TimeSlot{}, false
}

// OccupancyKey identifies one (day, slot) cell of the weekly grid. Two
// sessions conflict exactly when their keys are equal.
type OccupancyKey struct {
	Day  string
	Slot string
}

// KeyFor builds the occupancy key for a day and slot.
func KeyFor(day Day, slot TimeSlot) OccupancyKey {
	return OccupancyKey{Day: day.String(), Slot: slot.Label}
}
