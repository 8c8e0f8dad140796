package scheduler

import (
	"sort"

	"github.com/opencampus/scheduler-api/internal/models"
)

// CoursePlacement reports how much of one course activity kind could be
// placed. Placed below Required signals a silent shortfall; callers decide
// whether that is acceptable.
type CoursePlacement struct {
	CourseCode    string              `json:"course_code"`
	Kind          models.ActivityKind `json:"kind"`
	Section       int                 `json:"section"`
	RequiredHours int                 `json:"required_hours"`
	PlacedHours   int                 `json:"placed_hours"`
}

// Result is the outcome of one generation run. An empty assignment list is a
// valid result meaning nothing could be placed.
type Result struct {
	Assignments []models.SessionAssignment `json:"assignments"`
	Placements  []CoursePlacement          `json:"placements"`
}

// Generate builds a conflict-free, best-effort timetable for the given courses.
// Courses are processed heaviest-first (stable for ties) so large loads get
// first pick of scarce long slots; within a course the order is always
// lecture, tutorial, lab. The run state is created here and discarded on
// return; concurrent calls are safe as long as inputs are not shared mutably.
func Generate(courses []models.Course, preOccupied []models.OccupancyKey, rules RuleSettings) Result {
	sorted := make([]models.Course, len(courses))
	copy(sorted, courses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalHours() > sorted[j].TotalHours()
	})

	state := newRunState(preOccupied)
	result := Result{
		Assignments: make([]models.SessionAssignment, 0),
		Placements:  make([]CoursePlacement, 0),
	}

	for _, course := range sorted {
		if course.LectureHours > 0 {
			section := state.takeSection()
			placed := placeLectures(course, section, state, rules)
			result.record(course, models.ActivityLecture, section, course.LectureHours, placed)
		}
		if course.TutorialHours > 0 {
			section := state.takeSection()
			placed := placeTutorials(course, section, state, rules)
			result.record(course, models.ActivityTutorial, section, course.TutorialHours, placed)
		}
		if course.LabHours > 0 {
			section := state.takeSection()
			placed := placeLabs(course, section, state, rules)
			result.record(course, models.ActivityLab, section, course.LabHours, placed)
		}
	}

	return result
}

func (r *Result) record(course models.Course, kind models.ActivityKind, section, required int, placed []models.SessionAssignment) {
	r.Assignments = append(r.Assignments, placed...)
	hours := 0
	for _, a := range placed {
		hours += a.DurationHours
	}
	r.Placements = append(r.Placements, CoursePlacement{
		CourseCode:    course.Code,
		Kind:          kind,
		Section:       section,
		RequiredHours: required,
		PlacedHours:   hours,
	})
}
