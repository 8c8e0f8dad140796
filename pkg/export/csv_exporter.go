package export

import (
	"fmt"

	"github.com/gocarina/gocsv"
)

// TimetableRow is one exported session line.
type TimetableRow struct {
	CourseCode    string `csv:"course_code"`
	CourseName    string `csv:"course_name"`
	Kind          string `csv:"kind"`
	Section       int    `csv:"section"`
	Day           string `csv:"day"`
	TimeSlot      string `csv:"time_slot"`
	DurationHours int    `csv:"duration_hours"`
}

// CSVExporter renders timetable rows into CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the timetable.
func (e *CSVExporter) Render(rows []TimetableRow) ([]byte, error) {
	out, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("marshal timetable csv: %w", err)
	}
	return out, nil
}
