package tlreport

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/galymzhantore/dissertation-teaching-load/pkg/tl"
)

var assignmentCsvHeader = []string{
	"faculty_id",
	"faculty",
	"rank",
	"course_id",
	"course_name",
	"activity_type",
	"section",
	"hours",
	"students",
	"preference",
}

// AssignmentsCSV writes the assignment list as CSV, one row per assignment
// in result order. The plain-data counterpart of the workbook's
// "Тағайындаулар" sheet.
func AssignmentsCSV(
	instance *tl.ProblemInstance,
	result *tl.OptimizationResult,
	output io.Writer,
) error {
	out := csv.NewWriter(output)

	if err := out.Write(assignmentCsvHeader); err != nil {
		return err
	}

	for _, assignment := range result.Assignments {
		faculty, err := instance.FacultyByID(assignment.FacultyID)
		if err != nil {
			continue
		}
		activity, err := instance.ActivityByID(assignment.ActivityID)
		if err != nil {
			continue
		}

		if err := out.Write([]string{
			strconv.Itoa(faculty.ID),
			faculty.Name,
			faculty.Rank.Title(),
			activity.CourseID,
			activity.CourseName,
			activity.Kind.Title(),
			strconv.Itoa(activity.Section),
			strconv.FormatFloat(activity.Hours, 'f', -1, 64),
			strconv.Itoa(activity.StudentCount),
			strconv.Itoa(faculty.Preference(activity.ID)),
		}); err != nil {
			return err
		}
	}

	out.Flush()

	return out.Error()
}
