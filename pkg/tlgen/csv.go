package tlgen

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/galymzhantore/dissertation-teaching-load/pkg/tl"
)

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func writeCsvFile(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)

	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// ExportCSV writes faculty.csv, activities.csv and qualifications.csv so the
// instance can be inspected in a spreadsheet or fed to external tools.
func ExportCSV(instance *tl.ProblemInstance, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	facultyRows := [][]string{}
	for _, f := range instance.Faculty {
		facultyRows = append(facultyRows, []string{
			strconv.Itoa(f.ID),
			f.Name,
			f.Rank.Title(),
			formatFloat(f.TargetLoad),
			formatFloat(f.MaxLoad),
			formatFloat(f.Weight()),
		})
	}
	if err := writeCsvFile(
		filepath.Join(outputDir, "faculty.csv"),
		[]string{"id", "name", "rank", "target_load", "max_load", "weight"},
		facultyRows,
	); err != nil {
		return err
	}

	activityRows := [][]string{}
	for _, activity := range instance.Activities {
		requiredRank := ""
		if activity.RequiredRank != "" {
			requiredRank = activity.RequiredRank.Title()
		}

		activityRows = append(activityRows, []string{
			activity.ID,
			activity.CourseID,
			activity.CourseName,
			activity.Kind.Title(),
			strconv.Itoa(activity.Section),
			formatFloat(activity.Hours),
			strconv.Itoa(activity.StudentCount),
			requiredRank,
		})
	}
	if err := writeCsvFile(
		filepath.Join(outputDir, "activities.csv"),
		[]string{"id", "course_id", "course_name", "activity_type", "section", "hours", "students", "required_rank"},
		activityRows,
	); err != nil {
		return err
	}

	qualificationRows := [][]string{}
	for _, f := range instance.Faculty {
		for _, activityID := range instance.Qualifications[f.ID] {
			qualificationRows = append(qualificationRows, []string{
				strconv.Itoa(f.ID),
				activityID,
				"true",
			})
		}
	}
	return writeCsvFile(
		filepath.Join(outputDir, "qualifications.csv"),
		[]string{"faculty_id", "activity_id", "qualified"},
		qualificationRows,
	)
}
