package tlreport

import (
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tl"
	"github.com/xuri/excelize/v2"
)

// IndividualPlan builds one teacher's individual work plan: identity and
// load summary on top, assigned courses below.
func IndividualPlan(
	instance *tl.ProblemInstance,
	result *tl.OptimizationResult,
	facultyID int,
	academicYear string,
) (*excelize.File, error) {
	if academicYear == "" {
		academicYear = defaultAcademicYear
	}

	faculty, err := instance.FacultyByID(facultyID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetPlan)

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	w := &sheetWriter{file: f, sheet: sheetPlan}

	w.setRow(2, []interface{}{"Ф.А.Ә.", "Лауазымы", "Оқу жылы", "Мақсатты жүктеме", "Нақты жүктеме"})
	w.style("A2", "E2", headerStyle)
	w.setRow(3, []interface{}{
		faculty.Name,
		faculty.Rank.Title(),
		academicYear,
		faculty.TargetLoad,
		result.FacultyLoads[facultyID],
	})

	w.setRow(6, []interface{}{"Пән атауы", "Түрі", "Сағаттар", "Студенттер"})
	w.style("A6", "D6", headerStyle)
	w.colWidth("A", "A", 30)

	row := 7

	for _, assignment := range result.Assignments {
		if assignment.FacultyID != facultyID {
			continue
		}

		activity, err := instance.ActivityByID(assignment.ActivityID)
		if err != nil {
			continue
		}

		w.setRow(row, []interface{}{
			activity.CourseName,
			activity.Kind.Title(),
			activity.Hours,
			activity.StudentCount,
		})

		row++
	}

	return f, w.err
}
