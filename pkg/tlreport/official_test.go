package tlreport

import (
	"bytes"
	"strings"
	"testing"

	"github.com/function61/gokit/testing/assert"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tl"
	"github.com/xuri/excelize/v2"
)

func reportInstance() *tl.ProblemInstance {
	return &tl.ProblemInstance{
		Name: "report test",
		Faculty: []tl.Faculty{
			{ID: 1, Name: "Алия Касымова", Rank: tl.RankProfessor, TargetLoad: 90, MaxLoad: 100},
			{ID: 2, Name: "Марат Ерланов", Rank: tl.RankTeacher, TargetLoad: 60, MaxLoad: 70},
		},
		Activities: []tl.CourseActivity{
			{ID: "CS101_L1", CourseID: "CS101", CourseName: "Алгоритмдер", Kind: tl.KindLecture, Section: 1, Hours: 40, StudentCount: 120},
			{ID: "CS101_P1", CourseID: "CS101", CourseName: "Алгоритмдер", Kind: tl.KindPractical, Section: 1, Hours: 30, StudentCount: 30},
			{ID: "THESIS_B1", CourseID: "THESIS_B1", CourseName: "Дипломдық жұмыс 1", Kind: tl.KindBachelorThesis, Section: 1, Hours: 20, StudentCount: 1},
		},
	}
}

func reportResult() *tl.OptimizationResult {
	return &tl.OptimizationResult{
		InstanceID: "small-42",
		SolverName: "Greedy",
		Assignments: []tl.Assignment{
			{FacultyID: 1, ActivityID: "CS101_L1"},
			{FacultyID: 1, ActivityID: "CS101_P1"},
			{FacultyID: 1, ActivityID: "THESIS_B1"},
		},
		FacultyLoads: map[int]float64{1: 90, 2: 0},
	}
}

func cell(t *testing.T, f *excelize.File, sheet string, axis string) string {
	value, err := f.GetCellValue(sheet, axis)
	assert.Ok(t, err)

	return value
}

func TestOfficialMainSheet(t *testing.T) {
	f, err := Official(reportInstance(), reportResult(), Options{})
	assert.Ok(t, err)

	assert.EqualString(t, cell(t, f, sheetMain, "A1"),
		`Распределение учебно-педагогической нагрузки ППС кафедры "Ақпараттық технологиялар" на 2024-2025 учебный год`)

	assert.EqualString(t, cell(t, f, sheetMain, "A4"), "№")
	assert.EqualString(t, cell(t, f, sheetMain, "B4"), "Ф.А.Ә. оқытушы, лауазымы")
	assert.EqualString(t, cell(t, f, sheetMain, "U4"), "БАРЛЫҒЫ")

	// CS101 lecture and practical grouped into one course row
	assert.EqualString(t, cell(t, f, sheetMain, "A5"), "1")
	assert.EqualString(t, cell(t, f, sheetMain, "B5"), "Алия Касымова, Профессор")
	assert.EqualString(t, cell(t, f, sheetMain, "C5"), "Алгоритмдер")
	assert.EqualString(t, cell(t, f, sheetMain, "E5"), "120")
	assert.EqualString(t, cell(t, f, sheetMain, "F5"), "қазақ")
	assert.EqualString(t, cell(t, f, sheetMain, "K5"), "40")
	assert.EqualString(t, cell(t, f, sheetMain, "L5"), "30")
	assert.EqualString(t, cell(t, f, sheetMain, "N5"), "20")  // СОӨЖ = half of lectures
	assert.EqualString(t, cell(t, f, sheetMain, "O5"), "70")  // classroom total
	assert.EqualString(t, cell(t, f, sheetMain, "P5"), "30")  // exams for 120 students
	assert.EqualString(t, cell(t, f, sheetMain, "U5"), "100") // grand total

	// thesis supervision is non-classroom work
	assert.EqualString(t, cell(t, f, sheetMain, "C6"), "Дипломдық жұмыс 1")
	assert.EqualString(t, cell(t, f, sheetMain, "Q6"), "20")
	assert.EqualString(t, cell(t, f, sheetMain, "T6"), "20.25")
	assert.EqualString(t, cell(t, f, sheetMain, "U6"), "20.25")

	// teacher without assignments gets no row
	assert.EqualString(t, cell(t, f, sheetMain, "A7"), "")
}

func TestOfficialAssignmentsSheet(t *testing.T) {
	f, err := Official(reportInstance(), reportResult(), Options{})
	assert.Ok(t, err)

	assert.EqualString(t, cell(t, f, sheetAssignments, "A1"), "Оқытушы")

	assert.EqualString(t, cell(t, f, sheetAssignments, "A2"), "Алия Касымова")
	assert.EqualString(t, cell(t, f, sheetAssignments, "B2"), "Профессор")
	assert.EqualString(t, cell(t, f, sheetAssignments, "C2"), "CS101")
	assert.EqualString(t, cell(t, f, sheetAssignments, "E2"), "Дәріс")
	assert.EqualString(t, cell(t, f, sheetAssignments, "G2"), "40")

	assert.EqualString(t, cell(t, f, sheetAssignments, "C4"), "THESIS_B1")
	assert.EqualString(t, cell(t, f, sheetAssignments, "A5"), "")
}

func TestOfficialStatisticsSheet(t *testing.T) {
	f, err := Official(reportInstance(), reportResult(), Options{})
	assert.Ok(t, err)

	assert.EqualString(t, cell(t, f, sheetStatistics, "A1"), "Оқытушы")
	assert.EqualString(t, cell(t, f, sheetStatistics, "G1"), "Толтырылу (%)")

	assert.EqualString(t, cell(t, f, sheetStatistics, "A2"), "Алия Касымова")
	assert.EqualString(t, cell(t, f, sheetStatistics, "C2"), "90")
	assert.EqualString(t, cell(t, f, sheetStatistics, "E2"), "90")
	assert.EqualString(t, cell(t, f, sheetStatistics, "F2"), "0")
	assert.EqualString(t, cell(t, f, sheetStatistics, "G2"), "100")
	assert.EqualString(t, cell(t, f, sheetStatistics, "H2"), "3")
	assert.EqualString(t, cell(t, f, sheetStatistics, "I2"), "40")

	// teachers without assignments still show up in the statistics
	assert.EqualString(t, cell(t, f, sheetStatistics, "A3"), "Марат Ерланов")
	assert.EqualString(t, cell(t, f, sheetStatistics, "E3"), "0")
	assert.EqualString(t, cell(t, f, sheetStatistics, "F3"), "-60")
	assert.EqualString(t, cell(t, f, sheetStatistics, "H3"), "0")

	assert.EqualString(t, cell(t, f, sheetStatistics, "A4"), "БАРЛЫҒЫ")
	assert.EqualString(t, cell(t, f, sheetStatistics, "C4"), "150")
	assert.EqualString(t, cell(t, f, sheetStatistics, "E4"), "90")
	assert.EqualString(t, cell(t, f, sheetStatistics, "H4"), "3")
}

func TestOfficialHonorsOptions(t *testing.T) {
	f, err := Official(reportInstance(), reportResult(), Options{
		DepartmentName: "Математика",
		AcademicYear:   "2025-2026",
	})
	assert.Ok(t, err)

	assert.EqualString(t, cell(t, f, sheetMain, "A1"),
		`Распределение учебно-педагогической нагрузки ППС кафедры "Математика" на 2025-2026 учебный год`)
}

func TestIndividualPlan(t *testing.T) {
	f, err := IndividualPlan(reportInstance(), reportResult(), 1, "")
	assert.Ok(t, err)

	assert.EqualString(t, cell(t, f, sheetPlan, "A2"), "Ф.А.Ә.")
	assert.EqualString(t, cell(t, f, sheetPlan, "A3"), "Алия Касымова")
	assert.EqualString(t, cell(t, f, sheetPlan, "B3"), "Профессор")
	assert.EqualString(t, cell(t, f, sheetPlan, "C3"), "2024-2025")
	assert.EqualString(t, cell(t, f, sheetPlan, "D3"), "90")
	assert.EqualString(t, cell(t, f, sheetPlan, "E3"), "90")

	assert.EqualString(t, cell(t, f, sheetPlan, "A6"), "Пән атауы")
	assert.EqualString(t, cell(t, f, sheetPlan, "A7"), "Алгоритмдер")
	assert.EqualString(t, cell(t, f, sheetPlan, "B7"), "Дәріс")
	assert.EqualString(t, cell(t, f, sheetPlan, "A8"), "Алгоритмдер")
	assert.EqualString(t, cell(t, f, sheetPlan, "A9"), "Дипломдық жұмыс 1")
	assert.EqualString(t, cell(t, f, sheetPlan, "A10"), "")
}

func TestAssignmentsCSV(t *testing.T) {
	out := &bytes.Buffer{}

	assert.Ok(t, AssignmentsCSV(reportInstance(), reportResult(), out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")

	assert.Assert(t, len(lines) == 4)
	assert.EqualString(t, lines[0], strings.Join(assignmentCsvHeader, ","))
	assert.EqualString(t, lines[1], "1,Алия Касымова,Профессор,CS101,Алгоритмдер,Дәріс,1,40,120,0")
	assert.EqualString(t, lines[3], "1,Алия Касымова,Профессор,THESIS_B1,Дипломдық жұмыс 1,Бакалавр дипломдық жұмыс,1,20,1,0")
}

func TestIndividualPlanUnknownFaculty(t *testing.T) {
	_, err := IndividualPlan(reportInstance(), reportResult(), 99, "")

	assert.Assert(t, err != nil)
	assert.EqualString(t, err.Error(), "faculty not found: 99")
}
