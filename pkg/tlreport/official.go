// Renders load distribution results into the university's official Excel
// formats: the department load distribution workbook and per-teacher
// individual work plans.
package tlreport

import (
	"fmt"
	"math"

	"github.com/galymzhantore/dissertation-teaching-load/pkg/tl"
	"github.com/xuri/excelize/v2"
)

const (
	sheetMain        = "Жүктеме бөлу"
	sheetAssignments = "Тағайындаулар"
	sheetStatistics  = "Статистика"
	sheetPlan        = "ЖЖ"
)

const (
	defaultDepartment   = "Ақпараттық технологиялар"
	defaultAcademicYear = "2024-2025"

	// СОӨЖ (guided self study) follows lecture hours, exam acceptance
	// follows enrollment
	selfStudyShare      = 0.5
	examHoursPerStudent = 0.25
)

// programme details are not tracked per course, so the department template
// fills them in uniformly
const (
	programmeName    = "6B06103 - Ақпараттық жүйелер"
	teachingLanguage = "қазақ"
)

var mainHeaders = []interface{}{
	"№",
	"Ф.А.Ә. оқытушы, лауазымы",
	"Пән атауы",
	"ББ атауы",
	"Студенттер саны",
	"Оқыту тілі",
	"Курс",
	"Семестр",
	"Кредиттер саны",
	"Подгруппалар",
	"Дәріс (сағ)",
	"Практ/сем (сағ)",
	"Зертхана (сағ)",
	"СОӨЖ (сағ)",
	"Аудиториялық жұмыс барлығы",
	"Емтихан қабылдау",
	"Бакалавр жетекшілігі",
	"Магистр жетекшілігі",
	"НИРМ/ЭИР",
	"Аудиториялық емес жұмыс барлығы",
	"БАРЛЫҒЫ",
}

var assignmentHeaders = []interface{}{
	"Оқытушы",
	"Лауазымы",
	"Курс коды",
	"Пән атауы",
	"Белсенділік түрі",
	"Секция",
	"Сағаттар",
	"Студенттер саны",
}

var statisticsHeaders = []interface{}{
	"Оқытушы",
	"Лауазымы",
	"Мақсатты жүктеме (сағ)",
	"Максималды жүктеме (сағ)",
	"Нақты жүктеме (сағ)",
	"Ауытқу (сағ)",
	"Толтырылу (%)",
	"Тағайындаулар саны",
	"Дәріс (сағ)",
	"Практикалық (сағ)",
	"Зертхана (сағ)",
}

type Options struct {
	DepartmentName string // empty = department default
	AcademicYear   string // empty = current template year
}

func (o Options) withDefaults() Options {
	if o.DepartmentName == "" {
		o.DepartmentName = defaultDepartment
	}
	if o.AcademicYear == "" {
		o.AcademicYear = defaultAcademicYear
	}

	return o
}

// per-teacher rollup, in instance faculty order
type facultyLoad struct {
	faculty     *tl.Faculty
	assignments []*tl.CourseActivity
	hours       map[tl.ActivityKind]float64
}

func collectLoads(instance *tl.ProblemInstance, result *tl.OptimizationResult) []*facultyLoad {
	loads := []*facultyLoad{}
	byID := map[int]*facultyLoad{}

	for i := range instance.Faculty {
		load := &facultyLoad{
			faculty: &instance.Faculty[i],
			hours:   map[tl.ActivityKind]float64{},
		}

		loads = append(loads, load)
		byID[load.faculty.ID] = load
	}

	for _, assignment := range result.Assignments {
		activity, err := instance.ActivityByID(assignment.ActivityID)
		if err != nil {
			continue
		}

		load, found := byID[assignment.FacultyID]
		if !found {
			continue
		}

		load.assignments = append(load.assignments, activity)
		load.hours[activity.Kind] += activity.Hours
	}

	return loads
}

// per-course rollup within one teacher's assignments, first appearance order
type courseLoad struct {
	name     string
	students int
	hours    map[tl.ActivityKind]float64
}

func groupCourses(assignments []*tl.CourseActivity) []*courseLoad {
	ordered := []*courseLoad{}
	byID := map[string]*courseLoad{}

	for _, activity := range assignments {
		course, found := byID[activity.CourseID]
		if !found {
			course = &courseLoad{
				name:     activity.CourseName,
				students: activity.StudentCount,
				hours:    map[tl.ActivityKind]float64{},
			}

			byID[activity.CourseID] = course
			ordered = append(ordered, course)
		}

		course.hours[activity.Kind] += activity.Hours
	}

	return ordered
}

// Official builds the three-sheet department workbook: the official load
// distribution table, the full assignment list and per-teacher load
// statistics.
func Official(
	instance *tl.ProblemInstance,
	result *tl.OptimizationResult,
	opts Options,
) (*excelize.File, error) {
	opts = opts.withDefaults()
	loads := collectLoads(instance, result)

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetMain)
	f.NewSheet(sheetAssignments)
	f.NewSheet(sheetStatistics)

	if err := writeMainSheet(f, loads, opts); err != nil {
		return nil, err
	}
	if err := writeAssignmentsSheet(f, instance, result); err != nil {
		return nil, err
	}
	if err := writeStatisticsSheet(f, result, loads); err != nil {
		return nil, err
	}

	return f, nil
}

func writeMainSheet(f *excelize.File, loads []*facultyLoad, opts Options) error {
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	if err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	w := &sheetWriter{file: f, sheet: sheetMain}

	w.setCell(1, 1, fmt.Sprintf(
		`Распределение учебно-педагогической нагрузки ППС кафедры "%s" на %s учебный год`,
		opts.DepartmentName,
		opts.AcademicYear))
	w.merge("A1", "U1")
	w.style("A1", "U1", titleStyle)

	w.setRow(4, mainHeaders)
	w.style("A4", "U4", headerStyle)
	w.colWidth("B", "B", 35)
	w.colWidth("C", "C", 25)

	row := 5
	num := 1

	for _, load := range loads {
		if len(load.assignments) == 0 {
			continue
		}

		for _, course := range groupCourses(load.assignments) {
			classroom := course.hours[tl.KindLecture] +
				course.hours[tl.KindPractical] +
				course.hours[tl.KindSeminar] +
				course.hours[tl.KindLab]

			exam := float64(course.students) * examHoursPerStudent

			nonClassroom := exam +
				course.hours[tl.KindBachelorThesis] +
				course.hours[tl.KindMasterThesis] +
				course.hours[tl.KindResearchNIRM]

			w.setRow(row, []interface{}{
				num,
				load.faculty.Name + ", " + load.faculty.Rank.Title(),
				course.name,
				programmeName,
				course.students,
				teachingLanguage,
				1,
				1,
				3,
				1,
				course.hours[tl.KindLecture],
				course.hours[tl.KindPractical] + course.hours[tl.KindSeminar],
				course.hours[tl.KindLab],
				course.hours[tl.KindLecture] * selfStudyShare,
				classroom,
				exam,
				course.hours[tl.KindBachelorThesis],
				course.hours[tl.KindMasterThesis],
				course.hours[tl.KindResearchNIRM],
				nonClassroom,
				classroom + nonClassroom,
			})

			row++
			num++
		}
	}

	return w.err
}

func writeAssignmentsSheet(
	f *excelize.File,
	instance *tl.ProblemInstance,
	result *tl.OptimizationResult,
) error {
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	w := &sheetWriter{file: f, sheet: sheetAssignments}

	w.setRow(1, assignmentHeaders)
	w.style("A1", "H1", headerStyle)
	w.colWidth("A", "A", 30)
	w.colWidth("D", "D", 25)

	row := 2

	for _, assignment := range result.Assignments {
		faculty, err := instance.FacultyByID(assignment.FacultyID)
		if err != nil {
			continue
		}
		activity, err := instance.ActivityByID(assignment.ActivityID)
		if err != nil {
			continue
		}

		w.setRow(row, []interface{}{
			faculty.Name,
			faculty.Rank.Title(),
			activity.CourseID,
			activity.CourseName,
			activity.Kind.Title(),
			activity.Section,
			activity.Hours,
			activity.StudentCount,
		})

		row++
	}

	return w.err
}

func writeStatisticsSheet(f *excelize.File, result *tl.OptimizationResult, loads []*facultyLoad) error {
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	w := &sheetWriter{file: f, sheet: sheetStatistics}

	w.setRow(1, statisticsHeaders)
	w.style("A1", "K1", headerStyle)
	w.colWidth("A", "A", 30)

	var targetSum, maxSum, actualSum, deviationSum, lectureSum, practicalSum, labSum float64
	assignmentsSum := 0

	row := 2

	for _, load := range loads {
		actual := result.FacultyLoads[load.faculty.ID]
		deviation := actual - load.faculty.TargetLoad

		fillRate := 0.0
		if load.faculty.TargetLoad > 0 {
			fillRate = math.Round(actual/load.faculty.TargetLoad*100*10) / 10
		}

		w.setRow(row, []interface{}{
			load.faculty.Name,
			load.faculty.Rank.Title(),
			load.faculty.TargetLoad,
			load.faculty.MaxLoad,
			actual,
			deviation,
			fillRate,
			len(load.assignments),
			load.hours[tl.KindLecture],
			load.hours[tl.KindPractical],
			load.hours[tl.KindLab],
		})

		targetSum += load.faculty.TargetLoad
		maxSum += load.faculty.MaxLoad
		actualSum += actual
		deviationSum += deviation
		assignmentsSum += len(load.assignments)
		lectureSum += load.hours[tl.KindLecture]
		practicalSum += load.hours[tl.KindPractical]
		labSum += load.hours[tl.KindLab]

		row++
	}

	if len(loads) > 0 {
		w.setRow(row, []interface{}{
			"БАРЛЫҒЫ",
			"",
			targetSum,
			maxSum,
			actualSum,
			deviationSum,
			"",
			assignmentsSum,
			lectureSum,
			practicalSum,
			labSum,
		})
	}

	return w.err
}
