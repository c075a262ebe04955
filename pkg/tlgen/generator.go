// Seeded synthetic problem instances for solver development and experiments.
// Numbers follow the department's actual load norms, so generated instances
// stress the solvers the same way real semesters do.
package tlgen

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/galymzhantore/dissertation-teaching-load/pkg/tl"
)

const maxAnnualLoad = 680 // regulation: annual hours must not exceed this

var firstNames = []string{
	"Айгуль", "Асель", "Жанар", "Дина", "Сауле",
	"Ерлан", "Арман", "Нурлан", "Бауыржан", "Марат",
	"Алия", "Камила", "Назым", "Асия", "Жания",
}

var lastNames = []string{
	"Абдуллаев", "Смагулов", "Оспанова", "Жумабаев", "Сейтова",
	"Нурмуханов", "Алимбетов", "Касымова", "Ерланов", "Жаксылыков",
}

var departments = []string{"CS", "MATH", "PHYS", "ENG", "BUS"}

var courseNames = map[string][]string{
	"CS":   {"Бағдарламалау I", "Деректер құрылымы", "Алгоритмдер", "Дерекқор жүйелері", "Веб-әзірлеу"},
	"MATH": {"Математикалық талдау", "Сызықтық алгебра", "Дискретті математика", "Статистика", "Ықтималдықтар теориясы"},
	"PHYS": {"Физика I", "Физика II", "Термодинамика", "Кванттық механика", "Оптика"},
	"ENG":  {"Академиялық жазу", "Техникалық ағылшын тілі", "Әдебиет", "Коммуникация", "Презентация дағдылары"},
	"BUS":  {"Микроэкономика", "Маркетинг", "Бухгалтерлік есеп", "Менеджмент", "Қаржы"},
}

var rankDistribution = []struct {
	rank tl.Rank
	prob float64
}{
	{tl.RankProfessor, 0.05},
	{tl.RankAssociateProfessor, 0.10},
	{tl.RankAssistantProfessor, 0.15},
	{tl.RankSeniorLecturer, 0.20},
	{tl.RankSeniorTeacher, 0.20},
	{tl.RankTeacher, 0.20},
	{tl.RankAdvisor, 0.05},
	{tl.RankTeacherEnglish, 0.05},
}

// base annual load per rank, before per-person variation
var baseLoads = map[tl.Rank]float64{
	tl.RankProfessor:          500,
	tl.RankAssociateProfessor: 550,
	tl.RankAssistantProfessor: 550,
	tl.RankSeniorLecturer:     600,
	tl.RankSeniorTeacher:      600,
	tl.RankTeacher:            650,
	tl.RankAdvisor:            250,
	tl.RankTeacherEnglish:     400,
	tl.RankDean:               300,
	tl.RankAdmin:              300,
}

type sizeConfig struct {
	facultyCount     int
	courseCount      int
	lecturesPer      int
	practicalsPer    int
	bachelorStudents int
	masterStudents   int
	nirmProjects     int
}

var sizeConfigs = map[string]sizeConfig{
	"small":  {15, 10, 2, 2, 20, 8, 5},
	"medium": {35, 25, 2, 3, 50, 20, 12},
	"large":  {70, 50, 3, 4, 100, 40, 25},
}

// named instance sizes, smallest first
func Sizes() []string {
	return []string{"small", "medium", "large"}
}

type Generator struct {
	seed int64
	rand *rand.Rand
}

// same seed always yields the same instance
func New(seed int64) *Generator {
	return &Generator{
		seed: seed,
		rand: rand.New(rand.NewSource(seed)),
	}
}

func (g *Generator) facultyName() string {
	first := firstNames[g.rand.Intn(len(firstNames))]
	last := lastNames[g.rand.Intn(len(lastNames))]
	return first + " " + last
}

func (g *Generator) uniform(min float64, max float64) float64 {
	return min + g.rand.Float64()*(max-min)
}

// inclusive on both ends, like the norms tables are written
func (g *Generator) intBetween(min int, max int) int {
	return min + g.rand.Intn(max-min+1)
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func (g *Generator) Faculty(count int) []tl.Faculty {
	facultyList := []tl.Faculty{}

	specialRoles := []tl.Rank{}
	if count > 10 {
		specialRoles = append(specialRoles, tl.RankDean)
	}
	if count > 15 {
		specialRoles = append(specialRoles, tl.RankAdmin)
	}

	for i := 0; i < count; i++ {
		var selectedRank tl.Rank
		if i < len(specialRoles) {
			selectedRank = specialRoles[i]
		} else {
			r := g.rand.Float64()
			cumulative := 0.0
			selectedRank = tl.RankTeacher
			for _, candidate := range rankDistribution {
				cumulative += candidate.prob
				if r <= cumulative {
					selectedRank = candidate.rank
					break
				}
			}
		}

		var targetLoad, maxLoad float64
		switch selectedRank {
		case tl.RankAdmin:
			targetLoad = g.uniform(100, 250)
			maxLoad = 300
		case tl.RankDean:
			// deans may take up to half a position
			targetLoad = g.uniform(200, 340)
			maxLoad = math.Min(340, maxAnnualLoad/2)
		default:
			targetLoad = baseLoads[selectedRank] + g.uniform(0, 30)
			maxLoad = math.Min(targetLoad*g.uniform(1.10, 1.15), maxAnnualLoad)
		}

		facultyList = append(facultyList, tl.Faculty{
			ID:          i + 1,
			Name:        g.facultyName(),
			Rank:        selectedRank,
			TargetLoad:  round1(targetLoad),
			MaxLoad:     round1(maxLoad),
			Preferences: map[string]int{},
		})
	}

	return facultyList
}

func (g *Generator) Courses(count int, lecturesPer int, practicalsPer int) []tl.CourseActivity {
	activities := []tl.CourseActivity{}

	for courseNum := 1; courseNum <= count; courseNum++ {
		dept := departments[g.rand.Intn(len(departments))]
		courseID := fmt.Sprintf("%s%d", dept, 100+courseNum)
		names := courseNames[dept]
		courseName := names[g.rand.Intn(len(names))]

		for section := 1; section <= lecturesPer; section++ {
			hours := []float64{30, 45, 60}[g.rand.Intn(3)]

			activities = append(activities, tl.CourseActivity{
				ID:           fmt.Sprintf("%s_L%d", courseID, section),
				CourseID:     courseID,
				CourseName:   courseName,
				Kind:         tl.KindLecture,
				Section:      section,
				Hours:        hours,
				StudentCount: g.intBetween(80, 200),
				RequiredRank: tl.RankSeniorLecturer,
			})
		}

		for section := 1; section <= practicalsPer; section++ {
			hours := []float64{15, 30, 45}[g.rand.Intn(3)]

			activities = append(activities, tl.CourseActivity{
				ID:           fmt.Sprintf("%s_P%d", courseID, section),
				CourseID:     courseID,
				CourseName:   courseName,
				Kind:         tl.KindPractical,
				Section:      section,
				Hours:        hours,
				StudentCount: g.intBetween(20, 40),
				RequiredRank: tl.RankTeacher,
			})
		}
	}

	return activities
}

// thesis and research supervision per the norms: bachelor 20 h/student,
// master 40 h/student, NIRM/EIR 25 h/project
func (g *Generator) SupervisionActivities(bachelorStudents int, masterStudents int, nirmProjects int) []tl.CourseActivity {
	activities := []tl.CourseActivity{}

	for i := 1; i <= bachelorStudents; i++ {
		activities = append(activities, tl.CourseActivity{
			ID:           fmt.Sprintf("THESIS_B%d", i),
			CourseID:     "THESIS_BACHELOR",
			CourseName:   fmt.Sprintf("Бакалавр дипломдық жұмыс #%d", i),
			Kind:         tl.KindBachelorThesis,
			Section:      i,
			Hours:        20,
			StudentCount: 1,
			RequiredRank: tl.RankSeniorLecturer,
		})
	}

	for i := 1; i <= masterStudents; i++ {
		activities = append(activities, tl.CourseActivity{
			ID:           fmt.Sprintf("THESIS_M%d", i),
			CourseID:     "THESIS_MASTER",
			CourseName:   fmt.Sprintf("Магистр диссертация #%d", i),
			Kind:         tl.KindMasterThesis,
			Section:      i,
			Hours:        40,
			StudentCount: 1,
			RequiredRank: tl.RankAssistantProfessor,
		})
	}

	for i := 1; i <= nirmProjects; i++ {
		activities = append(activities, tl.CourseActivity{
			ID:           fmt.Sprintf("NIRM_%d", i),
			CourseID:     "NIRM_EIR",
			CourseName:   fmt.Sprintf("НИРМ/ЭИР жобасы #%d", i),
			Kind:         tl.KindResearchNIRM,
			Section:      i,
			Hours:        25,
			StudentCount: g.intBetween(2, 5),
			RequiredRank: tl.RankAssistantProfessor,
		})
	}

	return activities
}

// Qualifications fills in each faculty member's qualified courses and
// preference scores, and returns qualified activity ids per faculty id.
// Every activity ends up with at least one qualified person: an activity
// nobody can teach would make every instance trivially infeasible.
func (g *Generator) Qualifications(faculty []tl.Faculty, activities []tl.CourseActivity) map[int][]string {
	const qualificationRate = 0.4

	courses := []string{}
	seenCourses := map[string]bool{}
	for _, activity := range activities {
		if !seenCourses[activity.CourseID] {
			seenCourses[activity.CourseID] = true
			courses = append(courses, activity.CourseID)
		}
	}

	matrix := map[int][]string{}
	qualified := func(facultyID int, activityID string, preferences map[string]int) {
		matrix[facultyID] = append(matrix[facultyID], activityID)
		preferences[activityID] = g.intBetween(5, 10)
	}

	for idx := range faculty {
		f := &faculty[idx]

		numQualifiedCourses := int(float64(len(courses)) * qualificationRate)
		if numQualifiedCourses < 2 {
			numQualifiedCourses = 2
		}
		if numQualifiedCourses > len(courses) {
			numQualifiedCourses = len(courses)
		}

		sampled := map[string]bool{}
		for _, pick := range g.rand.Perm(len(courses))[:numQualifiedCourses] {
			sampled[courses[pick]] = true
			f.QualifiedCourses = append(f.QualifiedCourses, courses[pick])
		}

		for _, activity := range activities {
			if !sampled[activity.CourseID] {
				continue
			}

			if activity.RequiredRank == "" || f.Rank.AtLeast(activity.RequiredRank) {
				qualified(f.ID, activity.ID, f.Preferences)
			}
		}
	}

	// coverage repair: force-qualify someone for orphaned activities
	covered := map[string]bool{}
	for _, activityIDs := range matrix {
		for _, activityID := range activityIDs {
			covered[activityID] = true
		}
	}

	for _, activity := range activities {
		if covered[activity.ID] {
			continue
		}

		eligible := []*tl.Faculty{}
		for idx := range faculty {
			if activity.RequiredRank == "" || faculty[idx].Rank.AtLeast(activity.RequiredRank) {
				eligible = append(eligible, &faculty[idx])
			}
		}
		if len(eligible) == 0 {
			for idx := range faculty {
				eligible = append(eligible, &faculty[idx])
			}
		}

		chosen := eligible[g.rand.Intn(len(eligible))]

		hasCourse := false
		for _, courseID := range chosen.QualifiedCourses {
			if courseID == activity.CourseID {
				hasCourse = true
				break
			}
		}
		if !hasCourse {
			chosen.QualifiedCourses = append(chosen.QualifiedCourses, activity.CourseID)
		}

		qualified(chosen.ID, activity.ID, chosen.Preferences)
	}

	return matrix
}

func (g *Generator) Instance(size string, name string) (*tl.ProblemInstance, error) {
	config, exists := sizeConfigs[size]
	if !exists {
		return nil, fmt.Errorf("invalid size: %s (must be small, medium or large)", size)
	}

	faculty := g.Faculty(config.facultyCount)

	activities := g.Courses(config.courseCount, config.lecturesPer, config.practicalsPer)
	activities = append(activities, g.SupervisionActivities(
		config.bachelorStudents,
		config.masterStudents,
		config.nirmProjects)...)

	qualifications := g.Qualifications(faculty, activities)

	instance := &tl.ProblemInstance{
		Name:           name,
		Faculty:        faculty,
		Activities:     activities,
		Qualifications: qualifications,
	}

	if instance.Name == "" {
		instance.Name = fmt.Sprintf("%s Instance (%d faculty, %d activities)",
			strings.Title(size), len(faculty), len(activities))
	}

	instance.Metadata = tl.InstanceMetadata{
		Size:             size,
		Seed:             g.seed,
		TotalDemand:      instance.TotalDemand(),
		TotalCapacity:    instance.TotalCapacity(),
		BachelorStudents: config.bachelorStudents,
		MasterStudents:   config.masterStudents,
		NirmProjects:     config.nirmProjects,
	}

	return instance, nil
}
