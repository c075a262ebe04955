package tl

import (
	"testing"

	"github.com/function61/gokit/testing/assert"
)

func testInstance() *ProblemInstance {
	return &ProblemInstance{
		Name: "test",
		Faculty: []Faculty{
			{ID: 1, Name: "Айгуль Оспанова", Rank: RankProfessor, TargetLoad: 500, MaxLoad: 560},
			{ID: 2, Name: "Марат Смагулов", Rank: RankTeacher, TargetLoad: 650, MaxLoad: 680},
		},
		Activities: []CourseActivity{
			{ID: "CS101_L1", CourseID: "CS101", CourseName: "Бағдарламалау I", Kind: KindLecture, Section: 1, Hours: 45, StudentCount: 120, RequiredRank: RankSeniorLecturer},
			{ID: "CS101_P1", CourseID: "CS101", CourseName: "Бағдарламалау I", Kind: KindPractical, Section: 1, Hours: 30, StudentCount: 25, RequiredRank: RankTeacher},
		},
		Qualifications: map[int][]string{
			1: {"CS101_L1", "CS101_P1"},
			2: {"CS101_P1"},
		},
	}
}

func TestTotals(t *testing.T) {
	instance := testInstance()

	assert.Assert(t, instance.TotalDemand() == 75)
	assert.Assert(t, instance.TotalCapacity() == 1240)
}

func TestCheckCapacityFeasibility(t *testing.T) {
	instance := testInstance()

	ok, msg := instance.CheckCapacityFeasibility()
	assert.Assert(t, ok)
	assert.EqualString(t, msg, "Capacity feasible")

	instance.Activities[0].Hours = 5000

	ok, msg = instance.CheckCapacityFeasibility()
	assert.Assert(t, !ok)
	assert.EqualString(t, msg, "Insufficient capacity: 5030.0 hours needed, 1240.0 available")
}

func TestLookups(t *testing.T) {
	instance := testInstance()

	f, err := instance.FacultyByID(2)
	assert.Ok(t, err)
	assert.EqualString(t, f.Name, "Марат Смагулов")

	_, err = instance.FacultyByID(99)
	assert.EqualString(t, err.Error(), "faculty not found: 99")

	activity, err := instance.ActivityByID("CS101_P1")
	assert.Ok(t, err)
	assert.Assert(t, activity.Kind == KindPractical)

	_, err = instance.ActivityByID("NOPE")
	assert.EqualString(t, err.Error(), "activity not found: NOPE")
}

func TestQualificationIndex(t *testing.T) {
	index := testInstance().QualificationIndex()

	assert.Assert(t, index.Qualified(1, "CS101_L1"))
	assert.Assert(t, index.Qualified(2, "CS101_P1"))
	assert.Assert(t, !index.Qualified(2, "CS101_L1"))
	assert.Assert(t, !index.Qualified(3, "CS101_L1"))
}
