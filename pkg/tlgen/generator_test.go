package tlgen

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/function61/gokit/testing/assert"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tl"
)

func TestDeterminism(t *testing.T) {
	first, err := New(42).Instance("small", "")
	assert.Ok(t, err)

	second, err := New(42).Instance("small", "")
	assert.Ok(t, err)

	assert.EqualString(t, first.Name, second.Name)
	assert.Assert(t, len(first.Faculty) == len(second.Faculty))
	assert.Assert(t, first.TotalDemand() == second.TotalDemand())

	for idx := range first.Faculty {
		assert.EqualString(t, first.Faculty[idx].Name, second.Faculty[idx].Name)
		assert.Assert(t, first.Faculty[idx].TargetLoad == second.Faculty[idx].TargetLoad)
	}
}

func TestInstanceSizes(t *testing.T) {
	for _, tc := range []struct {
		size         string
		facultyCount int
	}{
		{"small", 15},
		{"medium", 35},
		{"large", 70},
	} {
		tc := tc // pin

		t.Run(tc.size, func(t *testing.T) {
			instance, err := New(42).Instance(tc.size, "")
			assert.Ok(t, err)
			assert.Assert(t, len(instance.Faculty) == tc.facultyCount)
			assert.EqualString(t, instance.Metadata.Size, tc.size)
		})
	}
}

func TestUnknownSize(t *testing.T) {
	_, err := New(42).Instance("gigantic", "")
	assert.EqualString(t, err.Error(), "invalid size: gigantic (must be small, medium or large)")
}

func TestFacultyConstraints(t *testing.T) {
	instance, err := New(1).Instance("medium", "")
	assert.Ok(t, err)

	deans := 0
	admins := 0
	for _, f := range instance.Faculty {
		assert.Assert(t, f.MaxLoad <= 680)
		assert.Assert(t, f.TargetLoad > 0)

		switch f.Rank {
		case tl.RankDean:
			deans++
			assert.Assert(t, f.MaxLoad <= 340)
		case tl.RankAdmin:
			admins++
			assert.Assert(t, f.MaxLoad == 300)
			assert.Assert(t, f.TargetLoad >= 100 && f.TargetLoad <= 250)
		default:
			// max load is target plus a 10-15 % buffer, unless capped
			if f.MaxLoad < 680 {
				assert.Assert(t, f.MaxLoad >= f.TargetLoad)
			}
		}
	}

	// 35 faculty is enough for both special roles to appear
	assert.Assert(t, deans == 1)
	assert.Assert(t, admins == 1)
}

func TestSupervisionActivities(t *testing.T) {
	activities := New(5).SupervisionActivities(3, 2, 1)

	assert.Assert(t, len(activities) == 6)

	assert.EqualString(t, activities[0].ID, "THESIS_B1")
	assert.Assert(t, activities[0].Hours == 20)
	assert.Assert(t, activities[0].Kind == tl.KindBachelorThesis)
	assert.Assert(t, activities[0].RequiredRank == tl.RankSeniorLecturer)

	assert.EqualString(t, activities[3].ID, "THESIS_M1")
	assert.Assert(t, activities[3].Hours == 40)
	assert.Assert(t, activities[3].RequiredRank == tl.RankAssistantProfessor)

	assert.EqualString(t, activities[5].ID, "NIRM_1")
	assert.Assert(t, activities[5].Hours == 25)
	assert.Assert(t, activities[5].StudentCount >= 2 && activities[5].StudentCount <= 5)
}

func TestEveryActivityHasQualifiedFaculty(t *testing.T) {
	instance, err := New(7).Instance("small", "")
	assert.Ok(t, err)

	index := instance.QualificationIndex()

	for _, activity := range instance.Activities {
		qualified := false
		for _, f := range instance.Faculty {
			if index.Qualified(f.ID, activity.ID) {
				qualified = true
				break
			}
		}

		assert.Assert(t, qualified)
	}
}

func TestQualificationRespectsRank(t *testing.T) {
	instance, err := New(3).Instance("medium", "")
	assert.Ok(t, err)

	index := instance.QualificationIndex()

	for _, activity := range instance.Activities {
		for _, f := range instance.Faculty {
			if index.Qualified(f.ID, activity.ID) && activity.RequiredRank != "" {
				assert.Assert(t, f.Rank.AtLeast(activity.RequiredRank))
			}
		}
	}
}

func TestPreferencesInRange(t *testing.T) {
	instance, err := New(9).Instance("small", "")
	assert.Ok(t, err)

	for _, f := range instance.Faculty {
		for _, score := range f.Preferences {
			assert.Assert(t, score >= 5 && score <= 10)
		}
	}
}

func TestExportCSV(t *testing.T) {
	dir, err := ioutil.TempDir("", "tlgen")
	assert.Ok(t, err)
	defer os.RemoveAll(dir)

	instance, err := New(42).Instance("small", "")
	assert.Ok(t, err)

	assert.Ok(t, ExportCSV(instance, dir))

	facultyCsv, err := ioutil.ReadFile(filepath.Join(dir, "faculty.csv"))
	assert.Ok(t, err)

	lines := strings.Split(strings.TrimSpace(string(facultyCsv)), "\n")
	assert.EqualString(t, lines[0], "id,name,rank,target_load,max_load,weight")
	assert.Assert(t, len(lines) == 1+len(instance.Faculty))

	for _, name := range []string{"activities.csv", "qualifications.csv"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.Ok(t, err)
	}
}
