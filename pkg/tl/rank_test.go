package tl

import (
	"testing"

	"github.com/function61/gokit/testing/assert"
)

func TestRankWeight(t *testing.T) {
	assert.Assert(t, RankProfessor.Weight() == 1.5)
	assert.Assert(t, RankTeacher.Weight() == 1.0)
	assert.Assert(t, RankAdvisor.Weight() == 0.8)
	assert.Assert(t, Rank("intern").Weight() == 1.0)
}

func TestRankTitle(t *testing.T) {
	assert.EqualString(t, RankProfessor.Title(), "Профессор")
	assert.EqualString(t, RankDean.Title(), "Декан/Декан орынбасары")
}

func TestRankAtLeast(t *testing.T) {
	assert.Assert(t, RankProfessor.AtLeast(RankSeniorLecturer))
	assert.Assert(t, RankSeniorLecturer.AtLeast(RankSeniorLecturer))
	assert.Assert(t, !RankTeacher.AtLeast(RankSeniorLecturer))

	// dean outranks everyone for qualification purposes
	assert.Assert(t, RankDean.AtLeast(RankProfessor))

	// unknown rank does not restrict
	assert.Assert(t, Rank("intern").AtLeast(RankProfessor))
}

func TestDeserializeRank(t *testing.T) {
	rank, err := DeserializeRank("senior_teacher")
	assert.Ok(t, err)
	assert.Assert(t, rank == RankSeniorTeacher)

	_, err = DeserializeRank("janitor")
	assert.EqualString(t, err.Error(), "unknown rank: janitor")
}

func TestActivityKind(t *testing.T) {
	assert.EqualString(t, KindLecture.Title(), "Дәріс")
	assert.Assert(t, !KindLecture.IsSupervision())
	assert.Assert(t, KindBachelorThesis.IsSupervision())
	assert.Assert(t, KindMasterThesis.IsSupervision())
	assert.Assert(t, KindResearchNIRM.IsSupervision())
}

func TestActivityString(t *testing.T) {
	activity := &CourseActivity{
		CourseName: "Алгоритмдер",
		Kind:       KindLecture,
		Section:    2,
	}

	assert.EqualString(t, activity.String(), "Алгоритмдер (Дәріс #2)")
}
