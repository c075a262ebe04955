// Core data model for teaching load distribution at the university department level.
package tl

import (
	"fmt"
)

type Rank string

// positions per the university regulation (2024-2025 academic year)
const (
	RankProfessor          Rank = "professor"
	RankAssociateProfessor Rank = "associate_professor"
	RankAssistantProfessor Rank = "assistant_professor"
	RankSeniorLecturer     Rank = "senior_lecturer"
	RankSeniorTeacher      Rank = "senior_teacher"
	RankTeacher            Rank = "teacher"
	RankAdvisor            Rank = "advisor"
	RankTeacherEnglish     Rank = "teacher_english"
	RankDean               Rank = "dean"
	RankAdmin              Rank = "admin"
)

// qualification ordering, least senior first. a faculty member can take an
// activity only if her rank is at least the activity's required rank.
var rankHierarchy = []Rank{
	RankAdmin,
	RankAdvisor,
	RankTeacher,
	RankTeacherEnglish,
	RankSeniorTeacher,
	RankSeniorLecturer,
	RankAssistantProfessor,
	RankAssociateProfessor,
	RankProfessor,
	RankDean,
}

var rankWeights = map[Rank]float64{
	RankProfessor:          1.5,
	RankAssociateProfessor: 1.4,
	RankAssistantProfessor: 1.3,
	RankSeniorLecturer:     1.2,
	RankSeniorTeacher:      1.1,
	RankTeacher:            1.0,
	RankAdvisor:            0.8,
	RankTeacherEnglish:     1.1,
	RankDean:               1.5,
	RankAdmin:              0.8,
}

var rankTitles = map[Rank]string{
	RankProfessor:          "Профессор",
	RankAssociateProfessor: "Доцент",
	RankAssistantProfessor: "Қауымдастырылған профессор",
	RankSeniorLecturer:     "Аға оқытушы",
	RankSeniorTeacher:      "Аға оқытушы",
	RankTeacher:            "Оқытушы",
	RankAdvisor:            "Эдвайзер",
	RankTeacherEnglish:     "Оқытушы (ағылшын тілінде)",
	RankDean:               "Декан/Декан орынбасары",
	RankAdmin:              "Әкімшілік қызметкер",
}

func Ranks() []Rank {
	ranks := make([]Rank, len(rankHierarchy))
	copy(ranks, rankHierarchy)
	return ranks
}

func DeserializeRank(serialized string) (Rank, error) {
	rank := Rank(serialized)
	if _, exists := rankWeights[rank]; !exists {
		return "", fmt.Errorf("unknown rank: %s", serialized)
	}

	return rank, nil
}

// weight in the deviation objective. senior positions weigh more, so the
// optimizer keeps their loads closer to target.
func (r Rank) Weight() float64 {
	if w, exists := rankWeights[r]; exists {
		return w
	}
	return 1.0
}

// Kazakh display name
func (r Rank) Title() string {
	if title, exists := rankTitles[r]; exists {
		return title
	}
	return string(r)
}

func (r Rank) level() int {
	for idx, candidate := range rankHierarchy {
		if candidate == r {
			return idx
		}
	}
	return -1
}

// whether r satisfies a qualification requirement of "required or above"
func (r Rank) AtLeast(required Rank) bool {
	ownLevel := r.level()
	requiredLevel := required.level()
	if ownLevel == -1 || requiredLevel == -1 {
		// unknown ranks do not restrict, same as an activity without a requirement
		return true
	}

	return ownLevel >= requiredLevel
}
