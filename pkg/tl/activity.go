package tl

import (
	"fmt"
)

type ActivityKind string

const (
	KindLecture        ActivityKind = "lecture"
	KindPractical      ActivityKind = "practical"
	KindLab            ActivityKind = "lab"
	KindSeminar        ActivityKind = "seminar"
	KindBachelorThesis ActivityKind = "bachelor_thesis"
	KindMasterThesis   ActivityKind = "master_thesis"
	KindResearchNIRM   ActivityKind = "research_nirm"
)

var activityKindTitles = map[ActivityKind]string{
	KindLecture:        "Дәріс",
	KindPractical:      "Практикалық",
	KindLab:            "Зертханалық",
	KindSeminar:        "Семинар",
	KindBachelorThesis: "Бакалавр дипломдық жұмыс",
	KindMasterThesis:   "Магистр диссертация",
	KindResearchNIRM:   "НИРМ/ЭИР",
}

// Kazakh display name
func (a ActivityKind) Title() string {
	if title, exists := activityKindTitles[a]; exists {
		return title
	}
	return string(a)
}

// supervision hours count towards load but are not placed on the weekly grid
func (a ActivityKind) IsSupervision() bool {
	switch a {
	case KindBachelorThesis, KindMasterThesis, KindResearchNIRM:
		return true
	default:
		return false
	}
}

// one section of one course (or one supervised thesis/project)
type CourseActivity struct {
	ID           string       `json:"id"`
	CourseID     string       `json:"course_id"`
	CourseName   string       `json:"course_name"`
	Kind         ActivityKind `json:"kind"`
	Section      int          `json:"section"`
	Hours        float64      `json:"hours"`
	StudentCount int          `json:"student_count"`
	RequiredRank Rank         `json:"required_rank,omitempty"` // empty = anyone qualifies
}

func (c *CourseActivity) String() string {
	return fmt.Sprintf("%s (%s #%d)", c.CourseName, c.Kind.Title(), c.Section)
}

// one faculty member taking responsibility for one activity
type Assignment struct {
	FacultyID       int     `json:"faculty_id"`
	ActivityID      string  `json:"activity_id"`
	PreferenceScore float64 `json:"preference_score"`
}
