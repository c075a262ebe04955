package tl

import (
	"fmt"
)

type InstanceMetadata struct {
	Size             string  `json:"size,omitempty"`
	Seed             int64   `json:"seed"`
	TotalDemand      float64 `json:"total_demand"`
	TotalCapacity    float64 `json:"total_capacity"`
	BachelorStudents int     `json:"bachelor_students,omitempty"`
	MasterStudents   int     `json:"master_students,omitempty"`
	NirmProjects     int     `json:"nirm_projects,omitempty"`
}

// one department's distribution problem: who could teach what, and how much
type ProblemInstance struct {
	Name       string           `json:"name"`
	Faculty    []Faculty        `json:"faculty"`
	Activities []CourseActivity `json:"activities"`
	// qualified activity ids per faculty id
	Qualifications map[int][]string `json:"qualifications"`
	Metadata       InstanceMetadata `json:"metadata"`
}

func (p *ProblemInstance) TotalDemand() float64 {
	total := 0.0
	for _, activity := range p.Activities {
		total += activity.Hours
	}
	return total
}

func (p *ProblemInstance) TotalCapacity() float64 {
	total := 0.0
	for _, f := range p.Faculty {
		total += f.MaxLoad
	}
	return total
}

// quick necessary-condition check before running any solver
func (p *ProblemInstance) CheckCapacityFeasibility() (bool, string) {
	demand := p.TotalDemand()
	capacity := p.TotalCapacity()

	if demand > capacity {
		return false, fmt.Sprintf("Insufficient capacity: %.1f hours needed, %.1f available", demand, capacity)
	}
	return true, "Capacity feasible"
}

func (p *ProblemInstance) FacultyByID(id int) (*Faculty, error) {
	for idx := range p.Faculty {
		if p.Faculty[idx].ID == id {
			return &p.Faculty[idx], nil
		}
	}
	return nil, fmt.Errorf("faculty not found: %d", id)
}

func (p *ProblemInstance) ActivityByID(id string) (*CourseActivity, error) {
	for idx := range p.Activities {
		if p.Activities[idx].ID == id {
			return &p.Activities[idx], nil
		}
	}
	return nil, fmt.Errorf("activity not found: %s", id)
}

// QualificationIndex answers "can faculty f take activity a" in O(1).
// Build once, the solvers ask this in their innermost loops.
type QualificationIndex struct {
	qualified map[int]map[string]bool
}

func (p *ProblemInstance) QualificationIndex() *QualificationIndex {
	qualified := make(map[int]map[string]bool, len(p.Qualifications))
	for facultyID, activityIDs := range p.Qualifications {
		set := make(map[string]bool, len(activityIDs))
		for _, activityID := range activityIDs {
			set[activityID] = true
		}
		qualified[facultyID] = set
	}

	return &QualificationIndex{qualified}
}

func (q *QualificationIndex) Qualified(facultyID int, activityID string) bool {
	return q.qualified[facultyID][activityID]
}
