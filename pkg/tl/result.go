package tl

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

type SolverStatus string

const (
	StatusOptimal    SolverStatus = "OPTIMAL"
	StatusFeasible   SolverStatus = "FEASIBLE"
	StatusCompleted  SolverStatus = "COMPLETED" // metaheuristics: ran to completion, no optimality proof
	StatusInfeasible SolverStatus = "INFEASIBLE"
	StatusUnknown    SolverStatus = "UNKNOWN" // cut short before finding a solution or proving there is none
)

type OptimizationResult struct {
	InstanceID      string          `json:"instance_id"`
	Assignments     []Assignment    `json:"assignments"`
	ObjectiveValue  float64         `json:"objective_value"`
	TotalDeviation  float64         `json:"total_deviation"`
	ComputationTime time.Duration   `json:"computation_time"`
	SolverName      string          `json:"solver_name"`
	Status          SolverStatus    `json:"status"`
	FacultyLoads    map[int]float64 `json:"faculty_loads"`
	Unassigned      []string        `json:"unassigned_activities,omitempty"`
	Feasible        bool            `json:"is_feasible"`
	Gap             float64         `json:"gap,omitempty"` // relative, only when optimality was not proven
}

type EquityMetrics struct {
	MeanDeviation  float64 `json:"mean_deviation"`
	MaxDeviation   float64 `json:"max_deviation"`
	StdDeviation   float64 `json:"std_deviation"`
	TotalDeviation float64 `json:"total_deviation"`
}

// how evenly the load deviations are spread over the department
func (r *OptimizationResult) Equity(targetLoads map[int]float64) EquityMetrics {
	deviations := []float64{}
	for facultyID, actualLoad := range r.FacultyLoads {
		deviation := actualLoad - targetLoads[facultyID]
		if deviation < 0 {
			deviation = -deviation
		}
		deviations = append(deviations, deviation)
	}

	if len(deviations) == 0 {
		return EquityMetrics{}
	}

	max := deviations[0]
	total := 0.0
	for _, deviation := range deviations {
		if deviation > max {
			max = deviation
		}
		total += deviation
	}

	return EquityMetrics{
		MeanDeviation:  stat.Mean(deviations, nil),
		MaxDeviation:   max,
		StdDeviation:   stat.PopStdDev(deviations, nil),
		TotalDeviation: total,
	}
}
