// Optimization engines for distributing teaching load over a department's
// faculty. All engines share the same problem shape and result contract, so
// they are interchangeable and comparable.
package tlsolver

import (
	"context"
	"fmt"
	"time"

	"github.com/galymzhantore/dissertation-teaching-load/pkg/tl"
)

const DefaultTimeLimit = 5 * time.Minute

type Options struct {
	TimeLimit time.Duration // zero = DefaultTimeLimit
	Seed      int64         // metaheuristics are deterministic for a fixed seed
}

func (o Options) timeLimit() time.Duration {
	if o.TimeLimit == 0 {
		return DefaultTimeLimit
	}
	return o.TimeLimit
}

type Solver interface {
	Name() string
	// ctx cancellation and the time limit both cut the search short;
	// the result then carries the best solution found so far.
	Solve(ctx context.Context, instance *tl.ProblemInstance) (*tl.OptimizationResult, error)
}

// registry keys, cheapest engine first
func Keys() []string {
	return []string{"greedy", "bnb", "genetic", "anneal"}
}

func New(key string, opt Options) (Solver, error) {
	switch key {
	case "greedy":
		return NewGreedy(opt), nil
	case "bnb":
		return NewBranchAndBound(opt), nil
	case "genetic":
		return NewGenetic(opt), nil
	case "anneal":
		return NewAnneal(opt), nil
	default:
		return nil, fmt.Errorf("unknown solver: %s (known: greedy, bnb, genetic, anneal)", key)
	}
}

// problem is the solver-internal view of an instance: index-based instead of
// id-based, with qualified faculty precomputed per activity.
type problem struct {
	instance   *tl.ProblemInstance
	faculty    []tl.Faculty
	activities []tl.CourseActivity
	options    [][]int // per activity index: qualified faculty indexes
}

// newProblem returns a non-nil result instead of a problem when some activity
// has nobody qualified to take it. Every engine short-circuits the same way.
func newProblem(instance *tl.ProblemInstance, solverName string, started time.Time) (*problem, *tl.OptimizationResult) {
	index := instance.QualificationIndex()

	options := make([][]int, len(instance.Activities))
	for activityIdx, activity := range instance.Activities {
		qualified := []int{}
		for facultyIdx, f := range instance.Faculty {
			if index.Qualified(f.ID, activity.ID) {
				qualified = append(qualified, facultyIdx)
			}
		}

		if len(qualified) == 0 {
			return nil, &tl.OptimizationResult{
				Assignments:     []tl.Assignment{},
				ComputationTime: time.Since(started),
				SolverName:      solverName,
				Status:          tl.StatusInfeasible,
				FacultyLoads:    map[int]float64{},
				Unassigned:      []string{activity.ID},
				Feasible:        false,
			}
		}

		options[activityIdx] = qualified
	}

	return &problem{
		instance:   instance,
		faculty:    instance.Faculty,
		activities: instance.Activities,
		options:    options,
	}, nil
}

func (p *problem) preference(facultyIdx int, activityIdx int) int {
	return p.faculty[facultyIdx].Preference(p.activities[activityIdx].ID)
}

// chromosomeResult converts "faculty index per activity index" into the
// public result shape. Used by every engine that assigns all activities.
func (p *problem) chromosomeResult(
	chromosome []int,
	objectiveValue float64,
	solverName string,
	status tl.SolverStatus,
	computationTime time.Duration,
) *tl.OptimizationResult {
	assignments := []tl.Assignment{}
	facultyLoads := map[int]float64{}
	for _, f := range p.faculty {
		facultyLoads[f.ID] = 0
	}

	for activityIdx, facultyIdx := range chromosome {
		activity := p.activities[activityIdx]
		f := p.faculty[facultyIdx]

		assignments = append(assignments, tl.Assignment{
			FacultyID:       f.ID,
			ActivityID:      activity.ID,
			PreferenceScore: float64(f.Preference(activity.ID)),
		})

		facultyLoads[f.ID] += activity.Hours
	}

	totalDeviation := 0.0
	feasible := true
	for _, f := range p.faculty {
		deviation := facultyLoads[f.ID] - f.TargetLoad
		if deviation < 0 {
			deviation = -deviation
		}
		totalDeviation += deviation

		if facultyLoads[f.ID] > f.MaxLoad {
			feasible = false
		}
	}

	return &tl.OptimizationResult{
		Assignments:     assignments,
		ObjectiveValue:  objectiveValue,
		TotalDeviation:  totalDeviation,
		ComputationTime: computationTime,
		SolverName:      solverName,
		Status:          status,
		FacultyLoads:    facultyLoads,
		Feasible:        feasible,
	}
}

// deadline combines ctx cancellation with the solver time limit
type deadline struct {
	ctx     context.Context
	started time.Time
	limit   time.Duration
}

func newDeadline(ctx context.Context, limit time.Duration) *deadline {
	return &deadline{ctx, time.Now(), limit}
}

func (d *deadline) exceeded() bool {
	return d.ctx.Err() != nil || time.Since(d.started) > d.limit
}

func (d *deadline) elapsed() time.Duration {
	return time.Since(d.started)
}
