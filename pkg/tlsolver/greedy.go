package tlsolver

import (
	"context"
	"sort"
	"time"

	"github.com/galymzhantore/dissertation-teaching-load/pkg/tl"
)

// Deterministic construction baseline: largest activities first, each to the
// qualified person whose energy increases the least. No search, so it is
// instant even on large instances, and its solution seeds the exact solver.
type greedySolver struct {
	opt Options
}

func NewGreedy(opt Options) Solver {
	return &greedySolver{opt}
}

func (s *greedySolver) Name() string {
	return "Greedy"
}

func (s *greedySolver) Solve(ctx context.Context, instance *tl.ProblemInstance) (*tl.OptimizationResult, error) {
	started := time.Now()

	pr, infeasible := newProblem(instance, s.Name(), started)
	if infeasible != nil {
		return infeasible, nil
	}

	chromosome := pr.greedyChromosome(false)

	return pr.chromosomeResult(
		chromosome,
		pr.energy(chromosome),
		s.Name(),
		tl.StatusCompleted,
		time.Since(started)), nil
}

// greedyChromosome assigns activities in descending-hours order, each to the
// candidate with the lowest marginal cost. With hardMaxLoad, candidates that
// would breach their max load are skipped and nil is returned if an activity
// fits nobody.
func (p *problem) greedyChromosome(hardMaxLoad bool) []int {
	order := make([]int, len(p.activities))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return p.activities[order[a]].Hours > p.activities[order[b]].Hours
	})

	chromosome := make([]int, len(p.activities))
	loads := make([]float64, len(p.faculty))

	for _, activityIdx := range order {
		hours := p.activities[activityIdx].Hours

		bestFaculty := -1
		bestCost := 0.0

		for _, facultyIdx := range p.options[activityIdx] {
			f := &p.faculty[facultyIdx]
			load := loads[facultyIdx]

			if hardMaxLoad && load+hours > f.MaxLoad {
				continue
			}

			cost := f.Weight() * (abs(load+hours-f.TargetLoad) - abs(load-f.TargetLoad))
			if overload := load + hours - f.MaxLoad; overload > 0 {
				cost += overload * overloadPenalty
			}
			cost -= float64(f.Preference(p.activities[activityIdx].ID)) * preferenceImpact

			better := false
			switch {
			case bestFaculty == -1:
				better = true
			case cost < bestCost:
				better = true
			case cost == bestCost:
				// ties: less loaded person first, then stable by index
				better = load < loads[bestFaculty] ||
					(load == loads[bestFaculty] && facultyIdx < bestFaculty)
			}

			if better {
				bestFaculty = facultyIdx
				bestCost = cost
			}
		}

		if bestFaculty == -1 {
			return nil
		}

		chromosome[activityIdx] = bestFaculty
		loads[bestFaculty] += hours
	}

	return chromosome
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
