package tlsolver

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/galymzhantore/dissertation-teaching-load/pkg/tl"
)

const (
	saInitialTemp  = 1000.0
	saCoolingRate  = 0.95
	saMinTemp      = 0.1
	saStepsPerTemp = 100
)

// Simulated annealing over the same chromosome encoding and energy as the
// genetic engine. One random reassignment per step; worse moves are accepted
// with probability exp(-delta/temperature).
type annealSolver struct {
	opt Options
}

func NewAnneal(opt Options) Solver {
	return &annealSolver{opt}
}

func (s *annealSolver) Name() string {
	return "Simulated Annealing"
}

func (s *annealSolver) Solve(ctx context.Context, instance *tl.ProblemInstance) (*tl.OptimizationResult, error) {
	started := time.Now()

	pr, infeasible := newProblem(instance, s.Name(), started)
	if infeasible != nil {
		return infeasible, nil
	}

	rnd := rand.New(rand.NewSource(s.opt.Seed))
	dl := newDeadline(ctx, s.opt.timeLimit())

	current := make([]int, len(pr.activities))
	for activityIdx := range current {
		options := pr.options[activityIdx]
		current[activityIdx] = options[rnd.Intn(len(options))]
	}
	currentEnergy := pr.energy(current)

	best := append([]int(nil), current...)
	bestEnergy := currentEnergy

	for temp := saInitialTemp; temp > saMinTemp; temp *= saCoolingRate {
		if dl.exceeded() {
			break
		}

		for step := 0; step < saStepsPerTemp; step++ {
			neighbor := append([]int(nil), current...)

			gene := rnd.Intn(len(neighbor))
			options := pr.options[gene]
			neighbor[gene] = options[rnd.Intn(len(options))]

			neighborEnergy := pr.energy(neighbor)
			deltaEnergy := neighborEnergy - currentEnergy

			if deltaEnergy < 0 {
				current = neighbor
				currentEnergy = neighborEnergy

				if currentEnergy < bestEnergy {
					best = append([]int(nil), current...)
					bestEnergy = currentEnergy
				}
			} else if rnd.Float64() < math.Exp(-deltaEnergy/temp) {
				current = neighbor
				currentEnergy = neighborEnergy
			}
		}
	}

	return pr.chromosomeResult(
		best,
		bestEnergy,
		s.Name(),
		tl.StatusCompleted,
		time.Since(started)), nil
}
