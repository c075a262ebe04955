package tlsolver

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"github.com/galymzhantore/dissertation-teaching-load/pkg/tl"
)

const (
	gaPopulationSize = 100
	gaGenerations    = 500
	gaMutationRate   = 0.1
	gaCrossoverRate  = 0.8
	gaEliteSize      = 5
	gaTournamentSize = 3
)

// Genetic algorithm over "qualified faculty index per activity" chromosomes.
// Max load is a soft constraint here; the overload penalty in the energy
// keeps evolution away from infeasible regions without making them illegal.
type geneticSolver struct {
	opt Options
}

func NewGenetic(opt Options) Solver {
	return &geneticSolver{opt}
}

func (s *geneticSolver) Name() string {
	return "Genetic Algorithm"
}

func (s *geneticSolver) Solve(ctx context.Context, instance *tl.ProblemInstance) (*tl.OptimizationResult, error) {
	started := time.Now()

	pr, infeasible := newProblem(instance, s.Name(), started)
	if infeasible != nil {
		return infeasible, nil
	}

	rnd := rand.New(rand.NewSource(s.opt.Seed))
	dl := newDeadline(ctx, s.opt.timeLimit())

	randomChromosome := func() []int {
		chromosome := make([]int, len(pr.activities))
		for activityIdx := range chromosome {
			options := pr.options[activityIdx]
			chromosome[activityIdx] = options[rnd.Intn(len(options))]
		}
		return chromosome
	}

	population := make([][]int, gaPopulationSize)
	for i := range population {
		population[i] = randomChromosome()
	}

	best := population[0]
	bestFitness := pr.energy(best)

	fitness := make([]float64, gaPopulationSize)

	tournament := func() []int {
		selected := rnd.Intn(gaPopulationSize)
		for i := 0; i < gaTournamentSize-1; i++ {
			challenger := rnd.Intn(gaPopulationSize)
			if fitness[challenger] < fitness[selected] {
				selected = challenger
			}
		}
		return population[selected]
	}

	for generation := 0; generation < gaGenerations; generation++ {
		if dl.exceeded() {
			break
		}

		for i, individual := range population {
			fitness[i] = pr.energy(individual)

			if fitness[i] < bestFitness {
				bestFitness = fitness[i]
				best = individual
			}
		}

		ranked := make([]int, gaPopulationSize)
		for i := range ranked {
			ranked[i] = i
		}
		sort.SliceStable(ranked, func(a, b int) bool {
			return fitness[ranked[a]] < fitness[ranked[b]]
		})

		newPopulation := make([][]int, 0, gaPopulationSize)
		for i := 0; i < gaEliteSize; i++ {
			newPopulation = append(newPopulation, population[ranked[i]])
		}

		for len(newPopulation) < gaPopulationSize {
			parent1 := tournament()
			parent2 := tournament()

			var child []int
			if rnd.Float64() < gaCrossoverRate {
				// uniform crossover
				child = make([]int, len(parent1))
				for gene := range child {
					if rnd.Float64() < 0.5 {
						child[gene] = parent1[gene]
					} else {
						child[gene] = parent2[gene]
					}
				}
			} else {
				child = append([]int(nil), parent1...)
			}

			if rnd.Float64() < gaMutationRate {
				gene := rnd.Intn(len(child))
				options := pr.options[gene]
				child[gene] = options[rnd.Intn(len(options))]
			}

			newPopulation = append(newPopulation, child)
		}

		population = newPopulation
	}

	return pr.chromosomeResult(
		best,
		bestFitness,
		s.Name(),
		tl.StatusCompleted,
		time.Since(started)), nil
}
