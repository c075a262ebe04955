package tlsolver

import (
	"context"
	"sort"
	"time"

	"github.com/galymzhantore/dissertation-teaching-load/pkg/tl"
)

const exactPreferenceImpact = 0.01

// Exact solver: depth-first branch and bound over "which qualified person
// takes each activity", max load as a hard constraint. Explores the
// most-constrained activities first and prunes with an admissible lower
// bound, so small and medium departments solve to proven optimality well
// inside the time limit. Large instances degrade gracefully to FEASIBLE.
type branchAndBoundSolver struct {
	opt Options
}

func NewBranchAndBound(opt Options) Solver {
	return &branchAndBoundSolver{opt}
}

func (s *branchAndBoundSolver) Name() string {
	return "Branch and Bound"
}

func (s *branchAndBoundSolver) Solve(ctx context.Context, instance *tl.ProblemInstance) (*tl.OptimizationResult, error) {
	started := time.Now()

	pr, infeasible := newProblem(instance, s.Name(), started)
	if infeasible != nil {
		return infeasible, nil
	}

	search := newBnbSearch(pr, newDeadline(ctx, s.opt.timeLimit()))
	search.run()

	computationTime := time.Since(started)

	if search.incumbent == nil {
		status := tl.StatusInfeasible
		if search.cutShort {
			// ran out of time before either finding a solution or proving
			// there is none
			status = tl.StatusUnknown
		}

		unassigned := []string{}
		for _, activity := range pr.activities {
			unassigned = append(unassigned, activity.ID)
		}

		return &tl.OptimizationResult{
			Assignments:     []tl.Assignment{},
			ComputationTime: computationTime,
			SolverName:      s.Name(),
			Status:          status,
			FacultyLoads:    map[int]float64{},
			Unassigned:      unassigned,
			Feasible:        false,
		}, nil
	}

	status := tl.StatusOptimal
	gap := 0.0
	if search.cutShort {
		status = tl.StatusFeasible
		gap = search.relativeGap()
	}

	result := pr.chromosomeResult(
		search.incumbent,
		search.incumbentCost,
		s.Name(),
		status,
		computationTime)
	result.Gap = gap

	return result, nil
}

type bnbSearch struct {
	pr       *problem
	deadline *deadline

	order          []int     // activity indexes, most constrained first
	remainingHours []float64 // order suffix sums: hours still unassigned at depth d

	loads         []float64
	overshootW    float64 // Σ weight·(load-target)+  over all faculty
	undershootW   float64 // Σ weight·(target-load)+
	undershootRaw float64 // Σ (target-load)+, for the bound
	prefSum       int

	minWeight float64
	rootBound float64

	chromosome    []int
	incumbent     []int
	incumbentCost float64

	cutShort   bool
	nodesSince int // deadline is checked every bnbDeadlineCheckInterval nodes
}

const bnbDeadlineCheckInterval = 1024

func newBnbSearch(pr *problem, dl *deadline) *bnbSearch {
	order := make([]int, len(pr.activities))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		optionsA, optionsB := len(pr.options[order[a]]), len(pr.options[order[b]])
		if optionsA != optionsB {
			return optionsA < optionsB
		}
		return pr.activities[order[a]].Hours > pr.activities[order[b]].Hours
	})

	remainingHours := make([]float64, len(order)+1)
	for d := len(order) - 1; d >= 0; d-- {
		remainingHours[d] = remainingHours[d+1] + pr.activities[order[d]].Hours
	}

	minWeight := 0.0
	undershootW := 0.0
	undershootRaw := 0.0
	for idx, f := range pr.faculty {
		if idx == 0 || f.Weight() < minWeight {
			minWeight = f.Weight()
		}
		undershootW += f.Weight() * f.TargetLoad
		undershootRaw += f.TargetLoad
	}

	s := &bnbSearch{
		pr:             pr,
		deadline:       dl,
		order:          order,
		remainingHours: remainingHours,
		loads:          make([]float64, len(pr.faculty)),
		undershootW:    undershootW,
		undershootRaw:  undershootRaw,
		minWeight:      minWeight,
		chromosome:     make([]int, len(pr.activities)),
	}
	s.rootBound = s.lowerBound(0)

	return s
}

func (s *bnbSearch) run() {
	// a feasible construction gives the search something to prune against
	if seed := s.pr.greedyChromosome(true); seed != nil {
		s.incumbent = seed
		s.incumbentCost = s.pr.exactObjective(seed)
	}

	s.visit(0)
}

func (s *bnbSearch) visit(depth int) {
	if s.cutShort {
		return
	}

	s.nodesSince++
	if s.nodesSince >= bnbDeadlineCheckInterval {
		s.nodesSince = 0
		if s.deadline.exceeded() {
			s.cutShort = true
			return
		}
	}

	if depth == len(s.order) {
		cost := s.overshootW + s.undershootW - float64(s.prefSum)*exactPreferenceImpact
		if s.incumbent == nil || cost < s.incumbentCost {
			s.incumbent = append([]int(nil), s.chromosome...)
			s.incumbentCost = cost
		}
		return
	}

	if s.incumbent != nil && s.lowerBound(depth) >= s.incumbentCost {
		return
	}

	activityIdx := s.order[depth]
	hours := s.pr.activities[activityIdx].Hours

	for _, facultyIdx := range s.candidates(activityIdx) {
		f := &s.pr.faculty[facultyIdx]

		if s.loads[facultyIdx]+hours > f.MaxLoad {
			continue
		}

		pref := s.pr.preference(facultyIdx, activityIdx)

		s.apply(facultyIdx, f, hours, pref)
		s.chromosome[activityIdx] = facultyIdx

		s.visit(depth + 1)

		s.unapply(facultyIdx, f, hours, pref)

		if s.cutShort {
			return
		}
	}
}

// candidates orders the qualified faculty by marginal cost so the most
// promising subtree is explored first
func (s *bnbSearch) candidates(activityIdx int) []int {
	hours := s.pr.activities[activityIdx].Hours

	candidates := append([]int(nil), s.pr.options[activityIdx]...)
	marginal := func(facultyIdx int) float64 {
		f := &s.pr.faculty[facultyIdx]
		load := s.loads[facultyIdx]
		return f.Weight()*(abs(load+hours-f.TargetLoad)-abs(load-f.TargetLoad)) -
			float64(s.pr.preference(facultyIdx, activityIdx))*exactPreferenceImpact
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return marginal(candidates[a]) < marginal(candidates[b])
	})

	return candidates
}

func (s *bnbSearch) apply(facultyIdx int, f *tl.Faculty, hours float64, pref int) {
	s.shift(facultyIdx, f, hours)
	s.prefSum += pref
}

func (s *bnbSearch) unapply(facultyIdx int, f *tl.Faculty, hours float64, pref int) {
	s.shift(facultyIdx, f, -hours)
	s.prefSum -= pref
}

func (s *bnbSearch) shift(facultyIdx int, f *tl.Faculty, hours float64) {
	before := s.loads[facultyIdx]
	after := before + hours
	s.loads[facultyIdx] = after

	overBefore, underBefore := split(before, f.TargetLoad)
	overAfter, underAfter := split(after, f.TargetLoad)

	s.overshootW += f.Weight() * (overAfter - overBefore)
	s.undershootW += f.Weight() * (underAfter - underBefore)
	s.undershootRaw += underAfter - underBefore
}

func split(load float64, target float64) (overshoot float64, undershoot float64) {
	if load > target {
		return load - target, 0
	}
	return 0, target - load
}

// lowerBound is admissible: loads only grow, so current overshoot never goes
// away; the hours still unassigned can shrink total undershoot by at most
// their sum; and every unassigned activity can reward at most the top
// preference score.
func (s *bnbSearch) lowerBound(depth int) float64 {
	remaining := s.remainingHours[depth]

	residualUndershoot := s.undershootRaw - remaining
	if residualUndershoot < 0 {
		residualUndershoot = 0
	}

	optimisticPref := float64(s.prefSum) + 10*float64(len(s.order)-depth)

	return s.overshootW + s.minWeight*residualUndershoot - optimisticPref*exactPreferenceImpact
}

func (s *bnbSearch) relativeGap() float64 {
	reference := abs(s.incumbentCost)
	if reference < 1 {
		reference = 1
	}

	gap := (s.incumbentCost - s.rootBound) / reference
	if gap < 0 {
		gap = 0
	}
	return gap
}
