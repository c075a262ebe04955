// Solver comparison experiments: every requested engine runs over a grid of
// generated instances, and the outcomes are tabulated so solution quality can
// be weighed against computation time.
package tlexperiment

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/function61/gokit/log/logex"
	"github.com/function61/gokit/sync/syncutil"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tl"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tlgen"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tlsolver"
)

//go:generate genny -in ../syncutilgen/concurrently.go -out concurrently.gen.go -pkg tlexperiment gen ItemType=*experimentRun

type Options struct {
	Sizes       []string      // default: small, medium
	Seeds       []int64       // default: 42
	Solvers     []string      // default: all registered engines
	TimeLimit   time.Duration // per solver run. default: 60s
	Concurrency int           // default: 3
}

func (o Options) sizes() []string {
	if len(o.Sizes) == 0 {
		return []string{"small", "medium"}
	}
	return o.Sizes
}

func (o Options) seeds() []int64 {
	if len(o.Seeds) == 0 {
		return []int64{42}
	}
	return o.Seeds
}

func (o Options) solvers() []string {
	if len(o.Solvers) == 0 {
		return tlsolver.Keys()
	}
	return o.Solvers
}

func (o Options) timeLimit() time.Duration {
	if o.TimeLimit == 0 {
		return 60 * time.Second
	}
	return o.TimeLimit
}

func (o Options) concurrency() int {
	if o.Concurrency == 0 {
		return 3
	}
	return o.Concurrency
}

// Row is one solver run over one generated instance.
type Row struct {
	Size           string
	Seed           int64
	Faculty        int
	Activities     int
	Solver         string
	Status         tl.SolverStatus
	Feasible       bool
	Seconds        float64
	TotalDeviation float64
	MeanDeviation  float64
	MaxDeviation   float64
	Objective      float64
}

type Comparison struct {
	rows   []Row
	rowsMu sync.Mutex
}

func newComparison(runCount int) *Comparison {
	return &Comparison{rows: make([]Row, runCount)}
}

// grid order is stable, so each run owns one slot
func (c *Comparison) set(idx int, row Row) {
	defer syncutil.LockAndUnlock(&c.rowsMu)()

	c.rows[idx] = row
}

func (c *Comparison) Rows() []Row {
	return c.rows
}

// one cell of the comparison grid. runs for the same (size, seed) share the
// generated instance, which the engines treat as read-only.
type experimentRun struct {
	rowIndex  int
	size      string
	seed      int64
	instance  *tl.ProblemInstance
	solverKey string
}

func (e *experimentRun) label() string {
	return fmt.Sprintf("%s-%d/%s", e.size, e.seed, e.solverKey)
}

func Run(ctx context.Context, opt Options, logger *log.Logger) (*Comparison, error) {
	logl := logex.Levels(logger)

	runs, err := expandGrid(opt)
	if err != nil {
		return nil, fmt.Errorf("experiment: %w", err)
	}

	logl.Info.Printf(
		"%d run(s): %d instance(s) x %d solver(s), time limit %s",
		len(runs),
		len(runs)/len(opt.solvers()),
		len(opt.solvers()),
		opt.timeLimit())

	comparison := newComparison(len(runs))

	if err := concurrentlyExperimentRunSlice(ctx, opt.concurrency(), runs, func(ctx context.Context, run *experimentRun) error {
		solver, err := tlsolver.New(run.solverKey, tlsolver.Options{
			TimeLimit: opt.timeLimit(),
			Seed:      run.seed,
		})
		if err != nil {
			return err
		}

		logl.Debug.Printf("%s: starting", run.label())

		result, err := solver.Solve(ctx, run.instance)
		if err != nil {
			return fmt.Errorf("%s: %w", run.label(), err)
		}

		targetLoads := map[int]float64{}
		for _, person := range run.instance.Faculty {
			targetLoads[person.ID] = person.TargetLoad
		}
		equity := result.Equity(targetLoads)

		comparison.set(run.rowIndex, Row{
			Size:           run.size,
			Seed:           run.seed,
			Faculty:        len(run.instance.Faculty),
			Activities:     len(run.instance.Activities),
			Solver:         result.SolverName,
			Status:         result.Status,
			Feasible:       result.Feasible,
			Seconds:        result.ComputationTime.Seconds(),
			TotalDeviation: result.TotalDeviation,
			MeanDeviation:  equity.MeanDeviation,
			MaxDeviation:   equity.MaxDeviation,
			Objective:      result.ObjectiveValue,
		})

		logl.Info.Printf(
			"%s: %s deviation=%.1f in %.2fs",
			run.label(),
			result.Status,
			result.TotalDeviation,
			result.ComputationTime.Seconds())

		return nil
	}); err != nil {
		return nil, err
	}

	return comparison, nil
}

func expandGrid(opt Options) ([]*experimentRun, error) {
	// reject typoed engine keys before burning CPU on the grid
	for _, solverKey := range opt.solvers() {
		if _, err := tlsolver.New(solverKey, tlsolver.Options{}); err != nil {
			return nil, err
		}
	}

	runs := []*experimentRun{}

	for _, size := range opt.sizes() {
		for _, seed := range opt.seeds() {
			instance, err := tlgen.New(seed).Instance(size, "")
			if err != nil {
				return nil, err
			}

			for _, solverKey := range opt.solvers() {
				runs = append(runs, &experimentRun{
					rowIndex:  len(runs),
					size:      size,
					seed:      seed,
					instance:  instance,
					solverKey: solverKey,
				})
			}
		}
	}

	return runs, nil
}
