package tlexperiment

import (
	"bytes"
	"context"
	"io/ioutil"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/function61/gokit/testing/assert"
)

func TestRun(t *testing.T) {
	comparison, err := Run(context.Background(), Options{
		Sizes:       []string{"small"},
		Seeds:       []int64{42},
		Solvers:     []string{"greedy", "anneal"},
		TimeLimit:   2 * time.Second,
		Concurrency: 2,
	}, discardLogger())
	assert.Ok(t, err)

	rows := comparison.Rows()
	assert.Assert(t, len(rows) == 2)

	// slots follow grid order even though the runs raced
	assert.EqualString(t, rows[0].Solver, "Greedy")
	assert.EqualString(t, rows[1].Solver, "Simulated Annealing")

	assert.Assert(t, rows[0].Feasible)

	for _, row := range rows {
		assert.EqualString(t, row.Size, "small")
		assert.Assert(t, row.Seed == 42)
		assert.Assert(t, row.Faculty == 15)
		assert.Assert(t, row.Activities > 0)
		assert.Assert(t, row.Status != "")
		assert.Assert(t, row.TotalDeviation >= 0)
		assert.Assert(t, row.MaxDeviation >= row.MeanDeviation)
	}
}

func TestRunRejectsUnknownSolver(t *testing.T) {
	_, err := Run(context.Background(), Options{
		Sizes:   []string{"small"},
		Solvers: []string{"simplex"},
	}, discardLogger())

	assert.Assert(t, err != nil)
	assert.Assert(t, strings.Contains(err.Error(), "unknown solver: simplex"))
}

func TestGridDefaults(t *testing.T) {
	runs, err := expandGrid(Options{})
	assert.Ok(t, err)

	// (small, medium) x seed 42 x four engines
	assert.Assert(t, len(runs) == 8)

	assert.EqualString(t, runs[0].label(), "small-42/greedy")
	assert.EqualString(t, runs[7].label(), "medium-42/anneal")

	// engine runs for the same instance share the generated data
	assert.Assert(t, runs[0].instance == runs[3].instance)
	assert.Assert(t, runs[0].instance != runs[4].instance)
}

func TestRenderAndCSV(t *testing.T) {
	comparison, err := Run(context.Background(), Options{
		Sizes:     []string{"small"},
		Seeds:     []int64{42},
		Solvers:   []string{"greedy"},
		TimeLimit: 2 * time.Second,
	}, discardLogger())
	assert.Ok(t, err)

	rendered := comparison.Render()
	assert.Assert(t, strings.Contains(rendered, "small-42"))
	assert.Assert(t, strings.Contains(rendered, "Greedy"))

	csvOut := &bytes.Buffer{}
	assert.Ok(t, comparison.WriteCSV(csvOut))

	lines := strings.Split(strings.TrimSpace(csvOut.String()), "\n")
	assert.Assert(t, len(lines) == 2)
	assert.EqualString(t, lines[0], strings.Join(csvHeader, ","))
	assert.Assert(t, strings.HasPrefix(lines[1], "small,42,15,"))
}

func discardLogger() *log.Logger {
	return log.New(ioutil.Discard, "", 0)
}
