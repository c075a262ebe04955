package tl

import (
	"testing"

	"github.com/function61/gokit/testing/assert"
)

func TestEquity(t *testing.T) {
	result := &OptimizationResult{
		FacultyLoads: map[int]float64{
			1: 510, // target 500 -> deviation 10
			2: 630, // target 650 -> deviation 20
		},
	}

	metrics := result.Equity(map[int]float64{1: 500, 2: 650})

	assert.Assert(t, metrics.TotalDeviation == 30)
	assert.Assert(t, metrics.MeanDeviation == 15)
	assert.Assert(t, metrics.MaxDeviation == 20)
	assert.Assert(t, metrics.StdDeviation == 5)
}

func TestEquityEmpty(t *testing.T) {
	result := &OptimizationResult{FacultyLoads: map[int]float64{}}

	metrics := result.Equity(map[int]float64{})

	assert.Assert(t, metrics.TotalDeviation == 0)
	assert.Assert(t, metrics.MeanDeviation == 0)
}
