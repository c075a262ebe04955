package tlsolver

const (
	// hours over a person's max load cost this much per hour. the
	// metaheuristics treat max load as a soft constraint, so the penalty
	// has to dominate any deviation gain.
	overloadPenalty = 100.0

	// preference points are pulled into the minimization with this factor,
	// scaled so willingness nudges ties without fighting load balance
	preferenceImpact = 0.5
)

// energy is the metaheuristic objective, lower is better:
// weighted |load-target| deviation + overload penalty - preference reward
func (p *problem) energy(chromosome []int) float64 {
	loads := make([]float64, len(p.faculty))
	totalPreference := 0

	for activityIdx, facultyIdx := range chromosome {
		loads[facultyIdx] += p.activities[activityIdx].Hours
		totalPreference += p.preference(facultyIdx, activityIdx)
	}

	totalWeightedDeviation := 0.0
	penalty := 0.0

	for facultyIdx, f := range p.faculty {
		deviation := loads[facultyIdx] - f.TargetLoad
		if deviation < 0 {
			deviation = -deviation
		}
		totalWeightedDeviation += deviation * f.Weight()

		if overload := loads[facultyIdx] - f.MaxLoad; overload > 0 {
			penalty += overload * overloadPenalty
		}
	}

	return totalWeightedDeviation + penalty - float64(totalPreference)*preferenceImpact
}

// exactObjective is what the exact engine minimizes: weighted deviation with
// a small preference tiebreak. Max load is hard there, so no penalty term.
func (p *problem) exactObjective(chromosome []int) float64 {
	loads := make([]float64, len(p.faculty))
	totalPreference := 0

	for activityIdx, facultyIdx := range chromosome {
		loads[facultyIdx] += p.activities[activityIdx].Hours
		totalPreference += p.preference(facultyIdx, activityIdx)
	}

	totalWeightedDeviation := 0.0
	for facultyIdx, f := range p.faculty {
		deviation := loads[facultyIdx] - f.TargetLoad
		if deviation < 0 {
			deviation = -deviation
		}
		totalWeightedDeviation += deviation * f.Weight()
	}

	return totalWeightedDeviation - float64(totalPreference)*exactPreferenceImpact
}
