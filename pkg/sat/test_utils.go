package sat

import "math/rand/v2"

// SATSolution is a full assignment written as signed literals, one per variable
type SATSolution []int

func GenerateSATInstance(rng *rand.Rand, variables, clauses, width int) SAT {
	satInstance := SAT{
		Variables: variables,
		Clauses:   make([]Clause, clauses),
	}

	for i := range clauses {
		satInstance.Clauses[i] = make(Clause, 0, width)
		used := make(map[int]bool)
		for len(satInstance.Clauses[i]) < min(width, variables) {
			variable := 1 + rng.IntN(variables)
			if used[variable] {
				continue
			}
			used[variable] = true
			sign := 1
			if rng.Float32() < 0.5 {
				sign = -1
			}
			satInstance.Clauses[i] = append(satInstance.Clauses[i], sign*variable)
		}
	}

	return satInstance
}

func AssertSATSolution(satInstance SAT, satSolution SATSolution) bool {
	// Make sure there are no duplicates nor contradictions
	literals := make(map[int]bool)
	for _, literal := range satSolution {
		if literals[literal] || literals[-literal] {
			return false
		}
		literals[literal] = true
	}

	// Check that all clauses are satisfied
	for _, clause := range satInstance.Clauses {
		satisfied := false
		for _, literal := range clause {
			if literals[literal] {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}

	return true
}

// BruteForceCount counts the projected models of a small instance by trying every assignment of variables 1..MaxVariable.
// Projection variables beyond MaxVariable are free and double the count. A nil projection counts every variable.
func BruteForceCount(satInstance SAT, projection []int) uint64 {
	variables := satInstance.MaxVariable()
	if projection == nil {
		for variable := 1; variable <= variables; variable++ {
			projection = append(projection, variable)
		}
	}

	seen := make(map[uint64]bool)
	free := 0
	for _, variable := range projection {
		if variable > variables {
			free++
		}
	}

	solution := make(SATSolution, variables)
	for assignment := uint64(0); assignment < 1<<variables; assignment++ {
		for variable := 1; variable <= variables; variable++ {
			if assignment&(1<<(variable-1)) != 0 {
				solution[variable-1] = variable
			} else {
				solution[variable-1] = -variable
			}
		}
		if !AssertSATSolution(satInstance, solution) {
			continue
		}

		var key uint64
		for i, variable := range projection {
			if variable <= variables && solution[variable-1] > 0 {
				key |= 1 << i
			}
		}
		seen[key] = true
	}

	return uint64(len(seen)) << free
}
