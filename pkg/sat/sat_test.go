package sat

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToDIMACS(t *testing.T) {
	sat := SAT{Variables: 3, Clauses: []Clause{{1, -2}, {3}}}

	assert.Equal(t, "p cnf 3 2\n1 -2 0\n3 0\n", sat.ToDIMACS())
}

func TestToDIMACSWithProjection(t *testing.T) {
	sat := SAT{Clauses: []Clause{{1, -4}}, Projection: []int{1, 2}}

	assert.Equal(t, "p cnf 4 1\nc p show 1 2 0\nc ind 1 2 0\n1 -4 0\n", sat.ToDIMACS())
}

func TestToDIMACSDeclaresProjectionBeyondClauses(t *testing.T) {
	sat := SAT{Clauses: []Clause{{1, 2}}, Projection: []int{1, 2, 20}}

	assert.Equal(t, "p cnf 20 1\nc p show 1 2 20 0\nc ind 1 2 20 0\n1 2 0\n", sat.ToDIMACS())
}

func TestAddClauseCopiesAndGrowsVariables(t *testing.T) {
	var sat SAT
	clause := Clause{2, -7}

	sat.AddClause(clause)
	clause[0] = 5

	assert.Equal(t, []Clause{{2, -7}}, sat.Clauses)
	assert.Equal(t, 7, sat.Variables)
}

func TestBruteForceCount(t *testing.T) {
	sat := SAT{Clauses: []Clause{{1, 2}}}

	assert.Equal(t, uint64(3), BruteForceCount(sat, nil))
	assert.Equal(t, uint64(2), BruteForceCount(sat, []int{1}))
	assert.Equal(t, uint64(6), BruteForceCount(sat, []int{1, 2, 5}))
	assert.Equal(t, uint64(1), BruteForceCount(SAT{}, nil))
	assert.Equal(t, uint64(0), BruteForceCount(SAT{Clauses: []Clause{{}}}, nil))
}

func TestGeneratedSolutionsAreChecked(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	instance := GenerateSATInstance(rng, 4, 3, 2)

	for _, clause := range instance.Clauses {
		assert.Len(t, clause, 2)
	}
	assert.False(t, AssertSATSolution(instance, SATSolution{1, -1}))
}
