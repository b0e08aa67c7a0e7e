package counter

import (
	"math/rand/v2"

	"github.com/go-air/gini/z"
)

// xorRow constrains the parity of its variables: x1 ^ x2 ^ ... ^ xk = parity
type xorRow struct {
	variables []int
	parity    bool
}

// randomHash draws rows of a random linear hash over variables: each variable joins a row with probability 1/2
func randomHash(rng *rand.Rand, variables []int, rows int) []xorRow {
	hash := make([]xorRow, rows)
	for i := range hash {
		for _, variable := range variables {
			if rng.IntN(2) == 1 {
				hash[i].variables = append(hash[i].variables, variable)
			}
		}
		hash[i].parity = rng.IntN(2) == 1
	}
	return hash
}

// addXOR encodes row as a Tseitin chain and returns the literal that activates it
func (e *enumerator) addXOR(row xorRow) z.Lit {
	activation := e.newLit()
	if len(row.variables) == 0 {
		if row.parity { // 0 = 1 can only hold while the row is inactive
			e.addClause(activation.Not())
		}
		return activation
	}

	accumulator := z.Dimacs2Lit(row.variables[0])
	for _, variable := range row.variables[1:] {
		x := z.Dimacs2Lit(variable)
		t := e.newLit() // t <-> accumulator ^ x
		e.addClause(t.Not(), accumulator, x)
		e.addClause(t.Not(), accumulator.Not(), x.Not())
		e.addClause(t, accumulator.Not(), x)
		e.addClause(t, accumulator, x.Not())
		accumulator = t
	}

	if row.parity {
		e.addClause(activation.Not(), accumulator)
	} else {
		e.addClause(activation.Not(), accumulator.Not())
	}
	return activation
}
