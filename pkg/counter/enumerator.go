package counter

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/limaJavier/approxmc/pkg/sat"
	"github.com/samber/lo"
)

const satisfiable = 1

// samplingSpace splits a projection into the variables constrained by the formula and the free ones.
// Every free variable doubles the count, so it is accounted for in the hash count instead of being enumerated.
type samplingSpace struct {
	present []int
	free    uint64
	unsat   bool
}

func newSamplingSpace(clauses []sat.Clause, projection []int) samplingSpace {
	occurring := make(map[int]bool)
	maxVariable := 0
	unsat := false
	for _, clause := range clauses {
		if len(clause) == 0 {
			unsat = true
		}
		for _, literal := range clause {
			variable := max(literal, -literal)
			occurring[variable] = true
			maxVariable = max(maxVariable, variable)
		}
	}

	if projection == nil {
		projection = lo.RangeFrom(1, maxVariable)
	}

	space := samplingSpace{unsat: unsat}
	for _, variable := range projection {
		if occurring[variable] {
			space.present = append(space.present, variable)
		} else {
			space.free++
		}
	}
	return space
}

// enumerator counts projected models of a formula with gini. Blocking clauses of a counting round are guarded
// by a fresh activation literal, which is retired once the round ends, so rounds do not interfere.
type enumerator struct {
	g          *gini.Gini
	projection []z.Lit
	next       int // last variable in use, auxiliaries are allocated above it
}

func newEnumerator(clauses []sat.Clause, present []int) *enumerator {
	e := &enumerator{g: gini.New()}
	for _, clause := range clauses {
		for _, literal := range clause {
			e.g.Add(z.Dimacs2Lit(literal))
			e.next = max(e.next, literal, -literal)
		}
		e.g.Add(z.LitNull)
	}
	e.projection = lo.Map(present, func(variable int, _ int) z.Lit { return z.Dimacs2Lit(variable) })
	return e
}

func (e *enumerator) newLit() z.Lit {
	e.next++
	return z.Dimacs2Lit(e.next)
}

func (e *enumerator) addClause(literals ...z.Lit) {
	for _, m := range literals {
		e.g.Add(m)
	}
	e.g.Add(z.LitNull)
}

// count enumerates distinct projected models under assumptions and stops at limit; a limit of 0 means no limit
func (e *enumerator) count(limit uint64, assumptions []z.Lit) uint64 {
	round := e.newLit()
	var models uint64
	for limit == 0 || models < limit {
		e.g.Assume(round)
		e.g.Assume(assumptions...)
		if e.g.Solve() != satisfiable {
			break
		}
		models++

		blocking := make([]z.Lit, 0, len(e.projection)+1)
		blocking = append(blocking, round.Not())
		for _, m := range e.projection {
			if e.g.Value(m) {
				blocking = append(blocking, m.Not())
			} else {
				blocking = append(blocking, m)
			}
		}
		e.addClause(blocking...)
	}
	e.addClause(round.Not())
	return models
}
