package sat

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Clause is a disjunction of non-zero DIMACS literals, without the trailing 0
type Clause []int

type SAT struct {
	Variables  int
	Clauses    []Clause
	Projection []int // Declared sampling set ("c p show"/"c ind" lines); nil stands for every variable
}

// MaxVariable returns the greatest variable index that is either declared in the header or used by a clause
func (s SAT) MaxVariable() int {
	maxVariable := s.Variables
	for _, clause := range s.Clauses {
		for _, literal := range clause {
			maxVariable = max(maxVariable, abs(literal))
		}
	}
	return maxVariable
}

// AddClause appends a copy of clause, so later changes on the caller's slice do not leak into the formula
func (s *SAT) AddClause(clause Clause) {
	s.Clauses = append(s.Clauses, append(Clause(nil), clause...))
	s.Variables = max(s.Variables, lo.Max(lo.Map(clause, func(literal int, _ int) int { return abs(literal) })))
}

func (s SAT) ToDIMACS() string {
	var builder strings.Builder
	// Projection variables missing from every clause still have to be declared
	fmt.Fprintf(&builder, "p cnf %d %d\n", max(s.MaxVariable(), lo.Max(s.Projection)), len(s.Clauses))
	if len(s.Projection) > 0 {
		// Newer counters read "c p show", older ones read "c ind"; both lines are comments to everyone else
		projection := strings.Join(lo.Map(s.Projection, func(variable int, _ int) string { return fmt.Sprint(variable) }), " ")
		fmt.Fprintf(&builder, "c p show %s 0\n", projection)
		fmt.Fprintf(&builder, "c ind %s 0\n", projection)
	}
	for _, clause := range s.Clauses {
		for _, literal := range clause {
			fmt.Fprintf(&builder, "%d ", literal)
		}
		builder.WriteString("0\n")
	}
	return builder.String()
}

func abs(literal int) int {
	if literal < 0 {
		return -literal
	}
	return literal
}
