// Package counter defines the contract of a model counting oracle and the engines that fulfil it.
//
// An Engine is probed once for availability and then creates Oracle handles. An Oracle accumulates
// clauses and answers Count calls with a (cell count, hash count) pair whose value
// CellCount * 2^HashCount estimates the number of models of the accumulated formula, optionally
// projected onto a set of variables.
package counter

import (
	"github.com/limaJavier/approxmc/pkg/sat"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

var (
	ErrDestroyed   = errors.New("oracle has been destroyed")
	ErrZeroLiteral = errors.New("literal 0 is not allowed inside a clause")
)

type Engine interface {
	Name() string
	// Probe reports whether the engine can be used on this machine (e.g. its executable can be found)
	Probe() error
	Create(Options) (Oracle, error)
}

type Oracle interface {
	AddClause(clause []int) error
	// Count estimates the number of models projected onto projection; a nil projection stands for every variable
	Count(projection []int) (Result, error)
	// Destroy releases the oracle's resources; it is safe to call more than once
	Destroy()
}

type Options struct {
	Verbosity uint
	Seed      uint64
	Epsilon   float64
	Delta     float64
	Logger    *logrus.Entry
}

func (o Options) logger() *logrus.Entry {
	if o.Logger == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return o.Logger
}

// Result is the pair reported by an oracle; the estimate is CellCount * 2^HashCount
type Result struct {
	CellCount uint64
	HashCount uint64
}

// clauseStore keeps the formula accumulated by an in-process oracle
type clauseStore struct {
	clauses   []sat.Clause
	destroyed bool
}

func (s *clauseStore) add(clause []int) error {
	if s.destroyed {
		return ErrDestroyed
	}
	if lo.Contains(clause, 0) {
		return errors.Wrapf(ErrZeroLiteral, "clause %v", clause)
	}
	s.clauses = append(s.clauses, append(sat.Clause(nil), clause...))
	return nil
}

func (s *clauseStore) formula() sat.SAT {
	return sat.SAT{Clauses: s.clauses}
}

func validateProjection(projection []int) ([]int, error) {
	if projection == nil {
		return nil, nil
	}
	for _, variable := range projection {
		if variable <= 0 {
			return nil, errors.Errorf("invalid projection variable %d", variable)
		}
	}
	return lo.Uniq(projection), nil
}
