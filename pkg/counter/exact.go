package counter

import (
	"github.com/crillab/gophersat/solver"
	"github.com/limaJavier/approxmc/pkg/sat"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

type exactEngine struct{}

// NewExactEngine returns an engine whose counts are exact. Formulas refuted by gophersat's preprocessing count zero;
// everything else is a gini-backed enumeration of projected assignments, exponential in the worst case.
func NewExactEngine() Engine {
	return &exactEngine{}
}

func (engine *exactEngine) Name() string { return Exact }

func (engine *exactEngine) Probe() error { return nil }

func (engine *exactEngine) Create(options Options) (Oracle, error) {
	return &exactOracle{logger: options.logger().WithField("engine", Exact)}, nil
}

type exactOracle struct {
	clauseStore
	logger *logrus.Entry
}

func (oracle *exactOracle) AddClause(clause []int) error {
	return oracle.add(clause)
}

func (oracle *exactOracle) Destroy() {
	oracle.destroyed = true
	oracle.clauses = nil
}

func (oracle *exactOracle) Count(projection []int) (Result, error) {
	if oracle.destroyed {
		return Result{}, ErrDestroyed
	}
	projection, err := validateProjection(projection)
	if err != nil {
		return Result{}, err
	}

	space := newSamplingSpace(oracle.clauses, projection)
	if space.unsat {
		return Result{}, nil
	}
	if oracle.refuted() {
		return Result{}, nil
	}

	models := newEnumerator(oracle.clauses, space.present).count(0, nil)
	oracle.logger.WithFields(logrus.Fields{"models": models, "free": space.free}).Debug("enumerated models")
	return Result{CellCount: models, HashCount: space.free}, nil
}

// refuted reports whether gophersat's preprocessing alone proves the formula unsatisfiable
func (oracle *exactOracle) refuted() bool {
	problem := solver.ParseSlice(lo.Map(oracle.clauses, func(clause sat.Clause, _ int) []int { return clause }))
	return problem.Status == solver.Unsat
}
