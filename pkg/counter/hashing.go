package counter

import (
	"math/rand/v2"

	"github.com/go-air/gini/z"
	"github.com/sirupsen/logrus"
)

// hashStream separates the random stream of the hashes from other uses of the seed
const hashStream = 0x9e3779b97f4a7c15

type hashingEngine struct{}

// NewHashingEngine returns the in-process approximate counter: random XOR hashes split the projected solution
// space into cells, and a gini-backed bounded enumeration measures one cell per hash draw.
func NewHashingEngine() Engine {
	return &hashingEngine{}
}

func (engine *hashingEngine) Name() string { return Hashing }

func (engine *hashingEngine) Probe() error { return nil }

func (engine *hashingEngine) Create(options Options) (Oracle, error) {
	return &hashingOracle{options: options, logger: options.logger().WithField("engine", Hashing)}, nil
}

type hashingOracle struct {
	clauseStore
	options Options
	logger  *logrus.Entry
}

func (oracle *hashingOracle) AddClause(clause []int) error {
	return oracle.add(clause)
}

func (oracle *hashingOracle) Destroy() {
	oracle.destroyed = true
	oracle.clauses = nil
}

func (oracle *hashingOracle) Count(projection []int) (Result, error) {
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

	// Zero failure probability leaves exact enumeration as the only option
	if oracle.options.Delta == 0 {
		models := newEnumerator(oracle.clauses, space.present).count(0, nil)
		return Result{CellCount: models, HashCount: space.free}, nil
	}

	limit := threshold(oracle.options.Epsilon) + 1
	models := newEnumerator(oracle.clauses, space.present).count(limit, nil)
	oracle.logger.WithFields(logrus.Fields{
		"variables": len(space.present),
		"free":      space.free,
		"threshold": limit - 1,
	}).Debug("bounded count before hashing")
	if models < limit {
		if models == 0 {
			return Result{}, nil
		}
		return Result{CellCount: models, HashCount: space.free}, nil
	}

	rng := rand.New(rand.NewPCG(oracle.options.Seed, hashStream))
	measurements := iterations(oracle.options.Delta)
	cells := make([]uint64, 0, measurements)
	hashes := make([]uint64, 0, measurements)
	for iteration := range measurements {
		e := newEnumerator(oracle.clauses, space.present)
		rows := randomHash(rng, space.present, len(space.present))
		cell, hash := search(e, rows, limit)
		cells = append(cells, cell)
		hashes = append(hashes, hash)

		if oracle.options.Verbosity > 1 {
			oracle.logger.WithFields(logrus.Fields{
				"iteration": iteration,
				"cell":      cell,
				"hash":      hash,
			}).Debug("measured cell")
		}
	}

	result := median(cells, hashes)
	result.HashCount += space.free
	return result, nil
}

// search looks for the smallest number of hash rows leaving fewer than limit models in the cell.
// The number of rows grows geometrically until the cell is small enough, then a binary search narrows it down.
func search(e *enumerator, rows []xorRow, limit uint64) (uint64, uint64) {
	activations := make([]z.Lit, 0, len(rows))
	cellAt := func(m int) uint64 {
		for len(activations) < m {
			activations = append(activations, e.addXOR(rows[len(activations)]))
		}
		return e.count(limit, activations[:m])
	}

	low, high := 0, -1 // cellAt(low) >= limit is known; cellAt(high) < limit once high >= 0
	var highCell uint64
	m := 1
	for {
		cell := cellAt(m)
		if cell >= limit {
			low = m
			if m == len(rows) { // No hash can split the space any further
				return cell, uint64(m)
			}
		} else {
			high, highCell = m, cell
		}

		if high >= 0 && high-low <= 1 {
			return highCell, uint64(high)
		}
		if high < 0 {
			m = min(2*m, len(rows))
		} else {
			m = (low + high) / 2
		}
	}
}
