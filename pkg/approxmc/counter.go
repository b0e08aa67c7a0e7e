// Package approxmc wraps a model counting oracle in a Counter session with a scoped lifetime.
//
// A Factory is built from a Capability probed once at startup. Every Counter it creates owns one
// oracle handle; Close releases it and is safe to call any number of times. Callers should either
// defer Close or use Factory.With; a finalizer releases leaked counters as a last resort.
package approxmc

import (
	"math"
	"math/big"
	"runtime"

	"github.com/limaJavier/approxmc/pkg/counter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type state int

const (
	uninitialized state = iota
	active
	closed
)

func (s state) String() string {
	switch s {
	case uninitialized:
		return "uninitialized"
	case active:
		return "active"
	case closed:
		return "closed"
	}
	return "unknown"
}

type Counter struct {
	config Configuration
	oracle counter.Oracle
	state  state
	last   counter.Result
	logger *logrus.Entry
}

// New creates a counter on the factory's engine. An unavailable engine is reported before anything else is looked at.
func (f *Factory) New(config Configuration, opts ...Option) (*Counter, error) {
	if !f.capability.Available() {
		return nil, errors.Wrapf(ErrDependencyUnavailable, "%v", f.capability.Err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	s := settings{logger: f.logger}
	for _, opt := range opts {
		opt(&s)
	}

	c := &Counter{
		config: config,
		state:  uninitialized,
		logger: s.logger.WithFields(logrus.Fields{
			"engine": f.capability.Engine.Name(),
			"seed":   config.Seed,
		}),
	}
	oracle, err := f.capability.Engine.Create(config.options(c.logger))
	if err != nil {
		return nil, errors.Wrap(err, "cannot create counting oracle")
	}
	c.oracle = oracle
	c.state = active
	runtime.SetFinalizer(c, func(c *Counter) {
		c.logger.Warn("counter was never closed, releasing its oracle")
		c.release()
	})

	if s.formula != nil {
		for _, clause := range s.formula.Clauses {
			if err := c.AddClause(clause); err != nil {
				c.Close()
				return nil, err
			}
		}
		c.logger.WithField("clauses", len(s.formula.Clauses)).Debug("formula loaded")
	}
	return c, nil
}

// AddClause forwards clause to the oracle. Clauses accumulate across Count calls.
func (c *Counter) AddClause(clause []int) error {
	if c.state != active {
		return errors.Wrapf(ErrInvalidState, "cannot add clause to a %v counter", c.state)
	}
	return c.oracle.AddClause(clause)
}

// Count estimates the models of the accumulated formula projected onto projection. Without arguments the
// configured projection applies, and without one every variable up to the greatest one in the formula.
func (c *Counter) Count(projection ...int) (Estimate, error) {
	if c.state != active {
		return Estimate{}, errors.Wrapf(ErrInvalidState, "cannot count on a %v counter", c.state)
	}
	if len(projection) == 0 {
		projection = c.config.Projection
	} else if err := validateProjection(projection); err != nil {
		return Estimate{}, err
	}

	result, err := c.oracle.Count(projection)
	if err != nil {
		return Estimate{}, errors.Wrap(err, "count failed")
	}
	c.last = result
	c.logger.WithFields(logrus.Fields{
		"cells":  result.CellCount,
		"hashes": result.HashCount,
	}).Debug("count finished")
	return Estimate{result}, nil
}

// Last returns the estimate of the latest successful Count
func (c *Counter) Last() Estimate {
	return Estimate{c.last}
}

func (c *Counter) Close() {
	if c.state == closed {
		return
	}
	runtime.SetFinalizer(c, nil)
	c.release()
}

func (c *Counter) release() {
	if c.oracle != nil {
		c.oracle.Destroy()
		c.oracle = nil
	}
	c.state = closed
}

// Estimate is cell count * 2^hash count
type Estimate struct {
	counter.Result
}

func (e Estimate) Float64() float64 {
	return math.Ldexp(float64(e.CellCount), int(e.HashCount))
}

func (e Estimate) Int() *big.Int {
	return new(big.Int).Lsh(new(big.Int).SetUint64(e.CellCount), uint(e.HashCount))
}

func (e Estimate) String() string {
	return e.Int().String()
}
