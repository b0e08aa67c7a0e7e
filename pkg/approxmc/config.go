package approxmc

import (
	"github.com/limaJavier/approxmc/pkg/counter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Configuration struct {
	Seed      uint64
	Epsilon   float64 // Tolerance factor in (0, 1]
	Delta     float64 // Failure probability bound in [0, 1)
	Verbosity uint
	// Projection is the ascending set of variables counted by default; nil counts every variable
	Projection []int
}

func DefaultConfiguration() Configuration {
	return Configuration{
		Seed:    1,
		Epsilon: 0.8,
		Delta:   0.2,
	}
}

func (c Configuration) Validate() error {
	if !(c.Epsilon > 0 && c.Epsilon <= 1) {
		return errors.Wrapf(ErrOutOfRange, "epsilon %v is outside (0, 1]", c.Epsilon)
	}
	if !(c.Delta >= 0 && c.Delta < 1) {
		return errors.Wrapf(ErrOutOfRange, "delta %v is outside [0, 1)", c.Delta)
	}
	return validateProjection(c.Projection)
}

func validateProjection(projection []int) error {
	for _, variable := range projection {
		if variable <= 0 {
			return errors.Wrapf(ErrOutOfRange, "projection variable %d is not positive", variable)
		}
	}
	return nil
}

func (c Configuration) options(logger *logrus.Entry) counter.Options {
	return counter.Options{
		Verbosity: c.Verbosity,
		Seed:      c.Seed,
		Epsilon:   c.Epsilon,
		Delta:     c.Delta,
		Logger:    logger,
	}
}
