package approxmc

import (
	"github.com/limaJavier/approxmc/pkg/counter"
	"github.com/limaJavier/approxmc/pkg/sat"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Capability is the outcome of probing a counting engine once at startup
type Capability struct {
	Engine counter.Engine
	Err    error // Reason the engine cannot be used, nil when it can
}

func Probe(engine counter.Engine) Capability {
	if engine == nil {
		return Capability{Err: errors.New("no engine selected")}
	}
	return Capability{Engine: engine, Err: engine.Probe()}
}

func (c Capability) Available() bool {
	return c.Engine != nil && c.Err == nil
}

// Factory creates counters backed by the engine of a probed capability
type Factory struct {
	capability Capability
	logger     *logrus.Entry
}

func NewFactory(capability Capability, logger *logrus.Entry) *Factory {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Factory{capability: capability, logger: logger}
}

type Option func(*settings)

type settings struct {
	formula *sat.SAT
	logger  *logrus.Entry
}

// WithFormula adds every clause of formula, in order, right after the oracle is created
func WithFormula(formula sat.SAT) Option {
	return func(s *settings) { s.formula = &formula }
}

func WithLogger(logger *logrus.Entry) Option {
	return func(s *settings) { s.logger = logger }
}

// With creates a counter, hands it to fn and closes it once fn returns or panics
func (f *Factory) With(config Configuration, fn func(*Counter) error, opts ...Option) error {
	c, err := f.New(config, opts...)
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(c)
}
