package counter

import "github.com/pkg/errors"

const (
	ApproxMC = "approxmc"
	Hashing  = "hashing"
	Exact    = "exact"
)

var engines = map[string]func(Config) Engine{
	ApproxMC: NewApproxMCEngine,
	Hashing:  func(Config) Engine { return NewHashingEngine() },
	Exact:    func(Config) Engine { return NewExactEngine() },
}

// Backends lists the engine names accepted by NewEngine
func Backends() []string {
	return []string{ApproxMC, Hashing, Exact}
}

func NewEngine(name string, config Config) (Engine, error) {
	newEngine, ok := engines[name]
	if !ok {
		return nil, errors.Errorf("unknown backend %q, allowed values are: %v", name, Backends())
	}
	return newEngine(config), nil
}
