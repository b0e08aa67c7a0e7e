// Package options turns the command line of the approxmc executable into a counter configuration.
package options

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/limaJavier/approxmc/pkg/approxmc"
	"github.com/limaJavier/approxmc/pkg/counter"
	"github.com/limaJavier/approxmc/pkg/sat"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

const usage = `usage: approxmc [options] dimacs-file...
  -b, --backend=<name>      counting engine: approxmc, hashing, exact; default %s
  -d, --delta=<float>       confidence param, range [0,1), default 0.2
  -e, --epsilon=<float>     tolerance factor, range (0,1], default 0.8
  -h, --help                print usage and exit
  -p, --projection=<list>   comma-separated ints and ranges "lb-ub"; default: none (all vars)
  -s, --seed=<int>          random seed, default 1
  -v, --verbose=<int>       verbosity level, default 0
`

type Options struct {
	Backend string
	Config  approxmc.Configuration
	Files   []string
	Help    bool
}

// Defaults are the options in effect before the command line is read
func Defaults(backend string) Options {
	return Options{
		Backend: backend,
		Config:  approxmc.DefaultConfiguration(),
	}
}

// Usage writes the usage block; defaultBackend is the backend used when -b is absent
func Usage(w io.Writer, defaultBackend string) {
	fmt.Fprintf(w, usage, defaultBackend)
}

// Parse reads args (without the program name) over defaults. Errors wrap approxmc.ErrMalformedOption,
// except for reversed projection ranges which wrap approxmc.ErrInvariantViolation.
func Parse(args []string, defaults Options) (Options, error) {
	result := defaults
	result.Config.Projection = slices.Clone(defaults.Config.Projection)

	fs := pflag.NewFlagSet("approxmc", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false

	var (
		backend    string
		delta      float64
		epsilon    float64
		help       bool
		projection string
		seed       uint64
		verbosity  uint
	)
	fs.StringVarP(&backend, "backend", "b", defaults.Backend, "")
	fs.Float64VarP(&delta, "delta", "d", defaults.Config.Delta, "")
	fs.Float64VarP(&epsilon, "epsilon", "e", defaults.Config.Epsilon, "")
	fs.BoolVarP(&help, "help", "h", false, "")
	fs.StringVarP(&projection, "projection", "p", "", "")
	fs.Uint64VarP(&seed, "seed", "s", defaults.Config.Seed, "")
	fs.UintVarP(&verbosity, "verbose", "v", defaults.Config.Verbosity, "")

	if err := fs.Parse(args); err != nil {
		return Options{}, errors.Wrap(approxmc.ErrMalformedOption, err.Error())
	}

	var visitErr error
	fs.Visit(func(flag *pflag.Flag) {
		if visitErr != nil {
			return
		}
		switch flag.Name {
		case "backend":
			result.Backend = strings.ToLower(backend)
		case "delta":
			result.Config.Delta = delta
		case "epsilon":
			result.Config.Epsilon = epsilon
		case "help":
			result.Help = help
		case "projection":
			result.Config.Projection, visitErr = ParseProjection(projection)
		case "seed":
			result.Config.Seed = seed
		case "verbose":
			result.Config.Verbosity = verbosity
		default:
			panic(errors.Wrapf(approxmc.ErrInvariantViolation, "option %q has no handler", flag.Name))
		}
	})
	if visitErr != nil {
		return Options{}, visitErr
	}
	if result.Help {
		return result, nil
	}

	if !slices.Contains(counter.Backends(), result.Backend) {
		return Options{}, errors.Wrapf(approxmc.ErrMalformedOption, "unknown backend %q, allowed values are: %v", result.Backend, counter.Backends())
	}
	if err := result.Config.Validate(); err != nil {
		return Options{}, fmt.Errorf("%w: %w", approxmc.ErrMalformedOption, err)
	}

	result.Files = fs.Args()
	if len(result.Files) == 0 {
		return Options{}, errors.Wrap(approxmc.ErrMalformedOption, "no dimacs-file given")
	}
	for _, file := range result.Files {
		if !sat.IsDIMACSFile(file) {
			return Options{}, errors.Wrapf(approxmc.ErrMalformedOption, "%q is not a DIMACS file (.cnf, .cnf.gz, .cnf.bz2, .cnf.lzma or .cnf.xz)", file)
		}
	}
	return result, nil
}
