package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/limaJavier/approxmc/pkg/approxmc"
	"github.com/limaJavier/approxmc/pkg/counter"
	"github.com/limaJavier/approxmc/pkg/options"
	"github.com/limaJavier/approxmc/pkg/sat"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := logrus.New()
	logger.SetOutput(stderr)

	config, err := counter.LoadConfig(configPath())
	if err != nil {
		logger.WithError(err).Error("cannot load configuration")
		return 1
	}

	opts, err := options.Parse(args, options.Defaults(config.Backend))
	if errors.Is(err, approxmc.ErrInvariantViolation) {
		panic(err)
	} else if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		options.Usage(stderr, config.Backend)
		return 1
	} else if opts.Help {
		options.Usage(stdout, config.Backend)
		return 0
	}

	if opts.Config.Verbosity > 0 {
		logger.SetLevel(logrus.DebugLevel)
	}

	engine, err := counter.NewEngine(opts.Backend, config)
	if err != nil {
		logger.WithError(err).Error("cannot select counting engine")
		return 1
	}
	factory := approxmc.NewFactory(approxmc.Probe(engine), logrus.NewEntry(logger))

	for _, file := range opts.Files {
		if len(opts.Files) > 1 {
			fmt.Fprintf(stdout, "c %s\n", file)
		}
		if err := count(factory, opts.Config, file, stdout, logger); err != nil {
			logger.WithError(err).WithField("file", file).Error("counting failed")
			return 1
		}
	}
	return 0
}

func count(factory *approxmc.Factory, config approxmc.Configuration, file string, stdout io.Writer, logger *logrus.Logger) error {
	formula, err := sat.ParseDIMACSFile(file)
	if err != nil {
		return err
	}
	// The sampling set declared in the file applies unless one was given on the command line
	if config.Projection == nil {
		config.Projection = formula.Projection
	}

	return factory.With(config, func(c *approxmc.Counter) error {
		estimate, err := c.Count()
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "s mc %s\n", estimate)
		return nil
	}, approxmc.WithFormula(formula), approxmc.WithLogger(logger.WithField("file", file)))
}

// configPath returns $APPROXMC_CONFIG, or config.json next to the executable
func configPath() string {
	if path, ok := os.LookupEnv(counter.ConfigEnvironmentVariable); ok {
		return path
	}
	execPath, err := os.Executable()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(filepath.Dir(execPath), "config.json")
}
