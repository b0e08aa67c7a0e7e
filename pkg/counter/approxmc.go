package counter

import (
	"bytes"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type approxmcEngine struct {
	path string
}

// NewApproxMCEngine drives the approxmc executable found at config.ApproxmcPath (a name is looked up in PATH)
func NewApproxMCEngine(config Config) Engine {
	return &approxmcEngine{path: config.ApproxmcPath}
}

func (engine *approxmcEngine) Name() string { return ApproxMC }

func (engine *approxmcEngine) Probe() error {
	if _, err := exec.LookPath(engine.path); err != nil {
		return errors.Wrapf(err, "approxmc executable %q not found", engine.path)
	}
	return nil
}

func (engine *approxmcEngine) Create(options Options) (Oracle, error) {
	path, err := exec.LookPath(engine.path)
	if err != nil {
		return nil, errors.Wrapf(err, "approxmc executable %q not found", engine.path)
	}
	return &approxmcOracle{
		path:    path,
		options: options,
		logger:  options.logger().WithFields(logrus.Fields{"engine": ApproxMC, "path": path}),
	}, nil
}

// approxmcOracle accumulates clauses in memory and hands the whole formula to a new approxmc process on every count
type approxmcOracle struct {
	clauseStore
	path    string
	options Options
	logger  *logrus.Entry
}

func (oracle *approxmcOracle) AddClause(clause []int) error {
	return oracle.add(clause)
}

func (oracle *approxmcOracle) Destroy() {
	oracle.destroyed = true
	oracle.clauses = nil
}

func (oracle *approxmcOracle) arguments() []string {
	return []string{
		"--seed", strconv.FormatUint(oracle.options.Seed, 10),
		"--epsilon", strconv.FormatFloat(oracle.options.Epsilon, 'g', -1, 64),
		"--delta", strconv.FormatFloat(oracle.options.Delta, 'g', -1, 64),
		"--verb", strconv.FormatUint(uint64(oracle.options.Verbosity), 10),
	}
}

func (oracle *approxmcOracle) Count(projection []int) (Result, error) {
	if oracle.destroyed {
		return Result{}, ErrDestroyed
	}
	projection, err := validateProjection(projection)
	if err != nil {
		return Result{}, err
	}

	formula := oracle.formula()
	formula.Projection = projection
	dimacs := formula.ToDIMACS() // Transform the formula into DIMACS-CNF string format

	cmd := exec.Command(oracle.path, oracle.arguments()...)
	cmd.Stdin = strings.NewReader(dimacs) // Feed dimacs into approxmc's standard input

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	// Exit-code of 10 stands for satisfiable and exit-code 20 stands for unsatisfiable, older releases exit with 0
	if err != nil && (cmd.ProcessState == nil || !acceptedExitCode(cmd.ProcessState.ExitCode())) {
		return Result{}, errors.Wrapf(err, "an error occurred during approxmc execution: %v", stderr.String())
	}
	oracle.logger.WithField("duration", time.Since(start)).Debug("approxmc finished")

	if oracle.options.Verbosity > 0 {
		for _, line := range strings.Split(stdOut.String(), "\n") {
			if strings.HasPrefix(line, "c ") {
				oracle.logger.Debug(line)
			}
		}
	}

	return parseApproxMCOutput(stdOut.String())
}

func acceptedExitCode(code int) bool {
	return code == 0 || code == 10 || code == 20
}
