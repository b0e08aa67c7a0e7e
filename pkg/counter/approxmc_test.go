package counter

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeApproxMC writes an executable shell script standing in for approxmc. It stores its arguments and standard
// input next to itself, prints output and exits with exitCode.
func fakeApproxMC(t *testing.T, output string, exitCode int) (path string, directory string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("the fake approxmc executable is a shell script")
	}

	directory = t.TempDir()
	path = filepath.Join(directory, "approxmc")
	script := "#!/bin/sh\n" +
		"echo \"$@\" > \"" + filepath.Join(directory, "args") + "\"\n" +
		"cat > \"" + filepath.Join(directory, "input.cnf") + "\"\n" +
		"printf '%s' '" + output + "'\n" +
		"echo 'fake failure' >&2\n" +
		"exit " + strconv.Itoa(exitCode) + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path, directory
}

func TestApproxMCEngineProbe(t *testing.T) {
	engine := NewApproxMCEngine(Config{ApproxmcPath: filepath.Join(t.TempDir(), "missing-approxmc")})

	assert.Error(t, engine.Probe())
	_, err := engine.Create(Options{})
	assert.Error(t, err)
}

func TestApproxMCEngineCount(t *testing.T) {
	//** Arrange
	path, directory := fakeApproxMC(t, "c [appmc] Number of solutions is: 35*2**1\ns mc 70\n", 10)
	engine := NewApproxMCEngine(Config{ApproxmcPath: path})
	require.NoError(t, engine.Probe())
	oracle, err := engine.Create(Options{Seed: 5, Epsilon: 0.5, Delta: 0.1, Verbosity: 1})
	require.NoError(t, err)
	defer oracle.Destroy()

	require.NoError(t, oracle.AddClause([]int{1, -2}))
	require.NoError(t, oracle.AddClause([]int{2, 3}))

	//** Act
	result, err := oracle.Count([]int{1, 2})

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, Result{CellCount: 35, HashCount: 1}, result)

	args, err := os.ReadFile(filepath.Join(directory, "args"))
	require.NoError(t, err)
	assert.Equal(t, "--seed 5 --epsilon 0.5 --delta 0.1 --verb 1\n", string(args))

	input, err := os.ReadFile(filepath.Join(directory, "input.cnf"))
	require.NoError(t, err)
	assert.Equal(t, "p cnf 3 2\nc p show 1 2 0\nc ind 1 2 0\n1 -2 0\n2 3 0\n", string(input))
}

func TestApproxMCEngineExecutionFailure(t *testing.T) {
	path, _ := fakeApproxMC(t, "", 3)
	oracle, err := NewApproxMCEngine(Config{ApproxmcPath: path}).Create(Options{Epsilon: 0.8, Delta: 0.2})
	require.NoError(t, err)

	_, err = oracle.Count(nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "fake failure")
}

func TestApproxMCEngineDestroy(t *testing.T) {
	path, _ := fakeApproxMC(t, "s mc 1\n", 0)
	oracle, err := NewApproxMCEngine(Config{ApproxmcPath: path}).Create(Options{Epsilon: 0.8, Delta: 0.2})
	require.NoError(t, err)

	oracle.Destroy()
	oracle.Destroy()

	assert.ErrorIs(t, oracle.AddClause([]int{1}), ErrDestroyed)
	_, err = oracle.Count(nil)
	assert.ErrorIs(t, err, ErrDestroyed)
}

func TestApproxMCEngineRejectsZeroLiteral(t *testing.T) {
	path, _ := fakeApproxMC(t, "s mc 1\n", 0)
	oracle, err := NewApproxMCEngine(Config{ApproxmcPath: path}).Create(Options{Epsilon: 0.8, Delta: 0.2})
	require.NoError(t, err)

	assert.ErrorIs(t, oracle.AddClause([]int{1, 0, 2}), ErrZeroLiteral)
}
