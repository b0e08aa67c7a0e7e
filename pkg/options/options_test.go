package options

import (
	"bytes"
	"strings"
	"testing"

	"github.com/limaJavier/approxmc/pkg/approxmc"
	"github.com/limaJavier/approxmc/pkg/counter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProjection(t *testing.T) {
	cases := []struct {
		list     string
		expected []int
	}{
		{"1,2,3-9", []int{1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{"7", []int{7}},
		{"5-5", []int{5}},
		{"10,3-4, 2 ,4-6,10", []int{2, 3, 4, 5, 6, 10}},
	}

	for _, c := range cases {
		projection, err := ParseProjection(c.list)

		require.NoError(t, err, c.list)
		assert.Equal(t, c.expected, projection, c.list)
	}
}

func TestParseProjectionReversedRange(t *testing.T) {
	projection, err := ParseProjection("9-3")

	assert.Nil(t, projection)
	assert.ErrorIs(t, err, approxmc.ErrInvariantViolation)
}

func TestParseProjectionMalformed(t *testing.T) {
	for _, list := range []string{"", "a", "1,,2", "1-", "-3", "1-2-3", "0", "0-4", "1.5", "99999999999"} {
		_, err := ParseProjection(list)

		assert.ErrorIs(t, err, approxmc.ErrMalformedOption, list)
	}
}

func TestParseDefaults(t *testing.T) {
	//** Act
	options, err := Parse([]string{"formula.cnf"}, Defaults(counter.ApproxMC))

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, counter.ApproxMC, options.Backend)
	assert.Equal(t, approxmc.DefaultConfiguration(), options.Config)
	assert.Equal(t, []string{"formula.cnf"}, options.Files)
	assert.False(t, options.Help)
}

func TestParseEveryFlag(t *testing.T) {
	//** Arrange
	args := []string{"-d", "0.05", "--epsilon=0.5", "-p", "3-5,1", "--seed", "42", "-v", "2", "--backend", "Hashing", "a.cnf.gz", "b.cnf"}

	//** Act
	options, err := Parse(args, Defaults(counter.ApproxMC))

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, counter.Hashing, options.Backend)
	assert.Equal(t, approxmc.Configuration{
		Seed:       42,
		Epsilon:    0.5,
		Delta:      0.05,
		Verbosity:  2,
		Projection: []int{1, 3, 4, 5},
	}, options.Config)
	assert.Equal(t, []string{"a.cnf.gz", "b.cnf"}, options.Files)
}

func TestParseHelp(t *testing.T) {
	for _, args := range [][]string{{"-h"}, {"--help"}, {"-s", "3", "--help", "notes.txt"}} {
		options, err := Parse(args, Defaults(counter.ApproxMC))

		require.NoError(t, err, args)
		assert.True(t, options.Help, args)
	}
}

func TestParseMalformed(t *testing.T) {
	argsList := [][]string{
		{"--unknown", "a.cnf"},
		{"-x", "a.cnf"},
		{"-d", "often", "a.cnf"},
		{"-s", "-1", "a.cnf"},
		{"-v", "loud", "a.cnf"},
		{"-e", "0", "a.cnf"},
		{"-e", "1.2", "a.cnf"},
		{"-d", "1", "a.cnf"},
		{"-b", "minisat", "a.cnf"},
		{"-p", "x", "a.cnf"},
		{"-s", "3"},
		{"notes.txt"},
		{"a.cnf", "a.cnf.zip"},
	}

	for _, args := range argsList {
		_, err := Parse(args, Defaults(counter.ApproxMC))

		assert.ErrorIs(t, err, approxmc.ErrMalformedOption, args)
	}
}

func TestParseOutOfRangeIsAlsoReported(t *testing.T) {
	_, err := Parse([]string{"-e", "2", "a.cnf"}, Defaults(counter.ApproxMC))

	assert.ErrorIs(t, err, approxmc.ErrMalformedOption)
	assert.ErrorIs(t, err, approxmc.ErrOutOfRange)
}

func TestParseReversedRangeIsAnInvariantViolation(t *testing.T) {
	_, err := Parse([]string{"-p", "9-3", "a.cnf"}, Defaults(counter.ApproxMC))

	assert.ErrorIs(t, err, approxmc.ErrInvariantViolation)
}

func TestUsage(t *testing.T) {
	var buffer bytes.Buffer

	Usage(&buffer, counter.Hashing)

	text := buffer.String()
	assert.True(t, strings.HasPrefix(text, "usage: approxmc [options] dimacs-file"))
	for _, flag := range []string{"--backend", "--delta", "--epsilon", "--help", "--projection", "--seed", "--verbose"} {
		assert.Contains(t, text, flag)
	}
	assert.Contains(t, text, "default hashing")
}
