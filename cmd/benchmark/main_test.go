package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, int64(60*1000+1000+120), parseDuration("00:01:01.12"))
	assert.Equal(t, int64(60*60*1000+60*1000+1000+120), parseDuration("01:01:01.12"))
	assert.Equal(t, int64(60*1000+1000+120), parseDuration("1:01.12"))
	assert.Equal(t, int64(120), parseDuration("0:00.12"))
	assert.Equal(t, int64(120), parseDuration("00:00:00.12"))
}

func TestParseTimeReportLines(t *testing.T) {
	assert.Equal(t, int64(2340), parseDurationLine("\tElapsed (wall clock) time (h:mm:ss or m:ss): 0:02.34"))
	assert.Equal(t, float32(4), parseMemoryLine("\tMaximum resident set size (kbytes): 4096"))
	assert.Equal(t, int64(97), parseCpuPercentageLine("\tPercent of CPU this job got: 97%"))
}

func TestGetTests(t *testing.T) {
	tests := getTests()

	names := make([]string, 0, len(tests))
	for _, test := range tests {
		names = append(names, test.Name)
		assert.Positive(t, test.Clauses, test.Name)
	}
	assert.Contains(t, names, testDirectory+"exactly4of8.cnf")
	assert.Contains(t, names, testDirectory+"exactly4of8_aux.cnf.xz")
}
