package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/limaJavier/approxmc/pkg/counter"
	"github.com/limaJavier/approxmc/pkg/sat"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

const (
	executablePath         = "../../bin/approxmc"
	testDirectory          = "../../test/cnfs/"
	MB             float32 = 1024 * 1024
)

type ResultType int

const (
	counted ResultType = iota
	failed
)

var resultTypes = map[ResultType]string{
	counted: "counted",
	failed:  "failed",
}

type TestMetadata struct {
	Name       string
	Variables  int
	Clauses    int
	Projection int
}

type Tolerance struct {
	Epsilon float64
	Delta   float64
}

type BenchmarkResult struct {
	Backend       string
	Tolerance     Tolerance
	Test          TestMetadata
	Duration      int64
	Memory        float32
	CpuPercentage int64
	Estimate      string
	Result        ResultType
}

func main() {
	tests := getTests()
	tolerances := getTolerances()
	backends := counter.Backends()
	results := make([]BenchmarkResult, 0, len(tests)*len(tolerances)*len(backends))

	for _, test := range tests {
		for _, tolerance := range tolerances {
			for _, backend := range backends {
				logrus.Infof("Benchmarking test \"%v\" with backend \"%v\", epsilon \"%v\" and delta \"%v\"", test.Name, backend, tolerance.Epsilon, tolerance.Delta)

				result, err := measure(backend, tolerance, test.Name)
				if err != nil {
					logrus.WithError(err).Warn("benchmark run failed")
				}
				result.Backend, result.Tolerance, result.Test = backend, tolerance, test
				results = append(results, result)
			}
		}
	}

	if err := toCsv(results); err != nil {
		logrus.WithError(err).Fatal("cannot write benchmark results")
	}
}

func getTests() []TestMetadata {
	testFiles, err := os.ReadDir(testDirectory)
	if err != nil {
		logrus.WithError(err).Fatal("cannot read test directory")
	}

	tests := make([]TestMetadata, 0, len(testFiles))
	for _, file := range lo.Filter(testFiles, func(file os.DirEntry, _ int) bool { return sat.IsDIMACSFile(file.Name()) }) {
		filename := testDirectory + file.Name()
		formula, err := sat.ParseDIMACSFile(filename)
		if err != nil {
			logrus.WithError(err).Fatalf("cannot parse test file %v", filename)
		}

		tests = append(tests, TestMetadata{
			Name:       filename,
			Variables:  formula.MaxVariable(),
			Clauses:    len(formula.Clauses),
			Projection: len(formula.Projection),
		})
	}
	return tests
}

func getTolerances() []Tolerance {
	return []Tolerance{
		{Epsilon: 0.8, Delta: 0.2},
		{Epsilon: 0.5, Delta: 0.1},
		{Epsilon: 0.2, Delta: 0.05},
	}
}

func measure(backend string, tolerance Tolerance, testFile string) (BenchmarkResult, error) {
	cmd := exec.Command("/usr/bin/time", "-v", executablePath,
		"--backend", backend,
		"--epsilon", fmt.Sprint(tolerance.Epsilon),
		"--delta", fmt.Sprint(tolerance.Delta),
		testFile,
	)

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stdErr bytes.Buffer
	cmd.Stderr = &stdErr

	result := BenchmarkResult{Result: counted}
	if err := cmd.Run(); err != nil {
		result.Result = failed
		if cmd.ProcessState == nil {
			return result, errors.Wrap(err, "cannot start /usr/bin/time")
		}
	}

	if line, ok := lo.Find(strings.Split(stdOut.String(), "\n"), func(line string) bool { return strings.HasPrefix(line, "s mc ") }); ok {
		result.Estimate = strings.TrimPrefix(line, "s mc ")
	}

	splits := strings.Split(stdErr.String(), "\n")
	getLine := func(substr string) (string, error) {
		line, ok := lo.Find(splits, func(line string) bool {
			return strings.Contains(strings.ToLower(line), substr)
		})
		if !ok {
			return "", errors.Errorf("substring %q could not be found in: %v", substr, stdErr.String())
		}
		return line, nil
	}

	durationLine, err := getLine("wall clock")
	if err != nil {
		return result, err
	}
	memoryLine, err := getLine("maximum resident set size")
	if err != nil {
		return result, err
	}
	cpuLine, err := getLine("percent of cpu")
	if err != nil {
		return result, err
	}

	result.Duration = parseDurationLine(durationLine)
	result.Memory = parseMemoryLine(memoryLine)
	result.CpuPercentage = parseCpuPercentageLine(cpuLine)
	return result, nil
}

func toCsv(results []BenchmarkResult) error {
	file, err := os.Create("benchmark_results.csv")
	if err != nil {
		return errors.Wrap(err, "cannot create CSV file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Backend", "Epsilon", "Delta", "Test", "Variables", "Clauses", "Projection", "Duration(ms)", "Memory(MB)", "CPU(%)", "Estimate", "Result"}
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "cannot write CSV header")
	}

	for _, result := range results {
		record := []string{
			result.Backend,
			fmt.Sprintf("%v", result.Tolerance.Epsilon),
			fmt.Sprintf("%v", result.Tolerance.Delta),
			result.Test.Name,
			fmt.Sprintf("%d", result.Test.Variables),
			fmt.Sprintf("%d", result.Test.Clauses),
			fmt.Sprintf("%d", result.Test.Projection),
			fmt.Sprintf("%d", result.Duration),
			fmt.Sprintf("%.1f", result.Memory),
			fmt.Sprintf("%d", result.CpuPercentage),
			result.Estimate,
			resultTypes[result.Result],
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrap(err, "cannot write CSV record")
		}
	}
	return nil
}

func parseDurationLine(line string) int64 {
	durationStr := strings.Split(line, "(h:mm:ss or m:ss):")[1][1:]
	return parseDuration(durationStr)
}

func parseDuration(durationStr string) int64 {
	parts := strings.Split(durationStr, ":")
	secondsStr := parts[len(parts)-1]
	secondsParts := strings.Split(secondsStr, ".")

	var duration int64
	if len(parts) == 3 { // h:mm:ss
		hours := lo.Must(strconv.Atoi(parts[0]))
		minutes := lo.Must(strconv.Atoi(parts[1]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(hours*3600+minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else if len(parts) == 2 { // m:ss
		minutes := lo.Must(strconv.Atoi(parts[0]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else {
		logrus.Fatalf("unexpected duration format: %v", durationStr)
	}
	return duration
}

// parseMemoryLine converts the maximum resident set size, reported in KB, into MB
func parseMemoryLine(line string) float32 {
	memoryStr := strings.Split(line, ":")[1][1:]
	return float32(lo.Must(strconv.ParseFloat(memoryStr, 32))) * 1024 / MB
}

func parseCpuPercentageLine(line string) int64 {
	percentageStr := strings.Split(line, ":")[1][1:]
	percentageStr = percentageStr[:len(percentageStr)-1]
	return int64(lo.Must(strconv.Atoi(percentageStr)))
}
