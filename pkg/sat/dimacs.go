package sat

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var dimacsFilePattern = regexp.MustCompile(`\.cnf(\.(gz|bz2|lzma|xz))?$`)

// IsDIMACSFile reports whether name looks like a (possibly compressed) DIMACS CNF file
func IsDIMACSFile(name string) bool {
	return dimacsFilePattern.MatchString(name)
}

// ParseDIMACSFile reads a DIMACS CNF file, decompressing it according to its suffix
func ParseDIMACSFile(fileName string) (SAT, error) {
	reader, err := openCompressed(fileName)
	if err != nil {
		return SAT{}, err
	}
	defer reader.Close()

	sat, err := ParseDIMACS(reader)
	if err != nil {
		return SAT{}, errors.Wrapf(err, "cannot parse %q", fileName)
	}
	return sat, nil
}

// ParseDIMACS reads a CNF formula in DIMACS format. A clause may span several lines and ends at its 0 literal.
// Projection lines ("c p show ... 0" and "c ind ... 0") are collected into SAT.Projection.
func ParseDIMACS(reader io.Reader) (SAT, error) {
	var sat SAT
	var clause Clause
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	seenHeader := false
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line[0] == '%': // End of instance in some benchmark families
			return finish(sat, clause)
		case line[0] == 'c':
			projection, ok, err := parseProjectionLine(line)
			if err != nil {
				return SAT{}, errors.Wrapf(err, "line %d", lineNumber)
			}
			if ok {
				sat.Projection = lo.Uniq(append(sat.Projection, projection...))
			}
			continue
		case line[0] == 'p':
			parts := strings.Fields(line)
			if seenHeader || len(parts) != 4 || parts[1] != "cnf" {
				return SAT{}, errors.Errorf("line %d: invalid problem line: %s", lineNumber, line)
			}
			variables, err := strconv.Atoi(parts[2])
			if err != nil || variables < 0 {
				return SAT{}, errors.Errorf("line %d: invalid variable count %q", lineNumber, parts[2])
			}
			if _, err := strconv.Atoi(parts[3]); err != nil {
				return SAT{}, errors.Errorf("line %d: invalid clause count %q", lineNumber, parts[3])
			}
			sat.Variables = variables
			seenHeader = true
			continue
		}

		for _, literalStr := range strings.Fields(line) {
			literal, err := strconv.Atoi(literalStr)
			if err != nil {
				return SAT{}, errors.Errorf("line %d: invalid literal %q", lineNumber, literalStr)
			}
			if literal == 0 {
				sat.Clauses = append(sat.Clauses, clause)
				clause = nil
				continue
			}
			clause = append(clause, literal)
		}
	}
	if err := scanner.Err(); err != nil {
		return SAT{}, errors.Wrap(err, "error reading formula")
	}

	return finish(sat, clause)
}

// finish accepts a last clause that misses its terminating 0
func finish(sat SAT, pending Clause) (SAT, error) {
	if len(pending) > 0 {
		sat.Clauses = append(sat.Clauses, pending)
	}
	sat.Variables = sat.MaxVariable()
	return sat, nil
}

func parseProjectionLine(line string) ([]int, bool, error) {
	fields := strings.Fields(line)
	var values []string
	switch {
	case len(fields) >= 3 && fields[1] == "p" && fields[2] == "show":
		values = fields[3:]
	case len(fields) >= 2 && fields[1] == "ind":
		values = fields[2:]
	default:
		return nil, false, nil
	}

	projection := make([]int, 0, len(values))
	for _, valueStr := range values {
		value, err := strconv.Atoi(valueStr)
		if err != nil || value < 0 {
			return nil, false, errors.Errorf("invalid projection variable %q", valueStr)
		}
		if value == 0 {
			break
		}
		projection = append(projection, value)
	}
	return projection, true, nil
}
