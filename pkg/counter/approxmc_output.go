package counter

import (
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var solutionsPattern = regexp.MustCompile(`Number of solutions is:\s*(\d+)\s*\*\s*2\s*\*\*\s*(\d+)`)

// parseApproxMCOutput reads the (cell, hash) pair from approxmc's output. Releases print it either as
// "c [appmc] Number of solutions is: C*2**H" or only as the final "s mc N" line.
func parseApproxMCOutput(output string) (Result, error) {
	if match := solutionsPattern.FindStringSubmatch(output); match != nil {
		cell, err := strconv.ParseUint(match[1], 10, 64)
		if err != nil {
			return Result{}, errors.Wrapf(err, "invalid cell count in approxmc output")
		}
		hash, err := strconv.ParseUint(match[2], 10, 64)
		if err != nil {
			return Result{}, errors.Wrapf(err, "invalid hash count in approxmc output")
		}
		return Result{CellCount: cell, HashCount: hash}, nil
	}

	lines := lo.Map(strings.Split(output, "\n"), func(line string, _ int) string { return strings.TrimSpace(line) })
	if countLine, ok := lo.Find(lines, func(line string) bool { return strings.HasPrefix(line, "s mc ") }); ok {
		count, ok := new(big.Int).SetString(strings.TrimSpace(strings.TrimPrefix(countLine, "s mc ")), 10)
		if !ok || count.Sign() < 0 {
			return Result{}, errors.Errorf("invalid model count line in approxmc output: %q", countLine)
		}
		return decompose(count)
	}

	if lo.Contains(lines, "s UNSATISFIABLE") {
		return Result{}, nil
	}
	return Result{}, errors.New("no model count found in approxmc output")
}

// decompose writes count as cell * 2^hash with an odd cell, so counts beyond 64 bits survive when they carry enough factors of two
func decompose(count *big.Int) (Result, error) {
	if count.Sign() == 0 {
		return Result{}, nil
	}
	hash := count.TrailingZeroBits()
	cell := new(big.Int).Rsh(count, hash)
	if !cell.IsUint64() {
		return Result{}, errors.Errorf("model count %v does not fit the cell/hash representation", count)
	}
	return Result{CellCount: cell.Uint64(), HashCount: uint64(hash)}, nil
}
