package options

import (
	"slices"
	"strconv"
	"strings"

	"github.com/limaJavier/approxmc/pkg/approxmc"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// ParseProjection expands a comma-separated list of variables and inclusive "lb-ub" ranges into an ascending set.
// A range with lb > ub is an invariant violation; any other unreadable token is a malformed option.
func ParseProjection(list string) ([]int, error) {
	var projection []int
	for _, token := range strings.Split(list, ",") {
		token = strings.TrimSpace(token)
		lower, upper, isRange := strings.Cut(token, "-")
		if !isRange {
			variable, err := parseVariable(token)
			if err != nil {
				return nil, err
			}
			projection = append(projection, variable)
			continue
		}

		lb, err := parseVariable(lower)
		if err != nil {
			return nil, err
		}
		ub, err := parseVariable(upper)
		if err != nil {
			return nil, err
		}
		if lb > ub {
			return nil, errors.Wrapf(approxmc.ErrInvariantViolation, "projection range %q has lower bound above upper bound", token)
		}
		projection = append(projection, lo.RangeFrom(lb, ub-lb+1)...)
	}

	projection = lo.Uniq(projection)
	slices.Sort(projection)
	return projection, nil
}

func parseVariable(token string) (int, error) {
	variable, err := strconv.ParseUint(strings.TrimSpace(token), 10, 31)
	if err != nil {
		return 0, errors.Wrapf(approxmc.ErrMalformedOption, "invalid projection variable %q", token)
	}
	if variable == 0 {
		return 0, errors.Wrap(approxmc.ErrMalformedOption, "projection variable 0 does not exist")
	}
	return int(variable), nil
}
