package assertion

import (
	"fmt"
	"math"
	"sort"
)

// isclose follows the relative/absolute tolerance rule:
// |a-b| <= max(rel_tol * max(|a|, |b|), abs_tol). The tolerances
// default to 1e-9 and 0 and are read from kw.
func isclose(a, b float64, kw Kwargs) (bool, error) {
	relTol, absTol := 1e-9, 0.0
	for _, name := range sortedKeys(kw) {
		n, ok := toNumber(kw[name])
		if !ok {
			return false, fmt.Errorf(
				"%w: %s must be a number, not %s",
				ErrArgument, name, typeOf(kw[name]),
			)
		}
		switch name {
		case "rel_tol":
			relTol = n.float()
		case "abs_tol":
			absTol = n.float()
		default:
			return false, fmt.Errorf(
				"%w: unexpected named operand %q", ErrArgument, name,
			)
		}
	}
	if relTol < 0 || absTol < 0 {
		return false, fmt.Errorf(
			"%w: tolerances must be non-negative", ErrValue,
		)
	}

	if a == b {
		return true, nil
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return false, nil
	}
	diff := math.Abs(b - a)
	return diff <= math.Abs(relTol*b) ||
		diff <= math.Abs(relTol*a) ||
		diff <= absTol, nil
}

func isfinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}

func isinf(x float64) bool {
	return math.IsInf(x, 0)
}

func isnan(x float64) bool {
	return math.IsNaN(x)
}

func sortedKeys(kw Kwargs) []string {
	keys := make([]string, 0, len(kw))
	for k := range kw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
