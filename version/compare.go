package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// parseSemver reads major.minor.patch. Missing components count as zero and
// anything after a '-' or '+' is ignored, so release candidates compare
// equal to their final release.
func parseSemver(s string) ([3]int, error) {
	var parts [3]int

	core, _, _ := strings.Cut(strings.TrimPrefix(s, "v"), "+")
	core, _, _ = strings.Cut(core, "-")

	fields := strings.Split(core, ".")
	if len(fields) > len(parts) {
		return parts, fmt.Errorf("malformed version %q", s)
	}

	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 {
			return parts, fmt.Errorf("malformed version %q", s)
		}
		parts[i] = n
	}
	return parts, nil
}

// Compare returns 1 if a is newer than b, -1 if it is older and 0 otherwise.
func Compare(a, b string) (int, error) {
	av, err := parseSemver(a)
	if err != nil {
		return 0, err
	}

	bv, err := parseSemver(b)
	if err != nil {
		return 0, err
	}

	for _, pair := range lo.Zip2(av[:], bv[:]) {
		switch {
		case pair.A > pair.B:
			return 1, nil
		case pair.A < pair.B:
			return -1, nil
		}
	}
	return 0, nil
}
