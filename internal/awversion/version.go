// Package awversion parses and compares Alfred-Workflow library version
// strings. The library uses semver-style versions with an optional "v"
// prefix, an optional "-suffix" for pre-releases, and optional "+build"
// metadata that is ignored for ordering.
package awversion

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrEmptyVersion   = errors.New("empty version string")
	ErrInvalidVersion = errors.New("invalid version string")
)

// Version is a parsed library version
type Version struct {
	Major  int
	Minor  int
	Patch  int
	Suffix string // pre-release suffix, e.g. "beta" in 1.0-beta
	Build  string // build metadata, e.g. "20170405" in 1.0+20170405

	raw string
}

// Parse parses a version string. Accepted forms: "1", "1.2", "1.2.3",
// each optionally prefixed with "v" and suffixed with "-pre" and/or
// "+build".
func Parse(s string) (Version, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Version{}, ErrEmptyVersion
	}

	v := Version{raw: raw}

	rest := strings.TrimPrefix(raw, "v")

	// Build metadata comes last and never affects ordering
	if i := strings.IndexByte(rest, '+'); i >= 0 {
		v.Build = rest[i+1:]
		rest = rest[:i]
	}

	// Pre-release suffix
	if i := strings.IndexByte(rest, '-'); i >= 0 {
		v.Suffix = rest[i+1:]
		rest = rest[:i]
		if v.Suffix == "" {
			return Version{}, fmt.Errorf("%w: %q: empty pre-release suffix", ErrInvalidVersion, raw)
		}
	}

	parts := strings.Split(rest, ".")
	if len(parts) > 3 {
		return Version{}, fmt.Errorf("%w: %q: too many dotted parts", ErrInvalidVersion, raw)
	}

	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || p == "" || n < 0 {
			return Version{}, fmt.Errorf("%w: %q: bad numeric part %q", ErrInvalidVersion, raw, p)
		}
		nums[i] = n
	}

	v.Major = nums[0]
	if len(nums) > 1 {
		v.Minor = nums[1]
	}
	if len(nums) > 2 {
		v.Patch = nums[2]
	}

	return v, nil
}

// MustParse parses a version string and panics on error. Intended for
// constants and tests.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare returns -1 if v < o, 0 if v == o, 1 if v > o.
// Numeric parts are compared first; at equal numbers a release sorts
// after any pre-release, and pre-release suffixes compare lexically.
// Build metadata is ignored.
func (v Version) Compare(o Version) int {
	if cmp := compareInts(v.Major, o.Major); cmp != 0 {
		return cmp
	}
	if cmp := compareInts(v.Minor, o.Minor); cmp != 0 {
		return cmp
	}
	if cmp := compareInts(v.Patch, o.Patch); cmp != 0 {
		return cmp
	}

	// Release > pre-release
	if v.Suffix == "" && o.Suffix != "" {
		return 1
	}
	if v.Suffix != "" && o.Suffix == "" {
		return -1
	}

	return strings.Compare(v.Suffix, o.Suffix)
}

// Before reports whether v is older than o
func (v Version) Before(o Version) bool {
	return v.Compare(o) < 0
}

// AtLeast reports whether v is the same as or newer than o
func (v Version) AtLeast(o Version) bool {
	return v.Compare(o) >= 0
}

// String returns the original version string
func (v Version) String() string {
	if v.raw != "" {
		return v.raw
	}
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Suffix != "" {
		s += "-" + v.Suffix
	}
	if v.Build != "" {
		s += "+" + v.Build
	}
	return s
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
