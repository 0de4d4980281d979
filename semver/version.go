// Package semver implements the version and constraint model used for skill
// dependency resolution.
//
// Versions follow the major.minor.patch[-prerelease][+build] form. The
// prerelease component is restricted to a closed set of channels (alpha,
// beta, rc) with an optional numeric suffix, so "1.2.0-rc.1" parses while
// "1.2.0-nightly" is rejected. Build metadata is carried verbatim but never
// participates in ordering or equality.
//
// Constraints pair a comparison operator with a version ("^1.2.0",
// ">=1.0.0") and combine into AND-semantics ranges (">=1.0.0,<2.0.0").
package semver

import (
	"fmt"
	"strconv"
	"strings"
)

// PrereleaseKind identifies a recognized prerelease channel. Kinds are
// ordered from least to most stable, and every kind orders before the
// corresponding release version.
type PrereleaseKind int

const (
	KindAlpha PrereleaseKind = iota
	KindBeta
	KindRC
)

func (k PrereleaseKind) String() string {
	switch k {
	case KindAlpha:
		return "alpha"
	case KindBeta:
		return "beta"
	case KindRC:
		return "rc"
	}
	return "unknown"
}

// Prerelease is the optional prerelease component of a Version, e.g. the
// "rc.1" in "2.0.0-rc.1".
type Prerelease struct {
	Kind   PrereleaseKind
	Number uint64
}

func (p Prerelease) String() string {
	if p.Number == 0 {
		return p.Kind.String()
	}
	return fmt.Sprintf("%s.%d", p.Kind, p.Number)
}

// Version is an immutable semantic version. Construct one with Parse or
// MustParse; the zero value is the (valid) version 0.0.0.
type Version struct {
	Major      uint64
	Minor      uint64
	Patch      uint64
	Prerelease *Prerelease
	Build      string
}

// ParseError reports version or constraint text that could not be parsed.
// It is always surfaced to the caller verbatim, never silently defaulted.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid version %q: %s", e.Input, e.Reason)
}

func parseErr(input, reason string) error {
	return &ParseError{Input: input, Reason: reason}
}

// Parse parses text of the form "major.minor.patch[-prerelease][+build]".
// Numeric components must fit in a uint64 and the prerelease channel must be
// one of alpha, beta or rc ("alpha", "alpha.2" and "alpha2" are all
// accepted). A *ParseError is returned for anything else.
func Parse(text string) (Version, error) {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return Version{}, parseErr(text, "empty version")
	}

	rest := raw
	var build string
	if i := strings.IndexByte(rest, '+'); i >= 0 {
		build = rest[i+1:]
		rest = rest[:i]
		if build == "" {
			return Version{}, parseErr(raw, "empty build metadata")
		}
	}

	var preText string
	hasPre := false
	if i := strings.IndexByte(rest, '-'); i >= 0 {
		preText = rest[i+1:]
		rest = rest[:i]
		hasPre = true
	}

	parts := strings.Split(rest, ".")
	if len(parts) != 3 {
		return Version{}, parseErr(raw, "expected major.minor.patch")
	}
	nums := make([]uint64, 3)
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return Version{}, parseErr(raw, fmt.Sprintf("invalid numeric component %q", part))
		}
		nums[i] = n
	}

	v := Version{Major: nums[0], Minor: nums[1], Patch: nums[2], Build: build}
	if hasPre {
		pre, err := parsePrerelease(preText)
		if err != nil {
			return Version{}, parseErr(raw, err.Error())
		}
		v.Prerelease = &pre
	}
	return v, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// compile-time constants.
func MustParse(text string) Version {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

func parsePrerelease(text string) (Prerelease, error) {
	if text == "" {
		return Prerelease{}, fmt.Errorf("empty prerelease")
	}
	lower := strings.ToLower(text)
	for _, kind := range []PrereleaseKind{KindAlpha, KindBeta, KindRC} {
		name := kind.String()
		if !strings.HasPrefix(lower, name) {
			continue
		}
		suffix := lower[len(name):]
		if suffix == "" {
			return Prerelease{Kind: kind}, nil
		}
		suffix = strings.TrimPrefix(suffix, ".")
		n, err := strconv.ParseUint(suffix, 10, 64)
		if err != nil {
			return Prerelease{}, fmt.Errorf("invalid prerelease suffix %q", text)
		}
		return Prerelease{Kind: kind, Number: n}, nil
	}
	return Prerelease{}, fmt.Errorf("unrecognized prerelease %q (expected alpha, beta or rc)", text)
}

// String renders the canonical form of the version. Prerelease numbers are
// printed in dotted form ("1.2.0-rc.1") and a zero number is omitted.
func (v Version) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != nil {
		b.WriteByte('-')
		b.WriteString(v.Prerelease.String())
	}
	if v.Build != "" {
		b.WriteByte('+')
		b.WriteString(v.Build)
	}
	return b.String()
}

// Compare returns -1, 0 or 1 as a is less than, equal to or greater than b.
// Major, minor and patch compare numerically; a prerelease orders before the
// same release version; among prereleases the kind compares first, then the
// number. Build metadata is ignored.
func Compare(a, b Version) int {
	if c := compareUint(a.Major, b.Major); c != 0 {
		return c
	}
	if c := compareUint(a.Minor, b.Minor); c != 0 {
		return c
	}
	if c := compareUint(a.Patch, b.Patch); c != 0 {
		return c
	}
	switch {
	case a.Prerelease == nil && b.Prerelease == nil:
		return 0
	case a.Prerelease == nil:
		return 1
	case b.Prerelease == nil:
		return -1
	}
	if c := compareUint(uint64(a.Prerelease.Kind), uint64(b.Prerelease.Kind)); c != 0 {
		return c
	}
	return compareUint(a.Prerelease.Number, b.Prerelease.Number)
}

func compareUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Equal reports whether a and b are the same version for resolution
// purposes. Build metadata is ignored.
func (v Version) Equal(other Version) bool {
	return Compare(v, other) == 0
}

// LessThan reports whether v orders before other.
func (v Version) LessThan(other Version) bool {
	return Compare(v, other) < 0
}
