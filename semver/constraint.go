package semver

import (
	"fmt"
	"strings"
)

// Op is a constraint comparison operator.
type Op int

const (
	// OpExact matches only the exact version (build metadata ignored).
	OpExact Op = iota
	OpGreater
	OpGreaterEqual
	OpLess
	OpLessEqual
	// OpCaret matches versions compatible with the given one: same leading
	// non-zero component and no lower than the given version. With a zero
	// major, matching is restricted to the same minor so that breaking 0.x
	// releases are never accepted.
	OpCaret
	// OpTilde matches the same major.minor with a patch no lower than the
	// given one.
	OpTilde
)

func (op Op) String() string {
	switch op {
	case OpExact:
		return "="
	case OpGreater:
		return ">"
	case OpGreaterEqual:
		return ">="
	case OpLess:
		return "<"
	case OpLessEqual:
		return "<="
	case OpCaret:
		return "^"
	case OpTilde:
		return "~"
	}
	return "?"
}

// Constraint is a single operator-qualified version test.
type Constraint struct {
	Op      Op
	Version Version
}

// ParseConstraint parses an operator token followed by a version. The
// operator may be one of =, >, >=, <, <=, ^ or ~; a bare version means an
// exact match.
func ParseConstraint(text string) (Constraint, error) {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return Constraint{}, parseErr(text, "empty constraint")
	}

	op := OpExact
	rest := raw
	switch {
	case strings.HasPrefix(raw, ">="):
		op, rest = OpGreaterEqual, raw[2:]
	case strings.HasPrefix(raw, "<="):
		op, rest = OpLessEqual, raw[2:]
	case strings.HasPrefix(raw, ">"):
		op, rest = OpGreater, raw[1:]
	case strings.HasPrefix(raw, "<"):
		op, rest = OpLess, raw[1:]
	case strings.HasPrefix(raw, "^"):
		op, rest = OpCaret, raw[1:]
	case strings.HasPrefix(raw, "~"):
		op, rest = OpTilde, raw[1:]
	case strings.HasPrefix(raw, "="):
		op, rest = OpExact, raw[1:]
	}

	v, err := Parse(rest)
	if err != nil {
		return Constraint{}, parseErr(raw, fmt.Sprintf("constraint version: %v", err))
	}
	return Constraint{Op: op, Version: v}, nil
}

// Satisfies reports whether v passes this constraint.
func (c Constraint) Satisfies(v Version) bool {
	cmp := Compare(v, c.Version)
	switch c.Op {
	case OpExact:
		return cmp == 0
	case OpGreater:
		return cmp > 0
	case OpGreaterEqual:
		return cmp >= 0
	case OpLess:
		return cmp < 0
	case OpLessEqual:
		return cmp <= 0
	case OpCaret:
		if c.Version.Major > 0 {
			return v.Major == c.Version.Major && cmp >= 0
		}
		return v.Major == 0 && v.Minor == c.Version.Minor && cmp >= 0
	case OpTilde:
		return v.Major == c.Version.Major && v.Minor == c.Version.Minor && cmp >= 0
	}
	return false
}

func (c Constraint) String() string {
	if c.Op == OpExact {
		return c.Version.String()
	}
	return c.Op.String() + c.Version.String()
}

// Range is an ordered set of constraints combined with AND semantics: a
// version matches the range only if it passes every constraint. An empty
// range matches everything.
type Range []Constraint

// ParseRange parses a comma-separated list of constraints. The empty string
// and "*" both produce the match-all range.
func ParseRange(text string) (Range, error) {
	raw := strings.TrimSpace(text)
	if raw == "" || raw == "*" {
		return Range{}, nil
	}
	parts := strings.Split(raw, ",")
	r := make(Range, 0, len(parts))
	for _, part := range parts {
		c, err := ParseConstraint(part)
		if err != nil {
			return nil, err
		}
		r = append(r, c)
	}
	return r, nil
}

// MustParseRange is like ParseRange but panics on error.
func MustParseRange(text string) Range {
	r, err := ParseRange(text)
	if err != nil {
		panic(err)
	}
	return r
}

// Satisfies reports whether v passes every constraint in the range.
func (r Range) Satisfies(v Version) bool {
	for _, c := range r {
		if !c.Satisfies(v) {
			return false
		}
	}
	return true
}

func (r Range) String() string {
	if len(r) == 0 {
		return "*"
	}
	parts := make([]string, len(r))
	for i, c := range r {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}

// MaxSatisfying returns the highest version in candidates that satisfies r.
// The second return value is false when no candidate matches.
func (r Range) MaxSatisfying(candidates []Version) (Version, bool) {
	var best Version
	found := false
	for _, candidate := range candidates {
		if !r.Satisfies(candidate) {
			continue
		}
		if !found || Compare(candidate, best) > 0 {
			best = candidate
			found = true
		}
	}
	return best, found
}
