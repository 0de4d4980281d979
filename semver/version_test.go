package semver

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Version
	}{
		{
			name:     "plain release",
			input:    "1.2.3",
			expected: Version{Major: 1, Minor: 2, Patch: 3},
		},
		{
			name:     "zero version",
			input:    "0.0.0",
			expected: Version{},
		},
		{
			name:     "large components",
			input:    "18446744073709551615.0.1",
			expected: Version{Major: 18446744073709551615, Patch: 1},
		},
		{
			name:     "alpha prerelease without number",
			input:    "1.0.0-alpha",
			expected: Version{Major: 1, Prerelease: &Prerelease{Kind: KindAlpha}},
		},
		{
			name:     "dotted prerelease number",
			input:    "2.0.0-rc.1",
			expected: Version{Major: 2, Prerelease: &Prerelease{Kind: KindRC, Number: 1}},
		},
		{
			name:     "compact prerelease number",
			input:    "2.0.0-beta3",
			expected: Version{Major: 2, Prerelease: &Prerelease{Kind: KindBeta, Number: 3}},
		},
		{
			name:     "build metadata",
			input:    "1.2.3+build.99",
			expected: Version{Major: 1, Minor: 2, Patch: 3, Build: "build.99"},
		},
		{
			name:  "prerelease and build",
			input: "1.2.3-rc.2+abc",
			expected: Version{
				Major: 1, Minor: 2, Patch: 3,
				Prerelease: &Prerelease{Kind: KindRC, Number: 2},
				Build:      "abc",
			},
		},
		{
			name:     "surrounding whitespace",
			input:    "  1.0.0 ",
			expected: Version{Major: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.expected, v)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "missing patch", input: "1.2"},
		{name: "extra component", input: "1.2.3.4"},
		{name: "non numeric", input: "1.x.3"},
		{name: "negative component", input: "1.-2.3"},
		{name: "overflow", input: "18446744073709551616.0.0"},
		{name: "unknown prerelease kind", input: "1.0.0-nightly"},
		{name: "bad prerelease suffix", input: "1.0.0-rc.x"},
		{name: "empty prerelease", input: "1.0.0-"},
		{name: "empty build", input: "1.0.0+"},
		{name: "garbage", input: "not-a-version"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "2.0.0", -1},
		{"2.1.0", "2.0.9", 1},
		{"1.2.3", "1.2.4", -1},
		{"1.0.0-alpha", "1.0.0", -1},
		{"1.0.0-alpha", "1.0.0-beta", -1},
		{"1.0.0-beta", "1.0.0-rc", -1},
		{"1.0.0-rc.1", "1.0.0-rc.2", -1},
		{"1.0.0-rc.2", "1.0.0-rc.2", 0},
		{"1.0.0+build1", "1.0.0+build2", 0},
		{"1.0.0-rc.1+x", "1.0.0-rc.1+y", 0},
	}
	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			a, b := MustParse(tt.a), MustParse(tt.b)
			require.Equal(t, tt.expected, Compare(a, b))
			require.Equal(t, -tt.expected, Compare(b, a))
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1.2.3", "1.2.3"},
		{"1.0.0-alpha", "1.0.0-alpha"},
		{"1.0.0-rc.2", "1.0.0-rc.2"},
		{"1.0.0-beta3", "1.0.0-beta.3"},
		{"1.2.3+build", "1.2.3+build"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, MustParse(tt.input).String())
	}
}

// versionGen draws arbitrary valid versions, with and without prereleases.
func versionGen() *rapid.Generator[Version] {
	return rapid.Custom(func(rt *rapid.T) Version {
		v := Version{
			Major: rapid.Uint64Range(0, 1000).Draw(rt, "major"),
			Minor: rapid.Uint64Range(0, 1000).Draw(rt, "minor"),
			Patch: rapid.Uint64Range(0, 1000).Draw(rt, "patch"),
		}
		if rapid.Bool().Draw(rt, "hasPre") {
			v.Prerelease = &Prerelease{
				Kind:   PrereleaseKind(rapid.IntRange(0, 2).Draw(rt, "kind")),
				Number: rapid.Uint64Range(0, 100).Draw(rt, "number"),
			}
		}
		return v
	})
}

func TestCompareTotality(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := versionGen().Draw(rt, "a")
		b := versionGen().Draw(rt, "b")
		ab, ba := Compare(a, b), Compare(b, a)
		require.Equal(rt, -ab, ba, "comparison must be antisymmetric")
		if ab == 0 {
			require.True(rt, a.Equal(b))
		}
	})
}

func TestCompareTransitivity(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := versionGen().Draw(rt, "a")
		b := versionGen().Draw(rt, "b")
		c := versionGen().Draw(rt, "c")
		if Compare(a, b) <= 0 && Compare(b, c) <= 0 {
			require.LessOrEqual(rt, Compare(a, c), 0)
		}
	})
}

func TestRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		v := versionGen().Draw(rt, "v")
		parsed, err := Parse(v.String())
		require.NoError(rt, err)
		require.Equal(rt, v, parsed)
	})
}
