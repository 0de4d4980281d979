package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/skillet/semver"
)

func TestCheckHealthOnFreshPlan(t *testing.T) {
	catalog := buildCatalog(t, []entry{
		{name: "app", version: "1.0.0", deps: []testDep{{name: "lib", rng: "^1.0.0"}}},
		{name: "lib", version: "1.4.0"},
	})
	plan, err := Resolve(catalog, []string{"app"})
	require.NoError(t, err)

	results := CheckHealth(plan)
	require.Len(t, results, 1)
	require.Equal(t, "app", results[0].Depender)
	require.Equal(t, "lib", results[0].Name)
	require.Equal(t, HealthSatisfied, results[0].Status)
	require.True(t, Healthy(results))
}

func TestCheckHealthDetectsVersionDrift(t *testing.T) {
	// Simulate an out-of-band substitution: the plan records lib@0.9.0
	// even though app demands ^1.0.0.
	plan := &ResolutionPlan{
		Skills: []PlannedSkill{
			{Name: "lib", Version: semver.MustParse("0.9.0")},
			{
				Name:    "app",
				Version: semver.MustParse("1.0.0"),
				Dependencies: []PlannedDependency{
					{Name: "lib", Range: semver.MustParseRange("^1.0.0")},
				},
			},
		},
	}

	results := CheckHealth(plan)
	require.Len(t, results, 1)
	require.Equal(t, HealthVersionMismatch, results[0].Status)
	require.Contains(t, results[0].Detail, "0.9.0")
	require.False(t, Healthy(results))
}

func TestCheckHealthDetectsMissingDependency(t *testing.T) {
	plan := &ResolutionPlan{
		Skills: []PlannedSkill{
			{
				Name:    "app",
				Version: semver.MustParse("1.0.0"),
				Dependencies: []PlannedDependency{
					{Name: "lib", Range: semver.MustParseRange("*")},
				},
			},
		},
	}

	results := CheckHealth(plan)
	require.Len(t, results, 1)
	require.Equal(t, HealthMissing, results[0].Status)
}

func TestCheckHealthDoesNotMutatePlan(t *testing.T) {
	catalog := buildCatalog(t, []entry{
		{name: "app", version: "1.0.0", deps: []testDep{{name: "lib", rng: "*"}}},
		{name: "lib", version: "1.0.0"},
	})
	plan, err := Resolve(catalog, []string{"app"})
	require.NoError(t, err)

	before := plan.String()
	_ = CheckHealth(plan)
	require.Equal(t, before, plan.String())
	require.Len(t, plan.Skills, 2)
}

func TestCheckHealthNilPlan(t *testing.T) {
	require.Nil(t, CheckHealth(nil))
	require.True(t, Healthy(nil))
}
