package resolver

import "fmt"

// HealthStatus classifies one dependency edge of a plan.
type HealthStatus string

const (
	HealthSatisfied       HealthStatus = "satisfied"
	HealthVersionMismatch HealthStatus = "version_mismatch"
	HealthMissing         HealthStatus = "missing"
)

// DependencyHealth is the health-check result for a single dependency edge.
type DependencyHealth struct {
	Depender string
	Name     string
	Status   HealthStatus
	Detail   string
}

// Healthy reports whether every entry is satisfied.
func Healthy(results []DependencyHealth) bool {
	for _, r := range results {
		if r.Status != HealthSatisfied {
			return false
		}
	}
	return true
}

// CheckHealth re-validates every dependency edge of a plan against the
// versions the plan actually records. It catches drift introduced between
// planning and use, such as a skill version substituted out-of-band after
// resolution. The plan is never mutated.
//
// One entry is returned per edge, in the plan's load order, including the
// satisfied ones.
func CheckHealth(plan *ResolutionPlan) []DependencyHealth {
	if plan == nil {
		return nil
	}
	versions := plan.Versions()

	var results []DependencyHealth
	for _, skill := range plan.Skills {
		for _, dep := range skill.Dependencies {
			result := DependencyHealth{Depender: skill.Name, Name: dep.Name}
			actual, present := versions[dep.Name]
			switch {
			case !present:
				result.Status = HealthMissing
				result.Detail = fmt.Sprintf("%s requires %s (%s) but it is not in the plan",
					skill.Name, dep.Name, dep.Range)
			case !dep.Range.Satisfies(actual):
				result.Status = HealthVersionMismatch
				result.Detail = fmt.Sprintf("%s requires %s %s but the plan has %s",
					skill.Name, dep.Name, dep.Range, actual)
			default:
				result.Status = HealthSatisfied
				result.Detail = fmt.Sprintf("%s %s satisfies %s", dep.Name, actual, dep.Range)
			}
			results = append(results, result)
		}
	}
	return results
}
