package entitlements

import "strings"

type Plan string

const (
	PlanNone     Plan = "none"
	PlanClassI   Plan = "class-i"
	PlanClassII  Plan = "class-ii"
	PlanClassIII Plan = "class-iii"
)

// AllowedPriorities returns which service request priorities a plan may file.
// AOG response is a Class II and up commitment; owners without a plan can
// still file normal requests that staff triages manually.
func AllowedPriorities(plan Plan) (normal, high, aog bool) {
	switch plan {
	case PlanClassIII:
		return true, true, true
	case PlanClassII:
		return true, true, true
	case PlanClassI:
		return true, true, false
	default:
		return true, false, false
	}
}

// CanFilePriority reports whether the plan may file a request at the given
// priority level.
func CanFilePriority(plan Plan, priority string) bool {
	normal, high, aog := AllowedPriorities(plan)
	switch priority {
	case "aog":
		return aog
	case "high":
		return high
	default:
		return normal
	}
}

// Normalize maps a stored plan label to a known Plan value.
func Normalize(raw string) Plan {
	switch Plan(strings.ToLower(strings.TrimSpace(raw))) {
	case PlanClassI:
		return PlanClassI
	case PlanClassII:
		return PlanClassII
	case PlanClassIII:
		return PlanClassIII
	default:
		return PlanNone
	}
}
