package entitlements

import "testing"

func TestCanFilePriority(t *testing.T) {
	cases := []struct {
		plan     Plan
		priority string
		want     bool
	}{
		{PlanNone, "normal", true},
		{PlanNone, "high", false},
		{PlanNone, "aog", false},
		{PlanClassI, "high", true},
		{PlanClassI, "aog", false},
		{PlanClassII, "aog", true},
		{PlanClassIII, "aog", true},
	}

	for _, tc := range cases {
		if got := CanFilePriority(tc.plan, tc.priority); got != tc.want {
			t.Errorf("CanFilePriority(%s, %s) = %v, want %v", tc.plan, tc.priority, got, tc.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize(" Class-II "); got != PlanClassII {
		t.Errorf("Normalize trimmed/lowered = %v, want %v", got, PlanClassII)
	}
	if got := Normalize("premium"); got != PlanNone {
		t.Errorf("Normalize unknown = %v, want %v", got, PlanNone)
	}
	if got := Normalize(""); got != PlanNone {
		t.Errorf("Normalize empty = %v, want %v", got, PlanNone)
	}
}
