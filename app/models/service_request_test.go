package models

import "testing"

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{from: RequestStatusRequested, to: RequestStatusScheduled, want: true},
		{from: RequestStatusRequested, to: RequestStatusInProgress, want: true},
		{from: RequestStatusRequested, to: RequestStatusCompleted, want: false},
		{from: RequestStatusScheduled, to: RequestStatusRequested, want: true},
		{from: RequestStatusScheduled, to: RequestStatusCompleted, want: false},
		{from: RequestStatusInProgress, to: RequestStatusCompleted, want: true},
		{from: RequestStatusCompleted, to: RequestStatusInProgress, want: true},
		{from: RequestStatusCompleted, to: RequestStatusRequested, want: false},
		{from: RequestStatusCanceled, to: RequestStatusRequested, want: false},
		{from: RequestStatusRequested, to: RequestStatusRequested, want: false},
		{from: RequestStatusRequested, to: "bogus", want: false},
	}

	for _, tt := range tests {
		r := ServiceRequest{Status: tt.from}
		if got := r.CanTransitionTo(tt.to); got != tt.want {
			t.Fatalf("CanTransitionTo(%q -> %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestIsOpen(t *testing.T) {
	for _, status := range []string{RequestStatusRequested, RequestStatusScheduled, RequestStatusInProgress} {
		r := ServiceRequest{Status: status}
		if !r.IsOpen() {
			t.Fatalf("expected status %q to be open", status)
		}
	}
	for _, status := range []string{RequestStatusCompleted, RequestStatusCanceled} {
		r := ServiceRequest{Status: status}
		if r.IsOpen() {
			t.Fatalf("expected status %q to be closed", status)
		}
	}
}

func TestMembershipAddonsRoundTrip(t *testing.T) {
	var m Membership
	if err := m.SetAddons([]string{"Interior Plus", "Avionics Care"}); err != nil {
		t.Fatalf("SetAddons: %v", err)
	}
	got := m.Addons()
	if len(got) != 2 || got[0] != "Interior Plus" {
		t.Fatalf("unexpected addons: %v", got)
	}

	if err := m.SetAddons(nil); err != nil {
		t.Fatalf("SetAddons(nil): %v", err)
	}
	if m.Addons() != nil {
		t.Fatalf("expected no addons after clearing, got %v", m.Addons())
	}
}

func TestServiceCreditRuleEngineRule(t *testing.T) {
	low := 50.0
	r := ServiceCreditRule{ServiceType: "detail", LowActivityBase: &low, RollsOver: true}

	rule := r.EngineRule()
	if rule.LowActivityBase != 50 {
		t.Fatalf("expected low base 50, got %v", rule.LowActivityBase)
	}
	if rule.HighActivityBase != 0 {
		t.Fatalf("expected absent high base to map to 0, got %v", rule.HighActivityBase)
	}
	if !rule.RollsOver {
		t.Fatalf("expected rollover flag to carry over")
	}
}
