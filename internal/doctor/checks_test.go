package doctor

import (
	"testing"
)

func TestCheckStatus_String(t *testing.T) {
	tests := []struct {
		status   CheckStatus
		expected string
	}{
		{StatusPass, "pass"},
		{StatusWarn, "warn"},
		{StatusFail, "fail"},
		{CheckStatus(99), "unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			if got := tc.status.String(); got != tc.expected {
				t.Errorf("got %q, want %q", got, tc.expected)
			}
			text, err := tc.status.MarshalText()
			if err != nil || string(text) != tc.expected {
				t.Errorf("MarshalText() = %q, %v", text, err)
			}
		})
	}
}

// mockCheck is a test implementation of Check.
type mockCheck struct {
	name     string
	category string
	result   CheckResult
}

func (m *mockCheck) Name() string     { return m.name }
func (m *mockCheck) Category() string { return m.category }
func (m *mockCheck) Run() CheckResult { return m.result }

func TestRunAll(t *testing.T) {
	checks := []Check{
		&mockCheck{
			name:     "check1",
			category: CategoryConfig,
			result:   CheckResult{Name: "check1", Status: StatusPass, Message: "OK"},
		},
		&mockCheck{
			name:     "check2",
			category: CategoryConfig,
			result:   CheckResult{Name: "check2", Status: StatusFail, Message: "Failed"},
		},
	}

	results := RunAll(checks)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Status != StatusPass {
		t.Errorf("expected first check to pass")
	}
	if results[1].Status != StatusFail {
		t.Errorf("expected second check to fail")
	}
}

func TestRunAllParallel(t *testing.T) {
	checks := []Check{
		&mockCheck{name: "check1", category: CategoryNetwork, result: CheckResult{Name: "check1", Status: StatusPass}},
		&mockCheck{name: "check2", category: CategoryNetwork, result: CheckResult{Name: "check2", Status: StatusWarn}},
		&mockCheck{name: "check3", category: CategoryNetwork, result: CheckResult{Name: "check3", Status: StatusFail}},
	}

	results := RunAllParallel(checks)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	// Order should be preserved
	want := []CheckStatus{StatusPass, StatusWarn, StatusFail}
	for i, w := range want {
		if results[i].Status != w {
			t.Errorf("result %d: got %s, want %s", i, results[i].Status, w)
		}
	}
}

func TestGroupByCategory(t *testing.T) {
	checks := []Check{
		&mockCheck{name: "c1", category: CategoryConfig},
		&mockCheck{name: "c2", category: CategoryNetwork},
		&mockCheck{name: "c3", category: CategoryConfig},
	}

	grouped := GroupByCategory(checks)

	if got := grouped[CategoryConfig]; len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("expected CONFIG indices [0 2], got %v", got)
	}
	if len(grouped[CategoryNetwork]) != 1 {
		t.Errorf("expected 1 check in NETWORK, got %d", len(grouped[CategoryNetwork]))
	}
}

func TestCountByStatus(t *testing.T) {
	results := []CheckResult{
		{Status: StatusPass},
		{Status: StatusPass},
		{Status: StatusWarn},
		{Status: StatusFail},
	}

	counts := CountByStatus(results)

	if counts[StatusPass] != 2 {
		t.Errorf("expected 2 pass, got %d", counts[StatusPass])
	}
	if counts[StatusWarn] != 1 {
		t.Errorf("expected 1 warn, got %d", counts[StatusWarn])
	}
	if counts[StatusFail] != 1 {
		t.Errorf("expected 1 fail, got %d", counts[StatusFail])
	}
}

func TestHasFailuresAndIssues(t *testing.T) {
	tests := []struct {
		name     string
		results  []CheckResult
		failures bool
		issues   bool
	}{
		{"all pass", []CheckResult{{Status: StatusPass}, {Status: StatusPass}}, false, false},
		{"with warn", []CheckResult{{Status: StatusPass}, {Status: StatusWarn}}, false, true},
		{"with fail", []CheckResult{{Status: StatusPass}, {Status: StatusFail}}, true, true},
		{"empty", nil, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasFailures(tc.results); got != tc.failures {
				t.Errorf("HasFailures() = %v, want %v", got, tc.failures)
			}
			if got := HasIssues(tc.results); got != tc.issues {
				t.Errorf("HasIssues() = %v, want %v", got, tc.issues)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		results  []CheckResult
		expected string
	}{
		{[]CheckResult{{Status: StatusPass}}, "Everything looks good"},
		{[]CheckResult{{Status: StatusWarn}}, "1 issue found"},
		{[]CheckResult{{Status: StatusWarn}, {Status: StatusFail}}, "2 issues found"},
	}

	for _, tc := range tests {
		if got := Summary(tc.results); got != tc.expected {
			t.Errorf("Summary() = %q, want %q", got, tc.expected)
		}
	}
}
