package judge

import (
	"testing"

	"codeforge/internal/domain/model"
)

func testCases(expected ...string) []model.TestCase {
	cases := make([]model.TestCase, 0, len(expected))
	for i, out := range expected {
		cases = append(cases, model.TestCase{Input: "in" + string(rune('0'+i)), Output: out})
	}
	return cases
}

func TestEvaluateAllPassedAndAccepted(t *testing.T) {
	t.Parallel()
	result := &Result{
		Status: Status{ID: StatusAccepted, Description: "Accepted"},
		Stdout: "3\n7\n",
		Time:   "0.042",
		Memory: 10240,
	}
	eval := Evaluate(result, testCases("3", "7"))

	if !eval.Accepted {
		t.Fatal("expected accepted verdict")
	}
	if eval.TotalPassed != 2 || eval.TotalTests != 2 {
		t.Fatalf("expected 2/2 passed, got %d/%d", eval.TotalPassed, eval.TotalTests)
	}
	if eval.ExecutionTime == nil || *eval.ExecutionTime != 0.042 {
		t.Fatalf("expected execution time 0.042, got %v", eval.ExecutionTime)
	}
	if eval.Memory == nil || *eval.Memory != 10240 {
		t.Fatalf("expected memory 10240, got %v", eval.Memory)
	}
	for i, tc := range eval.TestCaseResults {
		if tc.TestCase != i+1 {
			t.Fatalf("test case index must be 1-based, got %d at position %d", tc.TestCase, i)
		}
	}
}

func TestEvaluateMissingOutputLinesFail(t *testing.T) {
	t.Parallel()
	result := &Result{
		Status: Status{ID: StatusAccepted, Description: "Accepted"},
		Stdout: "3\n",
	}
	eval := Evaluate(result, testCases("3", "7", "11"))

	if eval.Accepted {
		t.Fatal("missing output lines must not be accepted")
	}
	if eval.TotalPassed != 1 {
		t.Fatalf("expected exactly the first case to pass, got %d", eval.TotalPassed)
	}
	for _, tc := range eval.TestCaseResults[1:] {
		if tc.Passed {
			t.Fatalf("case %d with missing output must fail", tc.TestCase)
		}
		if tc.Actual != "" {
			t.Fatalf("case %d must judge against the empty string, got %q", tc.TestCase, tc.Actual)
		}
	}
}

func TestEvaluateWhitespaceTolerance(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name     string
		expected string
		stdout   string
		passed   bool
	}{
		{"trailing newline only", "4\n", "4", true},
		{"symmetric trim", "4", " 4 ", true},
		{"no numeric coercion", "4", "04", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := &Result{Status: Status{ID: StatusAccepted}, Stdout: tc.stdout}
			eval := Evaluate(result, testCases(tc.expected))
			if eval.TestCaseResults[0].Passed != tc.passed {
				t.Fatalf("expected passed=%v for expected=%q stdout=%q", tc.passed, tc.expected, tc.stdout)
			}
		})
	}
}

func TestEvaluateRequiresAcceptedStatus(t *testing.T) {
	t.Parallel()
	// Byte-identical output under a time-limit status must not count.
	result := &Result{
		Status: Status{ID: 5, Description: "Time Limit Exceeded"},
		Stdout: "3\n7\n",
	}
	eval := Evaluate(result, testCases("3", "7"))

	if eval.TotalPassed != 2 {
		t.Fatalf("output comparison should still pass, got %d", eval.TotalPassed)
	}
	if eval.Accepted {
		t.Fatal("non-Accepted judge status must veto the aggregate verdict")
	}
}

func TestEvaluateNonTerminalStatusNotAccepted(t *testing.T) {
	t.Parallel()
	result := &Result{Status: Status{ID: StatusProcessing, Description: "Processing"}}
	eval := Evaluate(result, testCases("3"))
	if eval.Accepted {
		t.Fatal("inconclusive result must not be accepted")
	}
}

func TestEvaluateCountsMatchResults(t *testing.T) {
	t.Parallel()
	result := &Result{Status: Status{ID: StatusAccepted}, Stdout: "3\nwrong\n7"}
	eval := Evaluate(result, testCases("3", "7", "7"))

	counted := 0
	for _, tc := range eval.TestCaseResults {
		if tc.Passed {
			counted++
		}
	}
	if counted != eval.TotalPassed {
		t.Fatalf("TotalPassed %d disagrees with per-case results %d", eval.TotalPassed, counted)
	}
}
