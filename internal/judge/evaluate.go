package judge

import (
	"strconv"
	"strings"

	"codeforge/internal/domain/model"
)

// TestCaseResult is the per-case verdict. It is produced fresh on every run
// and never persisted on its own.
type TestCaseResult struct {
	TestCase int    `json:"test_case"` // 1-based
	Input    string `json:"input"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Passed   bool   `json:"passed"`
}

// Evaluation aggregates the per-case verdicts with the judge-reported status.
type Evaluation struct {
	Accepted        bool             `json:"accepted"`
	TestCaseResults []TestCaseResult `json:"test_case_results"`
	TotalPassed     int              `json:"total_passed"`
	TotalTests      int              `json:"total_tests"`
	Stdout          string           `json:"stdout"`
	Stderr          string           `json:"stderr"`
	CompileOutput   string           `json:"compile_output"`
	Status          Status           `json:"status"`
	ExecutionTime   *float64         `json:"execution_time,omitempty"` // seconds
	Memory          *int             `json:"memory,omitempty"`         // kilobytes
}

// Evaluate partitions the judge's stdout into one line per test case and
// judges each against the expected output. A test case passes iff the trimmed
// actual output equals the trimmed expected output, byte for byte; there is
// no numeric tolerance. When the program emitted fewer lines than there are
// test cases, the missing indices judge against the empty string and fail.
// The aggregate verdict additionally requires the judge status to be exactly
// Accepted: byte-identical output under a time or memory condition does not
// count.
func Evaluate(result *Result, testCases []model.TestCase) *Evaluation {
	outputLines := splitOutputLines(result.Stdout)

	results := make([]TestCaseResult, 0, len(testCases))
	passed := 0
	for i, tc := range testCases {
		actual := ""
		if i < len(outputLines) {
			actual = outputLines[i]
		}
		expected := strings.TrimSpace(tc.Output)
		ok := actual == expected
		if ok {
			passed++
		}
		results = append(results, TestCaseResult{
			TestCase: i + 1,
			Input:    tc.Input,
			Expected: expected,
			Actual:   actual,
			Passed:   ok,
		})
	}

	return &Evaluation{
		Accepted:        passed == len(testCases) && result.Status.ID == StatusAccepted,
		TestCaseResults: results,
		TotalPassed:     passed,
		TotalTests:      len(testCases),
		Stdout:          strings.TrimSpace(result.Stdout),
		Stderr:          strings.TrimSpace(result.Stderr),
		CompileOutput:   strings.TrimSpace(result.CompileOutput),
		Status:          result.Status,
		ExecutionTime:   parseSeconds(result.Time),
		Memory:          parseMemory(result.Memory),
	}
}

// splitOutputLines breaks stdout on newlines, trims each line and discards
// entirely-blank ones, preserving order.
func splitOutputLines(stdout string) []string {
	var lines []string
	for _, line := range strings.Split(stdout, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func parseSeconds(raw string) *float64 {
	if raw == "" {
		return nil
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil
	}
	return &seconds
}

func parseMemory(kb int) *int {
	if kb == 0 {
		return nil
	}
	return &kb
}
