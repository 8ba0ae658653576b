package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"codeforge/internal/common"
	"codeforge/internal/domain/model"
)

func seedSubmission(t *testing.T, repo *fakeSubmissionRepo, userID string, streakFailures int) *model.Submission {
	t.Helper()
	var sub *model.Submission
	for i := 0; i < streakFailures; i++ {
		sub = &model.Submission{
			ID:          "sub-" + userID,
			UserID:      userID,
			ChallengeID: "ch-1",
			Code:        "def solve(a, b):\n    return a - b\n",
			Language:    "python",
			Status:      "Wrong Answer",
		}
		if err := repo.Create(context.Background(), sub, false); err != nil {
			t.Fatalf("seed submission: %v", err)
		}
	}
	return sub
}

func TestRequestHintNotEligibleWithoutSubmissions(t *testing.T) {
	svc := NewHintService(newFakeChallengeRepo(sumChallenge()), newFakeSubmissionRepo(), &fakeHintGenerator{})

	_, err := svc.RequestHint(context.Background(), "user-1", "sum-two-numbers")
	if !errors.Is(err, common.ErrHintNotEligible) {
		t.Fatalf("err = %v, want ErrHintNotEligible", err)
	}
}

func TestRequestHintNotEligibleBelowThreshold(t *testing.T) {
	subs := newFakeSubmissionRepo()
	seedSubmission(t, subs, "user-1", 1)
	gen := &fakeHintGenerator{hint: "unused"}
	svc := NewHintService(newFakeChallengeRepo(sumChallenge()), subs, gen)

	_, err := svc.RequestHint(context.Background(), "user-1", "sum-two-numbers")
	if !errors.Is(err, common.ErrHintNotEligible) {
		t.Fatalf("err = %v, want ErrHintNotEligible", err)
	}
	if len(gen.prompts) != 0 {
		t.Fatal("ineligible request must not reach the hint backend")
	}
}

func TestRequestHintEligible(t *testing.T) {
	subs := newFakeSubmissionRepo()
	seedSubmission(t, subs, "user-1", 2)
	gen := &fakeHintGenerator{hint: "Consider what happens when both inputs are negative."}
	svc := NewHintService(newFakeChallengeRepo(sumChallenge()), subs, gen)

	hint, err := svc.RequestHint(context.Background(), "user-1", "sum-two-numbers")
	if err != nil {
		t.Fatalf("RequestHint: %v", err)
	}
	if hint != gen.hint {
		t.Fatalf("hint = %q, want generator output", hint)
	}
	if len(gen.prompts) != 1 {
		t.Fatalf("generator called %d times, want 1", len(gen.prompts))
	}
	prompt := gen.prompts[0]
	if !strings.Contains(prompt, "Sum Two Numbers") {
		t.Fatalf("prompt missing challenge title: %q", prompt)
	}
	if !strings.Contains(prompt, "return a - b") {
		t.Fatalf("prompt missing the user's latest code: %q", prompt)
	}
}

func TestRequestHintFallsBackOnGeneratorFailure(t *testing.T) {
	subs := newFakeSubmissionRepo()
	seedSubmission(t, subs, "user-1", 3)
	svc := NewHintService(newFakeChallengeRepo(sumChallenge()), subs, &fakeHintGenerator{err: errBoom})

	hint, err := svc.RequestHint(context.Background(), "user-1", "sum-two-numbers")
	if err != nil {
		t.Fatalf("generator failure must not surface: %v", err)
	}
	if hint != FallbackHint {
		t.Fatalf("hint = %q, want fallback", hint)
	}
}

func TestRequestHintUnknownChallenge(t *testing.T) {
	svc := NewHintService(newFakeChallengeRepo(), newFakeSubmissionRepo(), &fakeHintGenerator{})

	_, err := svc.RequestHint(context.Background(), "user-1", "nope")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
