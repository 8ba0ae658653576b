package service

import (
	"context"
	"errors"
	"fmt"

	"codeforge/internal/common"
	"codeforge/internal/domain/repository"

	"go.uber.org/zap"
)

// FallbackHint is returned whenever the hint backend fails; hint generation
// errors are never surfaced to the caller.
const FallbackHint = "Hint: Try breaking down the problem into smaller steps. Check your edge cases and make sure your logic handles all input types correctly."

// hintEligibilityThreshold is the consecutive-failure streak a user's latest
// submission must reach before hints unlock.
const hintEligibilityThreshold = 2

type HintGenerator interface {
	GenerateHint(ctx context.Context, prompt string) (string, error)
}

type HintService struct {
	challengeRepo  repository.ChallengeRepository
	submissionRepo repository.SubmissionRepository
	generator      HintGenerator
}

func NewHintService(
	challengeRepo repository.ChallengeRepository,
	submissionRepo repository.SubmissionRepository,
	generator HintGenerator,
) *HintService {
	return &HintService{
		challengeRepo:  challengeRepo,
		submissionRepo: submissionRepo,
		generator:      generator,
	}
}

// RequestHint gates on the user's latest persisted submission for the
// challenge and asks the hint backend for guidance on the last failing code.
func (s *HintService) RequestHint(ctx context.Context, userID, challengeSlug string) (string, error) {
	challenge, err := s.challengeRepo.FindBySlug(ctx, challengeSlug)
	if err != nil {
		return "", fmt.Errorf("challenge not found: %w", err)
	}

	latest, err := s.submissionRepo.LatestForUserChallenge(ctx, userID, challenge.ID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrHintNotEligible
		}
		return "", fmt.Errorf("look up latest submission: %w", err)
	}
	if latest.ConsecutiveFailures < hintEligibilityThreshold {
		return "", common.ErrHintNotEligible
	}

	prompt := fmt.Sprintf("Problem: %s\n\nDescription:\n%s\n\nUser code:\n%s",
		challenge.Title, challenge.Description, latest.Code)

	hint, err := s.generator.GenerateHint(ctx, prompt)
	if err != nil {
		zap.S().Warnw("hint generation failed, using fallback",
			"challenge", challengeSlug, "user", userID, "err", err)
		return FallbackHint, nil
	}
	return hint, nil
}
