package service

import (
	"context"
	"fmt"

	"codeforge/internal/common"
	"codeforge/internal/domain/model"
	"codeforge/internal/domain/repository"
	"codeforge/internal/judge"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ModeRun    = "run"
	ModeSubmit = "submit"
)

// LeaderboardInvalidator drops cached leaderboards when a new accepted
// submission lands.
type LeaderboardInvalidator interface {
	Invalidate(ctx context.Context, challengeID string)
}

// GradingService runs the submission pipeline: harness compile -> judge
// dispatch -> result evaluation, and in submit mode records the attempt with
// its consecutive-failure count. Run mode persists nothing.
type GradingService struct {
	challengeRepo  repository.ChallengeRepository
	submissionRepo repository.SubmissionRepository
	executor       judge.Executor
	leaderboard    LeaderboardInvalidator
}

func NewGradingService(
	challengeRepo repository.ChallengeRepository,
	submissionRepo repository.SubmissionRepository,
	executor judge.Executor,
	leaderboard LeaderboardInvalidator,
) *GradingService {
	return &GradingService{
		challengeRepo:  challengeRepo,
		submissionRepo: submissionRepo,
		executor:       executor,
		leaderboard:    leaderboard,
	}
}

type GradeRequest struct {
	ChallengeSlug string `json:"challenge_slug"`
	Language      string `json:"language"`
	Code          string `json:"code"`
	Mode          string `json:"mode"`
}

type GradeResponse struct {
	Accepted        bool                   `json:"accepted"`
	TestCaseResults []judge.TestCaseResult `json:"test_case_results"`
	TotalPassed     int                    `json:"total_passed"`
	TotalTests      int                    `json:"total_tests"`
	Stdout          string                 `json:"stdout"`
	Stderr          string                 `json:"stderr"`
	CompileOutput   string                 `json:"compile_output"`
	Status          judge.Status           `json:"status"`
	ExecutionTime   *float64               `json:"execution_time,omitempty"`
	Memory          *int                   `json:"memory,omitempty"`
	Mode            string                 `json:"mode"`
	Submission      *model.Submission      `json:"submission,omitempty"`
}

// Grade runs the full pipeline for one request. In submit mode a persistence
// failure after a successful grading returns the verdict together with an
// error wrapping common.ErrSubmissionNotRecorded, so callers can tell a lost
// record from a failed grading.
func (s *GradingService) Grade(ctx context.Context, userID string, req GradeRequest) (*GradeResponse, error) {
	mode := req.Mode
	if mode == "" {
		mode = ModeSubmit
	}
	if mode != ModeRun && mode != ModeSubmit {
		return nil, fmt.Errorf("unknown grading mode %q: %w", req.Mode, common.ErrBadRequest)
	}
	if req.Code == "" {
		return nil, fmt.Errorf("code is required: %w", common.ErrBadRequest)
	}

	challenge, err := s.challengeRepo.FindBySlug(ctx, req.ChallengeSlug)
	if err != nil {
		return nil, fmt.Errorf("challenge not found: %w", err)
	}
	language, ok := challenge.LanguageByName(req.Language)
	if !ok {
		return nil, fmt.Errorf("unsupported language %q: %w", req.Language, common.ErrBadRequest)
	}

	inputs := make([]string, 0, len(challenge.TestCases))
	for _, tc := range challenge.TestCases {
		inputs = append(inputs, tc.Input)
	}
	stdin := judge.CombineStdin(inputs)
	source := judge.CompileHarness(req.Code, language.Name, challenge.EntryPoint)

	result, err := s.executor.Execute(ctx, source, language.JudgeID, stdin)
	if err != nil {
		return nil, fmt.Errorf("judge dispatch: %v: %w", err, common.ErrServiceUnavailable)
	}
	if !result.Terminal() {
		// Inconclusive after bounded polling; graded as not accepted.
		zap.S().Warnw("judge result still non-terminal after polling",
			"challenge", challenge.Slug, "user", userID, "status", result.Status.ID)
	}

	eval := judge.Evaluate(result, challenge.TestCases)
	resp := &GradeResponse{
		Accepted:        eval.Accepted,
		TestCaseResults: eval.TestCaseResults,
		TotalPassed:     eval.TotalPassed,
		TotalTests:      eval.TotalTests,
		Stdout:          eval.Stdout,
		Stderr:          eval.Stderr,
		CompileOutput:   eval.CompileOutput,
		Status:          eval.Status,
		ExecutionTime:   eval.ExecutionTime,
		Memory:          eval.Memory,
		Mode:            mode,
	}

	if mode == ModeRun {
		return resp, nil
	}

	token := result.Token
	if token == "" {
		// Synchronous responses carry no token; generate a local one.
		token = "sync-" + uuid.NewString()
	}
	status := result.Status.Description
	if status == "" {
		status = "Unknown"
	}

	sub := &model.Submission{
		ID:            uuid.NewString(),
		UserID:        userID,
		ChallengeID:   challenge.ID,
		Code:          req.Code,
		Language:      language.Name,
		Status:        status,
		ExecutionTime: eval.ExecutionTime,
		Memory:        eval.Memory,
		Token:         token,
	}
	if err := s.submissionRepo.Create(ctx, sub, eval.Accepted); err != nil {
		zap.S().Errorw("graded submission could not be recorded",
			"challenge", challenge.Slug, "user", userID, "err", err)
		return resp, fmt.Errorf("persist submission: %v: %w", err, common.ErrSubmissionNotRecorded)
	}
	resp.Submission = sub

	if eval.Accepted && s.leaderboard != nil {
		s.leaderboard.Invalidate(ctx, challenge.ID)
	}
	return resp, nil
}

// ListSubmissions returns the submission history for a challenge, newest
// first: the requesting user's own attempts, or every user's when all is set.
// The all-users view is reserved for the challenge's creator and admins.
func (s *GradingService) ListSubmissions(ctx context.Context, slug, userID, role string, all bool) ([]model.Submission, error) {
	challenge, err := s.challengeRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("challenge not found: %w", err)
	}
	if all {
		if role != model.RoleAdmin && userID != challenge.CreatorID {
			return nil, fmt.Errorf("submission history for all users is restricted: %w", common.ErrForbidden)
		}
		return s.submissionRepo.ListForChallenge(ctx, challenge.ID, 100)
	}
	return s.submissionRepo.ListForUserChallenge(ctx, userID, challenge.ID, 100)
}
