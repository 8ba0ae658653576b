package service

import (
	"context"
	"fmt"

	"codeforge/internal/common"
	"codeforge/internal/domain/model"
	"codeforge/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type ChallengeService struct {
	challengeRepo repository.ChallengeRepository
}

func NewChallengeService(challengeRepo repository.ChallengeRepository) *ChallengeService {
	return &ChallengeService{challengeRepo: challengeRepo}
}

type ChallengeRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Difficulty  string              `json:"difficulty"`
	Languages   []string            `json:"languages"`
	StarterCode []model.StarterCode `json:"starter_code"`
	TestCases   []model.TestCase    `json:"test_cases"`
	EntryPoint  string              `json:"entry_point"`
}

func (s *ChallengeService) Create(ctx context.Context, creatorID string, req ChallengeRequest) (*model.Challenge, error) {
	languages, difficulty, err := validateChallengeRequest(req)
	if err != nil {
		return nil, err
	}

	challenge := &model.Challenge{
		ID:                 uuid.NewString(),
		Title:              req.Title,
		Slug:               newSlug(req.Title),
		Description:        req.Description,
		Difficulty:         difficulty,
		SupportedLanguages: languages,
		StarterCode:        req.StarterCode,
		TestCases:          req.TestCases,
		EntryPoint:         req.EntryPoint,
		CreatorID:          creatorID,
	}
	if err := s.challengeRepo.Create(ctx, challenge); err != nil {
		return nil, fmt.Errorf("create challenge: %w", err)
	}
	return challenge, nil
}

func (s *ChallengeService) Update(ctx context.Context, challengeSlug string, req ChallengeRequest) (*model.Challenge, error) {
	languages, difficulty, err := validateChallengeRequest(req)
	if err != nil {
		return nil, err
	}

	challenge, err := s.challengeRepo.FindBySlug(ctx, challengeSlug)
	if err != nil {
		return nil, fmt.Errorf("challenge not found: %w", err)
	}
	challenge.Title = req.Title
	challenge.Description = req.Description
	challenge.Difficulty = difficulty
	challenge.SupportedLanguages = languages
	challenge.StarterCode = req.StarterCode
	challenge.TestCases = req.TestCases
	challenge.EntryPoint = req.EntryPoint

	if err := s.challengeRepo.Update(ctx, challenge); err != nil {
		return nil, fmt.Errorf("update challenge: %w", err)
	}
	return challenge, nil
}

func (s *ChallengeService) Delete(ctx context.Context, challengeSlug string) error {
	return s.challengeRepo.Delete(ctx, challengeSlug)
}

func (s *ChallengeService) GetBySlug(ctx context.Context, challengeSlug string) (*model.Challenge, error) {
	return s.challengeRepo.FindBySlug(ctx, challengeSlug)
}

func (s *ChallengeService) List(ctx context.Context) ([]model.Challenge, error) {
	return s.challengeRepo.List(ctx, 50)
}

func validateChallengeRequest(req ChallengeRequest) ([]model.Language, model.ChallengeDifficulty, error) {
	if req.Title == "" {
		return nil, "", fmt.Errorf("title is required: %w", common.ErrValidation)
	}
	if len(req.TestCases) == 0 {
		return nil, "", fmt.Errorf("at least one test case is required: %w", common.ErrValidation)
	}
	if len(req.Languages) == 0 {
		return nil, "", fmt.Errorf("at least one language is required: %w", common.ErrValidation)
	}

	languages := make([]model.Language, 0, len(req.Languages))
	for _, name := range req.Languages {
		lang, ok := model.SupportedLanguages[name]
		if !ok {
			return nil, "", fmt.Errorf("unknown language %q: %w", name, common.ErrValidation)
		}
		if model.BareFunctionLanguages[name] && req.EntryPoint == "" {
			return nil, "", fmt.Errorf("entry_point is required for language %q: %w", name, common.ErrValidation)
		}
		languages = append(languages, lang)
	}

	difficulty := model.ChallengeDifficulty(req.Difficulty)
	switch difficulty {
	case "":
		difficulty = model.DifficultyEasy
	case model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
	default:
		return nil, "", fmt.Errorf("unknown difficulty %q: %w", req.Difficulty, common.ErrValidation)
	}
	return languages, difficulty, nil
}

// newSlug derives a URL slug from the title with a short random suffix so
// identical titles never collide.
func newSlug(title string) string {
	return slug.Make(title) + "-" + uuid.NewString()[:8]
}
