package model

import (
	"time"
)

type ChallengeDifficulty string

const (
	DifficultyEasy   ChallengeDifficulty = "Easy"
	DifficultyMedium ChallengeDifficulty = "Medium"
	DifficultyHard   ChallengeDifficulty = "Hard"
)

type Challenge struct {
	ID                 string              `json:"id"`
	Title              string              `json:"title"`
	Slug               string              `json:"slug"`
	Description        string              `json:"description"`
	Difficulty         ChallengeDifficulty `json:"difficulty"`
	SupportedLanguages []Language          `json:"supported_languages"`
	StarterCode        []StarterCode       `json:"starter_code,omitempty"`
	TestCases          []TestCase          `json:"test_cases"`
	EntryPoint         string              `json:"entry_point"`
	CreatorID          string              `json:"creator_id"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

type StarterCode struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

type TestCase struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// LanguageByName returns the challenge's language entry for a tag, if supported.
func (c *Challenge) LanguageByName(name string) (Language, bool) {
	for _, lang := range c.SupportedLanguages {
		if lang.Name == name {
			return lang, true
		}
	}
	return Language{}, false
}
