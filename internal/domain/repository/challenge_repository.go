package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"codeforge/internal/common"
	"codeforge/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type ChallengeRepository interface {
	Create(ctx context.Context, challenge *model.Challenge) error
	Update(ctx context.Context, challenge *model.Challenge) error
	Delete(ctx context.Context, slug string) error
	FindBySlug(ctx context.Context, slug string) (*model.Challenge, error)
	List(ctx context.Context, limit int) ([]model.Challenge, error)
}

type pgChallengeRepository struct {
	db *sql.DB
}

func NewPgChallengeRepository(db *sql.DB) ChallengeRepository {
	return &pgChallengeRepository{db: db}
}

// Structured challenge fields (languages, starter code, test cases) are kept
// as jsonb columns; the core only ever reads a challenge whole.

func (r *pgChallengeRepository) Create(ctx context.Context, c *model.Challenge) error {
	languages, starter, cases, err := marshalChallengeFields(c)
	if err != nil {
		return err
	}

	query := `INSERT INTO challenges (id, title, slug, description, difficulty, supported_languages, starter_code, test_cases, entry_point, creator_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.db.ExecContext(ctx, query, c.ID, c.Title, c.Slug, c.Description, c.Difficulty, languages, starter, cases, c.EntryPoint, c.CreatorID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint for slug
			return fmt.Errorf("challenge with this slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgChallengeRepository.Create: %w", err)
	}
	return nil
}

func (r *pgChallengeRepository) Update(ctx context.Context, c *model.Challenge) error {
	languages, starter, cases, err := marshalChallengeFields(c)
	if err != nil {
		return err
	}

	query := `UPDATE challenges SET
	            title = $1, description = $2, difficulty = $3, supported_languages = $4,
	            starter_code = $5, test_cases = $6, entry_point = $7, updated_at = CURRENT_TIMESTAMP
	          WHERE slug = $8`
	result, err := r.db.ExecContext(ctx, query, c.Title, c.Description, c.Difficulty, languages, starter, cases, c.EntryPoint, c.Slug)
	if err != nil {
		return fmt.Errorf("pgChallengeRepository.Update: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgChallengeRepository) Delete(ctx context.Context, slug string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM challenges WHERE slug = $1`, slug)
	if err != nil {
		return fmt.Errorf("pgChallengeRepository.Delete: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgChallengeRepository) FindBySlug(ctx context.Context, slug string) (*model.Challenge, error) {
	query := `SELECT id, title, slug, description, difficulty, supported_languages, starter_code, test_cases, entry_point, creator_id, created_at, updated_at
	          FROM challenges WHERE slug = $1`
	row := r.db.QueryRowContext(ctx, query, slug)

	challenge, err := scanChallenge(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgChallengeRepository.FindBySlug: %w", err)
	}
	return challenge, nil
}

func (r *pgChallengeRepository) List(ctx context.Context, limit int) ([]model.Challenge, error) {
	query := `SELECT id, title, slug, description, difficulty, supported_languages, starter_code, test_cases, entry_point, creator_id, created_at, updated_at
	          FROM challenges ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("pgChallengeRepository.List query: %w", err)
	}
	defer rows.Close()

	challenges := []model.Challenge{}
	for rows.Next() {
		challenge, err := scanChallenge(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("pgChallengeRepository.List scan: %w", err)
		}
		challenges = append(challenges, *challenge)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgChallengeRepository.List rows.Err: %w", err)
	}
	return challenges, nil
}

func marshalChallengeFields(c *model.Challenge) (languages, starter, cases []byte, err error) {
	if languages, err = json.Marshal(c.SupportedLanguages); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal supported_languages: %w", err)
	}
	if starter, err = json.Marshal(c.StarterCode); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal starter_code: %w", err)
	}
	if cases, err = json.Marshal(c.TestCases); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal test_cases: %w", err)
	}
	return languages, starter, cases, nil
}

func scanChallenge(scan func(dest ...any) error) (*model.Challenge, error) {
	var (
		challenge model.Challenge
		languages []byte
		starter   []byte
		cases     []byte
	)
	err := scan(
		&challenge.ID, &challenge.Title, &challenge.Slug, &challenge.Description, &challenge.Difficulty,
		&languages, &starter, &cases, &challenge.EntryPoint, &challenge.CreatorID,
		&challenge.CreatedAt, &challenge.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(languages, &challenge.SupportedLanguages); err != nil {
		return nil, fmt.Errorf("unmarshal supported_languages: %w", err)
	}
	if err := json.Unmarshal(starter, &challenge.StarterCode); err != nil {
		return nil, fmt.Errorf("unmarshal starter_code: %w", err)
	}
	if err := json.Unmarshal(cases, &challenge.TestCases); err != nil {
		return nil, fmt.Errorf("unmarshal test_cases: %w", err)
	}
	return &challenge, nil
}
