package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"codeforge/internal/common"
	"codeforge/internal/domain/model"
)

type SubmissionRepository interface {
	// Create persists the submission and computes its consecutive-failure
	// count from the latest prior submission of the same (user, challenge)
	// pair: 0 when accepted, otherwise previous+1. The count and creation
	// time are filled in on the passed submission.
	Create(ctx context.Context, sub *model.Submission, accepted bool) error
	LatestForUserChallenge(ctx context.Context, userID, challengeID string) (*model.Submission, error)
	ListForUserChallenge(ctx context.Context, userID, challengeID string, limit int) ([]model.Submission, error)
	ListForChallenge(ctx context.Context, challengeID string, limit int) ([]model.Submission, error)
	AcceptedForChallenge(ctx context.Context, challengeID string) ([]model.LeaderboardEntry, error)
}

type pgSubmissionRepository struct {
	db *sql.DB
}

func NewPgSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &pgSubmissionRepository{db: db}
}

func (r *pgSubmissionRepository) Create(ctx context.Context, sub *model.Submission, accepted bool) error {
	// The streak is computed inside the INSERT from the latest prior row, so
	// the recurrence holds per write without a separate read-then-write step.
	query := `INSERT INTO submissions
	            (id, user_id, challenge_id, code, language, status, execution_time, memory, token, consecutive_failures)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9,
	            CASE WHEN $10 THEN 0
	                 ELSE 1 + COALESCE((SELECT s.consecutive_failures FROM submissions s
	                                    WHERE s.user_id = $2 AND s.challenge_id = $3
	                                    ORDER BY s.created_at DESC LIMIT 1), 0)
	            END)
	          RETURNING consecutive_failures, created_at`
	err := r.db.QueryRowContext(ctx, query,
		sub.ID, sub.UserID, sub.ChallengeID, sub.Code, sub.Language, sub.Status,
		sub.ExecutionTime, sub.Memory, sub.Token, accepted,
	).Scan(&sub.ConsecutiveFailures, &sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.Create: %w", err)
	}
	return nil
}

func (r *pgSubmissionRepository) LatestForUserChallenge(ctx context.Context, userID, challengeID string) (*model.Submission, error) {
	query := selectSubmission + ` WHERE user_id = $1 AND challenge_id = $2
	          ORDER BY created_at DESC LIMIT 1`
	sub := &model.Submission{}
	err := r.db.QueryRowContext(ctx, query, userID, challengeID).Scan(submissionFields(sub)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSubmissionRepository.LatestForUserChallenge: %w", err)
	}
	return sub, nil
}

func (r *pgSubmissionRepository) ListForUserChallenge(ctx context.Context, userID, challengeID string, limit int) ([]model.Submission, error) {
	query := selectSubmission + ` WHERE user_id = $1 AND challenge_id = $2
	          ORDER BY created_at DESC LIMIT $3`
	return r.list(ctx, query, userID, challengeID, limit)
}

func (r *pgSubmissionRepository) ListForChallenge(ctx context.Context, challengeID string, limit int) ([]model.Submission, error) {
	query := selectSubmission + ` WHERE challenge_id = $1
	          ORDER BY created_at DESC LIMIT $2`
	return r.list(ctx, query, challengeID, limit)
}

func (r *pgSubmissionRepository) AcceptedForChallenge(ctx context.Context, challengeID string) ([]model.LeaderboardEntry, error) {
	query := `SELECT user_id, status, execution_time, created_at
	          FROM submissions
	          WHERE challenge_id = $1 AND status = 'Accepted'
	          ORDER BY execution_time ASC NULLS LAST, created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, challengeID)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.AcceptedForChallenge query: %w", err)
	}
	defer rows.Close()

	entries := []model.LeaderboardEntry{}
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Status, &e.ExecutionTime, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.AcceptedForChallenge scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.AcceptedForChallenge rows.Err: %w", err)
	}
	return entries, nil
}

const selectSubmission = `SELECT id, user_id, challenge_id, code, language, status, execution_time, memory, token, consecutive_failures, created_at
	          FROM submissions`

func submissionFields(sub *model.Submission) []any {
	return []any{
		&sub.ID, &sub.UserID, &sub.ChallengeID, &sub.Code, &sub.Language, &sub.Status,
		&sub.ExecutionTime, &sub.Memory, &sub.Token, &sub.ConsecutiveFailures, &sub.CreatedAt,
	}
}

func (r *pgSubmissionRepository) list(ctx context.Context, query string, args ...any) ([]model.Submission, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.list query: %w", err)
	}
	defer rows.Close()

	subs := []model.Submission{}
	for rows.Next() {
		var sub model.Submission
		if err := rows.Scan(submissionFields(&sub)...); err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.list scan: %w", err)
		}
		subs = append(subs, sub)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.list rows.Err: %w", err)
	}
	return subs, nil
}
