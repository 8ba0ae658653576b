package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"codeforge/internal/domain/model"
	"codeforge/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// LeaderboardService serves the accepted-submission ranking for a challenge,
// fastest execution first, through a redis cache. Cache trouble degrades to
// the database, never to an error.
type LeaderboardService struct {
	challengeRepo  repository.ChallengeRepository
	submissionRepo repository.SubmissionRepository
	rdb            *redis.Client
	ttl            time.Duration
}

func NewLeaderboardService(
	challengeRepo repository.ChallengeRepository,
	submissionRepo repository.SubmissionRepository,
	rdb *redis.Client,
	ttl time.Duration,
) *LeaderboardService {
	return &LeaderboardService{
		challengeRepo:  challengeRepo,
		submissionRepo: submissionRepo,
		rdb:            rdb,
		ttl:            ttl,
	}
}

func leaderboardKey(challengeID string) string {
	return "leaderboard:" + challengeID
}

func (s *LeaderboardService) Get(ctx context.Context, challengeSlug string) ([]model.LeaderboardEntry, error) {
	challenge, err := s.challengeRepo.FindBySlug(ctx, challengeSlug)
	if err != nil {
		return nil, fmt.Errorf("challenge not found: %w", err)
	}

	key := leaderboardKey(challenge.ID)
	if s.rdb != nil {
		raw, err := s.rdb.Get(ctx, key).Bytes()
		if err == nil {
			var entries []model.LeaderboardEntry
			if json.Unmarshal(raw, &entries) == nil {
				return entries, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			zap.S().Warnw("leaderboard cache read failed", "key", key, "err", err)
		}
	}

	entries, err := s.submissionRepo.AcceptedForChallenge(ctx, challenge.ID)
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(entries); err == nil {
			if err := s.rdb.Set(ctx, key, raw, s.ttl).Err(); err != nil {
				zap.S().Warnw("leaderboard cache write failed", "key", key, "err", err)
			}
		}
	}
	return entries, nil
}

// Invalidate drops the cached ranking for a challenge.
func (s *LeaderboardService) Invalidate(ctx context.Context, challengeID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, leaderboardKey(challengeID)).Err(); err != nil {
		zap.S().Warnw("leaderboard cache invalidation failed", "challenge", challengeID, "err", err)
	}
}
