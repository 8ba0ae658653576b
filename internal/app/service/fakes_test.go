package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"codeforge/internal/common"
	"codeforge/internal/domain/model"
	"codeforge/internal/judge"
)

// In-memory doubles for the repositories and the judge executor, mirroring
// the persistence contracts closely enough to assert the pipeline invariants.

type fakeChallengeRepo struct {
	challenges map[string]*model.Challenge // by slug
}

func newFakeChallengeRepo(challenges ...*model.Challenge) *fakeChallengeRepo {
	repo := &fakeChallengeRepo{challenges: map[string]*model.Challenge{}}
	for _, c := range challenges {
		repo.challenges[c.Slug] = c
	}
	return repo
}

func (r *fakeChallengeRepo) Create(_ context.Context, c *model.Challenge) error {
	if _, exists := r.challenges[c.Slug]; exists {
		return common.ErrConflict
	}
	r.challenges[c.Slug] = c
	return nil
}

func (r *fakeChallengeRepo) Update(_ context.Context, c *model.Challenge) error {
	if _, exists := r.challenges[c.Slug]; !exists {
		return common.ErrNotFound
	}
	r.challenges[c.Slug] = c
	return nil
}

func (r *fakeChallengeRepo) Delete(_ context.Context, slug string) error {
	if _, exists := r.challenges[slug]; !exists {
		return common.ErrNotFound
	}
	delete(r.challenges, slug)
	return nil
}

func (r *fakeChallengeRepo) FindBySlug(_ context.Context, slug string) (*model.Challenge, error) {
	c, ok := r.challenges[slug]
	if !ok {
		return nil, common.ErrNotFound
	}
	return c, nil
}

func (r *fakeChallengeRepo) List(_ context.Context, limit int) ([]model.Challenge, error) {
	out := []model.Challenge{}
	for _, c := range r.challenges {
		out = append(out, *c)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeSubmissionRepo struct {
	subs      []*model.Submission
	createErr error
	clock     time.Time
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{clock: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (r *fakeSubmissionRepo) Create(_ context.Context, sub *model.Submission, accepted bool) error {
	if r.createErr != nil {
		return r.createErr
	}
	if accepted {
		sub.ConsecutiveFailures = 0
	} else {
		prev := r.latest(sub.UserID, sub.ChallengeID)
		if prev != nil {
			sub.ConsecutiveFailures = prev.ConsecutiveFailures + 1
		} else {
			sub.ConsecutiveFailures = 1
		}
	}
	r.clock = r.clock.Add(time.Second)
	sub.CreatedAt = r.clock
	r.subs = append(r.subs, sub)
	return nil
}

func (r *fakeSubmissionRepo) latest(userID, challengeID string) *model.Submission {
	var latest *model.Submission
	for _, s := range r.subs {
		if s.UserID != userID || s.ChallengeID != challengeID {
			continue
		}
		if latest == nil || s.CreatedAt.After(latest.CreatedAt) {
			latest = s
		}
	}
	return latest
}

func (r *fakeSubmissionRepo) LatestForUserChallenge(_ context.Context, userID, challengeID string) (*model.Submission, error) {
	if latest := r.latest(userID, challengeID); latest != nil {
		return latest, nil
	}
	return nil, common.ErrNotFound
}

func (r *fakeSubmissionRepo) ListForUserChallenge(_ context.Context, userID, challengeID string, limit int) ([]model.Submission, error) {
	out := []model.Submission{}
	for _, s := range r.subs {
		if s.UserID == userID && s.ChallengeID == challengeID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeSubmissionRepo) ListForChallenge(_ context.Context, challengeID string, limit int) ([]model.Submission, error) {
	out := []model.Submission{}
	for _, s := range r.subs {
		if s.ChallengeID == challengeID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeSubmissionRepo) AcceptedForChallenge(_ context.Context, challengeID string) ([]model.LeaderboardEntry, error) {
	entries := []model.LeaderboardEntry{}
	for _, s := range r.subs {
		if s.ChallengeID == challengeID && s.Status == "Accepted" {
			entries = append(entries, model.LeaderboardEntry{
				UserID:        s.UserID,
				Status:        s.Status,
				ExecutionTime: s.ExecutionTime,
				CreatedAt:     s.CreatedAt,
			})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		ti, tj := entries[i].ExecutionTime, entries[j].ExecutionTime
		switch {
		case ti == nil:
			return false
		case tj == nil:
			return true
		case *ti != *tj:
			return *ti < *tj
		}
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	return entries, nil
}

// assertStreakInvariant checks the consecutive-failure recurrence over every
// persisted submission: 0 after an accepted attempt, otherwise previous+1.
func (r *fakeSubmissionRepo) assertStreakInvariant(t interface{ Fatalf(string, ...any) }) {
	prev := map[[2]string]int{}
	for _, s := range r.subs {
		key := [2]string{s.UserID, s.ChallengeID}
		if s.Status == "Accepted" {
			if s.ConsecutiveFailures != 0 {
				t.Fatalf("accepted submission %s has streak %d, want 0", s.ID, s.ConsecutiveFailures)
			}
		} else if want := prev[key] + 1; s.ConsecutiveFailures != want {
			t.Fatalf("submission %s has streak %d, want %d", s.ID, s.ConsecutiveFailures, want)
		}
		prev[key] = s.ConsecutiveFailures
	}
}

type fakeExecutor struct {
	result *judge.Result
	err    error
	calls  int
}

func (e *fakeExecutor) Execute(_ context.Context, _ string, _ int, _ string) (*judge.Result, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return e.result, nil
}

type fakeInvalidator struct {
	invalidated []string
}

func (f *fakeInvalidator) Invalidate(_ context.Context, challengeID string) {
	f.invalidated = append(f.invalidated, challengeID)
}

type fakeHintGenerator struct {
	hint    string
	err     error
	prompts []string
}

func (g *fakeHintGenerator) GenerateHint(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.hint, nil
}

var errBoom = errors.New("boom")
