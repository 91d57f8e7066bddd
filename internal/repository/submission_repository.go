package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/davral/siteworks/internal/model"
	"github.com/davral/siteworks/internal/store"
)

type SubmissionRepository struct {
	c *collection[model.FinalSubmission]
}

func NewSubmissionRepository(s store.CollectionStore, log zerolog.Logger) *SubmissionRepository {
	return &SubmissionRepository{c: newCollection[model.FinalSubmission](s, store.KeyFinalSubmissions, log)}
}

func (r *SubmissionRepository) Create(ctx context.Context, submission model.FinalSubmission) (*model.FinalSubmission, error) {
	submission.ID = uuid.NewString()
	submission.CreatedAt = time.Now().UTC()
	err := r.c.mutate(ctx, func(submissions []model.FinalSubmission) ([]model.FinalSubmission, error) {
		// Single-flight per leader: a second active submission is rejected
		// inside the collection lock, so two concurrent starts cannot both
		// slip through.
		for _, existing := range submissions {
			if existing.LeaderID == submission.LeaderID && existing.Status == model.SubmissionInProgress {
				return nil, ErrSubmissionActive
			}
		}
		return append(submissions, submission), nil
	})
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *SubmissionRepository) GetAll(ctx context.Context) ([]model.FinalSubmission, error) {
	return r.c.load(ctx)
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*model.FinalSubmission, error) {
	submissions, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, submission := range submissions {
		if submission.ID == id {
			return &submission, nil
		}
	}
	return nil, ErrNotFound
}

func (r *SubmissionRepository) GetByLeader(ctx context.Context, leaderID string) ([]model.FinalSubmission, error) {
	submissions, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]model.FinalSubmission, 0, len(submissions))
	for _, submission := range submissions {
		if submission.LeaderID == leaderID {
			matched = append(matched, submission)
		}
	}
	return matched, nil
}

// GetActiveByLeader returns the leader's in_progress submission, if any.
func (r *SubmissionRepository) GetActiveByLeader(ctx context.Context, leaderID string) (*model.FinalSubmission, error) {
	submissions, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, submission := range submissions {
		if submission.LeaderID == leaderID && submission.Status == model.SubmissionInProgress {
			return &submission, nil
		}
	}
	return nil, ErrNotFound
}

func (r *SubmissionRepository) Update(ctx context.Context, submission model.FinalSubmission) error {
	return r.c.mutate(ctx, func(submissions []model.FinalSubmission) ([]model.FinalSubmission, error) {
		for i := range submissions {
			if submissions[i].ID == submission.ID {
				submissions[i] = submission
				return submissions, nil
			}
		}
		return nil, ErrNotFound
	})
}
