package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/davral/siteworks/internal/model"
	"github.com/davral/siteworks/internal/repository"
)

// SubmissionService runs the timed final-submission workflow. Expiry is
// always derived from the absolute start timestamp and the fixed duration,
// never from accumulated ticks: the background poller and the lazy checks on
// every read reach the same verdict regardless of how late they run.
type SubmissionService struct {
	submissions *repository.SubmissionRepository
	projects    *repository.ProjectRepository
	duration    int // seconds
	now         func() time.Time
	log         zerolog.Logger
}

func NewSubmissionService(submissions *repository.SubmissionRepository, projects *repository.ProjectRepository, timerSeconds int, log zerolog.Logger) *SubmissionService {
	return &SubmissionService{
		submissions: submissions,
		projects:    projects,
		duration:    timerSeconds,
		now:         func() time.Time { return time.Now().UTC() },
		log:         log,
	}
}

// Start opens a final submission for the leader's project. At most one
// in_progress submission may exist per leader; a second start fails with a
// conflict.
func (s *SubmissionService) Start(ctx context.Context, principal model.Principal, projectID string) (*model.FinalSubmission, error) {
	if !principal.IsLeader() {
		return nil, ErrPermissionDenied
	}
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if project.LeaderID != principal.UserID {
		return nil, ErrPermissionDenied
	}

	created, err := s.submissions.Create(ctx, model.FinalSubmission{
		ProjectID:      project.ID,
		LeaderID:       principal.UserID,
		Status:         model.SubmissionInProgress,
		TimerStartedAt: s.now(),
		TimerDuration:  s.duration,
	})
	if err != nil {
		if errors.Is(err, repository.ErrSubmissionActive) {
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return nil, err
	}
	s.log.Info().Str("submission_id", created.ID).Str("project_id", project.ID).Int("timer_s", s.duration).Msg("final submission started")
	return created, nil
}

func (s *SubmissionService) Get(ctx context.Context, principal model.Principal, id string) (*model.FinalSubmission, error) {
	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !principal.SeesAllProjects() && submission.LeaderID != principal.UserID {
		return nil, ErrPermissionDenied
	}
	if _, err := s.expireIfDue(ctx, submission); err != nil {
		return nil, err
	}
	return submission, nil
}

// Active returns the caller's current in_progress submission, or not-found
// when there is none (or the last one just expired).
func (s *SubmissionService) Active(ctx context.Context, principal model.Principal) (*model.FinalSubmission, error) {
	if !principal.IsLeader() {
		return nil, ErrPermissionDenied
	}
	submission, err := s.submissions.GetActiveByLeader(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	expired, err := s.expireIfDue(ctx, submission)
	if err != nil {
		return nil, err
	}
	if expired {
		return nil, ErrNotFound
	}
	return submission, nil
}

// AttachImage adds one image to an in_progress submission, stamped with its
// own attach time. Attaching to an expired or completed submission fails.
func (s *SubmissionService) AttachImage(ctx context.Context, principal model.Principal, id, dataURL string) (*model.FinalSubmission, error) {
	if _, err := ParseDataURL(dataURL); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.mutateOpen(ctx, principal, id, func(submission *model.FinalSubmission) {
		submission.Images = append(submission.Images, model.TimestampedImage{
			DataURL:   dataURL,
			Timestamp: s.now(),
		})
	})
}

// UpdateNotes replaces the notes of an in_progress submission.
func (s *SubmissionService) UpdateNotes(ctx context.Context, principal model.Principal, id, notes string) (*model.FinalSubmission, error) {
	return s.mutateOpen(ctx, principal, id, func(submission *model.FinalSubmission) {
		submission.Notes = notes
	})
}

// Complete closes an in_progress submission before its timer runs out,
// freezing the attached images and notes.
func (s *SubmissionService) Complete(ctx context.Context, principal model.Principal, id string) (*model.FinalSubmission, error) {
	submission, err := s.openSubmission(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	endedAt := s.now()
	submission.Status = model.SubmissionCompleted
	submission.TimerEndedAt = &endedAt
	if err := s.submissions.Update(ctx, *submission); err != nil {
		return nil, err
	}
	s.log.Info().Str("submission_id", submission.ID).Msg("final submission completed")
	return submission, nil
}

func (s *SubmissionService) ListByLeader(ctx context.Context, principal model.Principal, leaderID string) ([]model.FinalSubmission, error) {
	if !principal.SeesAllProjects() && principal.UserID != leaderID {
		return nil, ErrPermissionDenied
	}
	submissions, err := s.submissions.GetByLeader(ctx, leaderID)
	if err != nil {
		return nil, err
	}
	for i := range submissions {
		if _, err := s.expireIfDue(ctx, &submissions[i]); err != nil {
			return nil, err
		}
	}
	return submissions, nil
}

func (s *SubmissionService) mutateOpen(ctx context.Context, principal model.Principal, id string, apply func(*model.FinalSubmission)) (*model.FinalSubmission, error) {
	submission, err := s.openSubmission(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	apply(submission)
	if err := s.submissions.Update(ctx, *submission); err != nil {
		return nil, err
	}
	return submission, nil
}

// openSubmission loads the submission and verifies it is still effectively
// in progress, persisting an expiry discovered on the way.
func (s *SubmissionService) openSubmission(ctx context.Context, principal model.Principal, id string) (*model.FinalSubmission, error) {
	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if submission.LeaderID != principal.UserID {
		return nil, ErrPermissionDenied
	}
	expired, err := s.expireIfDue(ctx, submission)
	if err != nil {
		return nil, err
	}
	if expired || submission.Status != model.SubmissionInProgress {
		return nil, ErrSubmissionClosed
	}
	return submission, nil
}

func (s *SubmissionService) expireIfDue(ctx context.Context, submission *model.FinalSubmission) (bool, error) {
	if submission.Status != model.SubmissionInProgress {
		return false, nil
	}
	now := s.now()
	if submission.RemainingAt(now) > 0 {
		return false, nil
	}
	submission.Status = model.SubmissionExpired
	submission.TimerEndedAt = &now
	if err := s.submissions.Update(ctx, *submission); err != nil {
		return false, err
	}
	s.log.Info().Str("submission_id", submission.ID).Msg("final submission expired")
	return true, nil
}

// ExpireDue sweeps all in_progress submissions and expires the overdue
// ones. Called from the poller and safe to call at any time.
func (s *SubmissionService) ExpireDue(ctx context.Context) error {
	submissions, err := s.submissions.GetAll(ctx)
	if err != nil {
		return err
	}
	for i := range submissions {
		if _, err := s.expireIfDue(ctx, &submissions[i]); err != nil {
			return err
		}
	}
	return nil
}

// RunExpiryPoller drives ExpireDue on a fixed interval until ctx is
// cancelled. Each tick re-derives remaining time from absolute timestamps,
// so delayed ticks only delay detection, never skew it.
func (s *SubmissionService) RunExpiryPoller(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.ExpireDue(ctx); err != nil {
				s.log.Error().Err(err).Msg("expiry sweep failed")
			}
		}
	}
}
