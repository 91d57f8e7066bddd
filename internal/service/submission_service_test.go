package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/davral/siteworks/internal/model"
	"github.com/davral/siteworks/internal/repository"
	"github.com/davral/siteworks/internal/store"
)

const photoPNG = "data:image/png;base64,aGVsbG8="

func newSubmissionFixture(t *testing.T) (*SubmissionService, *model.Project) {
	t.Helper()
	s := store.NewMemoryStore()
	projects := repository.NewProjectRepository(s, zerolog.Nop())
	submissions := repository.NewSubmissionRepository(s, zerolog.Nop())

	project, err := projects.Create(context.Background(), model.Project{
		Name: "Ring road", LeaderID: leader.UserID, TotalWork: 1000,
	})
	require.NoError(t, err)

	return NewSubmissionService(submissions, projects, 600, zerolog.Nop()), project
}

func TestSubmissionLifecycle(t *testing.T) {
	ctx := context.Background()
	started := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("start opens a ten minute window", func(t *testing.T) {
		s, project := newSubmissionFixture(t)
		s.now = func() time.Time { return started }

		submission, err := s.Start(ctx, leader, project.ID)
		require.NoError(t, err)
		require.Equal(t, model.SubmissionInProgress, submission.Status)
		require.Equal(t, 600, submission.TimerDuration)
		require.Equal(t, 600*time.Second, submission.RemainingAt(started))
	})

	t.Run("only the project's leader may start", func(t *testing.T) {
		s, project := newSubmissionFixture(t)
		_, err := s.Start(ctx, leader2, project.ID)
		require.ErrorIs(t, err, ErrPermissionDenied)
		_, err = s.Start(ctx, checker, project.ID)
		require.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("a second concurrent start conflicts", func(t *testing.T) {
		s, project := newSubmissionFixture(t)
		_, err := s.Start(ctx, leader, project.ID)
		require.NoError(t, err)
		_, err = s.Start(ctx, leader, project.ID)
		require.ErrorIs(t, err, ErrConflict)
	})

	t.Run("images attach with their own timestamps while open", func(t *testing.T) {
		s, project := newSubmissionFixture(t)
		s.now = func() time.Time { return started }
		submission, err := s.Start(ctx, leader, project.ID)
		require.NoError(t, err)

		s.now = func() time.Time { return started.Add(2 * time.Minute) }
		updated, err := s.AttachImage(ctx, leader, submission.ID, photoPNG)
		require.NoError(t, err)
		require.Len(t, updated.Images, 1)
		require.Equal(t, started.Add(2*time.Minute), updated.Images[0].Timestamp)
	})

	t.Run("complete freezes the submission before the deadline", func(t *testing.T) {
		s, project := newSubmissionFixture(t)
		s.now = func() time.Time { return started }
		submission, err := s.Start(ctx, leader, project.ID)
		require.NoError(t, err)

		s.now = func() time.Time { return started.Add(5 * time.Minute) }
		completed, err := s.Complete(ctx, leader, submission.ID)
		require.NoError(t, err)
		require.Equal(t, model.SubmissionCompleted, completed.Status)
		require.NotNil(t, completed.TimerEndedAt)

		_, err = s.AttachImage(ctx, leader, submission.ID, photoPNG)
		require.ErrorIs(t, err, ErrSubmissionClosed)
	})
}

func TestSubmissionExpiry(t *testing.T) {
	ctx := context.Background()
	started := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("still open one second before the deadline", func(t *testing.T) {
		s, project := newSubmissionFixture(t)
		s.now = func() time.Time { return started }
		submission, err := s.Start(ctx, leader, project.ID)
		require.NoError(t, err)

		s.now = func() time.Time { return started.Add(599 * time.Second) }
		got, err := s.Get(ctx, leader, submission.ID)
		require.NoError(t, err)
		require.Equal(t, model.SubmissionInProgress, got.Status)
	})

	t.Run("reads past the deadline observe expiry", func(t *testing.T) {
		s, project := newSubmissionFixture(t)
		s.now = func() time.Time { return started }
		submission, err := s.Start(ctx, leader, project.ID)
		require.NoError(t, err)

		s.now = func() time.Time { return started.Add(601 * time.Second) }
		got, err := s.Get(ctx, leader, submission.ID)
		require.NoError(t, err)
		require.Equal(t, model.SubmissionExpired, got.Status)
		require.NotNil(t, got.TimerEndedAt)

		_, err = s.AttachImage(ctx, leader, submission.ID, photoPNG)
		require.ErrorIs(t, err, ErrSubmissionClosed)
		_, err = s.UpdateNotes(ctx, leader, submission.ID, "too late")
		require.ErrorIs(t, err, ErrSubmissionClosed)
		_, err = s.Complete(ctx, leader, submission.ID)
		require.ErrorIs(t, err, ErrSubmissionClosed)
	})

	t.Run("active reports nothing after expiry and a new start succeeds", func(t *testing.T) {
		s, project := newSubmissionFixture(t)
		s.now = func() time.Time { return started }
		_, err := s.Start(ctx, leader, project.ID)
		require.NoError(t, err)

		s.now = func() time.Time { return started.Add(11 * time.Minute) }
		_, err = s.Active(ctx, leader)
		require.ErrorIs(t, err, ErrNotFound)

		_, err = s.Start(ctx, leader, project.ID)
		require.NoError(t, err)
	})

	t.Run("sweep expires overdue submissions", func(t *testing.T) {
		s, project := newSubmissionFixture(t)
		s.now = func() time.Time { return started }
		submission, err := s.Start(ctx, leader, project.ID)
		require.NoError(t, err)

		s.now = func() time.Time { return started.Add(20 * time.Minute) }
		require.NoError(t, s.ExpireDue(ctx))

		list, err := s.ListByLeader(ctx, checker, leader.UserID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, submission.ID, list[0].ID)
		require.Equal(t, model.SubmissionExpired, list[0].Status)
	})
}
