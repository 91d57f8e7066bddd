package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/davral/siteworks/internal/model"
	"github.com/davral/siteworks/internal/repository"
	"github.com/davral/siteworks/internal/store"
)

func newProjectService(t *testing.T) *ProjectService {
	t.Helper()
	s := store.NewMemoryStore()
	return NewProjectService(
		repository.NewProjectRepository(s, zerolog.Nop()),
		repository.NewProgressRepository(s, zerolog.Nop()),
		zerolog.Nop(),
	)
}

var (
	leader  = model.Principal{UserID: "l1", Name: "Asel", Role: model.RoleLeader}
	leader2 = model.Principal{UserID: "l2", Name: "Bolat", Role: model.RoleLeader}
	checker = model.Principal{UserID: "c1", Name: "Dana", Role: model.RoleChecker}
	owner   = model.Principal{UserID: "o1", Name: "Erlan", Role: model.RoleOwner}
	admin   = model.Principal{UserID: "a1", Name: "Root", Role: model.RoleAdmin}
)

func TestProjectServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("leader is always assigned to their own project", func(t *testing.T) {
		s := newProjectService(t)
		created, err := s.CreateProject(ctx, CreateProjectInput{
			Name: "Ring road", LeaderID: "someone-else", TotalWork: 1000, Principal: leader,
		})
		require.NoError(t, err)
		require.Equal(t, leader.UserID, created.LeaderID)
	})

	t.Run("admin assigns any leader", func(t *testing.T) {
		s := newProjectService(t)
		created, err := s.CreateProject(ctx, CreateProjectInput{
			Name: "Ring road", LeaderID: "l2", TotalWork: 1000, Principal: admin,
		})
		require.NoError(t, err)
		require.Equal(t, "l2", created.LeaderID)
	})

	t.Run("checker and owner may not create", func(t *testing.T) {
		s := newProjectService(t)
		for _, p := range []model.Principal{checker, owner} {
			_, err := s.CreateProject(ctx, CreateProjectInput{Name: "x", TotalWork: 1, Principal: p})
			require.ErrorIs(t, err, ErrPermissionDenied)
		}
	})

	t.Run("blank name and negative work are rejected", func(t *testing.T) {
		s := newProjectService(t)
		_, err := s.CreateProject(ctx, CreateProjectInput{Name: "  ", TotalWork: 1, Principal: leader})
		require.ErrorIs(t, err, ErrInvalidInput)
		_, err = s.CreateProject(ctx, CreateProjectInput{Name: "x", TotalWork: -1, Principal: leader})
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestProjectServiceProgress(t *testing.T) {
	ctx := context.Background()

	t.Run("completed work accumulates and percentage clamps", func(t *testing.T) {
		s := newProjectService(t)
		project, err := s.CreateProject(ctx, CreateProjectInput{
			Name: "NH-44 section 3", TotalWork: 1000, Principal: leader,
		})
		require.NoError(t, err)
		require.Equal(t, 0, CompletionPercentage(*project))

		_, err = s.RecordProgress(ctx, RecordProgressInput{
			ProjectID: project.ID, CompletedWork: 250, TimeTaken: 6, Principal: leader,
		})
		require.NoError(t, err)

		got, err := s.GetProject(ctx, leader, project.ID)
		require.NoError(t, err)
		require.Equal(t, 250.0, got.CompletedWork)
		require.Equal(t, 25, CompletionPercentage(*got))

		_, err = s.RecordProgress(ctx, RecordProgressInput{
			ProjectID: project.ID, CompletedWork: 800, TimeTaken: 9, Principal: leader,
		})
		require.NoError(t, err)

		got, err = s.GetProject(ctx, leader, project.ID)
		require.NoError(t, err)
		require.Equal(t, 1050.0, got.CompletedWork)
		require.Equal(t, 100, CompletionPercentage(*got))
	})

	t.Run("progress log is append-only and ordered", func(t *testing.T) {
		s := newProjectService(t)
		project, err := s.CreateProject(ctx, CreateProjectInput{Name: "Ring road", TotalWork: 500, Principal: leader})
		require.NoError(t, err)

		for _, delta := range []float64{100, 50, 25} {
			_, err = s.RecordProgress(ctx, RecordProgressInput{ProjectID: project.ID, CompletedWork: delta, Principal: leader})
			require.NoError(t, err)
		}

		updates, err := s.ListProgress(ctx, leader, project.ID)
		require.NoError(t, err)
		require.Len(t, updates, 3)
		require.Equal(t, 100.0, updates[0].CompletedWork)
		require.Equal(t, 25.0, updates[2].CompletedWork)
	})

	t.Run("negative delta is rejected", func(t *testing.T) {
		s := newProjectService(t)
		project, err := s.CreateProject(ctx, CreateProjectInput{Name: "Ring road", TotalWork: 500, Principal: leader})
		require.NoError(t, err)
		_, err = s.RecordProgress(ctx, RecordProgressInput{ProjectID: project.ID, CompletedWork: -10, Principal: leader})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("another leader may not record on the project", func(t *testing.T) {
		s := newProjectService(t)
		project, err := s.CreateProject(ctx, CreateProjectInput{Name: "Ring road", TotalWork: 500, Principal: leader})
		require.NoError(t, err)
		_, err = s.RecordProgress(ctx, RecordProgressInput{ProjectID: project.ID, CompletedWork: 10, Principal: leader2})
		require.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("checker may not record progress", func(t *testing.T) {
		s := newProjectService(t)
		project, err := s.CreateProject(ctx, CreateProjectInput{Name: "Ring road", TotalWork: 500, Principal: leader})
		require.NoError(t, err)
		_, err = s.RecordProgress(ctx, RecordProgressInput{ProjectID: project.ID, CompletedWork: 10, Principal: checker})
		require.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("invalid photo data url is rejected", func(t *testing.T) {
		s := newProjectService(t)
		project, err := s.CreateProject(ctx, CreateProjectInput{Name: "Ring road", TotalWork: 500, Principal: leader})
		require.NoError(t, err)
		_, err = s.RecordProgress(ctx, RecordProgressInput{
			ProjectID:     project.ID,
			CompletedWork: 10,
			Photos:        []model.PhotoWithMetadata{{DataURL: "http://not-a-data-url"}},
			Principal:     leader,
		})
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestProjectServiceVisibility(t *testing.T) {
	ctx := context.Background()
	s := newProjectService(t)

	mine, err := s.CreateProject(ctx, CreateProjectInput{Name: "Mine", TotalWork: 100, Principal: leader})
	require.NoError(t, err)
	_, err = s.CreateProject(ctx, CreateProjectInput{Name: "Theirs", TotalWork: 100, Principal: leader2})
	require.NoError(t, err)

	t.Run("leader sees only own projects", func(t *testing.T) {
		projects, err := s.ListProjects(ctx, leader)
		require.NoError(t, err)
		require.Len(t, projects, 1)
		require.Equal(t, mine.ID, projects[0].ID)
	})

	t.Run("checker sees all projects", func(t *testing.T) {
		projects, err := s.ListProjects(ctx, checker)
		require.NoError(t, err)
		require.Len(t, projects, 2)
	})

	t.Run("leader may not read another leader's project", func(t *testing.T) {
		_, err := s.GetProject(ctx, leader2, mine.ID)
		require.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("only admin deletes", func(t *testing.T) {
		require.ErrorIs(t, s.DeleteProject(ctx, leader, mine.ID), ErrPermissionDenied)
		require.NoError(t, s.DeleteProject(ctx, admin, mine.ID))
		require.ErrorIs(t, s.DeleteProject(ctx, admin, mine.ID), ErrNotFound)
	})
}
