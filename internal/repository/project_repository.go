package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/davral/siteworks/internal/model"
	"github.com/davral/siteworks/internal/store"
)

type ProjectRepository struct {
	c *collection[model.Project]
}

func NewProjectRepository(s store.CollectionStore, log zerolog.Logger) *ProjectRepository {
	return &ProjectRepository{c: newCollection[model.Project](s, store.KeyProjects, log)}
}

func (r *ProjectRepository) Create(ctx context.Context, project model.Project) (*model.Project, error) {
	project.ID = uuid.NewString()
	project.CreatedAt = time.Now().UTC()
	err := r.c.mutate(ctx, func(projects []model.Project) ([]model.Project, error) {
		return append(projects, project), nil
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) GetAll(ctx context.Context) ([]model.Project, error) {
	return r.c.load(ctx)
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*model.Project, error) {
	projects, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, project := range projects {
		if project.ID == id {
			return &project, nil
		}
	}
	return nil, ErrNotFound
}

func (r *ProjectRepository) GetByLeader(ctx context.Context, leaderID string) ([]model.Project, error) {
	projects, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]model.Project, 0, len(projects))
	for _, project := range projects {
		if project.LeaderID == leaderID {
			matched = append(matched, project)
		}
	}
	return matched, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project model.Project) error {
	return r.c.mutate(ctx, func(projects []model.Project) ([]model.Project, error) {
		for i := range projects {
			if projects[i].ID == project.ID {
				projects[i] = project
				return projects, nil
			}
		}
		return nil, ErrNotFound
	})
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) (bool, error) {
	removed := false
	err := r.c.mutate(ctx, func(projects []model.Project) ([]model.Project, error) {
		kept := projects[:0]
		for _, project := range projects {
			if project.ID == id {
				removed = true
				continue
			}
			kept = append(kept, project)
		}
		return kept, nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}
