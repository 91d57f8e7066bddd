package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/davral/siteworks/internal/model"
	"github.com/davral/siteworks/internal/repository"
)

type ProjectService struct {
	projects *repository.ProjectRepository
	progress *repository.ProgressRepository
	log      zerolog.Logger
}

func NewProjectService(projects *repository.ProjectRepository, progress *repository.ProgressRepository, log zerolog.Logger) *ProjectService {
	return &ProjectService{projects: projects, progress: progress, log: log}
}

type CreateProjectInput struct {
	Name      string
	LeaderID  string
	Workers   int
	TotalWork float64
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
	Location  string
	Principal model.Principal
}

func (s *ProjectService) CreateProject(ctx context.Context, input CreateProjectInput) (*model.Project, error) {
	switch {
	case input.Principal.IsAdmin():
		// admins assign any leader
	case input.Principal.IsLeader():
		input.LeaderID = input.Principal.UserID
	default:
		return nil, ErrPermissionDenied
	}

	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if input.LeaderID == "" {
		return nil, fmt.Errorf("%w: leader_id is required", ErrInvalidInput)
	}
	if input.TotalWork < 0 {
		return nil, fmt.Errorf("%w: total_work must not be negative", ErrInvalidInput)
	}
	if input.Workers < 0 {
		return nil, fmt.Errorf("%w: workers must not be negative", ErrInvalidInput)
	}

	created, err := s.projects.Create(ctx, model.Project{
		Name:      strings.TrimSpace(input.Name),
		LeaderID:  input.LeaderID,
		Workers:   input.Workers,
		TotalWork: input.TotalWork,
		Status:    input.Status,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Location:  input.Location,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("project_id", created.ID).Str("leader_id", created.LeaderID).Msg("project created")
	return created, nil
}

// ListProjects scopes leaders to their own projects; checker, owner and
// admin read across all leaders.
func (s *ProjectService) ListProjects(ctx context.Context, principal model.Principal) ([]model.Project, error) {
	if principal.SeesAllProjects() {
		return s.projects.GetAll(ctx)
	}
	return s.projects.GetByLeader(ctx, principal.UserID)
}

func (s *ProjectService) GetProject(ctx context.Context, principal model.Principal, id string) (*model.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !principal.SeesAllProjects() && project.LeaderID != principal.UserID {
		return nil, ErrPermissionDenied
	}
	return project, nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, principal model.Principal, id string) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	removed, err := s.projects.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}

type RecordProgressInput struct {
	ProjectID         string
	Date              time.Time
	CompletedWork     float64
	TimeTaken         float64
	Photos            []model.PhotoWithMetadata
	Notes             string
	VehicleID         string
	StartMeterReading string
	EndMeterReading   string
	Documents         []model.Document
	Principal         model.Principal
}

// RecordProgress appends one update to the project's progress log and
// advances the project's cumulative completed work by the update's delta.
// Updates are append-only; nothing here ever rewrites or removes history,
// which is what keeps completedWork monotonic.
func (s *ProjectService) RecordProgress(ctx context.Context, input RecordProgressInput) (*model.ProgressUpdate, error) {
	if !input.Principal.IsLeader() {
		return nil, ErrPermissionDenied
	}
	project, err := s.GetProject(ctx, input.Principal, input.ProjectID)
	if err != nil {
		return nil, err
	}

	if input.CompletedWork < 0 {
		return nil, fmt.Errorf("%w: completed_work delta must not be negative", ErrInvalidInput)
	}
	if input.TimeTaken < 0 {
		return nil, fmt.Errorf("%w: time_taken must not be negative", ErrInvalidInput)
	}
	for i, photo := range input.Photos {
		if _, err := ParseDataURL(photo.DataURL); err != nil {
			return nil, fmt.Errorf("%w: photo %d: %v", ErrInvalidInput, i, err)
		}
	}
	for i, doc := range input.Documents {
		if _, err := ParseDataURL(doc.DataURL); err != nil {
			return nil, fmt.Errorf("%w: document %d: %v", ErrInvalidInput, i, err)
		}
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	created, err := s.progress.Create(ctx, model.ProgressUpdate{
		ProjectID:         project.ID,
		Date:              date,
		CompletedWork:     input.CompletedWork,
		TimeTaken:         input.TimeTaken,
		Photos:            input.Photos,
		Notes:             input.Notes,
		VehicleID:         input.VehicleID,
		StartMeterReading: input.StartMeterReading,
		EndMeterReading:   input.EndMeterReading,
		Documents:         input.Documents,
	})
	if err != nil {
		return nil, err
	}

	project.CompletedWork += created.CompletedWork
	if err := s.projects.Update(ctx, *project); err != nil {
		return nil, err
	}
	s.log.Info().
		Str("project_id", project.ID).
		Float64("delta_m", created.CompletedWork).
		Float64("completed_m", project.CompletedWork).
		Msg("progress recorded")
	return created, nil
}

func (s *ProjectService) ListProgress(ctx context.Context, principal model.Principal, projectID string) ([]model.ProgressUpdate, error) {
	if _, err := s.GetProject(ctx, principal, projectID); err != nil {
		return nil, err
	}
	return s.progress.GetByProject(ctx, projectID)
}
