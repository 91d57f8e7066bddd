package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/davral/siteworks/internal/model"
	"github.com/davral/siteworks/internal/repository"
)

// BackupService keeps the admin's list of external backup references. URLs
// are opaque; presence is the only validation.
type BackupService struct {
	links *repository.BackupLinkRepository
	log   zerolog.Logger
}

func NewBackupService(links *repository.BackupLinkRepository, log zerolog.Logger) *BackupService {
	return &BackupService{links: links, log: log}
}

func (s *BackupService) CreateLink(ctx context.Context, principal model.Principal, url, description string) (*model.BackupLink, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("%w: url is required", ErrInvalidInput)
	}
	created, err := s.links.Create(ctx, model.BackupLink{
		URL:         strings.TrimSpace(url),
		Description: description,
		CreatedBy:   principal.UserID,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("link_id", created.ID).Msg("backup link created")
	return created, nil
}

func (s *BackupService) ListLinks(ctx context.Context, principal model.Principal) ([]model.BackupLink, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	return s.links.GetAll(ctx)
}

func (s *BackupService) DeleteLink(ctx context.Context, principal model.Principal, id string) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	removed, err := s.links.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}
