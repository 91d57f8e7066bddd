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

// PaymentService owns the payment request workflow. Transition legality is
// enforced here rather than trusted to callers:
//
//	pending -> approved -> scheduled -> paid
//	pending -> rejected (terminal)
type PaymentService struct {
	payments *repository.PaymentRepository
	projects *repository.ProjectRepository
	now      func() time.Time
	log      zerolog.Logger
}

func NewPaymentService(payments *repository.PaymentRepository, projects *repository.ProjectRepository, log zerolog.Logger) *PaymentService {
	return &PaymentService{
		payments: payments,
		projects: projects,
		now:      func() time.Time { return time.Now().UTC() },
		log:      log,
	}
}

func legalTransition(from, to model.PaymentStatus) bool {
	switch from {
	case model.PaymentStatusPending:
		return to == model.PaymentStatusApproved || to == model.PaymentStatusRejected
	case model.PaymentStatusApproved:
		return to == model.PaymentStatusScheduled
	case model.PaymentStatusScheduled:
		return to == model.PaymentStatusPaid
	default:
		// rejected and paid are terminal
		return false
	}
}

type CreatePaymentInput struct {
	ProjectID        string
	ProgressUpdateID string
	Date             time.Time
	Purposes         []model.PaymentPurpose
	Principal        model.Principal
}

func (s *PaymentService) CreateRequest(ctx context.Context, input CreatePaymentInput) (*model.PaymentRequest, error) {
	if !input.Principal.IsLeader() {
		return nil, ErrPermissionDenied
	}
	project, err := s.projects.GetByID(ctx, input.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if project.LeaderID != input.Principal.UserID {
		return nil, ErrPermissionDenied
	}
	if len(input.Purposes) == 0 {
		return nil, fmt.Errorf("%w: at least one purpose is required", ErrInvalidInput)
	}

	total := 0.0
	for i, purpose := range input.Purposes {
		if _, ok := model.ParsePurposeType(string(purpose.Type)); !ok {
			return nil, fmt.Errorf("%w: purpose %d: unknown type %q", ErrInvalidInput, i, purpose.Type)
		}
		if purpose.Amount <= 0 {
			return nil, fmt.Errorf("%w: purpose %d: amount must be positive", ErrInvalidInput, i)
		}
		for j, image := range purpose.Images {
			if _, err := ParseDataURL(image); err != nil {
				return nil, fmt.Errorf("%w: purpose %d image %d: %v", ErrInvalidInput, i, j, err)
			}
		}
		total += purpose.Amount
	}

	date := input.Date
	if date.IsZero() {
		date = s.now()
	}

	created, err := s.payments.Create(ctx, model.PaymentRequest{
		ProjectID:        project.ID,
		ProgressUpdateID: input.ProgressUpdateID,
		Date:             date,
		Purposes:         input.Purposes,
		Status:           model.PaymentStatusPending,
		TotalAmount:      total,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("payment_id", created.ID).Float64("total", created.TotalAmount).Msg("payment request created")
	return created, nil
}

// Approve moves a pending request to approved. Checker action; notes are
// optional here.
func (s *PaymentService) Approve(ctx context.Context, principal model.Principal, id, notes string) (*model.PaymentRequest, error) {
	if !principal.IsChecker() {
		return nil, ErrPermissionDenied
	}
	return s.transition(ctx, id, model.PaymentStatusApproved, func(request *model.PaymentRequest) error {
		request.CheckerNotes = notes
		return nil
	})
}

// Reject moves a pending request to rejected. The rejection reason is
// mandatory; rejected is terminal.
func (s *PaymentService) Reject(ctx context.Context, principal model.Principal, id, notes string) (*model.PaymentRequest, error) {
	if !principal.IsChecker() {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(notes) == "" {
		return nil, fmt.Errorf("%w: rejection requires checker notes", ErrInvalidInput)
	}
	return s.transition(ctx, id, model.PaymentStatusRejected, func(request *model.PaymentRequest) error {
		request.CheckerNotes = notes
		return nil
	})
}

// Schedule moves an approved request to scheduled. Owner action; the
// scheduled date must lie strictly in the future.
func (s *PaymentService) Schedule(ctx context.Context, principal model.Principal, id string, scheduledDate time.Time) (*model.PaymentRequest, error) {
	if !principal.IsOwner() {
		return nil, ErrPermissionDenied
	}
	if !scheduledDate.After(s.now()) {
		return nil, fmt.Errorf("%w: scheduled_date must be after now", ErrInvalidInput)
	}
	return s.transition(ctx, id, model.PaymentStatusScheduled, func(request *model.PaymentRequest) error {
		request.ScheduledDate = &scheduledDate
		return nil
	})
}

// Pay moves a scheduled request to paid. Owner action; paid is terminal.
func (s *PaymentService) Pay(ctx context.Context, principal model.Principal, id string) (*model.PaymentRequest, error) {
	if !principal.IsOwner() {
		return nil, ErrPermissionDenied
	}
	return s.transition(ctx, id, model.PaymentStatusPaid, nil)
}

func (s *PaymentService) transition(ctx context.Context, id string, to model.PaymentStatus, apply func(*model.PaymentRequest) error) (*model.PaymentRequest, error) {
	request, err := s.payments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !legalTransition(request.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, request.Status, to)
	}
	if apply != nil {
		if err := apply(request); err != nil {
			return nil, err
		}
	}
	from := request.Status
	request.Status = to
	if err := s.payments.Update(ctx, *request); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.log.Info().Str("payment_id", id).Str("from", string(from)).Str("to", string(to)).Msg("payment transitioned")
	return request, nil
}

// ListRequests returns payment requests visible to the caller, optionally
// filtered by project or status. Leaders see only their own projects'
// requests.
func (s *PaymentService) ListRequests(ctx context.Context, principal model.Principal, projectID string, status *model.PaymentStatus) ([]model.PaymentRequest, error) {
	var requests []model.PaymentRequest
	var err error
	if projectID != "" {
		if _, err := s.projectForRead(ctx, principal, projectID); err != nil {
			return nil, err
		}
		requests, err = s.payments.GetByProject(ctx, projectID)
	} else {
		requests, err = s.payments.GetAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	if !principal.SeesAllProjects() {
		owned, err := s.ownedProjectIDs(ctx, principal)
		if err != nil {
			return nil, err
		}
		scoped := make([]model.PaymentRequest, 0, len(requests))
		for _, request := range requests {
			if owned[request.ProjectID] {
				scoped = append(scoped, request)
			}
		}
		requests = scoped
	}

	if status != nil {
		filtered := make([]model.PaymentRequest, 0, len(requests))
		for _, request := range requests {
			if request.Status == *status {
				filtered = append(filtered, request)
			}
		}
		requests = filtered
	}
	return requests, nil
}

func (s *PaymentService) GetRequest(ctx context.Context, principal model.Principal, id string) (*model.PaymentRequest, error) {
	request, err := s.payments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !principal.SeesAllProjects() {
		if _, err := s.projectForRead(ctx, principal, request.ProjectID); err != nil {
			return nil, err
		}
	}
	return request, nil
}

func (s *PaymentService) projectForRead(ctx context.Context, principal model.Principal, projectID string) (*model.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
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

func (s *PaymentService) ownedProjectIDs(ctx context.Context, principal model.Principal) (map[string]bool, error) {
	projects, err := s.projects.GetByLeader(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	owned := make(map[string]bool, len(projects))
	for _, project := range projects {
		owned[project.ID] = true
	}
	return owned, nil
}
