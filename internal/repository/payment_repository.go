package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/davral/siteworks/internal/model"
	"github.com/davral/siteworks/internal/store"
)

type PaymentRepository struct {
	c *collection[model.PaymentRequest]
}

func NewPaymentRepository(s store.CollectionStore, log zerolog.Logger) *PaymentRepository {
	return &PaymentRepository{c: newCollection[model.PaymentRequest](s, store.KeyPaymentRequests, log)}
}

func (r *PaymentRepository) Create(ctx context.Context, request model.PaymentRequest) (*model.PaymentRequest, error) {
	request.ID = uuid.NewString()
	request.CreatedAt = time.Now().UTC()
	err := r.c.mutate(ctx, func(requests []model.PaymentRequest) ([]model.PaymentRequest, error) {
		return append(requests, request), nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *PaymentRepository) GetAll(ctx context.Context) ([]model.PaymentRequest, error) {
	return r.c.load(ctx)
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*model.PaymentRequest, error) {
	requests, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, request := range requests {
		if request.ID == id {
			return &request, nil
		}
	}
	return nil, ErrNotFound
}

func (r *PaymentRepository) GetByProject(ctx context.Context, projectID string) ([]model.PaymentRequest, error) {
	requests, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]model.PaymentRequest, 0, len(requests))
	for _, request := range requests {
		if request.ProjectID == projectID {
			matched = append(matched, request)
		}
	}
	return matched, nil
}

func (r *PaymentRepository) GetByStatus(ctx context.Context, status model.PaymentStatus) ([]model.PaymentRequest, error) {
	requests, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]model.PaymentRequest, 0, len(requests))
	for _, request := range requests {
		if request.Status == status {
			matched = append(matched, request)
		}
	}
	return matched, nil
}

func (r *PaymentRepository) Update(ctx context.Context, request model.PaymentRequest) error {
	return r.c.mutate(ctx, func(requests []model.PaymentRequest) ([]model.PaymentRequest, error) {
		for i := range requests {
			if requests[i].ID == request.ID {
				requests[i] = request
				return requests, nil
			}
		}
		return nil, ErrNotFound
	})
}
