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

// TenderService manages tenders and their bills. Admin writes; owner and
// admin read for cross-project reporting.
type TenderService struct {
	tenders *repository.TenderRepository
	bills   *repository.TenderBillRepository
	log     zerolog.Logger
}

func NewTenderService(tenders *repository.TenderRepository, bills *repository.TenderBillRepository, log zerolog.Logger) *TenderService {
	return &TenderService{tenders: tenders, bills: bills, log: log}
}

type TenderInput struct {
	Title      string
	Department string
	Location   string
	DueDate    *time.Time
	Status     string
}

func (s *TenderService) CreateTender(ctx context.Context, principal model.Principal, input TenderInput) (*model.Tender, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	created, err := s.tenders.Create(ctx, model.Tender{
		Title:      strings.TrimSpace(input.Title),
		Department: input.Department,
		Location:   input.Location,
		DueDate:    input.DueDate,
		Status:     input.Status,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("tender_id", created.ID).Msg("tender created")
	return created, nil
}

func (s *TenderService) ListTenders(ctx context.Context) ([]model.Tender, error) {
	return s.tenders.GetAll(ctx)
}

func (s *TenderService) GetTender(ctx context.Context, id string) (*model.Tender, error) {
	tender, err := s.tenders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tender, nil
}

func (s *TenderService) DeleteTender(ctx context.Context, principal model.Principal, id string) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	removed, err := s.tenders.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}

type TenderBillInput struct {
	TenderID   string
	BillNumber string
	Date       time.Time
	Items      []model.TenderItem
}

// CreateBill records a bill against a tender. Item amounts and the bill
// total are fixed here from quantity and rate; they are not recomputed
// later.
func (s *TenderService) CreateBill(ctx context.Context, principal model.Principal, input TenderBillInput) (*model.TenderBill, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	if _, err := s.GetTender(ctx, input.TenderID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.BillNumber) == "" {
		return nil, fmt.Errorf("%w: bill_number is required", ErrInvalidInput)
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", ErrInvalidInput)
	}

	total := 0.0
	items := make([]model.TenderItem, 0, len(input.Items))
	for i, item := range input.Items {
		if strings.TrimSpace(item.Description) == "" {
			return nil, fmt.Errorf("%w: item %d: description is required", ErrInvalidInput, i)
		}
		if item.Quantity < 0 || item.Rate < 0 {
			return nil, fmt.Errorf("%w: item %d: quantity and rate must not be negative", ErrInvalidInput, i)
		}
		item.Amount = item.Quantity * item.Rate
		total += item.Amount
		items = append(items, item)
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	created, err := s.bills.Create(ctx, model.TenderBill{
		TenderID:    input.TenderID,
		BillNumber:  strings.TrimSpace(input.BillNumber),
		Date:        date,
		Items:       items,
		TotalAmount: total,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("bill_id", created.ID).Str("tender_id", created.TenderID).Float64("total", total).Msg("tender bill created")
	return created, nil
}

func (s *TenderService) ListBills(ctx context.Context, tenderID string) ([]model.TenderBill, error) {
	if tenderID == "" {
		return s.bills.GetAll(ctx)
	}
	return s.bills.GetByTender(ctx, tenderID)
}

func (s *TenderService) DeleteBill(ctx context.Context, principal model.Principal, id string) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	removed, err := s.bills.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}
