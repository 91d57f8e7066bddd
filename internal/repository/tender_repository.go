package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/davral/siteworks/internal/model"
	"github.com/davral/siteworks/internal/store"
)

type TenderRepository struct {
	c *collection[model.Tender]
}

func NewTenderRepository(s store.CollectionStore, log zerolog.Logger) *TenderRepository {
	return &TenderRepository{c: newCollection[model.Tender](s, store.KeyTenders, log)}
}

func (r *TenderRepository) Create(ctx context.Context, tender model.Tender) (*model.Tender, error) {
	tender.ID = uuid.NewString()
	tender.CreatedAt = time.Now().UTC()
	err := r.c.mutate(ctx, func(tenders []model.Tender) ([]model.Tender, error) {
		return append(tenders, tender), nil
	})
	if err != nil {
		return nil, err
	}
	return &tender, nil
}

func (r *TenderRepository) GetAll(ctx context.Context) ([]model.Tender, error) {
	return r.c.load(ctx)
}

func (r *TenderRepository) GetByID(ctx context.Context, id string) (*model.Tender, error) {
	tenders, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, tender := range tenders {
		if tender.ID == id {
			return &tender, nil
		}
	}
	return nil, ErrNotFound
}

func (r *TenderRepository) Update(ctx context.Context, tender model.Tender) error {
	return r.c.mutate(ctx, func(tenders []model.Tender) ([]model.Tender, error) {
		for i := range tenders {
			if tenders[i].ID == tender.ID {
				tenders[i] = tender
				return tenders, nil
			}
		}
		return nil, ErrNotFound
	})
}

func (r *TenderRepository) Delete(ctx context.Context, id string) (bool, error) {
	removed := false
	err := r.c.mutate(ctx, func(tenders []model.Tender) ([]model.Tender, error) {
		kept := tenders[:0]
		for _, tender := range tenders {
			if tender.ID == id {
				removed = true
				continue
			}
			kept = append(kept, tender)
		}
		return kept, nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

type TenderBillRepository struct {
	c *collection[model.TenderBill]
}

func NewTenderBillRepository(s store.CollectionStore, log zerolog.Logger) *TenderBillRepository {
	return &TenderBillRepository{c: newCollection[model.TenderBill](s, store.KeyTenderBills, log)}
}

func (r *TenderBillRepository) Create(ctx context.Context, bill model.TenderBill) (*model.TenderBill, error) {
	bill.ID = uuid.NewString()
	bill.CreatedAt = time.Now().UTC()
	err := r.c.mutate(ctx, func(bills []model.TenderBill) ([]model.TenderBill, error) {
		return append(bills, bill), nil
	})
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *TenderBillRepository) GetAll(ctx context.Context) ([]model.TenderBill, error) {
	return r.c.load(ctx)
}

func (r *TenderBillRepository) GetByID(ctx context.Context, id string) (*model.TenderBill, error) {
	bills, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, bill := range bills {
		if bill.ID == id {
			return &bill, nil
		}
	}
	return nil, ErrNotFound
}

func (r *TenderBillRepository) GetByTender(ctx context.Context, tenderID string) ([]model.TenderBill, error) {
	bills, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]model.TenderBill, 0, len(bills))
	for _, bill := range bills {
		if bill.TenderID == tenderID {
			matched = append(matched, bill)
		}
	}
	return matched, nil
}

func (r *TenderBillRepository) Delete(ctx context.Context, id string) (bool, error) {
	removed := false
	err := r.c.mutate(ctx, func(bills []model.TenderBill) ([]model.TenderBill, error) {
		kept := bills[:0]
		for _, bill := range bills {
			if bill.ID == id {
				removed = true
				continue
			}
			kept = append(kept, bill)
		}
		return kept, nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}
