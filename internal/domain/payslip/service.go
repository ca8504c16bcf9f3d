package payslip

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"salarydecoder/internal/domain/salary"
)

type Service struct {
	store StoreAPI
	calc  *salary.Calculator
}

func NewService(store StoreAPI, calc *salary.Calculator) *Service {
	return &Service{store: store, calc: calc}
}

// Save recomputes the figures from in and stores the snapshot for ownerID.
func (s *Service) Save(ctx context.Context, ownerID string, in salary.Input) (Payslip, error) {
	return s.store.Insert(ctx, ownerID, uuid.NewString(), in, s.calc.Compute(in))
}

func (s *Service) List(ctx context.Context, ownerID string, limit, offset int) (Page, error) {
	total, err := s.store.Count(ctx, ownerID)
	if err != nil {
		return Page{}, err
	}
	items, err := s.store.List(ctx, ownerID, limit, offset)
	if err != nil {
		return Page{}, err
	}
	return Page{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *Service) Summary(ctx context.Context, ownerID string) (Summary, error) {
	count, avgInHand, avgCTC, err := s.store.Aggregate(ctx, ownerID)
	if err != nil {
		return Summary{}, err
	}
	out := Summary{
		Count:         count,
		AverageInHand: decimal.NewFromFloat(avgInHand).Round(2).InexactFloat64(),
		AverageCTC:    decimal.NewFromFloat(avgCTC).Round(2).InexactFloat64(),
	}
	if count == 0 {
		return out, nil
	}
	latest, err := s.store.List(ctx, ownerID, 1, 0)
	if err != nil {
		return Summary{}, err
	}
	if len(latest) > 0 {
		out.Latest = &latest[0]
	}
	return out, nil
}

// Report returns a stored payslip with its breakdown and warnings recomputed.
func (s *Service) Report(ctx context.Context, ownerID, id string) (Record, salary.Result, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Record{}, salary.Result{}, ErrNotFound
	}
	rec, err := s.store.Get(ctx, ownerID, id)
	if err != nil {
		return Record{}, salary.Result{}, err
	}
	return rec, s.calc.Compute(rec.Input), nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	return s.store.Delete(ctx, ownerID, id)
}
