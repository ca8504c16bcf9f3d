package payslip

import (
	"context"

	"salarydecoder/internal/domain/salary"
)

type StoreAPI interface {
	Insert(ctx context.Context, ownerID, id string, in salary.Input, res salary.Result) (Payslip, error)
	Count(ctx context.Context, ownerID string) (int, error)
	List(ctx context.Context, ownerID string, limit, offset int) ([]Payslip, error)
	Get(ctx context.Context, ownerID, id string) (Record, error)
	Delete(ctx context.Context, ownerID, id string) error
	Aggregate(ctx context.Context, ownerID string) (count int, avgInHand, avgCTC float64, err error)
}
