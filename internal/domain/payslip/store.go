package payslip

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"salarydecoder/internal/domain/salary"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Insert(ctx context.Context, ownerID, id string, in salary.Input, res salary.Result) (Payslip, error) {
	var out Payslip
	err := s.DB.QueryRow(ctx, `
    INSERT INTO payslips (id, user_id, month, basic, hra, special_allowance, other_allowance,
                          employee_pf, employer_pf, professional_tax, income_tax,
                          gross_salary, in_hand_salary, ctc)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
    RETURNING id, month, basic, gross_salary, in_hand_salary, ctc, created_at
  `, id, ownerID, in.Month, in.Basic, in.HRA, in.SpecialAllowance, in.OtherAllowance,
		in.EmployeePF, in.EmployerPF, in.ProfessionalTax, in.IncomeTax,
		res.GrossSalary, res.InHandSalary, res.CTC).Scan(
		&out.ID, &out.Month, &out.Basic, &out.GrossSalary, &out.InHandSalary, &out.CTC, &out.CreatedAt,
	)
	if err != nil {
		return Payslip{}, fmt.Errorf("insert payslip: %w", err)
	}
	return out, nil
}

func (s *Store) Count(ctx context.Context, ownerID string) (int, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM payslips WHERE user_id = $1", ownerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count payslips: %w", err)
	}
	return count, nil
}

func (s *Store) List(ctx context.Context, ownerID string, limit, offset int) ([]Payslip, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, month, basic, gross_salary, in_hand_salary, ctc, created_at
    FROM payslips
    WHERE user_id = $1
    ORDER BY created_at DESC, id
    LIMIT $2 OFFSET $3
  `, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list payslips: %w", err)
	}
	defer rows.Close()

	out := []Payslip{}
	for rows.Next() {
		var p Payslip
		if err := rows.Scan(&p.ID, &p.Month, &p.Basic, &p.GrossSalary, &p.InHandSalary, &p.CTC, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payslip: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, ownerID, id string) (Record, error) {
	var rec Record
	err := s.DB.QueryRow(ctx, `
    SELECT id, month, basic, hra, special_allowance, other_allowance,
           employee_pf, employer_pf, professional_tax, income_tax,
           gross_salary, in_hand_salary, ctc, created_at
    FROM payslips
    WHERE user_id = $1 AND id = $2
  `, ownerID, id).Scan(
		&rec.ID, &rec.Month, &rec.Basic, &rec.Input.HRA, &rec.Input.SpecialAllowance, &rec.Input.OtherAllowance,
		&rec.Input.EmployeePF, &rec.Input.EmployerPF, &rec.Input.ProfessionalTax, &rec.Input.IncomeTax,
		&rec.GrossSalary, &rec.InHandSalary, &rec.CTC, &rec.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("get payslip: %w", err)
	}
	rec.Input.Month = rec.Month
	rec.Input.Basic = rec.Basic
	return rec, nil
}

func (s *Store) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM payslips WHERE user_id = $1 AND id = $2", ownerID, id)
	if err != nil {
		return fmt.Errorf("delete payslip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Aggregate(ctx context.Context, ownerID string) (int, float64, float64, error) {
	var count int
	var avgInHand, avgCTC float64
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1), COALESCE(AVG(in_hand_salary), 0)::float8, COALESCE(AVG(ctc), 0)::float8
    FROM payslips
    WHERE user_id = $1
  `, ownerID).Scan(&count, &avgInHand, &avgCTC)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("aggregate payslips: %w", err)
	}
	return count, avgInHand, avgCTC, nil
}
