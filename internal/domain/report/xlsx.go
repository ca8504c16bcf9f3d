package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"salarydecoder/internal/domain/payslip"
)

const HistorySheet = "Payslips"

var historyHeader = []any{"Month", "Basic", "Gross Salary", "In-Hand Salary", "CTC", "Saved At"}

// WriteHistoryXLSX writes the saved payslip snapshots as a single-sheet workbook.
func WriteHistoryXLSX(w io.Writer, payslips []payslip.Payslip) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", HistorySheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(HistorySheet, "A1", &historyHeader); err != nil {
		return err
	}
	for i, p := range payslips {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{p.Month, p.Basic, p.GrossSalary, p.InHandSalary, p.CTC, p.CreatedAt.UTC().Format("2006-01-02 15:04")}
		if err := f.SetSheetRow(HistorySheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := f.SetColWidth(HistorySheet, "A", "F", 18); err != nil {
		return err
	}
	return f.Write(w)
}
