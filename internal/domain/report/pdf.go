package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"salarydecoder/internal/domain/salary"
)

// The core PDF fonts are cp1252 and have no rupee glyph.
func pdfAmount(v float64) string {
	return strings.Replace(salary.FormatINR(v), "₹", "Rs. ", 1)
}

// WritePDF renders a one-page summary of a computed payslip.
func WritePDF(w io.Writer, in salary.Input, res salary.Result) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payslip "+in.Month, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Payslip Summary")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Month: %s", in.Month))
	pdf.Ln(12)

	for _, f := range []struct {
		label string
		value float64
	}{
		{"Gross Salary", res.GrossSalary},
		{"Total Deductions", res.TotalDeductions},
		{"In-Hand Salary", res.InHandSalary},
		{"CTC", res.CTC},
	} {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(60, 8, f.label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(60, 8, pdfAmount(f.value), "", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(70, 8, "Component", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 8, "Type", "1", 0, "L", true, 0, "")
	pdf.CellFormat(45, 8, "Amount", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 8, "% of CTC", "1", 1, "R", true, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, row := range res.Breakdown {
		pdf.CellFormat(70, 7, row.Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, string(row.Kind), "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 7, pdfAmount(row.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, salary.FormatPercent(row.Percentage), "1", 1, "R", false, 0, "")
	}

	if len(res.Warnings) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Warnings")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for _, warning := range res.Warnings {
			pdf.MultiCell(0, 6, "- "+strings.ReplaceAll(warning, "₹", "Rs. "), "", "L", false)
		}
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "Figures are derived from the values you entered. This is not tax or legal advice.", "", "L", false)

	return pdf.Output(w)
}
