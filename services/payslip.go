package services

import (
	"bytes"
	"context"
	"fmt"

	"hr_payroll/models"
	"hr_payroll/types"

	"github.com/jung-kurt/gofpdf"
)

// Payslip renders a one page PDF for a valid person.
func (s *PayrollService) Payslip(ctx context.Context, id uint) ([]byte, error) {
	person, err := s.Persons.FindByID(ctx, id, "")
	if err != nil {
		return nil, err
	}

	today := s.today()
	if !person.IsValid(today) {
		return nil, types.ValidationFailed("person %d has invalid payroll data, payslip is not available", id)
	}

	return renderPayslip(person, summarize(person, today), models.FormatDate(today))
}

func renderPayslip(p *models.Person, summary *SalarySummary, issued string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s %s", p.FirstName, p.LastName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("National ID: %s", p.NationalID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Type: %s", p.TypeName()))
	pdf.Ln(7)
	if p.Department != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Department: %s", p.Department))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Issued: %s", issued))
	pdf.Ln(10)

	pdf.Cell(0, 8, fmt.Sprintf("Salary: %s", summary.Salary.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Deductions: %s", summary.Deductions.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Net: %s", summary.NetSalary.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Tax: %s", summary.Tax.StringFixed(2)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip: %w", err)
	}
	return buf.Bytes(), nil
}
