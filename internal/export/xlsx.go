// Package export writes calculator results as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/hyperjump/hitung/internal/formula"
)

// Sheet names of the amortization workbook.
const (
	SummarySheet  = "Summary"
	ScheduleSheet = "Schedule"
)

// ScheduleHeader is the first row of the schedule sheet.
var ScheduleHeader = []string{"Month", "Opening Balance", "EMI", "Interest", "Principal", "Closing Balance"}

// numFmtAmount is the built-in "#,##0.00" format.
const numFmtAmount = 4

// AmortizationXLSX writes a workbook with a loan summary sheet and the
// month-by-month schedule followed by a totals row.
func AmortizationXLSX(w io.Writer, loan formula.EMIInput) error {
	emi, err := formula.EMI(loan)
	if err != nil {
		return err
	}
	rows, err := formula.Amortization(loan)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(ScheduleSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: numFmtAmount})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	summary := [][]any{
		{"Principal", loan.Principal},
		{"Annual Rate (%)", loan.AnnualRate},
		{"Tenure (months)", loan.Months},
		{"EMI", emi.EMI},
		{"Total Interest", emi.TotalInterest},
		{"Total Payment", emi.TotalPayment},
	}
	for i, r := range summary {
		if err := setRow(f, SummarySheet, i+1, r); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(SummarySheet, "A1", fmt.Sprintf("A%d", len(summary)), bold); err != nil {
		return fmt.Errorf("style summary: %w", err)
	}
	if err := f.SetColWidth(SummarySheet, "A", "B", 18); err != nil {
		return fmt.Errorf("column width: %w", err)
	}

	header := make([]any, len(ScheduleHeader))
	for i, h := range ScheduleHeader {
		header[i] = h
	}
	if err := setRow(f, ScheduleSheet, 1, header); err != nil {
		return err
	}

	var interest, principal, paid float64
	for i, r := range rows {
		interest += r.Interest
		principal += r.Principal
		paid += r.EMI
		if err := setRow(f, ScheduleSheet, i+2, []any{r.Month, r.Opening, r.EMI, r.Interest, r.Principal, r.Closing}); err != nil {
			return err
		}
	}
	last := len(rows) + 2
	if err := setRow(f, ScheduleSheet, last, []any{"Total", nil, paid, interest, principal, nil}); err != nil {
		return err
	}

	if err := f.SetCellStyle(ScheduleSheet, "B2", fmt.Sprintf("F%d", last), amount); err != nil {
		return fmt.Errorf("style schedule: %w", err)
	}
	if err := f.SetCellStyle(ScheduleSheet, "A1", "F1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	if err := f.SetColWidth(ScheduleSheet, "A", "F", 16); err != nil {
		return fmt.Errorf("column width: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
