package utils

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary    = "Summary"
	SheetByMonth    = "By Month"
	SheetByCategory = "By Category"
)

var (
	summaryHeader  = []string{"Query Number", "Name", "Customer", "Location", "Period From", "Sales", "Purchases", "Expenses", "Income", "Gross Profit", "Net Profit", "Margin %"}
	monthHeader    = []string{"Month", "Queries", "Sales", "Purchases", "Expenses", "Income", "Gross Profit", "Net Profit", "Margin %"}
	categoryHeader = []string{"Type", "Category", "Amount"}
)

// ProfitReportWorkbook xuất báo cáo lãi lỗ ra file xlsx
func ProfitReportWorkbook(report ProfitReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create total style: %w", err)
	}

	summary := make([][]any, 0, len(report.Rows)+1)
	for _, r := range report.Rows {
		summary = append(summary, []any{
			r.QueryNumber, r.Name, r.CustomerName, r.Location, r.PeriodFrom.String(),
			r.Sales.InexactFloat64(), r.Purchases.InexactFloat64(), r.Expenses.InexactFloat64(), r.Income.InexactFloat64(),
			r.GrossProfit.InexactFloat64(), r.NetProfit.InexactFloat64(), r.Margin.InexactFloat64(),
		})
	}
	t := report.Totals
	summary = append(summary, []any{
		"TOTAL", fmt.Sprintf("%d queries", t.QueryCount), "", "", "",
		t.Sales.InexactFloat64(), t.Purchases.InexactFloat64(), t.Expenses.InexactFloat64(), t.Income.InexactFloat64(),
		t.GrossProfit.InexactFloat64(), t.NetProfit.InexactFloat64(), t.Margin.InexactFloat64(),
	})

	months := make([][]any, 0, len(report.ByMonth))
	for _, m := range report.ByMonth {
		months = append(months, []any{
			m.Month, m.QueryCount, m.Sales.InexactFloat64(), m.Purchases.InexactFloat64(), m.Expenses.InexactFloat64(),
			m.Income.InexactFloat64(), m.GrossProfit.InexactFloat64(), m.NetProfit.InexactFloat64(), m.Margin.InexactFloat64(),
		})
	}

	categories := make([][]any, 0, len(report.ByCategory))
	for _, c := range report.ByCategory {
		categories = append(categories, []any{c.Type, c.Category, c.Amount.InexactFloat64()})
	}

	sheets := []struct {
		name   string
		header []string
		rows   [][]any
	}{
		{SheetSummary, summaryHeader, summary},
		{SheetByMonth, monthHeader, months},
		{SheetByCategory, categoryHeader, categories},
	}
	for i, s := range sheets {
		index, err := f.NewSheet(s.name)
		if err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", s.name, err)
		}
		if i == 0 {
			f.SetActiveSheet(index)
		}
		if err := writeSheet(f, s.name, s.header, s.rows, headerStyle); err != nil {
			return nil, err
		}
	}
	// dòng tổng cộng in đậm
	lastRow := len(summary) + 1
	if err := f.SetRowStyle(SheetSummary, lastRow, lastRow, totalStyle); err != nil {
		return nil, fmt.Errorf("failed to set total style: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]any, headerStyle int) error {
	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
	}
	for r, row := range rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 16)
}
