package report

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	reconciliation "plant-reconcile/internal/reconciliation/domain"
)

// Export file names inside the reconciliation tier.
const (
	WorkbookFile = "reconciliation_workbook.xlsx"
	PDFFile      = "reconciliation_report.pdf"
)

// exportDate stamps generated documents so identical input yields identical bytes.
var exportDate = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

// maxSheetName is the Excel limit on sheet name length.
const maxSheetName = 31

// BuildWorkbook renders one sheet per table. Finite values in a table's numeric columns are
// written as numbers; every other cell is text.
func BuildWorkbook(tables []Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	first := true
	used := make(map[string]bool)
	for _, t := range tables {
		sheet := sheetName(t.Name, used)
		if first {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, err
			}
			first = false
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, "A1", &t.Columns); err != nil {
			return nil, err
		}
		numeric := t.numericColumns()
		for i, row := range t.Rows {
			cells := rowCells(row, numeric)
			if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &cells); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sheetName(name string, used map[string]bool) string {
	base := name
	if len(base) > maxSheetName {
		base = base[:maxSheetName]
	}
	candidate := base
	for i := 2; used[candidate]; i++ {
		suffix := strconv.Itoa(i)
		candidate = base[:len(base)-len(suffix)] + suffix
	}
	used[candidate] = true
	return candidate
}

func rowCells(row []string, numeric map[int]bool) []interface{} {
	cells := make([]interface{}, len(row))
	for j, v := range row {
		if numeric[j] {
			cells[j] = cellValue(v)
		} else {
			cells[j] = v
		}
	}
	return cells
}

func cellValue(v string) interface{} {
	if f, err := strconv.ParseFloat(v, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return v
}

// BuildPDF renders a short reconciliation summary: the score, the recommendations and the
// comprehensive report rows.
func BuildPDF(r reconciliation.Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(exportDate)
	pdf.SetCatalogSort(true)
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Plant Reconciliation Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Data Quality Score: %.1f%%", r.Summary.Score))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total Checks: %d", r.Summary.Total))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Valid Checks: %d", r.Summary.Valid))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Missing Checks: %d", r.Summary.Missing))
	pdf.Ln(8)

	if len(r.Recommendations) > 0 {
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(0, 6, "Recommendations")
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 10)
		for i, line := range r.Recommendations {
			pdf.MultiCell(0, 5, fmt.Sprintf("%d. %s", i+1, line), "", "L", false)
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(40, 6, "Check", "1", 0, "C", false, 0, "")
	pdf.CellFormat(80, 6, "Metric", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "Value", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, "Status", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 8)
	for _, row := range r.Rows {
		pdf.CellFormat(40, 5, clip(row.CheckType, 26), "1", 0, "L", false, 0, "")
		pdf.CellFormat(80, 5, clip(row.Metric, 52), "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 5, clip(row.Value.String(), 28), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 5, row.Status, "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "~"
}
