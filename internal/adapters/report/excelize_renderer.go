// Package report renders tabular reports to XLSX files on local storage.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	portssvc "github.com/codelab/api-financeiro/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Relatório"

// ExcelizeRenderer writes report tables as XLSX workbooks into a target
// directory and returns the generated file's path.
type ExcelizeRenderer struct {
	dir string
}

// NewExcelizeRenderer creates a renderer writing into dir; the directory is
// created if missing so a first export does not fail on a fresh host.
func NewExcelizeRenderer(dir string) (*ExcelizeRenderer, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create report directory %s: %w", dir, err)
	}
	return &ExcelizeRenderer{dir: dir}, nil
}

var _ portssvc.ReportRenderer = (*ExcelizeRenderer)(nil)

// Render writes the table to a new workbook. Column style hints become
// column-wide horizontal alignment; headers are bold.
func (r *ExcelizeRenderer) Render(ctx context.Context, title string, idUsuario int64, table portssvc.ReportTable) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("failed to create report sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	if err := f.SetCellValue(sheetName, "A1", title); err != nil {
		return "", fmt.Errorf("failed to write report title: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return "", fmt.Errorf("failed to create header style: %w", err)
	}

	const headerRow = 3
	for col, name := range table.Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, headerRow)
		if err != nil {
			return "", fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return "", fmt.Errorf("failed to write header %q: %w", name, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return "", fmt.Errorf("failed to style header %q: %w", name, err)
		}
	}

	styles, err := r.columnStyles(f, table.ColumnStyles)
	if err != nil {
		return "", err
	}

	for i, row := range table.Rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, headerRow+1+i)
			if err != nil {
				return "", fmt.Errorf("failed to address data cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return "", fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
			if styleID, ok := styles[col]; ok {
				if err := f.SetCellStyle(sheetName, cell, cell, styleID); err != nil {
					return "", fmt.Errorf("failed to style cell %s: %w", cell, err)
				}
			}
		}
	}

	filename := fmt.Sprintf("relatorio-%d-%s-%s.xlsx", idUsuario, time.Now().UTC().Format("20060102150405"), uuid.NewString()[:8])
	path := filepath.Join(r.dir, filename)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save report %s: %w", path, err)
	}
	return path, nil
}

func (r *ExcelizeRenderer) columnStyles(f *excelize.File, hints map[int]portssvc.CellStyle) (map[int]int, error) {
	styles := make(map[int]int, len(hints))
	for col, hint := range hints {
		if hint.HAlign == "" {
			continue
		}
		styleID, err := f.NewStyle(&excelize.Style{
			Alignment: &excelize.Alignment{Horizontal: hint.HAlign},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create column style: %w", err)
		}
		styles[col] = styleID
	}
	return styles, nil
}
