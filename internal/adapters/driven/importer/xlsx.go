package importer

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/receipta/internal/core/domain"
)

// XLSXReader reads the first sheet of .xlsx workbooks, laid out like the
// CSV format.
type XLSXReader struct{}

// Extensions returns the handled extensions.
func (XLSXReader) Extensions() []string { return []string{".xlsx"} }

// Read parses every receipt on the first sheet.
func (XLSXReader) Read(_ context.Context, path string) ([]domain.Receipt, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%w: workbook has no sheets", domain.ErrInvalidInput)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading rows of %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %s is empty", domain.ErrInvalidInput, sheet)
	}
	return assemble(rows[0], rows[1:])
}
