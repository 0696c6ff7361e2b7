package importer

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/custodia-labs/receipta/internal/core/domain"
)

// CSVReader reads .csv files with one line item per row.
type CSVReader struct {
	// Comma overrides the field separator. Zero detects ',' or ';'.
	Comma rune
}

// Extensions returns the handled extensions.
func (CSVReader) Extensions() []string { return []string{".csv"} }

// Read parses every receipt in the file.
func (r CSVReader) Read(_ context.Context, path string) ([]domain.Receipt, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return r.decode(data)
}

func (r CSVReader) decode(data []byte) ([]domain.Receipt, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = r.Comma
	if reader.Comma == 0 {
		reader.Comma = detectComma(data)
	}
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty CSV file", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", domain.ErrInvalidInput, err)
	}
	// Spreadsheet exports often start with a byte order mark.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading rows: %v", domain.ErrInvalidInput, err)
	}
	return assemble(header, rows)
}

// detectComma picks ';' when the header line has more semicolons than
// commas, as Turkish-locale spreadsheet exports do.
func detectComma(data []byte) rune {
	semicolons, commas := 0, 0
	for _, b := range data {
		if b == '\n' {
			break
		}
		switch b {
		case ';':
			semicolons++
		case ',':
			commas++
		}
	}
	if semicolons > commas {
		return ';'
	}
	return ','
}
