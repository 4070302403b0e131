package gateway

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"daily-reconciliation/internal/domain"
)

// CSVEditReader reads batches of raw field edits from CSV files.
// The first row is a "field,value" header.
type CSVEditReader struct{}

// NewCSVEditReader creates a new reader instance.
func NewCSVEditReader() *CSVEditReader {
	return &CSVEditReader{}
}

// ReadEdits parses the edits in path, in file order.
func (r *CSVEditReader) ReadEdits(ctx context.Context, path string) ([]domain.FieldEdit, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open edits file %s: %w", path, err)
	}
	defer file.Close()

	return r.readEdits(ctx, file, path)
}

func (r *CSVEditReader) readEdits(ctx context.Context, in io.Reader, name string) ([]domain.FieldEdit, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header from %s: %w", name, err)
	}

	var edits []domain.FieldEdit
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record from %s: %w", name, err)
		}

		field := strings.TrimSpace(record[0])
		if field == "" {
			return nil, fmt.Errorf("empty field name in %s", name)
		}
		edits = append(edits, domain.FieldEdit{
			Field: domain.Field(field),
			Value: record[1],
		})
	}
	return edits, nil
}
