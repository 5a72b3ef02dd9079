package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVExporter renders the document table as CSV for downstream tooling.
// Header lines and signatures are not part of the output.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the document rows under the
// spreadsheet headings.
func (e *CSVExporter) Render(doc Document) ([]byte, error) {
	if len(doc.Columns) != len(Columns) {
		return nil, fmt.Errorf("csv requires %d columns, got %d", len(Columns), len(doc.Columns))
	}
	doc = doc.SpreadsheetLabels()
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(doc.Columns); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range doc.Rows {
		record := []string{row.Category, row.Description, row.FoundText(), row.Note}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
