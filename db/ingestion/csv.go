// Package ingestion - Tabular knowledge base row sources
// Sources fetch raw rows; all parsing of cost values happens in core/kb.
package ingestion

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/varshaad-neenopal/automotive-damage-processing/core/kb"
	"github.com/varshaad-neenopal/automotive-damage-processing/internal/errors"
)

// ReadCSV parses knowledge base rows from CSV data.
// The header row names the columns; matching is case and space
// insensitive. Missing cells become empty strings.
func ReadCSV(r io.Reader) ([]kb.RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, errors.Parsing("failed to read CSV header", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[normalizeHeader(name)] = i
	}

	cell := func(record []string, column string) string {
		i, ok := columns[column]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var rows []kb.RawRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed records degrade per-row, never abort the load
			continue
		}
		rows = append(rows, kb.RawRow{
			Brand:        cell(record, "brand"),
			Model:        cell(record, "model"),
			Region:       cell(record, "region"),
			Component:    cell(record, "component"),
			PartCost:     cell(record, "part_cost"),
			FittingCost:  cell(record, "fitting_cost"),
			DaintingCost: cell(record, "dainting_cost"),
			PaintCost:    cell(record, "paint_cost"),
			OtherCost:    cell(record, "other_cost"),
		})
	}
	return rows, nil
}

func normalizeHeader(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// FileSource reads knowledge base rows from a local CSV file
type FileSource struct {
	Path string
}

// Fetch implements kb.RowSource
func (s FileSource) Fetch(_ context.Context) ([]kb.RawRow, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, errors.DataSource("failed to open knowledge base file", err).
			WithContext("path", s.Path)
	}
	defer f.Close()
	return ReadCSV(f)
}
