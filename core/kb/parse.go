// Package kb - Row parsing
package kb

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/varshaad-neenopal/automotive-damage-processing/core/types"
)

// RawRow is one unparsed row from the tabular source
type RawRow struct {
	Brand     string
	Model     string
	Region    string
	Component string

	PartCost     string
	FittingCost  string
	DaintingCost string
	PaintCost    string
	OtherCost    string
}

// ParseCost parses a raw cost cell. An empty cell, the literal "atpar"
// (case-insensitive), or an unparseable value is at-par and yields nil.
// At-par is distinct from zero.
func ParseCost(raw string) *decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "atpar") {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

// parseRow trims display strings and parses the five cost cells.
// Missing display values become empty strings, never nil.
func parseRow(raw RawRow) types.KnowledgeBaseRow {
	return types.KnowledgeBaseRow{
		Brand:     strings.TrimSpace(raw.Brand),
		Model:     strings.TrimSpace(raw.Model),
		Region:    strings.TrimSpace(raw.Region),
		Component: strings.TrimSpace(raw.Component),

		PartCost:     ParseCost(raw.PartCost),
		FittingCost:  ParseCost(raw.FittingCost),
		DaintingCost: ParseCost(raw.DaintingCost),
		PaintCost:    ParseCost(raw.PaintCost),
		OtherCost:    ParseCost(raw.OtherCost),
	}
}
