// Package costing resolves and aggregates component cost records.
// A nil sub-cost is at-par (price on inspection) and is distinct from
// zero: it is excluded from the sum and reported as a missing field.
package costing

import (
	"github.com/shopspring/decimal"

	"github.com/varshaad-neenopal/automotive-damage-processing/core/types"
)

// Aggregate sums the sub-costs that are present and returns the missing
// field names in canonical order. The total is nil, never zero, when all
// five sub-costs are at-par.
func Aggregate(rec *types.CostRecord) (*decimal.Decimal, []string) {
	if rec == nil {
		return nil, nil
	}

	total := decimal.Zero
	present := false
	var missing []string
	for _, sc := range rec.SubCosts() {
		if sc.Value == nil {
			missing = append(missing, sc.Field)
			continue
		}
		total = total.Add(*sc.Value)
		present = true
	}

	if !present {
		return nil, missing
	}
	return &total, missing
}

// Resolve annotates a cost record with its derived total and missing
// fields. The record is returned for chaining; a nil record stays nil.
func Resolve(rec *types.CostRecord) *types.CostRecord {
	if rec == nil {
		return nil
	}
	rec.Total, rec.MissingFields = Aggregate(rec)
	return rec
}

// DisplayCost converts an optional total into the caller-visible integer
// cost: truncated toward zero, 0 when unknown.
func DisplayCost(total *decimal.Decimal) int64 {
	if total == nil {
		return 0
	}
	return total.IntPart()
}
