// Package types defines the data contracts for damage estimation.
package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CostSource identifies where a line item cost came from
type CostSource string

const (
	// SourceKnowledgeBase means every sub-cost was priced from the KB
	SourceKnowledgeBase CostSource = "knowledge_base"

	// SourceKnowledgeBaseATPAR means the KB row had at-par fields requiring inspection
	SourceKnowledgeBaseATPAR CostSource = "knowledge_base_atpar"

	// SourceAIGenerated means the cost came from the external estimator
	SourceAIGenerated CostSource = "ai_generated"

	// SourceUnavailable means no cost could be obtained
	SourceUnavailable CostSource = "unavailable"
)

// String returns the string representation
func (s CostSource) String() string {
	return string(s)
}

// Canonical cost field names, in display order.
const (
	FieldPartCost     = "part_cost"
	FieldFittingCost  = "fitting_cost"
	FieldDaintingCost = "dainting_cost"
	FieldPaintCost    = "paint_cost"
	FieldOtherCost    = "other_cost"
)

// CostFields lists the five sub-cost fields in canonical order
var CostFields = []string{
	FieldPartCost,
	FieldFittingCost,
	FieldDaintingCost,
	FieldPaintCost,
	FieldOtherCost,
}

// NormalizeTerm lower-cases and strips whitespace from a lookup term.
// Used for keys only, never for display.
func NormalizeTerm(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "")
}

// NormalizedKey is the 4-tuple lookup key for a KB row
type NormalizedKey struct {
	Brand     string
	Model     string
	Region    string
	Component string
}

// NewNormalizedKey builds a lookup key from display strings
func NewNormalizedKey(brand, model, region, component string) NormalizedKey {
	return NormalizedKey{
		Brand:     NormalizeTerm(brand),
		Model:     NormalizeTerm(model),
		Region:    NormalizeTerm(region),
		Component: NormalizeTerm(component),
	}
}

// Triple returns the (brand, model, region) portion of the key
func (k NormalizedKey) Triple() TripleKey {
	return TripleKey{Brand: k.Brand, Model: k.Model, Region: k.Region}
}

// TripleKey is the normalized (brand, model, region) grouping key
type TripleKey struct {
	Brand  string
	Model  string
	Region string
}

// NewTripleKey builds a grouping key from display strings
func NewTripleKey(brand, model, region string) TripleKey {
	return TripleKey{
		Brand:  NormalizeTerm(brand),
		Model:  NormalizeTerm(model),
		Region: NormalizeTerm(region),
	}
}

// KnowledgeBaseRow is one canonical cost record.
// Display strings keep their source casing and spacing; a nil cost
// pointer means the field is at-par (price on inspection).
type KnowledgeBaseRow struct {
	Brand     string `json:"brand"`
	Model     string `json:"model"`
	Region    string `json:"region"`
	Component string `json:"component"`

	PartCost     *decimal.Decimal `json:"part_cost,omitempty"`
	FittingCost  *decimal.Decimal `json:"fitting_cost,omitempty"`
	DaintingCost *decimal.Decimal `json:"dainting_cost,omitempty"`
	PaintCost    *decimal.Decimal `json:"paint_cost,omitempty"`
	OtherCost    *decimal.Decimal `json:"other_cost,omitempty"`
}

// Key returns the normalized 4-tuple lookup key
func (r *KnowledgeBaseRow) Key() NormalizedKey {
	return NewNormalizedKey(r.Brand, r.Model, r.Region, r.Component)
}

// CostRecord converts the row into a resolvable cost record
func (r *KnowledgeBaseRow) CostRecord() *CostRecord {
	return &CostRecord{
		Component: r.Component,
		Part:      r.PartCost,
		Fitting:   r.FittingCost,
		Dainting:  r.DaintingCost,
		Paint:     r.PaintCost,
		Other:     r.OtherCost,
	}
}

// CostRecord holds the resolved costs for one component.
// Total and MissingFields are derived by the cost aggregator.
type CostRecord struct {
	Component string `json:"component"`

	Part     *decimal.Decimal `json:"part_cost,omitempty"`
	Fitting  *decimal.Decimal `json:"fitting_cost,omitempty"`
	Dainting *decimal.Decimal `json:"dainting_cost,omitempty"`
	Paint    *decimal.Decimal `json:"paint_cost,omitempty"`
	Other    *decimal.Decimal `json:"other_cost,omitempty"`

	// Total is nil when every sub-cost is at-par
	Total *decimal.Decimal `json:"total,omitempty"`

	// MissingFields lists at-par field names in canonical order
	MissingFields []string `json:"missing_fields,omitempty"`
}

// SubCost pairs a canonical field name with its value
type SubCost struct {
	Field string
	Value *decimal.Decimal
}

// SubCosts returns the five sub-costs in canonical field order
func (c *CostRecord) SubCosts() []SubCost {
	return []SubCost{
		{FieldPartCost, c.Part},
		{FieldFittingCost, c.Fitting},
		{FieldDaintingCost, c.Dainting},
		{FieldPaintCost, c.Paint},
		{FieldOtherCost, c.Other},
	}
}

// ComponentMapping reconciles a raw damage phrase to a canonical component.
// Detected is never empty; Standard falls back to Detected when the
// mapper found no canonical name.
type ComponentMapping struct {
	Detected string `json:"detected"`
	Standard string `json:"standard"`
}

// EffectiveStandard returns the standard name, defaulting to the detected phrase
func (m ComponentMapping) EffectiveStandard() string {
	if m.Standard != "" {
		return m.Standard
	}
	return m.Detected
}

// EstimateLineItem is one priced row of the estimate
type EstimateLineItem struct {
	// Sequence is 1-based and follows stable mapping order
	Sequence    int    `json:"sequence"`
	Component   string `json:"component"`
	Description string `json:"description"`

	// Cost is the truncated integer display cost; 0 when unknown
	Cost       int64      `json:"cost"`
	CostSource CostSource `json:"cost_source"`
}

// EstimateResult is the caller-visible estimate
type EstimateResult struct {
	ID         string             `json:"id"`
	Currency   string             `json:"currency"`
	Items      []EstimateLineItem `json:"items"`
	Total      int64              `json:"total"`
	Notes      []string           `json:"notes"`
	IsDomestic bool               `json:"is_domestic"`
}
