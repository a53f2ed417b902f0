// Package estimate orchestrates damage phrases into a priced estimate.
// The pipeline runs Collect, Map, Price, Finalize strictly in sequence;
// there is no fatal error path for well-formed input. Individual
// collaborator failures degrade single line items, never the estimate.
package estimate

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/varshaad-neenopal/automotive-damage-processing/core/costing"
	"github.com/varshaad-neenopal/automotive-damage-processing/core/kb"
	"github.com/varshaad-neenopal/automotive-damage-processing/core/normalize"
	"github.com/varshaad-neenopal/automotive-damage-processing/core/types"
	"github.com/varshaad-neenopal/automotive-damage-processing/internal/logging"
)

const (
	// fallbackStandard is the synthesized component when mapping yields nothing
	fallbackStandard = "General Body Repair"

	// labourContext is the estimator context for the labour line
	labourContext = "General repair labour"

	// labourDescription is the describer component for the labour line
	labourDescription = "General repair"

	disclaimer = "Disclaimer: Please note that this particular estimate is based on inputs received. For a more detailed & accurate estimate, please."

	crossBorderNote = "NOTE: This estimate is calculated using India-based repair standards and costs. For locations outside India, the figures are approximate and meant for reference only."
)

// Request is the pipeline input. DamagePhrases must already be flattened
// to plain strings (see Flatten) and is never empty for well-formed input.
type Request struct {
	Brand         string
	Model         string
	Region        string
	DamagePhrases []string
}

// Options tunes estimate presentation
type Options struct {
	// CurrencySymbol is the display symbol on the result
	CurrencySymbol string

	// LabourComponent is the KB component name for the labour line
	LabourComponent string
}

func (o Options) withDefaults() Options {
	if o.CurrencySymbol == "" {
		o.CurrencySymbol = "₹"
	}
	if o.LabourComponent == "" {
		o.LabourComponent = "Labour"
	}
	return o
}

// Pipeline reconciles damage phrases against the KB and collaborators
type Pipeline struct {
	index      *kb.Index
	normalizer *normalize.Normalizer
	collab     Collaborators
	opts       Options
}

// NewPipeline creates a pipeline over an index, a normalizer and the
// external collaborators
func NewPipeline(index *kb.Index, normalizer *normalize.Normalizer, collab Collaborators, opts Options) *Pipeline {
	return &Pipeline{
		index:      index,
		normalizer: normalizer,
		collab:     collab,
		opts:       opts.withDefaults(),
	}
}

// Collect deduplicates raw phrases preserving first-seen order.
// Matching is case-sensitive and exact; case-insensitivity belongs to
// the synonym and fuzzy layers downstream.
func Collect(phrases []string) []string {
	seen := make(map[string]bool, len(phrases))
	out := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// Estimate runs the full pipeline and always returns a result
func (p *Pipeline) Estimate(ctx context.Context, req Request) *types.EstimateResult {
	phrases := Collect(req.DamagePhrases)
	isDomestic := p.classifyRegion(ctx, req.Region)
	candidates := p.index.CandidatesFor(req.Brand, req.Model, req.Region)

	mappings := p.mapComponents(ctx, phrases, req, candidates)

	var (
		items        []types.EstimateLineItem
		notes        []string
		runningTotal = decimal.Zero
		sequence     int
	)

	for _, m := range mappings {
		sequence++
		standard := p.normalizer.Canonicalize(m.EffectiveStandard(), candidates)

		rec := costing.Resolve(p.index.Lookup(req.Brand, req.Model, req.Region, standard))
		if rec != nil {
			if rec.Total != nil {
				runningTotal = runningTotal.Add(*rec.Total)
			}
			source := types.SourceKnowledgeBase
			if len(rec.MissingFields) > 0 {
				source = types.SourceKnowledgeBaseATPAR
				notes = append(notes, fmt.Sprintf("%s: ATPAR for %s (requires inspection).",
					rec.Component, strings.Join(rec.MissingFields, ", ")))
			}
			items = append(items, types.EstimateLineItem{
				Sequence:    sequence,
				Component:   rec.Component,
				Description: p.describe(ctx, rec.Component, m.Detected),
				Cost:        costing.DisplayCost(rec.Total),
				CostSource:  source,
			})
			continue
		}

		cost := p.estimateCost(ctx, standard, req, m.Detected)
		source := types.SourceAIGenerated
		if cost != nil {
			runningTotal = runningTotal.Add(*cost)
		} else {
			source = types.SourceUnavailable
			notes = append(notes, fmt.Sprintf("%s: cost unavailable; manual estimate required.", standard))
		}
		items = append(items, types.EstimateLineItem{
			Sequence:    sequence,
			Component:   standard,
			Description: p.describe(ctx, standard, m.Detected),
			Cost:        costing.DisplayCost(cost),
			CostSource:  source,
		})
	}

	// Exactly one labour line, appended only when a nonzero total is obtainable
	labourTotal, labourSource := p.labourCost(ctx, req)
	if labourTotal != nil && !labourTotal.IsZero() {
		sequence++
		items = append(items, types.EstimateLineItem{
			Sequence:    sequence,
			Component:   p.opts.LabourComponent,
			Description: p.describe(ctx, labourDescription, p.opts.LabourComponent),
			Cost:        labourTotal.IntPart(),
			CostSource:  labourSource,
		})
		runningTotal = runningTotal.Add(*labourTotal)
	}

	allNotes := make([]string, 0, len(notes)+2)
	allNotes = append(allNotes, disclaimer)
	for _, n := range notes {
		allNotes = append(allNotes, "NOTE: "+n)
	}
	if !isDomestic {
		allNotes = append(allNotes, crossBorderNote)
	}

	result := &types.EstimateResult{
		ID:         uuid.NewString(),
		Currency:   p.opts.CurrencySymbol,
		Items:      items,
		Total:      runningTotal.IntPart(),
		Notes:      allNotes,
		IsDomestic: isDomestic,
	}

	logging.Info("estimate built",
		zap.String("estimate_id", result.ID),
		zap.String("brand", req.Brand),
		zap.String("model", req.Model),
		zap.String("region", req.Region),
		zap.Int("items", len(result.Items)),
		zap.Int64("total", result.Total))

	return result
}

// mapComponents invokes the mapper and applies the fallback and dedupe
// rules: a synthesized General Body Repair mapping when nothing comes
// back, then first-seen-wins dedupe on the effective standard name.
func (p *Pipeline) mapComponents(ctx context.Context, phrases []string, req Request, candidates []string) []types.ComponentMapping {
	var mappings []types.ComponentMapping
	if p.collab.Mapper != nil {
		mapped, err := p.collab.Mapper.MapComponents(ctx, phrases, req.Brand, req.Model, req.Region, candidates)
		if err != nil {
			logging.Warn("mapper collaborator failed", zap.Error(err))
		} else {
			for _, m := range mapped {
				if strings.TrimSpace(m.Detected) == "" {
					continue
				}
				mappings = append(mappings, m)
			}
		}
	}

	if len(mappings) == 0 && len(phrases) > 0 {
		mappings = []types.ComponentMapping{{Detected: phrases[0], Standard: fallbackStandard}}
	}

	seen := make(map[string]bool, len(mappings))
	out := make([]types.ComponentMapping, 0, len(mappings))
	for _, m := range mappings {
		std := m.EffectiveStandard()
		if seen[std] {
			continue
		}
		seen[std] = true
		out = append(out, m)
	}
	return out
}

// labourCost prices the labour line: KB first, estimator fallback
func (p *Pipeline) labourCost(ctx context.Context, req Request) (*decimal.Decimal, types.CostSource) {
	rec := costing.Resolve(p.index.Lookup(req.Brand, req.Model, req.Region, p.opts.LabourComponent))
	if rec != nil {
		return rec.Total, types.SourceKnowledgeBase
	}
	return p.estimateCost(ctx, p.opts.LabourComponent, req, labourContext), types.SourceAIGenerated
}

// estimateCost calls the estimator, degrading to nil on any failure
func (p *Pipeline) estimateCost(ctx context.Context, component string, req Request, contextPhrase string) *decimal.Decimal {
	if p.collab.Estimator == nil {
		return nil
	}
	cost, err := p.collab.Estimator.EstimateCost(ctx, component, req.Brand, req.Model, req.Region, contextPhrase)
	if err != nil {
		logging.Warn("estimator collaborator failed",
			zap.String("component", component), zap.Error(err))
		return nil
	}
	return cost
}

// describe calls the describer, degrading to a fixed one-liner
func (p *Pipeline) describe(ctx context.Context, component, contextPhrase string) string {
	if p.collab.Describer != nil {
		desc, err := p.collab.Describer.Describe(ctx, component, contextPhrase)
		if err == nil && strings.TrimSpace(desc) != "" {
			return desc
		}
		if err != nil {
			logging.Warn("describer collaborator failed",
				zap.String("component", component), zap.Error(err))
		}
	}
	return fmt.Sprintf("%s shows visible damage.", component)
}

// classifyRegion fails open toward domestic pricing
func (p *Pipeline) classifyRegion(ctx context.Context, region string) bool {
	if p.collab.Region == nil {
		return true
	}
	domestic, err := p.collab.Region.IsDomestic(ctx, region)
	if err != nil {
		logging.Warn("region classifier failed", zap.String("region", region), zap.Error(err))
		return true
	}
	return domestic
}
