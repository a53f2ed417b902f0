// Package estimate - Offline collaborators
// Deterministic stand-ins for the AI-backed services: the mapper reuses
// the name normalizer, descriptions are fixed one-liners, unknown costs
// stay unknown. Used by the CLI and anywhere no AI backend is wired.
package estimate

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/varshaad-neenopal/automotive-damage-processing/core/normalize"
	"github.com/varshaad-neenopal/automotive-damage-processing/core/types"
)

// HeuristicMapper maps each phrase through the name normalizer
type HeuristicMapper struct {
	Normalizer *normalize.Normalizer
}

// MapComponents implements Mapper
func (m HeuristicMapper) MapComponents(_ context.Context, phrases []string, _, _, _ string, candidates []string) ([]types.ComponentMapping, error) {
	out := make([]types.ComponentMapping, 0, len(phrases))
	for _, phrase := range phrases {
		if strings.TrimSpace(phrase) == "" {
			continue
		}
		out = append(out, types.ComponentMapping{
			Detected: phrase,
			Standard: m.Normalizer.Canonicalize(phrase, candidates),
		})
	}
	return out, nil
}

// StaticDescriber returns a fixed one-line description
type StaticDescriber struct{}

// Describe implements Describer
func (StaticDescriber) Describe(_ context.Context, component, _ string) (string, error) {
	return component + " shows visible damage.", nil
}

// NopEstimator never produces a cost
type NopEstimator struct{}

// EstimateCost implements Estimator
func (NopEstimator) EstimateCost(_ context.Context, _, _, _, _, _ string) (*decimal.Decimal, error) {
	return nil, nil
}

// StaticRegionClassifier answers with a fixed classification
type StaticRegionClassifier struct {
	Domestic bool
}

// IsDomestic implements RegionClassifier
func (c StaticRegionClassifier) IsDomestic(_ context.Context, _ string) (bool, error) {
	return c.Domestic, nil
}

// OfflineCollaborators bundles the deterministic collaborators
func OfflineCollaborators(normalizer *normalize.Normalizer) Collaborators {
	return Collaborators{
		Mapper:    HeuristicMapper{Normalizer: normalizer},
		Estimator: NopEstimator{},
		Describer: StaticDescriber{},
		Region:    StaticRegionClassifier{Domestic: true},
	}
}
