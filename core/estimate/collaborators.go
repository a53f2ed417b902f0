// Package estimate - External collaborator contracts
// The AI-backed services are opaque to the pipeline: every call is
// synchronous, every failure is caught at the call site and mapped to
// the sentinel for that piece of data. Retry policy belongs to the
// collaborator, not here.
package estimate

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/varshaad-neenopal/automotive-damage-processing/core/types"
)

// Mapper converts raw damage phrases into component mappings, using the
// KB candidate names as hints. It must tolerate an empty candidate list.
type Mapper interface {
	// MapComponents returns zero or more {detected, standard} pairs
	MapComponents(ctx context.Context, phrases []string, brand, model, region string, candidates []string) ([]types.ComponentMapping, error)
}

// Estimator supplies a best-guess cost for a component the KB cannot price.
// A nil cost with a nil error means "cannot estimate".
type Estimator interface {
	EstimateCost(ctx context.Context, component, brand, model, region, contextPhrase string) (*decimal.Decimal, error)
}

// Describer produces a one-line human-readable damage description
type Describer interface {
	Describe(ctx context.Context, component, contextPhrase string) (string, error)
}

// RegionClassifier decides whether a region uses domestic pricing.
// Callers fail open toward domestic on any error.
type RegionClassifier interface {
	IsDomestic(ctx context.Context, region string) (bool, error)
}

// Collaborators bundles the external services the pipeline calls.
// Any nil member degrades to its documented sentinel.
type Collaborators struct {
	Mapper    Mapper
	Estimator Estimator
	Describer Describer
	Region    RegionClassifier
}
