// Package kb indexes repair cost rows for exact and fuzzy lookup.
// The index publishes immutable snapshots: readers hold whatever snapshot
// is current, reload builds a full replacement and swaps it atomically.
// Readers never mutate a snapshot.
package kb

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/varshaad-neenopal/automotive-damage-processing/core/similarity"
	"github.com/varshaad-neenopal/automotive-damage-processing/core/types"
	"github.com/varshaad-neenopal/automotive-damage-processing/internal/errors"
	"github.com/varshaad-neenopal/automotive-damage-processing/internal/logging"
)

// RowSource yields raw tabular rows for the index
type RowSource interface {
	// Fetch returns all rows from the source
	Fetch(ctx context.Context) ([]RawRow, error)
}

// Index is the process-wide knowledge base.
// Safe for concurrent readers; Load and LoadFrom are single-writer.
type Index struct {
	sim  similarity.Func
	snap atomic.Pointer[Snapshot]
}

// NewIndex creates an index holding an empty-but-valid snapshot
func NewIndex(sim similarity.Func) *Index {
	idx := &Index{sim: sim}
	idx.snap.Store(NewSnapshotBuilder().Build())
	return idx
}

// NewDefaultIndex creates an index with the default similarity scorer
func NewDefaultIndex() *Index {
	return NewIndex(similarity.Default())
}

// Load builds a snapshot from rows and publishes it atomically
func (i *Index) Load(rows []RawRow) {
	b := NewSnapshotBuilder()
	for _, raw := range rows {
		b.AddRow(raw)
	}
	snap := b.Build()
	i.snap.Store(snap)
	logging.Info("knowledge base loaded",
		zap.Int("rows", snap.RowCount()),
		zap.Int("keys", snap.Len()),
		zap.Int("triples", snap.Triples()))
}

// LoadFrom fetches rows from a source and publishes them.
// A source failure degrades to an empty-but-valid snapshot so the rest
// of the process keeps working; the error is returned for logging.
func (i *Index) LoadFrom(ctx context.Context, src RowSource) error {
	rows, err := src.Fetch(ctx)
	if err != nil {
		i.snap.Store(NewSnapshotBuilder().Build())
		logging.Warn("knowledge base source failed, continuing with empty index",
			zap.Error(err))
		return errors.DataSource("failed to read knowledge base rows", err)
	}
	i.Load(rows)
	return nil
}

// Snapshot returns the current snapshot
func (i *Index) Snapshot() *Snapshot {
	return i.snap.Load()
}

// Lookup resolves a component cost record for (brand, model, region).
// Exact normalized lookup first; on a miss, the closest known component
// for the triple wins if it clears the lookup threshold. Returns nil
// when nothing matches.
func (i *Index) Lookup(brand, model, region, component string) *types.CostRecord {
	snap := i.Snapshot()
	key := types.NewNormalizedKey(brand, model, region, component)

	if row, ok := snap.Row(key); ok {
		return row.CostRecord()
	}

	triple := key.Triple()
	candidates := snap.Candidates(triple)
	if len(candidates) == 0 {
		return nil
	}

	normalized := make([]string, len(candidates))
	for n, c := range candidates {
		normalized[n] = types.NormalizeTerm(c)
	}

	match, ok := similarity.BestMatch(i.sim, key.Component, normalized, similarity.LookupThreshold)
	if !ok {
		return nil
	}

	row, ok := snap.Row(types.NormalizedKey{
		Brand:     triple.Brand,
		Model:     triple.Model,
		Region:    triple.Region,
		Component: match,
	})
	if !ok {
		return nil
	}
	return row.CostRecord()
}

// CandidatesFor returns the known component display names for a triple.
// The slice may be empty and must not be mutated.
func (i *Index) CandidatesFor(brand, model, region string) []string {
	return i.Snapshot().Candidates(types.NewTripleKey(brand, model, region))
}
