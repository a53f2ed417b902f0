// Package kb - Immutable knowledge base snapshots
package kb

import (
	"time"

	"github.com/varshaad-neenopal/automotive-damage-processing/core/types"
)

// Snapshot is IMMUTABLE after creation.
// It holds the exact-match row map and the per-triple candidate lists
// together, so readers never observe them in a mixed state.
type Snapshot struct {
	createdAt time.Time

	rows       map[types.NormalizedKey]*types.KnowledgeBaseRow
	candidates map[types.TripleKey][]string

	rowCount int
}

// CreatedAt returns when the snapshot was built
func (s *Snapshot) CreatedAt() time.Time {
	return s.createdAt
}

// Len returns the number of distinct normalized keys
func (s *Snapshot) Len() int {
	return len(s.rows)
}

// RowCount returns the number of source rows loaded, duplicates included
func (s *Snapshot) RowCount() int {
	return s.rowCount
}

// Triples returns the number of distinct (brand, model, region) groups
func (s *Snapshot) Triples() int {
	return len(s.candidates)
}

// Row returns the row for a normalized key
func (s *Snapshot) Row(key types.NormalizedKey) (*types.KnowledgeBaseRow, bool) {
	row, ok := s.rows[key]
	return row, ok
}

// Candidates returns the component display names known for a triple,
// in source row order, duplicates included. Callers must not mutate
// the returned slice.
func (s *Snapshot) Candidates(triple types.TripleKey) []string {
	return s.candidates[triple]
}

// SnapshotBuilder accumulates rows and builds an immutable snapshot
type SnapshotBuilder struct {
	rows       map[types.NormalizedKey]*types.KnowledgeBaseRow
	candidates map[types.TripleKey][]string
	rowCount   int
}

// NewSnapshotBuilder creates an empty builder.
// Building it immediately yields an empty-but-valid snapshot.
func NewSnapshotBuilder() *SnapshotBuilder {
	return &SnapshotBuilder{
		rows:       make(map[types.NormalizedKey]*types.KnowledgeBaseRow),
		candidates: make(map[types.TripleKey][]string),
	}
}

// AddRow parses and indexes one source row.
// A later row with the same normalized key overwrites the earlier one
// (last-write-wins); its display component is still appended to the
// candidate list so candidate order tracks source order.
func (b *SnapshotBuilder) AddRow(raw RawRow) *SnapshotBuilder {
	row := parseRow(raw)
	key := row.Key()
	b.rows[key] = &row
	b.candidates[key.Triple()] = append(b.candidates[key.Triple()], row.Component)
	b.rowCount++
	return b
}

// Build seals the accumulated rows into a snapshot
func (b *SnapshotBuilder) Build() *Snapshot {
	return &Snapshot{
		createdAt:  time.Now().UTC(),
		rows:       b.rows,
		candidates: b.candidates,
		rowCount:   b.rowCount,
	}
}
