// Package elmrefactor implements the edit accumulator (C5), the
// per-change-kind refactor library (C6), and the dispatcher (C7)
// described in spec.md §4.4-§4.7. Each refactor function in this
// package receives the structural change kind pkg/elmtree.Classify
// produced, plus the knowledge-base collaborator it needs to resolve
// cross-module questions (what a module exports, which constructors a
// type has), and returns a Refactor: an accumulated, still-unordered
// batch of edits against the *new* snapshot.
package elmrefactor

import (
	"github.com/jwoudenberg/elm-pair/pkg/elmtree"
)

// Refactor accumulates the edits a refactor function produces. It
// mirrors spec.md §4.4's "build up a list of (range, replacement)
// pairs as you walk the tree, then return them in one batch" shape:
// refactor functions never apply edits themselves, they only describe
// them, so a caller (the dispatcher, or a test) can validate,
// simulate, or dry-run the whole batch atomically.
type Refactor struct {
	snapshot *elmtree.Snapshot
	edits    []elmtree.Edit
}

// New starts a Refactor against new, the post-edit snapshot every
// change-kind classification is relative to.
func New(new *elmtree.Snapshot) *Refactor {
	return &Refactor{snapshot: new}
}

// Snapshot returns the post-edit snapshot this Refactor is being built
// against, for refactor functions that need to re-run queries.
func (r *Refactor) Snapshot() *elmtree.Snapshot { return r.snapshot }

// AddChange records one more (range, replacement) pair.
func (r *Refactor) AddChange(rng elmtree.ByteRange, replacement string) {
	r.edits = append(r.edits, elmtree.Edit{Range: rng, Replacement: replacement})
}

// Remove is a convenience for AddChange(rng, "").
func (r *Refactor) Remove(rng elmtree.ByteRange) { r.AddChange(rng, "") }

// InsertAt is a convenience for a pure insertion: AddChange with a
// zero-length range at pos.
func (r *Refactor) InsertAt(pos int, text string) {
	r.AddChange(elmtree.ByteRange{Start: pos, End: pos}, text)
}

// Len reports how many edits have been accumulated so far.
func (r *Refactor) Len() int { return len(r.edits) }

// Edits validates and returns the accumulated batch, sorted the way
// spec.md §6 requires for the wire format: by start ascending, with
// same-start pure insertions kept in the order AddChange was called.
// It is an error (elmtree.ErrOverlappingEdits, surfacing as spec.md
// §7's OverlappingEdits) for two accumulated edits to overlap any
// other way; a correct refactor function never produces that, so
// seeing the error here means a bug in this package rather than in
// caller input.
func (r *Refactor) Edits() ([]elmtree.Edit, error) {
	return elmtree.SortEdits(r.edits)
}
