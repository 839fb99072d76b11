// Package elmtree implements the source-snapshot model (C1), the
// tree-sitter query layer (C2), and the tree-diff change classifier
// (C3) described in spec.md §3/§4.1-§4.3. A Snapshot pairs an
// immutable rope of UTF-8 bytes with the tree-sitter concrete syntax
// tree parsed from it; every mutation produces a brand new Snapshot
// rather than touching an existing one, the same contract goyang's
// Modules.Parse gives its callers by never mutating a *Statement once
// built.
package elmtree

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jwoudenberg/elm-pair/pkg/rope"
)

// Buffer identifies one editor buffer: a small, session-stable
// (editor, buffer) pair. Buffers are opaque keys; nothing about them
// is persisted across process restarts.
type Buffer struct {
	EditorID int
	BufferID int
}

func (b Buffer) String() string { return fmt.Sprintf("editor %d/buffer %d", b.EditorID, b.BufferID) }

// ByteRange is a half-open [Start, End) span of byte offsets into a
// Snapshot's Bytes.
type ByteRange struct {
	Start, End int
}

// Len returns the number of bytes the range spans.
func (r ByteRange) Len() int { return r.End - r.Start }

// Contains reports whether r fully contains o.
func (r ByteRange) Contains(o ByteRange) bool { return r.Start <= o.Start && o.End <= r.End }

// Overlaps reports whether r and o share any byte. Two ranges that
// merely touch at a point (r.End == o.Start) do not overlap.
func (r ByteRange) Overlaps(o ByteRange) bool { return r.Start < o.End && o.Start < r.End }

// Edit is the (byte_range, replacement_text) pair spec.md §3 defines.
// Edit.Range always refers to coordinates in the snapshot the edit is
// about to be applied to (the "new" snapshot in a refactor
// computation), per §6's wire-format contract.
type Edit struct {
	Range       ByteRange
	Replacement string
}

// Snapshot is an immutable (bytes, tree) pair for one buffer revision.
// A Snapshot is created once and never mutated; Apply returns a fresh
// Snapshot rather than changing the receiver, so every *sitter.Node
// obtained from a Snapshot's Tree stays valid for the lifetime of that
// Snapshot.
type Snapshot struct {
	Buffer   Buffer
	Bytes    rope.Rope
	Tree     *sitter.Tree
	Revision int
}

// FromBytes parses src into a fresh Snapshot at revision 0. FromBytes
// fails only if tree-sitter itself cannot produce a tree (allocation
// failure); syntax errors in src still produce a Snapshot whose tree
// contains ERROR nodes, since the classifier and refactors need to be
// able to reason about buffers mid-edit.
func FromBytes(buffer Buffer, src string) (*Snapshot, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(Language())
	tree, err := parser.ParseCtx(context.Background(), nil, []byte(src))
	if err != nil {
		return nil, fmt.Errorf("elmtree: parsing %s: %w", buffer, err)
	}
	return &Snapshot{
		Buffer:   buffer,
		Bytes:    rope.FromString(src),
		Tree:     tree,
		Revision: 0,
	}, nil
}

// HasErrors reports whether s's tree contains any ERROR or missing
// node, the condition the simulation harness (pkg/simulate) treats as
// "the refactor produced invalid code."
func (s *Snapshot) HasErrors() bool {
	return s.Tree.RootNode().HasError()
}

// Slice returns the source text of r as it appears in s.
func (s *Snapshot) Slice(r ByteRange) string { return s.Bytes.Slice(r.Start, r.End) }

// NodeText returns the source text spanned by n.
func (s *Snapshot) NodeText(n *sitter.Node) string {
	return s.Slice(ByteRange{Start: int(n.StartByte()), End: int(n.EndByte())})
}

// NodeRange returns n's byte range within s.
func NodeRange(n *sitter.Node) ByteRange {
	return ByteRange{Start: int(n.StartByte()), End: int(n.EndByte())}
}

// Apply sorts edits by start ascending (equal-start pure insertions
// keep insertion order), applies them right-to-left against s.Bytes as
// §6's wire-format contract specifies, and reparses incrementally
// using s.Tree as a hint so tree-sitter only has to revisit the
// touched subtree. The returned Snapshot is independent of s; s itself
// is left untouched.
func (s *Snapshot) Apply(edits []Edit) (*Snapshot, error) {
	sorted, err := sortNonOverlapping(edits)
	if err != nil {
		return nil, err
	}

	newBytes := s.Bytes
	newTree := s.Tree.Copy()
	for i := len(sorted) - 1; i >= 0; i-- {
		e := sorted[i]
		oldEnd := pointAt(newBytes, e.Range.End)
		newBytes = newBytes.Splice(e.Range.Start, e.Range.End, e.Replacement)
		newEndIndex := e.Range.Start + len(e.Replacement)
		newTree.Edit(sitter.EditInput{
			StartIndex:  uint32(e.Range.Start),
			OldEndIndex: uint32(e.Range.End),
			NewEndIndex: uint32(newEndIndex),
			StartPoint:  pointAt(s.Bytes, e.Range.Start),
			OldEndPoint: oldEnd,
			NewEndPoint: pointAt(newBytes, newEndIndex),
		})
	}

	parser := sitter.NewParser()
	parser.SetLanguage(Language())
	reparsed, err := parser.ParseCtx(context.Background(), newTree, []byte(newBytes.String()))
	if err != nil {
		return nil, fmt.Errorf("elmtree: reparsing %s: %w", s.Buffer, err)
	}

	return &Snapshot{
		Buffer:   s.Buffer,
		Bytes:    newBytes,
		Tree:     reparsed,
		Revision: s.Revision + 1,
	}, nil
}

// ErrOverlappingEdits is returned by Apply and by
// pkg/elmrefactor.Refactor.Edits when two edits in the same batch
// overlap without being a same-position pair of pure insertions. It
// corresponds to spec.md §7's OverlappingEdits error kind.
type ErrOverlappingEdits struct {
	A, B Edit
}

func (e *ErrOverlappingEdits) Error() string {
	return fmt.Sprintf("elmtree: overlapping edits %+v and %+v", e.A, e.B)
}

// SortEdits sorts edits by start ascending and validates that none of
// them overlap, per spec.md §6's wire-format ordering contract. It is
// exported for pkg/elmrefactor.Refactor.Edits, which needs to perform
// the same validation on an accumulated batch before handing it to a
// Snapshot.Apply call or across the wire to an editor.
func SortEdits(edits []Edit) ([]Edit, error) { return sortNonOverlapping(edits) }

// sortNonOverlapping sorts edits by start ascending, keeping insertion
// order among pure insertions that share a start, and returns
// ErrOverlappingEdits for any other overlap.
func sortNonOverlapping(edits []Edit) ([]Edit, error) {
	indexed := make([]int, len(edits))
	for i := range indexed {
		indexed[i] = i
	}
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)

	// Stable insertion sort by start: the input sets are always small
	// (at most a handful of edits per refactor), so an O(n^2) sort
	// keeping ties in insertion order is simpler to reason about than
	// wiring a custom sort.Interface for stability.
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Range.Start < sorted[j-1].Range.Start; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		samePureInsertion := prev.Range.Start == prev.Range.End &&
			cur.Range.Start == cur.Range.End &&
			prev.Range.Start == cur.Range.Start
		if samePureInsertion {
			continue
		}
		if prev.Range.Overlaps(cur.Range) || prev.Range.End > cur.Range.Start {
			return nil, &ErrOverlappingEdits{A: prev, B: cur}
		}
	}
	return sorted, nil
}

// pointAt computes the tree-sitter Point (line, column) of byte offset
// idx within bytes, needed for the sitter.EditInput tree-sitter uses to
// limit reparsing to the touched subtree.
func pointAt(bytes rope.Rope, idx int) sitter.Point {
	var row, col uint32
	for i := 0; i < idx; i++ {
		if bytes.ByteAt(i) == '\n' {
			row++
			col = 0
		} else {
			col++
		}
	}
	return sitter.Point{Row: row, Column: col}
}
