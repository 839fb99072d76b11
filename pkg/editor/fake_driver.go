package editor

import (
	"context"
	"sync"

	"github.com/jwoudenberg/elm-pair/pkg/elmtree"
)

// FakeDriver is an in-memory Driver used by pkg/licensing's tests: it
// records every call instead of talking to a real editor process.
type FakeDriver struct {
	mu          sync.Mutex
	EditorKind  Kind
	Applied     map[elmtree.Buffer][]elmtree.Edit
	OpenedPaths []string
	ShownPaths  []string
}

func NewFakeDriver(kind Kind) *FakeDriver {
	return &FakeDriver{EditorKind: kind, Applied: map[elmtree.Buffer][]elmtree.Edit{}}
}

func (d *FakeDriver) Kind() Kind { return d.EditorKind }

func (d *FakeDriver) ApplyEdits(ctx context.Context, buffer elmtree.Buffer, edits []elmtree.Edit) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Applied[buffer] = append(d.Applied[buffer], edits...)
	return nil
}

func (d *FakeDriver) OpenFiles(ctx context.Context, paths []string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.OpenedPaths = append(d.OpenedPaths, paths...)
	return nil
}

func (d *FakeDriver) ShowFile(ctx context.Context, path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ShownPaths = append(d.ShownPaths, path)
	return nil
}
