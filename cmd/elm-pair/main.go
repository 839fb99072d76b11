// Program elm-pair is an editor plugin backend: spawned over stdio by
// a running editor (spec.md §6), it indexes a project's Elm sources,
// classifies the edit an editor reports against the snapshot it held
// before, and -- when the classifier recognizes the change as one of
// spec.md's refactor kinds -- replies with the edits that keep the
// rest of the file consistent.
//
// Usage: elm-pair [--editor neovim|vscode] [--elm PATH] [--debug] [--trace TRACEFILE]
//
// elm-pair talks JSON-RPC 2.0 over stdin/stdout to whatever spawned
// it; there is no other transport and no network listener, mirroring
// how the original implementation is launched once per editor
// session rather than run as a shared daemon.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/trace"
	"sync"

	"github.com/pborman/getopt"
	"github.com/sourcegraph/jsonrpc2"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/jwoudenberg/elm-pair/internal/dirwalker"
	"github.com/jwoudenberg/elm-pair/internal/elmlog"
	"github.com/jwoudenberg/elm-pair/pkg/editor"
	"github.com/jwoudenberg/elm-pair/pkg/elmrefactor"
	"github.com/jwoudenberg/elm-pair/pkg/elmtree"
	"github.com/jwoudenberg/elm-pair/pkg/knowledgebase"
	"github.com/jwoudenberg/elm-pair/pkg/licensing"
)

// exitIfError writes errs to standard error and exits with status 1.
func exitIfError(errs []error) {
	var failed bool
	for _, err := range errs {
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			failed = true
		}
	}
	if failed {
		stop(1)
	}
}

var stop = os.Exit

func main() {
	var editorName string
	var elmPath string
	var debug bool
	var traceP string
	var help bool

	getopt.StringVarLong(&editorName, "editor", 0, "editor this backend was spawned by: neovim, vscode", "NAME")
	getopt.StringVarLong(&elmPath, "elm", 0, "path to the elm compiler binary (default: elm, resolved via PATH)", "PATH")
	getopt.BoolVarLong(&debug, "debug", 0, "write debug-level logs to stderr")
	getopt.StringVarLong(&traceP, "trace", 0, "write trace info to TRACEFILE")
	getopt.BoolVarLong(&help, "help", '?', "display help")
	getopt.SetParameters("[PROJECT DIR]")

	if err := getopt.Getopt(func(getopt.Option) bool { return true }); err != nil {
		fmt.Fprintln(os.Stderr, err)
		getopt.PrintUsage(os.Stderr)
		os.Exit(1)
	}

	if help {
		getopt.CommandLine.PrintUsage(os.Stderr)
		stop(0)
	}

	if traceP != "" {
		fp, err := os.Create(traceP)
		exitIfError([]error{err})
		trace.Start(fp)
		stop = func(c int) { trace.Stop(); os.Exit(c) }
		defer trace.Stop()
	}

	logger, err := elmlog.New(debug)
	exitIfError([]error{err})
	defer logger.Sync()

	kind := parseEditorKind(editorName)

	workDir := "."
	if args := getopt.Args(); len(args) > 0 {
		workDir = args[0]
	}
	absWorkDir, err := filepath.Abs(workDir)
	exitIfError([]error{err})

	eng := newEngine(logger, afero.NewOsFs(), absWorkDir, elmPath, kind)
	eng.indexProject()
	go eng.watch()

	stream := jsonrpc2.NewBufferedStream(stdio{}, jsonrpc2.VSCodeObjectCodec{})
	listener := &editor.Listener{}
	conn := jsonrpc2.NewConn(context.Background(), stream, listener)
	eng.driver = &editor.RPCDriver{Conn: conn, EditorKind: kind}
	listener.Handle = eng.handle

	if err := licensing.ShowInfo(context.Background(), eng.license(), eng.driver, eng.elmPairDir()); err != nil {
		logger.Warn("showing license info", zap.Error(err))
	}

	<-conn.DisconnectNotify()
}

func parseEditorKind(name string) editor.Kind {
	switch name {
	case "neovim":
		return editor.KindNeovim
	case "vscode":
		return editor.KindVSCode
	default:
		return editor.KindUnknown
	}
}

// stdio adapts the process's own stdin/stdout into the
// io.ReadWriteCloser jsonrpc2.NewBufferedStream wants; closing it
// closes both ends of the pipe the editor is talking over.
type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdio) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}

// engine holds every piece of mutable state one elm-pair process
// owns: the project it was spawned inside, the knowledge base of
// export names classifiers and refactors consult (C4), and the last
// snapshot seen of every buffer the editor has reported.
type engine struct {
	logger   *zap.Logger
	fs       afero.Fs
	workDir  string
	kb       *knowledgebase.KnowledgeBase
	compiler *knowledgebase.Compiler
	project  *knowledgebase.Project
	driver   editor.Driver

	mu        sync.Mutex
	snapshots map[elmtree.Buffer]*elmtree.Snapshot
	lic       licensing.License
}

func newEngine(logger *zap.Logger, fs afero.Fs, workDir, elmPath string, kind editor.Kind) *engine {
	return &engine{
		logger:    logger,
		fs:        fs,
		workDir:   workDir,
		kb:        knowledgebase.New(),
		compiler:  &knowledgebase.Compiler{Path: elmPath},
		snapshots: map[elmtree.Buffer]*elmtree.Snapshot{},
		lic:       licensing.NonCommercial,
	}
}

func (e *engine) license() licensing.License {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lic
}

func (e *engine) elmPairDir() string {
	dir := filepath.Join(e.workDir, ".elm-pair")
	_ = e.fs.MkdirAll(dir, 0o755)
	return dir
}

// indexProject locates the nearest elm.json above workDir, parses it,
// and walks its source directories to seed the knowledge base with
// every module's exports, the same population step a freshly opened
// editor buffer would otherwise trigger one file at a time.
func (e *engine) indexProject() {
	root, ok := dirwalker.FindProjectRoot(e.fs, e.workDir)
	if !ok {
		e.logger.Warn("no elm.json found above working directory", zap.String("dir", e.workDir))
		return
	}
	project, err := knowledgebase.Parse(e.fs, root)
	if err != nil {
		e.logger.Warn("parsing elm.json", zap.Error(err))
		return
	}
	e.project = project

	for _, dir := range project.SourceDirs {
		dirwalker.Walk(e.fs, dir, e.logger, func(path string) {
			if !dirwalker.IsElmFile(path) {
				return
			}
			e.indexFile(dir, path)
		})
	}
}

func (e *engine) indexFile(sourceDir, path string) {
	bytes, err := afero.ReadFile(e.fs, path)
	if err != nil {
		e.logger.Warn("reading source file", zap.String("path", path), zap.Error(err))
		return
	}
	snapshot, err := elmtree.FromBytes(elmtree.Buffer{}, string(bytes))
	if err != nil {
		e.logger.Warn("parsing source file", zap.String("path", path), zap.Error(err))
		return
	}
	rel, err := filepath.Rel(sourceDir, path)
	if err != nil {
		return
	}
	moduleName := knowledgebase.ModulePathToName(rel)
	e.kb.Update(moduleName, elmtree.ModuleExports(snapshot))
}

// watch re-indexes a module's exports whenever its source file
// changes on disk, keeping the knowledge base accurate for files no
// buffer is currently open for (spec.md §4.4's "the rest of the
// project" half of the export oracle). Only the source directories
// themselves are watched, not their subdirectories, so changes to
// files in nested module directories are not picked up.
func (e *engine) watch() {
	if e.project == nil {
		return
	}
	w, err := dirwalker.NewWatcher(e.logger, e.project.SourceDirs...)
	if err != nil {
		e.logger.Warn("starting file watcher", zap.Error(err))
		return
	}
	defer w.Close()
	for {
		select {
		case ev, ok := <-w.Events():
			if !ok {
				return
			}
			if dirwalker.IsElmFile(ev.Name) {
				for _, dir := range e.project.SourceDirs {
					if rel, err := filepath.Rel(dir, ev.Name); err == nil && !hasDotDotPrefix(rel) {
						e.indexFile(dir, ev.Name)
						break
					}
				}
			}
		case err, ok := <-w.Errors():
			if !ok {
				return
			}
			e.logger.Warn("watching project files", zap.Error(err))
		}
	}
}

func hasDotDotPrefix(rel string) bool {
	return len(rel) >= 2 && rel[0] == '.' && rel[1] == '.'
}

// handle is the Listener's dispatch table for the three events
// spec.md §6 defines.
func (e *engine) handle(ctx context.Context, ev editor.Event) {
	switch {
	case ev.OpenedNewBuffer != nil:
		e.onOpenedNewBuffer(ctx, ev.OpenedNewBuffer)
	case ev.ModifiedBuffer != nil:
		e.onModifiedBuffer(ctx, ev.ModifiedBuffer)
	case ev.EnteredLicenseKey != nil:
		e.onEnteredLicenseKey(ctx, ev.EnteredLicenseKey)
	}
}

func (e *engine) onOpenedNewBuffer(ctx context.Context, ev *editor.OpenedNewBuffer) {
	snapshot, err := elmtree.FromBytes(ev.Buffer, ev.Bytes)
	if err != nil {
		e.logger.Warn("parsing opened buffer", zap.Stringer("buffer", ev.Buffer), zap.Error(err))
		return
	}
	e.mu.Lock()
	e.snapshots[ev.Buffer] = snapshot
	e.mu.Unlock()
	e.reindexBuffer(snapshot, ev.Path)
}

// onModifiedBuffer applies the reported edits to the buffer's last
// snapshot, classifies the change, and -- unless the editor flagged
// this revision as RefactorAllowed=false (spec.md §6, a snapshot to
// index but not to refactor against, e.g. one mid-undo) -- dispatches
// the matching refactor and asks the driver to apply its edits.
func (e *engine) onModifiedBuffer(ctx context.Context, ev *editor.ModifiedBuffer) {
	e.mu.Lock()
	old, ok := e.snapshots[ev.Buffer]
	e.mu.Unlock()
	if !ok {
		e.logger.Warn("modifiedBuffer for unknown buffer", zap.Stringer("buffer", ev.Buffer))
		return
	}

	new, err := old.Apply(ev.Edits)
	if err != nil {
		e.logger.Warn("applying reported edits", zap.Stringer("buffer", ev.Buffer), zap.Error(err))
		return
	}

	e.mu.Lock()
	e.snapshots[ev.Buffer] = new
	e.mu.Unlock()
	e.reindexBuffer(new, "")

	if !ev.RefactorAllowed {
		return
	}

	edits, kind, err := elmrefactor.Run(e.kb, old, new)
	if err != nil {
		e.logger.Warn("computing refactor", zap.Stringer("buffer", ev.Buffer), zap.Error(err))
		return
	}
	e.logger.Debug("classified change", zap.Stringer("buffer", ev.Buffer), elmlog.Pretty("kind", kind))
	if len(edits) == 0 {
		return
	}
	if err := e.driver.ApplyEdits(ctx, ev.Buffer, edits); err != nil {
		e.logger.Warn("applying refactor edits", zap.Stringer("buffer", ev.Buffer), zap.Error(err))
	}
}

// reindexBuffer updates the knowledge base's record of a buffer's own
// exports. path is used to derive the module name when the buffer's
// own module declaration doesn't parse (a transient state while the
// user types); it may be empty, in which case a snapshot with no
// readable module declaration is simply skipped.
func (e *engine) reindexBuffer(s *elmtree.Snapshot, path string) {
	name, _, ok := elmtree.ModuleDeclaration(s)
	if !ok && e.project != nil && path != "" {
		for _, dir := range e.project.SourceDirs {
			if rel, err := filepath.Rel(dir, path); err == nil && !hasDotDotPrefix(rel) {
				name = knowledgebase.ModulePathToName(rel)
				ok = true
				break
			}
		}
	}
	if !ok {
		return
	}
	e.kb.Update(name, elmtree.ModuleExports(s))
}

// onEnteredLicenseKey records a license key the editor reports. The
// original implementation's own read_license is itself an
// unimplemented stub (always NonCommercial; see
// original_source/elm-pair/src/licensing/mod.rs), so there is no
// verification scheme to port here yet either.
func (e *engine) onEnteredLicenseKey(ctx context.Context, ev *editor.EnteredLicenseKey) {
	e.logger.Info("received license key; license verification is not yet implemented")
	if err := licensing.ShowInfo(ctx, e.license(), e.driver, e.elmPairDir()); err != nil {
		e.logger.Warn("showing license info", zap.Error(err))
	}
}
