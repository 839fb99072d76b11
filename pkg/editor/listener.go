package editor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/jwoudenberg/elm-pair/pkg/elmtree"
)

// Event is the closed set of notifications an editor plugin sends
// (spec.md §6): a freshly opened buffer, a modification to one already
// tracked, or a license key the user entered. Exactly one of the
// pointer fields is non-nil.
type Event struct {
	OpenedNewBuffer   *OpenedNewBuffer
	ModifiedBuffer    *ModifiedBuffer
	EnteredLicenseKey *EnteredLicenseKey
}

type OpenedNewBuffer struct {
	Buffer elmtree.Buffer
	Path   string
	Bytes  string
}

type ModifiedBuffer struct {
	Buffer elmtree.Buffer
	Edits  []elmtree.Edit
	// RefactorAllowed is false when the editor wants this snapshot
	// indexed (so later refactors see accurate scopes/imports) without
	// the engine producing edits for it -- e.g. a buffer revision the
	// editor is about to discard, or one arriving mid-undo (spec.md §6).
	RefactorAllowed bool
}

type EnteredLicenseKey struct {
	Key string
}

// Listener decodes jsonrpc2 notifications from an editor plugin into
// Events and hands them to Handle. It implements jsonrpc2.Handler
// directly, the same shape sourcegraph/jsonrpc2's own examples use for
// a one-object-per-connection server.
type Listener struct {
	Handle func(ctx context.Context, ev Event)
}

// rpcOpenedNewBuffer / rpcModifiedBuffer / rpcEnteredLicenseKey are the
// wire shapes the editor plugin sends. An rpcEdit carries a go-lsp
// Range next to its byte offsets; decodeEvent reads only the byte
// offsets. Elm-pair's own wire protocol is not LSP, but borrowing
// go-lsp's Range/Position types keeps this struct shape consistent
// with the editor-tooling ecosystem rather than inventing a parallel
// one.
type rpcOpenedNewBuffer struct {
	EditorID int    `json:"editorId"`
	BufferID int    `json:"bufferId"`
	Path     string `json:"path"`
	Bytes    string `json:"bytes"`
}

type rpcEdit struct {
	Range       lsp.Range `json:"range"`
	StartByte   int       `json:"startByte"`
	EndByte     int       `json:"endByte"`
	Replacement string    `json:"replacement"`
}

type rpcModifiedBuffer struct {
	EditorID        int       `json:"editorId"`
	BufferID        int       `json:"bufferId"`
	Edits           []rpcEdit `json:"edits"`
	RefactorAllowed bool      `json:"refactorAllowed"`
}

type rpcEnteredLicenseKey struct {
	Key string `json:"key"`
}

// Handle implements jsonrpc2.Handler.
func (l *Listener) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	ev, err := decodeEvent(req)
	if err != nil {
		if req.Notif {
			return
		}
		respondError(ctx, conn, req, err)
		return
	}
	if l.Handle != nil {
		l.Handle(ctx, ev)
	}
	if !req.Notif {
		_ = conn.Reply(ctx, req.ID, struct{}{})
	}
}

func decodeEvent(req *jsonrpc2.Request) (Event, error) {
	switch req.Method {
	case "openedNewBuffer":
		var p rpcOpenedNewBuffer
		if err := unmarshalParams(req, &p); err != nil {
			return Event{}, err
		}
		return Event{OpenedNewBuffer: &OpenedNewBuffer{
			Buffer: elmtree.Buffer{EditorID: p.EditorID, BufferID: p.BufferID},
			Path:   p.Path,
			Bytes:  p.Bytes,
		}}, nil
	case "modifiedBuffer":
		var p rpcModifiedBuffer
		if err := unmarshalParams(req, &p); err != nil {
			return Event{}, err
		}
		edits := make([]elmtree.Edit, len(p.Edits))
		for i, e := range p.Edits {
			edits[i] = elmtree.Edit{
				Range:       elmtree.ByteRange{Start: e.StartByte, End: e.EndByte},
				Replacement: e.Replacement,
			}
		}
		return Event{ModifiedBuffer: &ModifiedBuffer{
			Buffer:          elmtree.Buffer{EditorID: p.EditorID, BufferID: p.BufferID},
			Edits:           edits,
			RefactorAllowed: p.RefactorAllowed,
		}}, nil
	case "enteredLicenseKey":
		var p rpcEnteredLicenseKey
		if err := unmarshalParams(req, &p); err != nil {
			return Event{}, err
		}
		return Event{EnteredLicenseKey: &EnteredLicenseKey{Key: p.Key}}, nil
	default:
		return Event{}, fmt.Errorf("editor: unknown method %q", req.Method)
	}
}

func unmarshalParams(req *jsonrpc2.Request, dst any) error {
	if req.Params == nil {
		return fmt.Errorf("editor: %s: missing params", req.Method)
	}
	return json.Unmarshal(*req.Params, dst)
}

func respondError(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request, err error) {
	_ = conn.ReplyWithError(ctx, req.ID, &jsonrpc2.Error{
		Code:    jsonrpc2.CodeInvalidParams,
		Message: err.Error(),
	})
}
