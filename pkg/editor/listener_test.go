package editor

import (
	"encoding/json"
	"testing"

	"github.com/sourcegraph/jsonrpc2"
)

func reqWithParams(t *testing.T, method string, params any) *jsonrpc2.Request {
	t.Helper()
	raw, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	rm := json.RawMessage(raw)
	return &jsonrpc2.Request{Method: method, Params: &rm, Notif: true}
}

func TestDecodeEventOpenedNewBuffer(t *testing.T) {
	req := reqWithParams(t, "openedNewBuffer", rpcOpenedNewBuffer{
		EditorID: 1, BufferID: 2, Path: "/a/Main.elm", Bytes: "module Main exposing (main)\n",
	})
	ev, err := decodeEvent(req)
	if err != nil {
		t.Fatalf("decodeEvent: %v", err)
	}
	if ev.OpenedNewBuffer == nil || ev.OpenedNewBuffer.Path != "/a/Main.elm" {
		t.Fatalf("ev = %+v", ev)
	}
}

func TestDecodeEventModifiedBuffer(t *testing.T) {
	req := reqWithParams(t, "modifiedBuffer", rpcModifiedBuffer{
		EditorID: 1, BufferID: 2,
		Edits: []rpcEdit{{StartByte: 3, EndByte: 5, Replacement: "x"}},
	})
	ev, err := decodeEvent(req)
	if err != nil {
		t.Fatalf("decodeEvent: %v", err)
	}
	if ev.ModifiedBuffer == nil || len(ev.ModifiedBuffer.Edits) != 1 {
		t.Fatalf("ev = %+v", ev)
	}
	if ev.ModifiedBuffer.Edits[0].Range.Start != 3 || ev.ModifiedBuffer.Edits[0].Range.End != 5 {
		t.Fatalf("edit = %+v", ev.ModifiedBuffer.Edits[0])
	}
}

func TestDecodeEventModifiedBufferRefactorAllowed(t *testing.T) {
	req := reqWithParams(t, "modifiedBuffer", rpcModifiedBuffer{
		EditorID: 1, BufferID: 2,
		Edits:           []rpcEdit{{StartByte: 0, EndByte: 1, Replacement: "y"}},
		RefactorAllowed: true,
	})
	ev, err := decodeEvent(req)
	if err != nil {
		t.Fatalf("decodeEvent: %v", err)
	}
	if !ev.ModifiedBuffer.RefactorAllowed {
		t.Fatal("expected RefactorAllowed = true")
	}

	req2 := reqWithParams(t, "modifiedBuffer", rpcModifiedBuffer{EditorID: 1, BufferID: 2})
	ev2, err := decodeEvent(req2)
	if err != nil {
		t.Fatalf("decodeEvent: %v", err)
	}
	if ev2.ModifiedBuffer.RefactorAllowed {
		t.Fatal("expected RefactorAllowed = false by default")
	}
}

func TestDecodeEventUnknownMethod(t *testing.T) {
	req := reqWithParams(t, "somethingElse", struct{}{})
	if _, err := decodeEvent(req); err == nil {
		t.Fatal("expected error for unknown method")
	}
}
