package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"path/filepath"
	"testing"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/mattn/prettier-langserver/core"
	"github.com/mattn/prettier-langserver/types"
)

func newTestHandler(t *testing.T) *LspHandler {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	langHandler := core.NewHandler(logger, &types.ServerConfig{
		ConfigFile: filepath.Join(t.TempDir(), "config.json"),
		ToolsDir:   t.TempDir(),
	})
	return NewHandler(langHandler, logger)
}

func request(t *testing.T, method string, params any) *jsonrpc2.Request {
	t.Helper()
	req := &jsonrpc2.Request{Method: method}
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			t.Fatal(err)
		}
		msg := json.RawMessage(raw)
		req.Params = &msg
	}
	return req
}

func TestHandleInitialize(t *testing.T) {
	h := newTestHandler(t)
	res, err := h.Handle(context.Background(), nil, request(t, "initialize", types.InitializeParams{}))
	if err != nil {
		t.Fatal(err)
	}
	init, ok := res.(*types.InitializeResult)
	if !ok {
		t.Fatalf("result type %T", res)
	}
	if !init.Capabilities.DocumentFormattingProvider {
		t.Fatal("formatting capability missing")
	}
}

func TestHandleMissingParams(t *testing.T) {
	h := newTestHandler(t)
	for _, method := range []string{"initialize", "textDocument/didOpen", "textDocument/formatting"} {
		_, err := h.Handle(context.Background(), nil, request(t, method, nil))
		var rpcErr *jsonrpc2.Error
		if !errors.As(err, &rpcErr) || rpcErr.Code != jsonrpc2.CodeInvalidParams {
			t.Fatalf("%v: err = %v, want invalid params", method, err)
		}
	}
}

func TestHandleUnknownMethod(t *testing.T) {
	h := newTestHandler(t)
	_, err := h.Handle(context.Background(), nil, request(t, "textDocument/hover", nil))
	var rpcErr *jsonrpc2.Error
	if !errors.As(err, &rpcErr) || rpcErr.Code != jsonrpc2.CodeMethodNotFound {
		t.Fatalf("err = %v, want method not found", err)
	}
}

func TestHandleDidOpenAndDidChange(t *testing.T) {
	h := newTestHandler(t)
	ctx := context.Background()

	open := types.DidOpenTextDocumentParams{
		TextDocument: types.TextDocumentItem{
			URI:        "file:///tmp/app.js",
			LanguageID: "JavaScript",
			Version:    1,
			Text:       "const x=1\n",
		},
	}
	if _, err := h.Handle(ctx, nil, request(t, "textDocument/didOpen", open)); err != nil {
		t.Fatal(err)
	}

	change := types.DidChangeTextDocumentParams{
		TextDocument: types.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: types.TextDocumentIdentifier{URI: "file:///tmp/app.js"},
			Version:                2,
		},
		ContentChanges: []types.TextDocumentContentChangeEvent{{Text: "const x = 1\n"}},
	}
	if _, err := h.Handle(ctx, nil, request(t, "textDocument/didChange", change)); err != nil {
		t.Fatal(err)
	}

	if _, err := h.Handle(ctx, nil, request(t, "textDocument/didClose", types.DidCloseTextDocumentParams{
		TextDocument: types.TextDocumentIdentifier{URI: "file:///tmp/app.js"},
	})); err != nil {
		t.Fatal(err)
	}
}

func TestHandleLifecycleNotifications(t *testing.T) {
	h := newTestHandler(t)
	ctx := context.Background()
	for _, method := range []string{"initialized", "exit"} {
		if _, err := h.Handle(ctx, nil, request(t, method, nil)); err != nil {
			t.Fatalf("%v: %v", method, err)
		}
	}
}
