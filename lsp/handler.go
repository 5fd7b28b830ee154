package lsp

import (
	"context"
	"fmt"
	"log"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/mattn/prettier-langserver/core"
)

// LspHandler dispatches incoming jsonrpc2 requests to the language handler.
type LspHandler struct {
	langHandler *core.LangHandler
	logger      *log.Logger
}

func NewHandler(langHandler *core.LangHandler, logger *log.Logger) *LspHandler {
	return &LspHandler{langHandler: langHandler, logger: logger}
}

func (h *LspHandler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (result any, err error) {
	switch req.Method {
	case "initialize":
		return h.handleInitialize(ctx, conn, req)
	case "initialized":
		return nil, nil
	case "shutdown":
		return h.handleShutdown(ctx, conn, req)
	case "exit":
		return nil, nil
	case "textDocument/didOpen":
		return h.handleTextDocumentDidOpen(ctx, conn, req)
	case "textDocument/didChange":
		return h.handleTextDocumentDidChange(ctx, conn, req)
	case "textDocument/didSave":
		return h.handleTextDocumentDidSave(ctx, conn, req)
	case "textDocument/didClose":
		return h.handleTextDocumentDidClose(ctx, conn, req)
	case "textDocument/formatting":
		return h.handleTextDocumentFormatting(ctx, conn, req)
	case "workspace/executeCommand":
		return h.handleWorkspaceExecuteCommand(ctx, conn, req)
	case "workspace/didChangeConfiguration":
		return h.handleWorkspaceDidChangeConfiguration(ctx, conn, req)
	}
	return nil, &jsonrpc2.Error{
		Code:    jsonrpc2.CodeMethodNotFound,
		Message: fmt.Sprintf("method not supported: %s", req.Method),
	}
}
