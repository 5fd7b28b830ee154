package lsp

import (
	"context"
	"encoding/json"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/mattn/prettier-langserver/types"
)

func (h *LspHandler) handleTextDocumentDidSave(_ context.Context, _ *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
	if req.Params == nil {
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams}
	}

	var params types.DidSaveTextDocumentParams
	if err := json.Unmarshal(*req.Params, &params); err != nil {
		return nil, err
	}

	if params.Text != nil {
		if err := h.langHandler.OnUpdateFile(params.TextDocument.URI, *params.Text, nil); err != nil {
			return nil, err
		}
	}
	return nil, h.langHandler.OnSaveFile(params.TextDocument.URI)
}
