package lsp

import (
	"context"

	"github.com/sourcegraph/jsonrpc2"
)

func (h *LspHandler) handleShutdown(_ context.Context, conn *jsonrpc2.Conn, _ *jsonrpc2.Request) (any, error) {
	return nil, conn.Close()
}
