package lsp

import (
	"context"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/mattn/prettier-langserver/types"
)

// LspNotifier sends server-initiated notifications over the connection.
type LspNotifier struct {
	conn *jsonrpc2.Conn
}

func NewNotifier(conn *jsonrpc2.Conn) *LspNotifier {
	return &LspNotifier{conn: conn}
}

func (n *LspNotifier) LogMessage(ctx context.Context, typ types.MessageType, message string) {
	n.conn.Notify(ctx, "window/logMessage", &types.LogMessageParams{
		Type:    typ,
		Message: message,
	})
}

func (n *LspNotifier) ShowMessage(ctx context.Context, typ types.MessageType, message string) {
	n.conn.Notify(ctx, "window/showMessage", &types.ShowMessageParams{
		Type:    typ,
		Message: message,
	})
}

func (n *LspNotifier) PublishDiagnostics(ctx context.Context, params *types.PublishDiagnosticsParams) {
	n.conn.Notify(ctx, "textDocument/publishDiagnostics", params)
}

func (n *LspNotifier) ShowDocument(ctx context.Context, uri types.DocumentURI) {
	n.conn.Notify(ctx, "window/showDocument", &types.ShowDocumentParams{
		URI:       uri,
		TakeFocus: true,
	})
}
