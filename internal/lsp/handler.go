package lsp

import (
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Handler implements the LSP server methods for tzcheck: open/change/close
// re-run the parser and checker and republish diagnostics. Grounded on the
// teacher's KansoHandler (internal/lsp/handler.go) — same document-cache
// structure and URI/path handling — trimmed to diagnostics only, since this
// language has no completion or semantic-token story to offer (spec's scope
// is type-checking, not an IDE feature set).
type Handler struct {
	mu      sync.RWMutex
	content map[string]string
}

// NewHandler creates an empty Handler.
func NewHandler() *Handler {
	return &Handler{content: make(map[string]string)}
}

// Initialize advertises this server's capabilities.
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("tzcheck-lsp: initialize")
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
		},
	}, nil
}

// Initialized is a no-op acknowledgement.
func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

// Shutdown is a no-op; there's no background state to tear down beyond the
// document cache, which the process exit reclaims.
func (h *Handler) Shutdown(ctx *glsp.Context) error {
	return nil
}

// TextDocumentDidOpen re-checks the newly opened document.
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	h.store(params.TextDocument.URI, params.TextDocument.Text)
	h.publish(ctx, params.TextDocument.URI)
	return nil
}

// TextDocumentDidChange re-checks the document against its latest full text
// (spec's TextDocumentSyncKindFull means params always carries the whole
// document, never an incremental diff).
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change, ok := params.ContentChanges[len(params.ContentChanges)-1].(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		return fmt.Errorf("unexpected incremental content change for %s", params.TextDocument.URI)
	}
	h.store(params.TextDocument.URI, change.Text)
	h.publish(ctx, params.TextDocument.URI)
	return nil
}

// TextDocumentDidClose drops the document's cached text and clears its
// diagnostics.
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	h.mu.Lock()
	delete(h.content, params.TextDocument.URI)
	h.mu.Unlock()
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (h *Handler) store(uri protocol.DocumentUri, text string) {
	h.mu.Lock()
	h.content[uri] = text
	h.mu.Unlock()
}

func (h *Handler) publish(ctx *glsp.Context, uri protocol.DocumentUri) {
	h.mu.RLock()
	text := h.content[uri]
	h.mu.RUnlock()

	path, err := uriToPath(uri)
	if err != nil {
		path = string(uri)
	}

	diagnostics := Diagnose(path, text)
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}
	path := u.Path
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
