// Command tzcheck-lsp runs tzcheck as a stdio LSP server, publishing
// diagnostics for contract files as an editor opens/edits/closes them.
// Grounded on the teacher's cmd/kanso-lsp/main.go: same commonlog/glsp
// wiring and RunStdio entry point, trimmed down to the diagnostics-only
// capability set internal/lsp.Handler advertises (no completion or
// semantic-token provider, since this language has no such story).
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"tzcheck/internal/lsp"
)

const lsName = "tzcheck"

var version = "0.1.0"

func main() {
	commonlog.Configure(1, nil)

	h := lsp.NewHandler()
	handler := protocol.Handler{
		Initialize:            h.Initialize,
		Initialized:           h.Initialized,
		Shutdown:              h.Shutdown,
		TextDocumentDidOpen:   h.TextDocumentDidOpen,
		TextDocumentDidChange: h.TextDocumentDidChange,
		TextDocumentDidClose:  h.TextDocumentDidClose,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Printf("starting %s %s\n", lsName, version)
	if err := s.RunStdio(); err != nil {
		log.Println("tzcheck-lsp:", err)
		os.Exit(1)
	}
}
