// Package lsp implements a language server that parses every line of a
// document as a sentence and reports the lines the grammar rejects.
package lsp

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/chartparse/chart"
	"github.com/dhamidi/chartparse/format"
	"github.com/dhamidi/chartparse/grammar"
	"github.com/dhamidi/chartparse/tokens"
)

const lsName = "chartparse"

var log = commonlog.GetLogger("chartparse.lsp")

type Server struct {
	grammar    *grammar.Grammar
	privileged []grammar.Symbol
	handler    protocol.Handler
	server     *server.Server
	version    string

	mu        sync.Mutex
	documents map[protocol.DocumentUri]string
}

func NewServer(version string, g *grammar.Grammar, privileged []grammar.Symbol) *Server {
	ls := &Server{
		grammar:    g,
		privileged: privileged,
		version:    version,
		documents:  make(map[protocol.DocumentUri]string),
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentHover:     ls.textDocumentHover,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Infof("serving grammar with start symbol %s", ls.grammar.Start())
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.update(ctx, params.TextDocument.URI, textChange.Text)
		}
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.mu.Lock()
	delete(ls.documents, params.TextDocument.URI)
	ls.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	ls.mu.Lock()
	text, ok := ls.documents[params.TextDocument.URI]
	ls.mu.Unlock()
	if !ok {
		return nil, nil
	}

	value := ls.HoverText(text, int(params.Position.Line))
	if value == "" {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: value,
		},
	}, nil
}

func (ls *Server) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	ls.mu.Lock()
	ls.documents[uri] = text
	ls.mu.Unlock()

	diagnostics := ls.Diagnostics(text)
	log.Debugf("%s: %d diagnostics", uri, len(diagnostics))

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// Diagnostics parses every non-blank line of text. Rejected lines get an
// error, ambiguous lines an information diagnostic.
func (ls *Server) Diagnostics(text string) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	for _, line := range tokens.Lines(text) {
		result := chart.Parse(line.Tokens, ls.grammar, ls.privileged)

		var severity protocol.DiagnosticSeverity
		var message string
		switch {
		case !result.Succeeded():
			severity = protocol.DiagnosticSeverityError
			message = fmt.Sprintf("no derivation for %q", strings.Join(line.Tokens, " "))
		case result.Ambiguous():
			severity = protocol.DiagnosticSeverityInformation
			message = fmt.Sprintf("ambiguous: %d derivations", len(result.Derivations))
		default:
			continue
		}

		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    lineRange(line),
			Severity: &severity,
			Source:   stringPtr(lsName),
			Message:  message,
		})
	}
	return diagnostics
}

// HoverText describes the parse of the given zero-based line as markdown,
// or returns "" for blank lines.
func (ls *Server) HoverText(text string, lineNumber int) string {
	for _, line := range tokens.Lines(text) {
		if line.Number != lineNumber {
			continue
		}
		result := chart.Parse(line.Tokens, ls.grammar, ls.privileged)

		var sb strings.Builder
		sb.WriteString(format.Summary(result))
		trees, err := result.Trees()
		if err != nil {
			log.Errorf("line %d: %s", lineNumber, err)
			return sb.String()
		}
		for _, tree := range trees {
			sb.WriteString("\n\n    ")
			sb.WriteString(tree.String())
		}
		return sb.String()
	}
	return ""
}

func lineRange(line tokens.Line) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: protocol.UInteger(line.Number), Character: 0},
		End: protocol.Position{
			Line:      protocol.UInteger(line.Number),
			Character: protocol.UInteger(len(utf16.Encode([]rune(line.Text)))),
		},
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func stringPtr(s string) *string {
	return &s
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
