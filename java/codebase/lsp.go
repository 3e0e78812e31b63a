package codebase

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/saidoc/java"
	"github.com/dhamidi/saidoc/java/aggregate"
	"github.com/dhamidi/saidoc/java/javadoc"
	"github.com/dhamidi/saidoc/java/link"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "saidoc"

type LSPOptions struct {
	Include  []string
	Exclude  []string
	Jobs     int
	Notation javadoc.Notation
	// Poll is the watcher interval; zero disables watching.
	Poll time.Duration
}

// LSPServer answers hover requests with the aggregated documentation of
// the declaration under the cursor.
type LSPServer struct {
	version string
	opts    LSPOptions
	handler protocol.Handler
	server  *server.Server

	codebase *Codebase
	cancel   context.CancelFunc

	mu       sync.Mutex
	agg      *aggregate.Aggregator
	aggIndex *java.Index
}

func NewLSPServer(version string, opts LSPOptions) *LSPServer {
	ls := &LSPServer{
		version: version,
		opts:    opts,
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
		TextDocumentHover:     ls.textDocumentHover,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	include := ls.opts.Include
	if len(include) == 0 {
		include = DefaultInclude
	}
	cb, err := New(rootDir, WithInclude(include...), WithExclude(ls.opts.Exclude...))
	if err != nil {
		return nil, err
	}
	ls.codebase = cb

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.HoverProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	bg, cancel := context.WithCancel(context.Background())
	ls.cancel = cancel

	if err := ls.codebase.ScanAll(bg, ls.opts.Jobs); err != nil {
		log.Warningf("initial scan: %s", err)
	}
	if ls.opts.Poll > 0 {
		w := NewFileWatcher(ls.codebase, ls.opts.Poll)
		go w.Run(bg)
	}
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.cancel != nil {
		ls.cancel()
	}
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.update(path, params.TextDocument.Text)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.update(path, textChange.Text)
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.update(path, *params.Text)
	} else if err := ls.codebase.ScanFile(path); err != nil {
		log.Warningf("%s: %s", path, err)
	}
	return nil
}

func (ls *LSPServer) update(path, text string) {
	if err := ls.codebase.UpdateFile(path, []byte(text)); err != nil {
		log.Debugf("%s: %s", path, err)
	}
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	decl, ok := ls.codebase.DeclarationAt(path, int(params.Position.Line)+1)
	if !ok {
		return nil, nil
	}

	text, err := Hover(context.Background(), ls.aggregator(), decl)
	if err != nil {
		log.Debugf("hover %s:%d: %s", path, decl.Line, err)
	}
	if text == "" {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: text,
		},
	}, nil
}

// aggregator returns an Aggregator over the current index. Its caches are
// dropped whenever the index was rebuilt.
func (ls *LSPServer) aggregator() *aggregate.Aggregator {
	index := ls.codebase.Index()
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.agg == nil || ls.aggIndex != index {
		var opts []aggregate.Option
		if ls.opts.Notation != nil {
			opts = append(opts, aggregate.WithNotation(ls.opts.Notation))
		}
		ls.agg = aggregate.New(index, opts...)
		ls.aggIndex = index
	}
	return ls.agg
}

// Hover renders the documentation of decl as Markdown. Errors scoped to
// other members of the class are returned alongside the text.
func Hover(ctx context.Context, agg *aggregate.Aggregator, decl Declaration) (string, error) {
	t := java.TypeOf(decl.Class.Name)
	switch decl.Kind {
	case MemberField:
		views, err := agg.Fields(ctx, t)
		var sb strings.Builder
		for _, v := range views {
			if v.Declaring == decl.Class.Name && v.FieldName == decl.Name && !v.Unwrapped {
				writeField(&sb, v)
				return sb.String(), err
			}
		}
		// an @unwrapped field is replaced by the fields of its type
		for _, v := range views {
			if v.UnwrappedFrom == decl.Name {
				writeField(&sb, v)
				sb.WriteString("\n")
			}
		}
		return sb.String(), err

	case MemberMethod:
		methods, err := agg.Methods(ctx, t)
		var sb strings.Builder
		for _, m := range methods {
			if m.Declaring == decl.Class.Name && m.Name == decl.Name {
				writeMethod(&sb, m)
			}
		}
		return sb.String(), err

	case MemberEnumConstant:
		ec, ok := decl.Class.EnumConstant(decl.Name)
		if !ok {
			return "", nil
		}
		return renderDoc(agg.Links(), fmt.Sprintf("**%s.%s**", decl.Class.SimpleName, ec.Name), ec.Javadoc, decl.Class)

	default:
		return renderDoc(agg.Links(), fmt.Sprintf("%s **%s**", decl.Class.Kind, decl.Class.Name), decl.Class.Javadoc, decl.Class)
	}
}

func renderDoc(links *link.Resolver, title, raw string, scope *java.ClassModel) (string, error) {
	c, err := javadoc.Parse(raw, javadoc.Auto)
	if err != nil {
		return title, err
	}
	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n")
	if body := links.Rewrite(c, scope, markdownLink); body != "" {
		sb.WriteString("\n")
		sb.WriteString(body)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func writeField(sb *strings.Builder, v aggregate.FieldView) {
	fmt.Fprintf(sb, "**%s** `%s`\n", v.Name, v.TypeName)
	if v.Description != "" {
		fmt.Fprintf(sb, "\n%s\n", v.Description)
	}
	if v.Desc != "" {
		fmt.Fprintf(sb, "\n_%s_\n", v.Desc)
	}
	if len(v.EnumValues) > 0 {
		var names []string
		for _, ev := range v.EnumValues {
			names = append(names, "`"+ev.Name+"`")
		}
		fmt.Fprintf(sb, "\nOne of %s\n", strings.Join(names, ", "))
	}
	writeLinks(sb, v.Links)
}

func writeMethod(sb *strings.Builder, m aggregate.MethodView) {
	var params []string
	for _, p := range m.Parameters {
		params = append(params, p.Type+" "+p.Name)
	}
	fmt.Fprintf(sb, "`%s %s(%s)`\n", m.ReturnType, m.Name, strings.Join(params, ", "))
	if m.Description != "" {
		fmt.Fprintf(sb, "\n%s\n", m.Description)
	}
	for _, p := range m.Parameters {
		if p.Description != "" {
			fmt.Fprintf(sb, "- `%s`: %s\n", p.Name, p.Description)
		}
	}
	if m.Returns != "" {
		fmt.Fprintf(sb, "- returns: %s\n", m.Returns)
	}
	writeLinks(sb, m.Links)
}

func writeLinks(sb *strings.Builder, refs []link.Reference) {
	var seen []string
	for _, ref := range refs {
		if ref.Resolution.Resolved() {
			seen = append(seen, markdownLink(ref))
		}
	}
	if len(seen) > 0 {
		fmt.Fprintf(sb, "\nSee %s\n", strings.Join(seen, ", "))
	}
}

func markdownLink(ref link.Reference) string {
	switch {
	case ref.Resolution.URL != "":
		return fmt.Sprintf("[%s](%s)", ref.Label(), ref.Resolution.URL)
	case ref.Resolution.Symbol != nil:
		return "`" + ref.Resolution.Symbol.QualifiedName + "`"
	}
	return ref.Label()
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
