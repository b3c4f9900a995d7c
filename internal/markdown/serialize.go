package markdown

import (
	"bufio"
	"io"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

type rendererFuncs map[ast.NodeKind]renderer.NodeRendererFunc

func (r rendererFuncs) Register(kind ast.NodeKind, f renderer.NodeRendererFunc) {
	r[kind] = f
}

// Serializer writes an event stream as HTML using goldmark's node renderers.
type Serializer struct {
	funcs rendererFuncs
}

type SerializerOptions struct {
	// CodeStyle is a chroma style name for fenced code blocks. Empty disables highlighting.
	CodeStyle string
}

func NewSerializer(opt SerializerOptions) *Serializer {
	nodeRenderers := []renderer.NodeRenderer{
		html.NewRenderer(html.WithUnsafe()),
		extension.NewTableHTMLRenderer(),
		extension.NewStrikethroughHTMLRenderer(),
		extension.NewTaskCheckBoxHTMLRenderer(),
	}
	if opt.CodeStyle != "" {
		nodeRenderers = append(nodeRenderers, highlighting.NewHTMLRenderer(
			highlighting.WithStyle(opt.CodeStyle),
			highlighting.WithFormatOptions(chromahtml.TabWidth(2)),
		))
	}

	funcs := make(rendererFuncs)
	// later registrations win
	for _, nr := range nodeRenderers {
		nr.RegisterFuncs(funcs)
	}
	return &Serializer{funcs: funcs}
}

// Serialize writes events to w. source must be the text the events were tokenized from.
func (s *Serializer) Serialize(w io.Writer, source []byte, events []Event) error {
	bw := bufio.NewWriter(w)

	// set while a renderer has consumed a node's children itself
	var skipping ast.Node

	for _, ev := range events {
		if skipping != nil {
			e, ok := ev.(End)
			if !ok || e.Node != skipping {
				continue
			}
			skipping = nil
		}

		switch e := ev.(type) {
		case Start:
			st, err := s.node(bw, source, e.Node, true)
			if err != nil {
				return err
			}
			if st == ast.WalkSkipChildren {
				skipping = e.Node
			}
		case End:
			if _, err := s.node(bw, source, e.Node, false); err != nil {
				return err
			}
		case LinkStart:
			l := ast.NewLink()
			l.Destination = []byte(e.Destination)
			if e.Title != "" {
				l.Title = []byte(e.Title)
			}
			if _, err := s.node(bw, source, l, true); err != nil {
				return err
			}
		case LinkEnd:
			if _, err := s.node(bw, source, ast.NewLink(), false); err != nil {
				return err
			}
		case Rule:
			hr := ast.NewThematicBreak()
			if _, err := s.node(bw, source, hr, true); err != nil {
				return err
			}
			if _, err := s.node(bw, source, hr, false); err != nil {
				return err
			}
		case HTML:
			if _, err := bw.WriteString(e.Raw); err != nil {
				return err
			}
		case FootnoteStart, FootnoteEnd, FootnoteReference:
			// only meaningful before BottomFootnotes has run
		}
	}
	return bw.Flush()
}

func (s *Serializer) node(w *bufio.Writer, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	f := s.funcs[n.Kind()]
	if f == nil {
		return ast.WalkContinue, nil
	}
	return f(w, source, n, entering)
}
