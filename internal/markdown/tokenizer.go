package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Tokenizer parses markdown with goldmark and flattens the tree into events.
// Footnote definitions and references are parsed but left where they are;
// goldmark's own footnote transformer is not installed.
type Tokenizer struct {
	md goldmark.Markdown
}

func NewTokenizer() *Tokenizer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithBlockParsers(
				util.Prioritized(extension.NewFootnoteBlockParser(), 999),
			),
			parser.WithInlineParsers(
				util.Prioritized(extension.NewFootnoteParser(), 101),
			),
		),
	)
	return &Tokenizer{md: md}
}

// Tokenize returns the event stream of src. Nodes in the stream reference src,
// which must be handed unchanged to the serializer.
func (t *Tokenizer) Tokenize(src []byte) []Event {
	doc := t.md.Parser().Parse(text.NewReader(src), parser.WithContext(parser.NewContext()))
	return flatten(doc)
}

func flatten(doc ast.Node) []Event {
	// references only carry goldmark's index, definitions carry the label
	labels := make(map[int]string)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if fn, ok := n.(*east.Footnote); ok && entering && fn.Index > 0 {
			labels[fn.Index] = string(fn.Ref)
		}
		return ast.WalkContinue, nil
	})

	var out []Event
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch n := n.(type) {
		case *ast.Document, *east.FootnoteList:
			return ast.WalkContinue, nil
		case *east.Footnote:
			if entering {
				out = append(out, FootnoteStart{Label: string(n.Ref)})
			} else {
				out = append(out, FootnoteEnd{Label: string(n.Ref)})
			}
		case *east.FootnoteLink:
			if entering {
				out = append(out, FootnoteReference{Label: labels[n.Index]})
			}
			return ast.WalkSkipChildren, nil
		case *ast.Link:
			if entering {
				out = append(out, LinkStart{
					Destination: string(n.Destination),
					Title:       string(n.Title),
				})
			} else {
				out = append(out, LinkEnd{})
			}
		default:
			// *ast.AutoLink lands here. Its destination is always an
			// http(s), www or mailto URL, so it is never rewritten or
			// checked and renders as an ordinary node.
			if entering {
				out = append(out, Start{Node: n})
			} else {
				out = append(out, End{Node: n})
			}
		}
		return ast.WalkContinue, nil
	})
	return out
}
