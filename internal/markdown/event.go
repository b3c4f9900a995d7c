package markdown

import (
	"strings"

	"github.com/yuin/goldmark/ast"
)

// Event is one structural token of a flattened markdown document.
// The set of variants is closed; switch on the concrete type.
type Event interface {
	event()
}

// Start opens a goldmark node. Leaf nodes get a Start and an End too.
type Start struct{ Node ast.Node }

// End closes the node opened by the Start carrying the same Node.
type End struct{ Node ast.Node }

// LinkStart opens an inline link. Destination is the raw target as written.
type LinkStart struct {
	Destination string
	Title       string
}

type LinkEnd struct{}

// FootnoteStart opens a footnote definition body.
type FootnoteStart struct{ Label string }

type FootnoteEnd struct{ Label string }

// FootnoteReference is an inline [^label] whose label has a definition.
type FootnoteReference struct{ Label string }

// HTML is a raw fragment written to the output unchanged.
type HTML struct{ Raw string }

// Rule is a thematic break.
type Rule struct{}

func (Start) event()             {}
func (End) event()               {}
func (LinkStart) event()         {}
func (LinkEnd) event()           {}
func (FootnoteStart) event()     {}
func (FootnoteEnd) event()       {}
func (FootnoteReference) event() {}
func (HTML) event()              {}
func (Rule) event()              {}

func isParagraphEnd(ev Event) bool {
	e, ok := ev.(End)
	return ok && e.Node.Kind() == ast.KindParagraph
}

type LinkKind int

const (
	LinkMalformed LinkKind = iota
	LinkInternal
	LinkExternal
	LinkFragment
)

func (k LinkKind) String() string {
	switch k {
	case LinkInternal:
		return "internal"
	case LinkExternal:
		return "external"
	case LinkFragment:
		return "fragment"
	default:
		return "malformed"
	}
}

// ClassifyDestination sorts a link target into site-internal ("/..."),
// external ("http...", "mailto..."), in-page ("#...") or malformed.
func ClassifyDestination(dest string) LinkKind {
	switch {
	case strings.HasPrefix(dest, "/"):
		return LinkInternal
	case strings.HasPrefix(dest, "http"), strings.HasPrefix(dest, "mailto"):
		return LinkExternal
	case strings.HasPrefix(dest, "#"):
		return LinkFragment
	}
	return LinkMalformed
}

// Links returns the destinations of every LinkStart in events, in order.
func Links(events []Event) []string {
	var out []string
	for _, ev := range events {
		if l, ok := ev.(LinkStart); ok {
			out = append(out, l.Destination)
		}
	}
	return out
}
