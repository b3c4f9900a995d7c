package markdown

import (
	"fmt"
	"html"
	"sort"
	"strings"
)

const backrefGlyph = "↩"

type footnoteUsage struct {
	order int // position of the first reference, from 1
	count int
}

type footnoteBody struct {
	label  string
	events []Event
}

// BottomFootnotes moves footnote definitions to the end of the document, in
// the order they are first referenced, GitHub style.
//
// Every reference becomes an inline anchor numbered by first use. Definitions
// that are never referenced are dropped. Each kept definition gets one
// back-reference per use, placed inside its final paragraph when the body
// ends with one.
//
// Definitions nested inside definitions are collected with a stack of open
// bodies but are not checked for well-formedness: an unmatched end is
// ignored and a definition that is never closed is dropped, and in both cases
// numbering may be off.
func BottomFootnotes(events []Event) []Event {
	var (
		main   = make([]Event, 0, len(events))
		open   []footnoteBody
		bodies []footnoteBody
		usage  = make(map[string]*footnoteUsage)
	)

	emit := func(ev Event) {
		if n := len(open); n > 0 {
			open[n-1].events = append(open[n-1].events, ev)
			return
		}
		main = append(main, ev)
	}

	for _, ev := range events {
		switch e := ev.(type) {
		case FootnoteStart:
			open = append(open, footnoteBody{label: e.Label, events: []Event{ev}})
		case FootnoteEnd:
			n := len(open)
			if n == 0 {
				continue
			}
			body := open[n-1]
			open = open[:n-1]
			body.events = append(body.events, ev)
			bodies = append(bodies, body)
		case FootnoteReference:
			u, ok := usage[e.Label]
			if !ok {
				u = &footnoteUsage{order: len(usage) + 1}
				usage[e.Label] = u
			}
			u.count++
			emit(HTML{Raw: referenceAnchor(e.Label, u.order, u.count)})
		default:
			emit(ev)
		}
	}

	kept := make([]footnoteBody, 0, len(bodies))
	seen := make(map[string]bool, len(bodies))
	for _, b := range bodies {
		if u := usage[b.label]; u == nil || u.count == 0 || seen[b.label] {
			continue
		}
		seen[b.label] = true
		kept = append(kept, b)
	}
	if len(kept) == 0 {
		return main
	}
	// first-reference order, not definition order
	sort.SliceStable(kept, func(i, j int) bool {
		return usage[kept[i].label].order < usage[kept[j].label].order
	})

	main = append(main, Rule{}, HTML{Raw: "<ol class=\"footnotes-list\">\n"})
	for _, b := range kept {
		main = append(main, bottomDefinition(b, usage[b.label].count)...)
	}
	return append(main, HTML{Raw: "</ol>\n"})
}

func bottomDefinition(b footnoteBody, uses int) []Event {
	out := make([]Event, 0, len(b.events))
	last := len(b.events) - 2
	written := false

	for i, ev := range b.events {
		switch ev.(type) {
		case FootnoteStart:
			out = append(out, HTML{Raw: fmt.Sprintf("<li id=\"fn-%s\">\n", html.EscapeString(b.label))})
		case FootnoteEnd:
			if written {
				out = append(out, HTML{Raw: "</li>\n"})
				continue
			}
			written = true
			out = append(out, HTML{Raw: backrefs(b.label, uses) + "</li>\n"})
		default:
			if !written && i >= last && isParagraphEnd(ev) {
				written = true
				out = append(out, HTML{Raw: backrefs(b.label, uses) + "</p>\n"})
				continue
			}
			out = append(out, ev)
		}
	}
	return out
}

func referenceAnchor(label string, n, use int) string {
	l := html.EscapeString(label)
	return fmt.Sprintf(`<sup class="footnote-reference" id="fr-%s-%d"><a href="#fn-%s">[%d]</a></sup>`, l, use, l, n)
}

func backrefs(label string, uses int) string {
	l := html.EscapeString(label)
	var b strings.Builder
	for k := 1; k <= uses; k++ {
		if k == 1 {
			fmt.Fprintf(&b, ` <a href="#fr-%s-%d">%s</a>`, l, k, backrefGlyph)
		} else {
			fmt.Fprintf(&b, ` <a href="#fr-%s-%d">%s%d</a>`, l, k, backrefGlyph, k)
		}
	}
	return b.String()
}
