package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const Ellipsis = "…"

// Pipeline composes tokenizer, link rewriter, footnote bottomer and serializer.
// A Pipeline holds no per-document state and may be reused across items.
type Pipeline struct {
	tokenizer  *Tokenizer
	rewriter   *Rewriter
	serializer *Serializer
}

type Options struct {
	CodeStyle string
	Logger    *zap.Logger
}

func NewPipeline(opt Options) *Pipeline {
	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		tokenizer:  NewTokenizer(),
		rewriter:   &Rewriter{Logger: log},
		serializer: NewSerializer(SerializerOptions{CodeStyle: opt.CodeStyle}),
	}
}

// Events returns the fully transformed event stream of md without serializing it.
func (p *Pipeline) Events(md string) []Event {
	return p.events([]byte(md))
}

func (p *Pipeline) events(src []byte) []Event {
	return BottomFootnotes(p.rewriter.Rewrite(p.tokenizer.Tokenize(src)))
}

// HTML renders md to HTML.
func (p *Pipeline) HTML(md string) (string, error) {
	src := []byte(md)
	var buf bytes.Buffer
	if err := p.serializer.Serialize(&buf, src, p.events(src)); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return buf.String(), nil
}

// Summary renders the first words whitespace-separated tokens of md, followed by an ellipsis.
func (p *Pipeline) Summary(md string, words int) (string, error) {
	return p.HTML(Truncate(md, words))
}

// Truncate keeps the first n whitespace-separated tokens of s, joined by single
// spaces, and appends an ellipsis.
func Truncate(s string, n int) string {
	fields := strings.Fields(s)
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ") + Ellipsis
}
