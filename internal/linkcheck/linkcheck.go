package linkcheck

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"quillpress/internal/domain/content"
	"quillpress/internal/markdown"
)

type Problem string

const (
	Dangling  Problem = "dangling"
	Malformed Problem = "malformed"
)

type Warning struct {
	Source  string
	Link    string
	Problem Problem
}

// Checker verifies internal links against a finished output tree. It only
// reports; nothing it finds fails a build.
type Checker struct {
	OutputDir string
	Pipeline  *markdown.Pipeline
	Logger    *zap.Logger
}

// Check re-runs the markdown pipeline over every item and logs a warning for
// each internal link with no matching file or directory under OutputDir, and
// for each link that is neither internal nor external. Fragment-only links
// ("#section") are exempt on purpose: heading ids come from the renderer and
// are not recorded in the output tree.
func (c *Checker) Check(items []*content.Item) []Warning {
	log := c.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var out []Warning
	for _, it := range items {
		for _, dest := range markdown.Links(c.Pipeline.Events(it.Body)) {
			var p Problem
			switch markdown.ClassifyDestination(dest) {
			case markdown.LinkInternal:
				if c.exists(dest) {
					continue
				}
				p = Dangling
			case markdown.LinkMalformed:
				p = Malformed
			default:
				continue
			}
			log.Warn(string(p)+" link",
				zap.String("source", it.Source),
				zap.String("link", dest))
			out = append(out, Warning{Source: it.Source, Link: dest, Problem: p})
		}
	}
	return out
}

func (c *Checker) exists(dest string) bool {
	_, err := os.Stat(filepath.Join(c.OutputDir, filepath.FromSlash(Target(dest))))
	return err == nil
}

// Target maps an internal link to the output-relative path it should resolve to.
func Target(dest string) string {
	if i := strings.IndexAny(dest, "#?"); i >= 0 {
		dest = dest[:i]
	}
	if u, err := url.PathUnescape(dest); err == nil {
		dest = u
	}
	return strings.Trim(dest, "/")
}
