package markdown

import (
	"strings"

	"go.uber.org/zap"
)

// ArchiveMarker prefixes link destinations that should be archived. It is
// stripped before rendering.
const ArchiveMarker = "!"

// Rewriter rewrites link destinations. It never fails; suspicious
// destinations are reported on Logger at debug level.
type Rewriter struct {
	Logger *zap.Logger
}

// Rewrite returns a copy of events with every leading ArchiveMarker removed
// from link destinations. Applying it twice gives the same result as once.
func (r *Rewriter) Rewrite(events []Event) []Event {
	out := make([]Event, len(events))
	for i, ev := range events {
		l, ok := ev.(LinkStart)
		if !ok {
			out[i] = ev
			continue
		}
		l.Destination = strings.TrimLeft(l.Destination, ArchiveMarker)
		if ClassifyDestination(l.Destination) == LinkMalformed && r.Logger != nil {
			r.Logger.Debug("link destination is neither site-absolute nor external",
				zap.String("link", l.Destination))
		}
		out[i] = l
	}
	return out
}
