package index

import (
	"math"
	"sort"

	"quillpress/internal/domain/content"
)

const DefaultMaxStep = 5

// Index groups public content. It is built once per run and read-only afterwards;
// the slices hold the loader's items, never copies.
type Index struct {
	ByLayout map[string][]*content.Item
	ByTag    map[string][]*content.Item
	Weights  map[string]int

	posts []*content.Item
}

type TagStat struct {
	Name   string
	Count  int
	Weight int
}

// Build indexes the public items. Groups are sorted ascending by output path,
// then timestamp. maxStep <= 0 selects DefaultMaxStep.
func Build(items []*content.Item, maxStep int) *Index {
	if maxStep <= 0 {
		maxStep = DefaultMaxStep
	}
	x := &Index{
		ByLayout: make(map[string][]*content.Item),
		ByTag:    make(map[string][]*content.Item),
		Weights:  make(map[string]int),
	}
	for _, it := range items {
		if it.Status != content.StatusPublic {
			continue
		}
		x.ByLayout[it.Layout()] = append(x.ByLayout[it.Layout()], it)
		seen := make(map[string]bool, len(it.Tags))
		for _, tag := range it.Tags {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			x.ByTag[tag] = append(x.ByTag[tag], it)
		}
		if it.IsPost() {
			x.posts = append(x.posts, it)
		}
	}

	maxCount := 0
	for _, group := range x.ByLayout {
		sortByPath(group)
	}
	for _, group := range x.ByTag {
		sortByPath(group)
		if len(group) > maxCount {
			maxCount = len(group)
		}
	}
	for tag, group := range x.ByTag {
		x.Weights[tag] = Weight(len(group), maxCount, maxStep)
	}
	x.posts = NewestFirst(x.posts)
	return x
}

// Weight buckets a tag's frequency into [1, maxStep]. The most frequent tags get
// the smallest numbers.
func Weight(count, maxCount, maxStep int) int {
	if count < 1 || maxStep <= 1 {
		return 1
	}
	denom := math.Log(math.Max(float64(maxCount), math.E))
	w := int(math.Floor(float64(maxStep-1)*(1-math.Log(float64(count))/denom))) + 1
	return min(max(w, 1), maxStep)
}

// Posts returns every public post, newest first.
func (x *Index) Posts() []*content.Item { return x.posts }

// Recent returns at most n of the newest public posts. n <= 0 means all.
func (x *Index) Recent(n int) []*content.Item {
	if n <= 0 || n >= len(x.posts) {
		return x.posts
	}
	return x.posts[:n]
}

// Tagged returns the public items carrying tag, newest first.
func (x *Index) Tagged(tag string) []*content.Item {
	return NewestFirst(x.ByTag[tag])
}

// Tags lists every tag with its size and weight, by name.
func (x *Index) Tags() []TagStat {
	out := make([]TagStat, 0, len(x.ByTag))
	for tag, group := range x.ByTag {
		out = append(out, TagStat{Name: tag, Count: len(group), Weight: x.Weights[tag]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// NewestFirst returns a copy of items sorted by descending timestamp; ties by path.
func NewestFirst(items []*content.Item) []*content.Item {
	out := append([]*content.Item(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.After(b.Timestamp)
		}
		return a.Path < b.Path
	})
	return out
}

func sortByPath(items []*content.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.Timestamp.Before(b.Timestamp)
	})
}
