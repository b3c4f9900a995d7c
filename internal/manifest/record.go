package manifest

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	domainerr "quillpress/internal/domain/errors"
	"quillpress/internal/domain/site"
)

// Entry describes one written output file. Source is empty for generated pages.
type Entry struct {
	OutPath string         `json:"out"`
	Kind    site.RouteKind `json:"kind"`
	Key     string         `json:"key,omitempty"`
	Source  string         `json:"source,omitempty"`
	SHA256  string         `json:"sha256"`
	Size    int            `json:"size"`
}

// Record notes that data is about to be written to r.OutPath on behalf of source.
// Two different owners claiming the same output path is an ErrCollision, except
// that theme files may be replaced by site content. Generated pages have no
// source and are told apart by route key, so two tags that map to one
// directory collide too.
func (s *Store) Record(r site.Route, source string, data []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		outB := tx.Bucket(bOutputs)
		if outB == nil {
			return fmt.Errorf("manifest: not reset")
		}

		key := []byte(r.OutPath)
		if prev := outB.Get(key); prev != nil {
			var old Entry
			if err := json.Unmarshal(prev, &old); err != nil {
				return err
			}
			if old.Kind != site.RouteTheme && (old.Source != source || old.Kind != r.Kind || old.Key != r.Key) {
				return domainerr.New(domainerr.ErrCollision, r.OutPath,
					fmt.Sprintf("claimed by %s and %s", owner(old.Kind, old.Key, old.Source), owner(r.Kind, r.Key, source)))
			}
		}

		e := Entry{
			OutPath: r.OutPath,
			Kind:    r.Kind,
			Key:     r.Key,
			Source:  source,
			SHA256:  hashBytes(data),
			Size:    len(data),
		}
		v, err := json.Marshal(e)
		if err != nil {
			return err
		}
		return outB.Put(key, v)
	})
}

func owner(kind site.RouteKind, key, source string) string {
	switch {
	case source != "":
		return source
	case key != "":
		return fmt.Sprintf("generated %s page %q", kind, key)
	}
	return "generated " + string(kind) + " page"
}

// Entries lists every recorded output, ordered by output path.
func (s *Store) Entries() ([]Entry, error) {
	var out []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bOutputs)
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}
			out = append(out, e)
			return nil
		})
	})
	return out, err
}
