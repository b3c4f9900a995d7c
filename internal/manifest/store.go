package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var ErrNotFound = errors.New("not found")

// Store records every file written during a build. It is wiped by Reset at the
// start of each run, so it only ever describes the current output tree.
type Store struct {
	db *bolt.DB
}

type OpenOptions struct {
	Path string // e.g. ".quillpress/manifest.db"
}

func Open(opt OpenOptions) (*Store, error) {
	if opt.Path == "" {
		return nil, errors.New("manifest: missing path")
	}
	if err := os.MkdirAll(filepath.Dir(opt.Path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(opt.Path, 0o600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Reset drops everything recorded by a previous run.
func (s *Store) Reset(builtAt time.Time) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bOutputs, bMeta} {
			if err := tx.DeleteBucket(name); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
				return err
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}
		return tx.Bucket(bMeta).Put(kBuiltAt, encodeTime(builtAt))
	})
}

// BuiltAt is the start time of the run that last reset the store.
func (s *Store) BuiltAt() (time.Time, error) {
	var t time.Time
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bMeta)
		if b == nil {
			return ErrNotFound
		}
		v := b.Get(kBuiltAt)
		if v == nil {
			return ErrNotFound
		}
		var err error
		t, err = decodeTime(v)
		return err
	})
	return t, err
}
