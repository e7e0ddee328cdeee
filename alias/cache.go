package alias

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/cashtaborg/libcashtab-go/internal/log"
)

var bucketAliases = []byte("aliases")

// BoltCache persists confirmed resolutions in a bbolt database.
// Registrations are immutable once confirmed, so entries never expire.
type BoltCache struct {
	db *bbolt.DB
}

// OpenBoltCache opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltCache(dbPath string) (*BoltCache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("alias: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("alias: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketAliases)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("alias: create bucket: %w", err)
	}

	return &BoltCache{db: db}, nil
}

// Close closes the underlying database.
func (c *BoltCache) Close() error { return c.db.Close() }

// Get returns the cached resolution of name, or ErrCacheMiss.
func (c *BoltCache) Get(name string) (*Resolution, error) {
	var res Resolution
	err := c.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketAliases).Get([]byte(name))
		if data == nil {
			return ErrCacheMiss
		}
		if err := decodeGob(data, &res); err != nil {
			return fmt.Errorf("alias: decode cached %q: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Put stores res under its alias name, replacing any earlier entry.
func (c *BoltCache) Put(res *Resolution) error {
	if res == nil {
		return fmt.Errorf("%w: resolution", ErrNilParam)
	}
	if err := ValidateName(res.Alias); err != nil {
		return err
	}
	data, err := encodeGob(res)
	if err != nil {
		return fmt.Errorf("alias: encode %q: %w", res.Alias, err)
	}
	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketAliases).Put([]byte(res.Alias), data)
	})
}

// Count returns the number of cached resolutions.
func (c *BoltCache) Count() (int, error) {
	var n int
	err := c.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(bucketAliases).Stats().KeyN
		return nil
	})
	return n, err
}

// CachedResolver answers from a BoltCache and falls back to Next,
// caching every successful answer. Failures are never cached, so an
// alias registered later resolves on the next attempt.
type CachedResolver struct {
	Next  Resolver
	Cache *BoltCache
}

var _ Resolver = (*CachedResolver)(nil)

// Resolve implements Resolver.
func (r *CachedResolver) Resolve(ctx context.Context, name string) (*Resolution, error) {
	if r.Next == nil || r.Cache == nil {
		return nil, fmt.Errorf("%w: resolver or cache", ErrNilParam)
	}
	name = TrimSuffix(name)
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	res, err := r.Cache.Get(name)
	if err == nil {
		log.Alias.Debug().Str("alias", name).Msg("alias cache hit")
		return res, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		log.Alias.Warn().Err(err).Str("alias", name).Msg("alias cache read failed")
	}

	res, err = r.Next.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := r.Cache.Put(res); err != nil {
		log.Alias.Warn().Err(err).Str("alias", name).Msg("alias cache write failed")
	}
	return res, nil
}

// encodeGob serializes a value using gob encoding.
func encodeGob(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes gob-encoded data into a value.
func decodeGob(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
