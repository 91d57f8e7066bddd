package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/davral/siteworks/internal/store"
)

// schemaVersion tags every stored collection. Bare JSON arrays written by
// earlier versions of the system are read as version 0 and rewritten in the
// envelope on the next save.
const schemaVersion = 1

type envelope struct {
	Version int             `json:"version"`
	Records json.RawMessage `json:"records"`
}

// collection wraps one entity collection in the store: typed load/save with
// the version envelope, degradation of unreadable payloads to an empty
// collection, and serialization of read-modify-write sequences.
type collection[T any] struct {
	store store.CollectionStore
	key   string
	log   zerolog.Logger
	mu    sync.Mutex
}

func newCollection[T any](s store.CollectionStore, key string, log zerolog.Logger) *collection[T] {
	return &collection[T]{store: s, key: key, log: log.With().Str("collection", key).Logger()}
}

// load returns the decoded collection. Malformed or unsupported payloads are
// logged and degrade to an empty collection; only store transport errors
// propagate.
func (c *collection[T]) load(ctx context.Context) ([]T, error) {
	data, err := c.store.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.key, err)
	}
	return c.decode(data), nil
}

func (c *collection[T]) decode(data []byte) []T {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []T{}
	}

	raw := json.RawMessage(data)
	if data[0] != '[' {
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			c.log.Warn().Err(err).Msg("corrupt collection payload, degrading to empty")
			return []T{}
		}
		if env.Version > schemaVersion {
			c.log.Warn().Int("version", env.Version).Msg("collection written by a newer schema, degrading to empty")
			return []T{}
		}
		raw = env.Records
	}

	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		c.log.Warn().Err(err).Msg("corrupt collection records, degrading to empty")
		return []T{}
	}
	if records == nil {
		records = []T{}
	}
	return records
}

func (c *collection[T]) save(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	data, err := json.Marshal(envelope{Version: schemaVersion, Records: raw})
	if err != nil {
		return fmt.Errorf("encode %s envelope: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, data); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	return nil
}

// mutate runs fn over the current records under the collection lock and
// persists whatever fn returns. fn failing leaves the collection untouched.
func (c *collection[T]) mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	records, err := c.load(ctx)
	if err != nil {
		return err
	}
	updated, err := fn(records)
	if err != nil {
		return err
	}
	return c.save(ctx, updated)
}
