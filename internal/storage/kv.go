// Package storage holds the small key-value abstraction the session manager
// persists through, with in-memory, file and Redis backends.
package storage

import (
	"context"
)

// KV is a string key-value store. Get reports a missing key with ok=false
// and a nil error; errors are reserved for an unavailable backend.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

type prefixed struct {
	kv     KV
	prefix string
}

// WithPrefix namespaces every key of kv under prefix.
func WithPrefix(kv KV, prefix string) KV {
	return &prefixed{kv: kv, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) (string, bool, error) {
	return p.kv.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key, value string) error {
	return p.kv.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Remove(ctx context.Context, key string) error {
	return p.kv.Remove(ctx, p.prefix+key)
}
