package cache

import "time"

// BytesCache stores rendered response bodies as raw bytes with a TTL. Keys
// encode the full request shape, so a hit can be written back verbatim.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}
