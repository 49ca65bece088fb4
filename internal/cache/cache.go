// Package cache stores marshaled stage results keyed by content
// fingerprint. Only derived result objects are ever cached, never original
// document text, so a cache hit can short-circuit a lane without touching
// the anonymization boundary.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the stage-result store. Both tiers are TTL-bounded so a
// long-lived process cannot grow without limit.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ResultKey builds the cache key for one analysis stage over one document
// set fingerprint.
func ResultKey(stage, fingerprint string) string {
	hash := sha256.Sum256([]byte(stage + ":" + fingerprint))
	return "legalintel:v1:" + stage + ":" + hex.EncodeToString(hash[:16])
}
