package domain

import "time"

// IdempotencyRecord caches the first successful response produced for a
// (key, scope) pair. Written once, inside the same transaction as the
// operation it guards, and never overwritten.
type IdempotencyRecord struct {
	Key       string
	Scope     string
	Response  []byte
	CreatedAt time.Time
}
