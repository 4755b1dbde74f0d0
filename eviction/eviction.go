package eviction

import (
	"strings"

	"github.com/pkg/errors"
)

/*
Policy chooses which key to drop when a bounded shard is full.

The shard calls these methods with its lock held, so implementations keep no
locks of their own.
*/
type Policy interface {

	// OnGet is called when a fresh entry is read.
	OnGet(string)

	// OnPut is called when a key is written, new or overwritten.
	OnPut(string)

	// Remove forgets a key that left the shard for any reason other than Evict.
	Remove(string)

	// Evict picks a victim, forgets it and returns it. ok is false when no key is tracked.
	// The empty string is a valid key, so callers must check ok.
	Evict() (key string, ok bool)

	// Clear forgets every key.
	Clear()
}

// PolicyType names a supported eviction strategy.
type PolicyType string

const (
	// LRU evicts the key that has gone longest without a read or write.
	LRU PolicyType = "LRU"

	// FIFO evicts the key that was inserted first, ignoring reads and overwrites.
	FIFO PolicyType = "FIFO"
)

// ParsePolicyType accepts a policy name in any case.
func ParsePolicyType(s string) (PolicyType, error) {
	switch t := PolicyType(strings.ToUpper(strings.TrimSpace(s))); t {
	case LRU, FIFO:
		return t, nil
	}
	return "", errors.Errorf("unknown eviction policy %q", s)
}

// NewEvictionPolicy builds the policy for t. Unknown types panic; validate with ParsePolicyType first.
func NewEvictionPolicy(t PolicyType) Policy {
	switch t {
	case LRU:
		return newLRU()
	case FIFO:
		return newFIFO()
	default:
		panic("unknown eviction policy " + string(t))
	}
}
