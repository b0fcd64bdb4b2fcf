package domain

import "errors"

var (
	// ErrValidation is returned when a contact has no usable fingerprint
	// (every component is empty after normalization)
	ErrValidation = errors.New("contact cannot be fingerprinted")

	// ErrConflict is returned when a concurrent insert claimed one of the entry's fingerprints first
	ErrConflict = errors.New("cache entry conflict")

	// ErrStoreUnavailable is returned when the durable store cannot be reached
	ErrStoreUnavailable = errors.New("cache store unavailable")

	// ErrStaleOverwriteRejected is returned when an update would not raise the entry's confidence
	ErrStaleOverwriteRejected = errors.New("stale overwrite rejected")

	// ErrCacheEntryNotFound is returned when a cache entry is not found
	ErrCacheEntryNotFound = errors.New("cache entry not found")

	// ErrCacheInconsistent is returned when a conflicted insert cannot be resolved by a fresh lookup
	ErrCacheInconsistent = errors.New("cache store inconsistent")

	// ErrNoProviderResult is returned when no enrichment provider could resolve a contact
	ErrNoProviderResult = errors.New("no provider returned a result")
)
