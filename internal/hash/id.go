// Package hash provides fast, non-cryptographic hashing of strings. The
// RP 210 variant registry hashes variant names with it to detect
// collisions between them.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of an arbitrary byte string, typically a
// variant name used to key a customized RP 210/Primer singleton in the
// process-wide variant registry.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}
