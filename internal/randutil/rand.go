// Package randutil builds the seeded random sources a match shuffles with.
package randutil

import (
	"encoding/binary"
	rand "math/rand/v2"
	"time"
)

// New returns a ChaCha8-backed *rand.Rand keyed by seed. The same seed
// replays every shuffle of a match.
func New(seed int64) *rand.Rand {
	var key [32]byte
	for i := 0; i < len(key); i += 8 {
		binary.LittleEndian.PutUint64(key[i:], uint64(seed)+uint64(i/8))
	}
	return rand.New(rand.NewChaCha8(key))
}

// ForMatch resolves the seed of a match, the override when set and the wall
// clock otherwise, and returns it with the source built from it so the seed
// can be logged for replays.
func ForMatch(override *int64) (*rand.Rand, int64) {
	seed := time.Now().UnixNano()
	if override != nil {
		seed = *override
	}
	return New(seed), seed
}
