// Package draw maps a delivered random seed to winning sub-buckets.
//
// The draw is a pure function of (windowID, denom, seed): any third party
// can recompute a claimed winner without access to engine state.
package draw

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/bsv-blockchain/go-sdk/chainhash"
	"golang.org/x/crypto/hkdf"
)

// Seed is the 32-byte random value delivered once per window by the
// external randomness provider.
type Seed = chainhash.Hash

// drawDomain separates sub-bucket draws from any other use of the seed.
var drawDomain = []byte("settlement/sub-bucket-draw/v1")

// WinningSubBucket returns the winning sub-bucket index in [0, denom) for
// one bucket of a window. The result depends only on the arguments and is
// reproducible bit-for-bit by independent implementations.
func WinningSubBucket(windowID uint32, denom uint8, seed Seed) (uint8, error) {
	if denom == 0 {
		return 0, ErrZeroDenom
	}

	// info = domain || windowID || denom, expanded from the seed with
	// HKDF-SHA256. The seed is already uniform 32-byte entropy, so the
	// expand step alone is sufficient.
	info := make([]byte, 0, len(drawDomain)+5)
	info = append(info, drawDomain...)
	info = binary.BigEndian.AppendUint32(info, windowID)
	info = append(info, denom)

	var out [8]byte
	r := hkdf.Expand(sha256.New, seed[:], info)
	if _, err := io.ReadFull(r, out[:]); err != nil {
		return 0, fmt.Errorf("draw: expand seed: %w", err)
	}

	return uint8(binary.BigEndian.Uint64(out[:]) % uint64(denom)), nil
}
