package session

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"
	"math/rand/v2"
	"sync"
)

// TokenSource mints opaque session tokens from a process-wide ChaCha8
// stream seeded once from the OS entropy source. The stream is shared
// mutable state: every draw holds the mutex so concurrent issuers never
// read overlapping output.
type TokenSource struct {
	mu  sync.Mutex
	rng *rand.ChaCha8
}

func NewTokenSource() (*TokenSource, error) {
	var seed [32]byte
	if _, err := cryptorand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("session: seed token source: %w", err)
	}
	return &TokenSource{rng: rand.NewChaCha8(seed)}, nil
}

// Token draws 16 bytes and renders them as the decimal form of a 128-bit
// unsigned integer. The token is an opaque numeral; byte order is
// irrelevant as it never travels as raw bytes.
func (ts *TokenSource) Token() string {
	ts.mu.Lock()
	hi := ts.rng.Uint64()
	lo := ts.rng.Uint64()
	ts.mu.Unlock()

	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], hi)
	binary.BigEndian.PutUint64(buf[8:], lo)

	return new(big.Int).SetBytes(buf[:]).String()
}
