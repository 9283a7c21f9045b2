package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	mrand "math/rand/v2"
	"strings"
	"sync"
)

var ErrUnknownSource = errors.New("unknown random source")

// RandomSource yields uniform integers in [0, n).
type RandomSource interface {
	IntN(n int) (int, error)
}

// SecureSource draws from crypto/rand.
type SecureSource struct{}

func (SecureSource) IntN(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("reading random index: %w", err)
	}
	return int(v.Int64()), nil
}

// FastSource draws from the runtime-seeded math/rand/v2 generator. It is not
// suitable where the output must be unpredictable.
type FastSource struct{}

func (FastSource) IntN(n int) (int, error) {
	return mrand.IntN(n), nil
}

// SeededSource is a deterministic PCG source. Safe for concurrent use.
type SeededSource struct {
	mu  sync.Mutex
	rng *mrand.Rand
}

// NewSeededSource returns a source that repeats the same sequence for a seed.
func NewSeededSource(seed uint64) *SeededSource {
	return &SeededSource{rng: mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *SeededSource) IntN(n int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n), nil
}

// Source names accepted by ParseSource.
const (
	SourceSecure = "secure"
	SourceFast   = "fast"
)

// ParseSource maps a configured name to a RandomSource. An empty name selects
// the secure source.
func ParseSource(name string) (RandomSource, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", SourceSecure:
		return SecureSource{}, nil
	case SourceFast:
		return FastSource{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}
}
