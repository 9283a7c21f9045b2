package crypto

import (
	"errors"
	"strings"
)

// Character class alphabets, concatenated into the pool in this order.
const (
	UppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	LowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	NumberChars    = "0123456789"
	SymbolChars    = "!@#$%^&*()_+[]{}|;:,.<>?"

	DefaultLength = 16

	// Recommended bounds for the length input. Generate itself accepts any
	// non-negative length.
	MinLength = 8
	MaxLength = 50
)

var (
	ErrEmptyPool          = errors.New("at least one character type must be selected")
	ErrInvalidLength      = errors.New("password length must not be negative")
	ErrLengthInsufficient = errors.New("password length must be at least equal to the number of selected character types")
)

// Options configures a single generation call.
type Options struct {
	Length    int
	Uppercase bool
	Lowercase bool
	Numbers   bool
	Symbols   bool

	// RequireEach guarantees at least one character from every enabled class.
	// When false every position is an independent draw from the whole pool.
	RequireEach bool
}

// DefaultOptions returns 16 characters with all classes enabled.
func DefaultOptions() Options {
	return Options{
		Length:    DefaultLength,
		Uppercase: true,
		Lowercase: true,
		Numbers:   true,
		Symbols:   true,
	}
}

// Classes returns the alphabets of the enabled classes in pool order.
func (o Options) Classes() []string {
	var sets []string
	if o.Uppercase {
		sets = append(sets, UppercaseChars)
	}
	if o.Lowercase {
		sets = append(sets, LowercaseChars)
	}
	if o.Numbers {
		sets = append(sets, NumberChars)
	}
	if o.Symbols {
		sets = append(sets, SymbolChars)
	}
	return sets
}

// BuildPool concatenates the enabled alphabets. The result is empty when no
// class is enabled.
func BuildPool(opts Options) string {
	return strings.Join(opts.Classes(), "")
}

// PoolSize reports how many characters the pool for opts holds.
func PoolSize(opts Options) int {
	return len(BuildPool(opts))
}

// Generator draws passwords from a character pool using its random source.
type Generator struct {
	source RandomSource
}

// NewGenerator returns a Generator drawing from src. A nil src means SecureSource.
func NewGenerator(src RandomSource) *Generator {
	if src == nil {
		src = SecureSource{}
	}
	return &Generator{source: src}
}

// Generate builds a password of exactly opts.Length characters.
func (g *Generator) Generate(opts Options) (string, error) {
	if opts.Length < 0 {
		return "", ErrInvalidLength
	}

	sets := opts.Classes()
	if len(sets) == 0 {
		return "", ErrEmptyPool
	}
	pool := strings.Join(sets, "")

	result := make([]byte, opts.Length)
	start := 0

	if opts.RequireEach {
		if opts.Length < len(sets) {
			return "", ErrLengthInsufficient
		}
		for i, charset := range sets {
			ch, err := g.pick(charset)
			if err != nil {
				return "", err
			}
			result[i] = ch
		}
		start = len(sets)
	}

	for i := start; i < opts.Length; i++ {
		ch, err := g.pick(pool)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	if opts.RequireEach {
		if err := g.shuffle(result); err != nil {
			return "", err
		}
	}

	return string(result), nil
}

// pick returns one uniformly chosen byte of charset.
func (g *Generator) pick(charset string) (byte, error) {
	idx, err := g.source.IntN(len(charset))
	if err != nil {
		return 0, err
	}
	return charset[idx], nil
}

// shuffle is a Fisher-Yates shuffle driven by the generator's source.
func (g *Generator) shuffle(data []byte) error {
	for i := len(data) - 1; i > 0; i-- {
		j, err := g.source.IntN(i + 1)
		if err != nil {
			return err
		}
		data[i], data[j] = data[j], data[i]
	}
	return nil
}

var defaultGenerator = NewGenerator(SecureSource{})

// Generate creates a password with the default secure source.
func Generate(opts Options) (string, error) {
	return defaultGenerator.Generate(opts)
}
