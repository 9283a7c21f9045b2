package service

import (
	"errors"
	"fmt"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
)

// MaxCount caps how many passwords one request may ask for.
const MaxCount = 20

var (
	ErrLengthOutOfRange = fmt.Errorf("password length must be between %d and %d", crypto.MinLength, crypto.MaxLength)
	ErrCountOutOfRange  = fmt.Errorf("count must be between 1 and %d", MaxCount)
)

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	source crypto.RandomSource
}

// NewGeneratorService creates a GeneratorService whose requests draw from src
// unless they name a source. A nil src means crypto.SecureSource.
func NewGeneratorService(src crypto.RandomSource) *GeneratorService {
	if src == nil {
		src = crypto.SecureSource{}
	}
	return &GeneratorService{source: src}
}

// Generate produces passwords based on the given request.
func (s *GeneratorService) Generate(req model.GenerateRequest) (model.GenerateResponse, error) {
	opts := crypto.Options{
		Length:      req.Length,
		Uppercase:   boolOrDefault(req.Uppercase, true),
		Lowercase:   boolOrDefault(req.Lowercase, true),
		Numbers:     boolOrDefault(req.Numbers, true),
		Symbols:     boolOrDefault(req.Symbols, true),
		RequireEach: req.RequireEach,
	}

	if opts.Length == 0 {
		opts.Length = crypto.DefaultLength
	}

	return s.generate(opts, req.Count, req.Source)
}

func (s *GeneratorService) generate(opts crypto.Options, count int, source string) (model.GenerateResponse, error) {
	if opts.Length < crypto.MinLength || opts.Length > crypto.MaxLength {
		return model.GenerateResponse{}, ErrLengthOutOfRange
	}
	if count == 0 {
		count = 1
	}
	if count < 1 || count > MaxCount {
		return model.GenerateResponse{}, ErrCountOutOfRange
	}

	src := s.source
	if source != "" {
		var err error
		if src, err = crypto.ParseSource(source); err != nil {
			return model.GenerateResponse{}, err
		}
	}
	gen := crypto.NewGenerator(src)

	passwords := make([]string, 0, count)
	for i := 0; i < count; i++ {
		password, err := gen.Generate(opts)
		if err != nil {
			return model.GenerateResponse{}, err
		}
		passwords = append(passwords, password)
	}

	return model.GenerateResponse{
		Passwords: passwords,
		Length:    opts.Length,
		PoolSize:  crypto.PoolSize(opts),
	}, nil
}

// Classes lists the selectable character classes in pool order.
func (s *GeneratorService) Classes() []model.CharacterClass {
	classes := []struct{ name, alphabet string }{
		{"uppercase", crypto.UppercaseChars},
		{"lowercase", crypto.LowercaseChars},
		{"numbers", crypto.NumberChars},
		{"symbols", crypto.SymbolChars},
	}

	out := make([]model.CharacterClass, len(classes))
	for i, c := range classes {
		out[i] = model.CharacterClass{Name: c.name, Alphabet: c.alphabet, Size: len(c.alphabet)}
	}
	return out
}

// IsValidationError reports whether err was caused by the request rather than the server.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrLengthOutOfRange) ||
		errors.Is(err, ErrCountOutOfRange) ||
		errors.Is(err, crypto.ErrEmptyPool) ||
		errors.Is(err, crypto.ErrInvalidLength) ||
		errors.Is(err, crypto.ErrLengthInsufficient) ||
		errors.Is(err, crypto.ErrUnknownSource) ||
		errors.Is(err, ErrPresetNameRequired) ||
		errors.Is(err, ErrPresetNameTooLong)
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
