// Package widget holds the state of one password generator instance: the
// configuration toggles, the last generated password, and the collaborators
// used to alert the user and export to the clipboard.
package widget

import (
	"context"
	"errors"
	"fmt"

	"github.com/vaultpass/passgen-go/internal/clipboard"
	"github.com/vaultpass/passgen-go/internal/crypto"
)

// Bounds enforced by the length input.
const (
	MinLength = crypto.MinLength
	MaxLength = crypto.MaxLength
)

var (
	ErrLengthOutOfRange = fmt.Errorf("password length must be between %d and %d", MinLength, MaxLength)
	ErrNothingToCopy    = errors.New("no password has been generated")
)

// Class identifies one character class toggle.
type Class int

const (
	Uppercase Class = iota
	Lowercase
	Numbers
	Symbols
)

func (c Class) String() string {
	switch c {
	case Uppercase:
		return "uppercase"
	case Lowercase:
		return "lowercase"
	case Numbers:
		return "numbers"
	case Symbols:
		return "symbols"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// Session is owned by a single goroutine.
type Session struct {
	opts     crypto.Options
	password string

	gen      *crypto.Generator
	sink     clipboard.Sink
	notifier Notifier
}

// Option customizes a Session.
type Option func(*Session)

// WithOptions replaces the initial configuration. NewSession rejects a length
// outside [MinLength, MaxLength].
func WithOptions(opts crypto.Options) Option {
	return func(s *Session) { s.opts = opts }
}

// WithGenerator sets the generator, e.g. one backed by a fast source.
func WithGenerator(gen *crypto.Generator) Option {
	return func(s *Session) { s.gen = gen }
}

// NewSession starts with 16 characters and every class enabled.
func NewSession(sink clipboard.Sink, notifier Notifier, opts ...Option) (*Session, error) {
	s := &Session{
		opts:     crypto.DefaultOptions(),
		gen:      crypto.NewGenerator(nil),
		sink:     sink,
		notifier: notifier,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.opts.Length < MinLength || s.opts.Length > MaxLength {
		return nil, ErrLengthOutOfRange
	}
	return s, nil
}

// Options returns the current configuration.
func (s *Session) Options() crypto.Options { return s.opts }

// Password returns the last generated password, or "" before the first one.
func (s *Session) Password() string { return s.password }

// SetLength updates the length if it lies within [MinLength, MaxLength].
func (s *Session) SetLength(n int) error {
	if n < MinLength || n > MaxLength {
		return ErrLengthOutOfRange
	}
	s.opts.Length = n
	return nil
}

// SetClass turns a character class on or off.
func (s *Session) SetClass(c Class, on bool) {
	switch c {
	case Uppercase:
		s.opts.Uppercase = on
	case Lowercase:
		s.opts.Lowercase = on
	case Numbers:
		s.opts.Numbers = on
	case Symbols:
		s.opts.Symbols = on
	}
}

// Toggle flips a class and returns its new state.
func (s *Session) Toggle(c Class) bool {
	on := !s.Enabled(c)
	s.SetClass(c, on)
	return on
}

// Enabled reports whether class c is part of the pool.
func (s *Session) Enabled(c Class) bool {
	switch c {
	case Uppercase:
		return s.opts.Uppercase
	case Lowercase:
		return s.opts.Lowercase
	case Numbers:
		return s.opts.Numbers
	case Symbols:
		return s.opts.Symbols
	}
	return false
}

// SetRequireEach toggles the at-least-one-of-each-class guarantee.
func (s *Session) SetRequireEach(on bool) { s.opts.RequireEach = on }

// Generate replaces the stored password. On an empty pool the user is alerted
// and the previous password is kept.
func (s *Session) Generate() (string, error) {
	password, err := s.gen.Generate(s.opts)
	if err != nil {
		if errors.Is(err, crypto.ErrEmptyPool) {
			s.alert(LevelError, MsgSelectClass)
		}
		return "", err
	}
	s.password = password
	return password, nil
}

// Copy exports the stored password and alerts the user with the outcome.
func (s *Session) Copy(ctx context.Context) error {
	if s.password == "" {
		s.alert(LevelError, MsgNothingToCopy)
		return ErrNothingToCopy
	}

	if err := clipboard.CopyWait(ctx, s.sink, s.password); err != nil {
		s.alert(LevelError, MsgCopyFailed)
		return err
	}
	s.alert(LevelInfo, MsgCopied)
	return nil
}

func (s *Session) alert(level Level, msg string) {
	if s.notifier != nil {
		s.notifier.Notify(Alert{Level: level, Message: msg})
	}
}
