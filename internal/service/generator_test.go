package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
)

func boolPtr(b bool) *bool { return &b }

func TestGenerate_Defaults(t *testing.T) {
	svc := NewGeneratorService(nil)
	resp, err := svc.Generate(model.GenerateRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Length != 16 {
		t.Errorf("expected length 16, got %d", resp.Length)
	}
	if len(resp.Passwords) != 1 {
		t.Fatalf("expected 1 password, got %d", len(resp.Passwords))
	}
	if len(resp.Passwords[0]) != 16 {
		t.Errorf("expected password length 16, got %d", len(resp.Passwords[0]))
	}
	if resp.PoolSize != 86 {
		t.Errorf("expected pool size 86, got %d", resp.PoolSize)
	}
}

func TestGenerate_CustomOptions(t *testing.T) {
	svc := NewGeneratorService(nil)
	resp, err := svc.Generate(model.GenerateRequest{
		Length:    32,
		Uppercase: boolPtr(true),
		Lowercase: boolPtr(true),
		Numbers:   boolPtr(false),
		Symbols:   boolPtr(false),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Length != 32 {
		t.Errorf("expected length 32, got %d", resp.Length)
	}
	if resp.PoolSize != 52 {
		t.Errorf("expected pool size 52, got %d", resp.PoolSize)
	}
	for _, c := range resp.Passwords[0] {
		if !((c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')) {
			t.Errorf("unexpected character %q in password with only uppercase+lowercase", c)
		}
	}
}

func TestGenerate_Count(t *testing.T) {
	svc := NewGeneratorService(crypto.FastSource{})
	resp, err := svc.Generate(model.GenerateRequest{Length: 12, Count: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Passwords) != 5 {
		t.Fatalf("expected 5 passwords, got %d", len(resp.Passwords))
	}
	for _, pw := range resp.Passwords {
		if len(pw) != 12 {
			t.Errorf("expected password length 12, got %d", len(pw))
		}
	}
}

func TestGenerate_RequireEach(t *testing.T) {
	svc := NewGeneratorService(nil)
	resp, err := svc.Generate(model.GenerateRequest{Length: 8, RequireEach: true, Count: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, pw := range resp.Passwords {
		for _, set := range []string{crypto.UppercaseChars, crypto.LowercaseChars, crypto.NumberChars, crypto.SymbolChars} {
			if !strings.ContainsAny(pw, set) {
				t.Errorf("password %q misses a character from %q", pw, set)
			}
		}
	}
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     model.GenerateRequest
		wantErr error
	}{
		{"length too short", model.GenerateRequest{Length: 3}, ErrLengthOutOfRange},
		{"length too long", model.GenerateRequest{Length: 51}, ErrLengthOutOfRange},
		{"negative length", model.GenerateRequest{Length: -4}, ErrLengthOutOfRange},
		{"count too high", model.GenerateRequest{Count: MaxCount + 1}, ErrCountOutOfRange},
		{"negative count", model.GenerateRequest{Count: -1}, ErrCountOutOfRange},
		{"unknown source", model.GenerateRequest{Source: "dice"}, crypto.ErrUnknownSource},
		{
			"no character types",
			model.GenerateRequest{
				Length:    16,
				Uppercase: boolPtr(false),
				Lowercase: boolPtr(false),
				Numbers:   boolPtr(false),
				Symbols:   boolPtr(false),
			},
			crypto.ErrEmptyPool,
		},
	}

	svc := NewGeneratorService(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Generate(tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if !IsValidationError(err) {
				t.Errorf("expected %v to be a validation error", err)
			}
		})
	}
}

func TestGenerate_SeededSourceIsDeterministic(t *testing.T) {
	a, err := NewGeneratorService(crypto.NewSeededSource(1)).Generate(model.GenerateRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := NewGeneratorService(crypto.NewSeededSource(1)).Generate(model.GenerateRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Passwords[0] != b.Passwords[0] {
		t.Errorf("expected identical passwords from identical seeds, got %q and %q", a.Passwords[0], b.Passwords[0])
	}
}

func TestClasses(t *testing.T) {
	classes := NewGeneratorService(nil).Classes()

	want := []struct {
		name string
		size int
	}{{"uppercase", 26}, {"lowercase", 26}, {"numbers", 10}, {"symbols", 24}}

	if len(classes) != len(want) {
		t.Fatalf("expected %d classes, got %d", len(want), len(classes))
	}
	for i, w := range want {
		if classes[i].Name != w.name || classes[i].Size != w.size {
			t.Errorf("class %d = %s/%d, want %s/%d", i, classes[i].Name, classes[i].Size, w.name, w.size)
		}
	}
}

func TestIsValidationError_ServerErrors(t *testing.T) {
	if IsValidationError(errors.New("disk on fire")) {
		t.Error("unexpected validation error classification")
	}
}
