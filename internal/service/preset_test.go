package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
)

func newTestPresetService() *PresetService {
	return NewPresetService(newFakePresets(), NewGeneratorService(nil))
}

func TestPresetCreate_Defaults(t *testing.T) {
	svc := newTestPresetService()

	resp, err := svc.Create(context.Background(), 1, model.PresetRequest{Name: " everyday "})
	require.NoError(t, err)
	assert.Equal(t, "everyday", resp.Name)
	assert.Equal(t, crypto.DefaultLength, resp.Length)
	assert.True(t, resp.Uppercase && resp.Lowercase && resp.Numbers && resp.Symbols)
	assert.Equal(t, 86, resp.PoolSize)
	assert.NotEmpty(t, resp.ID)
}

func TestPresetCreate_Validation(t *testing.T) {
	off := boolPtr(false)
	tests := []struct {
		name    string
		req     model.PresetRequest
		wantErr error
	}{
		{"missing name", model.PresetRequest{}, ErrPresetNameRequired},
		{"long name", model.PresetRequest{Name: strings.Repeat("x", 101)}, ErrPresetNameTooLong},
		{"short length", model.PresetRequest{Name: "pin", Length: 4}, ErrLengthOutOfRange},
		{"empty pool", model.PresetRequest{Name: "none", Uppercase: off, Lowercase: off, Numbers: off, Symbols: off}, crypto.ErrEmptyPool},
	}

	svc := newTestPresetService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), 1, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestPresetLifecycle(t *testing.T) {
	svc := newTestPresetService()
	ctx := context.Background()
	off := boolPtr(false)

	created, err := svc.Create(ctx, 1, model.PresetRequest{Name: "pin-ish", Length: 10, Uppercase: off, Lowercase: off, Symbols: off})
	require.NoError(t, err)
	assert.Equal(t, 10, created.PoolSize)

	_, err = svc.Create(ctx, 1, model.PresetRequest{Name: "pin-ish"})
	assert.ErrorIs(t, err, ErrPresetNameTaken)

	list, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)

	gen, err := svc.Generate(ctx, 1, created.ID, model.PresetGenerateRequest{Count: 3})
	require.NoError(t, err)
	require.Len(t, gen.Passwords, 3)
	for _, pw := range gen.Passwords {
		assert.Len(t, pw, 10)
		for _, ch := range pw {
			assert.True(t, strings.ContainsRune(crypto.NumberChars, ch), "unexpected %q", ch)
		}
	}

	_, err = svc.Generate(ctx, 2, created.ID, model.PresetGenerateRequest{})
	assert.ErrorIs(t, err, ErrPresetNotFound)

	require.NoError(t, svc.Delete(ctx, 1, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, 1, created.ID), ErrPresetNotFound)

	list, err = svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, list)
}
