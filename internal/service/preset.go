package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
	"github.com/vaultpass/passgen-go/internal/repository"
)

const maxPresetName = 100

var (
	ErrPresetNameRequired = errors.New("preset name is required")
	ErrPresetNameTooLong  = errors.New("preset name must be at most 100 characters")
	ErrPresetNotFound     = errors.New("preset not found")
	ErrPresetNameTaken    = errors.New("preset name already taken")
)

// PresetStore is the persistence PresetService needs.
type PresetStore interface {
	Create(ctx context.Context, p *model.Preset) error
	Get(ctx context.Context, accountID int64, id string) (*model.Preset, error)
	ListByAccount(ctx context.Context, accountID int64) ([]model.Preset, error)
	Delete(ctx context.Context, accountID int64, id string) error
}

// PresetService manages saved configurations and generates from them.
type PresetService struct {
	presets   PresetStore
	generator *GeneratorService
}

// NewPresetService creates a new PresetService.
func NewPresetService(presets PresetStore, generator *GeneratorService) *PresetService {
	return &PresetService{presets: presets, generator: generator}
}

// Create validates and stores a configuration. The configuration must be able
// to generate, so an empty pool or an out-of-range length is rejected here.
func (s *PresetService) Create(ctx context.Context, accountID int64, req model.PresetRequest) (model.PresetResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.PresetResponse{}, ErrPresetNameRequired
	}
	if utf8.RuneCountInString(name) > maxPresetName {
		return model.PresetResponse{}, ErrPresetNameTooLong
	}

	p := &model.Preset{
		AccountID:   accountID,
		Name:        name,
		Length:      req.Length,
		Uppercase:   boolOrDefault(req.Uppercase, true),
		Lowercase:   boolOrDefault(req.Lowercase, true),
		Numbers:     boolOrDefault(req.Numbers, true),
		Symbols:     boolOrDefault(req.Symbols, true),
		RequireEach: req.RequireEach,
	}
	if p.Length == 0 {
		p.Length = crypto.DefaultLength
	}

	opts := presetOptions(p)
	if opts.Length < crypto.MinLength || opts.Length > crypto.MaxLength {
		return model.PresetResponse{}, ErrLengthOutOfRange
	}
	sets := opts.Classes()
	if len(sets) == 0 {
		return model.PresetResponse{}, crypto.ErrEmptyPool
	}
	if opts.RequireEach && opts.Length < len(sets) {
		return model.PresetResponse{}, crypto.ErrLengthInsufficient
	}

	if err := s.presets.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicatePreset) {
			return model.PresetResponse{}, ErrPresetNameTaken
		}
		return model.PresetResponse{}, err
	}

	return toPresetResponse(*p), nil
}

// List returns the account's presets.
func (s *PresetService) List(ctx context.Context, accountID int64) ([]model.PresetResponse, error) {
	presets, err := s.presets.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	out := make([]model.PresetResponse, len(presets))
	for i, p := range presets {
		out[i] = toPresetResponse(p)
	}
	return out, nil
}

// Delete removes a preset.
func (s *PresetService) Delete(ctx context.Context, accountID int64, id string) error {
	err := s.presets.Delete(ctx, accountID, id)
	if errors.Is(err, repository.ErrPresetNotFound) {
		return ErrPresetNotFound
	}
	return err
}

// Generate draws passwords with a stored configuration.
func (s *PresetService) Generate(ctx context.Context, accountID int64, id string, req model.PresetGenerateRequest) (model.GenerateResponse, error) {
	p, err := s.presets.Get(ctx, accountID, id)
	if err != nil {
		if errors.Is(err, repository.ErrPresetNotFound) {
			return model.GenerateResponse{}, ErrPresetNotFound
		}
		return model.GenerateResponse{}, err
	}

	return s.generator.generate(presetOptions(p), req.Count, req.Source)
}

func presetOptions(p *model.Preset) crypto.Options {
	return crypto.Options{
		Length:      p.Length,
		Uppercase:   p.Uppercase,
		Lowercase:   p.Lowercase,
		Numbers:     p.Numbers,
		Symbols:     p.Symbols,
		RequireEach: p.RequireEach,
	}
}

func toPresetResponse(p model.Preset) model.PresetResponse {
	return model.PresetResponse{
		ID:          p.ID,
		Name:        p.Name,
		Length:      p.Length,
		Uppercase:   p.Uppercase,
		Lowercase:   p.Lowercase,
		Numbers:     p.Numbers,
		Symbols:     p.Symbols,
		RequireEach: p.RequireEach,
		PoolSize:    crypto.PoolSize(presetOptions(&p)),
		CreatedAt:   p.CreatedAt,
	}
}
