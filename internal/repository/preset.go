package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vaultpass/passgen-go/internal/model"
)

var (
	ErrPresetNotFound  = errors.New("preset not found")
	ErrDuplicatePreset = errors.New("preset name already exists")
)

const presetColumns = `id, account_id, name, pw_length, uppercase, lowercase, numbers, symbols, require_each, created_at`

// PresetRepository persists saved generator configurations.
type PresetRepository struct {
	db *DB
}

// NewPresetRepository creates a new PresetRepository.
func NewPresetRepository(db *DB) *PresetRepository {
	return &PresetRepository{db: db}
}

// Create assigns a new ID and creation time and inserts the preset.
func (r *PresetRepository) Create(ctx context.Context, p *model.Preset) error {
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)

	query := `INSERT INTO presets (` + presetColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, r.db.rebind(query),
		p.ID, p.AccountID, p.Name, p.Length,
		p.Uppercase, p.Lowercase, p.Numbers, p.Symbols, p.RequireEach,
		p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicatePreset
		}
		return err
	}
	return nil
}

// Get retrieves one preset owned by accountID.
func (r *PresetRepository) Get(ctx context.Context, accountID int64, id string) (*model.Preset, error) {
	query := `SELECT ` + presetColumns + ` FROM presets WHERE account_id = ? AND id = ?`

	p, err := scanPreset(r.db.QueryRowContext(ctx, r.db.rebind(query), accountID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPresetNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListByAccount returns an account's presets ordered by name.
func (r *PresetRepository) ListByAccount(ctx context.Context, accountID int64) ([]model.Preset, error) {
	query := `SELECT ` + presetColumns + ` FROM presets WHERE account_id = ? ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, r.db.rebind(query), accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var presets []model.Preset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		presets = append(presets, *p)
	}

	return presets, rows.Err()
}

// Delete removes a preset owned by accountID.
func (r *PresetRepository) Delete(ctx context.Context, accountID int64, id string) error {
	result, err := r.db.ExecContext(ctx, r.db.rebind(`DELETE FROM presets WHERE account_id = ? AND id = ?`), accountID, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrPresetNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPreset(row rowScanner) (*model.Preset, error) {
	p := &model.Preset{}
	err := row.Scan(
		&p.ID, &p.AccountID, &p.Name, &p.Length,
		&p.Uppercase, &p.Lowercase, &p.Numbers, &p.Symbols, &p.RequireEach,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}
