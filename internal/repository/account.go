package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vaultpass/passgen-go/internal/model"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrDuplicateEmail  = errors.New("email already exists")
)

// AccountRepository handles account persistence operations.
type AccountRepository struct {
	db *DB
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts a new account and sets the generated ID and creation time.
func (r *AccountRepository) Create(ctx context.Context, account *model.Account) error {
	createdAt := time.Now().UTC().Truncate(time.Microsecond)
	query := `INSERT INTO accounts (email, auth_hash, created_at) VALUES (?, ?, ?)`

	var id int64
	if r.db.dialect.Returning {
		err := r.db.QueryRowContext(ctx, r.db.rebind(query+` RETURNING id`), account.Email, account.AuthHash, createdAt).Scan(&id)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateEmail
			}
			return err
		}
	} else {
		result, err := r.db.ExecContext(ctx, r.db.rebind(query), account.Email, account.AuthHash, createdAt)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateEmail
			}
			return err
		}
		if id, err = result.LastInsertId(); err != nil {
			return err
		}
	}

	account.ID = id
	account.CreatedAt = createdAt
	return nil
}

// GetByEmail retrieves an account by its email address.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	return r.getOne(ctx, `SELECT id, email, auth_hash, created_at FROM accounts WHERE email = ?`, email)
}

// GetByID retrieves an account by its ID.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	return r.getOne(ctx, `SELECT id, email, auth_hash, created_at FROM accounts WHERE id = ?`, id)
}

func (r *AccountRepository) getOne(ctx context.Context, query string, arg any) (*model.Account, error) {
	account := &model.Account{}
	err := r.db.QueryRowContext(ctx, r.db.rebind(query), arg).Scan(
		&account.ID, &account.Email, &account.AuthHash, &account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}
