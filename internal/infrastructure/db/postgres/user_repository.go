package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/adrianguereque/accounts-api/internal/core/domain"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint failures.
const uniqueViolation = "23505"

// UserRepository is the PostgreSQL-backed account directory. Every method
// issues exactly one statement; row-level atomicity covers concurrent updates
// to the same account.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const accountColumns = "id, email, name, password_hash, role, created_at, updated_at"

func (r *UserRepository) Create(ctx context.Context, acct *domain.Account) (*domain.Account, error) {
	query := `
		INSERT INTO users (email, name, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + accountColumns

	created, err := r.scanOne(r.db.QueryRowContext(ctx, query,
		acct.Email, acct.Name, acct.PasswordHash, acct.Role))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM users WHERE email = $1`

	acct, err := r.scanOne(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return acct, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM users WHERE id = $1`

	acct, err := r.scanOne(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return acct, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM users ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		acct := &domain.Account{}
		if err := rows.Scan(&acct.ID, &acct.Email, &acct.Name, &acct.PasswordHash,
			&acct.Role, &acct.CreatedAt, &acct.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		accounts = append(accounts, acct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return accounts, nil
}

// Update applies the supplied fields in a single statement; COALESCE keeps
// columns whose parameter is NULL untouched. The Password field must already
// be hashed by the caller.
func (r *UserRepository) Update(ctx context.Context, id int64, upd domain.AccountUpdate) (*domain.Account, error) {
	query := `
		UPDATE users
		SET email         = COALESCE($2, email),
		    name          = COALESCE($3, name),
		    password_hash = COALESCE($4, password_hash),
		    role          = COALESCE($5, role),
		    updated_at    = now()
		WHERE id = $1
		RETURNING ` + accountColumns

	acct, err := r.scanOne(r.db.QueryRowContext(ctx, query,
		id, upd.Email, upd.Name, upd.Password, upd.Role))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return acct, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) scanOne(row *sql.Row) (*domain.Account, error) {
	acct := &domain.Account{}
	err := row.Scan(&acct.ID, &acct.Email, &acct.Name, &acct.PasswordHash,
		&acct.Role, &acct.CreatedAt, &acct.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return acct, nil
}
