package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/account-service/internal/domain"
)

// ErrStoreUnavailable wraps persistence failures distinct from missing rows.
var ErrStoreUnavailable = errors.New("account store unavailable")

// storeErr keeps pgx.ErrNoRows recognizable and tags everything else as a
// store availability problem.
func storeErr(err error) error {
	if err == nil || errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

// AccountRepository defines persistence access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account) error
	GetByLogin(ctx context.Context, login string) (*domain.Account, error)
	GetByActivationKey(ctx context.Context, key string) (*domain.Account, error)
	ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]*domain.Account, error)
	DeleteIfNotActivated(ctx context.Context, id int64) (bool, error)
	SoftDelete(ctx context.Context, id int64) error
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

const accountColumns = `
        id, login, user_no, password_hash, first_name, last_name, email, lang_key,
        phone, gender, age, classes, description, avatar_url,
        activated, activation_key, created_date, deleted`

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return storeErr(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO accounts (login, user_no, password_hash, first_name, last_name, email, lang_key,
                              phone, gender, age, classes, description, avatar_url,
                              activated, activation_key, deleted)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
        RETURNING id, created_date`

	if err := tx.QueryRow(ctx, query,
		account.Login,
		account.UserNo,
		account.PasswordHash,
		account.FirstName,
		account.LastName,
		account.Email,
		account.LangKey,
		account.Phone,
		account.Gender,
		account.Age,
		account.Classes,
		account.Description,
		account.AvatarURL,
		account.Activated,
		account.ActivationKey,
		account.Deleted,
	).Scan(&account.ID, &account.CreatedDate); err != nil {
		return storeErr(err)
	}

	const grantQuery = `
        INSERT INTO account_authorities (account_id, authority_name)
        VALUES ($1, $2)`

	for _, authority := range account.Authorities {
		if _, err := tx.Exec(ctx, grantQuery, account.ID, authority.Name); err != nil {
			return storeErr(err)
		}
	}

	return storeErr(tx.Commit(ctx))
}

func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	const query = `
        UPDATE accounts
        SET login=$1, user_no=$2, password_hash=$3, first_name=$4, last_name=$5, email=$6,
            lang_key=$7, phone=$8, gender=$9, age=$10, classes=$11, description=$12,
            avatar_url=$13, activated=$14, activation_key=$15, deleted=$16
        WHERE id=$17`

	cmd, err := r.pool.Exec(ctx, query,
		account.Login,
		account.UserNo,
		account.PasswordHash,
		account.FirstName,
		account.LastName,
		account.Email,
		account.LangKey,
		account.Phone,
		account.Gender,
		account.Age,
		account.Classes,
		account.Description,
		account.AvatarURL,
		account.Activated,
		account.ActivationKey,
		account.Deleted,
		account.ID,
	)
	if err != nil {
		return storeErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) GetByLogin(ctx context.Context, login string) (*domain.Account, error) {
	// soft-deleted rows are invisible to login-based reads
	const query = `
        SELECT` + accountColumns + `
        FROM accounts WHERE login=$1 AND deleted=FALSE`

	account, err := scanAccount(r.pool.QueryRow(ctx, query, login))
	if err != nil {
		return nil, storeErr(err)
	}
	if err := r.loadAuthorities(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (r *accountRepository) GetByActivationKey(ctx context.Context, key string) (*domain.Account, error) {
	const query = `
        SELECT` + accountColumns + `
        FROM accounts WHERE activation_key=$1`

	account, err := scanAccount(r.pool.QueryRow(ctx, query, key))
	if err != nil {
		return nil, storeErr(err)
	}
	if err := r.loadAuthorities(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (r *accountRepository) ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]*domain.Account, error) {
	const query = `
        SELECT` + accountColumns + `
        FROM accounts WHERE activated=FALSE AND created_date < $1
        ORDER BY created_date`

	rows, err := r.pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, storeErr(err)
		}
		accounts = append(accounts, account)
	}
	return accounts, storeErr(rows.Err())
}

func (r *accountRepository) DeleteIfNotActivated(ctx context.Context, id int64) (bool, error) {
	// the activated=FALSE predicate closes the sweep-vs-activation race:
	// an account activated after the sweeper's read is left untouched
	const query = `DELETE FROM accounts WHERE id=$1 AND activated=FALSE`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, storeErr(err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *accountRepository) SoftDelete(ctx context.Context, id int64) error {
	const query = `UPDATE accounts SET deleted=TRUE WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return storeErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	const query = `UPDATE accounts SET password_hash=$1 WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, hash, id)
	if err != nil {
		return storeErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) loadAuthorities(ctx context.Context, account *domain.Account) error {
	const query = `
        SELECT authority_name FROM account_authorities
        WHERE account_id=$1 ORDER BY authority_name`

	rows, err := r.pool.Query(ctx, query, account.ID)
	if err != nil {
		return storeErr(err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return storeErr(err)
		}
		account.Authorities = append(account.Authorities, domain.Authority{Name: name})
	}
	return storeErr(rows.Err())
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	if err := row.Scan(
		&account.ID,
		&account.Login,
		&account.UserNo,
		&account.PasswordHash,
		&account.FirstName,
		&account.LastName,
		&account.Email,
		&account.LangKey,
		&account.Phone,
		&account.Gender,
		&account.Age,
		&account.Classes,
		&account.Description,
		&account.AvatarURL,
		&account.Activated,
		&account.ActivationKey,
		&account.CreatedDate,
		&account.Deleted,
	); err != nil {
		return nil, err
	}
	return &account, nil
}
