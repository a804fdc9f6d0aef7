package directory

import (
	"context"
	"database/sql"

	"notifysvc/internal/failure"

	"github.com/lib/pq"
)

type Account struct {
	ID    string
	Email string
	Role  string
}

// Directory is the read-only view over the account database. It is owned
// by the auth service; this service only ever selects from it.
type Directory struct {
	db *sql.DB
}

func New(db *sql.DB) *Directory {
	return &Directory{db: db}
}

// ByIDs returns the accounts matching the given identifiers. Identifiers
// with no matching account are simply absent from the result.
func (d *Directory) ByIDs(ctx context.Context, ids []string) ([]Account, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, email, role FROM users WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, failure.RecipientLookupError.WithErr(err)
	}
	defer rows.Close()

	return scanAccounts(rows)
}

// ByRole returns every account holding the given role.
func (d *Directory) ByRole(ctx context.Context, role string) ([]Account, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, email, role FROM users WHERE role = $1 ORDER BY email`, role)
	if err != nil {
		return nil, failure.RecipientLookupError.WithErr(err)
	}
	defer rows.Close()

	return scanAccounts(rows)
}

func scanAccounts(rows *sql.Rows) ([]Account, error) {
	var accounts []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Email, &a.Role); err != nil {
			return nil, failure.RecipientLookupError.WithErr(err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, failure.RecipientLookupError.WithErr(err)
	}
	return accounts, nil
}
