package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/victorlai/deliverydesk/internal/entity"
)

// CustomerRepository is the persistence collaborator for the customer
// directory. InsertMany is contractually all-or-nothing: the batch runs in a
// single transaction, and the returned count equals the input length exactly
// when the transaction committed.
type CustomerRepository interface {
	Search(ctx context.Context, query string) ([]*entity.Customer, error)
	ListAll(ctx context.Context) ([]*entity.Customer, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	ExistingCodes(ctx context.Context, codes []string) ([]string, error)
	Insert(ctx context.Context, c *entity.Customer) (*entity.Customer, error)
	InsertMany(ctx context.Context, cs []*entity.Customer) (int, error)
	Update(ctx context.Context, c *entity.Customer) error
	DeleteByID(ctx context.Context, id int64) error
}

type customerRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewCustomerRepository(db *DB, logger *slog.Logger) CustomerRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &customerRepository{db: db, logger: logger}
}

const customerColumns = "id, customer_code, recipient, address, tax_id, notes, created_at"

func (r *customerRepository) Search(ctx context.Context, query string) ([]*entity.Customer, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+customerColumns+` FROM customers
		 WHERE lower(recipient) LIKE $1 OR lower(address) LIKE $1
		 ORDER BY created_at DESC, id DESC`, pattern)
	if err != nil {
		r.logger.Error("failed to search customers", "query", query, "error", err)
		return nil, err
	}
	return scanCustomers(rows)
}

func (r *customerRepository) ListAll(ctx context.Context) ([]*entity.Customer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+customerColumns+` FROM customers ORDER BY created_at DESC, id DESC`)
	if err != nil {
		r.logger.Error("failed to list customers", "error", err)
		return nil, err
	}
	return scanCustomers(rows)
}

func (r *customerRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM customers WHERE customer_code = $1`, code).Scan(&n)
	if err != nil {
		r.logger.Error("failed to check customer code", "code", code, "error", err)
		return false, err
	}
	return n > 0, nil
}

// ExistingCodes returns the subset of codes already persisted, in the order
// they first appear in the input.
func (r *customerRepository) ExistingCodes(ctx context.Context, codes []string) ([]string, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(codes))
	args := make([]any, len(codes))
	for i, c := range codes {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = c
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT customer_code FROM customers WHERE customer_code IN (`+strings.Join(placeholders, ",")+`)`,
		args...)
	if err != nil {
		r.logger.Error("failed to check customer codes", "count", len(codes), "error", err)
		return nil, err
	}
	defer rows.Close()

	found := make(map[string]struct{})
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		found[code] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var existing []string
	seen := make(map[string]struct{})
	for _, c := range codes {
		if _, ok := found[c]; !ok {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		existing = append(existing, c)
	}
	return existing, nil
}

func (r *customerRepository) Insert(ctx context.Context, c *entity.Customer) (*entity.Customer, error) {
	created := time.Now().UTC()
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO customers (customer_code, recipient, address, tax_id, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		c.CustomerCode, c.Recipient, c.Address, c.TaxID, c.Notes, created).Scan(&id)
	if err != nil {
		r.logger.Error("failed to insert customer", "code", c.CustomerCode, "error", err)
		return nil, err
	}

	out := *c
	out.ID = id
	out.CreatedAt = created
	return &out, nil
}

func (r *customerRepository) InsertMany(ctx context.Context, cs []*entity.Customer) (int, error) {
	if len(cs) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO customers (customer_code, recipient, address, tax_id, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	created := time.Now().UTC()
	for _, c := range cs {
		if _, err := stmt.ExecContext(ctx, c.CustomerCode, c.Recipient, c.Address, c.TaxID, c.Notes, created); err != nil {
			r.logger.Error("bulk insert aborted", "code", c.CustomerCode, "error", err)
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}

	r.logger.Info("bulk insert committed", "count", len(cs))
	return len(cs), nil
}

func (r *customerRepository) Update(ctx context.Context, c *entity.Customer) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE customers SET customer_code = $1, recipient = $2, address = $3, tax_id = $4, notes = $5
		 WHERE id = $6`,
		c.CustomerCode, c.Recipient, c.Address, c.TaxID, c.Notes, c.ID)
	if err != nil {
		r.logger.Error("failed to update customer", "id", c.ID, "error", err)
	}
	return err
}

func (r *customerRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("failed to delete customer", "id", id, "error", err)
	}
	return err
}

func scanCustomers(rows *sql.Rows) ([]*entity.Customer, error) {
	defer rows.Close()
	var out []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.CustomerCode, &c.Recipient, &c.Address, &c.TaxID, &c.Notes, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
