package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	perrors "github.com/shopkit/product-api/internal/errors"
)

// PgStore implements ProductStore using PostgreSQL as the data store.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of ProductStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

// FindAll retrieves all products ordered by ID.
// It returns a slice of products, which may be empty if no products exist.
func (p *PgStore) FindAll(ctx context.Context) ([]Product, error) {
	rows, err := p.db.Query(ctx,
		`SELECT id, name, price, availability FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	products, err := pgx.CollectRows(rows, pgx.RowToStructByName[Product])
	if err != nil {
		return nil, fmt.Errorf("failed to scan products: %w", err)
	}
	return products, nil
}

// FindByID retrieves a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) FindByID(ctx context.Context, id int64) (*Product, error) {
	rows, err := p.db.Query(ctx,
		`SELECT id, name, price, availability FROM products WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	product, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[Product])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return &product, nil
}

// Create adds a new product to the system. Availability defaults to true at the
// database level. Returns an error if the product cannot be created.
func (p *PgStore) Create(ctx context.Context, name string, price float64) (*Product, error) {
	rows, err := p.db.Query(ctx,
		`INSERT INTO products (name, price) VALUES ($1, $2)
         RETURNING id, name, price, availability`, name, price)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	product, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[Product])
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

// Update replaces an existing product's details.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) Update(ctx context.Context, id int64, name string, price float64, availability bool) (*Product, error) {
	rows, err := p.db.Query(ctx,
		`UPDATE products SET name = $2, price = $3, availability = $4
         WHERE id = $1
         RETURNING id, name, price, availability`, id, name, price, availability)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	product, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[Product])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &product, nil
}

// ToggleAvailability flips the availability flag in a single atomic statement.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) ToggleAvailability(ctx context.Context, id int64) (*Product, error) {
	rows, err := p.db.Query(ctx,
		`UPDATE products SET availability = NOT availability
         WHERE id = $1
         RETURNING id, name, price, availability`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle product availability: %w", err)
	}
	product, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[Product])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to toggle product availability: %w", err)
	}
	return &product, nil
}

// DeleteByID removes a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) DeleteByID(ctx context.Context, id int64) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product by ID: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return perrors.ErrProductNotFound
	}
	return nil
}
