package store

// Product represents a product row in the store.
type Product struct {
	ID           int64   `db:"id"`
	Name         string  `db:"name"`
	Price        float64 `db:"price"`
	Availability bool    `db:"availability"`
}
