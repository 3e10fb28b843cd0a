package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeLayout is the storage format for timestamps. Fixed-width UTC with
// microseconds, so lexicographic order matches chronological order.
const TimeLayout = "2006-01-02T15:04:05.000000Z"

func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func ParseTime(s string) (time.Time, error) {
	return time.Parse(TimeLayout, s)
}

type Category struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Location    string `db:"location"`
}

type Product struct {
	ID              string          `db:"id"`
	Name            string          `db:"name"`
	Price           decimal.Decimal `db:"price"`
	QuantityInStock int             `db:"quantity_in_stock"`
	CategoryID      string          `db:"category_id"` // empty when uncategorized
	Location        string          `db:"location"`
	LastUpdated     string          `db:"last_updated"`
}

// Sale is one checkout event. Employee is a free-text username and is
// intentionally not validated against the users table.
type Sale struct {
	ID          string          `db:"id"`
	Employee    string          `db:"employee"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	SaleDate    string          `db:"sale_date"`
}

// Transaction is one line item of a Sale. PriceAtSale is frozen at commit
// time and never recomputed from the product's current price.
type Transaction struct {
	ID           string          `db:"id"`
	SaleID       string          `db:"sale_id"`
	ProductID    string          `db:"product_id"`
	QuantitySold int             `db:"quantity_sold"`
	PriceAtSale  decimal.Decimal `db:"price_at_sale"`
}
