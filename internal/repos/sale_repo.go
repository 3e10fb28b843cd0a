package repos

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/domain"
)

// InsufficientStockError reports a stock-sufficiency failure for one product.
type InsufficientStockError struct {
	Product   string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Not enough stock for %s. Available: %d, Requested: %d",
		e.Product, e.Available, e.Requested)
}

type SaleRepo struct{ db *sqlx.DB }

func NewSaleRepo(db *sqlx.DB) *SaleRepo { return &SaleRepo{db: db} }

// Create inserts a sale header on its own (the manual sale/add path).
func (r *SaleRepo) Create(s domain.Sale) error {
	_, err := r.db.Exec(`
		INSERT INTO sales(id,employee,total_amount,sale_date) VALUES(?,?,?,?)
	`, s.ID, s.Employee, s.TotalAmount, s.SaleDate)
	return err
}

// CreateWithItems commits one sale, its transactions, and the stock
// decrements as a single storage transaction. Each decrement is conditional
// (quantity_in_stock >= requested), so stock is re-validated under the
// engine rather than trusting an earlier read; a failed condition rolls the
// whole sale back and no quantity can ever go negative.
func (r *SaleRepo) CreateWithItems(sale domain.Sale, items []domain.Transaction, names map[string]string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
		INSERT INTO sales(id,employee,total_amount,sale_date) VALUES(?,?,?,?)
	`, sale.ID, sale.Employee, sale.TotalAmount, sale.SaleDate); err != nil {
		return err
	}

	now := domain.FormatTime(time.Now())
	for _, it := range items {
		res, err := tx.Exec(`
			UPDATE products
			SET quantity_in_stock = quantity_in_stock - ?, last_updated = ?
			WHERE id = ? AND quantity_in_stock >= ?
		`, it.QuantitySold, now, it.ProductID, it.QuantitySold)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			var avail int
			_ = tx.Get(&avail, `SELECT quantity_in_stock FROM products WHERE id = ?`, it.ProductID)
			return &InsufficientStockError{Product: names[it.ProductID], Available: avail, Requested: it.QuantitySold}
		}
		if _, err := tx.Exec(`
			INSERT INTO transactions(id,sale_id,product_id,quantity_sold,price_at_sale)
			VALUES(?,?,?,?,?)
		`, it.ID, it.SaleID, it.ProductID, it.QuantitySold, it.PriceAtSale); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *SaleRepo) List() ([]domain.Sale, error) {
	var out []domain.Sale
	err := r.db.Select(&out, `
		SELECT id, employee, total_amount, sale_date FROM sales ORDER BY sale_date
	`)
	return out, err
}

// Between returns sales with start <= sale_date <= end. The fixed-width
// timestamp layout makes the string comparison chronological.
func (r *SaleRepo) Between(start, end time.Time) ([]domain.Sale, error) {
	var out []domain.Sale
	err := r.db.Select(&out, `
		SELECT id, employee, total_amount, sale_date
		FROM sales
		WHERE sale_date >= ? AND sale_date <= ?
		ORDER BY sale_date
	`, domain.FormatTime(start), domain.FormatTime(end))
	return out, err
}

func (r *SaleRepo) ByEmployee(username string) ([]domain.Sale, error) {
	var out []domain.Sale
	err := r.db.Select(&out, `
		SELECT id, employee, total_amount, sale_date
		FROM sales WHERE employee = ? ORDER BY sale_date
	`, username)
	return out, err
}

// TransactionRow joins a transaction with its sale and product for listings.
type TransactionRow struct {
	ID           string          `db:"id"`
	SaleID       string          `db:"sale_id"`
	Employee     string          `db:"employee"`
	ProductID    string          `db:"product_id"`
	ProductName  string          `db:"product_name"`
	QuantitySold int             `db:"quantity_sold"`
	PriceAtSale  decimal.Decimal `db:"price_at_sale"`
}

func (r *SaleRepo) ListTransactions() ([]TransactionRow, error) {
	var out []TransactionRow
	err := r.db.Select(&out, `
		SELECT t.id, t.sale_id, s.employee, t.product_id, p.name AS product_name,
		       t.quantity_sold, t.price_at_sale
		FROM transactions t
		JOIN sales s    ON s.id = t.sale_id
		JOIN products p ON p.id = t.product_id
		ORDER BY s.sale_date, t.id
	`)
	return out, err
}

func (r *SaleRepo) TransactionsBySale(saleID string) ([]TransactionRow, error) {
	var out []TransactionRow
	err := r.db.Select(&out, `
		SELECT t.id, t.sale_id, s.employee, t.product_id, p.name AS product_name,
		       t.quantity_sold, t.price_at_sale
		FROM transactions t
		JOIN sales s    ON s.id = t.sale_id
		JOIN products p ON p.id = t.product_id
		WHERE t.sale_id = ?
		ORDER BY t.id
	`, saleID)
	return out, err
}

// DeleteCascade removes a sale and its transactions, child-then-parent.
func (r *SaleRepo) DeleteCascade(saleID string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM transactions WHERE sale_id = ?`, saleID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM sales WHERE id = ?`, saleID); err != nil {
		return err
	}

	return tx.Commit()
}
