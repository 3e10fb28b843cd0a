package repos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, name, price, quantity_in_stock,
  COALESCE(category_id,'') AS category_id, location, last_updated`

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
		INSERT INTO products(id,name,price,quantity_in_stock,category_id,location,last_updated)
		VALUES(?,?,?,?,NULLIF(?,''),?,?)
	`, p.ID, p.Name, p.Price, p.QuantityInStock, p.CategoryID, p.Location, p.LastUpdated)
	return err
}

func (r *ProductRepo) ByName(name string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE name = ?`, name)
	return p, err
}

func (r *ProductRepo) List() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products ORDER BY name`)
	return out, err
}

func (r *ProductRepo) ListByCategory(categoryID string) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
		SELECT `+productCols+` FROM products WHERE category_id = ? ORDER BY name
	`, categoryID)
	return out, err
}

// Update rewrites every mutable column and refreshes last_updated.
func (r *ProductRepo) Update(p domain.Product) error {
	_, err := r.db.Exec(`
		UPDATE products
		SET name = ?, price = ?, quantity_in_stock = ?, category_id = NULLIF(?,''),
		    location = ?, last_updated = ?
		WHERE id = ?
	`, p.Name, p.Price, p.QuantityInStock, p.CategoryID, p.Location,
		domain.FormatTime(time.Now()), p.ID)
	return err
}

// DeleteCascade removes the product and its transactions, child-then-parent.
func (r *ProductRepo) DeleteCascade(productID string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM transactions WHERE product_id = ?`, productID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM products WHERE id = ?`, productID); err != nil {
		return err
	}

	return tx.Commit()
}
