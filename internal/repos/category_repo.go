package repos

import (
	"github.com/jmoiron/sqlx"

	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/domain"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) Create(c domain.Category) error {
	_, err := r.db.Exec(`
		INSERT INTO categories(id,name,description,location) VALUES(?,?,?,?)
	`, c.ID, c.Name, c.Description, c.Location)
	return err
}

func (r *CategoryRepo) ByName(name string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `
		SELECT id, name, description, location FROM categories WHERE name = ?
	`, name)
	return c, err
}

func (r *CategoryRepo) ByID(id string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `
		SELECT id, name, description, location FROM categories WHERE id = ?
	`, id)
	return c, err
}

func (r *CategoryRepo) List() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `
		SELECT id, name, description, location FROM categories ORDER BY name
	`)
	return out, err
}

func (r *CategoryRepo) Update(c domain.Category) error {
	_, err := r.db.Exec(`
		UPDATE categories SET name = ?, description = ?, location = ? WHERE id = ?
	`, c.Name, c.Description, c.Location, c.ID)
	return err
}

// DeleteCascade removes the category together with its products and their
// transactions, child-then-parent, in one storage transaction.
func (r *CategoryRepo) DeleteCascade(categoryID string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
		DELETE FROM transactions
		WHERE product_id IN (SELECT id FROM products WHERE category_id = ?)
	`, categoryID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM products WHERE category_id = ?`, categoryID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM categories WHERE id = ?`, categoryID); err != nil {
		return err
	}

	return tx.Commit()
}
