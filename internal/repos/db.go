package repos

import (
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/domain"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline data if DB is empty (categories/products)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure staff accounts exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Categories
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  location TEXT NOT NULL DEFAULT ''
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name ON categories(name);

-- Products. Money columns are TEXT so decimal strings round-trip
-- without float conversion.
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  price TEXT NOT NULL,
  quantity_in_stock INTEGER NOT NULL DEFAULT 0 CHECK (quantity_in_stock >= 0),
  category_id TEXT REFERENCES categories(id),
  location TEXT NOT NULL DEFAULT '',
  last_updated TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_products_name ON products(name);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);

-- Sales ledger. Deletes cascade at the application level (see repos),
-- child-then-parent, so the behavior stays visible and testable.
CREATE TABLE IF NOT EXISTS sales(
  id TEXT PRIMARY KEY,
  employee TEXT NOT NULL,
  total_amount TEXT NOT NULL,
  sale_date TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sales_employee ON sales(employee);
CREATE INDEX IF NOT EXISTS idx_sales_date ON sales(sale_date);

CREATE TABLE IF NOT EXISTS transactions(
  id TEXT PRIMARY KEY,
  sale_id TEXT NOT NULL REFERENCES sales(id),
  product_id TEXT NOT NULL REFERENCES products(id),
  quantity_sold INTEGER NOT NULL CHECK (quantity_sold > 0),
  price_at_sale TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transactions_sale    ON transactions(sale_id);
CREATE INDEX IF NOT EXISTS idx_transactions_product ON transactions(product_id);

-- Staff accounts
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  full_name TEXT NOT NULL,
  username TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('Admin','Manager','Cashier','Inventory Manager')),
  password_hash TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users(LOWER(username));
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/products")

	now := domain.FormatTime(time.Now())
	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO categories(id,name,description,location) VALUES
	  ('cat-electronics','Electronics','Gadgets, devices, and accessories.','Aisle 1'),
	  ('cat-groceries','Groceries','Daily food and household staples.','Aisle 4'),
	  ('cat-stationery','Stationery','Office and school supplies.','Aisle 7')`)

	tx.MustExec(`INSERT INTO products(id,name,price,quantity_in_stock,category_id,location,last_updated) VALUES
	  ('prod-laptop','Laptop','999.99',10,'cat-electronics','Aisle 1',?),
	  ('prod-headphones','Headphones','49.99',25,'cat-electronics','Aisle 1',?),
	  ('prod-notebook','Notebook','2.50',200,'cat-stationery','Aisle 7',?)`, now, now, now)

	return tx.Commit()
}

// seedUsers ensures a default admin exists (idempotent).
func seedUsers(db *sqlx.DB) error {
	hash, _ := bcrypt.GenerateFromPassword([]byte("Admin@123"), 12)
	_, err := db.Exec(`
		INSERT INTO users(id,full_name,username,role,password_hash)
		VALUES('u-admin','Store Admin','admin','Admin',?)
		ON CONFLICT DO NOTHING
	`, string(hash))
	return err
}
