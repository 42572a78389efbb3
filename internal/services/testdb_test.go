package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	schema := `
	CREATE TABLE users(id TEXT PRIMARY KEY, email TEXT UNIQUE, name TEXT, password_hash TEXT, role TEXT);
	CREATE TABLE categories(id TEXT PRIMARY KEY, name TEXT, created_at TEXT, updated_at TEXT);
	CREATE TABLE products(id TEXT PRIMARY KEY, category_id TEXT, name TEXT, description TEXT,
	  price NUMERIC, base_price NUMERIC, stock_quantity INTEGER, image_url TEXT,
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP, updated_at TEXT);
	CREATE TABLE carts(id TEXT PRIMARY KEY, user_id TEXT UNIQUE NOT NULL, updated_at TEXT);
	CREATE TABLE cart_items(id TEXT PRIMARY KEY, cart_id TEXT, product_id TEXT, quantity INTEGER,
	  created_at TEXT, updated_at TEXT, UNIQUE(cart_id, product_id));
	CREATE TABLE orders(id TEXT PRIMARY KEY, user_id TEXT, total_amount NUMERIC,
	  discount_amount NUMERIC DEFAULT 0, final_amount NUMERIC, status TEXT DEFAULT 'pending',
	  shipping_address TEXT, payment_method TEXT, payment_status TEXT DEFAULT 'pending',
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP, processing_at TEXT, shipped_at TEXT, delivered_at TEXT);
	CREATE TABLE order_items(id TEXT PRIMARY KEY, order_id TEXT, product_id TEXT, quantity INTEGER, price NUMERIC);
	CREATE TABLE user_rewards(user_id TEXT PRIMARY KEY, points INTEGER NOT NULL DEFAULT 0 CHECK (points >= 0));
	CREATE TABLE reward_transactions(id TEXT PRIMARY KEY, user_id TEXT, points INTEGER, type TEXT,
	  description TEXT, created_at TEXT DEFAULT CURRENT_TIMESTAMP);
	CREATE TABLE spin_rewards(id TEXT PRIMARY KEY, user_id TEXT, reward_type TEXT, reward_value INTEGER,
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP);
	CREATE TABLE price_alerts(id TEXT PRIMARY KEY, user_id TEXT, product_id TEXT, target_price NUMERIC,
	  notified INTEGER NOT NULL DEFAULT 0, created_at TEXT DEFAULT CURRENT_TIMESTAMP,
	  UNIQUE(user_id, product_id));

	INSERT INTO users(id,email,name,password_hash,role) VALUES
	  ('u-1','one@shopnest.test','One','x','customer'),
	  ('u-2','two@shopnest.test','Two','x','customer');
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func seedProduct(t *testing.T, db *sqlx.DB, id, name string, price float64, stock int) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO products(id,category_id,name,description,price,base_price,stock_quantity)
	  VALUES(?,?,?,?,?,?,?)`, id, "cat-1", name, "", price, price, stock)
	if err != nil {
		t.Fatal(err)
	}
}

func seedCartItem(t *testing.T, db *sqlx.DB, cartID, productID string, qty int) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO cart_items(id,cart_id,product_id,quantity) VALUES(?,?,?,?)`,
		"ci-"+cartID+"-"+productID, cartID, productID, qty)
	if err != nil {
		t.Fatal(err)
	}
}

func seedCart(t *testing.T, db *sqlx.DB, cartID, userID string) {
	t.Helper()
	if _, err := db.Exec(`INSERT INTO carts(id,user_id) VALUES(?,?)`, cartID, userID); err != nil {
		t.Fatal(err)
	}
}

func count(t *testing.T, db *sqlx.DB, query string, args ...any) int {
	t.Helper()
	var n int
	if err := db.Get(&n, query, args...); err != nil {
		t.Fatal(err)
	}
	return n
}

func stockOf(t *testing.T, db *sqlx.DB, productID string) int {
	t.Helper()
	return count(t, db, `SELECT stock_quantity FROM products WHERE id = ?`, productID)
}
