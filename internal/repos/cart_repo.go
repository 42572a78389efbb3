package repos

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// EnsureCart returns the user's cart id, creating the cart lazily.
func (r *CartRepo) EnsureCart(userID string) (string, error) {
	var cartID string
	if err := r.db.Get(&cartID, `SELECT id FROM carts WHERE user_id = ?`, userID); err == nil {
		return cartID, nil
	}
	cartID = uuid.NewString()
	_, err := r.db.Exec(`INSERT INTO carts(id,user_id,updated_at) VALUES(?,?,?)`,
		cartID, userID, time.Now().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return cartID, nil
}

func (r *CartRepo) UpsertItem(cartID, productID string, qty int) error {
	_, err := r.db.Exec(`
		INSERT INTO cart_items(id,cart_id,product_id,quantity,created_at)
		VALUES(?,?,?,?,CURRENT_TIMESTAMP)
		ON CONFLICT(cart_id,product_id) DO UPDATE
		SET quantity = cart_items.quantity + excluded.quantity, updated_at = CURRENT_TIMESTAMP
	`, uuid.NewString(), cartID, productID, qty)
	return err
}

func (r *CartRepo) SetItemQty(cartID, itemID string, qty int) (bool, error) {
	res, err := r.db.Exec(`UPDATE cart_items SET quantity = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND cart_id = ?`,
		qty, itemID, cartID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *CartRepo) RemoveItem(cartID, itemID string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM cart_items WHERE id = ? AND cart_id = ?`, itemID, cartID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// CartLine is a cart item joined with current product price and stock.
type CartLine struct {
	ItemID    string  `db:"item_id" json:"item_id"`
	ProductID string  `db:"product_id" json:"product_id"`
	Name      string  `db:"name" json:"name"`
	ImageURL  string  `db:"image_url" json:"image_url"`
	Quantity  int     `db:"quantity" json:"quantity"`
	Price     float64 `db:"price" json:"price"`
	Stock     int     `db:"stock_quantity" json:"stock_quantity"`
	Subtotal  float64 `db:"subtotal" json:"subtotal"`
}

func (r *CartRepo) Lines(cartID string) ([]CartLine, error) {
	lines := []CartLine{}
	err := r.db.Select(&lines, `
	  SELECT ci.id AS item_id, ci.product_id, p.name, COALESCE(p.image_url,'') AS image_url,
	         ci.quantity, p.price, p.stock_quantity,
	         (ci.quantity * p.price) AS subtotal
	  FROM cart_items ci JOIN products p ON p.id = ci.product_id
	  WHERE ci.cart_id = ?
	`, cartID)
	return lines, err
}

func (r *CartRepo) Count(cartID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COALESCE(SUM(quantity),0) FROM cart_items WHERE cart_id = ?`, cartID)
	return n, err
}

func (r *CartRepo) Clear(cartID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	return err
}
