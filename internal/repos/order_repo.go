package repos

import (
	"database/sql"
	"errors"
	"math"

	"shopnest/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrCartEmpty = errors.New("cart is empty")

// StockError names the product that cannot be fulfilled.
type StockError struct{ Product string }

func (e *StockError) Error() string { return "insufficient stock for product: " + e.Product }

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

type CheckoutInput struct {
	UserID          string
	ShippingAddress string
	PaymentMethod   string
	PaymentStatus   string
	RedeemPoints    int
}

type CheckoutResult struct {
	OrderID      string
	Subtotal     float64
	Discount     float64
	FinalAmount  float64
	EarnedPoints int
}

// Checkout runs the whole order-creation flow in one transaction: cart read,
// stock guard, optional point redemption, header + line inserts, stock
// decrements, cart clear, point earn. Any failure rolls the lot back.
func (r *OrderRepo) Checkout(in CheckoutInput) (CheckoutResult, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return CheckoutResult{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var cartID string
	if err := tx.Get(&cartID, `SELECT id FROM carts WHERE user_id = ?`, in.UserID); err != nil {
		if err == sql.ErrNoRows {
			return CheckoutResult{}, ErrCartEmpty
		}
		return CheckoutResult{}, err
	}

	type line struct {
		ProductID string  `db:"product_id"`
		Name      string  `db:"name"`
		Quantity  int     `db:"quantity"`
		Price     float64 `db:"price"`
		Stock     int     `db:"stock_quantity"`
	}
	var lines []line
	if err := tx.Select(&lines, `
		SELECT ci.product_id, p.name, ci.quantity, p.price, p.stock_quantity
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = ?
	`, cartID); err != nil {
		return CheckoutResult{}, err
	}
	if len(lines) == 0 {
		return CheckoutResult{}, ErrCartEmpty
	}

	subtotal := 0.0
	for _, it := range lines {
		if it.Quantity > it.Stock {
			return CheckoutResult{}, &StockError{Product: it.Name}
		}
		subtotal += it.Price * float64(it.Quantity)
	}

	discount := 0.0
	if in.RedeemPoints > 0 {
		if err := redeemPoints(tx, in.UserID, in.RedeemPoints, "Redeemed at checkout"); err != nil {
			return CheckoutResult{}, err
		}
		discount = float64(in.RedeemPoints) // 1 point = 1 currency unit
	}

	final := subtotal - discount
	if final < 0 {
		final = 0
	}

	orderID := uuid.NewString()
	if _, err := tx.Exec(`
		INSERT INTO orders(id, user_id, total_amount, discount_amount, final_amount,
		                   status, shipping_address, payment_method, payment_status)
		VALUES(?, ?, ?, ?, ?, 'pending', ?, ?, ?)
	`, orderID, in.UserID, subtotal, discount, final,
		in.ShippingAddress, in.PaymentMethod, in.PaymentStatus); err != nil {
		return CheckoutResult{}, err
	}

	for _, it := range lines {
		if _, err := tx.Exec(`
			INSERT INTO order_items(id, order_id, product_id, quantity, price)
			VALUES(?, ?, ?, ?, ?)
		`, uuid.NewString(), orderID, it.ProductID, it.Quantity, it.Price); err != nil {
			return CheckoutResult{}, err
		}
		// Guarded even after the pre-check: a concurrent checkout may have
		// drained the stock between the read and this write.
		if err := decrementStock(tx, it.ProductID, it.Quantity); err != nil {
			return CheckoutResult{}, &StockError{Product: it.Name}
		}
	}

	if _, err := tx.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID); err != nil {
		return CheckoutResult{}, err
	}

	earned := int(math.Floor(final * 0.10))
	if earned > 0 {
		if err := earnPoints(tx, in.UserID, earned, domain.RewardEarn, "Points from order"); err != nil {
			return CheckoutResult{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return CheckoutResult{}, err
	}
	return CheckoutResult{
		OrderID:      orderID,
		Subtotal:     subtotal,
		Discount:     discount,
		FinalAmount:  final,
		EarnedPoints: earned,
	}, nil
}

const orderCols = `
  id, user_id, total_amount, discount_amount, final_amount, status,
  shipping_address, payment_method, payment_status, created_at,
  COALESCE(processing_at,'') AS processing_at,
  COALESCE(shipped_at,'')    AS shipped_at,
  COALESCE(delivered_at,'')  AS delivered_at`

func (r *OrderRepo) Get(orderID string) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `SELECT`+orderCols+` FROM orders WHERE id = ?`, orderID)
	return o, err
}

func (r *OrderRepo) ListByUser(userID string) ([]domain.Order, error) {
	out := []domain.Order{}
	err := r.db.Select(&out, `
		SELECT`+orderCols+`
		FROM orders
		WHERE user_id = ?
		ORDER BY datetime(created_at) DESC
	`, userID)
	return out, err
}

func (r *OrderRepo) ListLatest(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	out := []domain.Order{}
	err := r.db.Select(&out, `
		SELECT`+orderCols+`
		FROM orders
		ORDER BY datetime(created_at) DESC
		LIMIT ?
	`, limit)
	return out, err
}

func (r *OrderRepo) Items(orderID string) ([]domain.OrderItem, error) {
	out := []domain.OrderItem{}
	err := r.db.Select(&out, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
		       p.name, COALESCE(p.image_url,'') AS image_url
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ?
	`, orderID)
	return out, err
}

// SetStatus updates the status and, for processing/shipped/delivered, stamps
// the matching timestamp column. Transition legality is the service's job.
func (r *OrderRepo) SetStatus(orderID, status string) error {
	var stamp string
	switch status {
	case domain.StatusProcessing:
		stamp = "processing_at"
	case domain.StatusShipped:
		stamp = "shipped_at"
	case domain.StatusDelivered:
		stamp = "delivered_at"
	}
	if stamp != "" {
		_, err := r.db.Exec(`UPDATE orders SET status = ?, `+stamp+` = CURRENT_TIMESTAMP WHERE id = ?`, status, orderID)
		return err
	}
	_, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, orderID)
	return err
}

// DeleteOwned removes an order only if it belongs to the user.
func (r *OrderRepo) DeleteOwned(orderID, userID string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM orders WHERE id = ? AND user_id = ?`, orderID, userID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
