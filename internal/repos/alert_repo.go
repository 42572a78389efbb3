package repos

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"shopnest/internal/domain"
)

type AlertRepo struct{ db *sqlx.DB }

func NewAlertRepo(db *sqlx.DB) *AlertRepo { return &AlertRepo{db: db} }

// Exists reports whether the user already watches this product.
func (r *AlertRepo) Exists(userID, productID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM price_alerts WHERE user_id = ? AND product_id = ?`, userID, productID)
	return n > 0, err
}

func (r *AlertRepo) Create(userID, productID string, targetPrice float64) (string, error) {
	id := uuid.NewString()
	_, err := r.db.Exec(`
		INSERT INTO price_alerts(id, user_id, product_id, target_price)
		VALUES(?, ?, ?, ?)
	`, id, userID, productID, targetPrice)
	return id, err
}

func (r *AlertRepo) Get(id string) (domain.PriceAlert, error) {
	var a domain.PriceAlert
	err := r.db.Get(&a, `
		SELECT id, user_id, product_id, target_price, notified, created_at
		FROM price_alerts WHERE id = ?
	`, id)
	return a, err
}

// AlertRow is an alert joined with the watched product for listings.
type AlertRow struct {
	ID           string  `db:"id" json:"id"`
	ProductID    string  `db:"product_id" json:"product_id"`
	TargetPrice  float64 `db:"target_price" json:"target_price"`
	Notified     bool    `db:"notified" json:"notified"`
	CreatedAt    string  `db:"created_at" json:"created_at"`
	Name         string  `db:"name" json:"name"`
	CurrentPrice float64 `db:"current_price" json:"current_price"`
	ImageURL     string  `db:"image_url" json:"image_url"`
}

func (r *AlertRepo) ListByUser(userID string) ([]AlertRow, error) {
	out := []AlertRow{}
	err := r.db.Select(&out, `
		SELECT pa.id, pa.product_id, pa.target_price, pa.notified, pa.created_at,
		       p.name, p.price AS current_price, COALESCE(p.image_url,'') AS image_url
		FROM price_alerts pa
		JOIN products p ON p.id = pa.product_id
		WHERE pa.user_id = ?
		ORDER BY pa.created_at DESC
	`, userID)
	return out, err
}

func (r *AlertRepo) UpdateTarget(id string, targetPrice float64) (bool, error) {
	res, err := r.db.Exec(`UPDATE price_alerts SET target_price = ?, notified = 0 WHERE id = ?`, targetPrice, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *AlertRepo) Delete(id string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM price_alerts WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// PendingRow is an un-notified alert with its owner's email, for the
// price-drop scan.
type PendingRow struct {
	ID          string  `db:"id"`
	UserID      string  `db:"user_id"`
	TargetPrice float64 `db:"target_price"`
	Email       string  `db:"email"`
}

func (r *AlertRepo) PendingForProduct(productID string) ([]PendingRow, error) {
	out := []PendingRow{}
	err := r.db.Select(&out, `
		SELECT pa.id, pa.user_id, pa.target_price, u.email
		FROM price_alerts pa
		JOIN users u ON u.id = pa.user_id
		WHERE pa.product_id = ? AND pa.notified = 0
	`, productID)
	return out, err
}

// MarkNotified flips the single-fire flag; the guard keeps a concurrent scan
// from notifying twice.
func (r *AlertRepo) MarkNotified(id string) (bool, error) {
	res, err := r.db.Exec(`UPDATE price_alerts SET notified = 1 WHERE id = ? AND notified = 0`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
