package repos

import (
	"fmt"

	"shopnest/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, category_id, name, COALESCE(description,'') AS description,
  price, base_price, stock_quantity, COALESCE(image_url,'') AS image_url,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT`+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) List(q, catID string, limit, offset int) ([]domain.Product, error) {
	where := `1=1`
	args := []any{}
	if q != "" {
		where += ` AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)`
		args = append(args, "%"+q+"%", "%"+q+"%")
	}
	if catID != "" {
		where += ` AND category_id = ?`
		args = append(args, catID)
	}
	args = append(args, limit, offset)

	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT`+productCols+`
	  FROM products
	  WHERE `+where+`
	  ORDER BY created_at DESC
	  LIMIT ? OFFSET ?`, args...)
	return out, err
}

// ListForReprice returns the fields the scheduled repricing job needs.
type RepriceRow struct {
	ID        string  `db:"id"`
	Name      string  `db:"name"`
	Price     float64 `db:"price"`
	BasePrice float64 `db:"base_price"`
}

func (r *ProductRepo) ListForReprice() ([]RepriceRow, error) {
	var out []RepriceRow
	err := r.db.Select(&out, `SELECT id, name, price, base_price FROM products`)
	return out, err
}

func (r *ProductRepo) UpdatePrice(id string, price float64) error {
	_, err := r.db.Exec(`UPDATE products SET price = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, price, id)
	return err
}

// decrementStock atomically subtracts "by" units if enough stock exists.
// A zero RowsAffected means a concurrent checkout got there first.
func decrementStock(e sqlx.Ext, productID string, by int) error {
	res, err := e.Exec(`
		UPDATE products
		SET stock_quantity = stock_quantity - ?
		WHERE id = ? AND stock_quantity >= ?
	`, by, productID, by)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("insufficient stock for %s", productID)
	}
	return nil
}
