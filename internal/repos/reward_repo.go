package repos

import (
	"database/sql"
	"errors"

	"shopnest/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrInsufficientPoints = errors.New("not enough reward points")

type RewardRepo struct{ db *sqlx.DB }

func NewRewardRepo(db *sqlx.DB) *RewardRepo { return &RewardRepo{db: db} }

// earnPoints upserts the cached balance and appends a ledger row. It runs
// over sqlx.Ext so the checkout transaction and the standalone endpoints
// share the same mutation.
func earnPoints(e sqlx.Ext, userID string, points int, typ, desc string) error {
	if _, err := e.Exec(`
		INSERT INTO user_rewards(user_id, points)
		VALUES(?, ?)
		ON CONFLICT(user_id) DO UPDATE SET points = points + excluded.points
	`, userID, points); err != nil {
		return err
	}
	_, err := e.Exec(`
		INSERT INTO reward_transactions(id, user_id, points, type, description)
		VALUES(?, ?, ?, ?, ?)
	`, uuid.NewString(), userID, points, typ, desc)
	return err
}

// redeemPoints decrements the balance only if it stays non-negative and
// appends a negated ledger row. Zero rows affected means the balance row is
// missing or too small.
func redeemPoints(e sqlx.Ext, userID string, points int, desc string) error {
	res, err := e.Exec(`
		UPDATE user_rewards
		SET points = points - ?
		WHERE user_id = ? AND points >= ?
	`, points, userID, points)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrInsufficientPoints
	}
	_, err = e.Exec(`
		INSERT INTO reward_transactions(id, user_id, points, type, description)
		VALUES(?, ?, ?, 'redeem', ?)
	`, uuid.NewString(), userID, -points, desc)
	return err
}

func (r *RewardRepo) Earn(userID string, points int, desc string) error {
	return earnPoints(r.db, userID, points, domain.RewardEarn, desc)
}

func (r *RewardRepo) EarnBonus(userID string, points int, desc string) error {
	return earnPoints(r.db, userID, points, domain.RewardBonus, desc)
}

func (r *RewardRepo) Redeem(userID string, points int, desc string) error {
	return redeemPoints(r.db, userID, points, desc)
}

// Balance returns 0 for users without a rewards row.
func (r *RewardRepo) Balance(userID string) (int, error) {
	var points int
	err := r.db.Get(&points, `SELECT points FROM user_rewards WHERE user_id = ?`, userID)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return points, err
}

func (r *RewardRepo) History(userID string) ([]domain.RewardTransaction, error) {
	out := []domain.RewardTransaction{}
	err := r.db.Select(&out, `
		SELECT id, user_id, points, type, COALESCE(description,'') AS description, created_at
		FROM reward_transactions
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`, userID)
	return out, err
}

// LedgerSum recomputes the balance from the ledger (reconciliation checks).
func (r *RewardRepo) LedgerSum(userID string) (int, error) {
	var sum int
	err := r.db.Get(&sum, `SELECT COALESCE(SUM(points),0) FROM reward_transactions WHERE user_id = ?`, userID)
	return sum, err
}

// LastSpinAt returns the most recent spin timestamp, or ok=false if the user
// has never spun.
func (r *RewardRepo) LastSpinAt(userID string) (string, bool, error) {
	var ts string
	err := r.db.Get(&ts, `SELECT created_at FROM spin_rewards WHERE user_id = ? ORDER BY created_at DESC LIMIT 1`, userID)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return ts, true, nil
}

func (r *RewardRepo) RecordSpin(userID, rewardType string, value int, at string) error {
	_, err := r.db.Exec(`
		INSERT INTO spin_rewards(id, user_id, reward_type, reward_value, created_at)
		VALUES(?, ?, ?, ?, ?)
	`, uuid.NewString(), userID, rewardType, value, at)
	return err
}
