package services

import (
	"math/rand"
	"time"

	"shopnest/internal/domain"
	"shopnest/internal/repos"
	"shopnest/pkg/metrics"
)

type RewardService struct {
	Rewards *repos.RewardRepo

	// Now and Intn are injectable for tests; nil means real clock / math/rand.
	Now  func() time.Time
	Intn func(n int) int
}

func NewRewardService(rewards *repos.RewardRepo) *RewardService {
	return &RewardService{Rewards: rewards}
}

func (s *RewardService) Balance(userID string) (int, error) {
	return s.Rewards.Balance(userID)
}

func (s *RewardService) History(userID string) ([]domain.RewardTransaction, error) {
	return s.Rewards.History(userID)
}

func (s *RewardService) Earn(userID string, points int, desc string) error {
	if desc == "" {
		desc = "Points earned"
	}
	return s.Rewards.Earn(userID, points, desc)
}

func (s *RewardService) Redeem(userID string, points int, desc string) error {
	if desc == "" {
		desc = "Redeemed points"
	}
	return s.Rewards.Redeem(userID, points, desc)
}

// spinPool is the fixed wheel: three point rewards and one blank.
var spinPool = []domain.SpinReward{
	{Type: "points", Value: 10},
	{Type: "points", Value: 20},
	{Type: "points", Value: 50},
	{Type: "none", Value: 0},
}

func (s *RewardService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *RewardService) intn(n int) int {
	if s.Intn != nil {
		return s.Intn(n)
	}
	return rand.Intn(n)
}

// Spin enforces one spin per calendar date, then draws uniformly from the
// pool. Point rewards flow through the ledger as a bonus.
func (s *RewardService) Spin(userID string) (domain.SpinReward, error) {
	last, ok, err := s.Rewards.LastSpinAt(userID)
	if err != nil {
		return domain.SpinReward{}, err
	}
	now := s.now()
	if ok && sameCalendarDay(last, now) {
		return domain.SpinReward{}, ErrSpinUsed
	}

	reward := spinPool[s.intn(len(spinPool))]
	if err := s.Rewards.RecordSpin(userID, reward.Type, reward.Value, now.Format(time.RFC3339)); err != nil {
		return domain.SpinReward{}, err
	}
	if reward.Type == "points" {
		if err := s.Rewards.EarnBonus(userID, reward.Value, "Spin-the-Wheel reward"); err != nil {
			return domain.SpinReward{}, err
		}
	}
	metrics.SpinAttempts.WithLabelValues(reward.Type).Inc()
	return reward, nil
}

// sameCalendarDay compares the stored spin timestamp against now on local
// calendar date, not a rolling 24h window.
func sameCalendarDay(stored string, now time.Time) bool {
	t, err := time.Parse(time.RFC3339, stored)
	if err != nil {
		// Fall back to sqlite's CURRENT_TIMESTAMP format.
		t, err = time.ParseInLocation("2006-01-02 15:04:05", stored, now.Location())
		if err != nil {
			return false
		}
	}
	y1, m1, d1 := t.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
