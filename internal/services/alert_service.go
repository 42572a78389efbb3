package services

import (
	"shopnest/internal/domain"
	"shopnest/internal/repos"
)

type AlertService struct {
	Alerts *repos.AlertRepo
	Prods  *repos.ProductRepo
}

func NewAlertService(alerts *repos.AlertRepo, prods *repos.ProductRepo) *AlertService {
	return &AlertService{Alerts: alerts, Prods: prods}
}

func (s *AlertService) Create(userID, productID string, target float64) (string, error) {
	if _, err := s.Prods.Get(productID); err != nil {
		return "", err
	}
	exists, err := s.Alerts.Exists(userID, productID)
	if err != nil {
		return "", err
	}
	if exists {
		return "", ErrAlertExists
	}
	return s.Alerts.Create(userID, productID, target)
}

func (s *AlertService) List(userID string) ([]repos.AlertRow, error) {
	return s.Alerts.ListByUser(userID)
}

// owned loads an alert and enforces ownership. Every mutating endpoint goes
// through it, including delete.
func (s *AlertService) owned(alertID, userID string) (domain.PriceAlert, error) {
	a, err := s.Alerts.Get(alertID)
	if err != nil {
		return domain.PriceAlert{}, err
	}
	if a.UserID != userID {
		return domain.PriceAlert{}, ErrNotOwner
	}
	return a, nil
}

func (s *AlertService) UpdateTarget(alertID, userID string, target float64) (domain.PriceAlert, error) {
	if _, err := s.owned(alertID, userID); err != nil {
		return domain.PriceAlert{}, err
	}
	if _, err := s.Alerts.UpdateTarget(alertID, target); err != nil {
		return domain.PriceAlert{}, err
	}
	return s.Alerts.Get(alertID)
}

func (s *AlertService) Delete(alertID, userID string) error {
	if _, err := s.owned(alertID, userID); err != nil {
		return err
	}
	_, err := s.Alerts.Delete(alertID)
	return err
}
