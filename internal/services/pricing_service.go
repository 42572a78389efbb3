package services

import (
	"context"
	"math"
	"math/rand"

	applog "shopnest/internal/log"
	"shopnest/internal/notify"
	"shopnest/internal/repos"
	"shopnest/pkg/metrics"
)

// PricingService implements the random-walk repricing pass and the price-drop
// alert scan that follows each update.
type PricingService struct {
	Prods    *repos.ProductRepo
	Alerts   *repos.AlertRepo
	Notifier notify.Notifier

	// Float64 is injectable for tests; nil means math/rand.
	Float64 func() float64
}

func NewPricingService(prods *repos.ProductRepo, alerts *repos.AlertRepo, n notify.Notifier) *PricingService {
	if n == nil {
		n = notify.LogNotifier{}
	}
	return &PricingService{Prods: prods, Alerts: alerts, Notifier: n}
}

func (s *PricingService) rand() float64 {
	if s.Float64 != nil {
		return s.Float64()
	}
	return rand.Float64()
}

// nextPrice walks the price around base: 30% chance of a 0..+2% bump, else a
// 0..-10% cut, clamped at 1 and rounded to cents.
func (s *PricingService) nextPrice(base float64) float64 {
	var change float64
	if s.rand() < 0.3 {
		change = s.rand() * 0.02
	} else {
		change = -(s.rand() * 0.10)
	}
	p := math.Round(base*(1+change)*100) / 100
	if p < 1 {
		p = 1
	}
	return p
}

// RepriceAll updates every product's price and fires pending alerts. Failures
// are per-product: one bad row never stops the pass.
func (s *PricingService) RepriceAll(ctx context.Context) error {
	products, err := s.Prods.ListForReprice()
	if err != nil {
		return err
	}
	for _, p := range products {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		price := s.nextPrice(p.BasePrice)
		if err := s.Prods.UpdatePrice(p.ID, price); err != nil {
			applog.Job("reprice.update.fail", err, map[string]any{"product": p.ID})
			continue
		}
		metrics.PriceUpdates.Inc()
		if err := s.CheckAlerts(ctx, p.ID, p.Name, price); err != nil {
			applog.Job("reprice.alerts.fail", err, map[string]any{"product": p.ID})
		}
	}
	return nil
}

// CheckAlerts fires every un-notified alert whose target the price has met.
// The notified flag flips exactly once; a later rise and fall does not
// re-trigger.
func (s *PricingService) CheckAlerts(ctx context.Context, productID, productName string, price float64) error {
	pending, err := s.Alerts.PendingForProduct(productID)
	if err != nil {
		return err
	}
	for _, a := range pending {
		if price > a.TargetPrice {
			continue
		}
		flipped, err := s.Alerts.MarkNotified(a.ID)
		if err != nil {
			applog.Job("alert.flip.fail", err, map[string]any{"alert": a.ID})
			continue
		}
		if !flipped {
			continue
		}
		metrics.AlertsNotified.Inc()
		if err := s.Notifier.NotifyPriceDrop(ctx, notify.PriceDrop{
			Email:        a.Email,
			ProductID:    productID,
			ProductName:  productName,
			CurrentPrice: price,
			TargetPrice:  a.TargetPrice,
		}); err != nil {
			// Delivery is best effort; the flag stays flipped.
			applog.Job("alert.notify.fail", err, map[string]any{"alert": a.ID})
		}
	}
	return nil
}
