package notify

import (
	"context"

	applog "shopnest/internal/log"
)

// PriceDrop describes a fired price alert.
type PriceDrop struct {
	Email        string  `json:"email"`
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	CurrentPrice float64 `json:"current_price"`
	TargetPrice  float64 `json:"target_price"`
}

// Notifier delivers a price-drop notification to the alert owner.
type Notifier interface {
	NotifyPriceDrop(ctx context.Context, d PriceDrop) error
}

// LogNotifier is the default sink: one audit line per fired alert.
type LogNotifier struct{}

func (LogNotifier) NotifyPriceDrop(_ context.Context, d PriceDrop) error {
	applog.Job("alert.notify", nil, map[string]any{
		"email":   d.Email,
		"product": d.ProductID,
		"price":   d.CurrentPrice,
		"target":  d.TargetPrice,
	})
	return nil
}
