package jobs

import (
	"context"
	"time"

	applog "shopnest/internal/log"
	"shopnest/internal/services"
)

// RunRepricer runs an immediate repricing pass and then one per interval
// until the context is cancelled.
func RunRepricer(ctx context.Context, pricing *services.PricingService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	runOnce(ctx, pricing)

	for {
		select {
		case <-ctx.Done():
			applog.Job("reprice.stop", nil, nil)
			return
		case <-ticker.C:
			runOnce(ctx, pricing)
		}
	}
}

func runOnce(ctx context.Context, pricing *services.PricingService) {
	start := time.Now()
	if err := pricing.RepriceAll(ctx); err != nil {
		applog.Job("reprice.run.fail", err, nil)
		return
	}
	applog.Job("reprice.run", nil, map[string]any{"took_ms": time.Since(start).Milliseconds()})
}
