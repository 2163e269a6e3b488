package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

// MeterName is the instrumentation scope of shop metrics
const MeterName = "shop-admin"

// ShopMetrics holds the domain counters
type ShopMetrics struct {
	priceBackfills *Counter
	blogCache      *Counter
}

// NewShopMetrics registers the shop instruments on meter
func NewShopMetrics(meter metric.Meter) (*ShopMetrics, error) {
	backfills, err := NewCounter(meter,
		"shop.order_item.price_backfills",
		"Order items whose unit price was copied from the product on save",
		"{item}",
	)
	if err != nil {
		return nil, err
	}
	blogCache, err := NewCounter(meter,
		"shop.blog.cache.lookups",
		"Published post list cache lookups by result",
		"{lookup}",
	)
	if err != nil {
		return nil, err
	}
	return &ShopMetrics{priceBackfills: backfills, blogCache: blogCache}, nil
}

// RecordPriceBackfills counts items of an order that took the product price.
// A nil receiver records nothing.
func (m *ShopMetrics) RecordPriceBackfills(ctx context.Context, orderID int64, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.priceBackfills.Add(ctx, int64(n), AttrOrderID.Int64(orderID))
}

// RecordBlogCacheLookup counts a hit or a miss
func (m *ShopMetrics) RecordBlogCacheLookup(ctx context.Context, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.blogCache.Add(ctx, 1, AttrCacheResult.String(result))
}
