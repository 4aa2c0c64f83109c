package collector

import (
	"context"
	"sort"

	"TickerSignal/internal/model"
)

// Fetcher defines the interface for fetching daily price history.
type Fetcher interface {
	// FetchDailyBars returns up to `bars` most recent daily bars for symbol.
	FetchDailyBars(ctx context.Context, symbol string, bars int) ([]model.PricePoint, error)
	Name() string
}

// orderBars sorts bars oldest first and collapses restated bars, keeping the
// one the provider sent last for each timestamp.
func orderBars(points []model.PricePoint) []model.PricePoint {
	sort.SliceStable(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })
	out := points[:0]
	for i, p := range points {
		if i+1 < len(points) && points[i+1].Time.Equal(p.Time) {
			continue
		}
		out = append(out, p)
	}
	return out
}
