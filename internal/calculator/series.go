package calculator

import (
	"errors"
	"math"
	"sort"

	"TickerSignal/internal/model"
)

var (
	// ErrEmptyData is returned when no price records were supplied at all.
	ErrEmptyData = errors.New("empty price data")
	// ErrInsufficientHistory is returned when no usable price point is left to compute on.
	ErrInsufficientHistory = errors.New("insufficient price history")
)

// PrepareSeries validates raw records and returns them as an immutable,
// strictly time-ordered PriceSeries.
//
// Records are stable-sorted by time. When several records share a timestamp
// the one supplied last wins. Records with a NaN, infinite or negative close
// cannot be used by any indicator and are dropped.
func PrepareSeries(symbol string, raw []model.PricePoint) (*model.PriceSeries, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyData
	}

	usable := make([]model.PricePoint, 0, len(raw))
	for _, p := range raw {
		if math.IsNaN(p.Close) || math.IsInf(p.Close, 0) || p.Close < 0 {
			continue
		}
		usable = append(usable, p)
	}
	if len(usable) == 0 {
		return nil, ErrInsufficientHistory
	}

	sort.SliceStable(usable, func(i, j int) bool { return usable[i].Time.Before(usable[j].Time) })

	// Equal timestamps are adjacent and still in input order, so keeping the
	// last of each run keeps the last-supplied record.
	points := make([]model.PricePoint, 0, len(usable))
	for i, p := range usable {
		if i+1 < len(usable) && usable[i+1].Time.Equal(p.Time) {
			continue
		}
		points = append(points, p)
	}

	return model.NewPriceSeries(symbol, points), nil
}
