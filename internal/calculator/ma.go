package calculator

import (
	"errors"

	"TickerSignal/internal/model"
)

// CalculateSMA computes the simple moving average of the last `period` prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// SMASeries returns the rolling simple moving average aligned with values.
// Positions before window-1 are nil. Every window is summed from scratch so the
// result is exactly the arithmetic mean of that window.
func SMASeries(values []float64, window int) []*float64 {
	out := make([]*float64, len(values))
	if window <= 0 {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		if ma, err := CalculateSMA(values[:i+1], window); err == nil {
			out[i] = model.Float(ma)
		}
	}
	return out
}

// EMASeries returns the exponential moving average of values with the given
// span, seeded by values[0] and updated as
// ema[i] = values[i]*k + ema[i-1]*(1-k), k = 2/(span+1).
func EMASeries(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 || span <= 0 {
		return out
	}
	k := 2.0 / (float64(span) + 1.0)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = values[i]*k + out[i-1]*(1-k)
	}
	return out
}
