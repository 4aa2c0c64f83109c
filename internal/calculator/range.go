package calculator

import (
	"errors"
	"math"

	"TickerSignal/internal/model"
)

// CalculateRange scans the most recent `lookback` points and returns the
// highest high and lowest low. A lookback <= 0 scans the whole series.
// Bars without a high/low (zero) fall back to their close.
func CalculateRange(series *model.PriceSeries, lookback int) (high, low float64, err error) {
	n := series.Len()
	if n == 0 {
		return 0, 0, errors.New("no price points provided")
	}
	start := 0
	if lookback > 0 && n > lookback {
		start = n - lookback
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < n; i++ {
		p := series.At(i)
		h, l := p.High, p.Low
		if h == 0 {
			h = p.Close
		}
		if l == 0 {
			l = p.Close
		}
		if h > high {
			high = h
		}
		if l < low {
			low = l
		}
	}
	return high, low, nil
}

// CalculatePosition returns where the current price sits within [low, high] (0.0~1.0).
func CalculatePosition(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}
