package model

import "time"

// IndicatorRow holds the indicators computed for one PricePoint.
// A nil field means the indicator is still in its warm-up period.
type IndicatorRow struct {
	Time       time.Time `json:"time"`
	Close      float64   `json:"close"`
	SMA20      *float64  `json:"sma20"`
	SMA50      *float64  `json:"sma50"`
	SMA200     *float64  `json:"sma200"`
	RSI14      *float64  `json:"rsi14"`
	EMA12      *float64  `json:"ema12"`
	EMA26      *float64  `json:"ema26"`
	MACD       *float64  `json:"macd"`
	SignalLine *float64  `json:"signal_line"`
}

// SMA returns the moving average for the given window (20, 50 or 200).
// Any other window yields nil.
func (r IndicatorRow) SMA(window int) *float64 {
	switch window {
	case 20:
		return r.SMA20
	case 50:
		return r.SMA50
	case 200:
		return r.SMA200
	default:
		return nil
	}
}

// IndicatorFrame is aligned index-for-index with the PriceSeries it came from.
type IndicatorFrame struct {
	Symbol string         `json:"symbol"`
	Rows   []IndicatorRow `json:"rows"`
}

func (f *IndicatorFrame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Rows)
}

// Last returns the most recent row. The frame must not be empty.
func (f *IndicatorFrame) Last() IndicatorRow {
	return f.Rows[len(f.Rows)-1]
}

// Tail returns a copy of the last n rows (all rows when n exceeds the length).
func (f *IndicatorFrame) Tail(n int) []IndicatorRow {
	if n <= 0 || f.Len() == 0 {
		return nil
	}
	start := len(f.Rows) - n
	if start < 0 {
		start = 0
	}
	out := make([]IndicatorRow, len(f.Rows)-start)
	copy(out, f.Rows[start:])
	return out
}

// Float returns a pointer to v, for filling nullable indicator fields.
func Float(v float64) *float64 { return &v }
