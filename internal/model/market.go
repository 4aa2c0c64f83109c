package model

import "time"

// PricePoint represents a single daily OHLCV observation.
type PricePoint struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceSeries is a strictly time-ordered run of PricePoints for one symbol.
// It is built by calculator.PrepareSeries and never modified afterwards.
type PriceSeries struct {
	symbol string
	points []PricePoint
}

// NewPriceSeries wraps points that are already sorted and de-duplicated.
// The slice is copied so later writes by the caller cannot leak in.
func NewPriceSeries(symbol string, points []PricePoint) *PriceSeries {
	cp := make([]PricePoint, len(points))
	copy(cp, points)
	return &PriceSeries{symbol: symbol, points: cp}
}

func (s *PriceSeries) Symbol() string { return s.symbol }

// Len returns the number of points; a nil series has length 0.
func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.points)
}

func (s *PriceSeries) At(i int) PricePoint { return s.points[i] }

func (s *PriceSeries) First() PricePoint { return s.points[0] }

func (s *PriceSeries) Last() PricePoint { return s.points[len(s.points)-1] }

// Points returns a copy of the underlying points.
func (s *PriceSeries) Points() []PricePoint {
	cp := make([]PricePoint, len(s.points))
	copy(cp, s.points)
	return cp
}

// Closes extracts the close prices in order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.points))
	for i, p := range s.points {
		closes[i] = p.Close
	}
	return closes
}

// PriceRange describes where the latest close sits within the series' high/low.
type PriceRange struct {
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Position float64 `json:"position"` // 0.0 ~ 1.0
}
