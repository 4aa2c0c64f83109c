package strategy

import (
	"testing"

	"TickerSignal/internal/model"
)

func findFactor(t *testing.T, factors []model.Factor, name string) model.Factor {
	t.Helper()
	for _, f := range factors {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("factor %q not found", name)
	return model.Factor{}
}

func TestAssess_TrendBullBear(t *testing.T) {
	bull := model.IndicatorRow{
		Close:  110,
		SMA20:  model.Float(105),
		SMA50:  model.Float(100),
		SMA200: model.Float(90),
	}
	if f := findFactor(t, Assess(bull), "Trend"); f.Commentary != "bullish alignment, SMA50 above SMA200" {
		t.Errorf("unexpected bull commentary: %q", f.Commentary)
	}

	bear := model.IndicatorRow{
		Close:  80,
		SMA20:  model.Float(85),
		SMA50:  model.Float(90),
		SMA200: model.Float(100),
	}
	if f := findFactor(t, Assess(bear), "Trend"); f.Commentary != "bearish alignment, SMA50 below SMA200" {
		t.Errorf("unexpected bear commentary: %q", f.Commentary)
	}

	mixed := model.IndicatorRow{Close: 100, SMA20: model.Float(105), SMA50: model.Float(95)}
	if f := findFactor(t, Assess(mixed), "Trend"); f.Commentary != "range-bound" {
		t.Errorf("unexpected mixed commentary: %q", f.Commentary)
	}
}

func TestAssess_TrendWarmUp(t *testing.T) {
	if f := findFactor(t, Assess(model.IndicatorRow{Close: 10}), "Trend"); f.Commentary != "warming up" {
		t.Errorf("expected warming up, got %q", f.Commentary)
	}
	row := model.IndicatorRow{Close: 10, SMA20: model.Float(12)}
	if f := findFactor(t, Assess(row), "Trend"); f.Commentary != "close below SMA20" {
		t.Errorf("expected close below SMA20, got %q", f.Commentary)
	}
}

func TestAssess_MACD(t *testing.T) {
	tests := []struct {
		macd, signal float64
		want         string
	}{
		{1.2, 0.8, "bullish, above signal line"},
		{-0.5, 0.1, "bearish, below signal line"},
		{0.3, 0.3, "flat, on signal line"},
	}
	for _, tt := range tests {
		row := model.IndicatorRow{MACD: model.Float(tt.macd), SignalLine: model.Float(tt.signal)}
		if f := findFactor(t, Assess(row), "MACD"); f.Commentary != tt.want {
			t.Errorf("macd %.1f / signal %.1f: expected %q, got %q", tt.macd, tt.signal, tt.want, f.Commentary)
		}
	}
}

func TestAssess_RSIZone(t *testing.T) {
	tests := []struct {
		rsi  *float64
		want string
	}{
		{nil, "warming up"},
		{model.Float(25), "oversold"},
		{model.Float(30), "neutral"},
		{model.Float(71), "overbought"},
	}
	for _, tt := range tests {
		if f := findFactor(t, Assess(model.IndicatorRow{RSI14: tt.rsi}), "RSI(14)"); f.Commentary != tt.want {
			t.Errorf("expected %q, got %q", tt.want, f.Commentary)
		}
	}
}
