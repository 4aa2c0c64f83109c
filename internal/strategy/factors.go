package strategy

import (
	"fmt"

	"TickerSignal/internal/model"
)

// Assess returns the context readings shown next to a decision.
// They are informational and never change the label.
func Assess(row model.IndicatorRow) []model.Factor {
	return []model.Factor{
		assessRSIZone(row),
		assessTrend(row),
		assessMACD(row),
	}
}

// assessRSIZone names the RSI band, using the same boundaries as Decide.
func assessRSIZone(row model.IndicatorRow) model.Factor {
	f := model.Factor{Name: "RSI(14)", Value: row.RSI14}
	switch {
	case row.RSI14 == nil:
		f.Commentary = "warming up"
	case *row.RSI14 < OversoldRSI:
		f.Commentary = "oversold"
	case *row.RSI14 > OverboughtRSI:
		f.Commentary = "overbought"
	default:
		f.Commentary = "neutral"
	}
	return f
}

// assessTrend checks moving-average alignment.
// Bull alignment: close > SMA20 > SMA50 (> SMA200 when available).
// Bear alignment: close < SMA20 < SMA50 (< SMA200 when available).
func assessTrend(row model.IndicatorRow) model.Factor {
	f := model.Factor{Name: "Trend"}
	if row.SMA20 == nil || row.SMA50 == nil {
		if row.SMA20 != nil {
			f.Value = row.SMA20
			f.Commentary = fmt.Sprintf("close %s SMA20", compare(row.Close, *row.SMA20))
			return f
		}
		f.Commentary = "warming up"
		return f
	}

	c, s20, s50 := row.Close, *row.SMA20, *row.SMA50
	bullish := c > s20 && s20 > s50
	bearish := c < s20 && s20 < s50
	if row.SMA200 != nil {
		bullish = bullish && s50 > *row.SMA200
		bearish = bearish && s50 < *row.SMA200
	}

	f.Value = row.SMA50
	switch {
	case bullish:
		f.Commentary = "bullish alignment"
	case bearish:
		f.Commentary = "bearish alignment"
	default:
		f.Commentary = "range-bound"
	}
	if row.SMA200 != nil {
		f.Commentary += fmt.Sprintf(", SMA50 %s SMA200", compare(s50, *row.SMA200))
	}
	return f
}

// assessMACD compares the MACD line with its signal line.
func assessMACD(row model.IndicatorRow) model.Factor {
	f := model.Factor{Name: "MACD", Value: row.MACD}
	if row.MACD == nil || row.SignalLine == nil {
		f.Commentary = "warming up"
		return f
	}
	switch m, s := *row.MACD, *row.SignalLine; {
	case m > s:
		f.Commentary = "bullish, above signal line"
	case m < s:
		f.Commentary = "bearish, below signal line"
	default:
		f.Commentary = "flat, on signal line"
	}
	return f
}

func compare(a, b float64) string {
	switch {
	case a > b:
		return "above"
	case a < b:
		return "below"
	default:
		return "at"
	}
}
