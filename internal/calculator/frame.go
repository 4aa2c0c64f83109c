package calculator

import "TickerSignal/internal/model"

// Indicator windows.
const (
	SMAShortWindow  = 20
	SMAMediumWindow = 50
	SMALongWindow   = 200
	RSIPeriod       = 14
	EMAFastSpan     = 12
	EMASlowSpan     = 26
	SignalSpan      = 9
)

// Compute derives the full IndicatorFrame for a prepared series. Indicators
// without enough history yet are nil; only an empty series is an error.
func Compute(series *model.PriceSeries) (*model.IndicatorFrame, error) {
	if series.Len() == 0 {
		return nil, ErrInsufficientHistory
	}

	closes := series.Closes()
	sma20 := SMASeries(closes, SMAShortWindow)
	sma50 := SMASeries(closes, SMAMediumWindow)
	sma200 := SMASeries(closes, SMALongWindow)
	rsi := RSISeries(closes, RSIPeriod)
	ema12 := EMASeries(closes, EMAFastSpan)
	ema26 := EMASeries(closes, EMASlowSpan)
	macd, signal := MACDSeries(ema12, ema26, SignalSpan)

	frame := &model.IndicatorFrame{
		Symbol: series.Symbol(),
		Rows:   make([]model.IndicatorRow, len(closes)),
	}
	for i := range closes {
		p := series.At(i)
		frame.Rows[i] = model.IndicatorRow{
			Time:       p.Time,
			Close:      p.Close,
			SMA20:      sma20[i],
			SMA50:      sma50[i],
			SMA200:     sma200[i],
			RSI14:      rsi[i],
			EMA12:      model.Float(ema12[i]),
			EMA26:      model.Float(ema26[i]),
			MACD:       model.Float(macd[i]),
			SignalLine: model.Float(signal[i]),
		}
	}
	return frame, nil
}
