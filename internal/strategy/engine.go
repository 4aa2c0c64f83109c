package strategy

import "TickerSignal/internal/model"

// RSI decision boundaries. Both are exclusive: an RSI of exactly 30 or 70 holds.
const (
	OversoldRSI   = 30.0
	OverboughtRSI = 70.0
)

// DefaultSMAWindow is the moving average that must be defined before deciding.
const DefaultSMAWindow = 20

const (
	reasonBuy          = "Stock is oversold, potential upside"
	reasonSell         = "Stock is overbought, potential downside"
	reasonHold         = "Stock is in a neutral range"
	reasonInsufficient = "Not enough data for decision"
)

// ValidSMAWindow reports whether window names one of the computed moving averages.
func ValidSMAWindow(window int) bool {
	return window == 20 || window == 50 || window == 200
}

// Decide maps the last row of the frame to a trading decision.
// smaWindow selects SMA20, SMA50 or SMA200; zero or any other window means
// DefaultSMAWindow.
func Decide(frame *model.IndicatorFrame, smaWindow int) model.Decision {
	if !ValidSMAWindow(smaWindow) {
		smaWindow = DefaultSMAWindow
	}
	if frame.Len() == 0 {
		return model.Decision{Label: model.LabelInsufficientData, Reason: reasonInsufficient, SMAWindow: smaWindow}
	}

	last := frame.Last()
	d := model.Decision{
		RSI:       last.RSI14,
		SMA:       last.SMA(smaWindow),
		SMAWindow: smaWindow,
		Time:      last.Time,
		Close:     last.Close,
		Factors:   Assess(last),
	}

	switch {
	case d.RSI == nil || d.SMA == nil:
		d.Label, d.Reason = model.LabelInsufficientData, reasonInsufficient
	case *d.RSI < OversoldRSI:
		d.Label, d.Reason = model.LabelBuy, reasonBuy
	case *d.RSI > OverboughtRSI:
		d.Label, d.Reason = model.LabelSell, reasonSell
	default:
		d.Label, d.Reason = model.LabelHold, reasonHold
	}
	return d
}
