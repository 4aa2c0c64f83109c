package calculator

import "TickerSignal/internal/model"

// RSISeries computes the relative strength index over `period` price changes.
//
// Average gain and loss are simple rolling means of the last `period` deltas,
// so the first value appears at index `period`. With no losses and some gains
// the RSI is 100; with neither (a flat stretch) it is undefined and left nil.
func RSISeries(closes []float64, period int) []*float64 {
	out := make([]*float64, len(closes))
	if period <= 0 || len(closes) <= period {
		return out
	}

	// gains[i-1] and losses[i-1] belong to the change closes[i-1] -> closes[i].
	gains := make([]float64, len(closes)-1)
	losses := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i-1] = change
		} else if change < 0 {
			losses[i-1] = -change
		}
	}

	for i := period; i < len(closes); i++ {
		avgGain, err := CalculateSMA(gains[:i], period)
		if err != nil {
			continue
		}
		avgLoss, err := CalculateSMA(losses[:i], period)
		if err != nil {
			continue
		}
		switch {
		case avgLoss == 0 && avgGain == 0:
			// flat: undefined
		case avgLoss == 0:
			out[i] = model.Float(100)
		default:
			rs := avgGain / avgLoss
			out[i] = model.Float(100.0 - 100.0/(1.0+rs))
		}
	}
	return out
}
