package calculator

// MACDSeries returns fast-slow element-wise and its signal line, an EMA of the
// MACD with span signalSpan seeded by the first MACD value.
func MACDSeries(fast, slow []float64, signalSpan int) (macd, signal []float64) {
	n := len(fast)
	if len(slow) < n {
		n = len(slow)
	}
	macd = make([]float64, n)
	for i := 0; i < n; i++ {
		macd[i] = fast[i] - slow[i]
	}
	return macd, EMASeries(macd, signalSpan)
}
