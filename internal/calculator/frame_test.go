package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TickerSignal/internal/model"
)

// wave produces n closes oscillating around 100 with a slow drift.
func wave(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 + 8*math.Sin(float64(i)/5) + float64(i)*0.05
	}
	return closes
}

func mustSeries(t *testing.T, closes []float64) *model.PriceSeries {
	t.Helper()
	series, err := PrepareSeries("TEST", makePoints(closes...))
	require.NoError(t, err)
	return series
}

func TestCompute_EmptySeries(t *testing.T) {
	_, err := Compute(nil)
	assert.ErrorIs(t, err, ErrInsufficientHistory)

	_, err = Compute(model.NewPriceSeries("X", nil))
	assert.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestCompute_AlignedWithSeries(t *testing.T) {
	for _, n := range []int{1, 5, 19, 20, 50, 210} {
		series := mustSeries(t, wave(n))
		frame, err := Compute(series)
		require.NoError(t, err)
		require.Equal(t, series.Len(), frame.Len(), "n=%d", n)
		for i, row := range frame.Rows {
			assert.True(t, row.Time.Equal(series.At(i).Time))
			assert.Equal(t, series.At(i).Close, row.Close)
		}
	}
}

func TestCompute_WarmUpBoundaries(t *testing.T) {
	frame, err := Compute(mustSeries(t, wave(210)))
	require.NoError(t, err)

	assert.Nil(t, frame.Rows[18].SMA20)
	assert.NotNil(t, frame.Rows[19].SMA20)
	assert.Nil(t, frame.Rows[48].SMA50)
	assert.NotNil(t, frame.Rows[49].SMA50)
	assert.Nil(t, frame.Rows[198].SMA200)
	assert.NotNil(t, frame.Rows[199].SMA200)
	assert.Nil(t, frame.Rows[13].RSI14)
	assert.NotNil(t, frame.Rows[14].RSI14)

	first := frame.Rows[0]
	require.NotNil(t, first.EMA12)
	require.NotNil(t, first.EMA26)
	assert.Equal(t, first.Close, *first.EMA12)
	assert.Equal(t, first.Close, *first.EMA26)
	assert.Equal(t, 0.0, *first.MACD)
	assert.Equal(t, 0.0, *first.SignalLine)
}

func TestCompute_MACDIsEMADifference(t *testing.T) {
	frame, err := Compute(mustSeries(t, wave(120)))
	require.NoError(t, err)
	for i, row := range frame.Rows {
		require.NotNil(t, row.EMA12)
		require.NotNil(t, row.EMA26)
		require.NotNil(t, row.MACD)
		assert.Equal(t, *row.EMA12-*row.EMA26, *row.MACD, "index %d", i)
	}
}

func TestCompute_SignalLineIsEMAOfMACD(t *testing.T) {
	frame, err := Compute(mustSeries(t, wave(60)))
	require.NoError(t, err)

	macd := make([]float64, frame.Len())
	for i, row := range frame.Rows {
		macd[i] = *row.MACD
	}
	want := EMASeries(macd, SignalSpan)
	for i, row := range frame.Rows {
		assert.Equal(t, want[i], *row.SignalLine, "index %d", i)
	}
}

func TestCompute_RSIWithinBounds(t *testing.T) {
	frame, err := Compute(mustSeries(t, wave(300)))
	require.NoError(t, err)
	for i, row := range frame.Rows {
		if row.RSI14 == nil {
			continue
		}
		assert.True(t, *row.RSI14 >= 0 && *row.RSI14 <= 100, "index %d: %f", i, *row.RSI14)
	}
}

func TestCompute_Idempotent(t *testing.T) {
	series := mustSeries(t, wave(230))
	a, err := Compute(series)
	require.NoError(t, err)
	b, err := Compute(series)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCompute_StrictlyIncreasing(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	frame, err := Compute(mustSeries(t, closes))
	require.NoError(t, err)

	last := frame.Last()
	require.NotNil(t, last.RSI14)
	require.NotNil(t, last.SMA20)
	assert.Equal(t, 100.0, *last.RSI14)
	assert.Equal(t, 109.5, *last.SMA20)
}
