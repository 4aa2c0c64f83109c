package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateSMA(t *testing.T) {
	ma, err := CalculateSMA([]float64{1, 2, 3, 4, 5}, 3)
	require.NoError(t, err)
	assert.Equal(t, 4.0, ma)

	_, err = CalculateSMA([]float64{1, 2}, 3)
	assert.Error(t, err)

	_, err = CalculateSMA([]float64{1, 2}, 0)
	assert.Error(t, err)
}

func TestSMASeries_WarmUpAndValues(t *testing.T) {
	got := SMASeries([]float64{1, 2, 3, 4, 5}, 3)
	require.Len(t, got, 5)
	assert.Nil(t, got[0])
	assert.Nil(t, got[1])
	require.NotNil(t, got[2])
	assert.Equal(t, 2.0, *got[2])
	assert.Equal(t, 3.0, *got[3])
	assert.Equal(t, 4.0, *got[4])
}

func TestSMASeries_EqualsArithmeticMean(t *testing.T) {
	closes := []float64{101.3, 99.8, 102.25, 100.1, 98.7, 103.9, 104.05, 102.6, 101.15, 105.4, 106.2, 104.8}
	const window = 5

	got := SMASeries(closes, window)
	for i := range closes {
		if i < window-1 {
			assert.Nil(t, got[i], "index %d", i)
			continue
		}
		sum := 0.0
		for j := i - window + 1; j <= i; j++ {
			sum += closes[j]
		}
		require.NotNil(t, got[i], "index %d", i)
		assert.Equal(t, sum/window, *got[i], "index %d", i)
	}
}

func TestSMASeries_WindowLongerThanSeries(t *testing.T) {
	got := SMASeries([]float64{1, 2, 3}, 20)
	require.Len(t, got, 3)
	for _, v := range got {
		assert.Nil(t, v)
	}
}

func TestEMASeries_SeedAndRecurrence(t *testing.T) {
	// span 3 -> k = 0.5
	got := EMASeries([]float64{1, 2, 3}, 3)
	assert.Equal(t, []float64{1, 1.5, 2.25}, got)
}

func TestEMASeries_Constant(t *testing.T) {
	got := EMASeries([]float64{7, 7, 7, 7}, 12)
	for _, v := range got {
		assert.InDelta(t, 7.0, v, 1e-12)
	}
}

func TestEMASeries_Empty(t *testing.T) {
	assert.Empty(t, EMASeries(nil, 12))
}

func TestMACDSeries(t *testing.T) {
	fast := []float64{10, 12, 14}
	slow := []float64{10, 11, 11}

	macd, signal := MACDSeries(fast, slow, 3)
	assert.Equal(t, []float64{0, 1, 3}, macd)
	// signal seeded by macd[0], k = 0.5
	assert.Equal(t, []float64{0, 0.5, 1.75}, signal)
}
