package collector

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"TickerSignal/internal/analysis"
	"TickerSignal/internal/calculator"
	"TickerSignal/internal/model"
)

// DefaultLookback is one trading year, enough to warm up SMA200.
const DefaultLookback = 252

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price     float64
	DailyData []model.PricePoint
	Err       error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, _ string, bars int) ([]model.PricePoint, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.DailyData != nil {
		return m.DailyData, nil
	}
	return generateMockBars(m.Price, bars, time.Now().UTC().Truncate(24*time.Hour)), nil
}

// generateMockBars produces `count` daily bars ending the day before `end`,
// drifting and oscillating around basePrice.
func generateMockBars(basePrice float64, count int, end time.Time) []model.PricePoint {
	bars := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001 + 0.03*math.Sin(float64(i)/6))
		bars[i] = model.PricePoint{
			Time:   end.AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector fetches price history and runs the analysis pipeline on it.
type Collector struct {
	Fetcher  Fetcher
	Lookback int
	Options  analysis.Options

	now   func() time.Time
	newID func() string
}

// NewCollector creates a new Collector. A lookback <= 0 uses DefaultLookback.
func NewCollector(fetcher Fetcher, lookback int, opts analysis.Options) *Collector {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	return &Collector{
		Fetcher:  fetcher,
		Lookback: lookback,
		Options:  opts,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Analyze fetches the symbol's daily bars and analyzes them.
func (c *Collector) Analyze(ctx context.Context, symbol string) (*model.Analysis, error) {
	points, err := c.Fetcher.FetchDailyBars(ctx, symbol, c.Lookback)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars for %s: %w", symbol, err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("fetch daily bars for %s: %w", symbol, calculator.ErrEmptyData)
	}
	if len(points) < calculator.SMALongWindow {
		log.Printf("[WARN] %s: only %d bars from %s, SMA%d will stay empty",
			symbol, len(points), c.Fetcher.Name(), calculator.SMALongWindow)
	}

	a, err := analysis.Run(symbol, points, c.Options)
	if err != nil {
		if errors.Is(err, analysis.ErrInvalidOptions) {
			return nil, err
		}
		return nil, fmt.Errorf("analyze %s: %w", symbol, err)
	}
	a.RunID = c.newID()
	a.Source = c.Fetcher.Name()
	a.AnalyzedAt = c.now()
	return a, nil
}

// AnalyzeSeries analyzes caller-supplied records without fetching. Zero
// fields in opts fall back to the collector's options.
func (c *Collector) AnalyzeSeries(symbol string, points []model.PricePoint, opts analysis.Options) (*model.Analysis, error) {
	if opts.SMAWindow == 0 {
		opts.SMAWindow = c.Options.SMAWindow
	}
	if opts.TailRows == 0 {
		opts.TailRows = c.Options.TailRows
	}
	a, err := analysis.Run(symbol, points, opts)
	if err != nil {
		return nil, err
	}
	a.RunID = c.newID()
	a.Source = "request"
	a.AnalyzedAt = c.now()
	return a, nil
}
