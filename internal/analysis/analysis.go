// Package analysis runs the prepare -> compute -> decide pipeline for one symbol.
package analysis

import (
	"errors"
	"fmt"

	"TickerSignal/internal/calculator"
	"TickerSignal/internal/model"
	"TickerSignal/internal/strategy"
)

// DefaultTailRows matches the number of rows a report shows by default.
const DefaultTailRows = 5

// ErrInvalidOptions is returned for an unsupported decision SMA window.
var ErrInvalidOptions = errors.New("invalid analysis options")

// Options tunes a single run.
type Options struct {
	SMAWindow int // 20, 50 or 200; 0 means strategy.DefaultSMAWindow
	TailRows  int // rows of the frame to return; 0 means DefaultTailRows, negative means none
}

func (o Options) withDefaults() (Options, error) {
	if o.SMAWindow == 0 {
		o.SMAWindow = strategy.DefaultSMAWindow
	}
	if !strategy.ValidSMAWindow(o.SMAWindow) {
		return o, fmt.Errorf("%w: sma window %d", ErrInvalidOptions, o.SMAWindow)
	}
	if o.TailRows == 0 {
		o.TailRows = DefaultTailRows
	}
	return o, nil
}

// Run analyzes raw price records for symbol. It is deterministic: RunID,
// Source and AnalyzedAt are left for the caller to fill in.
func Run(symbol string, raw []model.PricePoint, opts Options) (*model.Analysis, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	series, err := calculator.PrepareSeries(symbol, raw)
	if err != nil {
		return nil, fmt.Errorf("prepare %s: %w", symbol, err)
	}

	frame, err := calculator.Compute(series)
	if err != nil {
		return nil, fmt.Errorf("compute %s: %w", symbol, err)
	}

	decision := strategy.Decide(frame, opts.SMAWindow)

	a := &model.Analysis{
		Symbol:   symbol,
		Points:   series.Len(),
		Decision: decision,
		Latest:   frame.Last(),
		Tail:     frame.Tail(opts.TailRows),
	}

	// A non-empty series always has a range; positions only fail on high < low.
	if high, low, err := calculator.CalculateRange(series, 0); err == nil {
		a.Range.High, a.Range.Low = high, low
		if pos, err := calculator.CalculatePosition(series.Last().Close, high, low); err == nil {
			a.Range.Position = pos
		}
	}

	return a, nil
}
