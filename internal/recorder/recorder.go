package recorder

import "TickerSignal/internal/model"

// Recorder persists the decision audit log.
type Recorder interface {
	RecordAnalysis(a *model.Analysis) error
	// History returns up to limit decisions for symbol, newest first.
	History(symbol string, limit int) ([]model.DecisionRecord, error)
	Close() error
}
