package model

import "time"

// DecisionRecord is one row of the decision audit log. It keeps the label
// and the values that triggered it, not the indicator history.
type DecisionRecord struct {
	ID         int64     `json:"id"`
	RunID      string    `json:"run_id"`
	Symbol     string    `json:"symbol"`
	Source     string    `json:"source"`
	Label      Label     `json:"label"`
	Reason     string    `json:"reason"`
	RSI        *float64  `json:"rsi"`
	SMA        *float64  `json:"sma"`
	SMAWindow  int       `json:"sma_window"`
	Close      float64   `json:"close"`
	BarTime    time.Time `json:"bar_time"`
	AnalyzedAt time.Time `json:"analyzed_at"`
}

// NewDecisionRecord flattens an analysis into its audit row.
func NewDecisionRecord(a *Analysis) DecisionRecord {
	return DecisionRecord{
		RunID:      a.RunID,
		Symbol:     a.Symbol,
		Source:     a.Source,
		Label:      a.Decision.Label,
		Reason:     a.Decision.Reason,
		RSI:        a.Decision.RSI,
		SMA:        a.Decision.SMA,
		SMAWindow:  a.Decision.SMAWindow,
		Close:      a.Decision.Close,
		BarTime:    a.Decision.Time,
		AnalyzedAt: a.AnalyzedAt,
	}
}
