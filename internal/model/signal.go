package model

import "time"

// Label is the discrete trading signal.
type Label string

const (
	LabelBuy              Label = "BUY"
	LabelSell             Label = "SELL"
	LabelHold             Label = "HOLD"
	LabelInsufficientData Label = "INSUFFICIENT_DATA"
)

// Factor is an informational reading attached to a decision. It never
// changes the label.
type Factor struct {
	Name       string   `json:"name"`
	Value      *float64 `json:"value"`
	Commentary string   `json:"commentary"`
}

// Decision is the output of the decision policy for the last bar.
type Decision struct {
	Label     Label     `json:"label"`
	Reason    string    `json:"reason"`
	RSI       *float64  `json:"rsi"`
	SMA       *float64  `json:"sma"`
	SMAWindow int       `json:"sma_window"`
	Time      time.Time `json:"time"`
	Close     float64   `json:"close"`
	Factors   []Factor  `json:"factors,omitempty"`
}

// Analysis is the structured result handed to presentation and storage.
type Analysis struct {
	RunID      string         `json:"run_id,omitempty"`
	Symbol     string         `json:"symbol"`
	Source     string         `json:"source,omitempty"`
	AnalyzedAt time.Time      `json:"analyzed_at"`
	Points     int            `json:"points"`
	Decision   Decision       `json:"decision"`
	Latest     IndicatorRow   `json:"latest"`
	Tail       []IndicatorRow `json:"tail,omitempty"`
	Range      PriceRange     `json:"range"`
}
