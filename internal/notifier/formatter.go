package notifier

import (
	"fmt"
	"html"
	"strings"

	"github.com/shopspring/decimal"

	"TickerSignal/internal/model"
)

var labelBadges = map[model.Label]string{
	model.LabelBuy:  "BUY 📈",
	model.LabelSell: "SELL 📉",
	model.LabelHold: "HOLD ⚖️",
}

// num renders a nullable indicator with two decimals, or "n/a" during warm-up.
func num(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return decimal.NewFromFloat(*v).StringFixed(2)
}

func price(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// FormatSummary renders the one-line verdict for an analysis.
func FormatSummary(a *model.Analysis) string {
	symbol := html.EscapeString(a.Symbol)
	badge, ok := labelBadges[a.Decision.Label]
	if !ok {
		return fmt.Sprintf("📌 Summary for %s: Not enough data for decision.", symbol)
	}
	return fmt.Sprintf("📌 Summary for %s: %s (%s)", symbol, badge, a.Decision.Reason)
}

// FormatReport renders the full Telegram report: header, recent rows,
// context factors, price range and the summary line.
func FormatReport(a *model.Analysis) string {
	var b strings.Builder

	window := a.Decision.SMAWindow
	b.WriteString(fmt.Sprintf("📊 <b>Stock Analysis Report for %s</b>\n", html.EscapeString(a.Symbol)))
	b.WriteString(fmt.Sprintf("Source: %s | Bars: %d", html.EscapeString(a.Source), a.Points))
	if !a.AnalyzedAt.IsZero() {
		b.WriteString(" | " + a.AnalyzedAt.Format("2006-01-02 15:04"))
	}
	b.WriteString("\n\n")

	if len(a.Tail) > 0 {
		b.WriteString("<pre>\n")
		b.WriteString(fmt.Sprintf("%-10s %9s %9s %7s %8s %8s\n",
			"Date", "Close", fmt.Sprintf("SMA%d", window), "RSI14", "MACD", "Signal"))
		for _, r := range a.Tail {
			b.WriteString(fmt.Sprintf("%-10s %9s %9s %7s %8s %8s\n",
				r.Time.Format("2006-01-02"), price(r.Close), num(r.SMA(window)),
				num(r.RSI14), num(r.MACD), num(r.SignalLine)))
		}
		b.WriteString("</pre>\n")
	}

	if len(a.Decision.Factors) > 0 {
		b.WriteString("🔎 <b>Context:</b>\n")
		for _, f := range a.Decision.Factors {
			b.WriteString(fmt.Sprintf("  • %s: %s (%s)\n", f.Name, num(f.Value), f.Commentary))
		}
	}

	if a.Range.High > 0 {
		b.WriteString(fmt.Sprintf("📏 Range: %s – %s, position %s%%\n",
			price(a.Range.Low), price(a.Range.High),
			decimal.NewFromFloat(a.Range.Position*100).StringFixed(1)))
	}

	b.WriteString(fmt.Sprintf("🎯 RSI14 %s | SMA%d %s | Close %s\n\n",
		num(a.Decision.RSI), window, num(a.Decision.SMA), price(a.Decision.Close)))
	b.WriteString(FormatSummary(a))
	return b.String()
}

// FormatHistory renders recorded decisions for a symbol, newest first.
func FormatHistory(symbol string, records []model.DecisionRecord) string {
	symbol = html.EscapeString(symbol)
	if len(records) == 0 {
		return fmt.Sprintf("🗂 No recorded decisions for %s.", symbol)
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🗂 <b>Decision history for %s</b>\n\n", symbol))
	for _, r := range records {
		b.WriteString(fmt.Sprintf("%s  %s  RSI14 %s  SMA%d %s  close %s\n",
			r.BarTime.Format("2006-01-02"), r.Label, num(r.RSI), r.SMAWindow, num(r.SMA), price(r.Close)))
	}
	return b.String()
}

// FormatWatchlist lists the symbols the scheduler analyzes.
func FormatWatchlist(symbols []string) string {
	if len(symbols) == 0 {
		return "👀 Watchlist is empty."
	}
	return "👀 <b>Watchlist:</b> " + html.EscapeString(strings.Join(symbols, ", "))
}

var tagStripper = strings.NewReplacer("<b>", "", "</b>", "", "<pre>\n", "", "</pre>\n", "", "<pre>", "", "</pre>", "")

// PlainText turns a Telegram HTML message into terminal text.
func PlainText(s string) string {
	return html.UnescapeString(tagStripper.Replace(s))
}
