package scheduler

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"TickerSignal/internal/model"
	"TickerSignal/internal/notifier"
	"TickerSignal/internal/recorder"

	"github.com/robfig/cron/v3"
)

// Analyzer produces an analysis for one symbol.
type Analyzer interface {
	Analyze(ctx context.Context, symbol string) (*model.Analysis, error)
}

// Notifier delivers rendered reports.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

const sendRetries = 3

// Scheduler manages the watchlist cron task and chat commands.
type Scheduler struct {
	Cron     *cron.Cron
	Analyzer Analyzer
	Notifier Notifier // nil disables delivery; reports are logged instead
	Recorder recorder.Recorder
	Symbols  []string
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler. A nil recorder records nothing.
func NewScheduler(ctx context.Context, an Analyzer, n Notifier, rec recorder.Recorder, symbols []string) *Scheduler {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Analyzer: an,
		Notifier: n,
		Recorder: rec,
		Symbols:  symbols,
		Ctx:      ctx,
	}
}

// RegisterAll registers the daily watchlist task.
func (s *Scheduler) RegisterAll(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.watchlistTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the watchlist task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.watchlistTask()
}

// watchlistTask analyzes each symbol in order. One failing symbol does not
// stop the rest.
func (s *Scheduler) watchlistTask() {
	log.Printf("[INFO] running watchlist task for %d symbols", len(s.Symbols))
	for _, symbol := range s.Symbols {
		if s.Ctx.Err() != nil {
			log.Println("[WARN] watchlist task cancelled")
			return
		}
		report, err := s.analyze(symbol)
		if err != nil {
			log.Printf("[ERROR] analyze %s: %v", symbol, err)
			s.trySend(fmt.Sprintf("❌ Analysis failed for %s: %v", symbol, err))
			continue
		}
		s.trySend(report)
	}
}

// analyze runs one symbol end to end and records the decision.
func (s *Scheduler) analyze(symbol string) (string, error) {
	a, err := s.Analyzer.Analyze(s.Ctx, symbol)
	if err != nil {
		return "", err
	}
	log.Printf("[INFO] %s: %s (%s)", a.Symbol, a.Decision.Label, a.Decision.Reason)

	if err := s.Recorder.RecordAnalysis(a); err != nil {
		log.Printf("[ERROR] record analysis %s: %v", symbol, err)
	}
	return notifier.FormatReport(a), nil
}

const helpText = "Available commands:\n" +
	"• /analyze SYMBOL\n" +
	"• /history SYMBOL [N]\n" +
	"• /watchlist\n" +
	"• /run"

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	// Strip "@BotName" from group-chat commands.
	name, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")
	args := fields[1:]

	switch name {
	case "/analyze":
		if len(args) == 0 {
			return "Usage: /analyze SYMBOL"
		}
		symbol := strings.ToUpper(args[0])
		report, err := s.analyze(symbol)
		if err != nil {
			log.Printf("[ERROR] analyze %s: %v", symbol, err)
			return fmt.Sprintf("❌ Analysis failed for %s: %v", symbol, err)
		}
		return report
	case "/history":
		if len(args) == 0 {
			return "Usage: /history SYMBOL [N]"
		}
		symbol := strings.ToUpper(args[0])
		limit := 0
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n <= 0 {
				return "Usage: /history SYMBOL [N]"
			}
			limit = n
		}
		records, err := s.Recorder.History(symbol, limit)
		if err != nil {
			log.Printf("[ERROR] history %s: %v", symbol, err)
			return fmt.Sprintf("❌ History unavailable for %s", symbol)
		}
		return notifier.FormatHistory(symbol, records)
	case "/watchlist":
		return notifier.FormatWatchlist(s.Symbols)
	case "/run":
		s.watchlistTask()
		return ""
	default:
		return helpText
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		log.Printf("[INFO] notification (no channel configured):\n%s", notifier.PlainText(text))
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, sendRetries); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
