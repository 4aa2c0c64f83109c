package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"TickerSignal/internal/api"
	"TickerSignal/internal/notifier"
	"TickerSignal/internal/scheduler"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the daily watchlist job and the Telegram bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log.Println("[INFO] TickerSignal starting...")

			a := newApp(cfg)
			defer a.Close()

			// Context for graceful shutdown
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			var sn scheduler.Notifier
			var tn *notifier.TelegramNotifier
			if cfg.TelegramEnabled() {
				tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
				sn = tn
			} else {
				log.Println("[WARN] telegram not configured, reports will only be logged")
			}

			sched := scheduler.NewScheduler(ctx, a.collector, sn, a.recorder, cfg.DataSource.Symbols)
			if err := sched.RegisterAll(cfg.Schedule.DailyCron); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			if tn != nil {
				go tn.StartPolling(ctx, sched.HandleCommand)
				log.Println("[INFO] Telegram polling started")
			}

			// Optional: run immediately on start
			if os.Getenv("RUN_ON_START") == "true" {
				log.Println("[INFO] RUN_ON_START enabled, executing watchlist task now")
				go sched.RunNow()
			}

			srv := &http.Server{
				Addr:              cfg.HTTP.Addr,
				Handler:           api.NewRouter(api.NewHandler(a.collector, a.recorder)),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				log.Printf("[INFO] HTTP API listening on %s", cfg.HTTP.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			log.Println("[INFO] TickerSignal is running. Press Ctrl+C to stop.")

			// Wait for shutdown signal
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			select {
			case <-sigCh:
				log.Println("[INFO] shutdown signal received, stopping...")
			case err := <-errCh:
				log.Printf("[ERROR] HTTP server: %v", err)
			}

			cancel()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("[WARN] HTTP shutdown: %v", err)
			}
			log.Println("[INFO] TickerSignal stopped")
			return nil
		},
	}
}
