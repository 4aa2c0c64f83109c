package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"TickerSignal/internal/analysis"
	"TickerSignal/internal/collector"
	"TickerSignal/internal/config"
	"TickerSignal/internal/recorder"
)

// app holds the wired components shared by the subcommands.
type app struct {
	cfg       *config.Config
	collector *collector.Collector
	recorder  recorder.Recorder
	redis     *redis.Client
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = "configs/config.yaml"
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			path = v
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newApp(cfg *config.Config) *app {
	a := &app{cfg: cfg}

	fetcher := newFetcher(cfg)
	if cfg.Cache.RedisAddr != "" {
		a.redis = newRedis(cfg)
		if a.redis != nil {
			fetcher = collector.NewCachingFetcher(a.redis, cfg.Cache.TTL, fetcher, "bars")
		}
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	a.collector = collector.NewCollector(fetcher, cfg.DataSource.LookbackBars, analysis.Options{
		SMAWindow: cfg.Analysis.DecisionSMA,
		TailRows:  cfg.Analysis.TailRows,
	})
	a.recorder = newRecorder(cfg)
	return a
}

func newFetcher(cfg *config.Config) collector.Fetcher {
	switch cfg.DataSource.Provider {
	case "rest":
		return collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	case "mock":
		return &collector.MockFetcher{Price: 100}
	default:
		return collector.NewYahooFetcher(cfg.Proxy)
	}
}

// newRedis connects to the cache; nil means run without it.
func newRedis(cfg *config.Config) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[WARN] redis unavailable at %s, caching disabled: %v", cfg.Cache.RedisAddr, err)
		_ = rdb.Close()
		return nil
	}
	log.Printf("[INFO] redis cache enabled: %s (ttl %v)", cfg.Cache.RedisAddr, cfg.Cache.TTL)
	return rdb
}

func newRecorder(cfg *config.Config) recorder.Recorder {
	path := cfg.RecorderPath()
	if path == "" {
		log.Println("[INFO] decision history disabled")
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(path)
	if err != nil {
		log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		return recorder.NewNoopRecorder()
	}
	return sr
}

func (a *app) Close() {
	if err := a.recorder.Close(); err != nil {
		log.Printf("[WARN] close recorder: %v", err)
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
}
