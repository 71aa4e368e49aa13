package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coinscope/internal/infrastructure/coingecko"
	"coinscope/internal/infrastructure/logger"
	"coinscope/internal/infrastructure/storage"
	"coinscope/internal/usecase"
	"coinscope/internal/web"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Config struct {
	CoinGecko struct {
		BaseURL      string `yaml:"base_url"`
		APIKey       string `yaml:"api_key"`
		MockFallback bool   `yaml:"mock_fallback"`
	} `yaml:"coingecko"`
	Storage struct {
		Path string `yaml:"path"`
	} `yaml:"storage"`
	Stream struct {
		IntervalMs int `yaml:"interval_ms"`
	} `yaml:"stream"`
	Logging struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"logging"`
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
}

func loadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func main() {
	// 1. Load Config (.env first so the key can live outside the yaml)
	_ = godotenv.Load()

	cfg, err := loadConfig("config/config.yaml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if key := os.Getenv("COINGECKO_API_KEY"); key != "" {
		cfg.CoinGecko.APIKey = key
	}

	// 2. Init Logger (file sink when configured, stderr otherwise)
	var log *zap.Logger
	if cfg.Logging.File != "" {
		log, err = logger.NewFileLogger(cfg.Logging.File, cfg.Logging.Level)
	} else {
		log, err = logger.NewLogger(cfg.Logging.Level)
	}
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// 3. Init Storage
	dbPath := cfg.Storage.Path
	if dbPath == "" {
		dbPath = "coinscope.db"
	}
	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		log.Fatal("Failed to init sqlite", zap.Error(err))
	}
	defer store.Close()

	// 4. Init CoinGecko client
	client := coingecko.NewClient(cfg.CoinGecko.APIKey, cfg.CoinGecko.BaseURL, cfg.CoinGecko.MockFallback, log)
	if cfg.CoinGecko.MockFallback {
		log.Warn("Mock chart fallback is enabled; chart failures will be masked")
	}

	// 5. Init Services
	marketService := usecase.NewMarketService(client, log)
	watchlistService := usecase.NewWatchlistService(store, log)

	// 6. Init Web Server
	port := cfg.Server.Port
	if port == 0 {
		port = 8080 // Default
	}
	interval := time.Duration(cfg.Stream.IntervalMs) * time.Millisecond

	server := web.NewServer(port, marketService, watchlistService, interval, log)

	// 7. Start Server
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// 8. Wait for Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	server.Shutdown(ctx)
}
