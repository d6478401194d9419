package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/emberduel/duel-server-go/internal/battle"
	"github.com/emberduel/duel-server-go/internal/catalog"
	"github.com/emberduel/duel-server-go/internal/config"
	"github.com/emberduel/duel-server-go/internal/server"
	"github.com/emberduel/duel-server-go/internal/session"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting ember duel server",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	cards, err := catalog.Load()
	if err != nil {
		logger.Fatal("failed to load card catalog", zap.Error(err))
	}
	logger.Info("card catalog loaded", zap.Int("cards", cards.Size()))

	var engine *battle.Engine
	if cfg.Game.Seed != 0 {
		engine = battle.NewEngineWithSeed(cards, logger, cfg.Game.Seed)
	} else {
		engine = battle.NewEngine(cards, logger)
	}
	engine.SetRules(rulesFromConfig(cfg.Game))

	sessionMgr := session.NewManager(engine, logger)
	logger.Info("session manager initialized")

	hub := server.NewHub(sessionMgr, logger)
	go hub.Run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)

	httpServer := &http.Server{
		Addr:    cfg.Server.WebSocket.Address,
		Handler: mux,
	}

	go func() {
		logger.Info("starting websocket server", zap.String("address", cfg.Server.WebSocket.Address))
		if serveErr := httpServer.ListenAndServe(); serveErr != nil && serveErr != http.ErrServerClosed {
			logger.Error("websocket server error", zap.Error(serveErr))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	if err := httpServer.Close(); err != nil {
		logger.Warn("closing websocket server", zap.Error(err))
	}
	logger.Info("ember duel server stopped")
}

// rulesFromConfig overlays configured game knobs on the default ruleset.
func rulesFromConfig(cfg config.GameConfig) battle.Rules {
	rules := battle.DefaultRules()
	if cfg.StartingHP > 0 {
		rules.StartingHP = cfg.StartingHP
	}
	if cfg.StartingMana > 0 {
		rules.StartingMana = cfg.StartingMana
	}
	if cfg.ManaCap > 0 {
		rules.ManaCap = cfg.ManaCap
	}
	if cfg.HandLimit > 0 {
		rules.HandLimit = cfg.HandLimit
	}
	if cfg.FieldLimit > 0 {
		rules.FieldLimit = cfg.FieldLimit
	}
	if cfg.OpeningHand > 0 {
		rules.OpeningHand = cfg.OpeningHand
	}
	if cfg.DeckMin > 0 {
		rules.DeckMin = cfg.DeckMin
	}
	if cfg.DeckMax > 0 {
		rules.DeckMax = cfg.DeckMax
	}
	if cfg.MaxCopies > 0 {
		rules.MaxCopies = cfg.MaxCopies
	}
	return rules
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
