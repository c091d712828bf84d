package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Lingfeng158/HexMcts/config"
	"github.com/Lingfeng158/HexMcts/engine"
	"github.com/Lingfeng158/HexMcts/searcher"
)

func main() {
	configPath := flag.String("config", "", "optional config file")
	flag.Parse()

	cfg := config.New()
	if err := cfg.Load(*configPath); err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}

	// stdout carries the wire protocol; all logging goes to stderr.
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	switch cfg.LogLevel() {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = logger

	options := []searcher.Option{
		searcher.WithBudget(cfg.Budget()),
		searcher.WithExploration(cfg.Exploration()),
	}
	if cfg.Metrics() {
		options = append(options, searcher.WithMetrics())
	}
	mcts := searcher.NewMCTS(options...)

	session := engine.NewSession(mcts, os.Stdin, os.Stdout, cfg.FirstTurnMultiplier())
	if err := session.Run(); err != nil {
		log.Fatal().Err(err).Msg("session ended")
	}
	log.Info().Msg("input closed, shutting down")
}
