package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/glabrego/wikiscroll/internal/acquire"
	"github.com/glabrego/wikiscroll/internal/app"
	"github.com/glabrego/wikiscroll/internal/config"
	"github.com/glabrego/wikiscroll/internal/feedapi"
	"github.com/glabrego/wikiscroll/internal/likes"
	"github.com/glabrego/wikiscroll/internal/logging"
	"github.com/glabrego/wikiscroll/internal/server"
	"github.com/glabrego/wikiscroll/internal/tui"
	"github.com/glabrego/wikiscroll/internal/tui/actions"
	"github.com/glabrego/wikiscroll/internal/wikipedia"
)

func main() {
	command := "tui"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "--help", "-h", "help":
		PrintHelp()
		return
	case "serve", "tui":
	default:
		fmt.Println("Unknown command:", command)
		PrintHelp()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	if command == "serve" {
		serve(cfg)
		return
	}
	runTUI(cfg)
}

func serve(cfg config.Config) {
	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}

	svc, closeStore := newService(cfg, logger)
	defer closeStore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(cfg.Addr, svc, logger).Run(ctx); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func runTUI(cfg config.Config) {
	logger, logFile, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer logFile.Close()

	var source actions.Source
	if cfg.Remote() {
		logger.Info("using remote feed", "server", cfg.ServerURL)
		source = feedapi.NewClient(cfg.ServerURL, nil)
	} else {
		svc, closeStore := newService(cfg, logger)
		defer closeStore()
		source = svc
	}

	model := tui.NewModel(source, tui.Options{
		Settle:     cfg.Settle,
		CellHeight: cfg.CellHeight,
		Logger:     logger,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		log.Fatalf("tui error: %v", err)
	}
}

func newService(cfg config.Config, logger *log.Logger) (*app.Service, func()) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	store, err := likes.Open(ctx, cfg.LikeStore, cfg.DBPath)
	if err != nil {
		log.Fatalf("like store error: %v", err)
	}

	client := wikipedia.NewClient(cfg.APIBaseURL, nil, wikipedia.NewLimiter(cfg.UpstreamInterval))
	svc := app.NewService(acquire.New(client, logger), client, store, logger)
	return svc, func() {
		if err := store.Close(); err != nil {
			logger.Warn("close like store", "err", err)
		}
	}
}

func PrintHelp() {
	fmt.Println(`
  Usage:
    wikiscroll [COMMAND]

  Commands:
       tui      browse the feed in the terminal (default)
       serve    serve the feed over HTTP
       help     show this help

  Configuration is read from the environment and an optional .env file:
       WIKISCROLL_API_BASE_URL, WIKISCROLL_ADDR, WIKISCROLL_SERVER_URL,
       WIKISCROLL_LIKE_STORE (memory|sqlite), WIKISCROLL_DB_PATH,
       WIKISCROLL_UPSTREAM_INTERVAL, WIKISCROLL_SETTLE, WIKISCROLL_CELL_HEIGHT,
       WIKISCROLL_LOG_LEVEL, WIKISCROLL_LOG_FILE`)
}
