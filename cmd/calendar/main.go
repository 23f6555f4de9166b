package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/comitanigiacomo/kanso-calendar/internal/adapters/storage"
	"github.com/comitanigiacomo/kanso-calendar/internal/core/domain"
	"github.com/comitanigiacomo/kanso-calendar/internal/core/services"
	"github.com/comitanigiacomo/kanso-calendar/internal/tui"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Critical: invalid configuration: %v", err)
	}

	ctx := context.Background()

	store, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Critical: failed to open %s storage: %v", cfg.Storage, err)
	}
	defer cleanup()

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatalf("Critical: cannot create data directory %s: %v", cfg.DataDir, err)
	}

	completions := services.NewCompletionService(ctx, store, nil)
	stats := services.NewStatsService()
	view := services.NewViewService(ctx, store, services.ViewDefaults{
		Now:      time.Now(),
		DarkMode: lipgloss.HasDarkBackground(),
	})

	app := tui.New(ctx, completions, stats, view, cfg.DataDir)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Critical: %v", err)
	}
}

func openStore(ctx context.Context, cfg config) (domain.KVStore, func(), error) {
	noop := func() {}

	switch cfg.Storage {
	case storageMemory:
		return storage.NewInMemoryStore(), noop, nil

	case storageRedis:
		client, err := storage.NewRedisClient(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, noop, err
		}
		return storage.NewRedisStore(client), func() { _ = client.Close() }, nil

	case storagePostgres:
		db, err := storage.NewPostgresDB(cfg.Postgres.DSN)
		if err != nil {
			return nil, noop, err
		}
		store, err := storage.NewPostgresStore(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		return store, func() { _ = db.Close() }, nil

	default:
		store, err := storage.NewFileStore(filepath.Join(cfg.DataDir, "calendar.json"))
		return store, noop, err
	}
}
