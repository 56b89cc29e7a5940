package main

import (
	"context"
	"math/rand/v2"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/wwoosshh/Nortoria/internal/config"
	"github.com/wwoosshh/Nortoria/internal/engine"
	"github.com/wwoosshh/Nortoria/internal/localization"
	"github.com/wwoosshh/Nortoria/internal/logger"
	"github.com/wwoosshh/Nortoria/internal/storage"
	"github.com/wwoosshh/Nortoria/pkg/state"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)

	store := storage.NewRedisStorage(cfg.RedisURL, cfg.DataDir, log)
	defer func() {
		if err := store.Close(); err != nil {
			logger.WithError(log, err).Error("Failed to close storage")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := store.WaitForConnection(ctx); err != nil {
		logger.WithError(log, err).Error("Storage unavailable")
		os.Exit(1)
	}

	player, err := loadOrCreatePlayer(ctx, store)
	if err != nil {
		logger.WithError(log, err).Error("Failed to load player state")
		os.Exit(1)
	}

	lang := player.Settings.GameLanguage
	if lang == "" {
		lang = localization.ParseTag(cfg.GameLanguage)
	}

	loc := localization.New()
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	eng := engine.New(store, loc, lang, rng, log)

	if err := eng.Start(ctx, player); err != nil {
		logger.WithError(log, err).Error("Failed to start session")
		os.Exit(1)
	}

	interval := cfg.AutoPlayInterval
	if player.Settings.AutoPlaySeconds > 0 {
		interval = time.Duration(player.Settings.AutoPlaySeconds) * time.Second
	}

	ui := NewConsoleUI(eng, loc, lang, player.Settings, interval)
	if _, err := tea.NewProgram(ui, tea.WithAltScreen()).Run(); err != nil {
		logger.WithError(log, err).Error("Console exited with error")
		os.Exit(1)
	}
}

// loadOrCreatePlayer resumes the player named by PLAYER_ID, or creates a
// first-run player when the ID is unset or unknown.
func loadOrCreatePlayer(ctx context.Context, store storage.Storage) (*state.PlayerState, error) {
	if raw := os.Getenv("PLAYER_ID"); raw != "" {
		id, err := uuid.Parse(raw)
		if err == nil {
			player, err := store.LoadPlayerState(ctx, id)
			if err != nil {
				return nil, err
			}
			if player != nil {
				player.IsFirstTime = false
				return player, nil
			}
		}
	}

	player := state.New()
	if err := store.SavePlayerState(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}
