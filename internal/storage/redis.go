package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/wwoosshh/Nortoria/pkg/script"
	"github.com/wwoosshh/Nortoria/pkg/state"
	"github.com/wwoosshh/Nortoria/pkg/story"
)

// RedisStorage keeps player state in Redis and static resources (script
// documents, chapter index) on the filesystem under dataDir.
type RedisStorage struct {
	client  *redis.Client
	logger  *slog.Logger
	dataDir string
}

// Ensure RedisStorage implements Storage interface
var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance. redisURL may be a
// bare host:port or a redis:// URL.
func NewRedisStorage(redisURL string, dataDir string, logger *slog.Logger) *RedisStorage {
	var opts *redis.Options
	if strings.HasPrefix(redisURL, "redis://") {
		parsed, err := redis.ParseURL(redisURL)
		if err != nil {
			logger.Warn("Failed to parse redis URL, falling back to addr", "url", redisURL, "error", err)
			opts = &redis.Options{Addr: strings.TrimPrefix(redisURL, "redis://")}
		} else {
			opts = parsed
		}
	} else {
		opts = &redis.Options{Addr: redisURL}
	}

	if dataDir == "" {
		dataDir = "./data"
	}

	return &RedisStorage{
		client:  redis.NewClient(opts),
		logger:  logger,
		dataDir: dataDir,
	}
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

// Player state operations (Redis-backed)

func playerKey(id uuid.UUID) string {
	return "player:" + id.String()
}

// SavePlayerState persists the full player document. No TTL: a save is a
// save.
func (r *RedisStorage) SavePlayerState(ctx context.Context, ps *state.PlayerState) error {
	ps.LastPlayTime = time.Now()

	data, err := json.Marshal(ps)
	if err != nil {
		r.logger.Error("Failed to marshal player state", "player_id", ps.PlayerID, "error", err)
		return fmt.Errorf("failed to marshal player state: %w", err)
	}

	if err := r.client.Set(ctx, playerKey(ps.PlayerID), string(data), 0).Err(); err != nil {
		r.logger.Error("Failed to save player state", "player_id", ps.PlayerID, "error", err)
		return fmt.Errorf("failed to save player state: %w", err)
	}

	return nil
}

// LoadPlayerState retrieves a player document. Returns (nil, nil) when the
// player has never been saved; the caller creates first-run defaults.
func (r *RedisStorage) LoadPlayerState(ctx context.Context, id uuid.UUID) (*state.PlayerState, error) {
	cmd := r.client.Get(ctx, playerKey(id))
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		r.logger.Error("Failed to load player state", "player_id", id, "error", err)
		return nil, fmt.Errorf("failed to load player state: %w", err)
	}

	var ps state.PlayerState
	if err := json.Unmarshal([]byte(cmd.Val()), &ps); err != nil {
		r.logger.Error("Failed to unmarshal player state", "player_id", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal player state: %w", err)
	}

	return &ps, nil
}

func (r *RedisStorage) DeletePlayerState(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, playerKey(id)).Err(); err != nil {
		r.logger.Error("Failed to delete player state", "player_id", id, "error", err)
		return fmt.Errorf("failed to delete player state: %w", err)
	}
	return nil
}

// Script operations (filesystem-backed)

// ScriptFileName is the on-disk naming scheme for episode scripts.
func ScriptFileName(chapter, episode int) string {
	return fmt.Sprintf("Chapter%d_Episode%d.json", chapter, episode)
}

// LoadScript reads one episode's script document. Absent files surface
// ErrNotFound.
func (r *RedisStorage) LoadScript(ctx context.Context, chapter, episode int) (*script.Document, error) {
	path := filepath.Join(r.dataDir, "scripts", ScriptFileName(chapter, episode))

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("script %d-%d: %w", chapter, episode, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read script file: %w", err)
	}

	var doc script.Document
	if err := json.Unmarshal(file, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal script %d-%d: %w", chapter, episode, err)
	}

	if doc.Chapter == 0 {
		doc.Chapter = chapter
	}
	if doc.Episode == 0 {
		doc.Episode = episode
	}

	return &doc, nil
}

// Chapter index operations (filesystem-backed)

func (r *RedisStorage) chaptersPath() string {
	return filepath.Join(r.dataDir, "scripts", "chapters.json")
}

func (r *RedisStorage) LoadChapters(ctx context.Context) ([]story.Chapter, error) {
	file, err := os.ReadFile(r.chaptersPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("chapter index: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read chapter index: %w", err)
	}

	var chapters []story.Chapter
	if err := json.Unmarshal(file, &chapters); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chapter index: %w", err)
	}

	return chapters, nil
}

// SaveChapters writes unlock and completion state back to the index file.
func (r *RedisStorage) SaveChapters(ctx context.Context, chapters []story.Chapter) error {
	data, err := json.MarshalIndent(chapters, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal chapter index: %w", err)
	}

	if err := os.WriteFile(r.chaptersPath(), data, 0o644); err != nil {
		r.logger.Error("Failed to write chapter index", "error", err)
		return fmt.Errorf("failed to write chapter index: %w", err)
	}

	return nil
}
