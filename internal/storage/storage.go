package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/wwoosshh/Nortoria/pkg/script"
	"github.com/wwoosshh/Nortoria/pkg/state"
	"github.com/wwoosshh/Nortoria/pkg/story"
)

// ErrNotFound marks a requested script or chapter index as absent. Callers
// must treat it as fatal to the navigation attempt rather than continuing
// with a previously loaded document.
var ErrNotFound = errors.New("not found")

// Storage combines player-state persistence with script resource loading.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Player state (Redis-backed)
	LoadPlayerState(ctx context.Context, id uuid.UUID) (*state.PlayerState, error)
	SavePlayerState(ctx context.Context, ps *state.PlayerState) error
	DeletePlayerState(ctx context.Context, id uuid.UUID) error

	// Script documents (filesystem-backed, immutable)
	LoadScript(ctx context.Context, chapter, episode int) (*script.Document, error)

	// Chapter index (filesystem-backed; unlock state is written back)
	LoadChapters(ctx context.Context) ([]story.Chapter, error)
	SaveChapters(ctx context.Context, chapters []story.Chapter) error
}
