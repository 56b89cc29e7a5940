package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/wwoosshh/Nortoria/pkg/script"
	"github.com/wwoosshh/Nortoria/pkg/state"
	"github.com/wwoosshh/Nortoria/pkg/story"
)

// MockStorage is an in-memory Storage for tests.
type MockStorage struct {
	mu       sync.RWMutex
	players  map[uuid.UUID]*state.PlayerState
	scripts  map[string]*script.Document
	chapters []story.Chapter

	saveErr error

	// SaveCount counts player-state saves, so tests can assert that the
	// engine persists after every mutation.
	SaveCount int
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates an empty mock storage.
func NewMockStorage() *MockStorage {
	return &MockStorage{
		players: make(map[uuid.UUID]*state.PlayerState),
		scripts: make(map[string]*script.Document),
	}
}

// SetSaveError makes SavePlayerState fail with the given error.
func (m *MockStorage) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// AddScript registers a script document for LoadScript.
func (m *MockStorage) AddScript(doc *script.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scripts[scriptKey(doc.Chapter, doc.Episode)] = doc
}

// SetChapters registers the chapter index.
func (m *MockStorage) SetChapters(chapters []story.Chapter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chapters = chapters
}

// Chapters returns the stored chapter index.
func (m *MockStorage) Chapters() []story.Chapter {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.chapters
}

func scriptKey(chapter, episode int) string {
	return fmt.Sprintf("%d:%d", chapter, episode)
}

func (m *MockStorage) Ping(ctx context.Context) error {
	return nil
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) LoadPlayerState(ctx context.Context, id uuid.UUID) (*state.PlayerState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ps, ok := m.players[id]
	if !ok {
		return nil, nil
	}
	return ps, nil
}

func (m *MockStorage) SavePlayerState(ctx context.Context, ps *state.PlayerState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.players[ps.PlayerID] = ps
	m.SaveCount++
	return nil
}

func (m *MockStorage) DeletePlayerState(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.players, id)
	return nil
}

func (m *MockStorage) LoadScript(ctx context.Context, chapter, episode int) (*script.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.scripts[scriptKey(chapter, episode)]
	if !ok {
		return nil, fmt.Errorf("script %d-%d: %w", chapter, episode, ErrNotFound)
	}
	return doc, nil
}

func (m *MockStorage) LoadChapters(ctx context.Context) ([]story.Chapter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.chapters == nil {
		return nil, fmt.Errorf("chapter index: %w", ErrNotFound)
	}
	return m.chapters, nil
}

func (m *MockStorage) SaveChapters(ctx context.Context, chapters []story.Chapter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chapters = chapters
	return nil
}
