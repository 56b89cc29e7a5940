package main

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wwoosshh/Nortoria/internal/engine"
	"github.com/wwoosshh/Nortoria/internal/localization"
	"github.com/wwoosshh/Nortoria/internal/storage"
	"github.com/wwoosshh/Nortoria/pkg/script"
	"github.com/wwoosshh/Nortoria/pkg/state"
	"github.com/wwoosshh/Nortoria/pkg/story"
)

// newTestUI wires a console over a started engine with a three-line
// narration script, using the given binding table.
func newTestUI(t *testing.T, bindings map[state.Action]string) (*ConsoleUI, *engine.Engine) {
	t.Helper()

	doc := &script.Document{Chapter: 1, Episode: 1, Lines: []script.Line{
		{Index: 0, Type: script.LineNarration, Text: script.Text{script.Korean: "first"}},
		{Index: 1, Type: script.LineNarration, Text: script.Text{script.Korean: "second"}},
		{Index: 2, Type: script.LineNarration, Text: script.Text{script.Korean: "third"}},
	}}

	store := storage.NewMockStorage()
	store.AddScript(doc)
	store.SetChapters([]story.Chapter{
		{Number: 1, IsUnlocked: true, Episodes: []story.Episode{
			{Number: 1, IsUnlocked: true},
		}},
	})

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	eng := engine.New(store, localization.New(), script.Korean, nil, log)
	require.NoError(t, eng.Start(context.Background(), state.New()))

	settings := state.GameSettings{KeyBindings: bindings}
	ui := NewConsoleUI(eng, localization.New(), script.Korean, settings, time.Second)
	return ui, eng
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestDefaultBindingsDriveTheEngine(t *testing.T) {
	ui, eng := newTestUI(t, nil) // nil falls back to DefaultKeyBindings

	assert.Equal(t, "first", eng.View().Text)

	// Space is bound to NextScript.
	ui.Update(keyMsg(" "))
	assert.Equal(t, "second", eng.View().Text)

	// A toggles autoplay and schedules the first tick.
	_, cmd := ui.Update(keyMsg("a"))
	assert.True(t, eng.View().AutoPlay)
	assert.NotNil(t, cmd)

	// Escape opens the menu.
	ui.Update(keyMsg("esc"))
	assert.True(t, eng.View().MenuOpen)
}

func TestRebindingMovesTheAction(t *testing.T) {
	ui, eng := newTestUI(t, map[state.Action]string{
		state.ActionNextScript: "N",
		state.ActionAuto:       "Z",
	})

	// The default keys are no longer bound to anything.
	ui.Update(keyMsg(" "))
	ui.Update(keyMsg("a"))
	assert.Equal(t, "first", eng.View().Text)
	assert.False(t, eng.View().AutoPlay)

	// The rebound keys are.
	ui.Update(keyMsg("n"))
	assert.Equal(t, "second", eng.View().Text)

	ui.Update(keyMsg("z"))
	assert.True(t, eng.View().AutoPlay)
}

func TestBindingKeyName(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{" ", "Space"},
		{"esc", "Escape"},
		{"f12", "F12"},
		{"a", "A"},
		{"Z", "Z"},
		{"ctrl+s", "ctrl+s"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, bindingKeyName(tt.key))
		})
	}
}
