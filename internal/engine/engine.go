// Package engine is the script interpreter: it walks an episode's lines,
// skips lines whose conditions fail, executes matching lines, materializes
// choices and runs episode completion. All entry points are serialized
// behind one mutex; the reference behavior is single-threaded and callers
// (user input, autoplay timer) must never race each other.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/wwoosshh/Nortoria/internal/storage"
	"github.com/wwoosshh/Nortoria/pkg/effects"
	"github.com/wwoosshh/Nortoria/pkg/script"
	"github.com/wwoosshh/Nortoria/pkg/state"
	"github.com/wwoosshh/Nortoria/pkg/story"
)

// Status is the interpreter's externally visible state.
type Status int

const (
	StatusIdle Status = iota
	// StatusLine: a dialogue or narration line is displayed, awaiting advance.
	StatusLine
	// StatusChoice: a choice set is displayed, awaiting selection.
	StatusChoice
	// StatusEpisodeComplete: the episode is exhausted and a next step is
	// pending accept or decline.
	StatusEpisodeComplete
	// StatusGameComplete: the last episode of the last chapter finished.
	StatusGameComplete
	// StatusTitle: control has returned to the title collaborator.
	StatusTitle
)

func (s Status) String() string {
	switch s {
	case StatusLine:
		return "line"
	case StatusChoice:
		return "choice"
	case StatusEpisodeComplete:
		return "episode_complete"
	case StatusGameComplete:
		return "game_complete"
	case StatusTitle:
		return "title"
	default:
		return "idle"
	}
}

// VisibleChoice is one displayed, affordable choice.
type VisibleChoice struct {
	Index     int    // position among the displayed choices
	Text      string
	CostLabel string // advisory cost annotation, "" when free

	source int // index into the line's full choice list
}

// View is the observable presentation state the UI renders from.
type View struct {
	Status          Status
	Speaker         string
	Text            string
	BackgroundImage string
	CharacterImage  string
	BackgroundMusic string
	ScreenEffect    string
	VoiceFile       string
	Choices         []VisibleChoice
	Position        string // localized chapter/episode label
	AutoPlay        bool
	MenuOpen        bool
	PendingStep     *story.NextStep // set while Status is EpisodeComplete
}

// Localizer is the localization collaborator. It always returns a usable
// string, falling back to the key itself.
type Localizer interface {
	LocalizedString(key string, lang script.Language) string
	CharacterName(key string, lang script.Language) string
}

// Engine interprets one player's session.
type Engine struct {
	mu     sync.Mutex
	store  storage.Storage
	loc    Localizer
	logger *slog.Logger
	rng    effects.RandomSource
	lang   script.Language

	player   *state.PlayerState
	doc      *script.Document
	chapters []story.Chapter

	view     View
	pending  *story.NextStep
	notes    []effects.Notification
	menuOpen bool
	autoPlay bool
}

// New wires an engine to its collaborators. The game language is an
// immutable input per session: changing it mid-episode does not
// retroactively alter already-displayed text.
func New(store storage.Storage, loc Localizer, lang script.Language, rng effects.RandomSource, logger *slog.Logger) *Engine {
	return &Engine{
		store:  store,
		loc:    loc,
		logger: logger,
		rng:    rng,
		lang:   lang,
	}
}

// Start loads the chapter graph and the script at the player's current
// position, then displays the first matching line. PlayerState is left
// untouched when loading fails.
func (e *Engine) Start(ctx context.Context, player *state.PlayerState) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	chapters, err := e.store.LoadChapters(ctx)
	if err != nil {
		return fmt.Errorf("load chapters: %w", err)
	}

	doc, err := e.store.LoadScript(ctx, player.CurrentStory.Chapter, player.CurrentStory.Episode)
	if err != nil {
		return fmt.Errorf("load script: %w", err)
	}

	e.player = player
	e.chapters = chapters
	e.doc = doc
	e.view = View{Status: StatusIdle, Position: e.positionLabel()}

	e.logger.Info("Session started",
		"player_id", player.PlayerID,
		"position", player.CurrentStory)

	return e.displayCurrentLine(ctx)
}

// View returns a copy of the observable presentation state.
func (e *Engine) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()

	v := e.view
	v.AutoPlay = e.autoPlay
	v.MenuOpen = e.menuOpen
	if e.pending != nil {
		step := *e.pending
		v.PendingStep = &step
	}
	v.Choices = append([]VisibleChoice(nil), e.view.Choices...)
	return v
}

// Notifications drains and returns the accumulated effect notifications.
func (e *Engine) Notifications() []effects.Notification {
	e.mu.Lock()
	defer e.mu.Unlock()

	notes := e.notes
	e.notes = nil
	return notes
}

// ToggleAutoPlay flips autoplay and reports the new state. The timer that
// drives AutoAdvance lives in the UI layer.
func (e *Engine) ToggleAutoPlay() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.autoPlay = !e.autoPlay
	return e.autoPlay
}

// OpenMenu suspends play; advancing and autoplay are gated off while open.
func (e *Engine) OpenMenu() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.menuOpen = true
}

// CloseMenu resumes play.
func (e *Engine) CloseMenu() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.menuOpen = false
}

// ToggleMenu flips the menu state and reports whether it is now open.
func (e *Engine) ToggleMenu() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.menuOpen = !e.menuOpen
	return e.menuOpen
}

// HandleKey maps a logical input action to the corresponding operation.
// Actions owned by the UI layer (log, settings, screenshot) are no-ops here.
func (e *Engine) HandleKey(ctx context.Context, action state.Action) error {
	switch action {
	case state.ActionNextScript, state.ActionFastForward, state.ActionSkip:
		return e.Advance(ctx)
	case state.ActionShowMenu:
		e.ToggleMenu()
		return nil
	case state.ActionAuto:
		e.ToggleAutoPlay()
		return nil
	default:
		return nil
	}
}

func (e *Engine) positionLabel() string {
	format := e.loc.LocalizedString("PositionFormat", e.lang)
	return fmt.Sprintf(format, e.player.CurrentStory.Chapter, e.player.CurrentStory.Episode)
}

// save persists the player state synchronously. Persistence failures
// surface to the caller; the engine never assumes a save succeeded.
func (e *Engine) save(ctx context.Context) error {
	if err := e.store.SavePlayerState(ctx, e.player); err != nil {
		return fmt.Errorf("save player state: %w", err)
	}
	return nil
}
