package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/wwoosshh/Nortoria/internal/engine"
	"github.com/wwoosshh/Nortoria/pkg/effects"
	"github.com/wwoosshh/Nortoria/pkg/script"
	"github.com/wwoosshh/Nortoria/pkg/state"
	"github.com/wwoosshh/Nortoria/pkg/story"
)

// ConsoleUI is the BubbleTea model that renders the interpreter's
// presentation state in a terminal.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	eng      *engine.Engine
	loc      engine.Localizer
	lang     script.Language
	settings state.GameSettings
	interval time.Duration

	backlog     viewport.Model
	backlogText []string
	lastLine    string
	notes       []string
	ready       bool
	width       int
	height      int
	err         error
	copied      bool
}

type autoPlayTickMsg struct{}

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	textStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	choiceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	costStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	menuStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)

func NewConsoleUI(eng *engine.Engine, loc engine.Localizer, lang script.Language, settings state.GameSettings, interval time.Duration) *ConsoleUI {
	if settings.KeyBindings == nil {
		settings.KeyBindings = state.DefaultKeyBindings()
	}
	return &ConsoleUI{
		eng:      eng,
		loc:      loc,
		lang:     lang,
		settings: settings,
		interval: interval,
	}
}

func (ui *ConsoleUI) Init() tea.Cmd {
	ui.refresh()
	return nil
}

func (ui *ConsoleUI) autoPlayTick() tea.Cmd {
	return tea.Tick(ui.interval, func(time.Time) tea.Msg {
		return autoPlayTickMsg{}
	})
}

func (ui *ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		ui.width = msg.Width
		ui.height = msg.Height
		backlogHeight := max(3, msg.Height/3)
		if !ui.ready {
			ui.backlog = viewport.New(msg.Width-4, backlogHeight)
			ui.ready = true
		} else {
			ui.backlog.Width = msg.Width - 4
			ui.backlog.Height = backlogHeight
		}
		ui.syncBacklog()
		return ui, nil

	case autoPlayTickMsg:
		if !ui.eng.View().AutoPlay {
			return ui, nil
		}
		ui.err = ui.eng.AutoAdvance(ctx)
		ui.refresh()
		return ui, ui.autoPlayTick()

	case tea.KeyMsg:
		return ui.handleKey(ctx, msg)
	}

	return ui, nil
}

func (ui *ConsoleUI) handleKey(ctx context.Context, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := ui.eng.View()

	switch msg.String() {
	case "ctrl+c":
		return ui, tea.Quit

	case "q":
		if view.Status == engine.StatusEpisodeComplete || view.Status == engine.StatusGameComplete {
			ui.err = ui.eng.DeclineNext(ctx)
		}
		return ui, tea.Quit

	case "enter":
		ui.advance(ctx, view)
		return ui, nil

	case "y":
		err := clipboard.WriteAll(strings.Join(ui.backlogText, "\n"))
		ui.copied = err == nil
		return ui, nil

	case "up", "k":
		ui.backlog.ScrollUp(1)
		return ui, nil

	case "down", "j":
		ui.backlog.ScrollDown(1)
		return ui, nil
	}

	// Digit keys select choices.
	if view.Status == engine.StatusChoice && len(msg.String()) == 1 {
		r := msg.String()[0]
		if r >= '1' && r <= '9' {
			ui.err = ui.eng.SelectChoice(ctx, int(r-'1'))
			ui.refresh()
			return ui, nil
		}
	}

	// Everything else resolves through the player's key binding table.
	action, bound := ui.settings.ActionForKey(bindingKeyName(msg.String()))
	if !bound {
		return ui, nil
	}
	switch action {
	case state.ActionNextScript, state.ActionFastForward, state.ActionSkip:
		ui.advance(ctx, view)
	case state.ActionAuto:
		if ui.eng.ToggleAutoPlay() {
			return ui, ui.autoPlayTick()
		}
	case state.ActionShowMenu:
		ui.eng.ToggleMenu()
	default:
		ui.err = ui.eng.HandleKey(ctx, action)
		ui.refresh()
	}

	return ui, nil
}

// advance is the status-aware advance shared by the bound advance keys:
// it accepts a pending next step, acknowledges game completion, or moves
// the displayed line.
func (ui *ConsoleUI) advance(ctx context.Context, view engine.View) {
	switch view.Status {
	case engine.StatusEpisodeComplete:
		ui.err = ui.eng.ProceedToNext(ctx)
	case engine.StatusGameComplete:
		ui.err = ui.eng.DeclineNext(ctx)
	default:
		ui.err = ui.eng.Advance(ctx)
	}
	ui.refresh()
}

// bindingKeyName translates a terminal key name to the binding table's
// vocabulary, which the settings screen inherited from a desktop build.
func bindingKeyName(key string) string {
	switch key {
	case " ":
		return "Space"
	case "esc":
		return "Escape"
	case "f12":
		return "F12"
	}
	if len(key) == 1 {
		return strings.ToUpper(key)
	}
	return key
}

// refresh pulls the engine's view, appends newly displayed lines to the
// backlog and renders drained notifications.
func (ui *ConsoleUI) refresh() {
	view := ui.eng.View()

	if view.Status == engine.StatusLine && view.Text != "" {
		entry := view.Text
		if view.Speaker != "" {
			entry = view.Speaker + ": " + view.Text
		}
		if entry != ui.lastLine {
			ui.lastLine = entry
			ui.backlogText = append(ui.backlogText, entry)
			ui.syncBacklog()
		}
	}

	ui.notes = ui.notes[:0]
	for _, n := range ui.eng.Notifications() {
		ui.notes = append(ui.notes, ui.noteText(n))
	}
}

func (ui *ConsoleUI) syncBacklog() {
	if !ui.ready {
		return
	}
	ui.backlog.SetContent(wordwrap.String(strings.Join(ui.backlogText, "\n"), ui.backlog.Width))
	ui.backlog.GotoBottom()
}

// noteText renders a notification: the effect's own message when present,
// otherwise a localized default built from its kind.
func (ui *ConsoleUI) noteText(n effects.Notification) string {
	if n.Text != "" {
		return n.Text
	}
	switch n.Kind {
	case effects.KindItemGained:
		return fmt.Sprintf(ui.loc.LocalizedString("ItemGained", ui.lang), n.Target, n.Amount)
	case effects.KindItemLost:
		return fmt.Sprintf(ui.loc.LocalizedString("ItemLost", ui.lang), n.Target, n.Amount)
	case effects.KindItemMissing:
		return ui.loc.LocalizedString("ItemMissing", ui.lang)
	case effects.KindCurrencyGained:
		return fmt.Sprintf(ui.loc.LocalizedString("CurrencyGained", ui.lang), n.Amount)
	case effects.KindCurrencyLost:
		return fmt.Sprintf(ui.loc.LocalizedString("CurrencyLost", ui.lang), n.Amount)
	default:
		return ""
	}
}

func (ui *ConsoleUI) View() string {
	if !ui.ready {
		return "Loading..."
	}

	view := ui.eng.View()
	var b strings.Builder

	header := view.Position
	if view.BackgroundImage != "" {
		header += "  [" + view.BackgroundImage + "]"
	}
	if view.BackgroundMusic != "" {
		header += "  ♪ " + view.BackgroundMusic
	}
	if view.AutoPlay {
		header += "  " + ui.loc.LocalizedString("AutoPlayMode", ui.lang)
	}
	b.WriteString(headerStyle.Render(header) + "\n\n")

	b.WriteString(ui.backlog.View() + "\n\n")

	switch view.Status {
	case engine.StatusLine:
		if view.Speaker != "" {
			b.WriteString(speakerStyle.Render(view.Speaker) + "\n")
		}
		b.WriteString(textStyle.Render(wordwrap.String(view.Text, ui.width-4)) + "\n")

	case engine.StatusChoice:
		for _, c := range view.Choices {
			row := fmt.Sprintf("%d. %s", c.Index+1, c.Text)
			if c.CostLabel != "" {
				row += " " + costStyle.Render("("+c.CostLabel+")")
			}
			b.WriteString(choiceStyle.Render(row) + "\n")
		}

	case engine.StatusEpisodeComplete:
		b.WriteString(textStyle.Render(ui.loc.LocalizedString("EpisodeCompleted", ui.lang)) + "\n")
		if view.PendingStep != nil {
			prompt := "NextEpisodePrompt"
			if view.PendingStep.Kind == story.StepNextChapter {
				prompt = "NextChapterPrompt"
			}
			b.WriteString(textStyle.Render(ui.loc.LocalizedString(prompt, ui.lang)) + "\n")
		}

	case engine.StatusGameComplete:
		b.WriteString(textStyle.Render(ui.loc.LocalizedString("GameCompleted", ui.lang)) + "\n")

	case engine.StatusTitle:
		b.WriteString(textStyle.Render(ui.loc.LocalizedString("ReturnToTitle", ui.lang)) + "\n")
	}

	for _, note := range ui.notes {
		b.WriteString(noteStyle.Render("• "+note) + "\n")
	}

	if view.MenuOpen {
		b.WriteString("\n" + menuStyle.Render(ui.loc.LocalizedString("Resume", ui.lang)+" (esc)") + "\n")
	}

	if ui.err != nil {
		b.WriteString("\n" + errorStyle.Render(ui.err.Error()) + "\n")
	}

	help := "space: advance  1-9: choose  a: auto  esc: menu  y: copy log  q: quit"
	if ui.copied {
		help += "  (copied)"
	}
	b.WriteString("\n" + helpStyle.Render(help))

	return b.String()
}
