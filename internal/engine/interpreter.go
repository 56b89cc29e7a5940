package engine

import (
	"context"

	"github.com/wwoosshh/Nortoria/pkg/conditions"
	"github.com/wwoosshh/Nortoria/pkg/effects"
	"github.com/wwoosshh/Nortoria/pkg/script"
)

// displayCurrentLine is the core skip loop: it walks forward from the
// current script index until a line's conditions pass, then executes that
// line and returns. Exhausting the list without a match is episode
// completion, which includes the case where every remaining line is
// condition-gated off. Callers hold e.mu.
func (e *Engine) displayCurrentLine(ctx context.Context) error {
	for e.player.CurrentStory.ScriptIndex < len(e.doc.Lines) {
		line := &e.doc.Lines[e.player.CurrentStory.ScriptIndex]

		if !conditions.Evaluate(line.Conditions, e.player) {
			// Skipped lines are never rendered and never wait for input.
			e.player.CurrentStory.ScriptIndex++
			if err := e.save(ctx); err != nil {
				return err
			}
			continue
		}

		return e.executeLine(ctx, line)
	}

	return e.completeEpisode(ctx)
}

func (e *Engine) executeLine(ctx context.Context, line *script.Line) error {
	e.updateResources(line)

	switch line.Type {
	case script.LineDialogue, script.LineNarration:
		speaker, text := e.resolveText(line)
		e.view.Speaker = speaker
		e.view.Text = text
		e.view.VoiceFile = line.VoiceFile.Resolve(e.lang)
		e.view.Choices = nil
		e.view.Status = StatusLine
		e.applyEffects(line.Effects)
		// Waits for an explicit advance; no auto-advance.
		return e.save(ctx)

	case script.LineChoice:
		e.applyEffects(line.Effects)
		e.materializeChoices(line)
		if len(e.view.Choices) == 0 {
			// Every choice was gated off or unaffordable. Waiting here
			// would strand the session: Advance is a no-op outside a
			// displayed line and no selection can ever arrive. Skip the
			// line instead.
			e.logger.Warn("Choice line has no visible choices, skipping",
				"script_index", e.player.CurrentStory.ScriptIndex)
			return e.advanceIndex(ctx)
		}
		e.view.Status = StatusChoice
		return e.save(ctx)

	case script.LineConditional:
		// The skip loop already gated on the line's conditions, so an
		// executed conditional applies its effects and moves on.
		e.applyEffects(line.Effects)
		return e.advanceIndex(ctx)

	default:
		// Background, Character, Effect, Music, Video, Live2D, Jump and
		// anything outside the grammar are pass-through: resources are
		// already updated, effects apply, and the line auto-advances.
		e.applyEffects(line.Effects)
		return e.advanceIndex(ctx)
	}
}

// updateResources copies a line's opaque resource references into the view.
// Empty fields leave the previous reference in place.
func (e *Engine) updateResources(line *script.Line) {
	if line.BackgroundImage != "" {
		e.view.BackgroundImage = line.BackgroundImage
	}
	if line.CharacterImage != "" {
		e.view.CharacterImage = line.CharacterImage
	}
	if line.BackgroundMusic != "" {
		e.view.BackgroundMusic = line.BackgroundMusic
	}
	if line.Effect != "" {
		e.view.ScreenEffect = line.Effect
	}
}

// resolveText picks the line's speaker and text, honoring conditional
// overrides: the first alternativeTexts entry whose conditions pass wins;
// otherwise the line's own text and speaker are used. An override without
// a speaker keeps the line's speaker.
func (e *Engine) resolveText(line *script.Line) (speaker, text string) {
	speakerKey := line.Speaker
	body := line.Text

	for i := range line.AlternativeTexts {
		alt := &line.AlternativeTexts[i]
		if conditions.Evaluate(alt.Conditions, e.player) {
			body = alt.Text
			if alt.Speaker != "" {
				speakerKey = alt.Speaker
			}
			break
		}
	}

	if line.Type == script.LineDialogue && speakerKey != "" {
		speaker = e.loc.CharacterName(speakerKey, e.lang)
	}
	return speaker, body.Resolve(e.lang)
}

func (e *Engine) applyEffects(list []script.Effect) {
	if len(list) == 0 {
		return
	}
	notes := effects.Apply(list, e.player, e.rng, e.lang)
	e.notes = append(e.notes, notes...)
}

// advanceIndex moves to the next line, persists the position and re-enters
// the skip loop. Callers hold e.mu.
func (e *Engine) advanceIndex(ctx context.Context) error {
	e.player.CurrentStory.ScriptIndex++
	if err := e.save(ctx); err != nil {
		return err
	}
	return e.displayCurrentLine(ctx)
}

// Advance is the explicit user advance. It is valid only while a line is
// displayed and the menu is closed; otherwise it is a no-op.
func (e *Engine) Advance(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.view.Status != StatusLine || e.menuOpen {
		return nil
	}
	return e.advanceIndex(ctx)
}

// AutoAdvance is the timer-driven pseudo-event for autoplay. It shares the
// single-flight lock with user input and is gated off while autoplay is
// disabled, a choice is pending or a menu is open.
func (e *Engine) AutoAdvance(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.autoPlay || e.menuOpen || e.view.Status != StatusLine {
		return nil
	}
	return e.advanceIndex(ctx)
}
