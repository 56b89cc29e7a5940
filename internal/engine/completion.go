package engine

import (
	"context"
	"fmt"

	"github.com/wwoosshh/Nortoria/pkg/state"
	"github.com/wwoosshh/Nortoria/pkg/story"
)

// completeEpisode runs when the skip loop exhausts the script. Ordering
// matters: the completion mark is persisted before the unlock cascade, so
// a crash between the two never leaves an unlocked-but-uncompleted graph.
// Callers hold e.mu.
func (e *Engine) completeEpisode(ctx context.Context) error {
	pos := e.player.CurrentStory
	e.player.MarkCompleted(pos.Key())
	if err := e.save(ctx); err != nil {
		return err
	}

	step := story.CompleteEpisode(e.chapters, pos.Chapter, pos.Episode)
	if err := e.store.SaveChapters(ctx, e.chapters); err != nil {
		return fmt.Errorf("save chapter index: %w", err)
	}

	e.logger.Info("Episode completed",
		"position", pos.Key(),
		"next", step.String())

	e.pending = &step
	e.view.Speaker = ""
	e.view.Text = ""
	e.view.Choices = nil
	if step.Kind == story.StepGameComplete {
		e.view.Status = StatusGameComplete
	} else {
		e.view.Status = StatusEpisodeComplete
	}
	return nil
}

// ProceedToNext accepts the pending next step: it loads the next episode's
// script first (a NotFound must not move the player), then resets the
// position and resumes the interpreter loop.
func (e *Engine) ProceedToNext(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.view.Status != StatusEpisodeComplete || e.pending == nil {
		return fmt.Errorf("no pending next step")
	}
	step := *e.pending

	doc, err := e.store.LoadScript(ctx, step.Chapter, step.Episode)
	if err != nil {
		return fmt.Errorf("load script: %w", err)
	}

	e.player.CurrentStory = state.StoryPosition{
		Chapter: step.Chapter,
		Episode: step.Episode,
	}
	if err := e.save(ctx); err != nil {
		return err
	}

	e.doc = doc
	e.pending = nil
	e.view = View{Status: StatusIdle, Position: e.positionLabel()}

	return e.displayCurrentLine(ctx)
}

// DeclineNext refuses the pending step (or acknowledges game completion)
// and returns control to the title collaborator.
func (e *Engine) DeclineNext(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.view.Status != StatusEpisodeComplete && e.view.Status != StatusGameComplete {
		return fmt.Errorf("no completion pending")
	}

	e.pending = nil
	e.view.Status = StatusTitle
	return e.save(ctx)
}
