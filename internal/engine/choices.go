package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wwoosshh/Nortoria/pkg/conditions"
	"github.com/wwoosshh/Nortoria/pkg/script"
	"github.com/wwoosshh/Nortoria/pkg/state"
)

// materializeChoices builds the visible choice list for a choice line, in
// declaration order. A choice is hidden when its displayConditions fail or
// its cost is unaffordable. The legacy conditions field is ignored.
func (e *Engine) materializeChoices(line *script.Line) {
	visible := make([]VisibleChoice, 0, len(line.Choices))

	for i := range line.Choices {
		c := &line.Choices[i]

		if !conditions.Evaluate(c.DisplayConditions, e.player) {
			continue
		}
		if !e.affordable(c.Cost) {
			continue
		}

		visible = append(visible, VisibleChoice{
			Index:     len(visible),
			Text:      c.Text.Resolve(e.lang),
			CostLabel: costLabel(c.Cost),
			source:    i,
		})
	}

	e.view.Speaker = ""
	e.view.Text = ""
	e.view.Choices = visible
}

func (e *Engine) affordable(cost *script.ChoiceCost) bool {
	if cost.IsFree() {
		return true
	}
	if cost.Currency > e.player.Inventory.Currency {
		return false
	}
	for itemID, amount := range cost.Items {
		if e.player.Inventory.ItemCount(itemID) < amount {
			return false
		}
	}
	return true
}

// costLabel renders the advisory cost annotation shown next to the choice.
func costLabel(cost *script.ChoiceCost) string {
	if cost.IsFree() {
		return ""
	}
	parts := make([]string, 0, 1+len(cost.Items))
	if cost.Currency > 0 {
		parts = append(parts, fmt.Sprintf("%dG", cost.Currency))
	}
	for itemID, amount := range cost.Items {
		parts = append(parts, fmt.Sprintf("%s x%d", itemID, amount))
	}
	return strings.Join(parts, ", ")
}

// SelectChoice takes the displayed choice at index. Cost deduction happens
// unconditionally for the selected choice, the choice is recorded when it
// carries an ID, its effects apply, and the script jumps to its target.
func (e *Engine) SelectChoice(ctx context.Context, index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.view.Status != StatusChoice {
		return fmt.Errorf("no choice pending")
	}
	if index < 0 || index >= len(e.view.Choices) {
		return fmt.Errorf("choice index %d out of range", index)
	}

	line := e.doc.Line(e.player.CurrentStory.ScriptIndex)
	if line == nil {
		return fmt.Errorf("script index %d out of range", e.player.CurrentStory.ScriptIndex)
	}
	choice := &line.Choices[e.view.Choices[index].source]

	e.deductCost(choice.Cost)

	if choice.ID != "" {
		e.player.RecordChoice(state.ChoiceRecord{
			Chapter:     e.player.CurrentStory.Chapter,
			Episode:     e.player.CurrentStory.Episode,
			ScriptIndex: e.player.CurrentStory.ScriptIndex,
			ChoiceIndex: index,
			ChoiceID:    choice.ID,
			Timestamp:   time.Now(),
		})
	}

	e.applyEffects(choice.Effects)

	e.view.Choices = nil
	e.player.CurrentStory.ScriptIndex = choice.NextScriptIndex
	if err := e.save(ctx); err != nil {
		return err
	}

	e.logger.Debug("Choice selected",
		"choice_id", choice.ID,
		"next_index", choice.NextScriptIndex)

	return e.displayCurrentLine(ctx)
}

// deductCost charges the selected choice's cost. Affordability was checked
// at materialization; the currency clamp is a hard invariant regardless.
func (e *Engine) deductCost(cost *script.ChoiceCost) {
	if cost.IsFree() {
		return
	}
	e.player.Inventory.TakeCurrency(cost.Currency)
	for itemID, amount := range cost.Items {
		e.player.Inventory.RemoveItem(itemID, amount)
	}
}
