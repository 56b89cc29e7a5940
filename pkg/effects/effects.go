// Package effects applies script effects to player state.
package effects

import (
	"github.com/wwoosshh/Nortoria/pkg/script"
	"github.com/wwoosshh/Nortoria/pkg/state"
)

// RandomSource supplies uniform [0,1) draws for probability rolls. It is
// injected so tests can pin the sequence.
type RandomSource interface {
	Float64() float64
}

// Kind classifies a notification so the presentation layer can build a
// default message when the effect carries none.
type Kind string

const (
	KindItemGained     Kind = "item_gained"
	KindItemLost       Kind = "item_lost"
	KindItemMissing    Kind = "item_missing"
	KindCurrencyGained Kind = "currency_gained"
	KindCurrencyLost   Kind = "currency_lost"
	KindStoryChanged   Kind = "story_changed"
)

// Notification is the semantic payload of an effect the player should be
// told about. Text is the effect's own localized message when present;
// rendering a default string from Kind, Target and Amount is the UI's job.
type Notification struct {
	Kind   Kind
	Target string
	Amount int
	Text   string
}

// Apply walks the effect list in order, mutating st and collecting
// notifications. Effects with probability below 1.0 are skipped entirely
// (no mutation, no notification) when the roll exceeds the probability.
// Unknown type/action combinations are no-ops. Effect-level faults never
// escape this function.
func Apply(list []script.Effect, st *state.PlayerState, rng RandomSource, lang script.Language) []Notification {
	var notes []Notification
	for i := range list {
		if n, ok := applyOne(&list[i], st, rng, lang); ok {
			notes = append(notes, n)
		}
	}
	return notes
}

func applyOne(e *script.Effect, st *state.PlayerState, rng RandomSource, lang script.Language) (Notification, bool) {
	if e.Probability < 1.0 && rng != nil && rng.Float64() > e.Probability {
		return Notification{}, false
	}

	switch e.Kind() {
	case script.EffectFlag:
		return applyCounter(e, st, e.Target, lang)

	case script.EffectRouteProgress:
		return applyCounter(e, st, "route_"+e.Target+"_progress", lang)

	case script.EffectCharacterState:
		if e.Verb() != script.ActionSetAlive {
			return Notification{}, false
		}
		alive := 0
		if e.Amount > 0 {
			alive = 1
		}
		st.SetFlag(e.Target+"_alive", alive)
		return notify(e, KindStoryChanged, lang)

	case script.EffectRelationship:
		switch e.Verb() {
		case script.ActionSet:
			st.SetRelationship(e.Target, e.Amount)
		case script.ActionIncrease:
			st.AddRelationship(e.Target, e.Amount)
		case script.ActionDecrease:
			st.AddRelationship(e.Target, -e.Amount)
		default:
			return Notification{}, false
		}
		return notify(e, KindStoryChanged, lang)

	case script.EffectItem:
		switch e.Verb() {
		case script.ActionGive:
			st.Inventory.AddItem(e.Target, e.Amount)
			return notify(e, KindItemGained, lang)
		case script.ActionTake:
			if !st.Inventory.HasItem(e.Target, e.Amount) {
				// The shortfall itself is reported even for silent
				// effects; it is a failure notice, not a reward one.
				return Notification{Kind: KindItemMissing, Target: e.Target, Amount: e.Amount}, true
			}
			st.Inventory.RemoveItem(e.Target, e.Amount)
			return notify(e, KindItemLost, lang)
		default:
			return Notification{}, false
		}

	case script.EffectCurrency:
		switch e.Verb() {
		case script.ActionGive:
			st.Inventory.AddCurrency(int64(e.Amount))
			return notify(e, KindCurrencyGained, lang)
		case script.ActionTake:
			st.Inventory.TakeCurrency(int64(e.Amount))
			return notify(e, KindCurrencyLost, lang)
		default:
			return Notification{}, false
		}

	default:
		return Notification{}, false
	}
}

// applyCounter handles the set/increase/decrease verbs shared by flag and
// route_progress effects.
func applyCounter(e *script.Effect, st *state.PlayerState, flag string, lang script.Language) (Notification, bool) {
	switch e.Verb() {
	case script.ActionSet:
		st.SetFlag(flag, e.Amount)
	case script.ActionIncrease:
		st.AddFlag(flag, e.Amount)
	case script.ActionDecrease:
		st.AddFlag(flag, -e.Amount)
	default:
		return Notification{}, false
	}
	return notify(e, KindStoryChanged, lang)
}

// notify builds the effect's notification. Silent effects and story-side
// mutations without a custom message produce nothing; item and currency
// effects always notify so the UI can render a default reward line.
func notify(e *script.Effect, kind Kind, lang script.Language) (Notification, bool) {
	if e.Silent {
		return Notification{}, false
	}
	text := e.Message.Resolve(lang)
	if kind == KindStoryChanged && text == "" {
		return Notification{}, false
	}
	return Notification{Kind: kind, Target: e.Target, Amount: e.Amount, Text: text}, true
}
