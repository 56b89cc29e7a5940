package script

import (
	"encoding/json"
	"strings"
)

// EffectType selects which part of the player state an effect mutates.
type EffectType string

const (
	EffectItem           EffectType = "item"
	EffectCurrency       EffectType = "currency"
	EffectFlag           EffectType = "flag"
	EffectRelationship   EffectType = "relationship"
	EffectCharacterState EffectType = "character_state"
	EffectRouteProgress  EffectType = "route_progress"
	EffectUnknown        EffectType = "effect_unknown"
)

var effectTypes = map[string]EffectType{
	"item":            EffectItem,
	"currency":        EffectCurrency,
	"flag":            EffectFlag,
	"relationship":    EffectRelationship,
	"character_state": EffectCharacterState,
	"route_progress":  EffectRouteProgress,
}

// EffectAction is the verb applied to the effect's target.
type EffectAction string

const (
	ActionGive     EffectAction = "give"
	ActionTake     EffectAction = "take"
	ActionSet      EffectAction = "set"
	ActionIncrease EffectAction = "increase"
	ActionDecrease EffectAction = "decrease"
	ActionSetAlive EffectAction = "set_alive"
	ActionUnknown  EffectAction = "action_unknown"
)

var effectActions = map[string]EffectAction{
	"give":      ActionGive,
	"take":      ActionTake,
	"set":       ActionSet,
	"increase":  ActionIncrease,
	"decrease":  ActionDecrease,
	"set_alive": ActionSetAlive,
}

// Effect is one state mutation triggered by a line or a choice.
// Delay is decoded for schema compatibility but effects are always applied
// synchronously.
type Effect struct {
	Type        string  `json:"type"`
	Action      string  `json:"action"`
	Target      string  `json:"target,omitempty"`
	Amount      int     `json:"amount"`
	Message     Text    `json:"message,omitempty"`
	Silent      bool    `json:"silent,omitempty"`
	Probability float64 `json:"probability"`
	Delay       float64 `json:"delay,omitempty"`
}

// Kind returns the closed effect type, EffectUnknown outside the grammar.
func (e Effect) Kind() EffectType {
	if t, ok := effectTypes[strings.ToLower(e.Type)]; ok {
		return t
	}
	return EffectUnknown
}

// Verb returns the closed action, ActionUnknown outside the grammar.
func (e Effect) Verb() EffectAction {
	if a, ok := effectActions[strings.ToLower(e.Action)]; ok {
		return a
	}
	return ActionUnknown
}

// UnmarshalJSON applies the schema defaults: amount 1, probability 1.0.
func (e *Effect) UnmarshalJSON(data []byte) error {
	type alias Effect
	aux := alias{Amount: 1, Probability: 1.0}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*e = Effect(aux)
	return nil
}
