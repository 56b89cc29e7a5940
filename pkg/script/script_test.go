package script

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineTypeDecoding(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want LineType
	}{
		{"string name", `"Dialogue"`, LineDialogue},
		{"lowercase name", `"narration"`, LineNarration},
		{"legacy int", `2`, LineChoice},
		{"legacy stringified int", `"10"`, LineConditional},
		{"unknown name", `"Cutscene"`, LineUnknown},
		{"out of range int", `42`, LineUnknown},
		{"negative int", `-1`, LineUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lt LineType
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &lt))
			assert.Equal(t, tt.want, lt)
		})
	}
}

func TestLineTypeEncodesAsString(t *testing.T) {
	data, err := json.Marshal(LineJump)
	require.NoError(t, err)
	assert.Equal(t, `"Jump"`, string(data))
}

func TestEffectDefaults(t *testing.T) {
	var e Effect
	require.NoError(t, json.Unmarshal([]byte(`{"type":"item","action":"give","target":"ribbon"}`), &e))

	assert.Equal(t, 1, e.Amount)
	assert.Equal(t, 1.0, e.Probability)

	require.NoError(t, json.Unmarshal([]byte(`{"type":"item","action":"give","target":"ribbon","amount":0,"probability":0.3}`), &e))
	assert.Equal(t, 0, e.Amount)
	assert.Equal(t, 0.3, e.Probability)
}

func TestTextResolveFallback(t *testing.T) {
	text := Text{English: "Hello", Japanese: "こんにちは"}

	assert.Equal(t, "Hello", text.Resolve(English))
	// Korean is absent; English is first in the fallback order.
	assert.Equal(t, "Hello", text.Resolve(Korean))
	assert.Equal(t, "こんにちは", text.Resolve(Japanese))

	assert.Equal(t, "", Text{}.Resolve(Korean))
	assert.True(t, Text{}.IsEmpty())
}

func TestConditionNormalizers(t *testing.T) {
	c := Condition{Type: "FLAG", Operator: "True", LogicOperator: "or"}
	assert.Equal(t, CondFlag, c.Kind())
	assert.Equal(t, OpTrue, c.Op())
	assert.Equal(t, LogicOr, c.Logic())

	c = Condition{Type: "weather", Operator: "exists", LogicOperator: ""}
	assert.Equal(t, CondUnknown, c.Kind())
	assert.Equal(t, OpUnknown, c.Op())
	assert.Equal(t, LogicAnd, c.Logic())

	c = Condition{LogicOperator: "XOR"}
	assert.Equal(t, LogicAnd, c.Logic(), "anything but OR means AND")
}

func TestEffectNormalizers(t *testing.T) {
	e := Effect{Type: "Character_State", Action: "Set_Alive"}
	assert.Equal(t, EffectCharacterState, e.Kind())
	assert.Equal(t, ActionSetAlive, e.Verb())

	e = Effect{Type: "weather", Action: "equip"}
	assert.Equal(t, EffectUnknown, e.Kind())
	assert.Equal(t, ActionUnknown, e.Verb())
}

func TestChoiceCostIsFree(t *testing.T) {
	var nilCost *ChoiceCost
	assert.True(t, nilCost.IsFree())
	assert.True(t, (&ChoiceCost{}).IsFree())
	assert.False(t, (&ChoiceCost{Currency: 100}).IsFree())
	assert.False(t, (&ChoiceCost{Items: map[string]int{"memory_shard": 1}}).IsFree())
}

func TestDocumentDecode(t *testing.T) {
	raw := `{
		"chapter": 1,
		"episode": 2,
		"scripts": [
			{"index": 0, "type": "Background", "backgroundImage": "school_rooftop"},
			{
				"index": 1, "type": "Dialogue", "speaker": "semilia",
				"text": {"Korean": "...", "English": "..."},
				"alternativeTexts": [
					{"conditions": [{"type": "flag", "target": "met_semilia", "operator": "true"}],
					 "text": {"Korean": "again"}}
				]
			},
			{
				"index": 2, "type": "Choice",
				"choices": [
					{"id": "ch1_ep2_trust", "text": {"Korean": "믿는다"}, "nextScriptIndex": 3,
					 "cost": {"currency": 100},
					 "effects": [{"type": "relationship", "action": "increase", "target": "semilia", "amount": 5}]}
				]
			}
		]
	}`

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, 1, doc.Chapter)
	assert.Equal(t, 2, doc.Episode)
	require.Len(t, doc.Lines, 3)

	assert.Equal(t, LineBackground, doc.Lines[0].Type)
	assert.Equal(t, "school_rooftop", doc.Lines[0].BackgroundImage)

	require.Len(t, doc.Lines[1].AlternativeTexts, 1)
	assert.Equal(t, "again", doc.Lines[1].AlternativeTexts[0].Text.Resolve(Korean))

	require.Len(t, doc.Lines[2].Choices, 1)
	choice := doc.Lines[2].Choices[0]
	assert.Equal(t, "ch1_ep2_trust", choice.ID)
	assert.Equal(t, 3, choice.NextScriptIndex)
	assert.Equal(t, int64(100), choice.Cost.Currency)
	require.Len(t, choice.Effects, 1)
	assert.Equal(t, 5, choice.Effects[0].Amount)
	assert.Equal(t, 1.0, choice.Effects[0].Probability, "probability defaults even inside choices")

	assert.Nil(t, doc.Line(-1))
	assert.Nil(t, doc.Line(3))
	assert.NotNil(t, doc.Line(2))
}
