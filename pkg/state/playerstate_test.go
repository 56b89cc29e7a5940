package state

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	ps := New()

	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", ps.PlayerID.String())
	assert.Equal(t, StoryPosition{Chapter: 1, Episode: 1, ScriptIndex: 0}, ps.CurrentStory)
	assert.True(t, ps.IsFirstTime)
	assert.NotNil(t, ps.Flags)
	assert.NotNil(t, ps.Relationships)
	assert.NotNil(t, ps.ChoiceHistory)
	assert.NotNil(t, ps.CompletedStories)
	assert.Equal(t, 3, ps.Settings.AutoPlaySeconds)
}

func TestRelationshipClamping(t *testing.T) {
	ps := New()

	ps.SetRelationship("semilia", 150)
	assert.Equal(t, RelationshipMax, ps.Relationship("semilia"))

	ps.SetRelationship("semilia", -150)
	assert.Equal(t, RelationshipMin, ps.Relationship("semilia"))

	ps.SetRelationship("semilia", 95)
	ps.AddRelationship("semilia", 20)
	assert.Equal(t, RelationshipMax, ps.Relationship("semilia"))

	ps.AddRelationship("semilia", -300)
	assert.Equal(t, RelationshipMin, ps.Relationship("semilia"))

	assert.Equal(t, 0, ps.Relationship("gruvit"))
}

func TestFlagsNeverRemoved(t *testing.T) {
	ps := New()

	ps.SetFlag("met_semilia", 1)
	ps.AddFlag("met_semilia", -1)

	// A flag driven back to zero stays present as an explicit zero.
	v, ok := ps.Flags["met_semilia"]
	assert.True(t, ok)
	assert.Equal(t, 0, v)
	assert.Equal(t, 0, ps.Flag("absent"))
}

func TestInventoryInvariants(t *testing.T) {
	inv := NewInventory()

	inv.AddItem("memory_shard", 2)
	inv.AddItem("memory_shard", 0)
	inv.AddItem("memory_shard", -3)
	assert.Equal(t, 2, inv.ItemCount("memory_shard"))

	inv.RemoveItem("memory_shard", 2)
	_, present := inv.Items["memory_shard"]
	assert.False(t, present, "zero-quantity keys must be deleted")

	inv.RemoveItem("absent", 1)
	assert.Equal(t, 0, inv.ItemCount("absent"))

	assert.True(t, inv.HasItem("absent", 0))
	assert.False(t, inv.HasItem("absent", 1))

	inv.AddCurrency(30)
	inv.TakeCurrency(100)
	assert.Equal(t, int64(0), inv.Currency, "currency clamps at zero")
}

func TestChoiceHistory(t *testing.T) {
	ps := New()

	assert.False(t, ps.HasMadeChoice("ch1_ep2_trust"))
	assert.False(t, ps.HasMadeChoice(""), "empty choice ID never matches")

	ps.RecordChoice(ChoiceRecord{Chapter: 1, Episode: 2, ScriptIndex: 5, ChoiceIndex: 0, ChoiceID: "ch1_ep2_trust", Timestamp: time.Now()})
	ps.RecordChoice(ChoiceRecord{Chapter: 1, Episode: 2, ScriptIndex: 5, ChoiceIndex: 0, ChoiceID: "ch1_ep2_trust", Timestamp: time.Now()})

	// Replays append; history is a log, not a set.
	assert.Len(t, ps.ChoiceHistory, 2)
	assert.True(t, ps.HasMadeChoice("ch1_ep2_trust"))

	ps.RecordChoice(ChoiceRecord{Chapter: 1, Episode: 3, ScriptIndex: 2, ChoiceIndex: 1})
	assert.Len(t, ps.ChoiceHistory, 3)
	assert.False(t, ps.HasMadeChoice("ch1_ep3_unnamed"))
}

func TestCompletedStories(t *testing.T) {
	ps := New()
	key := StoryPosition{Chapter: 1, Episode: 2}.Key()

	assert.Equal(t, "Chapter1_Episode2", key)
	assert.False(t, ps.HasCompleted(key))

	ps.MarkCompleted(key)
	ps.MarkCompleted(key)
	assert.True(t, ps.HasCompleted(key))
	assert.Len(t, ps.CompletedStories, 1)
}

func TestStringSetJSONRoundTrip(t *testing.T) {
	s := StringSet{"Chapter1_Episode2": true, "Chapter1_Episode1": true}

	data, err := json.Marshal(s)
	require.NoError(t, err)
	// Sorted array on the wire, stable across runs.
	assert.JSONEq(t, `["Chapter1_Episode1","Chapter1_Episode2"]`, string(data))

	var back StringSet
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, s, back)
}

func TestPlayerStateJSONRoundTrip(t *testing.T) {
	ps := New()
	ps.PlayerName = "라시"
	ps.SetFlag("met_semilia", 1)
	ps.SetRelationship("semilia", 40)
	ps.Inventory.AddItem("memory_shard", 2)
	ps.Inventory.AddCurrency(120)
	ps.MarkCompleted("Chapter1_Episode1")
	ps.RecordChoice(ChoiceRecord{Chapter: 1, Episode: 1, ScriptIndex: 4, ChoiceID: "ch1_ep1_open_door"})

	data, err := json.Marshal(ps)
	require.NoError(t, err)

	var back PlayerState
	require.NoError(t, json.Unmarshal(data, &back))

	assert.Equal(t, ps.PlayerID, back.PlayerID)
	assert.Equal(t, ps.CurrentStory, back.CurrentStory)
	assert.Equal(t, 1, back.Flag("met_semilia"))
	assert.Equal(t, 40, back.Relationship("semilia"))
	assert.Equal(t, 2, back.ItemCount("memory_shard"))
	assert.Equal(t, int64(120), back.Currency())
	assert.True(t, back.HasCompleted("Chapter1_Episode1"))
	assert.True(t, back.HasMadeChoice("ch1_ep1_open_door"))
}

func TestActionForKey(t *testing.T) {
	s := DefaultSettings()

	action, ok := s.ActionForKey("Space")
	assert.True(t, ok)
	assert.Equal(t, ActionNextScript, action)

	action, ok = s.ActionForKey("A")
	assert.True(t, ok)
	assert.Equal(t, ActionAuto, action)

	_, ok = s.ActionForKey("F5")
	assert.False(t, ok)
}
