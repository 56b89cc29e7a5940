package state

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

const (
	// RelationshipMin and RelationshipMax bound every relationship write.
	RelationshipMin = -100
	RelationshipMax = 100
)

// StoryPosition is the sole resumption pointer: the chapter, episode and
// script line the player is at.
type StoryPosition struct {
	Chapter     int `json:"chapter"`
	Episode     int `json:"episode"`
	ScriptIndex int `json:"scriptIndex"`
}

// Key returns the completed-story key for this position.
func (p StoryPosition) Key() string {
	return fmt.Sprintf("Chapter%d_Episode%d", p.Chapter, p.Episode)
}

func (p StoryPosition) String() string {
	return fmt.Sprintf("%d-%d:%d", p.Chapter, p.Episode, p.ScriptIndex)
}

// ChoiceRecord is one appended entry of the player's choice history.
// ChoiceIndex is the choice's position among the displayed choices.
type ChoiceRecord struct {
	Chapter     int       `json:"chapter"`
	Episode     int       `json:"episode"`
	ScriptIndex int       `json:"scriptIndex"`
	ChoiceIndex int       `json:"choiceIndex"`
	ChoiceID    string    `json:"choiceId,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// StringSet is a set persisted as a sorted JSON array.
type StringSet map[string]bool

// Add inserts a key. Re-adding is a no-op.
func (s StringSet) Add(key string) {
	s[key] = true
}

// Has reports membership.
func (s StringSet) Has(key string) bool {
	return s[key]
}

func (s StringSet) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return json.Marshal(keys)
}

func (s *StringSet) UnmarshalJSON(data []byte) error {
	var keys []string
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	*s = make(StringSet, len(keys))
	for _, k := range keys {
		(*s)[k] = true
	}
	return nil
}

// PlayerState is the persistent record of one player's progress: flags,
// relationships, inventory, choice history and story position. It is
// created once at first run, loaded at session start, mutated continuously
// during play and persisted after every advance and every choice.
type PlayerState struct {
	PlayerID         uuid.UUID      `json:"playerId"`
	PlayerName       string         `json:"playerName,omitempty"`
	CurrentStory     StoryPosition  `json:"currentStory"`
	Settings         GameSettings   `json:"gameSettings"`
	Inventory        Inventory      `json:"inventory"`
	Flags            map[string]int `json:"storyFlags"`
	Relationships    map[string]int `json:"relationships"`
	ChoiceHistory    []ChoiceRecord `json:"choiceHistory"`
	CompletedStories StringSet      `json:"completedStories"`
	LastPlayTime     time.Time      `json:"lastPlayTime"`
	TotalPlayTime    time.Duration  `json:"totalPlayTime"`
	IsFirstTime      bool           `json:"isFirstTime"`
}

// New returns the first-run player state: chapter 1, episode 1, line 0.
func New() *PlayerState {
	return &PlayerState{
		PlayerID:         uuid.New(),
		CurrentStory:     StoryPosition{Chapter: 1, Episode: 1},
		Settings:         DefaultSettings(),
		Inventory:        NewInventory(),
		Flags:            make(map[string]int),
		Relationships:    make(map[string]int),
		ChoiceHistory:    make([]ChoiceRecord, 0),
		CompletedStories: make(StringSet),
		LastPlayTime:     time.Now(),
		IsFirstTime:      true,
	}
}

// Flag returns a named counter, zero when absent. Keys are never removed.
func (ps *PlayerState) Flag(name string) int {
	return ps.Flags[name]
}

// SetFlag sets a named counter.
func (ps *PlayerState) SetFlag(name string, value int) {
	if ps.Flags == nil {
		ps.Flags = make(map[string]int)
	}
	ps.Flags[name] = value
}

// AddFlag adjusts a named counter by delta.
func (ps *PlayerState) AddFlag(name string, delta int) {
	ps.SetFlag(name, ps.Flags[name]+delta)
}

// Relationship returns a character's relationship value, zero when absent.
func (ps *PlayerState) Relationship(characterID string) int {
	return ps.Relationships[characterID]
}

// SetRelationship writes a relationship value, clamped to
// [RelationshipMin, RelationshipMax].
func (ps *PlayerState) SetRelationship(characterID string, value int) {
	if ps.Relationships == nil {
		ps.Relationships = make(map[string]int)
	}
	ps.Relationships[characterID] = clamp(value, RelationshipMin, RelationshipMax)
}

// AddRelationship adjusts a relationship by delta, clamped on write.
func (ps *PlayerState) AddRelationship(characterID string, delta int) {
	ps.SetRelationship(characterID, ps.Relationships[characterID]+delta)
}

// ItemCount returns the held quantity of an item.
func (ps *PlayerState) ItemCount(id string) int {
	return ps.Inventory.ItemCount(id)
}

// Currency returns the held currency.
func (ps *PlayerState) Currency() int64 {
	return ps.Inventory.Currency
}

// HasMadeChoice reports whether any history record carries the choice ID.
// Duplicates are permitted in history; this is an existence check.
func (ps *PlayerState) HasMadeChoice(choiceID string) bool {
	if choiceID == "" {
		return false
	}
	for _, rec := range ps.ChoiceHistory {
		if rec.ChoiceID == choiceID {
			return true
		}
	}
	return false
}

// RecordChoice appends a record to the choice history.
func (ps *PlayerState) RecordChoice(rec ChoiceRecord) {
	ps.ChoiceHistory = append(ps.ChoiceHistory, rec)
}

// MarkCompleted adds a completed-story key. Set semantics: re-adding an
// existing key is a no-op.
func (ps *PlayerState) MarkCompleted(key string) {
	if ps.CompletedStories == nil {
		ps.CompletedStories = make(StringSet)
	}
	ps.CompletedStories.Add(key)
}

// HasCompleted reports whether a story key has been completed.
func (ps *PlayerState) HasCompleted(key string) bool {
	return ps.CompletedStories.Has(key)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
