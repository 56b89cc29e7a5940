package script

// Document is the immutable script for one episode: an ordered list of lines.
// A player's scriptIndex indexes into Lines; an index equal to len(Lines)
// means the episode is exhausted and completion is pending.
type Document struct {
	Chapter int    `json:"chapter"`
	Episode int    `json:"episode"`
	Lines   []Line `json:"scripts"`
}

// Line returns the line at index i, or nil when i is out of range.
func (d *Document) Line(i int) *Line {
	if d == nil || i < 0 || i >= len(d.Lines) {
		return nil
	}
	return &d.Lines[i]
}

// Line is one addressable unit of narrative content or instruction.
type Line struct {
	Index            int               `json:"index"`
	Type             LineType          `json:"type"`
	Speaker          string            `json:"speaker,omitempty"`
	Text             Text              `json:"text,omitempty"`
	BackgroundImage  string            `json:"backgroundImage,omitempty"`
	CharacterImage   string            `json:"characterImage,omitempty"`
	VoiceFile        Text              `json:"voiceFile,omitempty"`
	BackgroundMusic  string            `json:"bgm,omitempty"`
	Effect           string            `json:"effect,omitempty"`
	Choices          []Choice          `json:"choices,omitempty"`
	Conditions       []Condition       `json:"conditions,omitempty"`
	Effects          []Effect          `json:"effects,omitempty"`
	AlternativeTexts []ConditionalText `json:"alternativeTexts,omitempty"`
}

// ConditionalText overrides a line's speaker and text when its conditions
// pass. Entries are evaluated in order; the first passing entry wins.
type ConditionalText struct {
	Conditions []Condition `json:"conditions,omitempty"`
	Text       Text        `json:"text,omitempty"`
	Speaker    string      `json:"speaker,omitempty"`
}

// ChoiceCost is the price of taking a choice. A choice is only shown when
// the player can afford it, and the cost is deducted on selection.
type ChoiceCost struct {
	Currency int64          `json:"currency,omitempty"`
	Items    map[string]int `json:"items,omitempty"`
}

// IsFree reports whether the cost demands nothing.
func (c *ChoiceCost) IsFree() bool {
	return c == nil || (c.Currency == 0 && len(c.Items) == 0)
}

// Choice is a player-selectable branch point.
//
// Conditions is a legacy gate kept for old scripts; visibility is governed
// solely by DisplayConditions and affordability.
type Choice struct {
	ID                string      `json:"id,omitempty"`
	Text              Text        `json:"text"`
	NextScriptIndex   int         `json:"nextScriptIndex"`
	Conditions        []Condition `json:"conditions,omitempty"`
	DisplayConditions []Condition `json:"displayConditions,omitempty"`
	Effects           []Effect    `json:"effects,omitempty"`
	Cost              *ChoiceCost `json:"cost,omitempty"`
}
