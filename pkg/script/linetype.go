package script

import (
	"encoding/json"
	"strconv"
	"strings"
)

// LineType is the kind of a script line. The authoring format historically
// serialized these as integers, later as strings; both decode.
type LineType int

const (
	LineDialogue LineType = iota
	LineNarration
	LineChoice
	LineBackground
	LineCharacter
	LineEffect
	LineMusic
	LineVideo
	LineLive2D
	LineJump
	LineConditional
	LineUnknown
)

var lineTypeNames = map[LineType]string{
	LineDialogue:    "Dialogue",
	LineNarration:   "Narration",
	LineChoice:      "Choice",
	LineBackground:  "Background",
	LineCharacter:   "Character",
	LineEffect:      "Effect",
	LineMusic:       "Music",
	LineVideo:       "Video",
	LineLive2D:      "Live2D",
	LineJump:        "Jump",
	LineConditional: "Conditional",
	LineUnknown:     "Unknown",
}

func (t LineType) String() string {
	if name, ok := lineTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// ParseLineType maps a type name to its LineType, case-insensitively.
// Unrecognized names map to LineUnknown.
func ParseLineType(s string) LineType {
	for t, name := range lineTypeNames {
		if strings.EqualFold(name, s) {
			return t
		}
	}
	return LineUnknown
}

// MarshalJSON writes the type as its string name.
func (t LineType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts both string names and legacy integer values.
func (t *LineType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		// Bare digits inside a string are also legacy encodings.
		if n, err := strconv.Atoi(s); err == nil {
			*t = fromOrdinal(n)
			return nil
		}
		*t = ParseLineType(s)
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = fromOrdinal(n)
	return nil
}

func fromOrdinal(n int) LineType {
	if n < 0 || n > int(LineConditional) {
		return LineUnknown
	}
	return LineType(n)
}
