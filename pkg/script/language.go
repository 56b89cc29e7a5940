package script

// Language identifies one of the game's supported script languages.
type Language string

const (
	Korean   Language = "Korean"
	English  Language = "English"
	Japanese Language = "Japanese"
)

// fallbackOrder fixes the lookup order when the requested language is absent,
// so text resolution stays deterministic regardless of map iteration order.
var fallbackOrder = []Language{Korean, English, Japanese}

// Text is a localized string keyed by language.
type Text map[Language]string

// Resolve returns the string for lang, falling back through the other
// languages in a fixed order. Returns "" when the map is empty.
func (t Text) Resolve(lang Language) string {
	if s, ok := t[lang]; ok {
		return s
	}
	for _, l := range fallbackOrder {
		if s, ok := t[l]; ok {
			return s
		}
	}
	return ""
}

// IsEmpty reports whether the text has no entries.
func (t Text) IsEmpty() bool {
	return len(t) == 0
}
