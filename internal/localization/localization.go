// Package localization serves the UI strings and character display names
// the engine and console read. Lookups always return a usable string: the
// requested language first, then Korean, then the key itself.
package localization

import (
	"golang.org/x/text/language"

	"github.com/wwoosshh/Nortoria/pkg/script"
)

// Service implements the engine's Localizer collaborator.
type Service struct{}

// New returns the bundled localization service.
func New() *Service {
	return &Service{}
}

// LocalizedString resolves a UI string key for the given language.
func (s *Service) LocalizedString(key string, lang script.Language) string {
	if table, ok := uiStrings[lang]; ok {
		if v, ok := table[key]; ok {
			return v
		}
	}
	if v, ok := uiStrings[script.Korean][key]; ok {
		return v
	}
	return key
}

// CharacterName resolves a speaker key to a display name.
func (s *Service) CharacterName(key string, lang script.Language) string {
	if table, ok := characterNames[key]; ok {
		if v := table.Resolve(lang); v != "" {
			return v
		}
	}
	return key
}

var matcher = language.NewMatcher([]language.Tag{
	language.Korean, // default
	language.English,
	language.Japanese,
})

// ParseTag maps a BCP 47 tag ("ko", "en-US", "ja") to a script language.
// Unrecognized tags fall back to Korean.
func ParseTag(tag string) script.Language {
	parsed, err := language.Parse(tag)
	if err != nil {
		return script.Korean
	}
	_, index, _ := matcher.Match(parsed)
	switch index {
	case 1:
		return script.English
	case 2:
		return script.Japanese
	default:
		return script.Korean
	}
}
