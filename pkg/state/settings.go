package state

import "github.com/wwoosshh/Nortoria/pkg/script"

// Action is a logical input action mapped from a configured key binding.
type Action string

const (
	ActionNextScript   Action = "NextScript"
	ActionFastForward  Action = "FastForward"
	ActionShowMenu     Action = "ShowMenu"
	ActionShowLog      Action = "ShowLog"
	ActionShowSettings Action = "ShowSettings"
	ActionScreenshot   Action = "Screenshot"
	ActionSkip         Action = "Skip"
	ActionAuto         Action = "Auto"
)

// GameSettings holds the settings fields the interpreter reads. The full
// settings screen owns many more; these are the ones that change engine
// behavior.
type GameSettings struct {
	GameLanguage    script.Language   `json:"gameLanguage"`
	VoiceLanguage   script.Language   `json:"voiceLanguage"`
	KeyBindings     map[Action]string `json:"keyBindings"`
	AutoPlaySeconds int               `json:"autoPlaySeconds"`
}

// DefaultSettings returns the first-run settings.
func DefaultSettings() GameSettings {
	return GameSettings{
		GameLanguage:    script.Korean,
		VoiceLanguage:   script.Korean,
		KeyBindings:     DefaultKeyBindings(),
		AutoPlaySeconds: 3,
	}
}

// DefaultKeyBindings is the original binding table.
func DefaultKeyBindings() map[Action]string {
	return map[Action]string{
		ActionNextScript:   "Space",
		ActionFastForward:  "Q",
		ActionShowMenu:     "Escape",
		ActionShowLog:      "L",
		ActionShowSettings: "S",
		ActionScreenshot:   "F12",
		ActionSkip:         "Ctrl",
		ActionAuto:         "A",
	}
}

// ActionForKey resolves a key name to its bound action. The second return
// is false when the key is unbound.
func (s GameSettings) ActionForKey(key string) (Action, bool) {
	for action, bound := range s.KeyBindings {
		if bound == key {
			return action, true
		}
	}
	return "", false
}
