// Package settings holds the persisted user configuration: the API key, the
// persona used to generate text, and a few presentation preferences carried
// over from the desktop shell.
package settings

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Settings is the single global configuration document. JSON field names
// match the on-disk settings.json format of the desktop releases so existing
// data files keep working.
type Settings struct {
	APIKey          string `json:"apiKey"`
	UserName        string `json:"userName"`
	UserPrompt      string `json:"userPrompt"`
	CharacterPrompt string `json:"characterPrompt"`
	Relationship    string `json:"relationship"`
	FormalSpeech    bool   `json:"formalSpeech"`
	AlwaysOnTop     bool   `json:"alwaysOnTop"`
	SpellCheck      bool   `json:"spellCheck"`
	LetterFont      string `json:"letterFont"`
}

// Default returns the hardcoded fallback configuration.
func Default() Settings {
	return Settings{
		FormalSpeech: true,
		AlwaysOnTop:  true,
		LetterFont:   "NanumSquare",
	}
}

// Decode reads a settings document. Missing or unknown fields keep their
// defaults; a document that does not parse at all falls back to Default.
func Decode(data []byte) Settings {
	s := Default()
	if len(data) == 0 {
		return s
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return Default()
	}
	return s
}

// HasAPIKey reports whether a generation key is configured.
func (s Settings) HasAPIKey() bool {
	return strings.TrimSpace(s.APIKey) != ""
}

// Fields lists the settable field names in display order.
func Fields() []string {
	return []string{
		"apiKey", "userName", "userPrompt", "characterPrompt",
		"relationship", "formalSpeech", "alwaysOnTop", "spellCheck",
		"letterFont",
	}
}

// Set assigns a field by its JSON name. Boolean fields accept the usual
// strconv forms.
func (s *Settings) Set(field, value string) error {
	switch field {
	case "apiKey":
		s.APIKey = strings.TrimSpace(value)
	case "userName":
		s.UserName = strings.TrimSpace(value)
	case "userPrompt":
		s.UserPrompt = strings.TrimSpace(value)
	case "characterPrompt":
		s.CharacterPrompt = strings.TrimSpace(value)
	case "relationship":
		s.Relationship = strings.TrimSpace(value)
	case "letterFont":
		s.LetterFont = strings.TrimSpace(value)
	case "formalSpeech", "alwaysOnTop", "spellCheck":
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("settings: %s wants true or false: %w", field, err)
		}
		switch field {
		case "formalSpeech":
			s.FormalSpeech = b
		case "alwaysOnTop":
			s.AlwaysOnTop = b
		case "spellCheck":
			s.SpellCheck = b
		}
	default:
		known := Fields()
		sort.Strings(known)
		return fmt.Errorf("settings: unknown field %q (one of %s)",
			field, strings.Join(known, ", "))
	}
	return nil
}

// Get returns the display value for a field, masking the API key.
func (s Settings) Get(field string) string {
	switch field {
	case "apiKey":
		return MaskKey(s.APIKey)
	case "userName":
		return s.UserName
	case "userPrompt":
		return s.UserPrompt
	case "characterPrompt":
		return s.CharacterPrompt
	case "relationship":
		return s.Relationship
	case "formalSpeech":
		return strconv.FormatBool(s.FormalSpeech)
	case "alwaysOnTop":
		return strconv.FormatBool(s.AlwaysOnTop)
	case "spellCheck":
		return strconv.FormatBool(s.SpellCheck)
	case "letterFont":
		return s.LetterFont
	}
	return ""
}

// MaskKey hides all but the tail of a secret for display.
func MaskKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
