// Package i18n holds the UI string table. Strings are looked up by
// (section, key); a missing translation falls back to English, then to
// the key itself so a gap never blanks a label.
package i18n

import (
	"os"
	"strings"
	"sync"
)

type Language string

const (
	English Language = "english"
	Kannada Language = "kannada"
	Hindi   Language = "hindi"
)

// Parse maps a user-supplied language name to a supported Language.
// Unknown values fall back to English.
func Parse(s string) Language {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kannada", "kn":
		return Kannada
	case "hindi", "hi":
		return Hindi
	default:
		return English
	}
}

var (
	mu      sync.RWMutex
	current = English
)

// SetLanguage switches the active language for all subsequent lookups.
func SetLanguage(l Language) {
	mu.Lock()
	current = l
	mu.Unlock()
}

// Current returns the active language.
func Current() Language {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// FromEnv sets the active language from LERNIX_LANG if present.
func FromEnv() {
	if v := os.Getenv("LERNIX_LANG"); v != "" {
		SetLanguage(Parse(v))
	}
}

// T returns the string for (section, key) in the active language.
func T(section, key string) string {
	lang := Current()
	if s, ok := lookup(lang, section, key); ok {
		return s
	}
	if s, ok := lookup(English, section, key); ok {
		return s
	}
	return key
}

func lookup(lang Language, section, key string) (string, bool) {
	sections, ok := table[lang]
	if !ok {
		return "", false
	}
	keys, ok := sections[section]
	if !ok {
		return "", false
	}
	s, ok := keys[key]
	return s, ok
}

var table = map[Language]map[string]map[string]string{
	English: {
		"menu": {
			"newLesson": "NEW LESSON",
			"myLessons": "MY LESSONS",
			"history":   "HISTORY",
			"profile":   "PROFILE",
			"signOut":   "SIGN OUT",
			"exit":      "EXIT",
		},
		"common": {
			"tagline":     "Learn anything, one lesson at a time",
			"loading":     "Loading...",
			"notSignedIn": "not signed in",
		},
	},
	Kannada: {
		"menu": {
			"newLesson": "ಹೊಸ ಪಾಠ",
			"myLessons": "ನನ್ನ ಪಾಠಗಳು",
			"history":   "ಇತಿಹಾಸ",
			"profile":   "ಪ್ರೊಫೈಲ್",
			"signOut":   "ಸೈನ್ ಔಟ್",
			"exit":      "ನಿರ್ಗಮಿಸಿ",
		},
		"common": {
			"tagline":     "ಏನನ್ನಾದರೂ ಕಲಿಯಿರಿ, ಒಂದೊಂದು ಪಾಠವಾಗಿ",
			"loading":     "ಲೋಡ್ ಆಗುತ್ತಿದೆ...",
			"notSignedIn": "ಸೈನ್ ಇನ್ ಆಗಿಲ್ಲ",
		},
	},
	Hindi: {
		"menu": {
			"newLesson": "नया पाठ",
			"myLessons": "मेरे पाठ",
			"history":   "इतिहास",
			"profile":   "प्रोफ़ाइल",
			"signOut":   "साइन आउट",
			"exit":      "बाहर निकलें",
		},
		"common": {
			"tagline":     "कुछ भी सीखें, एक समय में एक पाठ",
			"loading":     "लोड हो रहा है...",
			"notSignedIn": "साइन इन नहीं",
		},
	},
}
