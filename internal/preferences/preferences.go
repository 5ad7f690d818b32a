// Package preferences holds the visitor's language and theme selection.
package preferences

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/spec-kit/astro-booking/internal/domain"
)

const (
	LanguageCookie = "site_lang"
	ThemeCookie    = "site_theme"
)

var (
	supportedLanguages = []language.Tag{language.English, language.Hindi}
	languageMatcher    = language.NewMatcher(supportedLanguages)
)

// State is the visitor's current UI selection.
type State struct {
	Language domain.Language `json:"language"`
	Theme    domain.Theme    `json:"theme"`
}

// ToggleLanguage switches between English and Hindi.
func (s State) ToggleLanguage() State {
	if s.Language == domain.LanguageHindi {
		s.Language = domain.LanguageEnglish
	} else {
		s.Language = domain.LanguageHindi
	}
	return s
}

// ToggleTheme switches between light and dark.
func (s State) ToggleTheme() State {
	if s.Theme == domain.ThemeDark {
		s.Theme = domain.ThemeLight
	} else {
		s.Theme = domain.ThemeDark
	}
	return s
}

// Normalize replaces unknown values with the given fallback.
func (s State) Normalize(fallback State) State {
	if lang, ok := ParseLanguage(string(s.Language)); ok {
		s.Language = lang
	} else {
		s.Language = fallback.Language
	}
	if theme, ok := ParseTheme(string(s.Theme)); ok {
		s.Theme = theme
	} else {
		s.Theme = fallback.Theme
	}
	return s
}

// ParseLanguage accepts "en"/"hi" in any case.
func ParseLanguage(raw string) (domain.Language, bool) {
	switch domain.Language(strings.ToLower(strings.TrimSpace(raw))) {
	case domain.LanguageEnglish:
		return domain.LanguageEnglish, true
	case domain.LanguageHindi:
		return domain.LanguageHindi, true
	}
	return "", false
}

// ParseTheme accepts "light"/"dark" in any case.
func ParseTheme(raw string) (domain.Theme, bool) {
	switch domain.Theme(strings.ToLower(strings.TrimSpace(raw))) {
	case domain.ThemeLight:
		return domain.ThemeLight, true
	case domain.ThemeDark:
		return domain.ThemeDark, true
	}
	return "", false
}

// MatchAcceptLanguage picks the best supported language for an
// Accept-Language header value.
func MatchAcceptLanguage(header string) (domain.Language, bool) {
	if strings.TrimSpace(header) == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	tag, _, confidence := languageMatcher.Match(tags...)
	if confidence == language.No {
		return "", false
	}
	base, _ := tag.Base()
	return ParseLanguage(base.String())
}

// Resolver derives State from request inputs.
type Resolver struct {
	defaults State
}

// NewResolver builds a resolver; invalid defaults fall back to en/light.
func NewResolver(defaultLanguage, defaultTheme string) *Resolver {
	lang, ok := ParseLanguage(defaultLanguage)
	if !ok {
		lang = domain.LanguageEnglish
	}
	theme, ok := ParseTheme(defaultTheme)
	if !ok {
		theme = domain.ThemeLight
	}
	return &Resolver{defaults: State{Language: lang, Theme: theme}}
}

// Defaults returns the configured fallback state.
func (r *Resolver) Defaults() State {
	return r.defaults
}

// Resolve prefers explicit cookie values, then Accept-Language, then defaults.
func (r *Resolver) Resolve(langCookie, themeCookie, acceptLanguage string) State {
	state := r.defaults
	if lang, ok := ParseLanguage(langCookie); ok {
		state.Language = lang
	} else if lang, ok := MatchAcceptLanguage(acceptLanguage); ok {
		state.Language = lang
	}
	if theme, ok := ParseTheme(themeCookie); ok {
		state.Theme = theme
	}
	return state
}
