package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/astro-booking/internal/api/dto"
	"github.com/spec-kit/astro-booking/internal/preferences"
	apperrors "github.com/spec-kit/astro-booking/pkg/util"
)

// CookieOptions controls how preference cookies are written.
type CookieOptions struct {
	Secure bool
	// MaxAge is in seconds; zero makes session cookies.
	MaxAge int
}

// PreferencesHandler stores the visitor's language and theme in cookies.
type PreferencesHandler struct {
	resolver *preferences.Resolver
	cookies  CookieOptions
}

// NewPreferencesHandler constructs handler.
func NewPreferencesHandler(resolver *preferences.Resolver, cookies CookieOptions) *PreferencesHandler {
	return &PreferencesHandler{resolver: resolver, cookies: cookies}
}

// Get handles GET /api/preferences.
func (h *PreferencesHandler) Get(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": currentState(c, h.resolver)})
}

// Update handles PUT /api/preferences.
func (h *PreferencesHandler) Update(c *fiber.Ctx) error {
	var req dto.PreferencesUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Language == nil && req.Theme == nil {
		return apperrors.NewValidationError("language or theme required", nil)
	}

	state := currentState(c, h.resolver)
	invalid := map[string]any{}
	if req.Language != nil {
		if lang, ok := preferences.ParseLanguage(*req.Language); ok {
			state.Language = lang
		} else {
			invalid["language"] = *req.Language
		}
	}
	if req.Theme != nil {
		if theme, ok := preferences.ParseTheme(*req.Theme); ok {
			state.Theme = theme
		} else {
			invalid["theme"] = *req.Theme
		}
	}
	if len(invalid) > 0 {
		return apperrors.NewValidationError("unsupported preference value", invalid)
	}

	return h.save(c, state)
}

// ToggleLanguage handles POST /api/preferences/language/toggle.
func (h *PreferencesHandler) ToggleLanguage(c *fiber.Ctx) error {
	return h.save(c, currentState(c, h.resolver).ToggleLanguage())
}

// ToggleTheme handles POST /api/preferences/theme/toggle.
func (h *PreferencesHandler) ToggleTheme(c *fiber.Ctx) error {
	return h.save(c, currentState(c, h.resolver).ToggleTheme())
}

func (h *PreferencesHandler) save(c *fiber.Ctx, state preferences.State) error {
	state = state.Normalize(h.resolver.Defaults())
	h.setCookie(c, preferences.LanguageCookie, string(state.Language))
	h.setCookie(c, preferences.ThemeCookie, string(state.Theme))
	return c.JSON(fiber.Map{"data": state})
}

func (h *PreferencesHandler) setCookie(c *fiber.Ctx, name, value string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   h.cookies.MaxAge,
		Secure:   h.cookies.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// currentState resolves preferences for the request. An explicit ?lang=
// query parameter wins over cookies.
func currentState(c *fiber.Ctx, resolver *preferences.Resolver) preferences.State {
	state := resolver.Resolve(c.Cookies(preferences.LanguageCookie), c.Cookies(preferences.ThemeCookie), c.Get(fiber.HeaderAcceptLanguage))
	if lang, ok := preferences.ParseLanguage(c.Query("lang")); ok {
		state.Language = lang
	}
	return state
}
