// Package site composes the localized marketing pages.
package site

import (
	"github.com/spec-kit/astro-booking/internal/domain"
)

// Page names served by the site.
const (
	PageHome        = "home"
	PageAdminSignup = "admin-signup"
)

// Text is a string in every supported language.
type Text map[domain.Language]string

func (t Text) in(lang domain.Language) string {
	if s, ok := t[lang]; ok && s != "" {
		return s
	}
	return t[domain.LanguageEnglish]
}

// Service is a bookable consultation.
type Service struct {
	Slug            string
	Title           Text
	Description     Text
	DurationMinutes int
	PriceINR        int
}

// GalleryImage is one gallery tile.
type GalleryImage struct {
	URL     string
	Caption Text
}

// Contact holds the business contact block.
type Contact struct {
	Phone   string
	Email   string
	Address Text
	Hours   Text
}

// Catalog is the static content of the site.
type Catalog struct {
	HeroTitle    Text
	HeroSubtitle Text
	HeroCTA      Text
	Services     []Service
	BookingTitle Text
	BookingNote  Text
	Gallery      []GalleryImage
	Contact      Contact
	SignupTitle  Text
	SignupNote   Text
}

// Section is a rendered page block.
type Section struct {
	Type    string         `json:"type"`
	Title   string         `json:"title,omitempty"`
	Content map[string]any `json:"content"`
}

// ServiceView is a localized service.
type ServiceView struct {
	Slug            string `json:"slug"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
	PriceINR        int    `json:"price_inr"`
}

// HasService reports whether slug is a bookable service.
func (c *Catalog) HasService(slug string) bool {
	for _, s := range c.Services {
		if s.Slug == slug {
			return true
		}
	}
	return false
}

// ServiceViews localizes the service list.
func (c *Catalog) ServiceViews(lang domain.Language) []ServiceView {
	views := make([]ServiceView, 0, len(c.Services))
	for _, s := range c.Services {
		views = append(views, ServiceView{
			Slug:            s.Slug,
			Title:           s.Title.in(lang),
			Description:     s.Description.in(lang),
			DurationMinutes: s.DurationMinutes,
			PriceINR:        s.PriceINR,
		})
	}
	return views
}

// Page assembles the sections of name. ok is false for unknown pages.
func (c *Catalog) Page(name string, lang domain.Language) ([]Section, bool) {
	switch name {
	case PageHome:
		return []Section{
			c.hero(lang),
			{Type: "services", Content: map[string]any{"items": c.ServiceViews(lang)}},
			c.booking(lang),
			c.gallery(lang),
			c.contact(lang),
		}, true
	case PageAdminSignup:
		return []Section{{
			Type:  "admin_signup",
			Title: c.SignupTitle.in(lang),
			Content: map[string]any{
				"note":         c.SignupNote.in(lang),
				"fields":       []string{"firstName", "lastName", "email", "password", "role_name"},
				"token_header": "X-Admin-Creation-Token",
				"endpoint":     "/api/admin/signup",
			},
		}}, true
	}
	return nil, false
}

func (c *Catalog) hero(lang domain.Language) Section {
	return Section{
		Type:  "hero",
		Title: c.HeroTitle.in(lang),
		Content: map[string]any{
			"subtitle": c.HeroSubtitle.in(lang),
			"cta":      c.HeroCTA.in(lang),
		},
	}
}

func (c *Catalog) booking(lang domain.Language) Section {
	slugs := make([]string, 0, len(c.Services))
	for _, s := range c.Services {
		slugs = append(slugs, s.Slug)
	}
	return Section{
		Type:  "booking",
		Title: c.BookingTitle.in(lang),
		Content: map[string]any{
			"note":     c.BookingNote.in(lang),
			"services": slugs,
			"endpoint": "/api/bookings",
		},
	}
}

func (c *Catalog) gallery(lang domain.Language) Section {
	images := make([]map[string]string, 0, len(c.Gallery))
	for _, img := range c.Gallery {
		images = append(images, map[string]string{"url": img.URL, "caption": img.Caption.in(lang)})
	}
	return Section{Type: "gallery", Content: map[string]any{"images": images}}
}

func (c *Catalog) contact(lang domain.Language) Section {
	return Section{
		Type: "contact",
		Content: map[string]any{
			"phone":   c.Contact.Phone,
			"email":   c.Contact.Email,
			"address": c.Contact.Address.in(lang),
			"hours":   c.Contact.Hours.in(lang),
		},
	}
}
