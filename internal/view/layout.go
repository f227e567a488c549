package view

import "time"

const (
	logoPath    = "/storage/v1/object/public/Logo/logo.svg"
	ogImagePath = "/storage/v1/object/public/Logo/og-image.png"

	defaultTitle       = "Guild | Find Verified Contractors Near You"
	defaultDescription = "Guild connects you with verified, licensed contractors. No lead fees, no commissions. Post a job and get matched with pros near you."
	ogDescription      = "Post a job. Get matched with verified contractors. No lead fees. No commissions. Direct connections only."
)

// Site carries the settings shared by every page
type Site struct {
	BaseURL      string
	AssetOrigin  string
	ContactEmail string
	AnalyticsID  string
	Year         int
}

// LogoURL is the public logo asset
func (s Site) LogoURL() string {
	return s.AssetOrigin + logoPath
}

// OGImageURL is the social preview image
func (s Site) OGImageURL() string {
	return s.AssetOrigin + ogImagePath
}

func (s Site) year() int {
	if s.Year > 0 {
		return s.Year
	}
	return time.Now().Year()
}

func (s Site) analyticsScriptURL() string {
	return "https://www.googletagmanager.com/gtag/js?id=" + s.AnalyticsID
}

// Page is the per-page head metadata
type Page struct {
	Title       string
	Description string
	Path        string
	NoIndex     bool
}

func (p Page) title() string {
	if p.Title == "" {
		return defaultTitle
	}
	return p.Title
}

func (p Page) description() string {
	if p.Description == "" {
		return defaultDescription
	}
	return p.Description
}

func (p Page) robots() string {
	if p.NoIndex {
		return "noindex, nofollow"
	}
	return "index, follow"
}

func (p Page) canonicalPath() string {
	if p.Path == "" {
		return "/"
	}
	return p.Path
}
