// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

// Project is one entry of the portfolio listing.
// Href and ImgSrc are optional: nil means nothing is rendered for them.
type Project struct {
	Title       string  `koanf:"title" json:"title"`
	Description string  `koanf:"description" json:"description"`
	Href        *string `koanf:"href" json:"href,omitempty"`
	ImgSrc      *string `koanf:"img_src" json:"imgSrc,omitempty"`
}

// Slug derives the lookup key of a project from its title,
// e.g. "Brain Bleeding Detector" -> "brain-bleeding-detector".
func (p Project) Slug() string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(p.Title)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Validate reports the first violated invariant of p.
func (p Project) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidProject)
	}
	if strings.TrimSpace(p.Description) == "" {
		return fmt.Errorf("%w: %q: missing description", ErrInvalidProject, p.Title)
	}
	if p.Slug() == "" {
		return fmt.Errorf("%w: %q: title has no letters or digits", ErrInvalidProject, p.Title)
	}
	if p.Href != nil {
		if err := validateLink(*p.Href); err != nil {
			return fmt.Errorf("%w: %q: href: %v", ErrInvalidProject, p.Title, err)
		}
	}
	if p.ImgSrc != nil {
		if err := validateAsset(*p.ImgSrc); err != nil {
			return fmt.Errorf("%w: %q: imgSrc: %v", ErrInvalidProject, p.Title, err)
		}
	}
	return nil
}

// Ref returns a pointer to s for populating optional fields.
func Ref(s string) *string { return &s }

// validateLink accepts absolute http(s) URLs with a host.
func validateLink(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("empty value; omit the field instead")
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

// validateAsset accepts a rooted site path or an absolute http(s) URL.
func validateAsset(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("empty value; omit the field instead")
	}
	if strings.ContainsAny(raw, " \t\r\n") {
		return fmt.Errorf("contains whitespace")
	}
	if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") {
		if _, err := url.Parse(raw); err != nil {
			return err
		}
		return nil
	}
	return validateLink(raw)
}
