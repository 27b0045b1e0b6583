package model

import (
	"fmt"
	"net/url"
	"strings"
)

// Profile holds the identity of the site author.
type Profile struct {
	FirstName string `koanf:"first_name" json:"firstName"`
	LastName  string `koanf:"last_name" json:"lastName"`
	Avatar    string `koanf:"avatar" json:"avatar"`
	Bio       string `koanf:"bio" json:"bio"`
	Website   string `koanf:"website" json:"website"`
	Social    Social `koanf:"social" json:"social"`
}

// Name is the composed display name.
func (p Profile) Name() string {
	return p.FirstName + p.LastName
}

// Validate checks that the profile can be rendered.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.FirstName) == "" {
		return fmt.Errorf("%w: missing first name", ErrInvalidProfile)
	}
	if p.Avatar != "" {
		if err := validateLink(p.Avatar); err != nil {
			return fmt.Errorf("%w: avatar: %v", ErrInvalidProfile, err)
		}
	}
	if p.Website != "" {
		if err := validateLink(p.Website); err != nil {
			return fmt.Errorf("%w: website: %v", ErrInvalidProfile, err)
		}
	}
	return nil
}

// Social holds one optional username per supported platform.
// nil means not provided; a pointer to "" means provided but empty.
// Neither produces a link.
type Social struct {
	GitHub    *string `koanf:"github" json:"github,omitempty"`
	Twitter   *string `koanf:"twitter" json:"twitter,omitempty"`
	LinkedIn  *string `koanf:"linkedin" json:"linkedin,omitempty"`
	Instagram *string `koanf:"instagram" json:"instagram,omitempty"`
}

// SocialLink is a renderable link to an author's social profile.
type SocialLink struct {
	Platform string `json:"platform"`
	Handle   string `json:"handle"`
	URL      string `json:"url"`
}

// Links returns the links to render, in fixed platform order.
func (s Social) Links() []SocialLink {
	platforms := []struct {
		name   string
		handle *string
		base   string
	}{
		{"github", s.GitHub, "https://github.com/"},
		{"twitter", s.Twitter, "https://twitter.com/"},
		{"linkedin", s.LinkedIn, "https://www.linkedin.com/in/"},
		{"instagram", s.Instagram, "https://www.instagram.com/"},
	}

	links := make([]SocialLink, 0, len(platforms))
	for _, p := range platforms {
		if p.handle == nil {
			continue
		}
		handle := strings.Trim(strings.TrimSpace(*p.handle), "/")
		if handle == "" {
			continue
		}
		links = append(links, SocialLink{
			Platform: p.name,
			Handle:   handle,
			URL:      p.base + (&url.URL{Path: handle}).EscapedPath(),
		})
	}
	return links
}
