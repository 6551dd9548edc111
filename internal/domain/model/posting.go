package model

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrEmptyPosting is returned when a posting carries no usable field at all.
var ErrEmptyPosting = errors.New("at least one of title, description, company or url is required")

// Posting is the job advertisement under assessment.
type Posting struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Company     string `json:"company"`
	URL         string `json:"url,omitempty"`
	Location    string `json:"location,omitempty"`
}

// NewPosting validates and trims the caller-supplied fields.
func NewPosting(title, description, company, rawURL string) (Posting, error) {
	p := Posting{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Company:     strings.TrimSpace(company),
		URL:         strings.TrimSpace(rawURL),
	}
	if p.Title == "" && p.Description == "" && p.Company == "" && p.URL == "" {
		return Posting{}, ErrEmptyPosting
	}
	if p.URL != "" {
		if _, err := ParseURL(p.URL); err != nil {
			return Posting{}, err
		}
	}
	return p, nil
}

// Text joins the free-text fields the way the lexical analysis reads them.
func (p Posting) Text() string {
	return strings.TrimSpace(p.Title + " " + p.Description + " " + p.Company)
}

// HasURL reports whether the posting links somewhere.
func (p Posting) HasURL() bool { return p.URL != "" }

// HasCompany reports whether a company name was supplied.
func (p Posting) HasCompany() bool { return p.Company != "" }

// ParseURL parses a user-supplied URL, assuming https when no scheme is given.
// The result always has a host.
func ParseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("url is empty")
	}
	lower := strings.ToLower(raw)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		if strings.Contains(raw, "://") {
			return nil, fmt.Errorf("unsupported url scheme: %s", raw)
		}
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("malformed url %q: %w", raw, err)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("url %q has no host", raw)
	}
	return u, nil
}
