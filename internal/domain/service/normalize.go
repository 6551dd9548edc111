package service

import (
	"regexp"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/registry"
)

var (
	nonWordRe    = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// NormalizeURL returns the blacklist identity of a URL: lower-case host and
// path without scheme, query, fragment or trailing slash. Unparseable input
// falls back to the lower-cased string with any scheme cut off.
func NormalizeURL(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return ""
	}
	u, err := model.ParseURL(raw)
	if err != nil {
		if _, rest, ok := strings.Cut(raw, "://"); ok {
			raw = rest
		}
		return strings.TrimRight(raw, "/")
	}
	return strings.TrimRight(u.Host+u.EscapedPath(), "/")
}

// ExtractDomain returns the lower-case ASCII host of a URL without "www.".
// It returns "" when the URL has no usable host.
func ExtractDomain(raw string) string {
	u, err := model.ParseURL(raw)
	if err != nil {
		return ""
	}
	return NormalizeHost(u.Hostname())
}

// NormalizeHost lower-cases a host, converts IDNs to ASCII and strips "www.".
func NormalizeHost(host string) string {
	host = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(host)), ".")
	if ascii, err := idna.Lookup.ToASCII(host); err == nil {
		host = ascii
	}
	return strings.TrimPrefix(host, "www.")
}

// RegistrableDomain returns the eTLD+1 of host, or host itself when it has none.
func RegistrableDomain(host string) string {
	d, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return d
}

// NormalizeCompany returns the matching key for a company name: lower case,
// punctuation removed, whitespace collapsed and legal suffixes stripped.
// "Acme Corp." and "ACME CORPORATION" both become "acme".
func NormalizeCompany(name string) string {
	return normalizeCompany(name, registry.Default().CompanySuffixes())
}

func normalizeCompany(name string, suffixes []string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = nonWordRe.ReplaceAllString(n, "")
	n = strings.TrimSpace(whitespaceRe.ReplaceAllString(n, " "))
	for {
		stripped := false
		for _, s := range suffixes {
			if strings.HasSuffix(n, " "+s) {
				n = strings.TrimSpace(strings.TrimSuffix(n, " "+s))
				stripped = true
				break
			}
		}
		if !stripped {
			return n
		}
	}
}
