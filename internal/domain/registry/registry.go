// Package registry holds the immutable reference data used by the signal
// analyzers: keyword lists, known employers, trusted job platforms and
// suspicious URL traits.
package registry

import (
	_ "embed"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed registry.yaml
var defaultData []byte

// KnownCompany is a well-known legitimate employer.
type KnownCompany struct {
	Name      string `yaml:"name"`
	Industry  string `yaml:"industry"`
	Employees string `yaml:"employees"`
}

type document struct {
	Keywords struct {
		HighRisk   []string `yaml:"high_risk"`
		MediumRisk []string `yaml:"medium_risk"`
		Positive   []string `yaml:"positive"`
	} `yaml:"keywords"`
	Contact struct {
		ChatApps             []string `yaml:"chat_apps"`
		PersonalEmailDomains []string `yaml:"personal_email_domains"`
		BusinessContactTerms []string `yaml:"business_contact_terms"`
	} `yaml:"contact"`
	Companies struct {
		Placeholders       []string       `yaml:"placeholders"`
		Suffixes           []string       `yaml:"suffixes"`
		SuspiciousPatterns []string       `yaml:"suspicious_patterns"`
		Known              []KnownCompany `yaml:"known"`
	} `yaml:"companies"`
	Domains struct {
		Trusted          []string `yaml:"trusted"`
		SuspiciousTLDs   []string `yaml:"suspicious_tlds"`
		Shorteners       []string `yaml:"shorteners"`
		ScamURLPatterns  []string `yaml:"scam_url_patterns"`
		BudgetRegistrars []string `yaml:"budget_registrars"`
	} `yaml:"domains"`
}

// Pattern is a compiled regular expression with its source text.
type Pattern struct {
	Source string
	re     *regexp.Regexp
}

// MatchString reports whether s contains a match.
func (p Pattern) MatchString(s string) bool { return p.re.MatchString(s) }

// Registry is safe for concurrent use. Accessors return copies.
type Registry struct {
	highRisk             []string
	mediumRisk           []string
	positive             []string
	chatApps             []string
	personalEmailDomains []string
	businessContactTerms []string
	placeholders         map[string]struct{}
	suffixes             []string
	suspiciousCompany    []Pattern
	known                []KnownCompany
	trusted              []string
	suspiciousTLDs       map[string]struct{}
	shorteners           []string
	scamURL              []Pattern
	budgetRegistrars     []string
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry built from the embedded data. It panics if
// the embedded document is invalid, which the package tests rule out.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := Parse(defaultData)
		if err != nil {
			panic(fmt.Sprintf("registry: embedded data is invalid: %v", err))
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Parse builds a registry from a YAML document.
func Parse(data []byte) (*Registry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse registry: %w", err)
	}

	suspiciousCompany, err := compileAll(doc.Companies.SuspiciousPatterns)
	if err != nil {
		return nil, err
	}
	scamURL, err := compileAll(doc.Domains.ScamURLPatterns)
	if err != nil {
		return nil, err
	}

	known := make([]KnownCompany, 0, len(doc.Companies.Known))
	for _, k := range doc.Companies.Known {
		k.Name = strings.ToLower(strings.TrimSpace(k.Name))
		if k.Name == "" {
			return nil, fmt.Errorf("registry: known company with empty name")
		}
		known = append(known, k)
	}

	tlds := make(map[string]struct{}, len(doc.Domains.SuspiciousTLDs))
	for _, t := range lowerAll(doc.Domains.SuspiciousTLDs) {
		tlds[strings.TrimPrefix(t, ".")] = struct{}{}
	}
	placeholders := make(map[string]struct{}, len(doc.Companies.Placeholders))
	for _, p := range lowerAll(doc.Companies.Placeholders) {
		placeholders[p] = struct{}{}
	}

	// Longest suffix first so "corporation" wins over "corp".
	suffixes := lowerAll(doc.Companies.Suffixes)
	slices.SortStableFunc(suffixes, func(a, b string) int { return len(b) - len(a) })

	return &Registry{
		highRisk:             lowerAll(doc.Keywords.HighRisk),
		mediumRisk:           lowerAll(doc.Keywords.MediumRisk),
		positive:             lowerAll(doc.Keywords.Positive),
		chatApps:             lowerAll(doc.Contact.ChatApps),
		personalEmailDomains: lowerAll(doc.Contact.PersonalEmailDomains),
		businessContactTerms: lowerAll(doc.Contact.BusinessContactTerms),
		placeholders:         placeholders,
		suffixes:             suffixes,
		suspiciousCompany:    suspiciousCompany,
		known:                known,
		trusted:              lowerAll(doc.Domains.Trusted),
		suspiciousTLDs:       tlds,
		shorteners:           lowerAll(doc.Domains.Shorteners),
		scamURL:              scamURL,
		budgetRegistrars:     lowerAll(doc.Domains.BudgetRegistrars),
	}, nil
}

func compileAll(sources []string) ([]Pattern, error) {
	out := make([]Pattern, 0, len(sources))
	for _, src := range sources {
		re, err := regexp.Compile(src)
		if err != nil {
			return nil, fmt.Errorf("registry: invalid pattern %q: %w", src, err)
		}
		out = append(out, Pattern{Source: src, re: re})
	}
	return out, nil
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (r *Registry) HighRiskKeywords() []string     { return slices.Clone(r.highRisk) }
func (r *Registry) MediumRiskKeywords() []string   { return slices.Clone(r.mediumRisk) }
func (r *Registry) PositiveIndicators() []string   { return slices.Clone(r.positive) }
func (r *Registry) ChatApps() []string             { return slices.Clone(r.chatApps) }
func (r *Registry) PersonalEmailDomains() []string { return slices.Clone(r.personalEmailDomains) }
func (r *Registry) BusinessContactTerms() []string { return slices.Clone(r.businessContactTerms) }
func (r *Registry) CompanySuffixes() []string      { return slices.Clone(r.suffixes) }
func (r *Registry) SuspiciousCompanyPatterns() []Pattern {
	return slices.Clone(r.suspiciousCompany)
}
func (r *Registry) KnownCompanies() []KnownCompany { return slices.Clone(r.known) }
func (r *Registry) TrustedDomains() []string       { return slices.Clone(r.trusted) }
func (r *Registry) Shorteners() []string           { return slices.Clone(r.shorteners) }
func (r *Registry) ScamURLPatterns() []Pattern     { return slices.Clone(r.scamURL) }
func (r *Registry) BudgetRegistrars() []string     { return slices.Clone(r.budgetRegistrars) }

// IsPlaceholderCompany reports whether name is a stand-in for "no company".
func (r *Registry) IsPlaceholderCompany(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return true
	}
	_, ok := r.placeholders[n]
	return ok
}

// IsSuspiciousTLD reports whether the bare TLD (no dot) is on the list.
func (r *Registry) IsSuspiciousTLD(tld string) bool {
	_, ok := r.suspiciousTLDs[strings.TrimPrefix(strings.ToLower(tld), ".")]
	return ok
}

// TrustedPlatform returns the trusted entry host matches, on a label
// boundary, or "" when none does.
func (r *Registry) TrustedPlatform(host string) string {
	return matchHostSuffix(r.trusted, host)
}

// Shortener returns the shortener host matches, or "".
func (r *Registry) Shortener(host string) string {
	return matchHostSuffix(r.shorteners, host)
}

func matchHostSuffix(list []string, host string) string {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	for _, d := range list {
		if host == d || strings.HasSuffix(host, "."+d) {
			return d
		}
	}
	return ""
}
