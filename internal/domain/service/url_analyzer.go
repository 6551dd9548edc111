package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/registry"
	"github.com/jobguard/jobguard/internal/domain/valueobject"
)

const (
	trustedPlatformCredit = 30
	suspiciousTLDPenalty  = 25
	shortenerPenalty      = 40
	scamPatternPenalty    = 20
	criticalAgePenalty    = 45
	highAgePenalty        = 35
	mediumAgePenalty      = 15
	unresolvedPenalty     = 30
)

var urlRecommendations = map[string]string{
	"critical": "Do NOT apply to this job - high likelihood of scam",
	"high":     "Exercise extreme caution - verify company independently",
	"medium":   "Verify company contact info before sharing personal data",
	"low":      "Lower risk, but always research the company",
}

// URLAnalyzer scores a posting URL on domain trust and reputation.
type URLAnalyzer struct {
	reg       *registry.Registry
	inspector *DomainInspector
}

// NewURLAnalyzer creates a URLAnalyzer. inspector may be nil to skip network checks.
func NewURLAnalyzer(reg *registry.Registry, inspector *DomainInspector) *URLAnalyzer {
	return &URLAnalyzer{reg: reg, inspector: inspector}
}

// Analyze returns an error only for a malformed URL.
func (a *URLAnalyzer) Analyze(ctx context.Context, rawURL string) (model.URLAnalysis, error) {
	u, err := model.ParseURL(rawURL)
	if err != nil {
		return model.URLAnalysis{}, err
	}

	domain := NormalizeHost(u.Hostname())
	labels := strings.Split(domain, ".")
	result := model.URLAnalysis{
		URL:         rawURL,
		Domain:      domain,
		Registrable: RegistrableDomain(domain),
		TLD:         labels[len(labels)-1],
		Flags:       make([]model.Flag, 0),
		Positive:    make([]string, 0),
	}
	score := 0
	flag := func(points int, sev valueobject.RiskLevel, msg string) {
		score += points
		result.Flags = append(result.Flags, model.Flag{Message: msg, Severity: sev})
	}

	// A trusted match offsets later penalties but never suppresses them.
	if platform := a.reg.TrustedPlatform(domain); platform != "" {
		result.Trusted = true
		result.TrustedPlatform = platform
		score -= trustedPlatformCredit
		result.Positive = append(result.Positive, "Trusted job platform: "+platform)
	}

	if a.reg.IsSuspiciousTLD(result.TLD) {
		flag(suspiciousTLDPenalty, valueobject.RiskLevelHigh, "Suspicious TLD: ."+result.TLD)
	}

	if s := a.reg.Shortener(domain); s != "" {
		flag(shortenerPenalty, valueobject.RiskLevelCritical, "URL shortener detected ("+s+") - could hide the real destination")
	}

	lowerURL := strings.ToLower(rawURL)
	for _, p := range a.reg.ScamURLPatterns() {
		if p.MatchString(lowerURL) {
			flag(scamPatternPenalty, valueobject.RiskLevelMedium, fmt.Sprintf("Suspicious pattern in URL: %s", p.Source))
		}
	}

	if a.inspector != nil {
		if !result.Trusted {
			age := a.inspector.Age(ctx, result.Registrable)
			result.DomainAge = &age
			switch {
			case age.Unknown:
			case age.RiskLevel.Equal(valueobject.RiskLevelCritical):
				flag(criticalAgePenalty, valueobject.RiskLevelCritical, age.Details)
			case age.RiskLevel.Equal(valueobject.RiskLevelHigh):
				flag(highAgePenalty, valueobject.RiskLevelHigh, age.Details)
			case age.RiskLevel.Equal(valueobject.RiskLevelMedium):
				flag(mediumAgePenalty, valueobject.RiskLevelMedium, age.Details)
			default:
				result.Positive = append(result.Positive, age.Details)
			}
		}

		result.Resolves = a.inspector.Resolves(ctx, domain)
		if result.Resolves != nil && !*result.Resolves {
			flag(unresolvedPenalty, valueobject.RiskLevelHigh, "Domain does not resolve - may be dead or fake")
		}
	}

	result.RiskScore = model.Clamp(score, 0, 100)
	result.RiskLevel = valueobject.URLRiskLevelFromScore(result.RiskScore)
	result.Recommendation = urlRecommendations[result.RiskLevel.String()]
	return result, nil
}
