package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/sync/errgroup"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/port"
	"github.com/jobguard/jobguard/internal/domain/registry"
	"github.com/jobguard/jobguard/internal/domain/valueobject"
)

const (
	placeholderScore      = 50
	suspiciousNamePenalty = 30
	oddCharacterPenalty   = 15
	allCapsPenalty        = 10
	shortNamePenalty      = 15
	lookalikePenalty      = 25
	unverifiedPenalty     = 10
	enrichmentCredit      = 20
	newDomainPenalty      = 20
	oldDomainCredit       = 10
	minLookalikeLength    = 5
)

const (
	recommendPlaceholder = "Be very cautious - no company information available"
	recommendHighRisk    = "High risk - verify company independently before applying"
	recommendResearch    = "Research the company on LinkedIn and official sources"
	recommendUnverified  = "Company not verified - do your own research"
	recommendLegitimate  = "Company appears legitimate - proceed with normal caution"
)

// CompanyVerifier checks a company name against the known-employer registry
// and suspicious naming patterns, optionally enriched by external lookups.
type CompanyVerifier struct {
	reg       *registry.Registry
	enricher  port.CompanyEnricher
	searcher  port.CompanySearcher
	inspector *DomainInspector
	timeout   time.Duration
	logger    *slog.Logger
}

// NewCompanyVerifier creates a CompanyVerifier. enricher and searcher may be
// "not configured" adapters; inspector may be nil to skip domain inference.
func NewCompanyVerifier(
	reg *registry.Registry,
	enricher port.CompanyEnricher,
	searcher port.CompanySearcher,
	inspector *DomainInspector,
	timeout time.Duration,
	logger *slog.Logger,
) *CompanyVerifier {
	return &CompanyVerifier{
		reg:       reg,
		enricher:  enricher,
		searcher:  searcher,
		inspector: inspector,
		timeout:   timeout,
		logger:    logger,
	}
}

// Verify never fails: every external step that cannot complete is "unknown".
func (v *CompanyVerifier) Verify(ctx context.Context, name string) model.CompanyVerification {
	name = strings.TrimSpace(name)
	if v.reg.IsPlaceholderCompany(name) {
		return model.CompanyVerification{
			Company:        name,
			RiskLevel:      valueobject.RiskLevelHigh,
			RiskScore:      placeholderScore,
			Flags:          []model.Flag{{Message: "No company name provided", Severity: valueobject.RiskLevelHigh}},
			Positive:       []string{},
			Recommendation: recommendPlaceholder,
			Placeholder:    true,
		}
	}

	result := model.CompanyVerification{
		Company:  name,
		Flags:    make([]model.Flag, 0),
		Positive: make([]string, 0),
	}
	normalized := normalizeCompany(name, v.reg.CompanySuffixes())

	if known := v.lookupKnown(normalized); known != nil {
		result.Verified = true
		result.Known = known
		result.RiskLevel = valueobject.RiskLevelLow
		result.Positive = append(result.Positive, fmt.Sprintf("%s is a verified major company", name))
		result.Recommendation = recommendLegitimate
		return result
	}

	score := v.scoreName(name, normalized, &result)

	var (
		profile *model.CompanyProfile
		domain  *model.DomainInfo
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profile = v.enrich(gctx, name)
		return nil
	})
	g.Go(func() error {
		domain = v.inferDomain(gctx, name, normalized)
		return nil
	})
	_ = g.Wait()

	if profile != nil {
		result.Verified = true
		result.Profile = profile
		result.Positive = append(result.Positive, "Verified via company data provider")
		score = max(0, score-enrichmentCredit)
	}
	if !result.Verified {
		score += unverifiedPenalty
		result.Flags = append(result.Flags, model.Flag{
			Message:  "Company not found in verified database",
			Severity: valueobject.RiskLevelLow,
		})
	}

	if domain != nil {
		result.Domain = domain
		if domain.AgeYears != nil {
			switch years := *domain.AgeYears; {
			case years > 5:
				score = max(0, score-oldDomainCredit)
				result.Positive = append(result.Positive, fmt.Sprintf("Established domain (%d+ years)", years))
			case years < 1:
				score += newDomainPenalty
				result.Flags = append(result.Flags, model.Flag{
					Message:  "New domain detected (<1 year)",
					Severity: valueobject.RiskLevelHigh,
				})
			}
		}
	}

	result.RiskScore = score
	switch {
	case result.Verified:
		result.RiskLevel = valueobject.RiskLevelLow
		result.Recommendation = recommendLegitimate
	case score >= 40:
		result.RiskLevel = valueobject.RiskLevelHigh
		result.Recommendation = recommendHighRisk
	case score >= 20:
		result.RiskLevel = valueobject.RiskLevelMedium
		result.Recommendation = recommendResearch
	default:
		result.RiskLevel = valueobject.RiskLevelMedium
		result.Recommendation = recommendUnverified
	}
	return result
}

// minContainLen is the shortest name that may match by substring. Shorter
// registry keys such as "ibm" and shorter inputs must match a whole word.
const minContainLen = 4

// lookupKnown matches when either name contains the other, so "Googleplex
// Careers" and "Microsoft" both resolve to their registry entry.
func (v *CompanyVerifier) lookupKnown(normalized string) *model.KnownCompany {
	if normalized == "" {
		return nil
	}
	padded := " " + normalized + " "
	compact := strings.ReplaceAll(normalized, " ", "")
	for _, k := range v.reg.KnownCompanies() {
		key := strings.ReplaceAll(k.Name, " ", "")
		matched := strings.Contains(padded, " "+k.Name+" ") || compact == key
		if !matched && len(key) >= minContainLen && strings.Contains(compact, key) {
			matched = true
		}
		if !matched && len(compact) >= minContainLen && strings.Contains(key, compact) {
			matched = true
		}
		if matched {
			return &model.KnownCompany{Name: k.Name, Industry: k.Industry, Employees: k.Employees}
		}
	}
	return nil
}

func (v *CompanyVerifier) scoreName(name, normalized string, result *model.CompanyVerification) int {
	score := 0
	flag := func(points int, sev valueobject.RiskLevel, msg string) {
		score += points
		result.Flags = append(result.Flags, model.Flag{Message: msg, Severity: sev})
	}

	lower := strings.ToLower(name)
	for _, p := range v.reg.SuspiciousCompanyPatterns() {
		if p.MatchString(lower) {
			flag(suspiciousNamePenalty, valueobject.RiskLevelHigh, fmt.Sprintf("Suspicious pattern: '%s'", p.Source))
		}
	}
	if strings.ContainsAny(name, "!$") {
		flag(oddCharacterPenalty, valueobject.RiskLevelMedium, "Contains unusual characters (!$)")
	}
	if isAllCaps(name) && utf8.RuneCountInString(name) > 3 {
		flag(allCapsPenalty, valueobject.RiskLevelLow, "Company name is ALL CAPS")
	}
	if utf8.RuneCountInString(name) < 3 {
		flag(shortNamePenalty, valueobject.RiskLevelMedium, "Very short company name")
	}
	if lookalike := v.lookalike(normalized); lookalike != "" {
		flag(lookalikePenalty, valueobject.RiskLevelHigh, fmt.Sprintf("Name imitates a known employer: '%s'", lookalike))
	}
	return score
}

// lookalike returns the known employer name within a small edit distance of
// normalized. The threshold grows with length: 1 up to 11 characters, 2 up
// to 15, then 15%.
func (v *CompanyVerifier) lookalike(normalized string) string {
	if normalized == "" {
		return ""
	}
	n := utf8.RuneCountInString(normalized)
	var threshold int
	switch {
	case n <= 11:
		threshold = 1
	case n <= 15:
		threshold = 2
	default:
		threshold = int(math.Ceil(float64(n) * 0.15))
	}
	for _, k := range v.reg.KnownCompanies() {
		if utf8.RuneCountInString(k.Name) < minLookalikeLength || k.Name == normalized {
			continue
		}
		if fuzzy.LevenshteinDistance(normalized, k.Name) <= threshold {
			return k.Name
		}
	}
	return ""
}

func (v *CompanyVerifier) enrich(ctx context.Context, name string) *model.CompanyProfile {
	if v.enricher == nil {
		return nil
	}
	ctx, cancel := withTimeout(ctx, v.timeout)
	defer cancel()

	profile, err := v.enricher.LookupCompany(ctx, name)
	if err != nil {
		if !errors.Is(err, port.ErrNotConfigured) {
			v.logger.Warn("company enrichment failed", "company", name, "error", err)
		}
		return nil
	}
	return profile
}

// inferDomain guesses "<name>.com", falls back to a web search, and ages
// whichever domain resolves.
func (v *CompanyVerifier) inferDomain(ctx context.Context, name, normalized string) *model.DomainInfo {
	if v.inspector == nil {
		return nil
	}
	info := &model.DomainInfo{Status: "unknown"}

	guess := strings.NewReplacer(" ", "", "&", "", "-", "").Replace(normalized)
	if guess != "" {
		info.Domain = guess + ".com"
		info.Method = "heuristic"
	}
	resolves := v.inspector.Resolves(ctx, info.Domain)

	if (resolves == nil || !*resolves) && v.searcher != nil {
		if found := v.search(ctx, name); found != "" {
			info.Domain = found
			info.Method = "search"
			resolves = v.inspector.Resolves(ctx, found)
		}
	}

	if resolves == nil || !*resolves {
		if resolves != nil {
			info.Status = "not_found"
		}
		info.Domain = ""
		return info
	}

	info.Found = true
	info.Status = "found"
	age := v.inspector.Age(ctx, info.Domain)
	if age.AgeDays != nil {
		years := *age.AgeDays / 365
		info.AgeYears = &years
	}
	return info
}

func (v *CompanyVerifier) search(ctx context.Context, name string) string {
	ctx, cancel := withTimeout(ctx, v.timeout)
	defer cancel()

	website, err := v.searcher.SearchWebsite(ctx, name)
	if err != nil {
		if !errors.Is(err, port.ErrNotConfigured) {
			v.logger.Warn("company website search failed", "company", name, "error", err)
		}
		return ""
	}
	host := ExtractDomain(website)
	if host == "" {
		return ""
	}
	return RegistrableDomain(host)
}

func isAllCaps(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
