package service

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/registry"
	"github.com/jobguard/jobguard/internal/domain/valueobject"
)

const (
	emptyTextPenalty     = 20
	highRiskImpact       = 25
	mediumRiskImpact     = 12
	positiveCredit       = 5
	shortTextThreshold   = 100
	shortTextPenalty     = 15
	chatAppPenalty       = 30
	personalEmailPenalty = 15
)

// amount matches "5000", "5,000", "5,000.50" and "5k".
const amount = `(\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?\s*(k\b)?`

type salaryRule struct {
	re      *regexp.Regexp
	minimum int
	points  int
	flag    string
}

var salaryRules = []salaryRule{
	{
		re:      regexp.MustCompile(`\$\s*` + amount + `\s*(?:per|/|a|an)\s*(?:day|daily)\b`),
		minimum: 1000, points: 40, flag: "Unrealistic daily pay",
	},
	{
		re:      regexp.MustCompile(`\$\s*` + amount + `\s*(?:per|/|a|an)\s*(?:week|weekly)\b`),
		minimum: 3000, points: 35, flag: "Suspiciously high weekly pay",
	},
	{
		re:      regexp.MustCompile(`earn\s*\$?\s*` + amount + `\s*(?:fast|quick|quickly|easy|easily)\b`),
		minimum: 1000, points: 30, flag: "Get rich quick language",
	},
}

// TextAnalyzer scans posting text for lexical risk indicators.
type TextAnalyzer struct {
	reg           *registry.Registry
	personalEmail *regexp.Regexp
	businessTerms *regexp.Regexp
}

// NewTextAnalyzer creates a TextAnalyzer over the given registry.
func NewTextAnalyzer(reg *registry.Registry) *TextAnalyzer {
	return &TextAnalyzer{
		reg:           reg,
		personalEmail: alternation(`@(?:`, reg.PersonalEmailDomains(), `)\b|personal email`),
		businessTerms: alternation(`\b(?:`, reg.BusinessContactTerms(), `)\b`),
	}
}

// Analyze scores text. The score is additive and not clamped; positive
// indicators may drive it below zero.
func (a *TextAnalyzer) Analyze(text string) model.SignalResult {
	result := model.NewSignalResult(valueobject.CategoryText)
	text = strings.TrimSpace(text)
	details := model.TextDetails{Length: utf8.RuneCountInString(text), Keywords: make([]model.KeywordHit, 0)}
	result.Details = details

	if text == "" {
		result.Penalize(emptyTextPenalty, valueobject.RiskLevelMedium, "No job description provided")
		return result
	}

	lower := strings.ToLower(text)

	for _, kw := range a.reg.HighRiskKeywords() {
		if strings.Contains(lower, kw) {
			result.Penalize(highRiskImpact, valueobject.RiskLevelHigh, fmt.Sprintf("High-risk phrase: '%s'", kw))
			details.Keywords = append(details.Keywords, model.KeywordHit{Word: kw, Severity: valueobject.RiskLevelHigh, Impact: highRiskImpact})
		}
	}
	for _, kw := range a.reg.MediumRiskKeywords() {
		if strings.Contains(lower, kw) {
			result.Penalize(mediumRiskImpact, valueobject.RiskLevelMedium, fmt.Sprintf("Suspicious phrase: '%s'", kw))
			details.Keywords = append(details.Keywords, model.KeywordHit{Word: kw, Severity: valueobject.RiskLevelMedium, Impact: mediumRiskImpact})
		}
	}
	for _, kw := range a.reg.PositiveIndicators() {
		if strings.Contains(lower, kw) {
			result.Credit(positiveCredit, kw)
		}
	}

	for _, rule := range salaryRules {
		if rule.matches(lower) {
			result.Penalize(rule.points, valueobject.RiskLevelHigh, rule.flag)
		}
	}

	if details.Length < shortTextThreshold {
		result.Penalize(shortTextPenalty, valueobject.RiskLevelLow, "Very short job description")
	}

	var apps []string
	for _, app := range a.reg.ChatApps() {
		if strings.Contains(lower, app) {
			apps = append(apps, app)
		}
	}
	if len(apps) > 0 {
		result.Penalize(chatAppPenalty, valueobject.RiskLevelHigh,
			"Moves communication to chat apps: "+strings.Join(apps, ", "))
	}

	if a.personalEmail != nil && a.personalEmail.MatchString(lower) &&
		(a.businessTerms == nil || !a.businessTerms.MatchString(lower)) {
		result.Penalize(personalEmailPenalty, valueobject.RiskLevelMedium, "Uses personal email for business")
	}

	result.Details = details
	return result
}

func (r salaryRule) matches(lower string) bool {
	for _, m := range r.re.FindAllStringSubmatch(lower, -1) {
		n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		switch {
		case errors.Is(err, strconv.ErrRange):
			n = math.MaxInt
		case err != nil:
			continue
		}
		// Saturate so "k" amounts near the int limit cannot wrap negative.
		if m[2] != "" {
			if n > math.MaxInt/1000 {
				n = math.MaxInt
			} else {
				n *= 1000
			}
		}
		if n >= r.minimum {
			return true
		}
	}
	return false
}

// alternation builds prefix(a|b|c)suffix from literal terms, or nil for none.
func alternation(prefix string, terms []string, suffix string) *regexp.Regexp {
	if len(terms) == 0 {
		return nil
	}
	quoted := make([]string, 0, len(terms))
	for _, t := range terms {
		quoted = append(quoted, regexp.QuoteMeta(t))
	}
	return regexp.MustCompile(prefix + strings.Join(quoted, "|") + suffix)
}
