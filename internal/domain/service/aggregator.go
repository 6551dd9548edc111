package service

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/valueobject"
)

const (
	neutralScore   = 50
	blacklistFloor = 85
)

var recommendations = map[string][]string{
	"critical": {
		"DO NOT apply to this job",
		"This has multiple high-risk indicators",
		"Report this job if you haven't already",
	},
	"high": {
		"Exercise extreme caution",
		"Verify the company through official channels",
		"Never pay any fees or share sensitive info before verification",
	},
	"medium": {
		"Proceed with caution",
		"Research the company on LinkedIn and Glassdoor",
		"Verify contact information independently",
	},
	"low": {
		"Lower risk detected",
		"Still verify company details before sharing personal information",
		"Trust your instincts during interviews",
	},
}

// Aggregator combines per-category signal results into one RiskAssessment.
// It treats every category alike; weights, flag caps and flag order come
// from the category itself.
type Aggregator struct{}

// NewAggregator creates an Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate never fails. Inactive or missing categories drop out of both
// sides of the weighted mean; with nothing active the score is 50.
func (a *Aggregator) Aggregate(signals ...model.SignalResult) model.RiskAssessment {
	byName := make(map[string]model.SignalResult, len(signals))
	for _, s := range signals {
		if !s.Category.IsZero() {
			byName[s.Category.String()] = s
		}
	}
	for _, c := range valueobject.Categories() {
		if _, ok := byName[c.String()]; !ok {
			byName[c.String()] = model.InactiveSignal(c, model.ReasonNotApplicable)
		}
	}

	ordered := make([]model.SignalResult, 0, len(byName))
	for _, s := range byName {
		ordered = append(ordered, s)
	}
	slices.SortStableFunc(ordered, func(x, y model.SignalResult) int {
		if d := x.Category.FlagOrder() - y.Category.FlagOrder(); d != 0 {
			return d
		}
		if x.Category.String() < y.Category.String() {
			return -1
		}
		return 1
	})

	weighted := decimal.Zero
	totalWeight := decimal.Zero
	blacklisted := false
	for _, s := range ordered {
		if !s.Active {
			continue
		}
		w := decimal.NewFromFloat(s.Category.Weight())
		weighted = weighted.Add(decimal.NewFromInt(int64(s.ClampedScore())).Mul(w))
		totalWeight = totalWeight.Add(w)
		if s.Category.Equal(valueobject.CategoryBlacklist) {
			blacklisted = true
		}
	}

	score := neutralScore
	if totalWeight.IsPositive() {
		score = int(weighted.Div(totalWeight).Round(0).IntPart())
	}
	score = model.Clamp(score, 0, 100)
	if blacklisted && score < blacklistFloor {
		score = blacklistFloor
	}
	level := valueobject.RiskLevelFromScore(score)

	result := model.RiskAssessment{
		OverallScore:    score,
		RiskLevel:       level,
		Breakdown:       make(map[string]model.CategoryBreakdown, len(ordered)),
		Flags:           make([]string, 0),
		PositiveSignals: make([]string, 0),
		Recommendations: slices.Clone(recommendations[level.String()]),
		IsBlacklisted:   blacklisted,
	}

	seenFlag := make(map[string]struct{})
	seenPositive := make(map[string]struct{})
	for _, s := range ordered {
		entry := model.CategoryBreakdown{
			SubScore: s.ClampedScore(),
			Weight:   s.Category.Weight(),
			Active:   s.Active,
			Status:   s.Reason,
			Details:  s.Details,
		}
		if s.Active {
			entry.Status = model.StatusActive
			if totalWeight.IsPositive() {
				entry.EffectiveWeight, _ = decimal.NewFromFloat(s.Category.Weight()).Div(totalWeight).Round(4).Float64()
			}
		}
		result.Breakdown[s.Category.String()] = entry

		if !s.Active {
			continue
		}
		result.Flags = appendCapped(result.Flags, seenFlag, selectFlags(s), s.Category.FlagLimit())
		result.PositiveSignals = appendCapped(result.PositiveSignals, seenPositive, s.Positive, s.Category.PositiveLimit())
	}
	return result
}

// selectFlags keeps the flags at or above the category's minimum severity.
func selectFlags(s model.SignalResult) []string {
	minimum := s.Category.MinFlagSeverity()
	out := make([]string, 0, len(s.Flags))
	for _, f := range s.Flags {
		if minimum.IsZero() || f.Severity.AtLeast(minimum) {
			out = append(out, f.Message)
		}
	}
	return out
}

// appendCapped appends up to limit unseen items; a negative limit is unbounded.
func appendCapped(dst []string, seen map[string]struct{}, items []string, limit int) []string {
	taken := 0
	for _, item := range items {
		if limit >= 0 && taken >= limit {
			break
		}
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		dst = append(dst, item)
		taken++
	}
	return dst
}
