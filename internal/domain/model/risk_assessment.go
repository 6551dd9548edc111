package model

import "github.com/jobguard/jobguard/internal/domain/valueobject"

// CategoryBreakdown is the per-category line of a RiskAssessment.
type CategoryBreakdown struct {
	SubScore        int     `json:"sub_score"`
	Weight          float64 `json:"weight"`
	EffectiveWeight float64 `json:"effective_weight"`
	Active          bool    `json:"active"`
	Status          string  `json:"status"`
	Details         any     `json:"details,omitempty"`
}

// Breakdown statuses. Inactive categories report their reason instead.
const (
	StatusActive = "active"
)

// RiskAssessment is the combined result of all signal categories.
type RiskAssessment struct {
	OverallScore    int                          `json:"overall_score"`
	RiskLevel       valueobject.RiskLevel        `json:"risk_level"`
	Breakdown       map[string]CategoryBreakdown `json:"breakdown"`
	Flags           []string                     `json:"flags"`
	PositiveSignals []string                     `json:"positive_signals"`
	Recommendations []string                     `json:"recommendations"`
	IsBlacklisted   bool                         `json:"is_blacklisted"`
}

// ActiveCategories lists the names of categories that were weighted.
func (a RiskAssessment) ActiveCategories() []string {
	out := make([]string, 0, len(a.Breakdown))
	for _, c := range valueobject.Categories() {
		if b, ok := a.Breakdown[c.String()]; ok && b.Active {
			out = append(out, c.String())
		}
	}
	return out
}

// IsCritical reports whether the assessment landed in the top bucket.
func (a RiskAssessment) IsCritical() bool {
	return a.RiskLevel.Equal(valueobject.RiskLevelCritical)
}
