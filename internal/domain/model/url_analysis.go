package model

import (
	"time"

	"github.com/jobguard/jobguard/internal/domain/valueobject"
)

// DomainRegistration is what a registration-data source reports for a domain.
type DomainRegistration struct {
	Domain    string    `json:"domain"`
	CreatedAt time.Time `json:"created_at"`
	Registrar string    `json:"registrar,omitempty"`
}

// DomainAge is the age assessment of a domain. AgeDays is nil when unknown.
type DomainAge struct {
	Domain    string                `json:"domain"`
	AgeDays   *int                  `json:"age_days,omitempty"`
	CreatedAt *time.Time            `json:"created_at,omitempty"`
	Registrar string                `json:"registrar,omitempty"`
	RiskLevel valueobject.RiskLevel `json:"risk_level"`
	Details   string                `json:"details"`
	IsNew     bool                  `json:"is_new_domain"`
	Unknown   bool                  `json:"unknown"`
}

// URLAnalysis is the outcome of analysing a posting URL.
type URLAnalysis struct {
	URL             string                `json:"url"`
	Domain          string                `json:"domain"`
	Registrable     string                `json:"registrable_domain"`
	TLD             string                `json:"tld"`
	Trusted         bool                  `json:"trusted"`
	TrustedPlatform string                `json:"trusted_platform,omitempty"`
	RiskScore       int                   `json:"risk_score"`
	RiskLevel       valueobject.RiskLevel `json:"risk_level"`
	Flags           []Flag                `json:"flags"`
	Positive        []string              `json:"positive"`
	DomainAge       *DomainAge            `json:"domain_age,omitempty"`
	Resolves        *bool                 `json:"resolves,omitempty"`
	Recommendation  string                `json:"recommendation"`
}
