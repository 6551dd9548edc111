package model

import "github.com/jobguard/jobguard/internal/domain/valueobject"

// CompanyProfile is what an external company-data provider knows.
type CompanyProfile struct {
	Name      string `json:"name"`
	Domain    string `json:"domain,omitempty"`
	Industry  string `json:"industry,omitempty"`
	Employees int    `json:"employees,omitempty"`
	Founded   int    `json:"founded,omitempty"`
	Location  string `json:"location,omitempty"`
}

// KnownCompany is a registry match.
type KnownCompany struct {
	Name      string `json:"name"`
	Industry  string `json:"industry"`
	Employees string `json:"employees"`
}

// DomainInfo is the result of inferring and ageing a company's website.
type DomainInfo struct {
	Found    bool   `json:"found"`
	Domain   string `json:"domain,omitempty"`
	Method   string `json:"method,omitempty"`
	AgeYears *int   `json:"age_years,omitempty"`
	Status   string `json:"status"`
}

// CompanyVerification is the outcome of verifying a company name.
type CompanyVerification struct {
	Company        string                `json:"company"`
	Verified       bool                  `json:"verified"`
	RiskLevel      valueobject.RiskLevel `json:"risk_level"`
	RiskScore      int                   `json:"risk_score"`
	Flags          []Flag                `json:"flags"`
	Positive       []string              `json:"positive"`
	Recommendation string                `json:"recommendation"`
	Known          *KnownCompany         `json:"known_company,omitempty"`
	Profile        *CompanyProfile       `json:"profile,omitempty"`
	Domain         *DomainInfo           `json:"domain_info,omitempty"`
	Placeholder    bool                  `json:"placeholder,omitempty"`
}
