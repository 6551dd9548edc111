package model

import "github.com/jobguard/jobguard/internal/domain/valueobject"

// KeywordHit is one matched lexical pattern.
type KeywordHit struct {
	Word     string                `json:"word"`
	Severity valueobject.RiskLevel `json:"severity"`
	Impact   int                   `json:"impact"`
}

// TextDetails is the details payload of the text category.
type TextDetails struct {
	Length   int          `json:"length"`
	Keywords []KeywordHit `json:"keyword_details"`
}
