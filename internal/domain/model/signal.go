package model

import (
	"time"

	"github.com/jobguard/jobguard/internal/domain/valueobject"
)

// Reasons a category sits out of the weighted score.
const (
	ReasonNotApplicable = "not_applicable"
	ReasonUnavailable   = "unavailable"
	ReasonTimeout       = "timeout"
	ReasonNoMatch       = "no_match"
)

// Flag is a human-readable warning with the severity of the check that raised it.
type Flag struct {
	Message  string                `json:"message"`
	Severity valueobject.RiskLevel `json:"severity"`
}

// SignalResult is the uniform output of every signal category.
//
// Score is the raw, unclamped sub-score. An inactive result is excluded
// from weighting and carries the reason in Reason.
type SignalResult struct {
	Category valueobject.Category `json:"-"`
	Score    int                  `json:"score"`
	Flags    []Flag               `json:"flags"`
	Positive []string             `json:"positive"`
	Details  any                  `json:"details,omitempty"`
	Active   bool                 `json:"active"`
	Reason   string               `json:"reason,omitempty"`
	Elapsed  time.Duration        `json:"-"`
}

// NewSignalResult starts an active result for a category.
func NewSignalResult(category valueobject.Category) SignalResult {
	return SignalResult{
		Category: category,
		Flags:    make([]Flag, 0),
		Positive: make([]string, 0),
		Active:   true,
	}
}

// InactiveSignal marks a category as excluded from weighting.
func InactiveSignal(category valueobject.Category, reason string) SignalResult {
	r := NewSignalResult(category)
	r.Active = false
	r.Reason = reason
	return r
}

// Penalize adds points and a flag.
func (r *SignalResult) Penalize(points int, severity valueobject.RiskLevel, message string) {
	r.Score += points
	r.Flags = append(r.Flags, Flag{Message: message, Severity: severity})
}

// Credit removes points and records a positive indicator.
func (r *SignalResult) Credit(points int, message string) {
	r.Score -= points
	r.Positive = append(r.Positive, message)
}

// ClampedScore bounds the raw score to 0..100.
func (r SignalResult) ClampedScore() int {
	return Clamp(r.Score, 0, 100)
}

// FlagMessages returns the flag texts in order.
func (r SignalResult) FlagMessages() []string {
	out := make([]string, 0, len(r.Flags))
	for _, f := range r.Flags {
		out = append(out, f.Message)
	}
	return out
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
