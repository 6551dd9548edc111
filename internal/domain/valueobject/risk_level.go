package valueobject

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RiskLevel is an immutable value object representing a discrete risk bucket.
// It doubles as blacklist severity; both share the same ordered scale.
type RiskLevel struct {
	value string
}

var (
	RiskLevelLow      = RiskLevel{value: "low"}
	RiskLevelMedium   = RiskLevel{value: "medium"}
	RiskLevelHigh     = RiskLevel{value: "high"}
	RiskLevelCritical = RiskLevel{value: "critical"}
)

// RiskLevelFromString reconstructs a RiskLevel from its string representation.
func RiskLevelFromString(s string) (RiskLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return RiskLevelLow, nil
	case "medium":
		return RiskLevelMedium, nil
	case "high":
		return RiskLevelHigh, nil
	case "critical":
		return RiskLevelCritical, nil
	default:
		return RiskLevel{}, fmt.Errorf("invalid risk level: %s", s)
	}
}

// RiskLevelFromScore buckets an overall assessment score (0-100).
func RiskLevelFromScore(score int) RiskLevel {
	switch {
	case score >= 70:
		return RiskLevelCritical
	case score >= 50:
		return RiskLevelHigh
	case score >= 30:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// URLRiskLevelFromScore buckets a URL security score, which uses wider bands.
func URLRiskLevelFromScore(score int) RiskLevel {
	switch {
	case score >= 60:
		return RiskLevelCritical
	case score >= 40:
		return RiskLevelHigh
	case score >= 20:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// RiskLevelFromRank is the inverse of Rank. Out-of-range ranks clamp.
func RiskLevelFromRank(rank int) RiskLevel {
	switch {
	case rank >= 4:
		return RiskLevelCritical
	case rank == 3:
		return RiskLevelHigh
	case rank == 2:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// MaxRiskLevel returns the more severe of a and b.
func MaxRiskLevel(a, b RiskLevel) RiskLevel {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// String returns the string representation.
func (r RiskLevel) String() string {
	return r.value
}

// Rank orders levels: low=1 .. critical=4, unset=0.
func (r RiskLevel) Rank() int {
	switch r.value {
	case "low":
		return 1
	case "medium":
		return 2
	case "high":
		return 3
	case "critical":
		return 4
	default:
		return 0
	}
}

// AtLeast reports whether r is as severe as other or more.
func (r RiskLevel) AtLeast(other RiskLevel) bool {
	return r.Rank() >= other.Rank()
}

// IsZero returns true if the RiskLevel has not been set.
func (r RiskLevel) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskLevel.
func (r RiskLevel) Equal(other RiskLevel) bool {
	return r.value == other.value
}

// MarshalJSON encodes the level as its string form.
func (r RiskLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.value)
}

// UnmarshalJSON accepts the string form; an empty string leaves the level unset.
func (r *RiskLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*r = RiskLevel{}
		return nil
	}
	level, err := RiskLevelFromString(s)
	if err != nil {
		return err
	}
	*r = level
	return nil
}
