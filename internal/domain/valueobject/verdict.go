package valueobject

import "fmt"

// Verdict is the headline result shown next to the risk analysis.
type Verdict struct {
	value string
}

var (
	VerdictBlacklisted  = Verdict{value: "blacklisted"}
	VerdictCriticalRisk = Verdict{value: "critical_risk"}
	VerdictFake         = Verdict{value: "fake"}
	VerdictReal         = Verdict{value: "real"}
	VerdictUnknown      = Verdict{value: "unknown"}
)

// VerdictFromString reconstructs a Verdict from its string representation.
func VerdictFromString(s string) (Verdict, error) {
	switch s {
	case "blacklisted":
		return VerdictBlacklisted, nil
	case "critical_risk":
		return VerdictCriticalRisk, nil
	case "fake":
		return VerdictFake, nil
	case "real":
		return VerdictReal, nil
	case "unknown":
		return VerdictUnknown, nil
	default:
		return Verdict{}, fmt.Errorf("invalid verdict: %s", s)
	}
}

// DecideVerdict applies the override order: blacklist, then critical risk,
// then the classifier label. label is nil when no classifier ran.
func DecideVerdict(blacklisted bool, level RiskLevel, label *int) Verdict {
	switch {
	case blacklisted:
		return VerdictBlacklisted
	case level.Equal(RiskLevelCritical):
		return VerdictCriticalRisk
	case label == nil:
		return VerdictUnknown
	case *label == 1:
		return VerdictReal
	default:
		return VerdictFake
	}
}

// IsFraudulent is true for every verdict that tells the user to stay away.
func (v Verdict) IsFraudulent() bool {
	return v == VerdictBlacklisted || v == VerdictCriticalRisk || v == VerdictFake
}

// Label returns the binary label implied by the verdict, -1 when unknown.
func (v Verdict) Label() int {
	switch {
	case v.IsFraudulent():
		return 0
	case v == VerdictReal:
		return 1
	default:
		return -1
	}
}

// String returns the string representation.
func (v Verdict) String() string { return v.value }

// IsZero returns true if the Verdict has not been set.
func (v Verdict) IsZero() bool { return v.value == "" }
