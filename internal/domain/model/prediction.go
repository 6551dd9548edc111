package model

// Classifier labels.
const (
	LabelFraudulent = 0
	LabelLegitimate = 1
)

// Brain modes name the source of a prediction summary.
const (
	BrainModeGemini = "gemini"
	BrainModeLocal  = "local"
)

// TokenContribution is one token's pull towards a label. Positive weights
// push towards legitimate.
type TokenContribution struct {
	Token  string  `json:"token"`
	Weight float64 `json:"weight"`
}

// Prediction is the classifier verdict with its explanation.
type Prediction struct {
	Label         int                 `json:"label"`
	Confidence    float64             `json:"confidence"`
	Contributions []TokenContribution `json:"top_contributing_tokens"`
	Summary       string              `json:"summary"`
	BrainMode     string              `json:"brain_mode"`
}

// IsLegitimate reports whether the classifier says the posting is real.
func (p Prediction) IsLegitimate() bool { return p.Label == LabelLegitimate }
