// Package ml provides the local text classifier: a linear model over
// L2-normalised bag-of-ngrams features, loaded from JSON.
package ml

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/port"
)

var _ port.Classifier = (*LinearClassifier)(nil)

//go:embed default_model.json
var defaultModel []byte

var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// ModelFile is the on-disk model format. Positive weights pull towards
// legitimate. IDF is optional; missing terms use 1.
type ModelFile struct {
	Name      string             `json:"name"`
	Version   string             `json:"version"`
	Intercept float64            `json:"intercept"`
	NGramMax  int                `json:"ngram_max"`
	Weights   map[string]float64 `json:"weights"`
	IDF       map[string]float64 `json:"idf,omitempty"`
}

// LinearClassifier implements port.Classifier. It is immutable after load
// and safe for concurrent use.
type LinearClassifier struct {
	name      string
	version   string
	intercept float64
	ngramMax  int
	weights   map[string]float64
	idf       map[string]float64
}

// NewLinearClassifier validates a model and builds the classifier.
func NewLinearClassifier(m ModelFile) (*LinearClassifier, error) {
	if len(m.Weights) == 0 {
		return nil, fmt.Errorf("ml: model %q has no weights", m.Name)
	}
	ngramMax := m.NGramMax
	if ngramMax <= 0 {
		ngramMax = 1
	}
	return &LinearClassifier{
		name:      m.Name,
		version:   m.Version,
		intercept: m.Intercept,
		ngramMax:  ngramMax,
		weights:   m.Weights,
		idf:       m.IDF,
	}, nil
}

// Load reads a model from path, or the bundled baseline model when path is empty.
func Load(path string) (*LinearClassifier, error) {
	data := defaultModel
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("ml: read model: %w", err)
		}
	}

	var m ModelFile
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("ml: decode model: %w", err)
	}
	return NewLinearClassifier(m)
}

// Name returns the model name and version.
func (c *LinearClassifier) Name() string {
	return c.name + "@" + c.version
}

// PredictLabel returns 1 when the legitimate probability is at least 0.5.
func (c *LinearClassifier) PredictLabel(ctx context.Context, text string) (int, float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}

	z := c.intercept
	for term, value := range c.features(text) {
		z += c.weights[term] * value
	}
	p := 1 / (1 + math.Exp(-z))

	if p >= 0.5 {
		return model.LabelLegitimate, p, nil
	}
	return model.LabelFraudulent, 1 - p, nil
}

// TokenContributions ranks present terms by absolute weight times feature
// value. n <= 0 returns all of them.
func (c *LinearClassifier) TokenContributions(ctx context.Context, text string, n int) ([]model.TokenContribution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	features := c.features(text)
	out := make([]model.TokenContribution, 0, len(features))
	for term, value := range features {
		out = append(out, model.TokenContribution{Token: term, Weight: c.weights[term] * value})
	}
	sort.Slice(out, func(i, j int) bool {
		ai, aj := math.Abs(out[i].Weight), math.Abs(out[j].Weight)
		if ai == aj {
			return out[i].Token < out[j].Token
		}
		return ai > aj
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// features returns the L2-normalised tf-idf value of every in-vocabulary term.
func (c *LinearClassifier) features(text string) map[string]float64 {
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)

	counts := make(map[string]float64)
	for size := 1; size <= c.ngramMax; size++ {
		for i := 0; i+size <= len(tokens); i++ {
			term := strings.Join(tokens[i:i+size], " ")
			if _, ok := c.weights[term]; ok {
				counts[term]++
			}
		}
	}

	var norm float64
	for term, tf := range counts {
		idf := 1.0
		if v, ok := c.idf[term]; ok {
			idf = v
		}
		counts[term] = tf * idf
		norm += counts[term] * counts[term]
	}
	if norm == 0 {
		return counts
	}
	norm = math.Sqrt(norm)
	for term := range counts {
		counts[term] /= norm
	}
	return counts
}

// Unconfigured is the classifier used when no model could be loaded.
type Unconfigured struct{}

var _ port.Classifier = Unconfigured{}

func (Unconfigured) PredictLabel(context.Context, string) (int, float64, error) {
	return 0, 0, port.ErrNotConfigured
}

func (Unconfigured) TokenContributions(context.Context, string, int) ([]model.TokenContribution, error) {
	return nil, port.ErrNotConfigured
}
