package model

import (
	"fmt"
	"strings"
)

// PredictionResult is the success body returned by the prediction API.
// Prediction is a JSON number, so 1 and 1.0 both mark the positive class.
type PredictionResult struct {
	Prediction  float64 `json:"prediction"`
	Probability float64 `json:"probability"`
	RiskLevel   string  `json:"risk_level"`
}

// Positive reports whether the model predicted the positive class.
func (r PredictionResult) Positive() bool {
	return r.Prediction == 1
}

// RiskClass is the closed set of visual risk variants.
type RiskClass int

const (
	RiskUnknown RiskClass = iota
	RiskLow
	RiskModerate
	RiskHigh
)

// riskKeywords is ordered; the first keyword contained in a label wins.
var riskKeywords = []struct {
	keyword string
	class   RiskClass
}{
	{"low", RiskLow},
	{"moderate", RiskModerate},
	{"high", RiskHigh},
}

// ClassifyRisk maps a free-form risk label onto a RiskClass. Matching is
// case-insensitive by substring with precedence low, moderate, high, so a
// label such as "low-moderate" is Low. Anything else is RiskUnknown.
func ClassifyRisk(label string) RiskClass {
	key := strings.ToLower(label)
	for _, candidate := range riskKeywords {
		if strings.Contains(key, candidate.keyword) {
			return candidate.class
		}
	}
	return RiskUnknown
}

func (c RiskClass) String() string {
	switch c {
	case RiskLow:
		return "low"
	case RiskModerate:
		return "moderate"
	case RiskHigh:
		return "high"
	default:
		return "unknown"
	}
}

// StyleTag returns the modifier class for the risk pill, or "" when no
// variant applies.
func (c RiskClass) StyleTag() string {
	switch c {
	case RiskLow, RiskModerate, RiskHigh:
		return "result-pill--" + c.String()
	default:
		return ""
	}
}

// PillClass returns the full class list for the risk pill.
func (c RiskClass) PillClass() string {
	if tag := c.StyleTag(); tag != "" {
		return "result-pill " + tag
	}
	return "result-pill"
}

// FormatProbability renders a probability in [0,1] as a percentage with two
// decimals, e.g. 0.8734 -> "87.34%".
func FormatProbability(p float64) string {
	return fmt.Sprintf("%.2f%%", p*100)
}
