package model

const (
	StatusPositive = "Indicative of heart disease"
	StatusNegative = "No strong indication of heart disease"

	UnknownRiskLabel   = "Unknown"
	ProbabilityCaption = "Estimated probability of heart disease (positive class)."
	InterpretationLead = "Interpretation tip:"
	InterpretationNote = "this probability comes from a logistic regression model trained and " +
		"calibrated on the curated heart‑disease dataset. Use it as decision support alongside clinical judgement."
)

// Summary is the fixed-shape view of a prediction result.
type Summary struct {
	Positive           bool      `json:"positive"`
	Status             string    `json:"status"`
	RiskLabel          string    `json:"risk_label"`
	RiskClass          RiskClass `json:"-"`
	RiskVariant        string    `json:"risk_variant"`
	PillClass          string    `json:"pill_class"`
	Probability        string    `json:"probability"`
	ProbabilityCaption string    `json:"probability_caption"`
	InterpretationLead string    `json:"interpretation_lead"`
	InterpretationNote string    `json:"interpretation_note"`
}

// Summarize builds the display summary for a result.
func Summarize(result PredictionResult) Summary {
	label := result.RiskLevel
	if label == "" {
		label = UnknownRiskLabel
	}
	class := ClassifyRisk(label)

	status := StatusNegative
	if result.Positive() {
		status = StatusPositive
	}

	return Summary{
		Positive:           result.Positive(),
		Status:             status,
		RiskLabel:          label,
		RiskClass:          class,
		RiskVariant:        class.String(),
		PillClass:          class.PillClass(),
		Probability:        FormatProbability(result.Probability),
		ProbabilityCaption: ProbabilityCaption,
		InterpretationLead: InterpretationLead,
		InterpretationNote: InterpretationNote,
	}
}
