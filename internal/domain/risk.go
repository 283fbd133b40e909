package domain

// RiskLevel - порядковая шкала риска обвала.
type RiskLevel uint8

const (
	RiskNone RiskLevel = iota
	RiskLow
	RiskMedium
	RiskHigh
)

var riskNames = map[RiskLevel]string{
	RiskNone:   "NONE",
	RiskLow:    "LOW",
	RiskMedium: "MEDIUM",
	RiskHigh:   "HIGH",
}

func (r RiskLevel) String() string {
	if s, ok := riskNames[r]; ok {
		return s
	}
	return "UNKNOWN"
}

// PredictionTag - что случится с поленом, если снять то, над которым курсор.
type PredictionTag uint8

const (
	PredictWillCollapse PredictionTag = iota + 1
	PredictHighRisk
	PredictMediumRisk
	PredictLowRisk
)

var predictionNames = map[PredictionTag]string{
	PredictWillCollapse: "WILL_COLLAPSE",
	PredictHighRisk:     "HIGH_RISK",
	PredictMediumRisk:   "MEDIUM_RISK",
	PredictLowRisk:      "LOW_RISK",
}

func (t PredictionTag) String() string {
	if s, ok := predictionNames[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// AffectedPiece - полено с предсказанием для подсветки.
type AffectedPiece struct {
	Piece *Piece
	Tag   PredictionTag
}
