// Package scoring maps scores and priority levels to their display treatment.
// Every function here is a total lookup with no state.
package scoring

import "github.com/spigell/resume-analyzer/internal/report"

// Band is a qualitative score classification. Bands are ordered:
// Poor < Fair < Good < Excellent.
type Band int

const (
	Poor Band = iota
	Fair
	Good
	Excellent
)

// Lower bounds, inclusive.
const (
	FairFrom      = 50.0
	GoodFrom      = 65.0
	ExcellentFrom = 80.0
)

// Classify returns the band of a single score. NaN falls into Poor.
func Classify(score float64) Band {
	switch {
	case score >= ExcellentFrom:
		return Excellent
	case score >= GoodFrom:
		return Good
	case score >= FairFrom:
		return Fair
	default:
		return Poor
	}
}

func (b Band) String() string {
	switch b {
	case Excellent:
		return "excellent"
	case Good:
		return "good"
	case Fair:
		return "fair"
	default:
		return "poor"
	}
}

// Treatment is how a band is displayed.
type Treatment struct {
	Label string
	Class string
}

var treatments = map[Band]Treatment{
	Poor:      {Label: "Needs Improvement", Class: "score-poor"},
	Fair:      {Label: "Fair", Class: "score-fair"},
	Good:      {Label: "Good", Class: "score-good"},
	Excellent: {Label: "Excellent", Class: "score-excellent"},
}

// TreatmentFor returns the display treatment of a band.
func TreatmentFor(b Band) Treatment {
	if t, ok := treatments[b]; ok {
		return t
	}
	return treatments[Poor]
}

// Classified is one ATS score together with its band.
type Classified struct {
	Field     string
	Score     float64
	Band      Band
	Treatment Treatment
}

// ClassifyAll classifies each of the six ATS scores on its own.
func ClassifyAll(s report.ATSScore) []Classified {
	scores := s.Scores()
	result := make([]Classified, 0, len(scores))
	for _, score := range scores {
		band := Classify(score.Value)
		result = append(result, Classified{
			Field:     score.Field,
			Score:     score.Value,
			Band:      band,
			Treatment: TreatmentFor(band),
		})
	}
	return result
}
