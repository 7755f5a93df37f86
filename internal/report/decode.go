package report

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// ErrMalformed marks a success body that does not have the report shape.
var ErrMalformed = errors.New("malformed report")

// Decode parses a service response body into a Report. Required sections must
// be present and of the right kind; sequences may be empty but not null.
func Decode(data []byte) (*Report, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if raw == nil {
		return nil, fmt.Errorf("%w: empty document", ErrMalformed)
	}

	if err := checkShape(raw); err != nil {
		return nil, err
	}

	var r Report
	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   &r,
		TagName:  "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	r.normalize()

	return &r, nil
}

func checkShape(raw map[string]any) error {
	scores, err := object(raw, "ats_score")
	if err != nil {
		return err
	}

	for _, field := range ScoreFields {
		if _, ok := scores[field].(float64); !ok {
			return fmt.Errorf("%w: ats_score.%s must be a number", ErrMalformed, field)
		}
	}

	skills, err := object(raw, "skill_analysis")
	if err != nil {
		return err
	}

	for _, key := range []string{"identified_skills", "missing_skills"} {
		if _, ok := skills[key].([]any); !ok {
			return fmt.Errorf("%w: skill_analysis.%s must be a list", ErrMalformed, key)
		}
	}

	for _, key := range []string{"missing_components", "improvement_suggestions"} {
		if _, ok := raw[key].([]any); !ok {
			return fmt.Errorf("%w: %s must be a list", ErrMalformed, key)
		}
	}

	return nil
}

func object(raw map[string]any, key string) (map[string]any, error) {
	value, ok := raw[key].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be an object", ErrMalformed, key)
	}
	return value, nil
}

func (r *Report) normalize() {
	if r.SkillAnalysis.IdentifiedSkills == nil {
		r.SkillAnalysis.IdentifiedSkills = []SkillCategory{}
	}
	for i := range r.SkillAnalysis.IdentifiedSkills {
		if r.SkillAnalysis.IdentifiedSkills[i].Skills == nil {
			r.SkillAnalysis.IdentifiedSkills[i].Skills = []string{}
		}
	}
	if r.SkillAnalysis.MissingSkills == nil {
		r.SkillAnalysis.MissingSkills = []string{}
	}

	if r.MissingComponents == nil {
		r.MissingComponents = []MissingComponent{}
	}
	for i := range r.MissingComponents {
		r.MissingComponents[i].Importance = r.MissingComponents[i].Importance.Normalize()
	}

	if r.ImprovementSuggestions == nil {
		r.ImprovementSuggestions = []ImprovementSuggestion{}
	}
	for i := range r.ImprovementSuggestions {
		r.ImprovementSuggestions[i].Priority = r.ImprovementSuggestions[i].Priority.Normalize()
	}
}
