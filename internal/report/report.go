// Package report holds the analysis result returned by the scoring service.
// A Report is read-only once decoded.
package report

import "strings"

// Level is the importance of a missing component or the priority of a suggestion.
type Level string

const (
	Low    Level = "low"
	Medium Level = "medium"
	High   Level = "high"
)

// Normalize lowercases and trims the level as sent by the service.
func (l Level) Normalize() Level {
	return Level(strings.ToLower(strings.TrimSpace(string(l))))
}

// Known reports whether the level is one of low, medium or high.
func (l Level) Known() bool {
	switch l.Normalize() {
	case Low, Medium, High:
		return true
	default:
		return false
	}
}

// Score field names, in display order.
const (
	FieldOverall     = "overall_score"
	FieldFormatting  = "formatting_score"
	FieldKeyword     = "keyword_score"
	FieldContent     = "content_score"
	FieldReadability = "readability_score"
	FieldSection     = "section_score"
)

// ScoreFields lists every ATS score field; overall first.
var ScoreFields = []string{
	FieldOverall,
	FieldFormatting,
	FieldKeyword,
	FieldContent,
	FieldReadability,
	FieldSection,
}

// ATSScore values are conventionally 0-100 and are never clamped here.
type ATSScore struct {
	OverallScore     float64 `json:"overall_score"`
	FormattingScore  float64 `json:"formatting_score"`
	KeywordScore     float64 `json:"keyword_score"`
	ContentScore     float64 `json:"content_score"`
	ReadabilityScore float64 `json:"readability_score"`
	SectionScore     float64 `json:"section_score"`
}

// Score is a single named ATS score.
type Score struct {
	Field string
	Value float64
}

// Scores returns the six scores in ScoreFields order.
func (s ATSScore) Scores() []Score {
	return []Score{
		{Field: FieldOverall, Value: s.OverallScore},
		{Field: FieldFormatting, Value: s.FormattingScore},
		{Field: FieldKeyword, Value: s.KeywordScore},
		{Field: FieldContent, Value: s.ContentScore},
		{Field: FieldReadability, Value: s.ReadabilityScore},
		{Field: FieldSection, Value: s.SectionScore},
	}
}

type SkillCategory struct {
	Category         string   `json:"category"`
	Skills           []string `json:"skills"`
	ProficiencyLevel string   `json:"proficiency_level,omitempty"`
}

type SkillAnalysis struct {
	IdentifiedSkills []SkillCategory `json:"identified_skills"`
	MissingSkills    []string        `json:"missing_skills"`

	SkillRecommendations   []string `json:"skill_recommendations,omitempty"`
	TechnicalSkills        []string `json:"technical_skills,omitempty"`
	SoftSkills             []string `json:"soft_skills,omitempty"`
	IndustryRelevantSkills []string `json:"industry_relevant_skills,omitempty"`
}

type MissingComponent struct {
	Component   string `json:"component"`
	Importance  Level  `json:"importance"`
	Description string `json:"description"`
	Suggestion  string `json:"suggestion"`
}

type ImprovementSuggestion struct {
	Category   string   `json:"category"`
	Priority   Level    `json:"priority"`
	Suggestion string   `json:"suggestion"`
	Impact     string   `json:"impact"`
	Examples   []string `json:"examples,omitempty"`
}

// Report is a successful analysis response. An empty MissingComponents slice
// means every essential component is present; a missing report is nil.
type Report struct {
	ATSScore               ATSScore                `json:"ats_score"`
	SkillAnalysis          SkillAnalysis           `json:"skill_analysis"`
	MissingComponents      []MissingComponent      `json:"missing_components"`
	ImprovementSuggestions []ImprovementSuggestion `json:"improvement_suggestions"`

	ExtractedText     string `json:"extracted_text,omitempty"`
	AnalysisTimestamp string `json:"analysis_timestamp,omitempty"`
}
