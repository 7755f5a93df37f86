// Package projection shapes a report into the groups shown to the user.
// Ordering from the service is preserved everywhere; nothing is re-sorted.
package projection

import (
	"github.com/spigell/resume-analyzer/internal/report"
	"github.com/spigell/resume-analyzer/internal/scoring"
)

// AllPresentMessage is shown when the service reports no missing components.
const AllPresentMessage = "All essential components are present!"

type cardInfo struct {
	title       string
	description string
}

var cards = map[string]cardInfo{
	report.FieldOverall:     {title: "Overall ATS Score"},
	report.FieldFormatting:  {title: "Formatting Score", description: "How well your resume is formatted for ATS systems"},
	report.FieldKeyword:     {title: "Keyword Score", description: "Relevance and density of industry keywords"},
	report.FieldContent:     {title: "Content Quality", description: "Overall quality and completeness of content"},
	report.FieldReadability: {title: "Readability", description: "How easy your resume is to read and understand"},
	report.FieldSection:     {title: "Section Structure", description: "Presence and organization of key resume sections"},
}

type ScoreCard struct {
	Field       string
	Title       string
	Description string
	Score       float64
	Band        scoring.Band
	Treatment   scoring.Treatment
}

type SkillGroup struct {
	Category string
	Skills   []string
}

type ComponentEntry struct {
	Component   string
	Description string
	Suggestion  string
	Tag         scoring.Tag
}

// MissingComponents is either the all-present affirmation or the list of
// missing components, never both.
type MissingComponents struct {
	AllPresent bool
	Message    string
	Entries    []ComponentEntry
}

type SuggestionEntry struct {
	Category   string
	Suggestion string
	Impact     string
	// Examples is nil unless the service sent at least one example.
	Examples []string
	Tag      scoring.Tag
}

type View struct {
	Overall ScoreCard
	// Details holds the five non-overall score cards in display order.
	Details           []ScoreCard
	Skills            []SkillGroup
	MissingSkills     []string
	MissingComponents MissingComponents
	Suggestions       []SuggestionEntry

	ExtractedText     string
	AnalysisTimestamp string
}

// Project builds the view of a report. A nil report yields nil.
func Project(r *report.Report) *View {
	if r == nil {
		return nil
	}

	v := &View{
		ExtractedText:     r.ExtractedText,
		AnalysisTimestamp: r.AnalysisTimestamp,
	}

	for _, c := range scoring.ClassifyAll(r.ATSScore) {
		card := scoreCard(c)
		if c.Field == report.FieldOverall {
			v.Overall = card
			continue
		}
		v.Details = append(v.Details, card)
	}

	v.Skills = SkillGroups(r.SkillAnalysis)
	v.MissingSkills = MissingSkills(r.SkillAnalysis)
	v.MissingComponents = Components(r.MissingComponents)
	v.Suggestions = Suggestions(r.ImprovementSuggestions)

	return v
}

func scoreCard(c scoring.Classified) ScoreCard {
	info := cards[c.Field]
	return ScoreCard{
		Field:       c.Field,
		Title:       info.title,
		Description: info.description,
		Score:       c.Score,
		Band:        c.Band,
		Treatment:   c.Treatment,
	}
}

// SkillGroups copies categories and skills verbatim.
func SkillGroups(a report.SkillAnalysis) []SkillGroup {
	groups := make([]SkillGroup, 0, len(a.IdentifiedSkills))
	for _, category := range a.IdentifiedSkills {
		groups = append(groups, SkillGroup{
			Category: category.Category,
			Skills:   append([]string(nil), category.Skills...),
		})
	}
	return groups
}

// MissingSkills returns nil when there is nothing to suggest.
func MissingSkills(a report.SkillAnalysis) []string {
	if len(a.MissingSkills) == 0 {
		return nil
	}
	return append([]string(nil), a.MissingSkills...)
}

func Components(items []report.MissingComponent) MissingComponents {
	if len(items) == 0 {
		return MissingComponents{AllPresent: true, Message: AllPresentMessage}
	}

	entries := make([]ComponentEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, ComponentEntry{
			Component:   item.Component,
			Description: item.Description,
			Suggestion:  item.Suggestion,
			Tag:         scoring.TagFor(item.Importance),
		})
	}

	return MissingComponents{Entries: entries}
}

func Suggestions(items []report.ImprovementSuggestion) []SuggestionEntry {
	entries := make([]SuggestionEntry, 0, len(items))
	for _, item := range items {
		entry := SuggestionEntry{
			Category:   item.Category,
			Suggestion: item.Suggestion,
			Impact:     item.Impact,
			Tag:        scoring.TagFor(item.Priority),
		}
		if len(item.Examples) > 0 {
			entry.Examples = append([]string(nil), item.Examples...)
		}
		entries = append(entries, entry)
	}
	return entries
}
