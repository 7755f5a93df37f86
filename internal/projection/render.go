package projection

import (
	"fmt"
	"io"
	"strings"

	"github.com/spigell/resume-analyzer/internal/utils"
)

const extractedPreviewLength = 300

// FormatScore prints a score with one decimal, as on the score cards.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.1f%%", score)
}

// Render writes a plain-text rendition of the view.
func Render(w io.Writer, v *View) error {
	if v == nil {
		return nil
	}

	p := &printer{w: w}

	p.linef("%s: %s [%s]", v.Overall.Title, FormatScore(v.Overall.Score), v.Overall.Treatment.Label)
	if v.AnalysisTimestamp != "" {
		p.linef("Analyzed at: %s", v.AnalysisTimestamp)
	}
	p.line("")

	for _, card := range v.Details {
		p.linef("  %-18s %7s  %-17s %s", card.Title, FormatScore(card.Score), card.Treatment.Label, card.Description)
	}

	p.section("Skills Analysis")
	for _, group := range v.Skills {
		p.linef("  %s: %s", group.Category, strings.Join(group.Skills, ", "))
	}
	if len(v.MissingSkills) > 0 {
		p.line("  Suggested Skills to Add:")
		for _, skill := range v.MissingSkills {
			p.linef("    [%s]", skill)
		}
	}

	p.section("Missing Components")
	if v.MissingComponents.AllPresent {
		p.linef("  %s", v.MissingComponents.Message)
	}
	for _, entry := range v.MissingComponents.Entries {
		p.linef("  %s (%s)", entry.Component, entry.Tag.Label)
		p.linef("    %s", entry.Description)
		p.linef("    Tip: %s", entry.Suggestion)
	}

	p.section("Improvement Suggestions")
	for _, entry := range v.Suggestions {
		p.linef("  %s (%s)", entry.Category, entry.Tag.Label)
		p.linef("    %s", entry.Suggestion)
		p.linef("    Impact: %s", entry.Impact)
		if len(entry.Examples) > 0 {
			p.line("    Examples:")
			for _, example := range entry.Examples {
				p.linef("      - %s", example)
			}
		}
	}

	if v.ExtractedText != "" {
		p.section("Extracted Text")
		p.linef("  %s", utils.TruncateForLog(v.ExtractedText, extractedPreviewLength))
	}

	return p.err
}

// printer keeps the first write error so Render can stay linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, s)
}

func (p *printer) linef(format string, args ...any) {
	p.line(fmt.Sprintf(format, args...))
}

func (p *printer) section(title string) {
	p.line("")
	p.line(title)
}
