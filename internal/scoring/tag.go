package scoring

import (
	"fmt"

	"github.com/spigell/resume-analyzer/internal/report"
)

// Tag is the visual priority badge of a missing component or suggestion.
type Tag struct {
	Level report.Level
	Label string
	Class string
}

var tagClasses = map[report.Level]string{
	report.High:   "badge-error",
	report.Medium: "badge-warning",
	report.Low:    "badge-primary",
}

// TagFor returns the badge for a level. Unrecognised levels keep their text
// but get the low-priority class.
func TagFor(level report.Level) Tag {
	level = level.Normalize()

	class, ok := tagClasses[level]
	if !ok {
		class = tagClasses[report.Low]
	}

	return Tag{
		Level: level,
		Label: fmt.Sprintf("%s priority", level),
		Class: class,
	}
}
