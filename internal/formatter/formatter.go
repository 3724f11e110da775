package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/SiteLens/internal/textstats"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(analysis *textstats.Analysis) ([]byte, error)
}

// Formats lists the supported output formats
var Formats = []string{"text", "html", "json", "markdown", "csv"}

// New returns the formatter for the named format
func New(format string, color bool) (Formatter, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return NewTerminal(color), nil
	case "html":
		return NewHTML(), nil
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "csv":
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("unknown output format %s. Available formats: %s", format, strings.Join(Formats, ", "))
	}
}
