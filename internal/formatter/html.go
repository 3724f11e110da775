package formatter

import (
	"fmt"
	"html"
	"strings"

	"github.com/yildizm/SiteLens/internal/textstats"
)

// htmlFormatter renders the analyzer page: one output region per result set
type htmlFormatter struct{}

// NewHTML creates a new HTML formatter
func NewHTML() Formatter {
	return &htmlFormatter{}
}

func (f *htmlFormatter) Format(analysis *textstats.Analysis) ([]byte, error) {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>Text Analysis</title>\n")
	b.WriteString("<style>.stats-table{border-collapse:collapse}.stats-table td,.stats-table th{border:1px solid #ccc;padding:4px 8px}</style>\n")
	b.WriteString("</head>\n<body>\n")

	writeRegion(&b, BasicStatsRegion, "Basic Statistics", BasicStatsTable(analysis.Stats))
	for _, result := range analysis.Vocabularies {
		writeRegion(&b, RegionID(result.Vocabulary), result.Vocabulary.Title, TokenCountsTable(result.Counts))
	}

	b.WriteString("</body>\n</html>\n")
	return []byte(b.String()), nil
}

func writeRegion(b *strings.Builder, id, title, body string) {
	fmt.Fprintf(b, "<h2>%s</h2>\n<div id=\"%s\">\n%s\n</div>\n", html.EscapeString(title), id, body)
}

// BasicStatsTable renders the basic statistics region body
func BasicStatsTable(stats textstats.BasicStats) string {
	var b strings.Builder
	b.WriteString("<table class=\"stats-table\">")
	for _, row := range BasicStatRows(stats) {
		fmt.Fprintf(&b, "<tr><td>%s:</td><td>%d</td></tr>", row.Label, row.Value)
	}
	b.WriteString("</table>")
	return b.String()
}

// TokenCountsTable renders a token count region body: non-zero counts,
// highest first, or a placeholder when nothing matched.
func TokenCountsTable(table *textstats.TokenCountTable) string {
	ranked := table.Ranked()
	if len(ranked) == 0 {
		return "<p>" + NoMatchesText + "</p>"
	}

	var b strings.Builder
	b.WriteString("<table class=\"stats-table\">")
	b.WriteString("<tr><th>Token</th><th>Count</th></tr>")
	for _, tc := range ranked {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%d</td></tr>", html.EscapeString(tc.Token), tc.Count)
	}
	b.WriteString("</table>")
	return b.String()
}
