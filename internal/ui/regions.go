package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/SiteLens/internal/emoji"
	"github.com/yildizm/SiteLens/internal/formatter"
	"github.com/yildizm/SiteLens/internal/textstats"
)

// Region is one output region of an analysis, shown as a tab
type Region struct {
	ID    string
	Title string

	columns [2]string
	rows    [][2]string
	offset  int // first visible row
}

// regionFixedLines counts the lines a table region draws around its rows:
// title, spacing, column header and rule, plus the scroll indicator
const regionFixedLines = 6

// Empty reports whether the region has nothing to tabulate
func (r Region) Empty() bool {
	return len(r.rows) == 0
}

// buildRegions lists the basic statistics followed by one region per vocabulary
func buildRegions(analysis *textstats.Analysis) []Region {
	regions := make([]Region, 0, len(analysis.Vocabularies)+1)

	basic := Region{
		ID:      formatter.BasicStatsRegion,
		Title:   "Basic Statistics",
		columns: [2]string{"Statistic", "Value"},
	}
	for _, row := range formatter.BasicStatRows(analysis.Stats) {
		basic.rows = append(basic.rows, [2]string{row.Label + ":", formatter.FormatNumber(row.Value)})
	}
	regions = append(regions, basic)

	for _, result := range analysis.Vocabularies {
		region := Region{
			ID:      formatter.RegionID(result.Vocabulary),
			Title:   result.Vocabulary.Title,
			columns: [2]string{"Token", "Count"},
		}
		for _, tc := range result.Counts.Ranked() {
			region.rows = append(region.rows, [2]string{tc.Token, formatter.FormatNumber(tc.Count)})
		}
		regions = append(regions, region)
	}

	return regions
}

// scroll moves the visible window by delta rows, keeping it within the table
func (r *Region) scroll(delta, visible int) {
	r.offset = clampOffset(r.offset+delta, len(r.rows), visible)
}

func clampOffset(offset, rows, visible int) int {
	maxOffset := rows - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	return min(max(offset, 0), maxOffset)
}

// render draws the region as a two column table showing at most maxRows rows
func (r Region) render(styles Styles, maxRows int) string {
	icon := emoji.GetEmoji("vocabulary")
	if r.ID == formatter.BasicStatsRegion {
		icon = emoji.GetEmoji("statistics")
	}
	title := styles.Header.Render(icon + " " + r.Title)

	if r.Empty() {
		return lipgloss.JoinVertical(lipgloss.Left, title, "", styles.Muted.Render(formatter.NoMatchesText))
	}

	labelWidth := lipgloss.Width(r.columns[0])
	valueWidth := lipgloss.Width(r.columns[1])
	for _, row := range r.rows {
		labelWidth = max(labelWidth, lipgloss.Width(row[0]))
		valueWidth = max(valueWidth, lipgloss.Width(row[1]))
	}

	// Calculate visible range
	if maxRows < 1 {
		maxRows = 1
	}
	startIndex := clampOffset(r.offset, len(r.rows), maxRows)
	endIndex := min(startIndex+maxRows, len(r.rows))

	lines := make([]string, 0, endIndex-startIndex+regionFixedLines)
	lines = append(lines, title, "")
	lines = append(lines, styles.Header.Render(fmt.Sprintf("%-*s  %*s", labelWidth, r.columns[0], valueWidth, r.columns[1])))
	lines = append(lines, styles.Muted.Render(strings.Repeat("─", labelWidth+valueWidth+2)))
	for _, row := range r.rows[startIndex:endIndex] {
		label := styles.Label.Render(fmt.Sprintf("%-*s", labelWidth, row[0]))
		value := styles.Value.Render(fmt.Sprintf("%*s", valueWidth, row[1]))
		lines = append(lines, label+"  "+value)
	}

	// Add scrolling indicator
	if len(r.rows) > maxRows {
		scrollInfo := fmt.Sprintf("(%d-%d of %d)", startIndex+1, endIndex, len(r.rows))
		lines = append(lines, "", styles.Muted.Render(scrollInfo))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
