package formatter

import (
	"fmt"

	"github.com/yildizm/SiteLens/internal/textstats"
)

const (
	// NoMatchesText replaces an empty token table
	NoMatchesText = "No matches found"
	// BasicStatsRegion is the output region holding the basic statistics
	BasicStatsRegion = "basic-stats"
)

// StatRow is one labelled basic statistic
type StatRow struct {
	Label string
	Value int
}

// BasicStatRows lists the basic statistics in display order
func BasicStatRows(stats textstats.BasicStats) []StatRow {
	return []StatRow{
		{Label: "Letters", Value: stats.Letters},
		{Label: "Words", Value: stats.Words},
		{Label: "Spaces", Value: stats.Spaces},
		{Label: "Newlines", Value: stats.Newlines},
		{Label: "Special Symbols", Value: stats.SpecialSymbols},
	}
}

// RegionID returns the output region id for a vocabulary
func RegionID(v *textstats.Vocabulary) string {
	return v.Name + "-count"
}

// FormatNumber formats numbers with commas for readability
func FormatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return addCommas(fmt.Sprintf("%d", n))
}

// addCommas adds commas to number strings
func addCommas(s string) string {
	if len(s) <= 3 {
		return s
	}
	return addCommas(s[:len(s)-3]) + "," + s[len(s)-3:]
}

// share returns count as a percentage of total
func share(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
