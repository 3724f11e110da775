package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/SiteLens/internal/textstats"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(analysis *textstats.Analysis) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Text Analysis Report\n\n")
	if !analysis.AnalyzedAt.IsZero() {
		fmt.Fprintf(&b, "Generated: %s\n\n", analysis.AnalyzedAt.Format("2006-01-02 15:04:05"))
	}

	f.writeTableOfContents(&b, analysis)
	f.writeBasicStats(&b, analysis.Stats)

	for _, result := range analysis.Vocabularies {
		f.writeVocabulary(&b, result, analysis.TotalTokens)
	}

	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeTableOfContents(b *strings.Builder, analysis *textstats.Analysis) {
	b.WriteString("## Table of Contents\n")
	b.WriteString("- [Basic Statistics](#basic-statistics)\n")
	for _, result := range analysis.Vocabularies {
		fmt.Fprintf(b, "- [%s](#%s)\n", result.Vocabulary.Title, anchor(result.Vocabulary.Title))
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeBasicStats(b *strings.Builder, stats textstats.BasicStats) {
	b.WriteString("## Basic Statistics\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	for _, row := range BasicStatRows(stats) {
		fmt.Fprintf(b, "| %s | %s |\n", row.Label, FormatNumber(row.Value))
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeVocabulary(b *strings.Builder, result textstats.VocabularyResult, totalTokens int) {
	fmt.Fprintf(b, "## %s\n\n", result.Vocabulary.Title)

	ranked := result.Counts.Ranked()
	if len(ranked) == 0 {
		b.WriteString(NoMatchesText + "\n\n")
		return
	}

	b.WriteString("| Token | Count | Share |\n")
	b.WriteString("|-------|-------|-------|\n")
	for _, tc := range ranked {
		fmt.Fprintf(b, "| %s | %s | %.2f%% |\n", tc.Token, FormatNumber(tc.Count), share(tc.Count, totalTokens))
	}
	b.WriteString("\n")
}

// anchor converts a heading to its GitHub-style anchor
func anchor(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "-")
}
