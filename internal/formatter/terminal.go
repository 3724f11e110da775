package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/SiteLens/internal/emoji"
	"github.com/yildizm/SiteLens/internal/textstats"
	"github.com/yildizm/go-termfmt"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts   *termfmt.TerminalOptions
	header lipgloss.Style
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = !emoji.IsEmojiDisabled()

	header := lipgloss.NewStyle()
	if color {
		header = header.Bold(true).Foreground(lipgloss.Color("#3B82F6"))
	}

	return &terminalFormatter{opts: opts, header: header}
}

func (f *terminalFormatter) Format(analysis *textstats.Analysis) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b)
	f.writeStatistics(&b, analysis)

	for _, result := range analysis.Vocabularies {
		f.writeVocabulary(&b, result, analysis.TotalTokens)
	}

	return []byte(b.String()), nil
}

// writeHeader writes a boxed title
func (f *terminalFormatter) writeHeader(b *strings.Builder) {
	header := "Text Analysis Summary"
	headerLen := len(header)

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + f.header.Render(header) + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")
}

// writeStatistics writes the basic statistics as a tree
func (f *terminalFormatter) writeStatistics(b *strings.Builder, analysis *textstats.Analysis) {
	symbol := termfmt.GetEmoji("statistics", f.opts)
	b.WriteString(symbol + " " + f.header.Render("Basic Statistics") + "\n")

	rows := BasicStatRows(analysis.Stats)
	items := make([]termfmt.TreeItem, 0, len(rows))
	for i, row := range rows {
		items = append(items, termfmt.TreeItem{
			Label: row.Label,
			Value: FormatNumber(row.Value),
			Last:  i == len(rows)-1,
		})
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

// writeVocabulary writes every non-zero match of one vocabulary
func (f *terminalFormatter) writeVocabulary(b *strings.Builder, result textstats.VocabularyResult, totalTokens int) {
	symbol := termfmt.GetEmoji("pattern", f.opts)
	b.WriteString(symbol + " " + f.header.Render(result.Vocabulary.Title) + "\n")

	ranked := result.Counts.Ranked()
	if len(ranked) == 0 {
		b.WriteString("└─ " + NoMatchesText + "\n\n")
		return
	}

	items := make([]termfmt.TreeItem, 0, len(ranked))
	for i, tc := range ranked {
		items = append(items, termfmt.TreeItem{
			Label: tc.Token,
			Value: fmt.Sprintf("%s (%.2f%%)", FormatNumber(tc.Count), share(tc.Count, totalTokens)),
			Last:  i == len(ranked)-1,
		})
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}
