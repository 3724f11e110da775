package formatter

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/yildizm/SiteLens/internal/textstats"
)

func sampleAnalysis(t *testing.T) *textstats.Analysis {
	t.Helper()
	a := textstats.NewAnalyzer(
		textstats.WithMinWords(1),
		textstats.WithClock(func() time.Time { return time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC) }),
	)
	analysis, err := a.Analyze(context.Background(), "He gave her his book and she took it to him, and he smiled.")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	return analysis
}

func TestNew(t *testing.T) {
	for _, format := range append(Formats, "md", "") {
		if _, err := New(format, false); err != nil {
			t.Errorf("New(%q) error = %v", format, err)
		}
	}
	if _, err := New("yaml", false); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestHTMLFormatterRegions(t *testing.T) {
	out, err := NewHTML().Format(sampleAnalysis(t))
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	page := string(out)

	for _, id := range []string{"basic-stats", "pronouns-count", "prepositions-count", "articles-count"} {
		if !strings.Contains(page, `<div id="`+id+`">`) {
			t.Errorf("Expected output region %s", id)
		}
	}
	if !strings.Contains(page, "<tr><td>Special Symbols:</td><td>2</td></tr>") {
		t.Error("Expected special symbol row")
	}
	if !strings.Contains(page, "<p>No matches found</p>") {
		t.Error("Expected placeholder for the empty article table")
	}
}

func TestTokenCountsTable(t *testing.T) {
	table := textstats.CountTokens("to the shop, to the park, from home", textstats.Prepositions)

	want := `<table class="stats-table"><tr><th>Token</th><th>Count</th></tr>` +
		`<tr><td>to</td><td>2</td></tr><tr><td>from</td><td>1</td></tr></table>`
	if got := TokenCountsTable(table); got != want {
		t.Errorf("TokenCountsTable() =\n%s\nwant\n%s", got, want)
	}

	empty := textstats.CountTokens("nothing", textstats.IndefiniteArticles)
	if got := TokenCountsTable(empty); got != "<p>No matches found</p>" {
		t.Errorf("Expected placeholder, got %s", got)
	}
}

func TestBasicStatsTable(t *testing.T) {
	got := BasicStatsTable(textstats.CalculateBasicStats("ab\ncd"))
	want := `<table class="stats-table">` +
		`<tr><td>Letters:</td><td>4</td></tr>` +
		`<tr><td>Words:</td><td>2</td></tr>` +
		`<tr><td>Spaces:</td><td>1</td></tr>` +
		`<tr><td>Newlines:</td><td>1</td></tr>` +
		`<tr><td>Special Symbols:</td><td>0</td></tr>` +
		`</table>`
	if got != want {
		t.Errorf("BasicStatsTable() =\n%s\nwant\n%s", got, want)
	}
}

func TestJSONFormatter(t *testing.T) {
	out, err := NewJSON().Format(sampleAnalysis(t))
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded JSONOutput
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if decoded.TotalTokens != 14 {
		t.Errorf("Expected 14 tokens, got %d", decoded.TotalTokens)
	}
	if len(decoded.Vocabularies) != 3 {
		t.Fatalf("Expected 3 vocabularies, got %d", len(decoded.Vocabularies))
	}

	pronouns := decoded.Vocabularies[0]
	if pronouns.Name != "pronouns" || pronouns.Matches[0].Token != "he" || pronouns.Matches[0].Count != 2 {
		t.Errorf("Unexpected pronoun output %+v", pronouns)
	}
	if articles := decoded.Vocabularies[2]; len(articles.Matches) != 0 {
		t.Errorf("Expected no article matches, got %+v", articles.Matches)
	}
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := NewMarkdown().Format(sampleAnalysis(t))
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	md := string(out)

	for _, want := range []string{
		"# Text Analysis Report",
		"Generated: 2024-02-03 04:05:06",
		"- [Indefinite Articles](#indefinite-articles)",
		"| Letters | 44 |",
		"| he | 2 | 14.29% |",
		"## Indefinite Articles\n\nNo matches found",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Expected markdown to contain %q", want)
		}
	}
}

func TestCSVFormatter(t *testing.T) {
	out, err := NewCSV().Format(sampleAnalysis(t))
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	if err != nil {
		t.Fatalf("Output is not valid CSV: %v", err)
	}
	if records[0][0] != "Section" || records[1][1] != "Letters" {
		t.Errorf("Unexpected leading records %v", records[:2])
	}

	found := false
	for _, r := range records {
		if r[0] == "prepositions" && r[1] == "to" && r[2] == "1" {
			found = true
		}
	}
	if !found {
		t.Error("Expected a prepositions row for 'to'")
	}
}

func TestTerminalFormatter(t *testing.T) {
	out, err := NewTerminal(false).Format(sampleAnalysis(t))
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	text := string(out)

	for _, want := range []string{"Text Analysis Summary", "Basic Statistics", "Letters", "Pronouns", "No matches found"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected terminal output to contain %q", want)
		}
	}
}

func TestTerminalFormatterListsEveryMatch(t *testing.T) {
	words := textstats.Prepositions.Words()
	a := textstats.NewAnalyzer(textstats.WithMinWords(1))
	analysis, err := a.Analyze(context.Background(), strings.Join(words, " "))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	out, err := NewTerminal(false).Format(analysis)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	text := string(out)

	for _, word := range words {
		if !strings.Contains(text, "─ "+word+": 1 ") {
			t.Errorf("Expected terminal output to list %q", word)
		}
	}
	if strings.Contains(text, "more") {
		t.Error("Terminal output should not elide matches")
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[int]string{0: "0", 999: "999", 1000: "1,000", 1234567: "1,234,567"}
	for n, want := range tests {
		if got := FormatNumber(n); got != want {
			t.Errorf("FormatNumber(%d) = %s, want %s", n, got, want)
		}
	}
}
