package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yildizm/SiteLens/internal/config"
	"github.com/yildizm/SiteLens/internal/formatter"
	"github.com/yildizm/SiteLens/internal/textstats"
)

// sampleSentence has 7 words: pronouns she/it, prepositions in, article a
const sampleSentence = "She saw a cat in it today.\n"

func TestShouldUseTUIMode(t *testing.T) {
	tests := []struct {
		name           string
		noTUI          bool
		outputFormat   string
		verbose        bool
		outputFile     string
		terminal       bool
		expectedResult bool
	}{
		{
			name:           "should use TUI - all conditions met",
			outputFormat:   "text",
			terminal:       true,
			expectedResult: true,
		},
		{
			name:           "should not use TUI - no-tui flag set",
			noTUI:          true,
			outputFormat:   "text",
			terminal:       true,
			expectedResult: false,
		},
		{
			name:           "should not use TUI - json output",
			outputFormat:   "json",
			terminal:       true,
			expectedResult: false,
		},
		{
			name:           "should not use TUI - verbose mode",
			outputFormat:   "text",
			verbose:        true,
			terminal:       true,
			expectedResult: false,
		},
		{
			name:           "should not use TUI - output file",
			outputFormat:   "text",
			outputFile:     "report.txt",
			terminal:       true,
			expectedResult: false,
		},
		{
			name:           "should not use TUI - stdout is not a terminal",
			outputFormat:   "text",
			terminal:       false,
			expectedResult: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldAnalyzeNoTUI := analyzeNoTUI
			oldVerbose := verbose
			oldOutputFmt := outputFmt
			oldOutputFile := analyzeOutputFile
			oldIsTerminal := isTerminal

			analyzeNoTUI = tt.noTUI
			verbose = tt.verbose
			outputFmt = tt.outputFormat
			analyzeOutputFile = tt.outputFile
			isTerminal = func() bool { return tt.terminal }

			defer func() {
				analyzeNoTUI = oldAnalyzeNoTUI
				verbose = oldVerbose
				outputFmt = oldOutputFmt
				analyzeOutputFile = oldOutputFile
				isTerminal = oldIsTerminal
			}()

			result := shouldUseTUIMode()
			if result != tt.expectedResult {
				t.Errorf("shouldUseTUIMode() = %v, want %v", result, tt.expectedResult)
			}
		})
	}
}

func TestAnalyzeCommandJSON(t *testing.T) {
	env := newTestEnv(t)
	input := filepath.Join(env.dir, "essay.txt")
	writeFile(t, input, strings.Repeat(sampleSentence, 3))

	out, err := env.run(t, "analyze", "--min-words", "21", "-o", "json", input)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	var result formatter.JSONOutput
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}

	if result.Stats.Words != 21 {
		t.Errorf("words = %d, want 21", result.Stats.Words)
	}
	if result.Stats.Newlines != 3 {
		t.Errorf("newlines = %d, want 3", result.Stats.Newlines)
	}
	if len(result.Vocabularies) != 3 {
		t.Fatalf("vocabularies = %d, want 3", len(result.Vocabularies))
	}

	pronouns := result.Vocabularies[0]
	if pronouns.Name != "pronouns" || pronouns.Total != 6 {
		t.Errorf("pronouns = %+v, want 6 matches", pronouns)
	}
	articles := result.Vocabularies[2]
	if len(articles.Matches) != 1 || articles.Matches[0].Token != "a" || articles.Matches[0].Count != 3 {
		t.Errorf("articles matches = %+v, want a:3", articles.Matches)
	}
}

func TestAnalyzeCommandHTMLToFile(t *testing.T) {
	env := newTestEnv(t)
	input := filepath.Join(env.dir, "essay.txt")
	writeFile(t, input, strings.Repeat(sampleSentence, 2))
	report := filepath.Join(env.dir, "report.html")

	out, err := env.run(t, "analyze", "--min-words", "14", "-o", "html", "--output-file", report, input)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if out != "" {
		t.Errorf("expected nothing on stdout, got %q", out)
	}

	data, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	for _, id := range []string{`id="basic-stats"`, `id="pronouns-count"`, `id="prepositions-count"`, `id="articles-count"`} {
		if !strings.Contains(string(data), id) {
			t.Errorf("report missing %s", id)
		}
	}
}

func TestAnalyzeCommandRejections(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		wantErr error
		wantMsg string
	}{
		{
			name:    "empty input",
			stdin:   "",
			wantErr: textstats.ErrEmptyInput,
			wantMsg: "Please enter text to analyze",
		},
		{
			name:    "whitespace only",
			stdin:   "  \n\t  ",
			wantErr: textstats.ErrEmptyInput,
			wantMsg: "Please enter text to analyze",
		},
		{
			name:    "too few words",
			stdin:   strings.Repeat(sampleSentence, 10),
			wantErr: textstats.ErrTooFewWords,
			wantMsg: "Please enter at least 10,000 words for analysis",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			_, err := executeCommand(t, strings.NewReader(tt.stdin),
				"--config", env.configPath, "analyze", "--no-tui")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestAnalyzeCommandInputLimit(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "limits.yaml")
	writeFile(t, configPath, "analysis:\n  max_input_bytes: 16\n")

	_, err := executeCommand(t, strings.NewReader(strings.Repeat("word ", 10)),
		"--config", configPath, "analyze", "--no-tui")
	if err == nil || !strings.Contains(err.Error(), "byte limit") {
		t.Errorf("expected byte limit error, got %v", err)
	}
}

func TestBuildVocabularies(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Analysis.Vocabularies = []config.VocabularyConfig{
		{Name: "conjunctions", Words: []string{"and", "or"}},
	}

	all, err := buildVocabularies(cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	names := make([]string, 0, len(all))
	for _, v := range all {
		names = append(names, v.Name)
	}
	if got := strings.Join(names, ","); got != "pronouns,prepositions,articles,conjunctions" {
		t.Errorf("vocabularies = %s", got)
	}
	if all[3].Title != "conjunctions" {
		t.Errorf("untitled vocabulary should fall back to its name, got %q", all[3].Title)
	}

	selected, err := buildVocabularies(cfg, []string{"Articles", "conjunctions"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(selected) != 2 || selected[0].Name != "articles" || selected[1].Name != "conjunctions" {
		t.Errorf("unexpected selection: %v", selected)
	}

	if _, err := buildVocabularies(cfg, []string{"adverbs"}); err == nil {
		t.Error("expected unknown vocabulary to fail")
	}

	cfg.Analysis.DisableDefaultVocabularies = true
	onlyExtra, err := buildVocabularies(cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(onlyExtra) != 1 || onlyExtra[0].Name != "conjunctions" {
		t.Errorf("expected only configured vocabulary, got %v", onlyExtra)
	}
}

func TestValidateFilePath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "input.txt")
	writeFile(t, file, "text")

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"existing file", file, false},
		{"empty path", "", true},
		{"missing file", filepath.Join(dir, "missing.txt"), true},
		{"directory", dir, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFilePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFilePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
