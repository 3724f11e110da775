package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/yildizm/SiteLens/internal/config"
	"github.com/yildizm/SiteLens/internal/formatter"
	"github.com/yildizm/SiteLens/internal/logger"
	"github.com/yildizm/SiteLens/internal/textstats"
	"github.com/yildizm/SiteLens/internal/ui"
)

var (
	analyzeMinWords   int
	analyzeTimeout    time.Duration
	analyzeNoTUI      bool
	analyzeOutputFile string
	analyzeVocab      []string
)

// isTerminal reports whether stdout is an interactive terminal
var isTerminal = func() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyze a block of text",
		Long: `Count letters, words, whitespace, newlines and special symbols in a text,
and tally the pronouns, prepositions and indefinite articles it uses.

If no file is specified, reads from stdin. Texts shorter than the minimum word
count (10,000 by default) are rejected.

Examples:
  sitelens analyze essay.txt
  sitelens analyze -o html --output-file report.html essay.txt
  cat essay.txt | sitelens analyze --no-tui
  sitelens analyze --vocab pronouns,articles essay.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().IntVar(&analyzeMinWords, "min-words", textstats.DefaultMinWords, "minimum number of words to accept")
	cmd.Flags().DurationVar(&analyzeTimeout, "timeout", 30*time.Second, "analysis timeout")
	cmd.Flags().BoolVar(&analyzeNoTUI, "no-tui", false, "disable terminal UI, output to stdout")
	cmd.Flags().StringVar(&analyzeOutputFile, "output-file", "", "save output to file instead of stdout")
	cmd.Flags().StringSliceVar(&analyzeVocab, "vocab", nil, "vocabularies to count (default: all)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	log := newLogger("analyze")

	// Use config values if flags weren't explicitly set
	if !cmd.Flag("timeout").Changed {
		analyzeTimeout = cfg.Analysis.Timeout
	}
	if !cmd.Flag("min-words").Changed {
		analyzeMinWords = cfg.Analysis.MinWords
	}
	if analyzeMinWords < 1 {
		return fmt.Errorf("--min-words must be greater than 0")
	}

	text, source, err := readAnalyzeInput(cmd, args, cfg.Analysis.MaxInputBytes, log)
	if err != nil {
		return err
	}

	vocabularies, err := buildVocabularies(cfg, analyzeVocab)
	if err != nil {
		return err
	}

	analyzer := textstats.NewAnalyzer(
		textstats.WithMinWords(analyzeMinWords),
		textstats.WithVocabularies(vocabularies...),
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if analyzeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, analyzeTimeout)
		defer cancel()
	}

	if shouldUseTUIMode() {
		log.Debug("launching interactive terminal UI")
		theme, ok := ui.ThemeByName(cfg.Output.Theme)
		if !ok {
			log.Warn("unknown theme %q, using default", cfg.Output.Theme)
			theme = ui.DefaultTheme
		}
		_, err := ui.Run(ctx, analyzer, text, ui.Options{Theme: theme, Color: useColor(), Source: source})
		return err
	}

	log.InfoWithFields("analyzing text", []logger.Field{
		logger.F("source", source),
		logger.F("min_words", analyzeMinWords),
		logger.Count(len(vocabularies)),
	})

	analysis, err := analyzer.Analyze(ctx, text)
	if err != nil {
		return err
	}

	log.InfoWithFields("analysis complete", []logger.Field{
		logger.F("tokens", analysis.TotalTokens),
		logger.Duration(analysis.Duration),
	})

	return formatAndOutputResults(cmd.OutOrStdout(), analysis, log)
}

// shouldUseTUIMode decides between the interactive viewer and plain output
func shouldUseTUIMode() bool {
	return !analyzeNoTUI &&
		getOutputFormat() == "text" &&
		!isVerbose() &&
		analyzeOutputFile == "" &&
		isTerminal()
}

// readAnalyzeInput reads the whole text from the file argument or stdin
func readAnalyzeInput(cmd *cobra.Command, args []string, maxBytes int64, log *logger.Logger) (text, source string, err error) {
	var reader io.Reader
	source = "stdin"

	if len(args) == 0 {
		log.Debug("reading from stdin")
		reader = cmd.InOrStdin()
	} else {
		filename := args[0]
		if err := validateFilePath(filename); err != nil {
			return "", "", fmt.Errorf("invalid file path: %w", err)
		}

		cleanPath := filepath.Clean(filename)
		// #nosec G304 - path is validated above
		file, err := os.Open(cleanPath)
		if err != nil {
			return "", "", fmt.Errorf("failed to open file %s: %w", filename, err)
		}
		defer func() {
			if closeErr := file.Close(); closeErr != nil {
				log.Warn("failed to close file: %v", closeErr)
			}
		}()

		log.Debug("analyzing file: %s", cleanPath)
		reader = file
		source = filepath.Base(cleanPath)
	}

	data, err := io.ReadAll(io.LimitReader(reader, maxBytes+1))
	if err != nil {
		return "", "", fmt.Errorf("failed to read input: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return "", "", fmt.Errorf("input exceeds the %d byte limit (analysis.max_input_bytes)", maxBytes)
	}

	return string(data), source, nil
}

// buildVocabularies assembles the built-in and configured vocabularies,
// keeping only the named ones when names is not empty
func buildVocabularies(cfg *config.Config, names []string) ([]*textstats.Vocabulary, error) {
	var all []*textstats.Vocabulary
	if !cfg.Analysis.DisableDefaultVocabularies {
		all = append(all, textstats.DefaultVocabularies()...)
	}
	for _, vc := range cfg.Analysis.Vocabularies {
		title := vc.Title
		if title == "" {
			title = vc.Name
		}
		all = append(all, textstats.NewVocabulary(vc.Name, title, vc.Words))
	}

	if len(names) == 0 {
		return all, nil
	}

	byName := make(map[string]*textstats.Vocabulary, len(all))
	available := make([]string, 0, len(all))
	for _, v := range all {
		byName[strings.ToLower(v.Name)] = v
		available = append(available, v.Name)
	}

	selected := make([]*textstats.Vocabulary, 0, len(names))
	for _, name := range names {
		v, ok := byName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown vocabulary %s. Available vocabularies: %s", name, strings.Join(available, ", "))
		}
		selected = append(selected, v)
	}
	return selected, nil
}

// formatAndOutputResults formats analysis results and handles output
func formatAndOutputResults(out io.Writer, analysis *textstats.Analysis, log *logger.Logger) error {
	formatterInstance, err := formatter.New(getOutputFormat(), useColor() && analyzeOutputFile == "")
	if err != nil {
		return fmt.Errorf("failed to get formatter: %w", err)
	}

	output, err := formatterInstance.Format(analysis)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	return handleOutputDestination(out, output, log)
}

// handleOutputDestination writes output to file or stdout
func handleOutputDestination(out io.Writer, output []byte, log *logger.Logger) error {
	if analyzeOutputFile == "" {
		if _, err := out.Write(output); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if err := validateOutputFilePath(analyzeOutputFile); err != nil {
		return fmt.Errorf("invalid output file path: %w", err)
	}
	if err := writeOutputBytesToFile(output, analyzeOutputFile, log); err != nil {
		return fmt.Errorf("failed to write output to file: %w", err)
	}

	log.Info("output saved to: %s", analyzeOutputFile)
	return nil
}

func validateFilePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", cleanPath)
		}
		return fmt.Errorf("cannot access file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", cleanPath)
	}

	return nil
}

func validateOutputFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}
	return nil
}

// writeOutputBytesToFile writes output to a file with proper error handling
func writeOutputBytesToFile(output []byte, filePath string, log *logger.Logger) error {
	cleanPath := filepath.Clean(filePath)

	file, err := os.Create(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Warn("failed to close output file: %v", closeErr)
		}
	}()

	if _, err := file.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	// Sync to ensure data is written
	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync output file: %w", err)
	}

	return nil
}
