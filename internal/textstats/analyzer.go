package textstats

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultMinWords is the smallest accepted input, in whitespace-delimited tokens
const DefaultMinWords = 10000

// Input rejections. Their messages are shown to the user as-is.
var (
	ErrEmptyInput  = errors.New("Please enter text to analyze")
	ErrTooFewWords = errors.New("Please enter at least 10,000 words for analysis")
)

// InputError describes why an input was rejected
type InputError struct {
	Err      error
	Words    int
	MinWords int
}

func (e *InputError) Error() string {
	if errors.Is(e.Err, ErrTooFewWords) && e.MinWords != DefaultMinWords {
		return fmt.Sprintf("Please enter at least %s words for analysis", formatThousands(e.MinWords))
	}
	return e.Err.Error()
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// VocabularyResult is the count table for one vocabulary
type VocabularyResult struct {
	Vocabulary *Vocabulary
	Counts     *TokenCountTable
}

// Analysis is the complete result for one text
type Analysis struct {
	Stats        BasicStats
	Vocabularies []VocabularyResult
	TotalTokens  int
	AnalyzedAt   time.Time
	Duration     time.Duration
}

// Result returns the table for the vocabulary with the given name
func (a *Analysis) Result(name string) (VocabularyResult, bool) {
	for _, r := range a.Vocabularies {
		if r.Vocabulary.Name == name {
			return r, true
		}
	}
	return VocabularyResult{}, false
}

// Analyzer validates text and computes its statistics
type Analyzer struct {
	minWords     int
	vocabularies []*Vocabulary
	clock        func() time.Time
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithMinWords overrides the minimum accepted word count
func WithMinWords(n int) Option {
	return func(a *Analyzer) {
		a.minWords = n
	}
}

// WithVocabularies replaces the vocabularies that are counted
func WithVocabularies(vocabularies ...*Vocabulary) Option {
	return func(a *Analyzer) {
		a.vocabularies = vocabularies
	}
}

// WithClock sets the time source used to stamp analyses
func WithClock(clock func() time.Time) Option {
	return func(a *Analyzer) {
		a.clock = clock
	}
}

// NewAnalyzer creates an analyzer counting the default vocabularies
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		minWords:     DefaultMinWords,
		vocabularies: DefaultVocabularies(),
		clock:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// MinWords returns the minimum accepted word count
func (a *Analyzer) MinWords() int {
	return a.minWords
}

// Validate checks the input preconditions without computing anything
func (a *Analyzer) Validate(text string) error {
	if strings.TrimFunc(text, isSpace) == "" {
		return &InputError{Err: ErrEmptyInput, MinWords: a.minWords}
	}
	if words := CountWords(text); words < a.minWords {
		return &InputError{Err: ErrTooFewWords, Words: words, MinWords: a.minWords}
	}
	return nil
}

// Analyze validates text and, when accepted, computes its basic statistics
// and one count table per vocabulary. A rejected input yields no partial result.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*Analysis, error) {
	if err := a.Validate(text); err != nil {
		return nil, err
	}

	start := a.clock()
	analysis := &Analysis{
		Stats:      CalculateBasicStats(text),
		AnalyzedAt: start,
	}

	tables := make([]*TokenCountTable, len(a.vocabularies))
	for i, v := range a.vocabularies {
		tables[i] = NewTokenCountTable(v)
	}

	for i, token := range Tokenize(text) {
		if i%cancelCheckPeriod == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("analysis cancelled: %w", err)
			}
		}
		analysis.TotalTokens++
		for _, table := range tables {
			table.Add(token)
		}
	}

	for i, v := range a.vocabularies {
		analysis.Vocabularies = append(analysis.Vocabularies, VocabularyResult{Vocabulary: v, Counts: tables[i]})
	}
	analysis.Duration = a.clock().Sub(start)

	return analysis, nil
}

const cancelCheckPeriod = 4096

func formatThousands(n int) string {
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		return "-" + formatThousands(-n)
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}
