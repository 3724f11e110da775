package formatter

import (
	"encoding/json"
	"time"

	"github.com/yildizm/SiteLens/internal/textstats"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

// JSONOutput is the top-level JSON document
type JSONOutput struct {
	AnalyzedAt   time.Time               `json:"analyzed_at"`
	TotalTokens  int                     `json:"total_tokens"`
	Stats        textstats.BasicStats    `json:"basic_stats"`
	Vocabularies []*VocabularyJSONOutput `json:"vocabularies"`
}

// VocabularyJSONOutput holds the ranked counts for one vocabulary
type VocabularyJSONOutput struct {
	Name    string                 `json:"name"`
	Title   string                 `json:"title"`
	Total   int                    `json:"total"`
	Matches []textstats.TokenCount `json:"matches"`
}

func (f *jsonFormatter) Format(analysis *textstats.Analysis) ([]byte, error) {
	output := &JSONOutput{
		AnalyzedAt:   analysis.AnalyzedAt,
		TotalTokens:  analysis.TotalTokens,
		Stats:        analysis.Stats,
		Vocabularies: make([]*VocabularyJSONOutput, 0, len(analysis.Vocabularies)),
	}

	for _, result := range analysis.Vocabularies {
		output.Vocabularies = append(output.Vocabularies, &VocabularyJSONOutput{
			Name:    result.Vocabulary.Name,
			Title:   result.Vocabulary.Title,
			Total:   result.Counts.Total(),
			Matches: result.Counts.Ranked(),
		})
	}

	return json.MarshalIndent(output, "", "  ")
}
