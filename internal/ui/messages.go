package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/SiteLens/internal/textstats"
)

// Message types shared by the viewer
type analysisCompleteMsg struct {
	analysis *textstats.Analysis
}

type analysisErrorMsg struct {
	err error
}

type tickMsg time.Time

// tick drives the spinner while an analysis runs
func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// CreateAnalysisCommand creates a tea command that analyzes text
func CreateAnalysisCommand(ctx context.Context, analyzer *textstats.Analyzer, text string) tea.Cmd {
	return func() tea.Msg {
		analysis, err := analyzer.Analyze(ctx, text)
		if err != nil {
			return analysisErrorMsg{err: err}
		}
		return analysisCompleteMsg{analysis: analysis}
	}
}
