package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/SiteLens/internal/emoji"
	"github.com/yildizm/SiteLens/internal/textstats"
)

var spinnerChars = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Options configure the results viewer
type Options struct {
	Theme  Theme
	Color  bool
	Source string // shown in the title bar, e.g. the input file name
}

// Model is the interactive results viewer.
//
// The analysis runs as a command when the program starts. An accepted text
// is shown as one tab per output region; a rejected text replaces the
// results with a notice that must be dismissed.
type Model struct {
	ctx      context.Context
	analyzer *textstats.Analyzer
	text     string
	styles   Styles
	source   string

	width  int
	height int
	ready  bool

	analyzing    bool
	spinnerFrame int
	analysis     *textstats.Analysis
	regions      []Region
	active       int
	err          error
	quitting     bool
}

// NewModel creates a viewer that will analyze text with analyzer
func NewModel(ctx context.Context, analyzer *textstats.Analyzer, text string, opts Options) *Model {
	if opts.Theme.Name == "" {
		opts.Theme = DefaultTheme
	}
	return &Model{
		ctx:      ctx,
		analyzer: analyzer,
		text:     text,
		styles:   NewStyles(opts.Theme, opts.Color),
		source:   opts.Source,
	}
}

// Init starts the analysis
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.startAnalysis(), tick())
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tickMsg:
		if !m.analyzing {
			return m, nil
		}
		m.spinnerFrame = (m.spinnerFrame + 1) % len(spinnerChars)
		return m, tick()
	case analysisCompleteMsg:
		m.analyzing = false
		m.analysis = msg.analysis
		m.regions = buildRegions(msg.analysis)
		m.active = 0
	case analysisErrorMsg:
		m.analyzing = false
		m.err = msg.err
	}
	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	// The rejection notice blocks everything except dismissing it
	if m.err != nil {
		switch key {
		case "enter", "esc", " ":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if len(m.regions) == 0 {
		return m, nil
	}

	switch key {
	case "up", "k":
		m.scrollActive(-1)
	case "down", "j":
		m.scrollActive(1)
	case "pgup":
		m.scrollActive(-m.visibleRows())
	case "pgdown":
		m.scrollActive(m.visibleRows())
	case "tab", "right", "l":
		m.active = (m.active + 1) % len(m.regions)
	case "shift+tab", "left", "h":
		m.active = (m.active - 1 + len(m.regions)) % len(m.regions)
	case "home", "g":
		m.active = 0
	case "end", "G":
		m.active = len(m.regions) - 1
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.regions) {
			m.active = n - 1
		}
	}
	return m, nil
}

func (m *Model) scrollActive(delta int) {
	m.regions[m.active].scroll(delta, m.visibleRows())
}

// visibleRows is how many table rows fit in the window once the title, tabs,
// box frame, region header and footer lines are drawn
func (m *Model) visibleRows() int {
	chrome := lipgloss.Height(m.renderHeader()) +
		lipgloss.Height(m.renderFooter()) +
		m.styles.Box.GetVerticalFrameSize() +
		regionFixedLines
	return max(m.height-chrome, 1)
}

// View renders the viewer
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch {
	case m.err != nil:
		content = m.renderNotice()
	case m.analyzing || m.analysis == nil:
		content = m.renderAnalyzing()
	default:
		content = m.renderResults()
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderAnalyzing() string {
	line := fmt.Sprintf("%s Analyzing text...", spinnerChars[m.spinnerFrame])
	return m.styles.Box.Render(lipgloss.JoinVertical(lipgloss.Center,
		m.styles.Title.Render(line),
		"",
		m.styles.Muted.Render("Press q to quit"),
	))
}

func (m *Model) renderNotice() string {
	notice := m.styles.Notice.Render(emoji.GetEmoji("warning") + " " + m.err.Error())
	return m.styles.Box.Render(lipgloss.JoinVertical(lipgloss.Center,
		notice,
		"",
		m.styles.Muted.Render("Press Enter to close"),
	))
}

func (m *Model) renderResults() string {
	body := m.styles.Box.Render(m.regions[m.active].render(m.styles, m.visibleRows()))

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)
}

// renderHeader draws the title bar and the tab row
func (m *Model) renderHeader() string {
	title := "Text Analysis"
	if m.source != "" {
		title += " · " + m.source
	}

	tabs := make([]string, 0, len(m.regions))
	for i, region := range m.regions {
		label := fmt.Sprintf("%d %s", i+1, region.Title)
		if i == m.active {
			tabs = append(tabs, m.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render(title),
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
	)
}

// renderFooter draws the analysis summary and the key help
func (m *Model) renderFooter() string {
	summary := m.styles.Muted.Render(fmt.Sprintf("%d tokens analyzed in %s",
		m.analysis.TotalTokens, m.analysis.Duration.Round(time.Microsecond)))

	help := m.styles.Muted.Render(strings.Join([]string{
		emoji.GetEmoji("target") + " tab/→ next",
		"shift+tab/← previous",
		"1-" + strconv.Itoa(len(m.regions)) + " jump",
		"↑/↓ pgup/pgdn scroll",
		emoji.GetEmoji("door") + " q quit",
	}, " • "))

	return lipgloss.JoinVertical(lipgloss.Left, summary, help)
}

func (m *Model) startAnalysis() tea.Cmd {
	m.analyzing = true
	return CreateAnalysisCommand(m.ctx, m.analyzer, m.text)
}

// Analysis returns the completed analysis, if any
func (m *Model) Analysis() *textstats.Analysis {
	return m.analysis
}

// Err returns why the text was rejected, if it was
func (m *Model) Err() error {
	return m.err
}

// ActiveRegion returns the region currently shown
func (m *Model) ActiveRegion() (Region, bool) {
	if len(m.regions) == 0 {
		return Region{}, false
	}
	return m.regions[m.active], true
}

// Run analyzes text inside the interactive viewer. It returns the analysis
// when the text was accepted and the rejection error otherwise.
func Run(ctx context.Context, analyzer *textstats.Analyzer, text string, opts Options) (*textstats.Analysis, error) {
	model := NewModel(ctx, analyzer, text, opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("terminal UI failed: %w", err)
	}

	m, ok := final.(*Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", final)
	}
	return m.analysis, m.err
}
