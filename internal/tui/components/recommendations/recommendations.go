package recommendations

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/studyslot/internal/models"
	"github.com/julianstephens/studyslot/internal/scheduler"
)

var (
	slotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(18)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	reasonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

type Model struct {
	viewport viewport.Model
	recs     []models.Recommendation
	report   *scheduler.Report
	saved    *models.Plan
	noPrefs  bool
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.render()
}

// SetRecommendations shows a fresh planning run. noPrefs records whether
// preferences were ignored.
func (m *Model) SetRecommendations(recs []models.Recommendation, report scheduler.Report, noPrefs bool) {
	m.recs = recs
	m.report = &report
	m.noPrefs = noPrefs
	m.render()
}

// SetSaved shows the latest accepted plan below the current run.
func (m *Model) SetSaved(plan *models.Plan) {
	m.saved = plan
	m.render()
}

// Recommendations returns the run currently shown.
func (m Model) Recommendations() []models.Recommendation {
	return m.recs
}

func (m *Model) render() {
	var b strings.Builder
	switch {
	case m.report == nil:
		b.WriteString("Press 'g' to recommend free periods for your assignments.\n")
	case len(m.recs) == 0:
		b.WriteString("No recommendations.\n")
		for _, h := range m.report.Hints {
			b.WriteString(hintStyle.Render("hint: "+h) + "\n")
		}
	default:
		if m.noPrefs {
			b.WriteString(reasonStyle.Render("(time preferences ignored)") + "\n")
		}
		writeRecs(&b, m.recs)
		b.WriteString("\nPress 's' to save these as a plan.\n")
	}

	if m.saved != nil {
		fmt.Fprintf(&b, "\nSaved plan, revision %d (accepted %s):\n", m.saved.Revision, m.saved.AcceptedAt)
		writeRecs(&b, m.saved.Recommendations)
	}
	m.viewport.SetContent(b.String())
}

func writeRecs(b *strings.Builder, recs []models.Recommendation) {
	for _, r := range recs {
		fmt.Fprintf(b, "%s %s\n%s\n",
			slotStyle.Render(r.Slot.String()),
			titleStyle.Render(r.Assignment.Title),
			reasonStyle.Render("  "+r.Reason),
		)
	}
}
