package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).MarginTop(1)
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(0, 1)
	minPaneWidth = 20
)

// entryItem implements list.Item for an Entry.
type entryItem struct {
	entry Entry
}

func (i entryItem) Title() string {
	mark := okStyle.Render("✓")
	if i.entry.Err != nil {
		mark = failStyle.Render("✗")
	}
	return fmt.Sprintf("%s %s", mark, i.entry.Name)
}

func (i entryItem) Description() string { return string(i.entry.Kind) + " · " + i.entry.Use }
func (i entryItem) FilterValue() string { return i.entry.Name }

// Inspector is a Bubble Tea model listing the modules of one document with
// a detail pane for the selected module.
type Inspector struct {
	title   string
	entries []Entry
	list    list.Model
	width   int
	height  int
}

// NewInspector creates an inspector for entries.
func NewInspector(title string, entries []Entry) *Inspector {
	items := make([]list.Item, len(entries))
	for i, entry := range entries {
		items[i] = entryItem{entry: entry}
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Modules"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return &Inspector{title: title, entries: entries, list: l}
}

// Init implements tea.Model.
func (m *Inspector) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Inspector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(m.listWidth(), max(5, msg.Height-6))
		return m, nil
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Inspector) View() string {
	header := headerStyle.Render("⬡ " + m.title)
	if len(m.entries) == 0 {
		return strings.Join([]string{header, detailStyle.Render("No modules in this document."), hintStyle.Render("q quit")}, "\n")
	}
	left := panelStyle.Width(max(minPaneWidth, m.listWidth())).Render(m.list.View())
	right := panelStyle.Width(max(minPaneWidth, m.detailWidth())).Render(m.renderDetail())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return strings.Join([]string{header, body, hintStyle.Render("↑/↓ select · / filter · q quit")}, "\n")
}

// Selected returns the entry under the cursor.
func (m *Inspector) Selected() (Entry, bool) {
	item, ok := m.list.SelectedItem().(entryItem)
	if !ok {
		return Entry{}, false
	}
	return item.entry, true
}

func (m *Inspector) renderDetail() string {
	entry, ok := m.Selected()
	if !ok {
		return detailStyle.Render("Nothing selected.")
	}
	lines := []string{
		labelStyle.Render(entry.Name),
		fmt.Sprintf("%s %s", labelStyle.Render("kind"), entry.Kind),
		fmt.Sprintf("%s %s", labelStyle.Render("use"), entry.Use),
		"",
	}
	if entry.Err != nil {
		lines = append(lines, failStyle.Render("build failed"), detailStyle.Render(entry.Err.Error()))
		return strings.Join(lines, "\n")
	}
	if len(entry.Keywords) == 0 {
		lines = append(lines, detailStyle.Render("no keywords"))
	}
	for _, kw := range entry.Keywords {
		lines = append(lines, fmt.Sprintf("%s = %s", labelStyle.Render(kw.Name), detailStyle.Render(kw.Value)))
	}
	return strings.Join(lines, "\n")
}

func (m *Inspector) listWidth() int {
	if m.width == 0 {
		return 40
	}
	return max(minPaneWidth, m.width/3)
}

func (m *Inspector) detailWidth() int {
	if m.width == 0 {
		return 60
	}
	return max(minPaneWidth, m.width-m.listWidth()-6)
}
