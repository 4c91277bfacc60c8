package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/danilokhury/orbitmap/pkg/model"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// CategoryListModel - Interactive category selection
// =============================================================================

// categoryEntry is one selectable row: a category with its hierarchy role and
// record count.
type categoryEntry struct {
	Name    string
	Kind    string
	Parent  string
	Records int
}

// CategoryListModel is the bubbletea model for picking the active categories
// before opening the map. An empty confirmed selection means all categories.
type CategoryListModel struct {
	Entries []categoryEntry
	Checked map[string]bool
	Cursor  int
	Height  int
	Offset  int

	// Confirmed is set when enter accepts the selection.
	Confirmed bool
}

// NewCategoryListModel builds the picker from a dataset. Parents sort first,
// children group under their parent.
func NewCategoryListModel(d *model.Dataset) CategoryListModel {
	counts := make(map[string]int)
	for i := range d.Records {
		counts[d.Records[i].Category]++
	}

	entries := make([]categoryEntry, 0, len(counts))
	for name := range d.CategoryNames() {
		meta := d.Categories[name]
		kind := model.KindChild
		if meta.IsParent {
			kind = model.KindParent
		}
		entries = append(entries, categoryEntry{
			Name:    name,
			Kind:    kind,
			Parent:  meta.Parent,
			Records: counts[name],
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		gi, gj := groupKey(entries[i]), groupKey(entries[j])
		if gi != gj {
			return gi < gj
		}
		if entries[i].Kind != entries[j].Kind {
			return entries[i].Kind == model.KindParent
		}
		return entries[i].Name < entries[j].Name
	})

	return CategoryListModel{
		Entries: entries,
		Checked: make(map[string]bool),
		Height:  15,
	}
}

// groupKey clusters a parent with its children.
func groupKey(e categoryEntry) string {
	if e.Parent != "" {
		return e.Parent
	}
	return e.Name
}

// Selection returns the checked category names, or nil when nothing (or
// everything) is checked, meaning no filter.
func (m CategoryListModel) Selection() []string {
	if !m.Confirmed || len(m.Checked) == 0 || len(m.Checked) == len(m.Entries) {
		return nil
	}
	names := make([]string, 0, len(m.Checked))
	for name := range m.Checked {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m CategoryListModel) Init() tea.Cmd {
	return nil
}

func (m CategoryListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ":
			name := m.Entries[m.Cursor].Name
			if m.Checked[name] {
				delete(m.Checked, name)
			} else {
				m.Checked[name] = true
			}
		case "a":
			for _, e := range m.Entries {
				m.Checked[e.Name] = true
			}
		case "n":
			m.Checked = make(map[string]bool)
		case "enter":
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m CategoryListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Categories"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ␣ toggle  a all  n none  ⏎ open  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Entries) {
		end = len(m.Entries)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		mark := "○"
		if m.Checked[e.Name] {
			mark = "●"
		}

		name := e.Name
		if e.Parent != "" {
			name = "  " + name
		}

		rows = append(rows, []string{cursor, mark, name, e.Kind, fmt.Sprintf("%d", e.Records)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Category", "Kind", "Records").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Entries) {
				return lipgloss.NewStyle()
			}
			e := m.Entries[actualIdx]

			base := lipgloss.NewStyle()
			if actualIdx == m.Cursor {
				return listSelectedStyle
			}
			if m.Checked[e.Name] {
				return base.Foreground(colorGreen)
			}
			if e.Kind == model.KindParent {
				return base.Foreground(colorWhite)
			}
			return base.Foreground(colorGray)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] %d selected", m.Cursor+1, len(m.Entries), len(m.Checked))))

	return b.String()
}
