package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/bowerassets/pkg/formula"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// FormulaListModel - Interactive formula browser
// =============================================================================

// FormulaListModel is the bubbletea model for browsing formulae. Enter opens
// the selected formula, esc goes back to the list.
type FormulaListModel struct {
	Formulae formula.Formulae
	Names    []string
	Cursor   int
	Offset   int
	Height   int
	Detail   bool
}

// NewFormulaListModel creates a browser over f, sorted by name.
func NewFormulaListModel(f formula.Formulae) FormulaListModel {
	return FormulaListModel{
		Formulae: f,
		Names:    f.Names(),
		Height:   15,
	}
}

func (m FormulaListModel) Init() tea.Cmd {
	return nil
}

func (m FormulaListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "backspace":
			if !m.Detail {
				return m, tea.Quit
			}
			m.Detail = false
		case "up", "k":
			if !m.Detail && m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if !m.Detail && m.Cursor < len(m.Names)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Names) > 0 {
				m.Detail = true
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m FormulaListModel) View() string {
	if len(m.Names) == 0 {
		return listDimStyle.Render("No formulae. Press q to quit.") + "\n"
	}
	if m.Detail {
		return m.detailView()
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Formulae"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ inspect  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Names))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		name := m.Names[i]
		f := m.Formulae[name]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		filters := strings.Join(f.Filters, ", ")
		if filters == "" {
			filters = "—"
		}
		rows = append(rows, []string{cursor, name, strconv.Itoa(len(f.Files)), filters})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("", "Formula", "Inputs", "Filters").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			idx := m.Offset + row
			if idx == m.Cursor {
				return listSelectedStyle
			}
			if len(m.Formulae[m.Names[idx]].Files) == 0 {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Names))))

	return b.String()
}

func (m FormulaListModel) detailView() string {
	name := m.Names[m.Cursor]
	f := m.Formulae[name]

	var b strings.Builder
	b.WriteString(StyleTitle.Render(name))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	b.WriteString(styleHeader.Render("Inputs"))
	b.WriteString("\n")
	if len(f.Files) == 0 {
		b.WriteString(listDimStyle.Render("  (none)"))
		b.WriteString("\n")
	}
	for _, file := range f.Files {
		style := listNormalStyle
		if strings.HasPrefix(file, "@") {
			style = StyleNumber
		}
		b.WriteString("  " + style.Render(file) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(styleHeader.Render("Filters"))
	b.WriteString("\n")
	if len(f.Filters) == 0 {
		b.WriteString(listDimStyle.Render("  (none)"))
		b.WriteString("\n")
	}
	for _, filter := range f.Filters {
		b.WriteString("  " + listNormalStyle.Render(filter) + "\n")
	}

	return b.String()
}
