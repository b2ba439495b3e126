package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/seqviz/seqviz/pkg/align"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// keyItem is one alignment row in the interactive picker.
type keyItem struct {
	ID   string
	Gaps int
}

// KeyPickerModel is the bubbletea model for interactive sequence
// selection. Space toggles the row under the cursor, "a" toggles all,
// enter confirms.
type KeyPickerModel struct {
	Items     []keyItem
	Length    int
	Cursor    int
	Checked   map[int]bool
	Confirmed bool
	Height    int
	Offset    int
}

// NewKeyPickerModel creates a picker over the alignment's sequences, all
// selected initially.
func NewKeyPickerModel(a *align.Alignment) KeyPickerModel {
	keys := a.Keys()
	items := make([]keyItem, len(keys))
	checked := make(map[int]bool, len(keys))
	for i, id := range keys {
		seq, _ := a.Seq(id)
		items[i] = keyItem{ID: id, Gaps: strings.Count(seq, string(rune(align.GapMarker)))}
		checked[i] = true
	}
	return KeyPickerModel{
		Items:   items,
		Length:  a.Length(),
		Checked: checked,
		Height:  15,
	}
}

// Selected returns the confirmed key subset in alignment order, or nil if
// the picker was quit without confirming.
func (m KeyPickerModel) Selected() []string {
	if !m.Confirmed {
		return nil
	}
	var keys []string
	for i, item := range m.Items {
		if m.Checked[i] {
			keys = append(keys, item.ID)
		}
	}
	return keys
}

func (m KeyPickerModel) Init() tea.Cmd {
	return nil
}

func (m KeyPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ":
			m.Checked[m.Cursor] = !m.Checked[m.Cursor]
		case "a":
			all := true
			for i := range m.Items {
				if !m.Checked[i] {
					all = false
					break
				}
			}
			for i := range m.Items {
				m.Checked[i] = !all
			}
		case "enter":
			if m.countChecked() == 0 {
				return m, nil
			}
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

func (m KeyPickerModel) countChecked() int {
	n := 0
	for _, ok := range m.Checked {
		if ok {
			n++
		}
	}
	return n
}

func (m KeyPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Sequences"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ␣ toggle  a all  ⏎ confirm  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Items) {
		end = len(m.Items)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		item := m.Items[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		check := " "
		if m.Checked[i] {
			check = "✓"
		}

		gaps := "—"
		if item.Gaps > 0 {
			gaps = fmt.Sprintf("%d", item.Gaps)
		}
		rows = append(rows, []string{cursor, check, item.ID, gaps})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Sequence", "Gaps").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.Offset + row
			if actualIdx >= len(m.Items) {
				return lipgloss.NewStyle()
			}
			if actualIdx == m.Cursor {
				return listSelectedStyle
			}
			if m.Checked[actualIdx] {
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			return listDimStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d/%d selected · %d columns", m.countChecked(), len(m.Items), m.Length)))

	return b.String()
}

// pickKeys runs the interactive picker and returns the chosen key subset.
// A nil result with nil error means the user quit without confirming.
func pickKeys(a *align.Alignment) ([]string, error) {
	model := NewKeyPickerModel(a)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return nil, err
	}
	picked, ok := final.(KeyPickerModel)
	if !ok {
		return nil, fmt.Errorf("unexpected picker model %T", final)
	}
	return picked.Selected(), nil
}
