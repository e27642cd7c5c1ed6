package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ontoview/pkg/hierarchy"
	"github.com/matzehuels/ontoview/pkg/session"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailPaneStyle   = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1).
				MarginLeft(2)
)

func (c *CLI) browseCommand() *cobra.Command {
	var flags docFlags

	cmd := &cobra.Command{
		Use:   "browse [document]",
		Short: "Browse the class hierarchy interactively",
		Long: `Browse the class hierarchy in the terminal.

Move with the arrow keys or j/k. Enter shows the branch of the selected
class, backspace returns to the whole hierarchy. The axioms of the selected
class are shown next to the tree.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), optionalArg(args, 0), flags, func(sess *session.Session) error {
				p := tea.NewProgram(newBrowseModel(sess), tea.WithContext(cmd.Context()), tea.WithAltScreen())
				_, err := p.Run()
				return err
			})
		},
	}

	flags.register(cmd)
	return cmd
}

// =============================================================================
// browseModel - Interactive hierarchy browser
// =============================================================================

type browseRow struct {
	id    string
	depth int
}

// browseModel is the bubbletea model of the hierarchy browser. Each focus
// change rebuilds the tree from a fresh branch of the session graph.
type browseModel struct {
	sess  *session.Session
	tree  *hierarchy.Tree
	rows  []browseRow
	focal string

	cursor int
	offset int
	height int
}

func newBrowseModel(sess *session.Session) browseModel {
	m := browseModel{sess: sess, height: 20}
	m.setFocal("")
	return m
}

// setFocal shows the branch of id, or the whole hierarchy for "".
func (m *browseModel) setFocal(id string) {
	g := m.sess.FullGraph()
	if id != "" {
		g = m.sess.Branch(id)
	}
	m.focal = id
	m.tree = hierarchy.Build(g)
	m.rows = nil
	m.tree.Walk(func(id string, depth int) bool {
		m.rows = append(m.rows, browseRow{id: id, depth: depth})
		return true
	})
	m.cursor, m.offset = 0, 0
	for i, r := range m.rows {
		if r.id == id {
			m.cursor = i
			break
		}
	}
	m.scroll()
}

// selected returns the class under the cursor, or "".
func (m browseModel) selected() string {
	if m.cursor < len(m.rows) {
		return m.rows[m.cursor].id
	}
	return ""
}

func (m *browseModel) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = len(m.rows) - 1
		case "enter":
			id := m.selected()
			if id == "" || m.isVirtual(id) || id == m.focal {
				return m, nil
			}
			m.setFocal(id)
			return m, nil
		case "backspace", "esc":
			if m.focal == "" {
				if msg.String() == "esc" {
					return m, tea.Quit
				}
				return m, nil
			}
			prev := m.focal
			m.setFocal("")
			for i, r := range m.rows {
				if r.id == prev {
					m.cursor = i
				}
			}
		}
		m.scroll()
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
		m.scroll()
	}
	return m, nil
}

// isVirtual reports whether id is the synthetic root of the displayed tree.
func (m browseModel) isVirtual(id string) bool {
	return m.tree.IsVirtual() && id == m.tree.Root()
}

func (m browseModel) View() string {
	var b strings.Builder

	title := "Class Hierarchy"
	if m.focal != "" {
		title = "Branch of " + m.tree.Name(m.focal)
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ focus  ⌫ all classes  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	var list strings.Builder
	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		line := cursor + strings.Repeat("  ", r.depth) + m.tree.Name(r.id)
		switch {
		case i == m.cursor:
			line = listSelectedStyle.Render(line)
		case r.id == m.focal:
			line = StyleHighlight.Render(line)
		case m.isVirtual(r.id):
			line = listDimStyle.Render(line)
		default:
			line = listNormalStyle.Render(line)
		}
		list.WriteString(line)
		list.WriteString("\n")
	}
	list.WriteString("\n")
	list.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.rows))))

	detail := ""
	if id := m.selected(); id != "" && !m.isVirtual(id) {
		detail = detailPaneStyle.Render(strings.TrimRight(formatAxioms(m.sess.Axioms(id), m.sess.FullGraph().Labeler()), "\n"))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list.String(), detail))
	return b.String()
}
