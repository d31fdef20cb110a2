// Package ui is a terminal viewer for emitted scripts: a statement list
// next to the highlighted script, re-emitted on demand in any mode.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"schemacore/pkg/primitives"
	"schemacore/pkg/statements"
	"schemacore/pkg/ui/base"
)

// Source produces the script to show for a mode. The viewer calls it on
// start, on reload and when the mode changes.
type Source func(mode primitives.EmitMode) (*statements.BlockStatement, error)

type focus int

const (
	focusList focus = iota
	focusScript
)

const objectColumnWidth = 40

// Model represents the viewer state
type Model struct {
	title       string
	source      Source
	mode        primitives.EmitMode
	highlighter *ScriptHighlighter

	list     table.Model
	script   viewport.Model
	spinner  spinner.Model
	help     help.Model
	keys     keyMap
	focus    focus
	showAll  bool
	showHelp bool

	width    int
	height   int
	emitting bool
	block    *statements.BlockStatement
	lastErr  error
	lastTime time.Duration
}

func NewModel(title string, source Source, mode primitives.EmitMode) Model {
	t := table.New(
		table.WithColumns(statementColumns()),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(primaryColor).
		BorderBottom(true).
		Bold(true).
		Foreground(primaryColor)
	s.Selected = s.Selected.
		Foreground(bgDark).
		Background(secondaryColor).
		Bold(false)
	t.SetStyles(s)

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = lipgloss.NewStyle().Foreground(primaryColor)

	return Model{
		title:       title,
		source:      source,
		mode:        mode,
		highlighter: NewScriptHighlighter(base.PaletteFor(lipgloss.HasDarkBackground())),
		list:        t,
		script:      viewport.New(80, 10),
		spinner:     sp,
		help:        help.New(),
		keys:        keys,
		emitting:    true,
	}
}

func statementColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 5},
		{Title: "Statement", Width: 22},
		{Title: "Object", Width: objectColumnWidth},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.emit())
}

type emittedMsg struct {
	mode     primitives.EmitMode
	block    *statements.BlockStatement
	err      error
	duration time.Duration
}

func (m Model) emit() tea.Cmd {
	source, mode := m.source, m.mode
	return func() tea.Msg {
		start := time.Now()
		block, err := source(mode)
		return emittedMsg{mode: mode, block: block, err: err, duration: time.Since(start)}
	}
}

// nextMode cycles ForCopy, ForStorage, ForRemote.
func nextMode(mode primitives.EmitMode) primitives.EmitMode {
	switch mode {
	case primitives.ForCopy:
		return primitives.ForStorage
	case primitives.ForStorage:
		return primitives.ForRemote
	default:
		return primitives.ForCopy
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.emitting {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Reload):
			m.emitting = true
			return m, tea.Batch(m.spinner.Tick, m.emit())
		case key.Matches(msg, m.keys.CycleMode):
			m.mode = nextMode(m.mode)
			m.emitting = true
			return m, tea.Batch(m.spinner.Tick, m.emit())
		case key.Matches(msg, m.keys.ToggleFocus):
			if m.focus == focusList {
				m.focus = focusScript
				m.list.Blur()
			} else {
				m.focus = focusList
				m.list.Focus()
			}
			return m, nil
		case key.Matches(msg, m.keys.ShowAll):
			m.showAll = !m.showAll
			m.refreshScript()
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		}

	case emittedMsg:
		m.emitting = false
		m.mode = msg.mode
		m.lastErr = msg.err
		m.lastTime = msg.duration
		if msg.err == nil {
			m.block = msg.block
			m.list.SetRows(statementRows(msg.block))
			m.list.SetCursor(0)
		}
		m.refreshScript()
		return m, nil

	case spinner.TickMsg:
		if m.emitting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == focusList {
		before := m.list.Cursor()
		m.list, cmd = m.list.Update(msg)
		if m.list.Cursor() != before {
			m.refreshScript()
		}
		return m, cmd
	}
	m.script, cmd = m.script.Update(msg)
	return m, cmd
}

// statementRows lists one row per statement with the name of the object it
// applies to.
func statementRows(block *statements.BlockStatement) []table.Row {
	if block == nil {
		return nil
	}
	rows := make([]table.Row, len(block.Statements))
	for i, s := range block.Statements {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			s.GetType().String(),
			base.TruncateString(statementObject(s), objectColumnWidth),
		}
	}
	return rows
}

func statementObject(s statements.Statement) string {
	switch st := s.(type) {
	case *statements.SetLibraryStatement:
		return st.LibraryName
	case *statements.DropStatement:
		if st.OwnerName != "" {
			return st.OwnerName + " " + st.ObjectName
		}
		return st.ObjectName
	case interface{ GetObjectName() string }:
		return st.GetObjectName()
	default:
		return ""
	}
}

// scriptText is the text shown in the script pane: the whole block, or
// only the selected statement.
func (m Model) scriptText() string {
	if m.block == nil || m.block.Len() == 0 {
		return ""
	}
	if m.showAll {
		return m.block.String()
	}
	i := m.list.Cursor()
	if i < 0 || i >= m.block.Len() {
		i = 0
	}
	return m.block.Statements[i].String() + ";"
}

func (m *Model) refreshScript() {
	m.script.SetContent(m.highlighter.Highlight(m.scriptText()))
	m.script.GotoTop()
}

// updateLayout adjusts component sizes based on window size
func (m *Model) updateLayout() {
	paneHeight := m.height - 8
	if paneHeight < 3 {
		paneHeight = 3
	}
	listWidth := 0
	for _, c := range statementColumns() {
		listWidth += c.Width + 2
	}
	m.list.SetHeight(paneHeight)
	m.script.Width = max(m.width-listWidth-10, 20)
	m.script.Height = paneHeight
}

func (m Model) View() string {
	sections := []string{m.renderHeader()}

	switch {
	case m.emitting:
		sections = append(sections, m.renderEmitting())
	case m.lastErr != nil:
		sections = append(sections, m.renderError())
	default:
		listStyle, scriptStyle := focusedPaneStyle, blurredPaneStyle
		if m.focus == focusScript {
			listStyle, scriptStyle = blurredPaneStyle, focusedPaneStyle
		}
		sections = append(sections, lipgloss.JoinHorizontal(
			lipgloss.Top,
			listStyle.Render(m.list.View()),
			scriptStyle.Render(m.script.View()),
		))
	}

	sections = append(sections, m.renderStatusBar())
	if m.showHelp {
		sections = append(sections, m.renderHelp())
	}
	return appStyle.Render(strings.Join(sections, "\n"))
}

func (m Model) renderHeader() string {
	title := titleStyle.Render(m.title)
	// Fixed width so the header does not shift when the mode cycles.
	badge := modeBadgeStyle.Render(base.PadString(m.mode.String(), len("ForStorage")))

	count := 0
	if m.block != nil {
		count = m.block.Len()
	}
	info := lipgloss.NewStyle().
		Foreground(textSecondary).
		Render(fmt.Sprintf("Statements: %d", count))

	header := lipgloss.JoinHorizontal(lipgloss.Left, title, "  ", badge, "  ", info)
	separator := lipgloss.NewStyle().
		Foreground(bgLight).
		Render(strings.Repeat("─", max(m.width-4, 0)))
	return header + "\n" + separator
}

func (m Model) renderEmitting() string {
	content := lipgloss.JoinHorizontal(lipgloss.Left, m.spinner.View(), " Emitting script...")
	return lipgloss.NewStyle().
		Foreground(primaryColor).
		Padding(1, 0).
		Render(content)
}

func (m Model) renderError() string {
	icon := errorStyle.Render(" ⚠ ERROR ")
	message := lipgloss.NewStyle().
		Foreground(errorColor).
		Render(m.lastErr.Error())

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(errorColor).
		Padding(0, 1).
		Render(fmt.Sprintf("%s %s", icon, message))
}

func (m Model) renderStatusBar() string {
	status := lipgloss.NewStyle().Foreground(accentColor).Render("● " + m.mode.String())

	timer := ""
	if m.lastTime > 0 {
		timer = fmt.Sprintf(" | Emitted in %v", m.lastTime)
	}
	hint := lipgloss.NewStyle().
		Foreground(textMuted).
		Render(timer + " | Press Ctrl+H for help")

	return statusBarStyle.
		Width(max(m.width-4, 0)).
		Render(status + hint)
}

func (m Model) renderHelp() string {
	helpText := m.help.FullHelpView([][]key.Binding{
		{m.keys.Reload, m.keys.CycleMode, m.keys.ToggleFocus, m.keys.ShowAll},
		{m.keys.ScrollUp, m.keys.ScrollDown, m.keys.PageUp, m.keys.PageDown, m.keys.Help, m.keys.Quit},
	})

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(primaryColor).
		Padding(1, 2).
		Background(bgMedium).
		Render(helpText)
}

// Run starts the viewer on the alternate screen and blocks until it exits.
func Run(title string, source Source, mode primitives.EmitMode) error {
	_, err := tea.NewProgram(NewModel(title, source, mode), tea.WithAltScreen()).Run()
	return err
}
