// Package tui provides the BubbleTea-based theme picker.
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/soltana/internal/adapter/output"
	"github.com/jmylchreest/soltana/internal/config"
	"github.com/jmylchreest/soltana/internal/style"
	"github.com/jmylchreest/soltana/internal/theme"
)

// panelKeys are the colors shown next to the list for the highlighted theme.
var panelKeys = []string{
	"figure.facecolor",
	"axes.facecolor",
	"axes.edgecolor",
	"axes.labelcolor",
	"text.color",
	"grid.color",
	"xtick.color",
	"legend.facecolor",
}

// Model is the theme picker model.
type Model struct {
	cfg *config.Config

	list list.Model
	help help.Model
	keys KeyMap

	chosen    string
	cancelled bool

	width  int
	height int
	ready  bool

	statusMsg string
	statusErr bool
}

// themeItem wraps a theme for the list component.
type themeItem struct {
	name   string
	params style.Params
}

func (i themeItem) Title() string { return i.name }

func (i themeItem) Description() string {
	cycle, err := i.params.Cycle()
	if err != nil {
		return "invalid prop cycle"
	}
	var sb strings.Builder
	for _, c := range cycle {
		sb.WriteString(output.Swatch(c))
	}
	return sb.String()
}

func (i themeItem) FilterValue() string { return i.name }

// themeDelegate renders the theme name with its prop cycle underneath.
type themeDelegate struct {
	list.DefaultDelegate
}

func newThemeDelegate() themeDelegate {
	return themeDelegate{DefaultDelegate: list.NewDefaultDelegate()}
}

// Render draws the title with the selection style and the description
// unstyled so the swatch colors show through.
func (d themeDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(themeItem)
	if !ok {
		d.DefaultDelegate.Render(w, m, index, item)
		return
	}

	titleStyle := d.Styles.NormalTitle
	if index == m.Index() {
		titleStyle = d.Styles.SelectedTitle
	}
	pad := lipgloss.NewStyle().PaddingLeft(d.Styles.NormalDesc.GetPaddingLeft())

	fmt.Fprint(w, titleStyle.Render(ti.Title()))
	fmt.Fprint(w, "\n")
	fmt.Fprint(w, pad.Render(ti.Description()))
}

// New creates a picker listing every registered theme, with the configured
// default theme highlighted.
func New(cfg *config.Config) (Model, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	var (
		items    []list.Item
		selected int
	)
	for i, name := range theme.Themes() {
		engine := style.NewEngine(nil)
		if err := theme.NewResolver(engine).Use(name); err != nil {
			return Model{}, fmt.Errorf("load theme %s: %w", name, err)
		}
		items = append(items, themeItem{name: name, params: engine.Params()})
		if name == cfg.Theme.Default {
			selected = i
		}
	}

	l := list.New(items, newThemeDelegate(), 0, 0)
	l.Title = "Themes"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	l.Select(selected)

	h := help.New()
	h.ShowAll = cfg.TUI.ShowHelp

	return Model{
		cfg:  cfg,
		list: l,
		help: h,
		keys: DefaultKeyMap(),
	}, nil
}

// Chosen returns the selected theme, or "" if the picker was cancelled.
func (m Model) Chosen() string {
	return m.chosen
}

// Cancelled reports whether the user left without selecting a theme.
func (m Model) Cancelled() bool {
	return m.cancelled
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return nil
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

type copyResultMsg struct {
	err error
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Keys belong to the filter input while it is open
		if m.list.FilterState() != list.Filtering {
			if next, cmd, handled := m.handleKey(msg); handled {
				return next, cmd
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.list.SetSize(msg.Width/2, msg.Height-4)
		m.help.Width = msg.Width
		return m, nil

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			return m, func() tea.Msg {
				return statusMsg{text: "Copy failed: " + msg.err.Error(), isErr: true}
			}
		}
		return m, func() tea.Msg {
			return statusMsg{text: "Copied to clipboard"}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleKey handles picker keys. Unhandled keys go to the list.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancelled = true
		return m, tea.Quit, true

	case key.Matches(msg, m.keys.Select):
		if item, ok := m.list.SelectedItem().(themeItem); ok {
			m.chosen = item.name
			return m, tea.Quit, true
		}

	case key.Matches(msg, m.keys.Copy):
		if item, ok := m.list.SelectedItem().(themeItem); ok {
			return m, m.copyStylesheet(item.name), true
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil, true
	}
	return m, nil, false
}

func (m Model) copyStylesheet(name string) tea.Cmd {
	cfg := m.cfg
	return func() tea.Msg {
		data, err := theme.Stylesheet(name)
		if err == nil {
			err = copyText(string(data), cfg)
		}
		return copyResultMsg{err: err}
	}
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), m.viewPanel())

	footer := m.help.View(m.keys)
	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		footer = statusStyle.Render(m.statusMsg)
	}

	return body + "\n" + footer
}

// viewPanel renders the key colors of the highlighted theme.
func (m Model) viewPanel() string {
	item, ok := m.list.SelectedItem().(themeItem)
	if !ok {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(20)

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("soltana."+item.name) + "\n")
	for _, k := range panelKeys {
		c, err := item.params.Color(k)
		if err != nil {
			continue
		}
		fmt.Fprintf(&sb, "%s %s %s\n", labelStyle.Render(k), output.Swatch(c), style.Hex(c))
	}

	return lipgloss.NewStyle().PaddingLeft(2).Render(sb.String())
}

// RunOptions configures the TUI.
type RunOptions struct {
	Config *config.Config
}

// Run starts the picker and returns the chosen theme, or "" if cancelled.
func Run(opts RunOptions) (string, error) {
	m, err := New(opts.Config)
	if err != nil {
		return "", err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return "", err
	}

	if fm, ok := final.(Model); ok {
		return fm.Chosen(), nil
	}
	return "", nil
}
