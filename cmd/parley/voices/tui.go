package voicescmder

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/parleyco/parley/pkg/agent"
	"github.com/parleyco/parley/pkg/voice"
)

func init() {
	// Force TrueColor profile to fix lipgloss color detection issue
	// See: https://github.com/charmbracelet/lipgloss/issues/439
	renderer := lipgloss.NewRenderer(os.Stdout, termenv.WithProfile(termenv.TrueColor))
	renderer.SetColorProfile(termenv.TrueColor)
	lipgloss.SetDefaultRenderer(renderer)
}

type browseView int

const (
	viewProfiles browseView = iota
	viewDetail
)

type browseModel struct {
	profiles []voice.Profile
	view     browseView
	cursor   int
	width    int
	height   int
	keys     browseKeyMap
	help     help.Model
}

var (
	browseTitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	browseMutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	browseSectionStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	browseLabelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("246")).Bold(true)
	browseValueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	browseHighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("235")).Background(lipgloss.Color("214")).Bold(true)
	browseDividerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("237"))
)

type browseKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Back  key.Binding
	Quit  key.Binding
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Enter, k.Back, k.Quit}
}

func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Down, k.Up}, {k.Enter, k.Back, k.Quit}}
}

func defaultBrowseKeyMap() browseKeyMap {
	return browseKeyMap{
		Up:    key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Down:  key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		Enter: key.NewBinding(key.WithKeys("enter", "l"), key.WithHelp("enter", "detail")),
		Back:  key.NewBinding(key.WithKeys("h", "esc"), key.WithHelp("h", "back")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse voice profiles interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowseTUI(cmd.Context())
		},
	}
}

func runBrowseTUI(ctx context.Context) error {
	model := newBrowseModel(voice.NewRegistry())

	program := bubbletea.NewProgram(model,
		bubbletea.WithContext(ctx),
		bubbletea.WithAltScreen(),
	)
	_, err := program.Run()
	return err
}

func newBrowseModel(registry *voice.Registry) browseModel {
	return browseModel{
		profiles: registry.All(),
		view:     viewProfiles,
		keys:     defaultBrowseKeyMap(),
		help:     help.New(),
	}
}

func (m browseModel) Init() bubbletea.Cmd {
	return nil
}

func (m browseModel) Update(msg bubbletea.Msg) (bubbletea.Model, bubbletea.Cmd) {
	switch msg := msg.(type) {
	case bubbletea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case bubbletea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m browseModel) handleKey(msg bubbletea.KeyMsg) (bubbletea.Model, bubbletea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, bubbletea.Quit
	case "j", "down":
		return m.moveCursor(1), nil
	case "k", "up":
		return m.moveCursor(-1), nil
	case "l", "enter":
		if m.view == viewProfiles {
			m.view = viewDetail
		}
		return m, nil
	case "h", "esc":
		if m.view == viewDetail {
			m.view = viewProfiles
		}
		return m, nil
	}

	return m, nil
}

func (m browseModel) moveCursor(delta int) browseModel {
	if m.view != viewProfiles {
		return m
	}
	m.cursor = clamp(m.cursor+delta, len(m.profiles)-1)
	return m
}

func (m browseModel) View() string {
	switch m.view {
	case viewDetail:
		return m.viewDetail()
	default:
		return m.viewProfiles()
	}
}

func (m browseModel) viewProfiles() string {
	lines := []string{
		browseTitleStyle.Render("parley voices"),
		renderRule(m.width),
		browseMutedStyle.Render("  key          speed  pitch  personality"),
	}

	for i, profile := range m.profiles {
		line := fmt.Sprintf("%-12s %5.2f  %5.2f  %s", profile.Key, profile.Speed, profile.Pitch, profile.Personality)
		if i == m.cursor {
			lines = append(lines, browseHighlightStyle.Render("> "+line))
		} else {
			lines = append(lines, "  "+line)
		}
	}

	lines = append(lines, "", m.viewFooter())
	return strings.Join(lines, "\n")
}

func (m browseModel) viewDetail() string {
	profile := m.profiles[m.cursor]

	rows := []struct {
		label string
		value string
	}{
		{"voice_id", profile.VoiceID},
		{"speed", fmt.Sprintf("%.2f", profile.Speed)},
		{"pitch", fmt.Sprintf("%.2f", profile.Pitch)},
		{"personality", profile.Personality},
	}

	lines := []string{
		browseTitleStyle.Render(profile.Name),
		renderRule(m.width),
	}
	for _, row := range rows {
		lines = append(lines,
			fmt.Sprintf("%s %s", browseLabelStyle.Render(fmt.Sprintf("%-12s", row.label)), browseValueStyle.Render(row.value)))
	}

	lines = append(lines,
		"",
		browseSectionStyle.Render("sample response"),
		renderRule(m.width),
		wrapText(agent.Respond("voice profiles"), m.width),
		"",
		m.viewFooter(),
	)

	return strings.Join(lines, "\n")
}

func (m browseModel) viewFooter() string {
	return browseMutedStyle.Render(m.help.View(m.keys))
}

func renderRule(width int) string {
	if width <= 0 {
		width = 80
	}
	return browseDividerStyle.Render(strings.Repeat("-", width))
}

func wrapText(text string, width int) string {
	if width <= 0 {
		width = 80
	}

	var (
		lines   []string
		current strings.Builder
	)
	for _, word := range strings.Fields(text) {
		if current.Len() > 0 && current.Len()+1+len(word) > width {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}

	return strings.Join(lines, "\n")
}

func clamp(value, max int) int {
	if max < 0 {
		return 0
	}
	if value < 0 {
		return 0
	}
	if value > max {
		return max
	}
	return value
}
