// Package browse is an interactive terminal browser over the aggregated catalog.
package browse

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ryanm101/gameroom/internal/game"
)

// Loader builds the catalog shown by the browser.
type Loader func(ctx context.Context) game.Catalog

type panel int

const (
	panelPlatforms panel = iota
	panelGames
)

// Model holds the browser state.
type Model struct {
	platforms []string
	catalog   game.Catalog
	load      Loader

	panel      panel
	cursor     int // platform
	gameCursor int
	width      int
	height     int

	loading bool
	spinner spinner.Model

	filtering bool
	filter    string

	showHelp bool
}

// New creates a browser over platforms, in the order given.
func New(platforms []string, load Loader) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		platforms: platforms,
		load:      load,
		panel:     panelPlatforms,
		loading:   true,
		spinner:   s,
	}
}

type catalogMsg struct {
	catalog game.Catalog
}

func (m Model) fetch() tea.Msg {
	return catalogMsg{catalog: m.load(context.Background())}
}

// Init starts the first catalog load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case catalogMsg:
		m.catalog = msg.catalog
		m.loading = false
		m.gameCursor = 0

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "?" && !m.filtering {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.filtering {
		switch key {
		case "enter", "esc":
			m.filtering = false
		case "backspace":
			if len(m.filter) > 0 {
				m.filter = m.filter[:len(m.filter)-1]
			}
		default:
			if len(key) == 1 {
				m.filter += key
			}
		}
		m.gameCursor = 0
		return m, nil
	}

	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		if m.panel == panelPlatforms {
			m.panel = panelGames
		} else {
			m.panel = panelPlatforms
		}
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "/":
		m.filtering = true
		m.filter = ""
		m.panel = panelGames
	case "esc":
		m.filter = ""
		m.gameCursor = 0
	case "r":
		if !m.loading {
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.fetch)
		}
	}
	return m, nil
}

func (m *Model) move(delta int) {
	if m.panel == panelPlatforms {
		m.cursor = clamp(m.cursor+delta, len(m.platforms))
		m.gameCursor = 0
		return
	}
	m.gameCursor = clamp(m.gameCursor+delta, len(m.visibleGames()))
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// SelectedPlatform returns the highlighted platform key.
func (m Model) SelectedPlatform() string {
	if len(m.platforms) == 0 {
		return ""
	}
	return m.platforms[m.cursor]
}

// visibleGames returns the selected platform's games matching the filter.
func (m Model) visibleGames() []game.Game {
	games := m.catalog[m.SelectedPlatform()]
	if m.filter == "" {
		return games
	}
	needle := strings.ToLower(m.filter)
	var out []game.Game
	for _, g := range games {
		if strings.Contains(strings.ToLower(g.Title), needle) ||
			strings.Contains(strings.ToLower(g.Genre), needle) {
			out = append(out, g)
		}
	}
	return out
}

// SelectedGame returns the highlighted game, if any.
func (m Model) SelectedGame() (game.Game, bool) {
	games := m.visibleGames()
	if m.gameCursor < 0 || m.gameCursor >= len(games) {
		return game.Game{}, false
	}
	return games[m.gameCursor], true
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("57")).
			Foreground(lipgloss.Color("255"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)
)

// View renders the browser.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.viewHelp()
	}
	if m.loading && m.catalog == nil {
		return fmt.Sprintf("\n  %s Fetching catalog...\n", m.spinner.View())
	}
	return m.viewMain()
}

func (m Model) viewMain() string {
	active := panelStyle.BorderForeground(lipgloss.Color("205"))
	rows := m.height - 14
	if rows < 5 {
		rows = 5
	}

	// Platforms
	var left strings.Builder
	left.WriteString(titleStyle.Render("Platforms") + "\n")
	for i, p := range m.platforms {
		line := fmt.Sprintf("%-11s %3d", p, len(m.catalog[p]))
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		left.WriteString(line + "\n")
	}
	leftStyle := panelStyle.Width(22)
	if m.panel == panelPlatforms {
		leftStyle = active.Width(22)
	}

	// Games
	games := m.visibleGames()
	var right strings.Builder
	heading := "Games"
	if m.filter != "" || m.filtering {
		heading = fmt.Sprintf("Games  /%s", m.filter)
	}
	right.WriteString(titleStyle.Render(heading) + "\n")
	if len(games) == 0 {
		right.WriteString(dimStyle.Render("Nothing here.") + "\n")
	}
	start := 0
	if m.gameCursor >= rows {
		start = m.gameCursor - rows + 1
	}
	for i := start; i < len(games) && i < start+rows; i++ {
		line := fmt.Sprintf("%-40s %s", truncate(games[i].Title, 40), games[i].Rating)
		if m.panel == panelGames && i == m.gameCursor {
			line = selectedStyle.Render(line)
		}
		right.WriteString(line + "\n")
	}
	rightWidth := m.width - 30
	if rightWidth < 30 {
		rightWidth = 30
	}
	rightStyle := panelStyle.Width(rightWidth)
	if m.panel == panelGames {
		rightStyle = active.Width(rightWidth)
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top,
		leftStyle.Render(left.String()),
		rightStyle.Render(right.String()),
	)

	status := ""
	if m.loading {
		status = m.spinner.View() + " refreshing"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Gameroom Catalog"),
		content,
		m.viewDetail(),
		dimStyle.Render("Tab: switch | j/k: nav | /: filter | r: refresh | ?: help | q: quit  "+status),
	)
}

func (m Model) viewDetail() string {
	g, ok := m.SelectedGame()
	if !ok {
		return ""
	}

	who := g.Players
	if who == "" {
		who = g.Platforms
	}
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(g.Title) + dimStyle.Render("  "+g.ID),
		fmt.Sprintf("%s | %s | %s", g.Genre, g.Rating, who),
	}
	if g.Playtime != "" {
		lines = append(lines, g.Playtime)
	}
	lines = append(lines, truncate(g.Description, 2*maxInt(m.width-8, 40)))
	if g.Rules != "" {
		lines = append(lines, dimStyle.Render(g.Rules))
	}
	return panelStyle.Width(maxInt(m.width-4, 40)).Render(strings.Join(lines, "\n"))
}

func (m Model) viewHelp() string {
	var lines []string
	lines = append(lines, titleStyle.Render("Keyboard Shortcuts"))
	for _, kv := range [][2]string{
		{"j/↓", "Move down"},
		{"k/↑", "Move up"},
		{"Tab", "Switch panel"},
		{"/", "Filter games by title or genre"},
		{"Esc", "Clear filter"},
		{"r", "Refresh catalog"},
		{"?", "Toggle this help"},
		{"q", "Quit"},
	} {
		lines = append(lines, keyStyle.Render(fmt.Sprintf("  %-4s", kv[0]))+"  "+kv[1])
	}
	lines = append(lines, "", dimStyle.Render("Press any key to close"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("205")).
		Padding(1, 2).
		Width(50)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		box.Render(strings.Join(lines, "\n")))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
