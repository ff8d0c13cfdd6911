package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sh0bas/osrs-advisor/internal/advisor"
	"github.com/sh0bas/osrs-advisor/internal/model"
)

const (
	recentPlayersShown = 5
	sidebarWidth       = 28
	lookupTimeout      = 30 * time.Second
	recommendTimeout   = 90 * time.Second
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#C89A3A")).
			Bold(true)
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle     = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	sidebarStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	activityStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	modalStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// ProfileSource assembles player profiles.
type ProfileSource interface {
	Assemble(ctx context.Context, username string) (model.PlayerProfile, error)
}

// Recommender produces activity suggestions from prompts.
type Recommender interface {
	Recommend(ctx context.Context, prompt, apiKey string) (string, error)
}

// HistoryStore records successful lookups and lists recent ones.
type HistoryStore interface {
	RecordLookup(ctx context.Context, rec model.LookupRecord) error
	RecentLookups(ctx context.Context, limit int) ([]model.LookupRecord, error)
}

type lookupDoneMsg struct {
	seq     int
	profile model.PlayerProfile
	err     error
}

type recommendDoneMsg struct {
	seq  int
	text string
}

type recentsMsg struct {
	records []model.LookupRecord
}

type lookupSavedMsg struct{}

// Model implements the Bubble Tea advisor UI. The current profile and the
// current suggestion are replace-on-write values; results from a superseded
// in-flight call are discarded by sequence number.
type Model struct {
	source      ProfileSource
	recommender Recommender
	history     HistoryStore
	apiKey      string

	usernameInput textinput.Model
	keyInput      textinput.Model
	spin          spinner.Model
	skillsTable   table.Model
	suggestionVP  viewport.Model

	width  int
	height int

	profile        *model.PlayerProfile
	recommendation string
	errMsg         string
	recent         []model.LookupRecord

	lookupSeq    int
	recommendSeq int
	lookingUp    bool
	recommending bool
	keyModal     bool
}

// NewModel constructs the advisor UI model. The history store may be nil,
// which disables the recent-players sidebar section.
func NewModel(source ProfileSource, recommender Recommender, history HistoryStore, apiKey string) *Model {
	usernameInput := textinput.New()
	usernameInput.Prompt = "Username: "
	usernameInput.Placeholder = "Enter your RuneScape username"
	usernameInput.CharLimit = 12
	usernameInput.Cursor.SetMode(cursor.CursorBlink)

	keyInput := textinput.New()
	keyInput.Prompt = "API key: "
	keyInput.Placeholder = "sk-..."
	keyInput.EchoMode = textinput.EchoPassword
	keyInput.Cursor.SetMode(cursor.CursorBlink)

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))

	m := &Model{
		source:        source,
		recommender:   recommender,
		history:       history,
		apiKey:        apiKey,
		usernameInput: usernameInput,
		keyInput:      keyInput,
		spin:          spin,
		skillsTable:   buildSkillsTable(nil),
		suggestionVP:  viewport.New(0, 0),
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.usernameInput.Focus(), m.loadRecentsCmd())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case spinner.TickMsg:
		if !m.lookingUp && !m.recommending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case lookupDoneMsg:
		return m.finishLookup(msg)
	case recommendDoneMsg:
		if msg.seq != m.recommendSeq {
			return m, nil
		}
		m.recommending = false
		m.recommendation = msg.text
		m.refreshSuggestion()
		return m, nil
	case recentsMsg:
		m.recent = msg.records
		return m, nil
	case lookupSavedMsg:
		return m, m.loadRecentsCmd()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.keyModal {
		return m.updateKeyModal(msg)
	}
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "enter":
		return m.startLookup()
	case "ctrl+g":
		return m.startRecommend()
	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		m.suggestionVP, cmd = m.suggestionVP.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.usernameInput, cmd = m.usernameInput.Update(msg)
	return m, cmd
}

func (m *Model) updateKeyModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.keyModal = false
		return m, nil
	case tea.KeyEnter:
		key := strings.TrimSpace(m.keyInput.Value())
		if key == "" {
			return m, nil
		}
		m.apiKey = key
		m.keyModal = false
		return m.startRecommend()
	}
	var cmd tea.Cmd
	m.keyInput, cmd = m.keyInput.Update(msg)
	return m, cmd
}

// startLookup issues a profile lookup for the entered username. A second
// submit is ignored while one is outstanding; a newer submit supersedes the
// in-flight one via the sequence number.
func (m *Model) startLookup() (tea.Model, tea.Cmd) {
	username := strings.TrimSpace(m.usernameInput.Value())
	if username == "" || m.lookingUp {
		return m, nil
	}
	m.lookupSeq++
	m.lookingUp = true
	m.errMsg = ""
	return m, tea.Batch(m.spin.Tick, m.lookupCmd(m.lookupSeq, username))
}

func (m *Model) finishLookup(msg lookupDoneMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.lookupSeq {
		return m, nil
	}
	m.lookingUp = false
	if msg.err != nil {
		// A failed lookup clears any previously displayed profile.
		m.profile = nil
		m.recommendation = ""
		m.errMsg = msg.err.Error()
		m.skillsTable = buildSkillsTable(nil)
		m.refreshSuggestion()
		return m, nil
	}
	profile := msg.profile
	m.profile = &profile
	m.errMsg = ""
	m.recommendation = ""
	m.skillsTable = buildSkillsTable(profile.Skills)
	m.updateLayout()
	m.refreshSuggestion()
	return m, m.saveLookupCmd(profile)
}

// startRecommend requests a suggestion for the current profile. Without a
// credential it opens the API-key prompt instead of touching the network.
func (m *Model) startRecommend() (tea.Model, tea.Cmd) {
	if m.profile == nil || m.recommending {
		return m, nil
	}
	if strings.TrimSpace(m.apiKey) == "" {
		m.keyModal = true
		return m, m.keyInput.Focus()
	}
	m.recommendSeq++
	m.recommending = true
	return m, tea.Batch(m.spin.Tick, m.recommendCmd(m.recommendSeq, *m.profile, m.apiKey))
}

func (m *Model) lookupCmd(seq int, username string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
		defer cancel()
		profile, err := m.source.Assemble(ctx, username)
		return lookupDoneMsg{seq: seq, profile: profile, err: err}
	}
}

func (m *Model) recommendCmd(seq int, profile model.PlayerProfile, apiKey string) tea.Cmd {
	return func() tea.Msg {
		prompt, err := advisor.BuildPrompt(profile)
		if err != nil {
			return recommendDoneMsg{seq: seq, text: advisor.MsgRecommendationFailed}
		}
		ctx, cancel := context.WithTimeout(context.Background(), recommendTimeout)
		defer cancel()
		text, err := m.recommender.Recommend(ctx, prompt, apiKey)
		if err != nil {
			return recommendDoneMsg{seq: seq, text: advisor.MsgRecommendationFailed}
		}
		return recommendDoneMsg{seq: seq, text: text}
	}
}

func (m *Model) saveLookupCmd(profile model.PlayerProfile) tea.Cmd {
	if m.history == nil {
		return nil
	}
	username := strings.TrimSpace(m.usernameInput.Value())
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rec := model.LookupRecord{
			Username:        username,
			DisplayName:     profile.DisplayName,
			TotalExperience: profile.TotalExperience,
			LookedUpAt:      time.Now(),
		}
		if err := m.history.RecordLookup(ctx, rec); err != nil {
			// History is best-effort; the profile is already displayed.
			_ = err
		}
		return lookupSavedMsg{}
	}
}

func (m *Model) loadRecentsCmd() tea.Cmd {
	if m.history == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		records, err := m.history.RecentLookups(ctx, recentPlayersShown)
		if err != nil {
			return recentsMsg{}
		}
		return recentsMsg{records: records}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.keyModal {
		return m.renderKeyModal()
	}
	header := m.renderHeader()
	body := m.renderBody()
	footer := m.renderFooter()
	return fitLines(header+"\n"+body+"\n"+footer, m.width, m.height)
}

func (m *Model) renderHeader() string {
	title := titleStyle.Render("OSRS Activity Advisor")
	subtitle := subtitleStyle.Render("Let AI help you decide what to do next in Gielinor")
	status := ""
	switch {
	case m.lookingUp:
		status = m.spin.View() + " Looking up player..."
	case m.recommending:
		status = m.spin.View() + " Asking the advisor..."
	case m.errMsg != "":
		status = errorStyle.Render(m.errMsg)
	}
	lines := []string{title, subtitle, "", m.usernameInput.View()}
	if status != "" {
		lines = append(lines, status)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody() string {
	sidebar := m.renderSidebar()
	main := m.renderMain()
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", main)
}

func (m *Model) renderSidebar() string {
	lines := []string{
		cardTitleStyle.Render("Quick Tools"),
		sidebarStyle.Render("OSRS Wiki"),
		helpStyle.Render("oldschool.runescape.wiki"),
		sidebarStyle.Render("WiseOldMan"),
		helpStyle.Render("wiseoldman.net"),
		sidebarStyle.Render("GE Prices"),
		helpStyle.Render("prices.runescape.wiki/osrs"),
	}
	if len(m.recent) > 0 {
		lines = append(lines, "", cardTitleStyle.Render("Recent Players"))
		for _, rec := range m.recent {
			lines = append(lines, sidebarStyle.Render(rec.DisplayName))
		}
	}
	return cardStyle.Width(sidebarWidth).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderMain() string {
	if m.profile == nil {
		hint := "Enter a username and press enter to fetch stats."
		return cardStyle.Render(subtitleStyle.Render(hint))
	}
	stats := m.renderStatsCard()
	activity := m.renderActivityCard()
	suggestion := m.renderSuggestionCard()
	right := lipgloss.JoinVertical(lipgloss.Left, activity, suggestion)
	return lipgloss.JoinHorizontal(lipgloss.Top, stats, " ", right)
}

func (m *Model) renderStatsCard() string {
	header := cardTitleStyle.Render(fmt.Sprintf("%s · %d skills", m.profile.DisplayName, len(m.profile.Skills)))
	return cardStyle.Render(header + "\n" + m.skillsTable.View())
}

func (m *Model) renderActivityCard() string {
	lines := []string{cardTitleStyle.Render("Recent Activity")}
	for _, activity := range m.profile.RecentActivities {
		lines = append(lines, activityStyle.Render("▸ "+activity))
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderSuggestionCard() string {
	header := cardTitleStyle.Render("AI Recommendation")
	if m.recommendation == "" {
		hint := subtitleStyle.Render("Press ctrl+g for a suggestion.")
		return cardStyle.Render(header + "\n" + hint)
	}
	return cardStyle.Render(header + "\n" + m.suggestionVP.View())
}

func (m *Model) renderFooter() string {
	help := "enter: fetch stats  ctrl+g: get suggestion  up/down: scroll  esc: quit"
	return helpStyle.Render(help)
}

func (m *Model) renderKeyModal() string {
	body := []string{
		cardTitleStyle.Render("Enter API Key"),
		subtitleStyle.Render("An API key is needed for recommendations."),
		m.keyInput.View(),
		helpStyle.Render("enter: save and continue  esc: cancel"),
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	inputWidth := m.width - lipgloss.Width(m.usernameInput.Prompt) - 2
	m.usernameInput.Width = maxInt(12, minInt(inputWidth, 40))
	m.keyInput.Width = maxInt(10, modalInnerWidth(m.width)-lipgloss.Width(m.keyInput.Prompt))

	suggestionWidth := m.width - sidebarWidth - statsCardWidth() - 10
	m.suggestionVP.Width = maxInt(20, suggestionWidth)
	m.suggestionVP.Height = maxInt(4, m.height/3)
	m.refreshSuggestion()
}

func (m *Model) refreshSuggestion() {
	if m.recommendation == "" {
		m.suggestionVP.SetContent("")
		return
	}
	m.suggestionVP.SetContent(WrapText(m.recommendation, m.suggestionVP.Width))
	m.suggestionVP.GotoTop()
}

func buildSkillsTable(skills []model.SkillRecord) table.Model {
	columns := []table.Column{
		{Title: "Skill", Width: 12},
		{Title: "Level", Width: 5},
		{Title: "XP", Width: 11},
	}
	rows := make([]table.Row, 0, len(skills))
	for _, skill := range skills {
		rows = append(rows, table.Row{
			skill.Name,
			fmt.Sprintf("%d", skill.Level),
			fmt.Sprintf("%d", skill.Experience),
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, len(rows))),
	)
	t.SetStyles(skillsTableStyles())
	return t
}

func skillsTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell
	return styles
}

func statsCardWidth() int {
	// Columns plus padding and border.
	return 12 + 5 + 11 + 8
}

func modalWidth(width int) int {
	return maxInt(40, minInt(width-4, 70))
}

func modalInnerWidth(width int) int {
	w := modalWidth(width)
	w -= 6 // 2 border + 4 padding
	if w < 10 {
		return 10
	}
	return w
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}
