// Package progress shows level progress, history and advancement.
package progress

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/activity"
	"github.com/abhisek/lingua/internal/api"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/screens"
	"github.com/abhisek/lingua/internal/session"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
)

const (
	// MinimumAttempts is how many attempts a module needs before it counts.
	MinimumAttempts = 10
	// Threshold is the module score needed to advance.
	Threshold = 85
	// EngagementMessages is how many conversation messages advancement needs.
	EngagementMessages = 20
)

type overviewMsg struct {
	owner    screen.Owner
	overview activity.Overview
	err      error
}

func (m overviewMsg) Failure() error { return m.err }

type advancedMsg struct {
	owner       screen.Owner
	advancement activity.Advancement
	err         error
}

func (m advancedMsg) Failure() error { return m.err }

type cheatMsg struct {
	owner   screen.Owner
	message string
	err     error
}

func (m cheatMsg) Failure() error { return m.err }

type mode int

const (
	browsing mode = iota
	confirming
	enteringCode
	celebrating
)

// ProgressScreen is the progress dashboard.
type ProgressScreen struct {
	owner    screen.Owner
	progress *activity.Progress
	code     components.TextInput

	mode        mode
	overview    activity.Overview
	loaded      bool
	advancement *api.AdvancementResult
	notice      string

	busy bool
	err  string
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.KeyHintProvider = (*ProgressScreen)(nil)
var _ screen.InputCapturer = (*ProgressScreen)(nil)

// New creates the progress screen.
func New(deps screens.Deps) *ProgressScreen {
	return &ProgressScreen{
		owner:    screen.NewOwner(),
		progress: activity.NewProgress(deps.API),
		code:     components.NewTextInput("Code", "demo code", false, 64),
	}
}

func (s *ProgressScreen) Title() string { return "Progress" }

func (s *ProgressScreen) Init() tea.Cmd { return s.load() }

// CapturingInput keeps esc for closing the code prompt and the dialogs.
func (s *ProgressScreen) CapturingInput() bool { return s.mode != browsing }

func (s *ProgressScreen) KeyHints() []layout.KeyHint {
	switch s.mode {
	case confirming:
		return []layout.KeyHint{{Key: "y", Description: "Advance"}, {Key: "n", Description: "Cancel"}}
	case enteringCode:
		return []layout.KeyHint{{Key: "Enter", Description: "Apply"}, {Key: "Esc", Description: "Cancel"}}
	case celebrating:
		return []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
	}
	hints := []layout.KeyHint{{Key: "r", Description: "Refresh"}}
	if s.canAdvance() {
		hints = append(hints, layout.KeyHint{Key: "a", Description: "Advance"})
	}
	return append(hints,
		layout.KeyHint{Key: "c", Description: "Cheat code"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (s *ProgressScreen) canAdvance() bool {
	sum := s.overview.Summary
	return sum != nil && sum.CanAdvance && sum.NextLevel != nil
}

func (s *ProgressScreen) load() tea.Cmd {
	s.busy = true
	s.err = ""
	owner, progress := s.owner, s.progress
	return func() tea.Msg {
		ov, err := progress.Load(context.Background())
		return overviewMsg{owner: owner, overview: ov, err: err}
	}
}

func (s *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case overviewMsg:
		if msg.owner != s.owner {
			return s, nil
		}
		s.busy = false
		if msg.err != nil {
			s.err = api.Describe(msg.err)
			return s, nil
		}
		s.overview = msg.overview
		s.loaded = true
		return s, nil

	case advancedMsg:
		if msg.owner != s.owner {
			return s, nil
		}
		s.busy = false
		if msg.err != nil {
			s.mode = browsing
			s.err = api.Describe(msg.err)
			return s, nil
		}
		s.advancement = msg.advancement.Result
		s.mode = celebrating
		if u := msg.advancement.User; u != nil {
			user := *u
			return s, func() tea.Msg { return session.UserUpdatedMsg{User: user} }
		}
		return s, nil

	case cheatMsg:
		if msg.owner != s.owner {
			return s, nil
		}
		s.busy = false
		if msg.err != nil {
			s.err = api.Describe(msg.err)
			return s, nil
		}
		s.mode = browsing
		s.code.Blur()
		s.code.Reset()
		s.notice = msg.message
		return s, s.load()

	case tea.KeyPressMsg:
		if s.busy {
			return s, nil
		}
		return s, s.handleKey(msg)
	}

	if s.mode == enteringCode {
		var cmd tea.Cmd
		s.code, cmd = s.code.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ProgressScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	switch s.mode {
	case confirming:
		switch key {
		case "y", "enter":
			return s.advance()
		case "n", "esc":
			s.mode = browsing
		}
		return nil

	case enteringCode:
		switch key {
		case "enter":
			return s.applyCode()
		case "esc":
			s.mode = browsing
			s.err = ""
			s.code.Blur()
			return nil
		}
		var cmd tea.Cmd
		s.code, cmd = s.code.Update(msg)
		return cmd

	case celebrating:
		if key == "enter" || key == "esc" {
			s.mode = browsing
			s.advancement = nil
			return s.load()
		}
		return nil
	}

	switch key {
	case "r":
		s.notice = ""
		return s.load()
	case "a":
		if s.canAdvance() {
			s.mode = confirming
			s.err = ""
		}
	case "c":
		s.mode = enteringCode
		s.err = ""
		return s.code.Focus()
	}
	return nil
}

func (s *ProgressScreen) advance() tea.Cmd {
	s.busy = true
	s.err = ""
	owner, progress := s.owner, s.progress
	return func() tea.Msg {
		adv, err := progress.Advance(context.Background())
		return advancedMsg{owner: owner, advancement: adv, err: err}
	}
}

func (s *ProgressScreen) applyCode() tea.Cmd {
	code := strings.TrimSpace(s.code.Value())
	if code == "" {
		return nil
	}
	s.busy = true
	s.err = ""
	owner, progress := s.owner, s.progress
	return func() tea.Msg {
		message, err := progress.CheatCode(context.Background(), code)
		return cheatMsg{owner: owner, message: message, err: err}
	}
}

type moduleCard struct {
	name     string
	attempts string
	fraction float64
	stat     string
	ready    bool
	status   string
}

type historyLine struct {
	level  string
	days   string
	dates  string
	score  string
	number int
}

type celebration struct {
	transition string
	scores     []string
	xp         string
	message    string
}

type viewModel struct {
	level      string
	meta       string
	overall    float64
	advance    string
	ready      bool
	modules    []moduleCard
	engagement *moduleCard
	history    []historyLine
	noHistory  string

	confirm     string
	codePrompt  bool
	celebration *celebration

	notice string
	status string
	err    string
}

func (s *ProgressScreen) viewModel() viewModel {
	vm := viewModel{notice: s.notice, err: s.err, codePrompt: s.mode == enteringCode}
	if s.busy {
		vm.status = "Loading..."
	}

	if s.mode == celebrating && s.advancement != nil {
		vm.celebration = celebrate(s.advancement)
	}

	sum := s.overview.Summary
	if sum == nil {
		return vm
	}
	vm.level = orDefault(sum.CurrentLevel, "?")
	vm.meta = fmt.Sprintf("%d days at this level · %d XP", sum.TimeAtCurrentLevel, sum.TotalXP)
	vm.overall = components.Fraction(math.Min(sum.OverallProgress, 100), 100)
	switch {
	case sum.CanAdvance:
		vm.ready = true
		vm.advance = "✓ Ready to advance!"
		if sum.NextLevel != nil {
			vm.advance = fmt.Sprintf("✓ Ready to advance to %s! Press a.", *sum.NextLevel)
		}
	case sum.AdvancementReason != nil:
		vm.advance = *sum.AdvancementReason
	}
	if s.mode == confirming && sum.NextLevel != nil {
		vm.confirm = fmt.Sprintf("Advance to %s? Your progress at this level will be archived and reset. (y/n)", *sum.NextLevel)
	}

	for _, m := range sum.Modules {
		vm.modules = append(vm.modules, moduleStatus(m))
	}
	if e := sum.ConversationEngagement; e != nil {
		card := engagementStatus(*e)
		vm.engagement = &card
	}

	if s.loaded && len(s.overview.History) == 0 {
		vm.noHistory = "No completed levels yet. Keep practicing to advance!"
	}
	for i, h := range s.overview.History {
		line := historyLine{
			number: i + 1,
			level:  h.Level,
			days:   fmt.Sprintf("%d days", h.DaysAtLevel),
			dates:  formatDate(h.StartedAt) + " - " + formatDate(h.CompletedAt),
		}
		if h.WeightedScore != nil {
			line.score = fmt.Sprintf("Weighted score: %d%%", int(math.Round(*h.WeightedScore)))
		}
		vm.history = append(vm.history, line)
	}
	return vm
}

func moduleStatus(m api.ModuleProgress) moduleCard {
	card := moduleCard{
		name:     capitalize(m.Module),
		attempts: fmt.Sprintf("%d/%d", m.TotalAttempts, MinimumAttempts),
		fraction: components.Fraction(float64(m.TotalAttempts), MinimumAttempts),
	}
	score := int(math.Round(m.Score))
	if m.Module == "vocabulary" || m.Module == "grammar" {
		card.stat = fmt.Sprintf("%d attempts · Accuracy: %d%%", m.TotalAttempts, score)
	} else {
		card.stat = fmt.Sprintf("%d attempts · Score: %d%%", m.TotalAttempts, score)
	}

	switch {
	case m.MeetsThreshold && m.MeetsMinimumAttempts:
		card.ready = true
		card.status = "✓ Ready"
	case !m.MeetsMinimumAttempts:
		card.status = fmt.Sprintf("Need %d more attempts", max(MinimumAttempts-m.TotalAttempts, 0))
	case !m.MeetsThreshold:
		card.status = fmt.Sprintf("Need %d%% more", max(int(math.Round(Threshold-m.Score)), 0))
	default:
		card.status = "Keep practicing!"
	}
	return card
}

func engagementStatus(e api.ConversationEngagement) moduleCard {
	card := moduleCard{
		name:     "Conversation",
		attempts: fmt.Sprintf("%d/%d", e.TotalMessages, EngagementMessages),
		fraction: components.Fraction(float64(e.TotalMessages), EngagementMessages),
		stat:     fmt.Sprintf("%d messages", e.TotalMessages),
	}
	if e.MeetsThreshold {
		card.ready = true
		card.status = "✓ Ready"
	} else {
		card.status = fmt.Sprintf("Need %d more messages", max(EngagementMessages-e.TotalMessages, 0))
	}
	return card
}

func celebrate(res *api.AdvancementResult) *celebration {
	c := &celebration{
		transition: orDefault(res.OldLevel, "?") + " → " + res.NewLevel,
		xp:         fmt.Sprintf("+%d XP", res.XPEarned),
		message:    orDefault(res.CelebrationMessage, ""),
	}
	names := make([]string, 0, len(res.ModuleScores))
	for name := range res.ModuleScores {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		value := "N/A"
		if f, ok := res.ModuleScores[name].(float64); ok && f != 0 {
			value = fmt.Sprintf("%d%%", int(math.Round(f)))
		}
		c.scores = append(c.scores, capitalize(name)+": "+value)
	}
	return c
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05", "2006-01-02"}

func formatDate(s string) string {
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

func orDefault(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (s *ProgressScreen) View(width, height int) string {
	vm := s.viewModel()
	cw := layout.ContentWidth(width)

	var lines []string
	if c := vm.celebration; c != nil {
		lines = append(lines,
			theme.Title.Render("🎉 Congratulations! 🎉"),
			"",
			theme.Selected.Render(c.transition),
			"",
		)
		for _, sc := range c.scores {
			lines = append(lines, theme.Body.Render("  "+sc))
		}
		lines = append(lines, "", theme.Correct.Render(c.xp))
		if c.message != "" {
			lines = append(lines, theme.Body.Width(cw-4).Render(c.message))
		}
		lines = append(lines, "", components.Button("Start learning at "+s.advancement.NewLevel, true))
		card := theme.Card.Width(cw).Render(strings.Join(lines, "\n"))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
	}

	if vm.level != "" {
		lines = append(lines,
			theme.Title.Render("Level "+vm.level)+"  "+theme.Hint.Render(vm.meta),
			components.NewProgressBar("Overall", vm.overall, true, cw-4).View(),
		)
		if vm.advance != "" {
			style := theme.Notice
			if vm.ready {
				style = theme.Correct
			}
			lines = append(lines, style.Width(cw-4).Render(vm.advance))
		}
		lines = append(lines, "")

		cards := vm.modules
		if vm.engagement != nil {
			cards = append(cards, *vm.engagement)
		}
		for _, m := range cards {
			status := theme.Notice.Render(m.status)
			if m.ready {
				status = theme.Correct.Render(m.status)
			}
			lines = append(lines,
				theme.Subtitle.Render(m.name)+"  "+status,
				components.NewProgressBar(m.attempts, m.fraction, false, cw-4).View(),
				theme.Hint.Render("  "+m.stat),
			)
		}

		lines = append(lines, "", theme.Subtitle.Render("Level history"))
		if vm.noHistory != "" {
			lines = append(lines, theme.Hint.Render(vm.noHistory))
		}
		for _, h := range vm.history {
			lines = append(lines, theme.Body.Render(fmt.Sprintf("%d. %s  %s  %s  %s", h.number, h.level, h.days, h.dates, h.score)))
		}
	}

	if vm.confirm != "" {
		lines = append(lines, "", theme.Notice.Width(cw-4).Render(vm.confirm))
	}
	if vm.codePrompt {
		lines = append(lines, "", s.code.View())
	}
	if vm.notice != "" {
		lines = append(lines, theme.Correct.Render(vm.notice))
	}
	if vm.status != "" {
		lines = append(lines, theme.Hint.Render(vm.status))
	}
	if vm.err != "" {
		lines = append(lines, theme.ErrorText.Render(vm.err))
	}

	card := theme.Card.Width(cw).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
