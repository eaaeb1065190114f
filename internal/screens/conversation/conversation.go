// Package conversation is the chat screen with the tutor.
package conversation

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/activity"
	"github.com/abhisek/lingua/internal/api"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/screens"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
)

type startedMsg struct {
	owner   screen.Owner
	opening string
	err     error
}

func (m startedMsg) Failure() error { return m.err }

type turnMsg struct {
	owner screen.Owner
	turn  activity.Turn
	err   error
}

func (m turnMsg) Failure() error { return m.err }

type speaker int

const (
	learner speaker = iota
	tutor
	correction
	tip
)

type entry struct {
	from speaker
	text string
}

// ConversationScreen keeps the transcript and an input line.
type ConversationScreen struct {
	owner screen.Owner
	chat  *activity.Conversation
	input components.TextInput

	transcript []entry
	started    bool
	sending    bool
	err        string
}

var _ screen.Screen = (*ConversationScreen)(nil)
var _ screen.KeyHintProvider = (*ConversationScreen)(nil)

// New creates the conversation screen.
func New(deps screens.Deps) *ConversationScreen {
	return &ConversationScreen{
		owner: screen.NewOwner(),
		chat:  activity.NewConversation(deps.API),
		input: components.NewTextInput("You", "Type a message...", false, 500),
	}
}

func (s *ConversationScreen) Title() string { return "Conversation" }

func (s *ConversationScreen) Init() tea.Cmd {
	return tea.Batch(s.input.Focus(), s.start())
}

func (s *ConversationScreen) KeyHints() []layout.KeyHint {
	if !s.started && s.err != "" {
		return []layout.KeyHint{{Key: "Enter", Description: "Retry"}, {Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{{Key: "Enter", Description: "Send"}, {Key: "Esc", Description: "Back"}}
}

func (s *ConversationScreen) start() tea.Cmd {
	s.sending = true
	s.err = ""
	owner, chat := s.owner, s.chat
	return func() tea.Msg {
		opening, err := chat.Start(context.Background())
		return startedMsg{owner: owner, opening: opening, err: err}
	}
}

func (s *ConversationScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		if msg.owner != s.owner {
			return s, nil
		}
		s.sending = false
		if msg.err != nil {
			s.err = api.Describe(msg.err)
			return s, nil
		}
		s.started = true
		s.transcript = append(s.transcript, entry{from: tutor, text: msg.opening})
		return s, nil

	case turnMsg:
		if msg.owner != s.owner {
			return s, nil
		}
		s.sending = false
		if msg.err != nil {
			s.err = api.Describe(msg.err)
			return s, nil
		}
		t := msg.turn
		if t.Correction != "" {
			s.transcript = append(s.transcript, entry{from: correction, text: t.Correction})
		}
		s.transcript = append(s.transcript, entry{from: tutor, text: t.Reply})
		if t.Tips != "" {
			s.transcript = append(s.transcript, entry{from: tip, text: t.Tips})
		}
		return s, nil

	case tea.KeyPressMsg:
		if msg.String() == "enter" {
			return s, s.send()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ConversationScreen) send() tea.Cmd {
	if s.sending {
		return nil
	}
	if !s.started {
		return s.start()
	}
	text := strings.TrimSpace(s.input.Value())
	if text == "" {
		return nil
	}

	s.transcript = append(s.transcript, entry{from: learner, text: text})
	s.input.Reset()
	s.sending = true
	s.err = ""
	owner, chat := s.owner, s.chat
	return func() tea.Msg {
		turn, err := chat.Send(context.Background(), text)
		return turnMsg{owner: owner, turn: turn, err: err}
	}
}

type line struct {
	prefix string
	text   string
	from   speaker
}

type viewModel struct {
	lines  []line
	status string
	err    string
}

func (s *ConversationScreen) viewModel() viewModel {
	vm := viewModel{err: s.err}
	for _, e := range s.transcript {
		l := line{text: e.text, from: e.from}
		switch e.from {
		case learner:
			l.prefix = "You: "
		case tutor:
			l.prefix = "Tutor: "
		case correction:
			l.prefix = "Correction: "
		case tip:
			l.prefix = "Tip: "
		}
		vm.lines = append(vm.lines, l)
	}
	if s.sending {
		vm.status = "Tutor is typing..."
		if !s.started {
			vm.status = "Starting conversation..."
		}
	}
	return vm
}

func (s *ConversationScreen) View(width, height int) string {
	vm := s.viewModel()
	cw := layout.ContentWidth(width)

	var rendered []string
	for _, l := range vm.lines {
		var style lipgloss.Style
		switch l.from {
		case learner:
			style = theme.Selected
		case tutor:
			style = theme.Body
		case correction:
			style = theme.Notice
		case tip:
			style = theme.Hint
		}
		rendered = append(rendered, style.Width(cw-4).Render(l.prefix+l.text))
	}

	// Keep the newest lines when the transcript outgrows the screen.
	budget := max(height-8, 3)
	for len(rendered) > 0 && lipgloss.Height(strings.Join(rendered, "\n")) > budget {
		rendered = rendered[1:]
	}

	body := rendered
	if vm.status != "" {
		body = append(body, theme.Hint.Render(vm.status))
	}
	if vm.err != "" {
		body = append(body, theme.ErrorText.Render(vm.err))
	}
	body = append(body, "", s.input.View())

	card := theme.Card.Width(cw).Render(strings.Join(body, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
