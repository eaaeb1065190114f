package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingua/internal/ui/theme"
)

// Choices is a multiple-choice selector. It only tracks the cursor; the
// caller decides what a choice means and reveals the answer afterwards.
type Choices struct {
	Options  []string
	Cursor   int
	Chosen   int // -1 until Reveal
	Correct  int // -1 when unknown
	revealed bool
}

// NewChoices creates a selector over options.
func NewChoices(options []string) Choices {
	return Choices{Options: options, Chosen: -1, Correct: -1}
}

// Update moves the cursor. It returns the chosen index when the learner
// presses enter or an option number, and -1 otherwise.
func (c Choices) Update(msg tea.Msg) (Choices, int) {
	if c.revealed {
		return c, -1
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, -1
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "enter":
		if len(c.Options) > 0 {
			return c, c.Cursor
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			i := int(key[0] - '1')
			if i < len(c.Options) {
				c.Cursor = i
				return c, i
			}
		}
	}
	return c, -1
}

// Reveal marks chosen and, when correct is not negative, the right answer.
func (c *Choices) Reveal(chosen, correct int) {
	c.revealed = true
	c.Chosen = chosen
	c.Correct = correct
}

// Revealed reports whether Reveal has been called.
func (c Choices) Revealed() bool { return c.revealed }

// View renders the options, colouring them once revealed.
func (c Choices) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Cursor && !c.revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		switch {
		case c.revealed && i == c.Correct:
			b.WriteString(theme.Correct.Render(line + "  ✓"))
		case c.revealed && i == c.Chosen:
			b.WriteString(theme.Incorrect.Render(line + "  ✗"))
		case c.revealed:
			b.WriteString(theme.Hint.Render(line))
		case i == c.Cursor:
			b.WriteString(theme.Selected.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Button renders a one-line button.
func Button(label string, focused bool) string {
	if focused {
		return theme.ButtonActive.Render("▸ " + label)
	}
	return theme.ButtonInactive.Render(label)
}
