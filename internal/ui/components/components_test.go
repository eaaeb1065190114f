package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

type chosenMsg int

func TestMenu_SkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "Off", Disabled: true},
		{Label: "One", Action: func() tea.Cmd { return func() tea.Msg { return chosenMsg(1) } }},
		{Label: "Two", Action: func() tea.Cmd { return func() tea.Msg { return chosenMsg(2) } }},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(specialKey(tea.KeyUp))
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(specialKey(tea.KeyDown))
	assert.Equal(t, 2, m.Selected)

	_, cmd := m.Update(specialKey(tea.KeyEnter))
	if assert.NotNil(t, cmd) {
		assert.Equal(t, chosenMsg(2), cmd())
	}
}

func TestMenu_NumberShortcut(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "One", Action: func() tea.Cmd { return func() tea.Msg { return chosenMsg(1) } }},
		{Label: "Two", Disabled: true, Action: func() tea.Cmd { return func() tea.Msg { return chosenMsg(2) } }},
	})

	_, cmd := m.Update(keyPress('2'))
	assert.Nil(t, cmd)

	m, cmd = m.Update(keyPress('1'))
	if assert.NotNil(t, cmd) {
		assert.Equal(t, chosenMsg(1), cmd())
	}
	assert.Contains(t, m.View(), "1. One")
}

func TestChoices(t *testing.T) {
	c := NewChoices([]string{"soy", "estoy", "es"})

	c, picked := c.Update(specialKey(tea.KeyDown))
	assert.Equal(t, -1, picked)
	assert.Equal(t, 1, c.Cursor)

	c, picked = c.Update(keyPress('3'))
	assert.Equal(t, 2, picked)

	c.Reveal(2, 0)
	_, picked = c.Update(keyPress('1'))
	assert.Equal(t, -1, picked, "no choice after reveal")

	view := c.View()
	assert.True(t, strings.Contains(view, "✓"))
	assert.True(t, strings.Contains(view, "✗"))
}

func TestFraction(t *testing.T) {
	assert.Equal(t, 0.0, Fraction(1, 0))
	assert.Equal(t, 0.5, Fraction(5, 10))
	assert.Equal(t, 1.0, Fraction(12, 10))
}

func TestScore(t *testing.T) {
	assert.Equal(t, "Score: 3/5", Score(3, 5))
}
