package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingua/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Failed is implemented by async result messages that may carry an error.
// The app inspects it before the active screen sees the message, so an
// expired session is handled the same way whichever screen asked.
type Failed interface {
	Failure() error
}

// InputCapturer is implemented by screens that use esc themselves, for
// example to close an input, while CapturingInput reports true.
type InputCapturer interface {
	CapturingInput() bool
}
