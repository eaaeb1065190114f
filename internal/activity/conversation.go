package activity

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/lingua/internal/api"
)

// ConversationAPI is the subset of the API conversations need.
type ConversationAPI interface {
	StartConversation(ctx context.Context) (*api.ConversationStart, error)
	SendMessage(ctx context.Context, sessionID api.ID, message string) (*api.ConversationReply, error)
}

// Turn is the tutor's answer to one learner message.
type Turn struct {
	Sent       string
	Reply      string
	Correction string // empty when there is nothing to correct
	Tips       string
}

// Conversation is a chat with the tutor.
type Conversation struct {
	api       ConversationAPI
	sessionID api.ID
	started   bool
}

// NewConversation creates a Conversation controller.
func NewConversation(c ConversationAPI) *Conversation {
	return &Conversation{api: c}
}

// Start opens a new conversation and returns the tutor's opening line.
func (c *Conversation) Start(ctx context.Context) (string, error) {
	res, err := c.api.StartConversation(label(ctx, LabelConversation))
	if err != nil {
		return "", fmt.Errorf("start conversation: %w", err)
	}
	c.sessionID = res.SessionID
	c.started = true
	return res.OpeningMessage, nil
}

// Send posts text and returns the tutor's turn.
func (c *Conversation) Send(ctx context.Context, text string) (Turn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Turn{}, ErrEmptyText
	}
	if !c.started {
		return Turn{}, ErrNotStarted
	}
	res, err := c.api.SendMessage(label(ctx, LabelConversation), c.sessionID, text)
	if err != nil {
		return Turn{}, fmt.Errorf("send message: %w", err)
	}

	turn := Turn{Sent: text, Reply: res.Reply, Tips: present(res.Tips)}
	if corr := present(res.CorrectedUserMessage); corr != text {
		turn.Correction = corr
	}
	return turn, nil
}

// present returns the value of an optional server string, treating the
// literal "null" as absent.
func present(s *string) string {
	if s == nil {
		return ""
	}
	v := strings.TrimSpace(*s)
	if v == "null" {
		return ""
	}
	return v
}
