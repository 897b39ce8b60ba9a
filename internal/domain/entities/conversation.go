package entities

import "time"

// Sender identifies who wrote a support chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// SupportGreeting opens every support conversation.
const SupportGreeting = "Hello! How can I help you today?"

// Message is one line of the support chat. Local messages (the greeting and
// canned fallback replies) are shown to the user but are not part of the
// model's chat context.
type Message struct {
	Sender Sender    `json:"sender"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
	Local  bool      `json:"local,omitempty"`
}

// Conversation is the single support chat context of a session.
type Conversation struct {
	SessionID string    `json:"session_id"`
	Messages  []Message `json:"messages"`
}

// NewConversation creates a conversation seeded with the bot greeting.
func NewConversation(sessionID string, now time.Time) *Conversation {
	return &Conversation{
		SessionID: sessionID,
		Messages: []Message{
			{Sender: SenderBot, Text: SupportGreeting, SentAt: now, Local: true},
		},
	}
}

// Append records a message at the end of the conversation.
func (c *Conversation) Append(sender Sender, text string, now time.Time) Message {
	msg := Message{Sender: sender, Text: text, SentAt: now}
	c.Messages = append(c.Messages, msg)
	return msg
}

// AppendLocal records a message that the model never sees.
func (c *Conversation) AppendLocal(sender Sender, text string, now time.Time) Message {
	msg := Message{Sender: sender, Text: text, SentAt: now, Local: true}
	c.Messages = append(c.Messages, msg)
	return msg
}

// History returns a copy of the messages that is safe to use after the
// conversation keeps growing.
func (c *Conversation) History() []Message {
	out := make([]Message, len(c.Messages))
	copy(out, c.Messages)
	return out
}

// ModelContext returns the exchanges the model should see: local messages are
// dropped, and so is every user message that was answered by a local
// fallback, since that exchange never reached the model.
func ModelContext(history []Message) []Message {
	out := make([]Message, 0, len(history))
	for i, m := range history {
		if m.Local {
			continue
		}
		if m.Sender == SenderUser && i+1 < len(history) && history[i+1].Local {
			continue
		}
		out = append(out, m)
	}
	return out
}
