package entities

import (
	"testing"
	"time"
)

func TestModelContext(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		build func(c *Conversation)
		want  []string
	}{
		{
			name:  "greeting only",
			build: func(c *Conversation) {},
			want:  nil,
		},
		{
			name: "pending question",
			build: func(c *Conversation) {
				c.Append(SenderUser, "hi", now)
			},
			want: []string{"hi"},
		},
		{
			name: "successful exchange kept",
			build: func(c *Conversation) {
				c.Append(SenderUser, "hi", now)
				c.Append(SenderBot, "hello", now)
				c.Append(SenderUser, "where is my driver?", now)
			},
			want: []string{"hi", "hello", "where is my driver?"},
		},
		{
			name: "failed exchange dropped",
			build: func(c *Conversation) {
				c.Append(SenderUser, "hi", now)
				c.AppendLocal(SenderBot, "try again later", now)
				c.Append(SenderUser, "hi again", now)
			},
			want: []string{"hi again"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConversation("s1", now)
			tt.build(c)

			got := ModelContext(c.History())
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d messages, got %+v", len(tt.want), got)
			}
			for i, m := range got {
				if m.Text != tt.want[i] {
					t.Errorf("Message %d: expected %q, got %q", i, tt.want[i], m.Text)
				}
			}
		})
	}
}

func TestNewConversation_GreetingIsLocal(t *testing.T) {
	c := NewConversation("s1", time.Now())
	if len(c.Messages) != 1 || !c.Messages[0].Local || c.Messages[0].Text != SupportGreeting {
		t.Errorf("Expected a local greeting, got %+v", c.Messages)
	}
}
