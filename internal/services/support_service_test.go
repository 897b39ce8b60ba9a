package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"movi/internal/assistant"
	"movi/internal/clock"
	"movi/internal/config"
	"movi/internal/domain/entities"
	"movi/internal/repository/memory"
)

type failingGenerator struct{}

func (failingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return "", errors.New("service unavailable")
}

func (failingGenerator) Converse(ctx context.Context, system string, history []entities.Message) (string, error) {
	return "", errors.New("service unavailable")
}

type echoGenerator struct{}

func (echoGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return prompt, nil
}

func (echoGenerator) Converse(ctx context.Context, system string, history []entities.Message) (string, error) {
	return "You said: " + history[len(history)-1].Text, nil
}

// flakyGenerator fails its first chat call and records what later calls see.
type flakyGenerator struct {
	calls   int
	history []entities.Message
}

func (g *flakyGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return "", errors.New("not used")
}

func (g *flakyGenerator) Converse(ctx context.Context, system string, history []entities.Message) (string, error) {
	g.calls++
	if g.calls == 1 {
		return "", errors.New("service unavailable")
	}
	g.history = history
	return "Back online.", nil
}

func setupSupport(gen assistant.TextGenerator) *SupportService {
	fake := clock.NewFake(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	client := assistant.NewClient(gen, config.NewDefaultConfig().Assistant, discardLogger(), nil)
	return NewSupportService(memory.NewConversationRepository(fake.Now), client, fake, discardLogger())
}

func TestSupportService_HistoryStartsWithGreeting(t *testing.T) {
	svc := setupSupport(nil)

	history, err := svc.History(context.Background(), "s1")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 1 || history[0].Sender != entities.SenderBot || history[0].Text != entities.SupportGreeting {
		t.Errorf("Expected only the greeting, got %+v", history)
	}
}

func TestSupportService_Send(t *testing.T) {
	tests := []struct {
		name  string
		gen   assistant.TextGenerator
		reply string
	}{
		{"model reply", echoGenerator{}, "You said: Where is my driver?"},
		{"failing service", failingGenerator{}, assistant.SupportErrorReply},
		{"unconfigured", nil, assistant.SupportUnavailableReply},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := setupSupport(tt.gen)
			ctx := context.Background()

			msg, err := svc.Send(ctx, "s1", "  Where is my driver?  ")
			if err != nil {
				t.Fatalf("Send failed: %v", err)
			}
			if msg.Sender != entities.SenderBot || msg.Text != tt.reply {
				t.Errorf("Expected bot reply %q, got %+v", tt.reply, msg)
			}

			history, _ := svc.History(ctx, "s1")
			if len(history) != 3 {
				t.Fatalf("Expected greeting, question and reply, got %d messages", len(history))
			}
			if history[1].Sender != entities.SenderUser || history[1].Text != "Where is my driver?" {
				t.Errorf("Expected trimmed user message before the reply, got %+v", history[1])
			}
			if history[2].Text != tt.reply {
				t.Errorf("Expected reply last, got %+v", history[2])
			}
		})
	}
}

func TestSupportService_RejectsBlankMessage(t *testing.T) {
	svc := setupSupport(echoGenerator{})

	if _, err := svc.Send(context.Background(), "s1", " \t "); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("Expected ErrEmptyMessage, got %v", err)
	}
	history, _ := svc.History(context.Background(), "s1")
	if len(history) != 1 {
		t.Errorf("Expected nothing recorded, got %d messages", len(history))
	}
}

func TestSupportService_SessionsAreIndependent(t *testing.T) {
	svc := setupSupport(echoGenerator{})
	ctx := context.Background()

	svc.Send(ctx, "a", "first")
	svc.Send(ctx, "b", "second")

	history, _ := svc.History(ctx, "a")
	for _, m := range history {
		if strings.Contains(m.Text, "second") {
			t.Errorf("Session a sees a message of session b: %+v", m)
		}
	}
}

func TestSupportService_FallbackRepliesStayOutOfChatContext(t *testing.T) {
	gen := &flakyGenerator{}
	svc := setupSupport(gen)
	ctx := context.Background()

	first, err := svc.Send(ctx, "s1", "first")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if first.Text != assistant.SupportErrorReply || !first.Local {
		t.Errorf("Expected a local fallback reply, got %+v", first)
	}

	second, err := svc.Send(ctx, "s1", "second")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if second.Text != "Back online." || second.Local {
		t.Errorf("Expected the model reply, got %+v", second)
	}

	if len(gen.history) != 1 || gen.history[0].Sender != entities.SenderUser || gen.history[0].Text != "second" {
		t.Errorf("Expected the model to see only the new question, got %+v", gen.history)
	}

	history, _ := svc.History(ctx, "s1")
	if len(history) != 5 {
		t.Errorf("Expected the full transcript to be kept, got %d messages", len(history))
	}
}
