// Package assistant wraps the external text-generation service behind the two
// operations the ride demo needs: a fare estimate and a support chat reply.
// Both are best-effort. Callers always get a usable value back, either from
// the model or from a local fallback, and never an error.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"movi/internal/config"
	"movi/internal/domain/entities"
)

const (
	SupportUnavailableReply = "Our support agents are currently unavailable. Please try again later."
	SupportErrorReply       = "I'm sorry, I'm having trouble connecting to our systems right now. Please try again in a moment."
	FareFallbackNotice      = "Could not calculate fare. Showing an estimated fare instead."
)

var ErrEmptyReply = errors.New("empty reply from text generation service")

// TextGenerator is the narrow view of a text-generation model.
type TextGenerator interface {
	// Generate answers a single prompt.
	Generate(ctx context.Context, prompt string) (string, error)
	// Converse answers the last user message of history, in the persona
	// given by system.
	Converse(ctx context.Context, system string, history []entities.Message) (string, error)
}

// FareEstimator and SupportResponder are what the services depend on.
type FareEstimator interface {
	EstimateFare(ctx context.Context, pickup, destination string, vt entities.VehicleType) FareQuote
}

type SupportResponder interface {
	SupportReply(ctx context.Context, history []entities.Message) SupportAnswer
}

// SupportAnswer is a support chat reply. Fallback marks a canned local reply
// that did not come from the model.
type SupportAnswer struct {
	Text     string
	Fallback bool
}

// FareSource says where a quoted fare came from.
type FareSource string

const (
	FareSourceModel    FareSource = "model"
	FareSourceDefault  FareSource = "default"
	FareSourceFallback FareSource = "fallback"
)

type FareQuote struct {
	Amount float64    `json:"amount"`
	Source FareSource `json:"source"`
	Notice string     `json:"notice,omitempty"`
}

// Client implements FareEstimator and SupportResponder. A nil generator means
// the service is not configured and every call takes the local path.
type Client struct {
	gen    TextGenerator
	cfg    config.AssistantConfig
	logger *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand

	warnOnce sync.Once
}

func NewClient(gen TextGenerator, cfg config.AssistantConfig, logger *slog.Logger, rng *rand.Rand) *Client {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		gen:    gen,
		cfg:    cfg,
		logger: logger,
		rng:    rng,
	}
}

// Configured reports whether calls reach the external service.
func (c *Client) Configured() bool {
	return c.gen != nil
}

func (c *Client) warnUnconfigured() {
	c.warnOnce.Do(func() {
		c.logger.Warn("text generation API key is missing, using local fallbacks",
			"action", "assistant_unconfigured")
	})
}

// EstimateFare asks the model for a fare in USD.
func (c *Client) EstimateFare(ctx context.Context, pickup, destination string, vt entities.VehicleType) FareQuote {
	if c.gen == nil {
		c.warnUnconfigured()
		return FareQuote{Amount: c.cfg.DefaultFare, Source: FareSourceDefault}
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	reply, err := c.gen.Generate(ctx, FarePrompt(pickup, destination, vt))
	if err != nil {
		c.logger.Error("fare estimate failed", "action", "estimate_fare", "error", err)
		return FareQuote{Amount: c.randomFare(), Source: FareSourceFallback, Notice: FareFallbackNotice}
	}

	fare, err := ParseFare(reply)
	if err != nil {
		c.logger.Warn("could not parse fare from model reply",
			"action", "estimate_fare", "reply", reply, "error", err)
		return FareQuote{Amount: c.randomFare(), Source: FareSourceFallback}
	}
	return FareQuote{Amount: fare, Source: FareSourceModel}
}

// SupportReply answers the last message of history. The history is expected
// to already contain the user's message; only its model context is sent.
func (c *Client) SupportReply(ctx context.Context, history []entities.Message) SupportAnswer {
	if c.gen == nil {
		c.warnUnconfigured()
		return SupportAnswer{Text: SupportUnavailableReply, Fallback: true}
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	reply, err := c.gen.Converse(ctx, SupportPersona, entities.ModelContext(history))
	if err == nil && strings.TrimSpace(reply) == "" {
		err = ErrEmptyReply
	}
	if err != nil {
		c.logger.Error("support reply failed", "action", "support_reply", "error", err)
		return SupportAnswer{Text: SupportErrorReply, Fallback: true}
	}
	return SupportAnswer{Text: strings.TrimSpace(reply)}
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.cfg.RequestTimeout)
}

// randomFare returns a whole-dollar fare in [FallbackFareMin, FallbackFareMax].
func (c *Client) randomFare() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	span := c.cfg.FallbackFareMax - c.cfg.FallbackFareMin + 1
	return float64(c.cfg.FallbackFareMin + c.rng.IntN(span))
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// ParseFare reads the leading number of a model reply, the way JavaScript's
// parseFloat would: "24.50" and "24.50 USD" both give 24.5. A leading "$" is
// tolerated. Zero, negative and non-finite values are rejected.
func ParseFare(reply string) (float64, error) {
	s := strings.TrimSpace(reply)
	s = strings.TrimPrefix(s, "$")
	match := leadingNumber.FindString(s)
	if match == "" {
		return 0, fmt.Errorf("no number in %q", reply)
	}
	fare, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", match, err)
	}
	if math.IsNaN(fare) || math.IsInf(fare, 0) || fare <= 0 {
		return 0, fmt.Errorf("fare %v out of range", fare)
	}
	return fare, nil
}
