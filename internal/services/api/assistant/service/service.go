// Package service implements the assistant retrieval augmented proxy
package service

import (
	"context"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"helpdesk/internal/adapters/llm"
	perr "helpdesk/internal/platform/errors"
	"helpdesk/internal/platform/logger"
	"helpdesk/internal/services/api/assistant/domain"
	"helpdesk/internal/services/events"
)

// Completer is the outbound completion surface, satisfied by llm.Client
type Completer interface {
	Complete(ctx context.Context, msgs []llm.Message, temperature float64, maxTokens int) (string, error)
}

// ticketPhrases trigger the requires_ticket heuristic when present in the reply
var ticketPhrases = []string{
	"open a ticket",
	"support ticket",
	"technical support",
	"specialized",
}

// Config tunes the assistant pipeline
type Config struct {
	Temperature      float64
	MaxTokens        int
	CompanyContext   string
	BreakerThreshold uint32
	BreakerTimeout   time.Duration
}

// Service defines the service contract for the assistant
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	llm     Completer
	kb      domain.Retriever
	events  *events.Recorder
	cfg     Config
	breaker *gobreaker.CircuitBreaker[string]
}

// New creates a new assistant service
// kb and rec may be nil; retrieval and analytics are then skipped
func New(client Completer, kb domain.Retriever, rec *events.Recorder, cfg Config) *Svc {
	if client == nil {
		panic("assistant.Service requires a non nil completion client")
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.4
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 500
	}
	if cfg.BreakerThreshold == 0 {
		cfg.BreakerThreshold = 5
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = 30 * time.Second
	}

	threshold := cfg.BreakerThreshold
	breaker := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:    "assistant-llm",
		Timeout: cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Named("assistant").Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	})

	return &Svc{llm: client, kb: kb, events: rec, cfg: cfg, breaker: breaker}
}

// Ask answers a problem statement with knowledge base grounding
// assistant failures never block ticket submission; they surface as an
// unavailable error the caller shows inline
func (s *Svc) Ask(ctx context.Context, in domain.AskInput) (domain.AskResult, error) {
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return domain.AskResult{}, perr.WithField(perr.Validationf("a description is required"), "description")
	}

	started := time.Now()
	sources := s.retrieve(ctx, description)

	msgs := []llm.Message{
		{Role: "system", Content: s.systemPrompt(sources)},
		{Role: "user", Content: description},
	}

	text, err := s.breaker.Execute(func() (string, error) {
		return s.llm.Complete(ctx, msgs, s.cfg.Temperature, s.cfg.MaxTokens)
	})
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("assistant completion failed")
		s.record(ctx, events.Event{Kind: events.KindAssistant, Outcome: "unavailable"})
		return domain.AskResult{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "assistant unavailable, please try again or open a ticket")
	}

	res := domain.AskResult{
		Response:       strings.TrimSpace(text),
		RequiresTicket: RequiresTicket(text),
		SourcesUsed:    len(sources),
	}

	outcome := "answered"
	if res.RequiresTicket {
		outcome = "requires_ticket"
	}
	s.record(ctx, events.Event{
		Kind:    events.KindAssistant,
		Outcome: outcome,
		Detail:  time.Since(started).Round(time.Millisecond).String(),
	})
	return res, nil
}

// RequiresTicket reports whether a reply steers the user toward a ticket
func RequiresTicket(text string) bool {
	t := strings.ToLower(text)
	for _, p := range ticketPhrases {
		if strings.Contains(t, p) {
			return true
		}
	}
	return false
}

// retrieve fetches grounding entries, best effort
func (s *Svc) retrieve(ctx context.Context, query string) []kbEntry {
	if s.kb == nil {
		return nil
	}
	entries, err := s.kb.Search(ctx, query)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("knowledge retrieval failed")
		return nil
	}
	out := make([]kbEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, kbEntry{Question: e.Question, Answer: e.Answer})
	}
	return out
}

type kbEntry struct {
	Question string
	Answer   string
}

func (s *Svc) systemPrompt(sources []kbEntry) string {
	var b strings.Builder
	b.WriteString("You are the internal IT help desk assistant. ")
	b.WriteString("Answer concisely and only about IT support topics. ")
	b.WriteString("If the problem needs hands on help, tell the user to open a support ticket.")
	if s.cfg.CompanyContext != "" {
		b.WriteString("\n\nCompany context: ")
		b.WriteString(s.cfg.CompanyContext)
	}
	if len(sources) > 0 {
		b.WriteString("\n\nKnown answers:")
		for _, e := range sources {
			b.WriteString("\nQ: ")
			b.WriteString(e.Question)
			b.WriteString("\nA: ")
			b.WriteString(e.Answer)
		}
	}
	return b.String()
}

func (s *Svc) record(ctx context.Context, ev events.Event) {
	if s.events != nil {
		s.events.Record(ctx, ev)
	}
}
