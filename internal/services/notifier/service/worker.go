package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"helpdesk/internal/adapters/pushgw"
	"helpdesk/internal/platform/logger"
	"helpdesk/internal/services/events"
	nrepo "helpdesk/internal/services/notifier/repo"
)

const descriptionPreviewLen = 80

// Run starts the worker loop announcing freshly submitted tickets
func (s *Svc) Run(ctx context.Context) error {
	log := logger.Named("notifier-worker")
	every := s.cfg.Interval
	if every <= 0 {
		every = 5 * time.Second
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			batch, err := s.claim(ctx)
			if err != nil {
				log.Error().Err(err).Msg("claim pending tickets failed")
				continue
			}
			if len(batch) == 0 {
				continue
			}
			tokens, err := s.repo.ListTokens(ctx)
			if err != nil {
				log.Error().Err(err).Msg("list push tokens failed")
				continue
			}
			if len(tokens) == 0 {
				continue
			}

			// fan the batch out over tokens with a simple semaphore
			sem := make(chan struct{}, max(1, s.cfg.Concurrency))
			for i := range batch {
				t := batch[i]
				for _, token := range tokens {
					sem <- struct{}{}
					tok := token
					go func() {
						defer func() { <-sem }()
						s.announce(ctx, t, tok, log)
					}()
				}
			}
			for range cap(sem) {
				sem <- struct{}{}
			}
		}
	}
}

// announce pushes one ticket to one token and records the outcome
func (s *Svc) announce(ctx context.Context, t nrepo.PendingTicket, token string, log *logger.Logger) {
	n := pushgw.Notification{
		Title: "New support ticket",
		Body:  fmt.Sprintf("%s: %s", t.Email, preview(t.Description)),
	}
	data := map[string]any{"ticket_id": t.ID}

	err := s.push.Send(ctx, token, n, data)
	switch {
	case err == nil:
		s.record(ctx, t.ID, "sent", "")
	case errors.Is(err, pushgw.ErrTokenGone):
		if delErr := s.repo.DeleteToken(ctx, token); delErr != nil {
			log.Warn().Err(delErr).Msg("drop dead token failed")
		}
		s.record(ctx, t.ID, "token_gone", "")
	default:
		log.Warn().Err(err).Str("ticket_id", t.ID).Msg("push send failed")
		s.record(ctx, t.ID, "failed", err.Error())
	}
}

func (s *Svc) record(ctx context.Context, ticketID, outcome, detail string) {
	s.events.Record(ctx, events.Event{
		Kind:     events.KindNotify,
		TicketID: ticketID,
		Outcome:  outcome,
		Detail:   detail,
	})
}

func preview(desc string) string {
	desc = strings.Join(strings.Fields(desc), " ")
	if len(desc) > descriptionPreviewLen {
		return desc[:descriptionPreviewLen] + "..."
	}
	return desc
}
