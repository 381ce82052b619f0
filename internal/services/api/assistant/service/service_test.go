package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"helpdesk/internal/adapters/llm"
	perr "helpdesk/internal/platform/errors"
	"helpdesk/internal/services/api/assistant/domain"
	knowledgedom "helpdesk/internal/services/api/knowledge/domain"
)

type fakeCompleter struct {
	reply string
	err   error
	msgs  []llm.Message
	calls int
}

func (f *fakeCompleter) Complete(_ context.Context, msgs []llm.Message, _ float64, _ int) (string, error) {
	f.calls++
	f.msgs = msgs
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeRetriever struct {
	entries []knowledgedom.Entry
	err     error
}

func (f *fakeRetriever) Search(context.Context, string) ([]knowledgedom.Entry, error) {
	return f.entries, f.err
}

func TestAskAnswers(t *testing.T) {
	c := &fakeCompleter{reply: "  Restart the router.  "}
	s := New(c, nil, nil, Config{})

	res, err := s.Ask(context.Background(), domain.AskInput{Description: "wifi slow"})
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if res.Response != "Restart the router." {
		t.Fatalf("response = %q", res.Response)
	}
	if res.RequiresTicket {
		t.Fatalf("plain answer flagged as requiring a ticket")
	}
	if res.SourcesUsed != 0 {
		t.Fatalf("sources = %d, want 0 without a retriever", res.SourcesUsed)
	}
}

func TestAskGroundsOnKnowledge(t *testing.T) {
	c := &fakeCompleter{reply: "Use the VPN client."}
	kb := &fakeRetriever{entries: []knowledgedom.Entry{
		{Question: "How do I connect to the VPN?", Answer: "Install the client."},
	}}
	s := New(c, kb, nil, Config{})

	res, err := s.Ask(context.Background(), domain.AskInput{Description: "vpn not connecting"})
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if res.SourcesUsed != 1 {
		t.Fatalf("sources = %d, want 1", res.SourcesUsed)
	}
	if len(c.msgs) != 2 || c.msgs[0].Role != "system" {
		t.Fatalf("msgs = %+v", c.msgs)
	}
	if !strings.Contains(c.msgs[0].Content, "How do I connect to the VPN?") {
		t.Fatalf("system prompt missing retrieved question: %q", c.msgs[0].Content)
	}
}

func TestAskRetrievalFailureIsBestEffort(t *testing.T) {
	c := &fakeCompleter{reply: "Try turning it off and on."}
	kb := &fakeRetriever{err: errors.New("kb down")}
	s := New(c, kb, nil, Config{})

	res, err := s.Ask(context.Background(), domain.AskInput{Description: "screen flickers"})
	if err != nil {
		t.Fatalf("ask must survive a failed retrieval: %v", err)
	}
	if res.SourcesUsed != 0 {
		t.Fatalf("sources = %d, want 0", res.SourcesUsed)
	}
}

func TestAskUnavailable(t *testing.T) {
	c := &fakeCompleter{err: errors.New("upstream 502")}
	s := New(c, nil, nil, Config{})

	_, err := s.Ask(context.Background(), domain.AskInput{Description: "anything"})
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("want unavailable, got %v", err)
	}
}

func TestAskBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	c := &fakeCompleter{err: errors.New("upstream 502")}
	s := New(c, nil, nil, Config{BreakerThreshold: 3})

	for range 5 {
		_, _ = s.Ask(context.Background(), domain.AskInput{Description: "anything"})
	}
	if c.calls != 3 {
		t.Fatalf("llm calls = %d, breaker should stop at the threshold", c.calls)
	}
}

func TestAskValidation(t *testing.T) {
	c := &fakeCompleter{reply: "unused"}
	s := New(c, nil, nil, Config{})

	_, err := s.Ask(context.Background(), domain.AskInput{Description: "   "})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
	if c.calls != 0 {
		t.Fatalf("invalid input must not reach the model")
	}
}

func TestRequiresTicket(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"Please open a ticket so a technician can help.", true},
		{"You should file a SUPPORT TICKET for this.", true},
		{"This needs technical support on site.", true},
		{"This requires specialized hardware diagnostics.", true},
		{"Restart the router and try again.", false},
		{"", false},
	}
	for _, c := range cases {
		if got := RequiresTicket(c.text); got != c.want {
			t.Fatalf("RequiresTicket(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}
