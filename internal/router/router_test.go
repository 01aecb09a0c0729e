package router

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubClient is a deterministic substitute for the completion capability.
type stubClient struct {
	reply string
	err   error
	calls int
}

func (s *stubClient) Complete(ctx context.Context, prompt string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func (s *stubClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func TestRouteClassification(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		reply     string
		want      Route
	}{
		{"greeting routes to conversation", "hello", "conversation", Conversation},
		{"action verb routes to executor", "deploy to production", "executor", Executor},
		{"current info routes to research", "what's the latest Go version?", "research", Research},
		{"reply is normalized", "run tests", "  Executor\n", Executor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(&stubClient{reply: tt.reply}, false)
			got := r.Route(context.Background(), tt.utterance)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRouteDefaultsOnClientError(t *testing.T) {
	r := New(&stubClient{err: errors.New("rate limited")}, false)

	got := r.Route(context.Background(), "deploy to production")
	assert.Equal(t, Conversation, got, "any client fault must resolve to conversation")
}

func TestRouteDefaultsOnInvalidReply(t *testing.T) {
	for _, reply := range []string{"banana", "", "conversation executor", "executor."} {
		r := New(&stubClient{reply: reply}, false)
		got := r.Route(context.Background(), "anything")
		assert.Equal(t, Conversation, got, "reply %q must fall back to conversation", reply)
	}
}

func TestRouteNeverReturnsExecutorWithoutActionLabel(t *testing.T) {
	// The classifier owns the verb heuristic; the router only trusts
	// labels inside the closed set. A non-executor label can never
	// produce the action-taking route.
	for _, reply := range []string{"conversation", "research", "nonsense"} {
		r := New(&stubClient{reply: reply}, false)
		got := r.Route(context.Background(), "how does deployment work?")
		assert.NotEqual(t, Executor, got)
	}
}

func TestClassificationPromptEmbedsUtterance(t *testing.T) {
	stub := &stubClient{reply: "conversation"}
	r := New(stub, false)
	r.Route(context.Background(), "explain git rebase")

	assert.Equal(t, 1, stub.calls, "classification is exactly one model call")

	prompt := buildClassificationPrompt("explain git rebase")
	assert.Contains(t, prompt, `"explain git rebase"`)
	assert.Contains(t, prompt, "Answer (one word only):")
	assert.True(t, strings.Contains(prompt, "conversation") &&
		strings.Contains(prompt, "executor") &&
		strings.Contains(prompt, "research"))
}

func TestRouteDescriptions(t *testing.T) {
	assert.Equal(t, "conversation", Conversation.Name())
	assert.Equal(t, "executor", Executor.Name())
	assert.Equal(t, "research", Research.Name())

	for _, route := range []Route{Conversation, Executor, Research} {
		assert.NotEmpty(t, route.Description())
	}
}
