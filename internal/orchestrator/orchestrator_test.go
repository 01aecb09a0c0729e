package orchestrator

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tahsine/2giants-cli/internal/router"
	"github.com/Tahsine/2giants-cli/internal/session"
)

// stubClient is a deterministic completion capability.
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

func TestExecuteConversationEndToEnd(t *testing.T) {
	classifier := &stubClient{reply: "conversation"}
	chat := &stubClient{reply: "Hi there!"}

	o := New(chat, router.New(classifier, false), nil)

	got := o.Execute(context.Background(), "hello", "")
	assert.Equal(t, "Hi there!", got)
	assert.Equal(t, 1, chat.calls)
}

func TestExecuteExecutorMakesNoCompletionCall(t *testing.T) {
	classifier := &stubClient{reply: "executor"}
	chat := &stubClient{reply: "should never be used"}

	o := New(chat, router.New(classifier, false), nil)

	got := o.Execute(context.Background(), "deploy to production", "")
	assert.Contains(t, got, "deploy to production")
	assert.Zero(t, chat.calls)
}

func TestExecuteConvertsFaultsToApology(t *testing.T) {
	classifier := &stubClient{reply: "conversation"}
	chat := &stubClient{err: errors.New("quota exhausted")}

	o := New(chat, router.New(classifier, false), nil)

	got := o.Execute(context.Background(), "hello", "s1")
	assert.True(t, strings.HasPrefix(got, "Sorry, I encountered an error:"), got)
	assert.Contains(t, got, "quota exhausted")
}

func TestExecuteClassifierFailureStillAnswers(t *testing.T) {
	classifier := &stubClient{err: errors.New("transport down")}
	chat := &stubClient{reply: "fallback chat reply"}

	o := New(chat, router.New(classifier, false), nil)

	// Classification faults resolve to conversation, which still replies.
	got := o.Execute(context.Background(), "hmm", "")
	assert.Equal(t, "fallback chat reply", got)
}

func TestExecuteRecordsHistory(t *testing.T) {
	store, err := session.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	classifier := &stubClient{reply: "conversation"}
	chat := &stubClient{reply: "Hi there!"}

	o := New(chat, router.New(classifier, false), store)
	o.Execute(context.Background(), "hello", "fixed-session")

	turns, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "fixed-session", turns[0].SessionID)
	assert.Equal(t, "hello", turns[0].Utterance)
	assert.Equal(t, "conversation", turns[0].Route)
	assert.Equal(t, len("Hi there!"), turns[0].ReplyLen)
}

func TestExecuteGeneratesSessionID(t *testing.T) {
	store, err := session.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	classifier := &stubClient{reply: "conversation"}
	chat := &stubClient{reply: "ok"}

	o := New(chat, router.New(classifier, false), store)
	o.Execute(context.Background(), "hello", "")

	turns, err := store.Recent(1)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.NotEmpty(t, turns[0].SessionID)
}
