// Package orchestrator turns one user utterance into one reply.
//
// The orchestrator owns the chat client, the intent router and the history
// store. Per turn it classifies the utterance, dispatches to the chosen
// route's handler and converts any fault into a user-facing string at this
// boundary, so callers never see a raw error.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Tahsine/2giants-cli/internal/config"
	"github.com/Tahsine/2giants-cli/internal/llm"
	"github.com/Tahsine/2giants-cli/internal/logging"
	"github.com/Tahsine/2giants-cli/internal/router"
	"github.com/Tahsine/2giants-cli/internal/session"
)

// Orchestrator dispatches utterances to route handlers.
type Orchestrator struct {
	chat    llm.Client
	router  *router.Router
	history *session.Store
	debug   bool
}

// New creates an orchestrator from its parts. The history store may be nil,
// in which case turns are not recorded.
func New(chat llm.Client, rt *router.Router, history *session.Store) *Orchestrator {
	return &Orchestrator{
		chat:    chat,
		router:  rt,
		history: history,
	}
}

// FromConfig builds an orchestrator with real Gemini clients and the
// on-disk history store.
//
// The model credential is the one hard precondition: a missing key fails
// construction with llm.ErrMissingAPIKey.
func FromConfig(ctx context.Context, cfg *config.Config, debug bool) (*Orchestrator, error) {
	routerClient, err := llm.NewRouterClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	chatClient, err := llm.NewChatClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{
		chat:   chatClient,
		router: router.New(routerClient, debug),
		debug:  debug,
	}

	// History is best-effort: a store that will not open must not keep
	// the assistant from answering.
	if dir, err := config.Dir(); err == nil {
		store, err := session.Open(cfg.HistoryDBPath(dir))
		if err != nil {
			logging.SessionError("history store unavailable: %v", err)
		} else {
			o.history = store
		}
	}

	logging.Orchestrator("orchestrator ready (router=%s chat=%s)", cfg.LLM.RouterModel, cfg.LLM.ChatModel)
	return o, nil
}

// Execute processes one utterance and returns the reply.
//
// Any fault below this point is converted to a "Sorry, I encountered an
// error" string. No retry is attempted.
func (o *Orchestrator) Execute(ctx context.Context, utterance, sessionID string) string {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	route := o.router.Route(ctx, utterance)
	logging.Orchestrator("dispatch: session=%s route=%s", sessionID, route.Name())

	if o.debug {
		fmt.Printf("[Orchestrator] %s\n", route.Description())
	}

	reply, err := route.Respond(ctx, o.chat, utterance)
	if err != nil {
		logging.OrchestratorError("turn failed: %v", err)
		reply = fmt.Sprintf("Sorry, I encountered an error: %v", err)
	}

	o.record(sessionID, utterance, route.Name(), len(reply))
	return reply
}

// record stores the turn; failures are logged, never surfaced.
func (o *Orchestrator) record(sessionID, utterance, routeName string, replyLen int) {
	if o.history == nil {
		return
	}
	if err := o.history.Record(sessionID, utterance, routeName, replyLen); err != nil {
		logging.SessionError("failed to record turn: %v", err)
	}
}

// History exposes the turn store backing the history subcommand.
// Nil when the store could not be opened.
func (o *Orchestrator) History() *session.Store {
	return o.history
}

// Close releases the history store.
func (o *Orchestrator) Close() error {
	if o.history == nil {
		return nil
	}
	return o.history.Close()
}
