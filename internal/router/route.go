// Package router classifies user utterances into reply strategies.
//
// Route is a closed sum: exactly three variants exist (Conversation,
// Executor, Research), each carrying its display description and its own
// branch handler. The sealed interface makes an "unknown route" state
// unrepresentable.
package router

import (
	"context"
	"fmt"

	"github.com/Tahsine/2giants-cli/internal/llm"
)

// Route selects the reply strategy for one utterance.
// The unexported method seals the set to the three variants in this package.
type Route interface {
	// Name is the canonical lowercase label ("conversation", "executor",
	// "research") as produced by the classifier.
	Name() string

	// Description is the human-readable label shown in debug output.
	Description() string

	// Respond turns the utterance into a reply string for this strategy.
	Respond(ctx context.Context, client llm.Client, utterance string) (string, error)

	sealed()
}

// The three route variants.
var (
	Conversation Route = conversationRoute{}
	Executor     Route = executorRoute{}
	Research     Route = researchRoute{}
)

const conversationPersona = "You are a friendly, concise assistant. " +
	"Answer the user directly and keep explanations clear."

const researchPersona = "You are a factual research assistant. " +
	"You do not have access to live web search, so answer from your own " +
	"knowledge and say so when information may be out of date."

const researchDisclaimer = "🔍 Research mode (live web search not yet integrated — " +
	"answering from model knowledge)"

type conversationRoute struct{}

func (conversationRoute) Name() string        { return "conversation" }
func (conversationRoute) Description() string { return "💬 Conversation - I'll chat and explain" }
func (conversationRoute) sealed()             {}

func (conversationRoute) Respond(ctx context.Context, client llm.Client, utterance string) (string, error) {
	return client.CompleteWithSystem(ctx, conversationPersona, utterance)
}

type executorRoute struct{}

func (executorRoute) Name() string { return "executor" }
func (executorRoute) Description() string {
	return "⚡ Executor - I'll plan and execute with your approval"
}
func (executorRoute) sealed() {}

// Respond intentionally performs no model call: the plan/approve/execute
// workflow is not built yet, so the executor branch acknowledges the request
// and explains what will eventually happen.
func (executorRoute) Respond(ctx context.Context, client llm.Client, utterance string) (string, error) {
	return fmt.Sprintf(`⚡ Executor route selected for: %q

The execution workflow is not implemented yet. When it lands, this request
will go through three steps:
  1. Plan   - break the request into concrete tool actions
  2. Approve - show you the plan and wait for confirmation
  3. Execute - run the approved actions and report results

For now, nothing was executed.`, utterance), nil
}

type researchRoute struct{}

func (researchRoute) Name() string        { return "research" }
func (researchRoute) Description() string { return "🔍 Research - I'll search for information" }
func (researchRoute) sealed()             {}

func (researchRoute) Respond(ctx context.Context, client llm.Client, utterance string) (string, error) {
	answer, err := client.CompleteWithSystem(ctx, researchPersona, utterance)
	if err != nil {
		return "", err
	}
	return researchDisclaimer + "\n\n" + answer, nil
}

// routesByName maps normalized classifier output onto the closed set.
var routesByName = map[string]Route{
	"conversation": Conversation,
	"executor":     Executor,
	"research":     Research,
}
