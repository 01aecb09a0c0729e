package router

import (
	"context"
	"fmt"
	"strings"

	"github.com/Tahsine/2giants-cli/internal/llm"
	"github.com/Tahsine/2giants-cli/internal/logging"
)

// Router classifies user input via a single low-temperature model call.
// Any fault (transport error, timeout, out-of-set reply) resolves to
// Conversation, the only route that performs no side-effecting action.
type Router struct {
	client llm.Client
	debug  bool
}

// New creates a Router around the given classification client.
func New(client llm.Client, debug bool) *Router {
	return &Router{client: client, debug: debug}
}

// Route classifies the utterance. It never returns an error: the
// conservative default is Conversation.
func (r *Router) Route(ctx context.Context, utterance string) Route {
	prompt := buildClassificationPrompt(utterance)

	reply, err := r.client.Complete(ctx, prompt)
	if err != nil {
		logging.Router("classification failed (%v), defaulting to conversation", err)
		if r.debug {
			fmt.Printf("[Router] Error: %v, defaulting to conversation\n", err)
		}
		return Conversation
	}

	label := strings.ToLower(strings.TrimSpace(reply))
	route, ok := routesByName[label]
	if !ok {
		logging.Router("invalid classification %q, defaulting to conversation", label)
		if r.debug {
			fmt.Printf("[Router] Invalid response %q, defaulting to conversation\n", label)
		}
		return Conversation
	}

	logging.RouterDebug("classified %q as %s", utterance, route.Name())
	if r.debug {
		fmt.Printf("[Router] %q → %s\n", utterance, route.Name())
	}
	return route
}

// buildClassificationPrompt embeds the utterance into the fixed
// classification template: category definitions, disambiguation rules,
// and exemplars per category.
func buildClassificationPrompt(utterance string) string {
	return fmt.Sprintf(`Classify this user input into ONE category.

Input: %q

Categories:
- "conversation" : greetings, questions, explanations, casual chat, how-to questions
- "executor" : commands to execute, file operations, deployments, code changes, actions
- "research" : needs web search, documentation lookup, latest information, "what's new"

Rules:
- Return ONLY the category name, nothing else
- If unsure, choose "conversation" (safest)
- "executor" only if there's a clear ACTION verb (run, deploy, create, delete, etc.)
- "research" only if needs current/external information

Examples:
"hello" → conversation
"how are you?" → conversation
"explain git rebase" → conversation
"what is Docker?" → conversation

"deploy to production" → executor
"run tests" → executor
"create a new file" → executor
"commit my changes" → executor
"delete old logs" → executor

"what's new in Python 3.13?" → research
"find React documentation" → research
"what's the latest Next.js version?" → research
"search for async/await best practices" → research

Now classify: %q

Answer (one word only):`, utterance, utterance)
}
