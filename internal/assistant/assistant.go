package assistant

import (
	"context"
	"errors"
)

// maxToolRounds caps tool-call round-trips so a looping model always
// terminates.
const maxToolRounds = 10

var ErrNoFinalAnswer = errors.New("model did not return a final text response")

type ToolCall struct {
	Name string
	Args Args
}

type ToolResult struct {
	Name     string
	Response any
}

// Reply is one model response: either tool calls to run, or final text.
type Reply struct {
	Text  string
	Calls []ToolCall
}

// Turn is one entry of the running conversation: the user's opening question
// or the results of the previous round's tool calls.
type Turn struct {
	User    string
	Results []ToolResult
}

// Model is the conversational backend. Implementations adapt a provider's
// function-calling API (the deployed system used Gemini) and are handed the
// tool declarations at construction.
type Model interface {
	Send(ctx context.Context, turns []Turn) (Reply, error)
}

type Assistant struct {
	Model Model
	Tools *Registry
}

func New(model Model, tools *Registry) *Assistant {
	return &Assistant{Model: model, Tools: tools}
}

// Answer runs the conversation loop: dispatch every tool call the model asks
// for, feed the results back, and stop at the first text-only reply. Unknown
// tool names surface to the model as per-call errors, not to the caller.
func (a *Assistant) Answer(ctx context.Context, query string) (string, error) {
	turns := []Turn{{User: query}}
	reply, err := a.Model.Send(ctx, turns)
	if err != nil {
		return "", err
	}

	for i := 0; i < maxToolRounds; i++ {
		if len(reply.Calls) == 0 {
			break
		}
		results := make([]ToolResult, 0, len(reply.Calls))
		for _, call := range reply.Calls {
			results = append(results, ToolResult{
				Name:     call.Name,
				Response: a.Tools.Dispatch(call.Name, call.Args),
			})
		}
		turns = append(turns, Turn{Results: results})
		reply, err = a.Model.Send(ctx, turns)
		if err != nil {
			return "", err
		}
	}

	if reply.Text == "" {
		return "", ErrNoFinalAnswer
	}
	return reply.Text, nil
}
