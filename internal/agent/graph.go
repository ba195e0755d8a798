// Package agent implements the conversational loop that alternates between
// the chat model and tool execution until the model produces a final text
// answer.
package agent

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"tradebot/internal/apperr"
	"tradebot/internal/llm"
	"tradebot/internal/models"
	"tradebot/internal/tools"
	"tradebot/pkg/logger"
)

// maxIterations bounds the number of model turns per question. A model
// that keeps requesting tools past this limit is asked once more for a
// plain-text answer from what it has gathered so far.
const maxIterations = 10

// toolTimeout bounds a single tool invocation.
const toolTimeout = 60 * time.Second

const giveUpPrompt = "You have reached the limit of tool calls for this question. " +
	"Answer now using only the information gathered so far, and say so if it is incomplete."

// giveUpAnswer is the terminal reply when even the forcing turn fails to
// produce text.
const giveUpAnswer = "I could not produce a complete answer within the allowed number " +
	"of tool calls. Please try rephrasing or narrowing the question."

// Graph is the long-lived agent. It is built once at startup and shared
// across requests; each Run carries its own conversation state.
type Graph struct {
	llm      llm.LLM
	registry *tools.Registry
	log      *logger.Logger
}

// NewGraph creates the agent over the given model and tool registry.
func NewGraph(model llm.LLM, registry *tools.Registry, log *logger.Logger) *Graph {
	return &Graph{llm: model, registry: registry, log: log}
}

// Run answers one question. The conversation starts from the question
// alone; it alternates model turns and tool turns until the model answers
// in plain text or the iteration bound is reached.
func (g *Graph) Run(ctx context.Context, question string) (string, error) {
	history := []models.Content{models.NewUserText(question)}

	for i := 0; i < maxIterations; i++ {
		msg, err := g.generate(ctx, history)
		if err != nil {
			return "", err
		}
		history = append(history, *msg)

		if !msg.HasFunctionCall() {
			return msg.JoinText(), nil
		}

		responses := g.executeTools(ctx, msg.FunctionCalls())
		history = append(history, responses...)
	}

	g.log.WithPayload(map[string]interface{}{"iterations": maxIterations}).
		Warn("Iteration limit reached, requesting a final answer")

	history = append(history, models.NewUserText(giveUpPrompt))
	msg, err := g.generate(ctx, history)
	if err != nil {
		return "", err
	}

	// The tools stay declared on the final turn, so the model may still
	// answer with another call. That reply carries no usable text; fall
	// back to the terminal answer instead of returning it.
	if answer := msg.JoinText(); !msg.HasFunctionCall() && answer != "" {
		return answer, nil
	}
	g.log.Warn("Forcing turn did not yield a text answer, returning the terminal reply")
	return giveUpAnswer, nil
}

// generate runs one model turn and returns its single reply message.
// Provider failures surface as upstream errors so the HTTP layer maps
// them to 502 rather than 500.
func (g *Graph) generate(ctx context.Context, history []models.Content) (*models.Content, error) {
	resp, err := g.llm.GenerateContent(ctx, &models.GenerateContentRequest{Content: history})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "model call failed", err)
	}
	if len(resp.Content) == 0 {
		return nil, apperr.New(apperr.KindUpstream, "model returned an empty response")
	}
	return &resp.Content[0], nil
}

// executeTools runs the requested tool calls concurrently. Results are
// appended to the conversation in the order the model issued the calls,
// regardless of completion order. A failed tool becomes an error response
// for the model to read, never a failed request.
func (g *Graph) executeTools(ctx context.Context, calls []*models.FunctionCall) []models.Content {
	responses := make([]models.Content, len(calls))

	var wg errgroup.Group
	for i, call := range calls {
		i, call := i, call
		wg.Go(func() error {
			toolCtx, cancel := context.WithTimeout(ctx, toolTimeout)
			defer cancel()

			output, err := g.registry.Call(toolCtx, call)
			if err != nil {
				g.log.WithError(err).WithPayload(map[string]interface{}{"tool": call.Name}).
					Warn("Tool execution failed")
				responses[i] = models.NewToolResponse(call, map[string]any{"error": err.Error()})
				return nil
			}
			responses[i] = models.NewToolResponse(call, map[string]any{"output": output})
			return nil
		})
	}
	// Tool failures are reported in-band, so Wait never returns an error.
	_ = wg.Wait()

	return responses
}
