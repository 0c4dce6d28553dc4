// Package llm adapts an eino chat model into the agent's opaque
// prompt-to-text generation boundary.
package llm

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/rndas/wallie/agent/contract"
)

var _ contractx.Generator = (*Generator)(nil)

// Generator runs a compiled prompt -> model -> content graph. The
// rendered prompt is passed as a single user message; the reply is the
// raw message content.
type Generator struct {
	runner compose.Runnable[map[string]any, string]
}

func New(ctx context.Context, chatModel einomodel.BaseChatModel) (*Generator, error) {
	runner, err := compileGenerationGraph(ctx, chatModel)
	if err != nil {
		return nil, fmt.Errorf("%w: compile generation graph: %v", contractx.ErrModelInvoke, err)
	}
	return &Generator{runner: runner}, nil
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: prompt is empty", contractx.ErrValidation)
	}

	out, err := g.runner.Invoke(ctx, map[string]any{
		"input": prompt,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}
	return out, nil
}

func compileGenerationGraph(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
) (compose.Runnable[map[string]any, string], error) {
	template := einoprompt.FromMessages(
		schema.FString,
		schema.UserMessage("{input}"),
	)

	graph := compose.NewGraph[map[string]any, string]()
	if err := graph.AddChatTemplateNode("prompt", template); err != nil {
		return nil, fmt.Errorf("add prompt node: %w", err)
	}
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add model node: %w", err)
	}
	if err := graph.AddLambdaNode("extract_content",
		compose.InvokableLambda(func(ctx context.Context, msg *schema.Message) (string, error) {
			if msg == nil {
				return "", contractx.ErrEmptyReply
			}
			content := strings.TrimSpace(msg.Content)
			if content == "" {
				return "", contractx.ErrEmptyReply
			}
			return content, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add extract node: %w", err)
	}

	edges := [][2]string{
		{compose.START, "prompt"},
		{"prompt", "model"},
		{"model", "extract_content"},
		{"extract_content", compose.END},
	}
	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("llm.generate"))
	if err != nil {
		return nil, fmt.Errorf("compile generation graph: %w", err)
	}
	return runner, nil
}
