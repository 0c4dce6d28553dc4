package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/rndas/wallie/agent/contract"
	phasex "github.com/rndas/wallie/agent/phase"
)

type turnInput struct {
	Text string
}

type turnOutput struct {
	Reply string
}

// turnState is threaded through the per-turn pipeline. Session state
// (phase, mention, transcript) lives on the Agent; turns are strictly
// sequential so the node closures mutate it directly.
type turnState struct {
	Text   string
	Prompt string
	Reply  string
}

func (a *Agent) compileTurnGraph(ctx context.Context) (compose.Runnable[turnInput, turnOutput], error) {
	graph := compose.NewGraph[turnInput, turnOutput]()

	if err := graph.AddLambdaNode("record_user",
		compose.InvokableLambda(func(ctx context.Context, in turnInput) (*turnState, error) {
			text := strings.TrimSpace(in.Text)
			if text == "" {
				return nil, fmt.Errorf("%w: message is empty", contractx.ErrValidation)
			}
			a.memory.AppendUser(text)
			return &turnState{Text: text}, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node record_user: %w", err)
	}

	if err := graph.AddLambdaNode("track_mention",
		compose.InvokableLambda(func(ctx context.Context, st *turnState) (*turnState, error) {
			a.track(st.Text)
			return st, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node track_mention: %w", err)
	}

	if err := graph.AddLambdaNode("advance_phase",
		compose.InvokableLambda(func(ctx context.Context, st *turnState) (*turnState, error) {
			a.current = phasex.Advance(a.current, st.Text, a.catalog)
			return st, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node advance_phase: %w", err)
	}

	if err := graph.AddLambdaNode("build_prompt",
		compose.InvokableLambda(func(ctx context.Context, st *turnState) (*turnState, error) {
			history := a.memory.RenderHistory(a.historyWindow)
			st.Prompt = a.builder.Render(a.current, history, st.Text)
			return st, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node build_prompt: %w", err)
	}

	if err := graph.AddLambdaNode("generate_reply",
		compose.InvokableLambda(func(ctx context.Context, st *turnState) (*turnState, error) {
			st.Reply = a.generateWithFallback(ctx, st.Prompt)
			a.memory.AppendAgent(st.Reply)
			return st, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node generate_reply: %w", err)
	}

	if err := graph.AddLambdaNode("checkout_check",
		compose.InvokableLambda(func(ctx context.Context, st *turnState) (*turnState, error) {
			if phasex.CheckoutTriggered(st.Reply) {
				a.fireCheckout(ctx)
			}
			return st, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node checkout_check: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_reply",
		compose.InvokableLambda(func(ctx context.Context, st *turnState) (turnOutput, error) {
			return turnOutput{Reply: st.Reply}, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_reply: %w", err)
	}

	edges := [][2]string{
		{compose.START, "record_user"},
		{"record_user", "track_mention"},
		{"track_mention", "advance_phase"},
		{"advance_phase", "build_prompt"},
		{"build_prompt", "generate_reply"},
		{"generate_reply", "checkout_check"},
		{"checkout_check", "finalize_reply"},
		{"finalize_reply", compose.END},
	}
	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("agent.process_turn"))
	if err != nil {
		return nil, fmt.Errorf("compile turn graph: %w", err)
	}
	return runner, nil
}
