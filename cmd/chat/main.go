// The chat REPL runs a single shopping session on stdin/stdout, the
// text-only counterpart of the voice loop. Say bye, goodbye, or end to
// finish shopping.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	agentx "github.com/rndas/wallie/agent"
	llmx "github.com/rndas/wallie/agent/llm"
	configx "github.com/rndas/wallie/pkg/config"
	logx "github.com/rndas/wallie/pkg/logger"
	openrouterx "github.com/rndas/wallie/pkg/openrouter"
	serverx "github.com/rndas/wallie/server"
	shopx "github.com/rndas/wallie/shop"
)

func main() {
	logCfg := configx.MustNew[logx.Config]("LOG")
	logx.Init(*logCfg)

	ctx := context.Background()

	shopCfg := configx.MustNew[shopx.Config]("SHOP")
	orCfg := configx.MustNew[openrouterx.Config]("OPENROUTER")

	chatModel, err := orCfg.New(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create chat model")
	}
	gen, err := llmx.New(ctx, chatModel)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build generator")
	}

	client, err := shopx.NewClient(*shopCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build shop client")
	}

	agent, err := agentx.New(ctx, gen, client, agentx.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build agent")
	}

	fmt.Println("Hinglish Shopping Assistant")
	fmt.Println("==========================")
	fmt.Println("Say 'bye', 'goodbye', or 'end' to finish shopping.")
	fmt.Println()

	greeting, err := agent.Greet(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("greeting failed")
	}
	fmt.Printf("Assistant: %s\n\n", greeting)

	scanner := bufio.NewScanner(os.Stdin)
	for agent.Running() {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		text := scanner.Text()
		if text == "" {
			continue
		}
		if serverx.IsTermination(text) {
			fmt.Println(serverx.GoodbyeReply)
			break
		}

		reply, err := agent.ProcessTurn(ctx, text)
		if err != nil {
			log.Error().Err(err).Msg("turn failed")
			continue
		}
		fmt.Printf("Assistant: %s\n\n", reply)
	}

	fmt.Println("Shopping session ended!")
}
