// The chat server exposes the sales agent over HTTP: POST /api/sessions
// starts a conversation, POST /api/chat runs one turn.
package main

import (
	"context"

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

	srvCfg := configx.MustNew[serverx.Config]("SERVER")
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

	factory := func(ctx context.Context) (*agentx.Agent, error) {
		client, err := shopx.NewClient(*shopCfg)
		if err != nil {
			return nil, err
		}
		return agentx.New(ctx, gen, client, agentx.Config{})
	}

	manager := serverx.NewManager(factory)
	r := serverx.SetupRouter(manager)

	log.Info().Str("addr", srvCfg.Addr).Msg("chat server listening")
	if err := r.Run(srvCfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("chat server exited")
	}
}
