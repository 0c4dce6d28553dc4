// The shopstub serves the product/cart REST contract from Postgres for
// local development. Run with -seed to recreate and seed the tables
// first.
package main

import (
	"context"
	"flag"

	"github.com/rs/zerolog/log"

	configx "github.com/rndas/wallie/pkg/config"
	logx "github.com/rndas/wallie/pkg/logger"
	shopstubx "github.com/rndas/wallie/shopstub"
)

func main() {
	seed := flag.Bool("seed", false, "recreate and seed the shop tables before serving")

	logCfg := configx.MustNew[logx.Config]("LOG")
	logx.Init(*logCfg)

	cfg := configx.MustNew[shopstubx.Config]("SHOPSTUB")

	db := shopstubx.OpenDB(*cfg)
	defer db.Close()

	store := shopstubx.NewStore(db)

	if *seed {
		if err := store.ResetAndSeed(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("seeding failed")
		}
		log.Info().Msg("shop tables recreated and seeded")
	}

	r := shopstubx.Router(store)
	log.Info().Str("addr", cfg.Addr).Msg("shopstub listening")
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("shopstub exited")
	}
}
