// @title         DevStreams API
// @version       0.1.0
// @description   Alexa skill backend answering when developer streamers go live next

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"devstreams/internal/adapters/alexa"
	"devstreams/internal/adapters/twitch"
	"devstreams/internal/core/version"
	"devstreams/internal/modkit/repokit"
	"devstreams/internal/platform/config"
	"devstreams/internal/platform/logger"
	phttp "devstreams/internal/platform/net/http"
	"devstreams/internal/platform/store"

	"devstreams/internal/services/api"
	assistantmod "devstreams/internal/services/api/assistant/module"
	catrepo "devstreams/internal/services/api/catalog/repo"
)

func main() {
	// .env first so every Conf below sees it
	if _, err := config.LoadDotEnv(); err != nil {
		logger.Get().Panic().Err(err).Msg("load .env failed")
	}
	logOpt := logger.FromEnv()
	if logOpt.Service == "" {
		logOpt.Service = "devstreams-api"
	}
	logger.Init(logOpt)

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	l := logger.Get()
	version.SetService("devstreams-api")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// open the platform store (postgres or sqlite, plus CH when configured)
	stCfg := store.FromEnv(root, "devstreams-api")
	st, err := store.Open(ctx, stCfg, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// fail fast when a configured backend does not answer
	repokit.MustGuard(ctx, st)

	// local sqlite files start empty
	if stCfg.Lite.Enabled {
		if _, err := st.SQL.Exec(ctx, catrepo.Schema); err != nil {
			l.Panic().Err(err).Msg("catalog schema bootstrap failed")
		}
	}

	// process wide external clients
	tc := twitch.NewClient(twitch.OptionsFromEnv(root))
	defer tc.Close()
	settings := alexa.NewSettings(apiCfg.MayDuration("ALEXA_TIMEOUT", 2*time.Second), nil)

	// http server (CORE_API_PORT and the *_TIMEOUT keys)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	closeAPI := api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Live:           assistantmod.TwitchSource(tc),
			Timezone:       assistantmod.AlexaTimezone(settings),
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	// serve until SIGINT/SIGTERM, then drain
	if err := srv.Run(ctx, apiCfg.MayDuration("SHUTDOWN_GRACE", 10*time.Second)); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}

	fctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := closeAPI(fctx); err != nil {
		l.Error().Err(err).Msg("journal flush failed")
	}
}
