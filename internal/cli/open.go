package cli

import (
	"context"
	"errors"

	"devstreams/internal/adapters/twitch"
	"devstreams/internal/modkit"
	"devstreams/internal/platform/config"
	"devstreams/internal/platform/logger"
	"devstreams/internal/platform/store"
	adom "devstreams/internal/services/api/assistant/domain"
	assistantmod "devstreams/internal/services/api/assistant/module"
	catalogmod "devstreams/internal/services/api/catalog/module"
	catrepo "devstreams/internal/services/api/catalog/repo"
)

// OpenFromEnv opens storage and the Twitch client from the environment and
// wires them into a dispatcher. No journal and no device timezone lookups
func OpenFromEnv(ctx context.Context) (adom.ServicePort, func(), error) {
	if _, err := config.LoadDotEnv(); err != nil {
		return nil, nil, err
	}
	root := config.New()
	l := logger.Get()

	stCfg := store.FromEnv(root, "devstreams-cli")
	stCfg.CH.Enabled = false
	st, err := store.Open(ctx, stCfg, store.WithLogger(*l))
	if err != nil {
		return nil, nil, err
	}
	if st.SQL == nil {
		_ = st.Close(ctx)
		return nil, nil, errors.New("no catalog storage configured")
	}
	if stCfg.Lite.Enabled {
		if _, err := st.SQL.Exec(ctx, catrepo.Schema); err != nil {
			_ = st.Close(ctx)
			return nil, nil, err
		}
	}

	tc := twitch.NewClient(twitch.OptionsFromEnv(root))

	deps := modkit.Deps{Log: *l, Cfg: root, SQL: st.SQL}
	catalog := catalogmod.New(deps)
	assistant := assistantmod.New(deps, assistantmod.Ports{
		Catalog: catalog.CatalogPort(),
		Live:    assistantmod.TwitchSource(tc),
	})

	release := func() {
		tc.Close()
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}
	return assistant.Dispatcher(), release, nil
}
