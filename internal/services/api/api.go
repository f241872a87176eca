// Package api assembles the HTTP API from its modules
package api

import (
	"context"
	"strings"

	"devstreams/internal/modkit"
	"devstreams/internal/modkit/httpkit"
	"devstreams/internal/modkit/swaggerkit"
	"devstreams/internal/platform/config"
	"devstreams/internal/platform/logger"
	phttp "devstreams/internal/platform/net/http"
	"devstreams/internal/platform/net/middleware"
	"devstreams/internal/platform/store"

	adom "devstreams/internal/services/api/assistant/domain"
	assistantmod "devstreams/internal/services/api/assistant/module"
	catalogmod "devstreams/internal/services/api/catalog/module"
	metamod "devstreams/internal/services/api/meta/module"
	journalmod "devstreams/internal/services/journal/module"
)

// Options are the API options
type Options struct {
	// Config is the root view, modules pick their own prefixes
	Config config.Conf
	Store  *store.Store

	// Live and Timezone are the process wide external clients
	Live     adom.LiveSource
	Timezone adom.TimezonePort

	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts every module on r. The returned func flushes background
// writers and should run on shutdown
func Mount(r phttp.Router, opt Options) func(context.Context) error {
	log := logger.Named("api")
	deps := modkit.Deps{
		Log: *log,
		Cfg: opt.Config,
		SQL: opt.Store.SQL,
		CH:  opt.Store.CH,
	}

	catalog := catalogmod.New(deps)

	// the journal is optional and needs ClickHouse
	var (
		journal  *journalmod.Module
		recorder adom.JournalPort
	)
	if journalmod.FromConfig(deps.Cfg).Enabled {
		if deps.CH != nil {
			journal = journalmod.New(deps)
			recorder = journal.Recorder()
		} else {
			log.Warn().Msg("journal enabled without ClickHouse, not recording")
		}
	}

	assistant := assistantmod.New(deps, assistantmod.Ports{
		Catalog:  catalog.CatalogPort(),
		Live:     opt.Live,
		Timezone: opt.Timezone,
		Journal:  recorder,
	})

	mods := []modkit.Module{metamod.New(deps), catalog, assistant}
	if journal != nil {
		mods = append(mods, journal)
	}

	stack := middleware.Stack(middleware.StackOptions{
		Origins: origins(opt.Config.Prefix("CORE_API_").MayString("CORS_ORIGINS", "")),
	})

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPI(r, "v1", stack, func(api phttp.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
			log.Debug().Str("module", m.Name()).Str("prefix", "/api/v1"+m.Prefix()).Msg("mounted")
		}
	})
	// the skill endpoint keeps its unversioned path
	assistant.MountSkill(r, stack)

	return func(ctx context.Context) error {
		if journal == nil {
			return nil
		}
		return journal.Close(ctx)
	}
}

func origins(csv string) []string {
	var out []string
	for _, o := range strings.Split(csv, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
