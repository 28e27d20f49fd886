package cli

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"staysync/internal/adapters/bookingapi"
	"staysync/internal/adapters/memcache"
	"staysync/internal/adapters/observability"
	redisad "staysync/internal/adapters/redis"
	"staysync/internal/adapters/token"
	"staysync/internal/app"
	"staysync/internal/domain"
	"staysync/internal/shared"
)

var rootCmd = &cobra.Command{
	Use:   "staysync",
	Short: "staysync: command-line client for the hotel booking API",
	Long: `staysync talks to the hotel booking API the way the mobile app does:
a bearer token on disk, a TTL cache in front of the catalog, optimistic
favorites and a step-by-step booking flow.`,
	SilenceUsage: true,
}

// deps is built once per invocation; commands reach for the controller they
// need and leave the rest untouched.
type dependencies struct {
	cfg       shared.Config
	log       zerolog.Logger
	tokens    *token.FileStore
	client    *bookingapi.Client
	session   *app.Session
	favorites *app.Favorites
	catalog   *app.Catalog
	bookings  *app.Bookings
}

var deps *dependencies

func initDependencies() {
	cfg := shared.Load()
	log := observability.NewLogger(cfg.AppEnv)
	zlog.Logger = log
	observability.Serve()

	tokens := token.NewFileStore(cfg.TokenPath, log)
	client := bookingapi.New(cfg.APIBase, tokens)
	cache := bucketCache(cfg)

	d := &dependencies{
		cfg:    cfg,
		log:    log,
		tokens: tokens,
		client: client,
	}
	d.session = app.NewSession(client, client, tokens, time.Second, observability.Component(log, "session"))
	d.favorites = app.NewFavorites(client, cache, cfg.CacheTTL, observability.Component(log, "favorites"))
	d.catalog = app.NewCatalog(client, cache, cfg.CacheTTL, cfg.NearbyQuiet, observability.Component(log, "catalog"))
	d.bookings = app.NewBookings(client, cache, cfg.CacheTTL, observability.Component(log, "bookings"))

	// signing out anywhere drops the per-user favorites state
	d.session.Subscribe(func(ev app.SessionEvent) {
		if ev == app.SignedOut {
			d.favorites.Reset(context.Background())
		}
	})
	deps = d
}

// bucketCache picks Redis when configured so parallel invocations share
// buckets; otherwise the cache lives and dies with the process.
func bucketCache(cfg shared.Config) domain.Cache {
	if cfg.RedisAddr != "" {
		return redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, 2*cfg.CacheTTL)
	}
	return memcache.New()
}

func Execute() error {
	initDependencies()
	return rootCmd.Execute()
}
