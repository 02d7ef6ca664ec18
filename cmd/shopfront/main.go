// Command shopfront is a terminal client for the product store: it signs
// in, keeps a local session, and reads products through a consistency-
// preserving cache.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/shopfront/go-client/api"
	"github.com/shopfront/go-client/cache"
	"github.com/shopfront/go-client/config"
	"github.com/shopfront/go-client/logger"
	"github.com/shopfront/go-client/nav"
	"github.com/shopfront/go-client/product"
	"github.com/shopfront/go-client/session"
	"github.com/shopfront/go-client/tui"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "shopfront",
	Short:         "Terminal client for the product store",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the client version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("shopfront %s (%s)\n", version, buildDate)
	},
}

// app holds the wired client for one command invocation.
type app struct {
	cfg      *config.Config
	log      logger.Logger
	manager  *session.Manager
	products *product.Service
	cache    *cache.Store
}

// newApp wires the whole client: config, logger, session store (file or
// Redis), session cache, manager, API client and product service. The CLI
// has no router, so the navigation collaborator just logs where a browser
// client would have gone.
func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log := logger.NewConsoleLogger(levelFromConfig(cfg))

	var store session.Store
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		store = session.NewRedisStore(redis.NewClient(opts))
	} else {
		dir := cfg.SessionDir
		if dir == "" {
			dir = session.DefaultDir()
		}
		store, err = session.NewFileStore(dir)
		if err != nil {
			return nil, err
		}
	}

	navigator := nav.Func(func(path string, opts nav.Options) {
		log.Debug("navigation requested: %s (replace=%v)", path, opts.Replace)
	})

	sessionCache := session.NewCache()
	// The manager is the client's TokenSource: construct it first against
	// a client that has no token yet, then point the client at it.
	var manager *session.Manager
	client := api.New(log, cfg.BaseURL, tokenFunc(func() string {
		if manager == nil {
			return ""
		}
		return manager.Token()
	}))
	manager = session.NewManager(log, session.NewRemoteAuth(client), store, sessionCache, navigator)

	ttl, err := cfg.ParsedCacheTTL()
	if err != nil {
		return nil, err
	}
	entityCache := cache.New(log, cache.WithTTL(ttl))
	if cfg.SnapshotPath != "" {
		if data, err := os.ReadFile(cfg.SnapshotPath); err == nil {
			if err := entityCache.Import(data); err != nil {
				log.Warn("ignoring unreadable cache snapshot: %s", err)
			}
		}
	}

	return &app{
		cfg:      cfg,
		log:      log,
		manager:  manager,
		products: product.NewService(log, client, entityCache),
		cache:    entityCache,
	}, nil
}

// close persists the cache snapshot when one is configured.
func (a *app) close() {
	if a.cfg.SnapshotPath == "" {
		return
	}
	data, err := a.cache.Export()
	if err != nil {
		a.log.Warn("exporting cache snapshot: %s", err)
		return
	}
	if err := os.WriteFile(a.cfg.SnapshotPath, data, 0o600); err != nil {
		a.log.Warn("writing cache snapshot: %s", err)
	}
}

type tokenFunc func() string

func (f tokenFunc) Token() string { return f() }

func levelFromConfig(cfg *config.Config) logger.LogLevel {
	switch cfg.LogLevel {
	case "trace":
		return logger.LevelTrace
	case "debug":
		return logger.LevelDebug
	case "info":
		return logger.LevelInfo
	case "warn":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	case "":
		return logger.GetLevelFromEnv()
	default:
		return logger.LevelInfo
	}
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "config file")
	rootCmd.AddCommand(versionCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		// Stop any running spinner so the terminal is restored before the
		// interrupted command unwinds.
		<-ctx.Done()
		tui.CancelSpinner()
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		tui.ShowError("%s", err)
		os.Exit(1)
	}
}
