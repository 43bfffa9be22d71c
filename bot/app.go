package bot

import (
	"context"

	coreconfig "github.com/m3rciful/shoplistbot/core/config"
	"github.com/m3rciful/shoplistbot/core/logger"
	coretelegram "github.com/m3rciful/shoplistbot/core/telegram"
	"github.com/m3rciful/shoplistbot/core/telegram/router"
	"github.com/m3rciful/shoplistbot/list/dispatch"
	"github.com/m3rciful/shoplistbot/list/store"

	"log/slog"
)

// App wires config, store, dispatcher, and Telegram handlers together.
type App struct {
	cfg      *coreconfig.Config
	store    *store.Store
	notifier *Notifier
	handlers *Handlers
}

// NewApp assembles the application over an opened store.
func NewApp(cfg *coreconfig.Config, st *store.Store) *App {
	n := &Notifier{}
	d := dispatch.New(st, cfg.Bot.AllowedUsers, n)
	return &App{
		cfg:      cfg,
		store:    st,
		notifier: n,
		handlers: NewHandlers(d),
	}
}

// TelegramRunOptions builds the full bot runtime: registry, middleware
// chain, and routes.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()
	a.handlers.Register(reg)

	routes := router.CommandRoutes(reg)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, router.TextRoute(a.handlers, reg, router.TextOptions{}))

	mws := coretelegram.DefaultMiddlewares(a.cfg, coretelegram.ChainOptions{
		OnRejected: a.handlers.OnRejected,
	})

	return coretelegram.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: mws,
		Routes:      routes,
		OnStart:     a.onStart,
		OnStop:      a.onStop,
	}, nil
}

func (a *App) onStart(ctx context.Context, rt coretelegram.Runtime) error {
	a.notifier.Bind(rt.Bot)

	if a.cfg.Store.Watch {
		if err := a.store.Watch(ctx); err != nil {
			logger.Warn(ctx, "store", "watch.unavailable",
				slog.String("path", a.store.Path()),
				slog.String("err", err.Error()),
			)
		}
	}
	return nil
}

func (a *App) onStop(ctx context.Context, _ coretelegram.Runtime) error {
	a.store.Close()
	logger.Info(ctx, "app", "store.closed",
		slog.String("path", a.store.Path()),
	)
	return nil
}
