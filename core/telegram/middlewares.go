package telegram

import (
	"strings"
	"time"

	coreconfig "github.com/m3rciful/shoplistbot/core/config"
	"github.com/m3rciful/shoplistbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// ChainOptions customises the shared middleware chain.
type ChainOptions struct {
	// OnLimited is invoked when a user hits the rate limit.
	OnLimited tele.HandlerFunc
	// OnRejected is invoked for users outside the allow-list.
	OnRejected tele.HandlerFunc
}

// DefaultMiddlewares builds the shared middleware chain:
// recover, rate limit, logger, allow-list, metrics.
func DefaultMiddlewares(cfg *coreconfig.Config, opts ChainOptions) []Middleware {
	mws := []Middleware{
		{Name: "recover", Use: middleware.RecoverMiddleware},
	}

	if cfg != nil {
		interval := time.Duration(cfg.RateLimit.IntervalMS) * time.Millisecond
		if interval > 0 {
			ex := make(map[string]struct{}, len(cfg.RateLimit.ExcludeUpdates))
			for _, t := range cfg.RateLimit.ExcludeUpdates {
				ex[strings.ToLower(t)] = struct{}{}
			}
			rlOpts := middleware.RateLimitOptions{
				Interval: interval,
				Exclude:  ex,
			}
			if opts.OnLimited != nil {
				rlOpts.OnLimited = opts.OnLimited
			}
			mws = append(mws, Middleware{
				Name: "rate_limit",
				Use:  middleware.RateLimitMiddleware(rlOpts),
			})
		}
	}

	mws = append(mws,
		Middleware{Name: "logger", Use: middleware.LoggerMiddleware},
	)

	if cfg != nil && len(cfg.Bot.AllowedUsers) > 0 {
		mws = append(mws, Middleware{
			Name: "allowlist",
			Use: middleware.AllowlistMiddleware(middleware.AllowlistOptions{
				IDs:      cfg.Bot.AllowedUsers,
				OnReject: opts.OnRejected,
			}),
		})
	}

	mws = append(mws,
		Middleware{Name: "metrics", Use: middleware.MessageMetricsMiddleware},
	)

	return mws
}
