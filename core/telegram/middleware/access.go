package middleware

import (
	"github.com/m3rciful/shoplistbot/core/logger"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// AllowlistOptions defines the static allow-list gate.
type AllowlistOptions struct {
	IDs      []int64
	OnReject tele.HandlerFunc
}

func (o AllowlistOptions) allowed(id int64) bool {
	for _, a := range o.IDs {
		if a == id {
			return true
		}
	}
	return false
}

// AllowlistMiddleware rejects every update whose sender is not on the
// allow-list. Rejected users get the OnReject response (if any) and cause
// no downstream processing.
func AllowlistMiddleware(opts AllowlistOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil {
				return nil
			}
			if opts.allowed(user.ID) {
				return next(c)
			}

			logger.TG.Warn("access denied",
				slog.String("event", "tg.access_denied"),
				slog.Int64("user_id", user.ID),
			)
			if opts.OnReject != nil {
				return opts.OnReject(c)
			}
			return nil
		}
	}
}
