package bot

import (
	"context"
	"errors"
	"sync/atomic"

	tele "gopkg.in/telebot.v4"
)

// ErrNotReady is returned when a notification is attempted before the
// Telegram connection is up.
var ErrNotReady = errors.New("bot: telegram connection not ready")

// Notifier delivers change notices to peers over Telegram. The underlying
// bot is bound late, once the runtime has built it. Exactly one delivery
// attempt per notice; the dispatcher handles logging of failures.
type Notifier struct {
	bot atomic.Pointer[tele.Bot]
}

// Bind attaches the live Telegram bot.
func (n *Notifier) Bind(b *tele.Bot) {
	n.bot.Store(b)
}

// Notify sends the text to the recipient's private chat.
func (n *Notifier) Notify(_ context.Context, recipientID int64, text string) error {
	b := n.bot.Load()
	if b == nil {
		return ErrNotReady
	}
	_, err := b.Send(&tele.User{ID: recipientID}, text)
	return err
}
