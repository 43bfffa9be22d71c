package bot

import (
	coretelegram "github.com/m3rciful/shoplistbot/core/telegram"
	"github.com/m3rciful/shoplistbot/core/telegram/callbacks"
	"github.com/m3rciful/shoplistbot/core/telegram/commands"
	tghelpers "github.com/m3rciful/shoplistbot/core/telegram/helpers"
	"github.com/m3rciful/shoplistbot/list/dispatch"
	"github.com/m3rciful/shoplistbot/list/menu"

	tele "gopkg.in/telebot.v4"
)

// Handlers bind the dispatcher to Telegram endpoints.
type Handlers struct {
	disp *dispatch.Dispatcher
}

// NewHandlers wraps a dispatcher.
func NewHandlers(d *dispatch.Dispatcher) *Handlers {
	return &Handlers{disp: d}
}

// Register wires the /start command, every callback unique, and the text
// fallback into the registry.
func (h *Handlers) Register(reg *coretelegram.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.onStart,
		Description: "Главное меню",
	})

	for _, unique := range uniques {
		u := unique
		_ = reg.RegisterCallback(u, func(c tele.Context) error {
			return h.onCallback(c, u)
		})
	}

	reg.SetTextFallback(h.onText)
	reg.SetCallbackNotFound(func(c tele.Context) error {
		return h.dispatchAction(c, menu.Unknown{Token: callbacks.CallbackKey(c)})
	})
}

// InProgress reports whether the user's next text completes a multi-step
// input. Satisfies the router's Conversation interface.
func (h *Handlers) InProgress(userID int64) bool {
	return h.disp.InProgress(userID)
}

// HandleText routes an in-progress conversation message. Satisfies the
// router's Conversation interface.
func (h *Handlers) HandleText(c tele.Context) error {
	return h.onText(c)
}

// OnRejected answers users outside the allow-list.
func (h *Handlers) OnRejected(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	v := h.disp.Greeting(sender.ID)
	return tghelpers.SendText(c, v.Text, viewMarkup(v))
}

func (h *Handlers) onStart(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	v := h.disp.Greeting(sender.ID)
	return tghelpers.SendText(c, v.Text, viewMarkup(v))
}

func (h *Handlers) onCallback(c tele.Context, unique string) error {
	return h.dispatchAction(c, decodeAction(unique, callbacks.CallbackPayload(c)))
}

func (h *Handlers) dispatchAction(c tele.Context, action menu.Action) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	ctx := tghelpers.BuildContext(c)
	v := h.disp.Handle(ctx, dispatch.Event{
		ActorID: sender.ID,
		Action:  action,
	})
	// Button presses update the menu message in place.
	return tghelpers.EditOrSendText(c, v.Text, viewMarkup(v))
}

func (h *Handlers) onText(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	ctx := tghelpers.BuildContext(c)
	v := h.disp.Handle(ctx, dispatch.Event{
		ActorID: sender.ID,
		Text:    c.Text(),
	})
	return tghelpers.SendText(c, v.Text, viewMarkup(v))
}
