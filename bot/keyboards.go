package bot

import (
	"github.com/m3rciful/shoplistbot/core/telegram/keyboard"
	"github.com/m3rciful/shoplistbot/list/menu"

	tele "gopkg.in/telebot.v4"
)

// viewMarkup converts a rendered view's button grid into an inline keyboard.
// Views without buttons produce a nil markup so the message carries none.
func viewMarkup(v menu.View) *tele.ReplyMarkup {
	if len(v.Actions) == 0 {
		return nil
	}
	rows := make([][]keyboard.InlineBtn, 0, len(v.Actions))
	for _, row := range v.Actions {
		btns := make([]keyboard.InlineBtn, 0, len(row))
		for _, b := range row {
			unique, payload := encodeAction(b.Do)
			if unique == "" {
				continue
			}
			btns = append(btns, keyboard.InlineBtn{
				Text:   b.Label,
				Unique: unique,
				Data:   payload,
			})
		}
		if len(btns) > 0 {
			rows = append(rows, btns)
		}
	}
	if len(rows) == 0 {
		return nil
	}
	return keyboard.InlineButtonsRows(rows...)
}
