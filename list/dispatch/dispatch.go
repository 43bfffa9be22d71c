// Package dispatch turns inbound events into list mutations and response
// views. It owns the per-user navigation modes, gates every event on the
// allow-list, and fans change notices out to the other allowed users after
// the mutation is committed.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"log/slog"

	"github.com/m3rciful/shoplistbot/core/logger"
	"github.com/m3rciful/shoplistbot/list"
	"github.com/m3rciful/shoplistbot/list/menu"
	"github.com/m3rciful/shoplistbot/list/store"
)

const (
	refusalText     = "⛔ У вас нет доступа к боту."
	unknownText     = "⚠ Неизвестное действие."
	idleHintText    = "Используйте меню /start или кнопки."
	degradedWarning = "\n\n⚠ Изменение не удалось сохранить на диск."
)

// Event is one inbound interaction, already stripped of transport
// envelopes. Action is nil for free-text input.
type Event struct {
	ActorID int64
	Action  menu.Action
	Text    string
}

// Notifier delivers a change notice to one recipient. One attempt, no
// retries; the dispatcher logs and swallows failures.
type Notifier interface {
	Notify(ctx context.Context, recipientID int64, text string) error
}

// NotifierFunc adapts a bare function to the Notifier interface.
type NotifierFunc func(ctx context.Context, recipientID int64, text string) error

// Notify executes the underlying function.
func (f NotifierFunc) Notify(ctx context.Context, recipientID int64, text string) error {
	return f(ctx, recipientID, text)
}

// Dispatcher routes events against the shared document.
type Dispatcher struct {
	store    *store.Store
	sessions *Sessions
	allowed  []int64
	notifier Notifier
}

// New builds a dispatcher over the given store, allow-list, and notifier.
func New(st *store.Store, allowed []int64, notifier Notifier) *Dispatcher {
	return &Dispatcher{
		store:    st,
		sessions: NewSessions(),
		allowed:  append([]int64(nil), allowed...),
		notifier: notifier,
	}
}

// Greeting renders the view for a fresh conversation.
func (d *Dispatcher) Greeting(actorID int64) menu.View {
	if !d.isAllowed(actorID) {
		return menu.View{Text: refusalText}
	}
	v := menu.Main()
	v.Text = "👋 Привет! " + v.Text
	return v
}

// Handle processes one event and returns the view to show the actor. All
// domain errors are converted into views here; nothing escapes to the
// transport loop.
func (d *Dispatcher) Handle(ctx context.Context, ev Event) menu.View {
	if !d.isAllowed(ev.ActorID) {
		logger.Warn(ctx, "dispatch", "event.refused",
			slog.Int64("user_id", ev.ActorID),
		)
		return menu.View{Text: refusalText}
	}
	if ev.Action != nil {
		return d.handleAction(ctx, ev.ActorID, ev.Action)
	}
	return d.handleText(ctx, ev.ActorID, strings.TrimSpace(ev.Text))
}

// InProgress reports whether the user is mid-way through a multi-step
// input and their next text message should bypass command routing.
func (d *Dispatcher) InProgress(userID int64) bool {
	return !d.sessions.Get(userID).idle()
}

func (d *Dispatcher) isAllowed(id int64) bool {
	for _, allowed := range d.allowed {
		if allowed == id {
			return true
		}
	}
	return false
}

func (d *Dispatcher) handleAction(ctx context.Context, actor int64, action menu.Action) menu.View {
	switch a := action.(type) {
	case menu.MainMenu:
		d.sessions.Reset(actor)
		return menu.Main()

	case menu.ShowCategories:
		d.sessions.Reset(actor)
		var v menu.View
		d.store.View(func(doc *list.Document) {
			v = menu.CategoryList(doc)
		})
		return v

	case menu.AddCategory:
		d.sessions.Set(actor, Mode{kind: modeAwaitCategoryName})
		return menu.View{Text: "Введите новую категорию. Формат: «эмодзи Название» или просто «Название»."}

	case menu.OpenCategory:
		d.sessions.Reset(actor)
		var v menu.View
		d.store.View(func(doc *list.Document) {
			v = menu.CategoryView(doc, a.Name)
		})
		return v

	case menu.AddItems:
		if !d.categoryExists(a.Name) {
			return d.notFoundView()
		}
		d.sessions.Set(actor, Mode{kind: modeAwaitItems, Category: a.Name})
		return menu.View{Text: fmt.Sprintf("Введите товары через запятую для категории «%s»:", a.Name)}

	case menu.ChangeEmoji:
		if !d.categoryExists(a.Name) {
			return d.notFoundView()
		}
		d.sessions.Set(actor, Mode{kind: modeAwaitEmoji, Category: a.Name})
		return menu.View{Text: fmt.Sprintf("Отправьте новый эмодзи для категории «%s»:", a.Name)}

	case menu.RemoveCategory:
		d.sessions.Reset(actor)
		return d.removeCategory(ctx, actor, a.Name)

	case menu.Toggle:
		d.sessions.Reset(actor)
		return d.toggleItem(ctx, actor, a.Name, a.Index)

	case menu.Delete:
		d.sessions.Reset(actor)
		return d.deleteItem(ctx, actor, a.Name, a.Index)

	case menu.ClearAll:
		d.sessions.Reset(actor)
		return d.clearAll(ctx, actor)

	default:
		d.sessions.Reset(actor)
		token := ""
		if u, ok := action.(menu.Unknown); ok {
			token = u.Token
		}
		logger.Warn(ctx, "dispatch", "action.unknown",
			slog.Int64("user_id", actor),
			slog.String("payload", logger.SanitizeLimit(token, 128)),
		)
		v := menu.Main()
		v.Text = unknownText
		return v
	}
}

func (d *Dispatcher) handleText(ctx context.Context, actor int64, text string) menu.View {
	mode := d.sessions.Get(actor)
	switch mode.kind {
	case modeAwaitCategoryName:
		return d.addCategoryFromText(ctx, actor, text)
	case modeAwaitItems:
		d.sessions.Reset(actor)
		return d.addItemsFromText(ctx, actor, mode.Category, text)
	case modeAwaitEmoji:
		return d.setEmojiFromText(ctx, actor, mode.Category, text)
	default:
		v := menu.Main()
		v.Text = idleHintText
		return v
	}
}

// addCategoryFromText parses "emoji name" or "name". Empty input keeps the
// mode so the user can try again; a duplicate drops back to idle without a
// second entry.
func (d *Dispatcher) addCategoryFromText(ctx context.Context, actor int64, text string) menu.View {
	emoji, name := splitEmojiName(text)
	if name == "" {
		return menu.View{Text: "⚠ Название не может быть пустым. Попробуйте ещё раз."}
	}
	d.sessions.Reset(actor)

	var v menu.View
	err := d.store.Update(ctx, func(doc *list.Document) error {
		if err := doc.AddCategory(name, emoji); err != nil {
			v = menu.CategoryList(doc)
			return err
		}
		v = menu.CategoryList(doc)
		v.Text = fmt.Sprintf("✅ Категория добавлена: %s", displayName(emoji, name))
		return nil
	})
	switch {
	case errors.Is(err, list.ErrDuplicateCategory):
		v.Text = "⚠ Такая категория уже существует."
		return v
	case err != nil && !errors.Is(err, store.ErrPersistence):
		return d.errorView(ctx, err)
	}
	v = d.noteDegraded(v, err)
	d.fanOut(ctx, actor, fmt.Sprintf("➕ Добавлена категория: %s", displayName(emoji, name)))
	return v
}

func (d *Dispatcher) addItemsFromText(ctx context.Context, actor int64, category, text string) menu.View {
	names := strings.Split(text, ",")

	var (
		v     menu.View
		added int
	)
	err := d.store.Update(ctx, func(doc *list.Document) error {
		n, err := doc.AddItems(category, names)
		if err != nil {
			return err
		}
		added = n
		if added == 0 {
			v = menu.CategoryView(doc, category)
			v.Text = "⚠ Нечего добавлять."
			// Nothing changed; skip the write.
			return errNoChange
		}
		v = menu.CategoryView(doc, category)
		v.Text = fmt.Sprintf("✅ Добавлено товаров: %d (%s)", added, category)
		return nil
	})
	switch {
	case errors.Is(err, errNoChange):
		return v
	case errors.Is(err, list.ErrNotFound):
		return d.notFoundView()
	case err != nil && !errors.Is(err, store.ErrPersistence):
		return d.errorView(ctx, err)
	}
	v = d.noteDegraded(v, err)

	clean := make([]string, 0, len(names))
	for _, raw := range names {
		if s := strings.TrimSpace(raw); s != "" {
			clean = append(clean, s)
		}
	}
	preview, _ := logger.SummarizeStrings(clean, 10)
	d.fanOut(ctx, actor, fmt.Sprintf("➕ В «%s» добавлены: %s", category, preview))
	return v
}

func (d *Dispatcher) setEmojiFromText(ctx context.Context, actor int64, category, text string) menu.View {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return menu.View{Text: "⚠ Эмодзи не может быть пустым. Попробуйте ещё раз."}
	}
	emoji := fields[0]
	d.sessions.Reset(actor)

	var v menu.View
	err := d.store.Update(ctx, func(doc *list.Document) error {
		if err := doc.SetEmoji(category, emoji); err != nil {
			return err
		}
		v = menu.CategoryView(doc, category)
		v.Text = fmt.Sprintf("✅ Эмодзи обновлён: %s %s", emoji, category)
		return nil
	})
	switch {
	case errors.Is(err, list.ErrNotFound):
		return d.notFoundView()
	case err != nil && !errors.Is(err, store.ErrPersistence):
		return d.errorView(ctx, err)
	}
	v = d.noteDegraded(v, err)
	d.fanOut(ctx, actor, fmt.Sprintf("🎨 Новый эмодзи у «%s»: %s", category, emoji))
	return v
}

func (d *Dispatcher) toggleItem(ctx context.Context, actor int64, category string, index int) menu.View {
	var (
		v        menu.View
		itemName string
		acquired bool
	)
	err := d.store.Update(ctx, func(doc *list.Document) error {
		c, ok := doc.Category(category)
		if !ok {
			return list.ErrNotFound
		}
		state, err := doc.ToggleItem(category, index)
		if err != nil {
			v = menu.CategoryView(doc, category)
			v.Text = "⚠ Элемент не найден."
			return err
		}
		itemName = c.Items[index].Name
		acquired = state
		v = menu.CategoryView(doc, category)
		return nil
	})
	switch {
	case errors.Is(err, list.ErrNotFound):
		if v.Text == "" {
			return d.notFoundView()
		}
		return v
	case err != nil && !errors.Is(err, store.ErrPersistence):
		return d.errorView(ctx, err)
	}
	v = d.noteDegraded(v, err)

	status := "в списке"
	if acquired {
		status = "куплено"
	}
	d.fanOut(ctx, actor, fmt.Sprintf("🔁 Статус: %s — %s (%s)", status, itemName, category))
	return v
}

func (d *Dispatcher) deleteItem(ctx context.Context, actor int64, category string, index int) menu.View {
	var (
		v       menu.View
		removed list.Item
	)
	err := d.store.Update(ctx, func(doc *list.Document) error {
		item, err := doc.RemoveItem(category, index)
		if err != nil {
			if _, ok := doc.Category(category); ok {
				v = menu.CategoryView(doc, category)
				v.Text = "⚠ Элемент не найден."
			}
			return err
		}
		removed = item
		v = menu.CategoryView(doc, category)
		v.Text = fmt.Sprintf("🗑 Удалено: %s", item.Name)
		return nil
	})
	switch {
	case errors.Is(err, list.ErrNotFound):
		if v.Text == "" {
			return d.notFoundView()
		}
		return v
	case err != nil && !errors.Is(err, store.ErrPersistence):
		return d.errorView(ctx, err)
	}
	v = d.noteDegraded(v, err)
	d.fanOut(ctx, actor, fmt.Sprintf("🗑 Удалено: %s (%s)", removed.Name, category))
	return v
}

func (d *Dispatcher) removeCategory(ctx context.Context, actor int64, category string) menu.View {
	var (
		v     menu.View
		label string
	)
	err := d.store.Update(ctx, func(doc *list.Document) error {
		if c, ok := doc.Category(category); ok {
			label = displayName(c.Emoji, c.Name)
		}
		if err := doc.RemoveCategory(category); err != nil {
			return err
		}
		v = menu.CategoryList(doc)
		v.Text = fmt.Sprintf("🗑 Категория удалена: %s", category)
		return nil
	})
	switch {
	case errors.Is(err, list.ErrNotFound):
		return d.notFoundView()
	case err != nil && !errors.Is(err, store.ErrPersistence):
		return d.errorView(ctx, err)
	}
	v = d.noteDegraded(v, err)
	d.fanOut(ctx, actor, fmt.Sprintf("🗑 Удалена категория: %s", label))
	return v
}

func (d *Dispatcher) clearAll(ctx context.Context, actor int64) menu.View {
	err := d.store.Update(ctx, func(doc *list.Document) error {
		doc.ClearAll()
		return nil
	})
	if err != nil && !errors.Is(err, store.ErrPersistence) {
		return d.errorView(ctx, err)
	}
	v := menu.Main()
	v.Text = "🧹 Всё очищено!"
	v = d.noteDegraded(v, err)
	d.fanOut(ctx, actor, "🧹 Список полностью очищен")
	return v
}

// errNoChange aborts an Update whose closure decided nothing needs saving.
var errNoChange = errors.New("dispatch: no change")

func (d *Dispatcher) categoryExists(name string) bool {
	exists := false
	d.store.View(func(doc *list.Document) {
		_, exists = doc.Category(name)
	})
	return exists
}

func (d *Dispatcher) notFoundView() menu.View {
	var v menu.View
	d.store.View(func(doc *list.Document) {
		v = menu.CategoryList(doc)
	})
	v.Text = "⚠ Категория не найдена."
	return v
}

func (d *Dispatcher) errorView(ctx context.Context, err error) menu.View {
	logger.Error(ctx, "dispatch", "event.fail",
		slog.String("err", err.Error()),
	)
	v := menu.Main()
	v.Text = "⚠ Что-то пошло не так. Попробуйте ещё раз."
	return v
}

// noteDegraded appends a persistence warning when the mutation was applied
// in memory but the write-back failed.
func (d *Dispatcher) noteDegraded(v menu.View, err error) menu.View {
	if errors.Is(err, store.ErrPersistence) {
		v.Text += degradedWarning
	}
	return v
}

// fanOut notifies every allow-listed user except the actor. Best effort:
// one attempt per recipient, failures logged and swallowed.
func (d *Dispatcher) fanOut(ctx context.Context, actor int64, text string) {
	if d.notifier == nil {
		return
	}
	for _, id := range d.allowed {
		if id == actor {
			continue
		}
		if err := d.notifier.Notify(ctx, id, text); err != nil {
			logger.Warn(ctx, "notify", "deliver.fail",
				slog.Int64("recipient_id", id),
				slog.String("err", err.Error()),
			)
			continue
		}
		logger.Debug(ctx, "notify", "deliver.ok",
			slog.Int64("recipient_id", id),
		)
	}
}

// splitEmojiName parses "emoji name" input: with two or more tokens the
// first is the emoji, otherwise the whole text is the name.
func splitEmojiName(text string) (emoji, name string) {
	parts := strings.SplitN(text, " ", 2)
	if len(parts) == 1 {
		return "", strings.TrimSpace(parts[0])
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}

func displayName(emoji, name string) string {
	if emoji == "" {
		return name
	}
	return emoji + " " + name
}
