// Package menu renders the shopping list into navigable views. Renderers
// are pure functions of the document; they perform no I/O and no mutation.
package menu

// Action is a tagged selectable target carried by a menu button. Using a
// closed set of variants instead of delimiter-joined strings keeps category
// names with arbitrary characters safe; transports encode these however
// they like.
type Action interface {
	isAction()
}

// MainMenu navigates to the top-level menu.
type MainMenu struct{}

// ShowCategories opens the category list.
type ShowCategories struct{}

// AddCategory asks the user to name a new category.
type AddCategory struct{}

// ClearAll empties the whole list.
type ClearAll struct{}

// OpenCategory shows one category's items.
type OpenCategory struct {
	Name string
}

// AddItems asks the user for comma-separated items for a category.
type AddItems struct {
	Name string
}

// ChangeEmoji asks the user for a new emoji label for a category.
type ChangeEmoji struct {
	Name string
}

// RemoveCategory deletes a category with all of its items.
type RemoveCategory struct {
	Name string
}

// Toggle flips the acquired flag of the item at Index.
type Toggle struct {
	Name  string
	Index int
}

// Delete removes the item at Index.
type Delete struct {
	Name  string
	Index int
}

// Unknown carries an action token the transport could not decode.
type Unknown struct {
	Token string
}

func (MainMenu) isAction()       {}
func (ShowCategories) isAction() {}
func (AddCategory) isAction()    {}
func (ClearAll) isAction()       {}
func (OpenCategory) isAction()   {}
func (AddItems) isAction()       {}
func (ChangeEmoji) isAction()    {}
func (RemoveCategory) isAction() {}
func (Toggle) isAction()         {}
func (Delete) isAction()         {}
func (Unknown) isAction()        {}

// Button is one selectable menu entry.
type Button struct {
	Label string
	Do    Action
}

// View is a transport-agnostic response: text plus rows of buttons.
type View struct {
	Text    string
	Actions [][]Button
}
