package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-dateentry/internal/datefield"
)

// DigitEntry is one slot of a DateEntry. It embeds widget.Entry for its
// look and focus handling, but its text is owned by the date controller:
// keystrokes are forwarded as slot events instead of editing the text.
type DigitEntry struct {
	widget.Entry

	index int
	field datefield.Field
	owner *DateEntry
}

// newDigitEntry creates the slot at display index for one position of field.
func newDigitEntry(owner *DateEntry, index int, field datefield.Field) *DigitEntry {
	entry := &DigitEntry{index: index, field: field, owner: owner}
	entry.ExtendBaseWidget(entry)
	return entry
}

// Index returns the display position of the slot.
func (e *DigitEntry) Index() int {
	return e.index
}

// Field returns the group the slot belongs to.
func (e *DigitEntry) Field() datefield.Field {
	return e.field
}

// TypedRune forwards digits (0-9) to the controller and drops anything else.
func (e *DigitEntry) TypedRune(r rune) {
	if r < '0' || r > '9' {
		return
	}
	e.owner.enterDigit(e.index, int(r-'0'))
}

// TypedKey maps deletion and arrow keys to slot events. Other keys would
// edit the text directly and are ignored.
func (e *DigitEntry) TypedKey(key *fyne.KeyEvent) {
	switch key.Name {
	case fyne.KeyBackspace, fyne.KeyDelete:
		e.owner.deleteAt(e.index)
	case fyne.KeyLeft:
		e.owner.moveFocus(e.index, -1)
	case fyne.KeyRight:
		e.owner.moveFocus(e.index, 1)
	case fyne.KeyHome:
		e.owner.moveFocus(e.index, -e.index)
	case fyne.KeyEnd:
		e.owner.moveFocus(e.index, len(e.owner.slots)-1-e.index)
	}
}

// TypedShortcut feeds pasted text digit by digit. Cut is ignored since the
// slot text cannot be removed that way; other shortcuts (copy, select all)
// keep the Entry behavior.
func (e *DigitEntry) TypedShortcut(s fyne.Shortcut) {
	switch sc := s.(type) {
	case *fyne.ShortcutPaste:
		if sc.Clipboard != nil {
			e.owner.paste(e.index, sc.Clipboard.Content())
		}
	case *fyne.ShortcutCut:
	default:
		e.Entry.TypedShortcut(s)
	}
}

// Tapped lets the controller choose the slot to focus inside the tapped group.
func (e *DigitEntry) Tapped(*fyne.PointEvent) {
	e.owner.tap(e.field)
}

// DoubleTapped would select the digit as a word; slots have nothing to select.
func (e *DigitEntry) DoubleTapped(*fyne.PointEvent) {}

// TappedSecondary suppresses the Entry context menu, whose actions edit the
// text behind the controller's back.
func (e *DigitEntry) TappedSecondary(*fyne.PointEvent) {}

// FocusGained keeps the controller cursor on the slot focused by the user
// (Tab, click).
func (e *DigitEntry) FocusGained() {
	e.Entry.FocusGained()
	e.owner.focusGained(e.index)
}

// Keyboard overrides the default keyboard type.
// This ensures that on mobile devices, a numeric keypad is shown.
func (e *DigitEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}
