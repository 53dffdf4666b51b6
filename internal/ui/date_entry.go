package ui

import (
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-dateentry/internal/config"
	"github.com/tartampluch/go-dateentry/internal/datefield"
	"golang.org/x/text/language"
)

// Options configures a DateEntry.
type Options struct {
	// Format selects the group order. FormatUnspecified (or an unsupported
	// kind) derives it from Locale.
	Format datefield.FormatKind
	Locale language.Tag

	// Inclusive bounds. Zero values select the controller defaults.
	MinDate datefield.Date
	MaxDate datefield.Date

	// Value optionally presets the date.
	Value *datefield.Date

	// Delimiter is drawn between groups. Defaults to "/".
	Delimiter string

	ReadOnly  bool
	TextStyle fyne.TextStyle

	// Placeholder returns the glyph shown in an empty slot of a group.
	// Defaults to D, M and Y.
	Placeholder func(datefield.Field) string

	OnValueChange     func(datefield.Snapshot)
	OnEditingComplete func(datefield.Date) // Required.
}

// DateEntry is a date input split into one single-digit slot per position,
// with the groups laid out in the configured order.
type DateEntry struct {
	widget.BaseWidget

	ctrl        *datefield.Controller
	slots       []*DigitEntry
	delimiter   string
	placeholder func(datefield.Field) string
	content     *fyne.Container

	// syncing is set while the controller follows a focus change made by
	// the canvas, so that the focus handle does not focus the slot again.
	syncing bool

	onValueChange func(datefield.Snapshot)
}

// NewDateEntry builds the widget and its controller. Configuration errors of
// the controller (inverted bounds, preset out of range, missing completion
// callback) are returned unchanged.
func NewDateEntry(opts Options) (*DateEntry, error) {
	e := &DateEntry{
		delimiter:     opts.Delimiter,
		placeholder:   opts.Placeholder,
		onValueChange: opts.OnValueChange,
	}
	if e.delimiter == "" {
		e.delimiter = config.DefaultDelimiter
	}
	if e.placeholder == nil {
		e.placeholder = func(f datefield.Field) string { return string(f.PlaceholderRune()) }
	}

	ctrl, err := datefield.NewController(datefield.Config{
		Format:            opts.Format,
		Locale:            opts.Locale,
		MinDate:           opts.MinDate,
		MaxDate:           opts.MaxDate,
		Value:             opts.Value,
		ReadOnly:          opts.ReadOnly,
		OnValueChange:     e.valueChanged,
		OnEditingComplete: opts.OnEditingComplete,
		Logger:            slog.With(config.LogKeyComponent, config.CompUI),
	})
	if err != nil {
		return nil, err
	}
	e.ctrl = ctrl

	var objects []fyne.CanvasObject
	for i, s := range ctrl.Slots() {
		if i > 0 && s.Pos == 0 {
			objects = append(objects, widget.NewLabel(e.delimiter))
		}
		slot := newDigitEntry(e, i, s.Field)
		slot.TextStyle = opts.TextStyle
		slot.PlaceHolder = e.placeholder(s.Field)
		e.slots = append(e.slots, slot)
		objects = append(objects, slot)

		index := i
		ctrl.BindFocus(i, func() { e.focusSlot(index) })
	}
	e.content = container.NewHBox(objects...)
	e.syncSlots()

	e.ExtendBaseWidget(e)
	return e, nil
}

// CreateRenderer implements fyne.Widget.
func (e *DateEntry) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(e.content)
}

// Slot returns the digit entry at display index i, nil when out of range.
func (e *DateEntry) Slot(i int) *DigitEntry {
	if i < 0 || i >= len(e.slots) {
		return nil
	}
	return e.slots[i]
}

// Format returns the arrangement and bounds in use.
func (e *DateEntry) Format() *datefield.Format {
	return e.ctrl.Format()
}

// Pattern renders the layout with the slot placeholders, e.g. MM/DD/YYYY.
func (e *DateEntry) Pattern() string {
	var b strings.Builder
	for i, f := range e.ctrl.Format().Fields() {
		if i > 0 {
			b.WriteString(e.delimiter)
		}
		b.WriteString(strings.Repeat(e.placeholder(f), f.DigitCount()))
	}
	return b.String()
}

// Snapshot returns the externalized editing state.
func (e *DateEntry) Snapshot() datefield.Snapshot {
	return e.ctrl.Snapshot()
}

// Date returns the entered date once it is complete.
func (e *DateEntry) Date() (datefield.Date, bool) {
	return e.ctrl.Date()
}

// Restore loads a persisted snapshot. Inconsistent snapshots are rejected
// and leave the entry untouched.
func (e *DateEntry) Restore(s datefield.Snapshot) error {
	if err := e.ctrl.Restore(s); err != nil {
		return err
	}
	e.syncSlots()
	return nil
}

// Clear empties every slot.
func (e *DateEntry) Clear() {
	e.ctrl.Clear()
}

// ReadOnly reports whether editing is disabled.
func (e *DateEntry) ReadOnly() bool {
	return e.ctrl.ReadOnly()
}

// SetReadOnly enables or disables editing. Focus moves stay available.
func (e *DateEntry) SetReadOnly(readOnly bool) {
	e.ctrl.SetReadOnly(readOnly)
}

// FocusFirstAbsent puts the cursor where typing would resume.
func (e *DateEntry) FocusFirstAbsent() {
	snap := e.Snapshot()
	fields := e.ctrl.Format().Fields()
	for _, f := range fields {
		if slices.Contains(snap.Group(f), (*int)(nil)) {
			e.ctrl.Tap(f)
			return
		}
	}
	e.ctrl.Tap(fields[len(fields)-1])
}

func (e *DateEntry) enterDigit(index, digit int) {
	e.ctrl.EnterDigitAt(index, digit)
}

func (e *DateEntry) deleteAt(index int) {
	e.ctrl.DeleteAt(index)
}

func (e *DateEntry) tap(f datefield.Field) {
	e.ctrl.Tap(f)
}

func (e *DateEntry) moveFocus(from, delta int) {
	if e.ctrl.Focused() != from {
		e.ctrl.FocusAt(from)
	}
	e.ctrl.MoveFocus(delta)
}

// paste types every digit of text from slot index on; other characters,
// delimiters included, are skipped.
func (e *DateEntry) paste(index int, text string) {
	e.ctrl.FocusAt(index)
	for _, r := range text {
		if r >= '0' && r <= '9' {
			e.ctrl.EnterDigit(int(r - '0'))
		}
	}
}

func (e *DateEntry) focusGained(index int) {
	if e.ctrl.Focused() == index {
		return
	}
	e.syncing = true
	e.ctrl.FocusAt(index)
	e.syncing = false
}

// focusSlot gives the keyboard focus to slot i if the widget is on screen.
func (e *DateEntry) focusSlot(i int) {
	if e.syncing {
		return
	}
	a := fyne.CurrentApp()
	if a == nil || len(a.Driver().AllWindows()) == 0 {
		return
	}
	slot := e.slots[i]
	c := a.Driver().CanvasForObject(slot)
	if c == nil || c.Focused() == slot {
		return
	}
	c.Focus(slot)
}

func (e *DateEntry) valueChanged(s datefield.Snapshot) {
	e.syncSlots()
	if e.onValueChange != nil {
		e.onValueChange(s)
	}
}

// syncSlots copies the controller digits into the slot texts.
func (e *DateEntry) syncSlots() {
	for i, slot := range e.slots {
		text := ""
		if d := e.ctrl.Value(i); d != datefield.NoDigit {
			text = strconv.Itoa(d)
		}
		if slot.Text != text {
			slot.SetText(text)
		}
	}
}
