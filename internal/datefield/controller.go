package datefield

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tartampluch/go-dateentry/internal/config"
	"golang.org/x/text/language"
)

// FocusHandle moves the input focus of the rendering surface to one slot.
type FocusHandle func()

// Slot addresses one digit position: a group and an offset inside it.
type Slot struct {
	Field Field
	Pos   int
}

// Config holds the construction parameters of a Controller.
type Config struct {
	// Format is the requested arrangement. Unspecified or unsupported kinds
	// fall back on Locale, then on Month-Day-Year.
	Format FormatKind
	Locale language.Tag

	// MinDate and MaxDate are inclusive. Zero values select
	// 1900-01-01 and 2100-12-31.
	MinDate Date
	MaxDate Date

	// Value optionally presets the date. It must lie in [MinDate, MaxDate].
	Value *Date

	ReadOnly bool

	// OnValueChange receives the snapshot after every mutation, including a
	// rejected digit that was reverted.
	OnValueChange func(Snapshot)

	// OnEditingComplete receives the date each time the entry becomes
	// complete. Required.
	OnEditingComplete func(Date)

	Logger *slog.Logger
}

// Controller owns the editing state of one date entry and applies digit,
// delete and focus events to it. Events are serialized; callbacks and focus
// handles run after the internal lock is released, so they may call back
// into the controller.
type Controller struct {
	mu sync.Mutex

	format *Format
	values [fieldCount]*FieldValue
	slots  []Slot
	starts [fieldCount]int // index of the first slot of each group, by Field

	focus   int
	handles []FocusHandle

	readOnly bool
	complete bool
	last     Date

	onValueChange     func(Snapshot)
	onEditingComplete func(Date)
	log               *slog.Logger

	// Effects wait here in the order their events were applied.
	pending     []effects
	dispatching bool
}

// effects collects what an event produced, to be dispatched outside the lock.
type effects struct {
	focus     FocusHandle
	changed   bool
	snapshot  Snapshot
	completed bool
	date      Date
}

func (e effects) empty() bool {
	return e.focus == nil && !e.changed && !e.completed
}

// DefaultMinDate and DefaultMaxDate are the bounds used when Config leaves
// them zero.
var (
	DefaultMinDate = NewDate(config.DefaultMinYear, time.January, 1)
	DefaultMaxDate = NewDate(config.DefaultMaxYear, time.December, 31)
)

// NewController validates cfg and builds a controller. Any configuration
// error aborts construction.
func NewController(cfg Config) (*Controller, error) {
	if cfg.OnEditingComplete == nil {
		return nil, ErrNoCompletionHandler
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	log = log.With(config.LogKeyComponent, config.CompFocus)

	format, err := resolveFormat(cfg, log)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		format:            format,
		readOnly:          cfg.ReadOnly,
		onValueChange:     cfg.OnValueChange,
		onEditingComplete: cfg.OnEditingComplete,
		log:               log,
	}
	for _, f := range Fields {
		c.values[f] = NewFieldValue(f)
	}
	for _, f := range format.Fields() {
		c.starts[f] = len(c.slots)
		for pos := 0; pos < f.DigitCount(); pos++ {
			c.slots = append(c.slots, Slot{Field: f, Pos: pos})
		}
	}
	c.handles = make([]FocusHandle, len(c.slots))

	if cfg.Value != nil {
		preset := *cfg.Value
		if !preset.IsValid() || !format.Contains(preset) {
			return nil, fmt.Errorf("%w: %s not in [%s, %s]", ErrPresetOutOfRange, preset, format.Min(), format.Max())
		}
		for _, f := range Fields {
			c.values[f] = newFieldValueOf(f, preset.component(f))
		}
		c.complete = true
		c.last = preset
	}
	c.focus = c.restingFocus()
	return c, nil
}

func resolveFormat(cfg Config, log *slog.Logger) (*Format, error) {
	min, max := cfg.MinDate, cfg.MaxDate
	if min.IsZero() {
		min = DefaultMinDate
	}
	if max.IsZero() {
		max = DefaultMaxDate
	}

	f, ok, err := CreateSpecificFormat(cfg.Format, min, max)
	if err != nil || ok {
		return f, err
	}
	if cfg.Format != FormatUnspecified {
		log.Warn(config.MsgFormatFallback, config.LogKeyFormat, cfg.Format.String())
	}
	if cfg.Locale == language.Und {
		return CreateDefaultFormat(min, max)
	}
	f, _, err = CreateSpecificFormat(KindForLocale(cfg.Locale), min, max)
	return f, err
}

// Format returns the arrangement and bounds in use.
func (c *Controller) Format() *Format { return c.format }

// Slots returns every slot in display order.
func (c *Controller) Slots() []Slot {
	out := make([]Slot, len(c.slots))
	copy(out, c.slots)
	return out
}

// SlotIndex returns the display index of position pos of group f, -1 if
// there is none.
func (c *Controller) SlotIndex(f Field, pos int) int {
	if !f.Valid() || pos < 0 || pos >= f.DigitCount() {
		return -1
	}
	return c.starts[f] + pos
}

// BindFocus registers the handle called when slot index receives focus.
func (c *Controller) BindFocus(index int, h FocusHandle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index >= 0 && index < len(c.handles) {
		c.handles[index] = h
	}
}

// Focused returns the display index of the slot holding the cursor.
func (c *Controller) Focused() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.focus
}

// ReadOnly reports whether mutations are disabled.
func (c *Controller) ReadOnly() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readOnly
}

// SetReadOnly enables or disables mutations.
func (c *Controller) SetReadOnly(readOnly bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.readOnly = readOnly
}

// Snapshot returns the current state in Day, Month, Year order.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Value returns the digit at slot index, NoDigit when absent.
func (c *Controller) Value(index int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.slots) {
		return NoDigit
	}
	s := c.slots[index]
	return c.values[s.Field].Value(s.Pos)
}

// Date returns the entered date once every group is complete.
func (c *Controller) Date() (Date, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dateLocked()
}

// EnterDigit types digit into the focused slot.
func (c *Controller) EnterDigit(digit int) {
	c.mu.Lock()
	e := c.enterDigit(c.focus, digit)
	c.queueLocked(e)
	c.mu.Unlock()
	c.drain()
}

// EnterDigitAt types digit into slot index.
func (c *Controller) EnterDigitAt(index, digit int) {
	c.mu.Lock()
	e := c.enterDigit(index, digit)
	c.queueLocked(e)
	c.mu.Unlock()
	c.drain()
}

// Delete applies a delete key press on the focused slot.
func (c *Controller) Delete() {
	c.mu.Lock()
	e := c.deleteAt(c.focus)
	c.queueLocked(e)
	c.mu.Unlock()
	c.drain()
}

// DeleteAt applies a delete key press on slot index.
func (c *Controller) DeleteAt(index int) {
	c.mu.Lock()
	e := c.deleteAt(index)
	c.queueLocked(e)
	c.mu.Unlock()
	c.drain()
}

// Tap focuses group f: its last slot when complete, its first slot when
// empty, otherwise its first absent slot.
func (c *Controller) Tap(f Field) {
	if !f.Valid() {
		return
	}
	c.mu.Lock()
	var e effects
	v := c.values[f]
	switch {
	case v.IsComplete():
		c.setFocus(&e, c.starts[f]+v.Len()-1)
	case v.IsEmpty():
		c.setFocus(&e, c.starts[f])
	default:
		c.setFocus(&e, c.starts[f]+v.FirstAbsent())
	}
	c.queueLocked(e)
	c.mu.Unlock()
	c.drain()
}

// FocusAt moves the cursor to slot index.
func (c *Controller) FocusAt(index int) {
	c.mu.Lock()
	var e effects
	if index >= 0 && index < len(c.slots) {
		c.setFocus(&e, index)
	}
	c.queueLocked(e)
	c.mu.Unlock()
	c.drain()
}

// MoveFocus shifts the cursor by delta slots, clamped to the first and last
// slot.
func (c *Controller) MoveFocus(delta int) {
	c.mu.Lock()
	var e effects
	target := min(max(c.focus+delta, 0), len(c.slots)-1)
	if target != c.focus {
		c.setFocus(&e, target)
	}
	c.queueLocked(e)
	c.mu.Unlock()
	c.drain()
}

// Clear empties every group and focuses the first slot.
func (c *Controller) Clear() {
	c.mu.Lock()
	var e effects
	if !c.readOnly {
		for _, v := range c.values {
			v.Clear()
		}
		c.complete = false
		c.setFocus(&e, 0)
		c.markChanged(&e)
	}
	c.queueLocked(e)
	c.mu.Unlock()
	c.drain()
}

// Restore replaces the state with a persisted snapshot. A snapshot with
// malformed groups or describing an impossible date is rejected with
// ErrInconsistentSnapshot and leaves the state untouched. Restoring does not
// report completion; callers read Date afterwards.
func (c *Controller) Restore(s Snapshot) error {
	var restored [fieldCount]*FieldValue
	for _, f := range Fields {
		v, ok := s.fieldValue(f)
		if !ok {
			return fmt.Errorf("%w: malformed %s group", ErrInconsistentSnapshot, f)
		}
		restored[f] = v
	}
	if check := failedCheck(restored[Day], restored[Month], restored[Year], c.format); check != "" {
		return fmt.Errorf("%w: %s", ErrInconsistentSnapshot, check)
	}

	c.mu.Lock()
	var e effects
	if !c.readOnly {
		c.values = restored
		c.last, c.complete = c.dateLocked()
		c.setFocus(&e, c.restingFocus())
		c.markChanged(&e)
	}
	c.queueLocked(e)
	c.mu.Unlock()
	c.drain()
	return nil
}

// enterDigit writes digit into slot index, validates the whole date and
// either reverts the slot or advances the cursor.
func (c *Controller) enterDigit(index, digit int) effects {
	var e effects
	if c.readOnly || index < 0 || index >= len(c.slots) || digit < 0 || digit > 9 {
		return e
	}

	slot := c.slots[index]
	v := c.values[slot.Field]
	prev := v.Value(slot.Pos)
	v.SetValue(slot.Pos, digit)

	if check := failedCheck(c.values[Day], c.values[Month], c.values[Year], c.format); check != "" {
		v.SetValue(slot.Pos, prev)
		c.log.Debug(config.MsgDigitRejected,
			config.LogKeySlot, index,
			config.LogKeyDigit, digit,
			config.LogKeyField, slot.Field.String(),
			config.LogKeyCheck, check,
		)
		c.markChanged(&e)
		return e
	}

	if next := c.nextAbsentAfter(index); next >= 0 {
		c.setFocus(&e, next)
	} else if index < len(c.slots)-1 {
		c.setFocus(&e, index+1)
	}
	c.markChanged(&e)

	date, ok := c.dateLocked()
	if ok && (!c.complete || date != c.last) {
		e.completed = true
		e.date = date
		c.log.Debug(config.MsgDateComplete, config.LogKeyDate, date.String())
	}
	c.complete, c.last = ok, date
	return e
}

// deleteAction is what a delete key press does, chosen from deleteTable.
type deleteAction int

const (
	deleteNothing deleteAction = iota
	deleteSelf                 // clear the focused slot, keep focus
	deletePrevInGroup          // clear the previous slot of the same group, focus it
	deletePrevGroup            // clear the last slot of the previous group, focus it
)

// deleteState is the situation of the focused slot when delete is pressed.
type deleteState struct {
	filled       bool
	firstInGroup bool
	firstGroup   bool
}

var deleteTable = map[deleteState]deleteAction{
	{filled: true, firstInGroup: true, firstGroup: true}:    deleteSelf,
	{filled: true, firstInGroup: true, firstGroup: false}:   deleteSelf,
	{filled: true, firstInGroup: false, firstGroup: true}:   deleteSelf,
	{filled: true, firstInGroup: false, firstGroup: false}:  deleteSelf,
	{filled: false, firstInGroup: false, firstGroup: true}:  deletePrevInGroup,
	{filled: false, firstInGroup: false, firstGroup: false}: deletePrevInGroup,
	{filled: false, firstInGroup: true, firstGroup: false}:  deletePrevGroup,
	{filled: false, firstInGroup: true, firstGroup: true}:   deleteNothing,
}

func (c *Controller) deleteAt(index int) effects {
	var e effects
	if c.readOnly || index < 0 || index >= len(c.slots) {
		return e
	}

	slot := c.slots[index]
	order := c.format.Fields()
	state := deleteState{
		filled:       c.values[slot.Field].Value(slot.Pos) != NoDigit,
		firstInGroup: slot.Pos == 0,
		firstGroup:   slot.Field == order[0],
	}

	target := -1
	switch deleteTable[state] {
	case deleteSelf:
		target = index
	case deletePrevInGroup:
		target = c.starts[slot.Field] + slot.Pos - 1
	case deletePrevGroup:
		prev := order[c.groupIndex(slot.Field)-1]
		target = c.starts[prev] + prev.DigitCount() - 1
	case deleteNothing:
		return e
	}

	ts := c.slots[target]
	if c.values[ts.Field].Value(ts.Pos) != NoDigit {
		c.values[ts.Field].SetValue(ts.Pos, NoDigit)
		c.complete = false
		c.markChanged(&e)
	}
	if target != index {
		c.setFocus(&e, target)
	}
	return e
}

// groupIndex returns the display position of f in the format.
func (c *Controller) groupIndex(f Field) int {
	for i, g := range c.format.Fields() {
		if g == f {
			return i
		}
	}
	return -1
}

// nextAbsentAfter returns the first absent slot after index, -1 if none.
func (c *Controller) nextAbsentAfter(index int) int {
	for i := index + 1; i < len(c.slots); i++ {
		s := c.slots[i]
		if c.values[s.Field].Value(s.Pos) == NoDigit {
			return i
		}
	}
	return -1
}

// restingFocus is the slot the cursor rests on after a bulk change: the
// first absent slot, or the last slot when the date is complete.
func (c *Controller) restingFocus() int {
	if i := c.nextAbsentAfter(-1); i >= 0 {
		return i
	}
	return len(c.slots) - 1
}

func (c *Controller) setFocus(e *effects, index int) {
	c.focus = index
	e.focus = c.handles[index]
}

func (c *Controller) markChanged(e *effects) {
	e.changed = true
	e.snapshot = c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Day:   c.values[Day].Nullable(),
		Month: c.values[Month].Nullable(),
		Year:  c.values[Year].Nullable(),
	}
}

func (c *Controller) dateLocked() (Date, bool) {
	d, okD := c.values[Day].IntValue()
	m, okM := c.values[Month].IntValue()
	y, okY := c.values[Year].IntValue()
	if !okD || !okM || !okY {
		return Date{}, false
	}
	date := NewDate(y, time.Month(m), d)
	if !date.IsValid() || !c.format.Contains(date) {
		return Date{}, false
	}
	return date, true
}

func (c *Controller) queueLocked(e effects) {
	if !e.empty() {
		c.pending = append(c.pending, e)
	}
}

// drain runs the pending effects in order. Only one caller drains at a time;
// an event arriving meanwhile, from another goroutine or from a callback, is
// queued and run by the current drainer once the effects before it are done.
func (c *Controller) drain() {
	c.mu.Lock()
	if c.dispatching {
		c.mu.Unlock()
		return
	}
	c.dispatching = true
	for len(c.pending) > 0 {
		e := c.pending[0]
		c.pending[0] = effects{}
		c.pending = c.pending[1:]
		c.mu.Unlock()
		c.dispatch(e)
		c.mu.Lock()
	}
	c.dispatching = false
	c.mu.Unlock()
}

func (c *Controller) dispatch(e effects) {
	if e.focus != nil {
		e.focus()
	}
	if e.changed && c.onValueChange != nil {
		c.onValueChange(e.snapshot)
	}
	if e.completed {
		c.onEditingComplete(e.date)
	}
}
