package ui_test

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-dateentry/internal/datefield"
	"github.com/tartampluch/go-dateentry/internal/ui"
)

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// clipboard is a minimal fyne.Clipboard for paste shortcuts.
type clipboard struct {
	content string
}

func (c *clipboard) Content() string           { return c.content }
func (c *clipboard) SetContent(content string) { c.content = content }

// recorder collects the dates reported by OnEditingComplete.
type recorder struct {
	dates []datefield.Date
}

func (r *recorder) complete(d datefield.Date) {
	r.dates = append(r.dates, d)
}

// setupEntry shows a Month-Day-Year entry in a headless window with the
// cursor on the first slot.
func setupEntry(t *testing.T, opts ui.Options) (*ui.DateEntry, fyne.Window, *recorder) {
	t.Helper()
	test.NewApp()

	rec := &recorder{}
	if opts.Format == datefield.FormatUnspecified {
		opts.Format = datefield.FormatMDY
	}
	if opts.OnEditingComplete == nil {
		opts.OnEditingComplete = rec.complete
	}

	entry, err := ui.NewDateEntry(opts)
	require.NoError(t, err)

	w := test.NewWindow(entry)
	t.Cleanup(w.Close)
	entry.FocusFirstAbsent()

	return entry, w, rec
}

// typeDigits types each character into whichever slot holds the focus, the
// way a user keeps typing while the cursor advances.
func typeDigits(t *testing.T, w fyne.Window, chars string) {
	t.Helper()
	for _, r := range chars {
		focused := w.Canvas().Focused()
		require.NotNil(t, focused, "A slot must hold the focus")
		test.Type(focused, string(r))
	}
}

func slotTexts(e *ui.DateEntry) string {
	out := ""
	for i := 0; e.Slot(i) != nil; i++ {
		if e.Slot(i).Text == "" {
			out += "_"
		} else {
			out += e.Slot(i).Text
		}
	}
	return out
}

// -----------------------------------------------------------------------------
// Construction & Layout
// -----------------------------------------------------------------------------

func TestDateEntry_Layout(t *testing.T) {
	tests := []struct {
		name    string
		format  datefield.FormatKind
		delim   string
		pattern string
		first   datefield.Field
	}{
		{"MDY", datefield.FormatMDY, "", "MM/DD/YYYY", datefield.Month},
		{"DMY Dash", datefield.FormatDMY, "-", "DD-MM-YYYY", datefield.Day},
		{"YMD Dot", datefield.FormatYMD, ".", "YYYY.MM.DD", datefield.Year},
		{"YDM", datefield.FormatYDM, "/", "YYYY/DD/MM", datefield.Year},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, _, _ := setupEntry(t, ui.Options{Format: tt.format, Delimiter: tt.delim})

			assert.Equal(t, tt.pattern, entry.Pattern())
			assert.Equal(t, tt.format, entry.Format().Kind())
			assert.Equal(t, tt.first, entry.Slot(0).Field())
			assert.NotNil(t, entry.Slot(7))
			assert.Nil(t, entry.Slot(8))
			assert.Nil(t, entry.Slot(-1))
		})
	}
}

func TestDateEntry_Placeholders(t *testing.T) {
	entry, _, _ := setupEntry(t, ui.Options{
		Format: datefield.FormatDMY,
		Placeholder: func(f datefield.Field) string {
			return map[datefield.Field]string{datefield.Day: "J", datefield.Month: "M", datefield.Year: "A"}[f]
		},
	})

	assert.Equal(t, "J", entry.Slot(0).PlaceHolder)
	assert.Equal(t, "M", entry.Slot(2).PlaceHolder)
	assert.Equal(t, "A", entry.Slot(7).PlaceHolder)
	assert.Equal(t, "JJ/MM/AAAA", entry.Pattern())
}

func TestDateEntry_ConfigErrors(t *testing.T) {
	test.NewApp()

	_, err := ui.NewDateEntry(ui.Options{})
	assert.ErrorIs(t, err, datefield.ErrNoCompletionHandler)

	_, err = ui.NewDateEntry(ui.Options{
		MinDate:           datefield.NewDate(2020, time.January, 1),
		MaxDate:           datefield.NewDate(2019, time.January, 1),
		OnEditingComplete: func(datefield.Date) {},
	})
	assert.ErrorIs(t, err, datefield.ErrBoundsInverted)

	late := datefield.NewDate(2200, time.January, 1)
	_, err = ui.NewDateEntry(ui.Options{Value: &late, OnEditingComplete: func(datefield.Date) {}})
	assert.ErrorIs(t, err, datefield.ErrPresetOutOfRange)
}

func TestDateEntry_PresetValue(t *testing.T) {
	preset := datefield.NewDate(1985, time.July, 4)
	entry, w, rec := setupEntry(t, ui.Options{Value: &preset})

	assert.Equal(t, "07041985", slotTexts(entry))
	d, ok := entry.Date()
	assert.True(t, ok)
	assert.Equal(t, preset, d)
	assert.Empty(t, rec.dates, "A preset is not an edit")
	assert.Same(t, entry.Slot(7), w.Canvas().Focused(), "Complete entry rests on the last slot")
}

// -----------------------------------------------------------------------------
// Typing
// -----------------------------------------------------------------------------

func TestDateEntry_TypeLeapDay(t *testing.T) {
	var changes int
	entry, w, rec := setupEntry(t, ui.Options{
		OnValueChange: func(datefield.Snapshot) { changes++ },
	})

	typeDigits(t, w, "02291904")

	assert.Equal(t, "02291904", slotTexts(entry))
	require.Len(t, rec.dates, 1)
	assert.Equal(t, datefield.NewDate(1904, time.February, 29), rec.dates[0])
	assert.Equal(t, 8, changes)

	d, ok := entry.Date()
	assert.True(t, ok)
	assert.Equal(t, "1904-02-29", d.String())
}

func TestDateEntry_RejectedDigit(t *testing.T) {
	entry, w, rec := setupEntry(t, ui.Options{})

	typeDigits(t, w, "13")

	assert.Equal(t, "1_______", slotTexts(entry), "Month 13 must be reverted")
	assert.Same(t, entry.Slot(1), w.Canvas().Focused(), "Focus stays on the rejected slot")
	assert.Empty(t, rec.dates)

	typeDigits(t, w, "2")
	assert.Equal(t, "12______", slotTexts(entry))
	assert.Same(t, entry.Slot(2), w.Canvas().Focused())
}

func TestDateEntry_NonDigitsIgnored(t *testing.T) {
	var changes int
	entry, _, _ := setupEntry(t, ui.Options{
		OnValueChange: func(datefield.Snapshot) { changes++ },
	})

	for _, r := range []rune{'a', 'Z', '-', ' ', '/'} {
		test.Type(entry.Slot(0), string(r))
	}

	assert.Equal(t, "________", slotTexts(entry))
	assert.Zero(t, changes)
}

func TestDateEntry_Paste(t *testing.T) {
	entry, _, rec := setupEntry(t, ui.Options{})

	entry.Slot(0).TypedShortcut(&fyne.ShortcutPaste{Clipboard: &clipboard{content: "12/25/1990"}})

	assert.Equal(t, "12251990", slotTexts(entry))
	require.Len(t, rec.dates, 1)
	assert.Equal(t, datefield.NewDate(1990, time.December, 25), rec.dates[0])
}

func TestDateEntry_PasteRejectedDigit(t *testing.T) {
	entry, _, rec := setupEntry(t, ui.Options{})

	// The 3 of "13" is rejected like a typed one.
	entry.Slot(0).TypedShortcut(&fyne.ShortcutPaste{Clipboard: &clipboard{content: "13"}})

	assert.Equal(t, "1_______", slotTexts(entry))
	assert.Empty(t, rec.dates)
}

func TestDateEntry_CutIgnored(t *testing.T) {
	preset := datefield.NewDate(2001, time.January, 2)
	entry, _, _ := setupEntry(t, ui.Options{Value: &preset})

	entry.Slot(0).TypedShortcut(&fyne.ShortcutCut{Clipboard: &clipboard{}})
	assert.Equal(t, "01022001", slotTexts(entry))
}

// -----------------------------------------------------------------------------
// Deletion & Navigation
// -----------------------------------------------------------------------------

func TestDateEntry_Backspace(t *testing.T) {
	entry, w, _ := setupEntry(t, ui.Options{})
	backspace := &fyne.KeyEvent{Name: fyne.KeyBackspace}

	typeDigits(t, w, "12")
	require.Same(t, entry.Slot(2), w.Canvas().Focused())

	// Empty first slot of the day group: retreat into the month group.
	entry.Slot(2).TypedKey(backspace)
	assert.Equal(t, "1_______", slotTexts(entry))
	assert.Same(t, entry.Slot(1), w.Canvas().Focused())

	// Empty second slot: clear the first one of the group.
	entry.Slot(1).TypedKey(backspace)
	assert.Equal(t, "________", slotTexts(entry))
	assert.Same(t, entry.Slot(0), w.Canvas().Focused())

	// Nothing left before the first slot.
	entry.Slot(0).TypedKey(&fyne.KeyEvent{Name: fyne.KeyDelete})
	assert.Equal(t, "________", slotTexts(entry))
	assert.Same(t, entry.Slot(0), w.Canvas().Focused())
}

func TestDateEntry_ArrowKeys(t *testing.T) {
	entry, w, _ := setupEntry(t, ui.Options{})

	entry.Slot(0).TypedKey(&fyne.KeyEvent{Name: fyne.KeyRight})
	assert.Same(t, entry.Slot(1), w.Canvas().Focused())

	entry.Slot(1).TypedKey(&fyne.KeyEvent{Name: fyne.KeyEnd})
	assert.Same(t, entry.Slot(7), w.Canvas().Focused())

	entry.Slot(7).TypedKey(&fyne.KeyEvent{Name: fyne.KeyRight})
	assert.Same(t, entry.Slot(7), w.Canvas().Focused(), "Focus is clamped to the last slot")

	entry.Slot(7).TypedKey(&fyne.KeyEvent{Name: fyne.KeyLeft})
	assert.Same(t, entry.Slot(6), w.Canvas().Focused())

	entry.Slot(6).TypedKey(&fyne.KeyEvent{Name: fyne.KeyHome})
	assert.Same(t, entry.Slot(0), w.Canvas().Focused())

	// Moving never edits.
	assert.Equal(t, "________", slotTexts(entry))
}

func TestDateEntry_Tap(t *testing.T) {
	entry, w, _ := setupEntry(t, ui.Options{})

	// Empty group: first slot.
	entry.Slot(6).Tapped(&fyne.PointEvent{})
	assert.Same(t, entry.Slot(4), w.Canvas().Focused())

	// Partial group: first absent slot.
	typeDigits(t, w, "1")
	entry.Slot(5).Tapped(&fyne.PointEvent{})
	assert.Same(t, entry.Slot(5), w.Canvas().Focused())

	// Complete group: last slot.
	entry.Clear()
	typeDigits(t, w, "07")
	entry.Slot(0).Tapped(&fyne.PointEvent{})
	assert.Same(t, entry.Slot(1), w.Canvas().Focused())
}

func TestDateEntry_FocusGainedSyncsCursor(t *testing.T) {
	entry, w, _ := setupEntry(t, ui.Options{})

	// Tab-like focus change driven by the canvas, not the controller.
	w.Canvas().Focus(entry.Slot(4))
	typeDigits(t, w, "2")

	assert.Equal(t, "____2___", slotTexts(entry))
	assert.Same(t, entry.Slot(5), w.Canvas().Focused())
}

// -----------------------------------------------------------------------------
// State Management
// -----------------------------------------------------------------------------

func TestDateEntry_RestoreAndSnapshot(t *testing.T) {
	entry, w, rec := setupEntry(t, ui.Options{Format: datefield.FormatDMY})

	require.NoError(t, entry.Restore(datefield.SnapshotOf(datefield.NewDate(2012, time.March, 9))))
	assert.Equal(t, "09032012", slotTexts(entry))
	assert.Same(t, entry.Slot(7), w.Canvas().Focused())
	assert.Empty(t, rec.dates)

	snap := entry.Snapshot()
	assert.True(t, snap.Complete())
	assert.Equal(t, 9, *snap.Day[1])

	// February 30th cannot be restored.
	bad := datefield.SnapshotOf(datefield.NewDate(2012, time.February, 28))
	three, zero := 3, 0
	bad.Day = []*int{&three, &zero}
	assert.ErrorIs(t, entry.Restore(bad), datefield.ErrInconsistentSnapshot)
	assert.Equal(t, "09032012", slotTexts(entry), "A rejected snapshot leaves the entry untouched")
}

func TestDateEntry_Clear(t *testing.T) {
	entry, w, _ := setupEntry(t, ui.Options{})
	typeDigits(t, w, "0101")

	entry.Clear()

	assert.Equal(t, "________", slotTexts(entry))
	assert.True(t, entry.Snapshot().Empty())
	assert.Same(t, entry.Slot(0), w.Canvas().Focused())
}

func TestDateEntry_ReadOnly(t *testing.T) {
	preset := datefield.NewDate(1999, time.December, 31)
	entry, w, _ := setupEntry(t, ui.Options{Value: &preset, ReadOnly: true})
	assert.True(t, entry.ReadOnly())

	entry.Slot(7).TypedKey(&fyne.KeyEvent{Name: fyne.KeyBackspace})
	entry.Clear()
	test.Type(entry.Slot(7), "0")
	assert.Equal(t, "12311999", slotTexts(entry))

	// Navigation still works.
	entry.Slot(7).TypedKey(&fyne.KeyEvent{Name: fyne.KeyHome})
	assert.Same(t, entry.Slot(0), w.Canvas().Focused())

	entry.SetReadOnly(false)
	entry.Slot(0).TypedKey(&fyne.KeyEvent{Name: fyne.KeyBackspace})
	assert.Equal(t, "_2311999", slotTexts(entry))
}

func TestDigitEntry_Keyboard(t *testing.T) {
	entry, _, _ := setupEntry(t, ui.Options{})

	// Verify it requests the Number keyboard on mobile devices
	assert.Equal(t, mobile.NumberKeyboard, entry.Slot(0).Keyboard())
	assert.Equal(t, 3, entry.Slot(3).Index())
}
