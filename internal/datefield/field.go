// Package datefield implements the editing model behind a segmented date
// entry: per-digit slots grouped into day, month and year, the cross-field
// validation that keeps a partial date consistent, and the controller that
// moves focus across slots as digits are typed and deleted.
//
// The package has no rendering dependency. A renderer binds one focus handle
// per slot and forwards key events to the Controller.
package datefield

import "github.com/tartampluch/go-dateentry/internal/config"

// Field identifies one of the three digit groups of a date.
type Field int

const (
	Day Field = iota
	Month
	Year
)

// fieldCount is the number of groups in a date.
const fieldCount = 3

type fieldInfo struct {
	name        string
	digits      int
	min, max    int
	placeholder string
	glyph       rune
	pattern     string
}

var fieldTable = [fieldCount]fieldInfo{
	Day:   {"day", 2, 1, 31, config.TKeyPlaceholderDay, 'D', config.PatternDay},
	Month: {"month", 2, 1, 12, config.TKeyPlaceholderMonth, 'M', config.PatternMonth},
	Year:  {"year", 4, 0, 9999, config.TKeyPlaceholderYear, 'Y', config.PatternYear},
}

// Fields lists the groups in snapshot order (Day, Month, Year).
var Fields = [fieldCount]Field{Day, Month, Year}

// Valid reports whether f is one of Day, Month or Year.
func (f Field) Valid() bool {
	return f >= Day && f <= Year
}

// DigitCount returns the fixed number of digit slots of the group.
func (f Field) DigitCount() int {
	return fieldTable[f].digits
}

// Range returns the standalone numeric bounds of the group. Whether a value
// is acceptable also depends on the other groups.
func (f Field) Range() (lo, hi int) {
	return fieldTable[f].min, fieldTable[f].max
}

// PlaceholderKey returns the translation key of the group's placeholder.
func (f Field) PlaceholderKey() string {
	return fieldTable[f].placeholder
}

// PlaceholderRune returns the untranslated placeholder glyph of one slot.
func (f Field) PlaceholderRune() rune {
	return fieldTable[f].glyph
}

func (f Field) pattern() string {
	return fieldTable[f].pattern
}

func (f Field) String() string {
	if !f.Valid() {
		return "unknown"
	}
	return fieldTable[f].name
}
