package datefield

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// FormatKind enumerates the supported group arrangements.
type FormatKind int

const (
	FormatUnspecified FormatKind = iota
	FormatMDY                    // MM/DD/YYYY
	FormatDMY                    // DD/MM/YYYY
	FormatYMD                    // YYYY/MM/DD
	FormatYDM                    // YYYY/DD/MM
)

var formatOrders = map[FormatKind][fieldCount]Field{
	FormatMDY: {Month, Day, Year},
	FormatDMY: {Day, Month, Year},
	FormatYMD: {Year, Month, Day},
	FormatYDM: {Year, Day, Month},
}

var formatNames = map[FormatKind]string{
	FormatMDY: "mdy",
	FormatDMY: "dmy",
	FormatYMD: "ymd",
	FormatYDM: "ydm",
}

func (k FormatKind) String() string {
	if name, ok := formatNames[k]; ok {
		return name
	}
	return "unspecified"
}

// Supported reports whether k names an arrangement of the catalog.
func (k FormatKind) Supported() bool {
	_, ok := formatOrders[k]
	return ok
}

// ParseFormatKind accepts short names ("mdy") and patterns ("MM/DD/YYYY",
// "dd-mm-yyyy"). An empty string yields FormatUnspecified.
func ParseFormatKind(s string) (FormatKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FormatUnspecified, nil
	}
	for kind, name := range formatNames {
		if s == name || s == strings.ToLower(patternOf(formatOrders[kind], "/")) {
			return kind, nil
		}
	}
	// Patterns with another delimiter: keep only the field letters.
	compact := strings.Map(func(r rune) rune {
		if r == 'd' || r == 'm' || r == 'y' {
			return r
		}
		return -1
	}, s)
	for kind, order := range formatOrders {
		if compact == strings.ToLower(patternOf(order, "")) {
			return kind, nil
		}
	}
	return FormatUnspecified, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// regions writing dates month first.
var monthFirstRegions = map[string]bool{
	"US": true, "PH": true, "FM": true, "MH": true, "PW": true, "AS": true, "GU": true, "PR": true, "VI": true, "UM": true,
}

// regions writing dates year first.
var yearFirstRegions = map[string]bool{
	"CN": true, "JP": true, "KR": true, "KP": true, "TW": true, "HU": true, "LT": true, "MN": true, "IR": true,
}

// KindForLocale derives the conventional arrangement for tag from its
// (possibly inferred) region. Undetermined tags get FormatMDY.
func KindForLocale(tag language.Tag) FormatKind {
	if tag == language.Und {
		return FormatMDY
	}
	region, _ := tag.Region()
	code := region.String()
	switch {
	case monthFirstRegions[code]:
		return FormatMDY
	case yearFirstRegions[code]:
		return FormatYMD
	default:
		return FormatDMY
	}
}

// Format is an immutable arrangement of the three groups plus the inclusive
// range of accepted dates.
type Format struct {
	kind     FormatKind
	order    [fieldCount]Field
	min, max Date
}

// CreateSpecificFormat builds the requested arrangement. ok is false when
// kind is not in the catalog; the caller is expected to fall back on
// CreateDefaultFormat. Invalid bounds are reported as an error.
func CreateSpecificFormat(kind FormatKind, min, max Date) (f *Format, ok bool, err error) {
	if err := checkBounds(min, max); err != nil {
		return nil, false, err
	}
	if !kind.Supported() {
		return nil, false, nil
	}
	return &Format{kind: kind, order: formatOrders[kind], min: min, max: max}, true, nil
}

// CreateDefaultFormat builds the Month-Day-Year arrangement.
func CreateDefaultFormat(min, max Date) (*Format, error) {
	f, _, err := CreateSpecificFormat(FormatMDY, min, max)
	return f, err
}

func checkBounds(min, max Date) error {
	if !min.IsValid() {
		return fmt.Errorf("%w: min %s", ErrInvalidBound, min)
	}
	if !max.IsValid() {
		return fmt.Errorf("%w: max %s", ErrInvalidBound, max)
	}
	if max.Before(min) {
		return fmt.Errorf("%w: %s > %s", ErrBoundsInverted, min, max)
	}
	return nil
}

// Kind returns the arrangement the format was built from.
func (f *Format) Kind() FormatKind { return f.kind }

// Fields returns the groups in display order.
func (f *Format) Fields() [fieldCount]Field { return f.order }

// Min returns the earliest accepted date.
func (f *Format) Min() Date { return f.min }

// Max returns the latest accepted date.
func (f *Format) Max() Date { return f.max }

// Contains reports whether d lies in [Min, Max].
func (f *Format) Contains(d Date) bool {
	return !d.Before(f.min) && !d.After(f.max)
}

// SlotCount returns the total number of digit slots.
func (f *Format) SlotCount() int {
	n := 0
	for _, fld := range f.order {
		n += fld.DigitCount()
	}
	return n
}

// Pattern renders the arrangement, e.g. "MM/DD/YYYY" for delimiter "/".
func (f *Format) Pattern(delimiter string) string {
	return patternOf(f.order, delimiter)
}

func patternOf(order [fieldCount]Field, delimiter string) string {
	parts := make([]string, 0, fieldCount)
	for _, fld := range order {
		parts = append(parts, fld.pattern())
	}
	return strings.Join(parts, delimiter)
}
