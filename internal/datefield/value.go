package datefield

// NoDigit marks an absent slot.
const NoDigit = -1

// FieldValue is the editing state of one group: one slot per digit, each
// holding 0..9 or NoDigit.
type FieldValue struct {
	field  Field
	digits []int
}

// NewFieldValue returns an empty value for f.
func NewFieldValue(f Field) *FieldValue {
	v := &FieldValue{field: f, digits: make([]int, f.DigitCount())}
	v.Clear()
	return v
}

// newFieldValueOf returns a complete value holding n, left-padded with zeros.
func newFieldValueOf(f Field, n int) *FieldValue {
	v := NewFieldValue(f)
	for i := len(v.digits) - 1; i >= 0; i-- {
		v.digits[i] = n % 10
		n /= 10
	}
	return v
}

// Field returns the group this value belongs to.
func (v *FieldValue) Field() Field { return v.field }

// Len returns the number of slots.
func (v *FieldValue) Len() int { return len(v.digits) }

// SetValue replaces slot index with digit (0..9 or NoDigit). No other slot
// is touched. Out-of-range indexes and digits are ignored.
func (v *FieldValue) SetValue(index, digit int) {
	if index < 0 || index >= len(v.digits) {
		return
	}
	if digit != NoDigit && (digit < 0 || digit > 9) {
		return
	}
	v.digits[index] = digit
}

// Value returns the content of slot index, NoDigit when absent or out of range.
func (v *FieldValue) Value(index int) int {
	if index < 0 || index >= len(v.digits) {
		return NoDigit
	}
	return v.digits[index]
}

// Values returns a copy of the slots.
func (v *FieldValue) Values() []int {
	out := make([]int, len(v.digits))
	copy(out, v.digits)
	return out
}

// Nullable returns the slots as nullable digits, nil for absent ones.
func (v *FieldValue) Nullable() []*int {
	out := make([]*int, len(v.digits))
	for i, d := range v.digits {
		if d != NoDigit {
			d := d
			out[i] = &d
		}
	}
	return out
}

// IsComplete reports whether every slot holds a digit.
func (v *FieldValue) IsComplete() bool {
	return v.FirstAbsent() < 0
}

// IsEmpty reports whether no slot holds a digit.
func (v *FieldValue) IsEmpty() bool {
	for _, d := range v.digits {
		if d != NoDigit {
			return false
		}
	}
	return true
}

// FirstAbsent returns the index of the first absent slot, -1 if complete.
func (v *FieldValue) FirstAbsent() int {
	for i, d := range v.digits {
		if d == NoDigit {
			return i
		}
	}
	return -1
}

// IntValue returns the base-10 integer formed by the slots. ok is false when
// a slot is absent.
func (v *FieldValue) IntValue() (n int, ok bool) {
	for _, d := range v.digits {
		if d == NoDigit {
			return 0, false
		}
		n = n*10 + d
	}
	return n, true
}

// Bounds returns the smallest and largest integers the group can still
// become: absent slots count as 0 for lo and 9 for hi.
func (v *FieldValue) Bounds() (lo, hi int) {
	for _, d := range v.digits {
		if d == NoDigit {
			lo, hi = lo*10, hi*10+9
			continue
		}
		lo, hi = lo*10+d, hi*10+d
	}
	return lo, hi
}

// Clear resets every slot to NoDigit.
func (v *FieldValue) Clear() {
	for i := range v.digits {
		v.digits[i] = NoDigit
	}
}

func (v *FieldValue) clone() *FieldValue {
	return &FieldValue{field: v.field, digits: v.Values()}
}
