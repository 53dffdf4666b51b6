package datefield

// Snapshot is the externally visible state of a date entry: one array of
// nullable digits per group, always in Day, Month, Year order regardless of
// the display arrangement. It is what hosts persist.
type Snapshot struct {
	Day   []*int `json:"day"`
	Month []*int `json:"month"`
	Year  []*int `json:"year"`
}

// EmptySnapshot returns a snapshot with every slot absent.
func EmptySnapshot() Snapshot {
	return Snapshot{
		Day:   make([]*int, Day.DigitCount()),
		Month: make([]*int, Month.DigitCount()),
		Year:  make([]*int, Year.DigitCount()),
	}
}

// SnapshotOf returns the snapshot of a complete date.
func SnapshotOf(d Date) Snapshot {
	return Snapshot{
		Day:   newFieldValueOf(Day, d.Day).Nullable(),
		Month: newFieldValueOf(Month, int(d.Month)).Nullable(),
		Year:  newFieldValueOf(Year, d.Year).Nullable(),
	}
}

// Group returns the slots of f.
func (s Snapshot) Group(f Field) []*int {
	switch f {
	case Day:
		return s.Day
	case Month:
		return s.Month
	default:
		return s.Year
	}
}

// Empty reports whether no slot holds a digit.
func (s Snapshot) Empty() bool {
	for _, f := range Fields {
		for _, d := range s.Group(f) {
			if d != nil {
				return false
			}
		}
	}
	return true
}

// Complete reports whether every slot of every group holds a digit.
func (s Snapshot) Complete() bool {
	for _, f := range Fields {
		g := s.Group(f)
		if len(g) != f.DigitCount() {
			return false
		}
		for _, d := range g {
			if d == nil {
				return false
			}
		}
	}
	return true
}

// fieldValue converts the slots of f into a FieldValue. ok is false when the
// group has the wrong length or holds something other than 0..9.
func (s Snapshot) fieldValue(f Field) (*FieldValue, bool) {
	g := s.Group(f)
	if len(g) != f.DigitCount() {
		return nil, false
	}
	v := NewFieldValue(f)
	for i, d := range g {
		if d == nil {
			continue
		}
		if *d < 0 || *d > 9 {
			return nil, false
		}
		v.SetValue(i, *d)
	}
	return v, true
}
