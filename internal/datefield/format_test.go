package datefield_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-dateentry/internal/datefield"
	"golang.org/x/text/language"
)

var (
	min1900 = datefield.NewDate(1900, time.January, 1)
	max2100 = datefield.NewDate(2100, time.December, 31)
)

func TestField_Descriptors(t *testing.T) {
	assert.Equal(t, 2, datefield.Day.DigitCount())
	assert.Equal(t, 2, datefield.Month.DigitCount())
	assert.Equal(t, 4, datefield.Year.DigitCount())

	lo, hi := datefield.Month.Range()
	assert.Equal(t, 1, lo)
	assert.Equal(t, 12, hi)

	assert.Equal(t, 'D', datefield.Day.PlaceholderRune())
	assert.Equal(t, "placeholder_year", datefield.Year.PlaceholderKey())
	assert.Equal(t, "month", datefield.Month.String())
	assert.False(t, datefield.Field(7).Valid())
}

func TestCreateSpecificFormat(t *testing.T) {
	tests := []struct {
		kind    datefield.FormatKind
		order   [3]datefield.Field
		pattern string
	}{
		{datefield.FormatMDY, [3]datefield.Field{datefield.Month, datefield.Day, datefield.Year}, "MM/DD/YYYY"},
		{datefield.FormatDMY, [3]datefield.Field{datefield.Day, datefield.Month, datefield.Year}, "DD/MM/YYYY"},
		{datefield.FormatYMD, [3]datefield.Field{datefield.Year, datefield.Month, datefield.Day}, "YYYY/MM/DD"},
		{datefield.FormatYDM, [3]datefield.Field{datefield.Year, datefield.Day, datefield.Month}, "YYYY/DD/MM"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			f, ok, err := datefield.CreateSpecificFormat(tt.kind, min1900, max2100)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.order, f.Fields())
			assert.Equal(t, tt.pattern, f.Pattern("/"))
			assert.Equal(t, 8, f.SlotCount())
			assert.Equal(t, tt.kind, f.Kind())
		})
	}
}

func TestCreateSpecificFormat_Unsupported(t *testing.T) {
	f, ok, err := datefield.CreateSpecificFormat(datefield.FormatUnspecified, min1900, max2100)
	assert.NoError(t, err)
	assert.False(t, ok, "Unspecified kind must signal absence")
	assert.Nil(t, f)

	_, ok, err = datefield.CreateSpecificFormat(datefield.FormatKind(42), min1900, max2100)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestCreateDefaultFormat(t *testing.T) {
	f, err := datefield.CreateDefaultFormat(min1900, max2100)
	require.NoError(t, err)
	assert.Equal(t, datefield.FormatMDY, f.Kind())
	assert.Equal(t, min1900, f.Min())
	assert.Equal(t, max2100, f.Max())
}

func TestCreateFormat_BoundsErrors(t *testing.T) {
	_, err := datefield.CreateDefaultFormat(max2100, min1900)
	assert.ErrorIs(t, err, datefield.ErrBoundsInverted)

	_, _, err = datefield.CreateSpecificFormat(datefield.FormatDMY, datefield.NewDate(2001, time.February, 29), max2100)
	assert.ErrorIs(t, err, datefield.ErrInvalidBound)

	// A single-day range is allowed.
	_, err = datefield.CreateDefaultFormat(min1900, min1900)
	assert.NoError(t, err)
}

func TestFormat_Contains(t *testing.T) {
	f, err := datefield.CreateDefaultFormat(datefield.NewDate(2020, time.June, 15), datefield.NewDate(2020, time.June, 20))
	require.NoError(t, err)

	assert.True(t, f.Contains(datefield.NewDate(2020, time.June, 15)), "Min is inclusive")
	assert.True(t, f.Contains(datefield.NewDate(2020, time.June, 20)), "Max is inclusive")
	assert.False(t, f.Contains(datefield.NewDate(2020, time.June, 14)))
	assert.False(t, f.Contains(datefield.NewDate(2020, time.June, 21)))
}

func TestKindForLocale(t *testing.T) {
	tests := []struct {
		tag  string
		want datefield.FormatKind
	}{
		{"en-US", datefield.FormatMDY},
		{"en", datefield.FormatMDY}, // region inferred as US
		{"en-GB", datefield.FormatDMY},
		{"fr", datefield.FormatDMY},
		{"de-CH", datefield.FormatDMY},
		{"ja", datefield.FormatYMD},
		{"zh-TW", datefield.FormatYMD},
		{"hu", datefield.FormatYMD},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.want, datefield.KindForLocale(language.MustParse(tt.tag)))
		})
	}

	assert.Equal(t, datefield.FormatMDY, datefield.KindForLocale(language.Und))
}

func TestParseFormatKind(t *testing.T) {
	tests := []struct {
		in   string
		want datefield.FormatKind
	}{
		{"", datefield.FormatUnspecified},
		{"mdy", datefield.FormatMDY},
		{"DMY", datefield.FormatDMY},
		{"YYYY/MM/DD", datefield.FormatYMD},
		{"yyyy-dd-mm", datefield.FormatYDM},
		{" dd.mm.yyyy ", datefield.FormatDMY},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := datefield.ParseFormatKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := datefield.ParseFormatKind("julian")
	assert.ErrorIs(t, err, datefield.ErrUnknownFormat)
}

func TestFormatKind_Supported(t *testing.T) {
	for _, kind := range []datefield.FormatKind{datefield.FormatMDY, datefield.FormatDMY, datefield.FormatYMD, datefield.FormatYDM} {
		assert.True(t, kind.Supported(), kind.String())
	}
	assert.False(t, datefield.FormatUnspecified.Supported())
	assert.False(t, datefield.FormatKind(42).Supported())
}
