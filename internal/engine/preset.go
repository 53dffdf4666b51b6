package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-dateentry/internal/config"
	"github.com/tartampluch/go-dateentry/internal/datefield"
)

// Preset is a date taken from a contact's birthday, used to prefill the
// entry.
type Preset struct {
	Name string
	Date datefield.Date

	// YearKnown is false for vCard birthdays written --MM-DD. Date.Year then
	// holds config.DefaultLeapYear and must not be shown.
	YearKnown bool
}

// Snapshot returns the entry state for p: every group for a full date, day
// and month only when the year is unknown.
func (p Preset) Snapshot() datefield.Snapshot {
	s := datefield.SnapshotOf(p.Date)
	if !p.YearKnown {
		s.Year = datefield.EmptySnapshot().Year
	}
	return s
}

// LoadPresetFile opens path and returns the first birthday it contains.
func LoadPresetFile(ctx context.Context, path string) (Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Preset{}, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	// Best effort close. Errors in Close() for read-only files are rarely actionable here.
	defer func() { _ = f.Close() }()

	return LoadPreset(ctx, f)
}

// LoadPreset decodes a vCard stream and returns the first card with a
// parsable BDAY. Malformed cards are skipped.
func LoadPreset(ctx context.Context, r io.Reader) (Preset, error) {
	log := slog.With(config.LogKeyComponent, config.CompEngine)
	decoder := vcard.NewDecoder(r)

	for {
		if err := ctx.Err(); err != nil {
			return Preset{}, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// The decoder cannot resync after a malformed card.
			log.Warn(config.MsgSkippedCard, config.LogKeyError, err)
			return Preset{}, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
		}

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		date, yearKnown, err := ParseBirthday(bday.Value)
		if err != nil {
			log.Debug(config.MsgSkippedDate, config.LogKeyValue, bday.Value)
			continue
		}

		name := ""
		if fn := card.Get(config.VCardFN); fn != nil {
			name = fn.Value
		}

		log.Info(config.MsgPresetLoaded,
			config.LogKeyName, name,
			config.LogKeyDate, date.String(),
			config.LogKeyYearKnown, yearKnown,
		)
		return Preset{Name: name, Date: date, YearKnown: yearKnown}, nil
	}

	return Preset{}, errors.New(config.ErrVCardNoBirthday)
}

// ParseBirthday handles the vCard date forms. Year-less dates (--MM-DD) are
// placed in config.DefaultLeapYear so that --02-29 stays valid.
func ParseBirthday(value string) (datefield.Date, bool, error) {
	formatsWithYear := []string{
		config.DateFormatISO,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return datefield.DateOf(t), true, nil
		}
	}

	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			return datefield.NewDate(config.DefaultLeapYear, t.Month(), t.Day()), false, nil
		}
	}

	return datefield.Date{}, false, fmt.Errorf("%s: %q", config.ErrDateParse, value)
}
