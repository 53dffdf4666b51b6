package engine

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-dateentry/internal/config"
	"github.com/tartampluch/go-dateentry/internal/datefield"
)

// Exporter turns a completed date into an iCalendar document holding one
// all-day event repeating every year.
type Exporter struct {
	Clock Clock // Interface for time mocking.

	// FormatSummary allows the UI to inject a localized event title.
	FormatSummary func(d datefield.Date) string
}

// Encode writes the calendar for d to w. name feeds the event UID so that
// re-exporting the same entry produces the same event.
func (e *Exporter) Encode(w io.Writer, name string, d datefield.Date) error {
	if !d.IsValid() {
		return fmt.Errorf("%s: %s", config.ErrDateIncomplete, d)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	event := ical.NewEvent()
	hash := sha256.Sum256([]byte(name + "|" + d.String() + "|" + config.UIDSalt))
	event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, hash[:config.UIDHashLength], config.ICalDomain))

	summary := fmt.Sprintf(config.FallbackSummary, d)
	if e.FormatSummary != nil {
		summary = e.FormatSummary(d)
	}
	event.Props.SetText(config.PropSummary, summary)

	dtStamp := ical.NewProp(config.PropDTStamp)
	dtStamp.SetDateTime(e.Clock.Now().UTC())
	event.Props.Set(dtStamp)

	dtStart := ical.NewProp(config.PropDTStart)
	dtStart.SetDate(d.Time())
	event.Props.Set(dtStart)

	// Set the rule manually to avoid a "VALUE=TEXT" param.
	rrule := ical.NewProp(config.PropRRule)
	rrule.Value = config.ICalRRule
	event.Props.Set(rrule)

	cal.Children = append(cal.Children, event.Component)

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return nil
}

// WriteFile encodes the calendar for d and writes it to path, readable by
// the owner only.
func (e *Exporter) WriteFile(path, name string, d datefield.Date) error {
	if path == "" {
		return errors.New(config.ErrExportWrite)
	}

	var buf bytes.Buffer
	if err := e.Encode(&buf, name, d); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), config.FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", config.ErrExportWrite, err)
	}

	slog.Info(config.MsgExported,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyFile, path,
		config.LogKeyDate, d.String(),
	)
	return nil
}
