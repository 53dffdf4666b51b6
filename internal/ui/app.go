package ui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-dateentry/internal/config"
	"github.com/tartampluch/go-dateentry/internal/datefield"
	"github.com/tartampluch/go-dateentry/internal/engine"
	"golang.org/x/text/language"
)

// Settings holds the start-up choices made on the command line.
type Settings struct {
	Format    datefield.FormatKind
	MinDate   datefield.Date
	MaxDate   datefield.Date
	Value     *datefield.Date
	Delimiter string
	ReadOnly  bool

	// Birthday replaces MaxDate with today's date.
	Birthday bool

	// VCardPath optionally names a vCard file whose first BDAY prefills the
	// entry. Ignored when Value is set.
	VCardPath  string
	ExportPath string
}

// DateEntryApp encapsulates the demo window, preferences and translations.
type DateEntryApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Clock    engine.Clock // Injected clock for testability (e.g. mocking time travel)
	Settings Settings

	SupportedLanguages []string

	Entry        *DateEntry
	Preset       *engine.Preset
	StatusLabel  *widget.Label
	ClearButton  *widget.Button
	ExportButton *widget.Button
}

// NewDateEntryApp constructs the application and wires dependencies.
func NewDateEntryApp(a fyne.App, ctx context.Context, s Settings) *DateEntryApp {
	return &DateEntryApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Clock:              engine.RealClock{}, // Default to real clock in production
		Settings:           s,
		SupportedLanguages: config.SupportedLanguages,
	}
}

// Run builds the window and blocks in the UI loop until it is closed.
func (app *DateEntryApp) Run() error {
	app.SetupI18n()
	if err := app.BuildWindow(); err != nil {
		return err
	}
	app.Window.ShowAndRun()
	return nil
}

// BuildWindow creates the entry, its status line and buttons. It fails only
// on configuration errors of the entry (bounds, preset).
func (app *DateEntryApp) BuildWindow() error {
	slog.Info(config.MsgOpenWindow,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyLang, app.Language(),
	)

	entry, err := NewDateEntry(app.entryOptions())
	if err != nil {
		return err
	}
	app.Entry = entry

	app.StatusLabel = widget.NewLabel("")
	app.ClearButton = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnClear), theme.ContentClearIcon(), entry.Clear)
	app.ExportButton = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnExport), theme.DocumentSaveIcon(), func() {
		_ = app.Export()
	})

	app.restoreState()
	entry.SetReadOnly(app.Settings.ReadOnly)
	app.refreshStatus()

	form := widget.NewForm(widget.NewFormItem(app.GetMsg(config.TKeyLblDate), entry))
	buttons := container.NewGridWithColumns(config.LayoutColumnsDouble, app.ClearButton, app.ExportButton)
	content := container.NewVBox(form, app.StatusLabel, buttons)

	if app.Settings.ReadOnly {
		app.ClearButton.Disable()
		content.Add(widget.NewLabelWithStyle(app.GetMsg(config.TKeyLblReadOnly), fyne.TextAlignCenter, fyne.TextStyle{Italic: true}))
	}

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	w.SetContent(content)
	w.Resize(fyne.NewSize(config.WindowWidth, content.MinSize().Height))
	app.Window = w

	// Focus needs the window's canvas.
	entry.FocusFirstAbsent()
	return nil
}

// entryOptions maps the settings and the UI language to widget options.
func (app *DateEntryApp) entryOptions() Options {
	s := app.Settings
	opts := Options{
		Format:            s.Format,
		Locale:            language.Make(app.Language()),
		MinDate:           s.MinDate,
		MaxDate:           s.MaxDate,
		Value:             s.Value,
		Delimiter:         s.Delimiter,
		Placeholder:       app.placeholder,
		OnValueChange:     app.onValueChange,
		OnEditingComplete: app.onEditingComplete,
	}
	if s.Birthday {
		opts.MaxDate = engine.Today(app.Clock)
	}
	return opts
}

// restoreState fills the entry from, in order of priority: the explicit
// value, the vCard preset, the snapshot saved by the previous run.
func (app *DateEntryApp) restoreState() {
	log := slog.With(config.LogKeyComponent, config.CompUI)

	if app.Settings.Value != nil {
		return
	}

	if app.Settings.VCardPath != "" {
		p, err := engine.LoadPresetFile(app.Ctx, app.Settings.VCardPath)
		if err != nil {
			log.Warn(config.ErrVCardParse,
				config.LogKeyFile, app.Settings.VCardPath,
				config.LogKeyError, err,
			)
		} else {
			app.Preset = &p
			if err := app.Entry.Restore(p.Snapshot()); err != nil {
				log.Warn(config.ErrPresetOutOfRange, config.LogKeyError, err)
			}
			return
		}
	}

	raw := app.Preferences.String(config.PrefSnapshot)
	if raw == "" {
		return
	}
	var snap datefield.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		log.Warn(config.ErrSnapshotDecode, config.LogKeyError, err)
		return
	}
	if err := app.Entry.Restore(snap); err != nil {
		log.Warn(config.ErrSnapshotRestore, config.LogKeyError, err)
		return
	}
	log.Info(config.MsgRestored, config.LogKeyValue, raw)
}

// onValueChange persists every state change so that the next run resumes it.
func (app *DateEntryApp) onValueChange(s datefield.Snapshot) {
	if data, err := json.Marshal(s); err == nil {
		app.Preferences.SetString(config.PrefSnapshot, string(data))
	}
	app.refreshStatus()
}

func (app *DateEntryApp) onEditingComplete(d datefield.Date) {
	slog.Info(config.MsgDateComplete,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyDate, d.String(),
	)
	app.refreshStatus()
}

// refreshStatus shows the expected pattern while editing and the ISO date once
// complete. Export is only possible for a complete date.
func (app *DateEntryApp) refreshStatus() {
	if app.StatusLabel == nil || app.Entry == nil {
		return
	}

	if d, ok := app.Entry.Date(); ok {
		app.StatusLabel.SetText(app.GetMsgWith(config.TKeyLblStatusDone, map[string]any{"Date": d.String()}))
		app.ExportButton.Enable()
		return
	}
	app.StatusLabel.SetText(app.GetMsgWith(config.TKeyLblStatusEditing, map[string]any{"Pattern": app.Entry.Pattern()}))
	app.ExportButton.Disable()
}

// Export writes the completed date as a yearly all-day event and notifies
// the user of the outcome.
func (app *DateEntryApp) Export() error {
	d, ok := app.Entry.Date()
	if !ok {
		return errors.New(config.ErrDateIncomplete)
	}

	path := app.Settings.ExportPath
	if path == "" {
		path = config.ExportName
	}
	name := ""
	if app.Preset != nil {
		name = app.Preset.Name
	}

	exp := &engine.Exporter{
		Clock:         app.Clock,
		FormatSummary: app.buildSummaryFormatter(),
	}
	if err := exp.WriteFile(path, name, d); err != nil {
		slog.Error(config.ErrExportWrite,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyFile, path,
			config.LogKeyError, err,
		)
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifExportErr)))
		return err
	}

	app.App.SendNotification(fyne.NewNotification(config.AppName,
		app.GetMsgWith(config.TKeyNotifExported, map[string]any{"Path": path})))
	return nil
}

// buildSummaryFormatter returns a closure that localizes the event summary.
func (app *DateEntryApp) buildSummaryFormatter() func(d datefield.Date) string {
	return func(d datefield.Date) string {
		msg := app.GetMsgWith(config.TKeyEvtSummary, map[string]any{"Date": d.String()})
		if msg == config.TKeyEvtSummary || msg == "" {
			return fmt.Sprintf(config.FallbackSummary, d)
		}
		return msg
	}
}
