package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName     = "Go Date Entry"
	AppID       = "com.github.tartampluch.go-dateentry"
	LogFileName = "app.log"
	ExportName  = "date.ics"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for logs and exported calendars.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion   = "version"
	FlagDebug     = "debug"
	FlagFormat    = "format"
	FlagMin       = "min"
	FlagMax       = "max"
	FlagValue     = "value"
	FlagDelimiter = "delimiter"
	FlagReadOnly  = "readonly"
	FlagVCard     = "vcard"
	FlagExport    = "export"
	FlagLang      = "lang"
	FlagBirthday  = "birthday"

	FlagDescVersion   = "Show application version and exit"
	FlagDescDebug     = "Enable debug logging to stdout"
	FlagDescFormat    = "Field order: mdy, dmy, ymd or ydm (empty derives it from the language)"
	FlagDescMin       = "Earliest accepted date (YYYY-MM-DD)"
	FlagDescMax       = "Latest accepted date (YYYY-MM-DD)"
	FlagDescValue     = "Preset date (YYYY-MM-DD)"
	FlagDescDelimiter = "Character rendered between groups"
	FlagDescReadOnly  = "Display the date without allowing edits"
	FlagDescVCard     = "Preset the date from the first BDAY of a vCard file"
	FlagDescExport    = "Path of the iCalendar file written by Export"
	FlagDescLang      = "UI language (ISO 639-1), overrides the saved preference"
	FlagDescBirthday  = "Birthday mode: the latest accepted date is today"
	MsgVersionOutput  = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	WindowWidth = 420

	// Preference Keys
	PrefLanguage = "language"
	PrefSnapshot = "snapshot"
	PrefLastRun  = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle         = "win_title"
	TKeyPlaceholderDay   = "placeholder_day"
	TKeyPlaceholderMonth = "placeholder_month"
	TKeyPlaceholderYear  = "placeholder_year"
	TKeyLblDate          = "lbl_date"
	TKeyLblStatusEditing = "lbl_status_editing" // Requires Pattern
	TKeyLblStatusDone    = "lbl_status_done"    // Requires Date
	TKeyLblReadOnly      = "lbl_read_only"
	TKeyBtnClear         = "btn_clear"
	TKeyBtnExport        = "btn_export"
	TKeyNotifExported    = "notif_exported" // Requires Path
	TKeyNotifExportErr   = "notif_err_export"
	TKeyEvtSummary       = "event_summary"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultLanguage  = "en"
	DefaultDelimiter = "/"
	DefaultLeapYear  = 2000 // Leap year fallback for dates like --02-29

	// Default inclusive bounds when the host does not provide any.
	DefaultMinYear = 1900
	DefaultMaxYear = 2100

	UIDSalt = "go-dateentry-v1-" // Salt for deterministic UID generation
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Date Entry//Export//EN"
	ICalScale   = "GREGORIAN"
	ICalMethod  = "PUBLISH"
	ICalDomain  = "godateentry"
	ICalRRule   = "FREQ=YEARLY"

	PropUID      = "UID"
	PropSummary  = "SUMMARY"
	PropDTStart  = "DTSTART"
	PropDTStamp  = "DTSTAMP"
	PropRRule    = "RRULE"
	PropVersion  = "VERSION"
	PropProdid   = "PRODID"
	PropCalScale = "CALSCALE"
	PropMethod   = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
)

// -----------------------------------------------------------------------------
// Data Formats
// -----------------------------------------------------------------------------

const (
	DateFormatISO       = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// UID Generation
	UIDHashLength = 16
	FormatUID     = "%x@%s"

	// Pattern glyphs used to render a format such as MM/DD/YYYY.
	PatternDay   = "DD"
	PatternMonth = "MM"
	PatternYear  = "YYYY"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrBoundsInverted       = "configuration error: maximum date is before minimum date"
	ErrInvalidBound         = "configuration error: bound is not a calendar date"
	ErrPresetOutOfRange     = "configuration error: preset date outside allowed range"
	ErrNoCompletionHandler  = "configuration error: editing-complete callback is required"
	ErrInconsistentSnapshot = "snapshot does not describe an acceptable date"
	ErrUnknownFormat        = "unknown date format"
	ErrDateParse            = "unable to parse date"
	ErrVCardParse           = "failed to parse vCard stream"
	ErrVCardNoBirthday      = "no vCard with a birthday found"
	ErrICalEncode           = "failed to encode iCalendar data"
	ErrExportWrite          = "failed to write export file"
	ErrDateIncomplete       = "date is not complete"
	ErrLogFile              = "failed to open log file"
	ErrCacheDir             = "could not determine user cache dir"
	ErrCreateDir            = "could not create app cache dir"
	ErrAppFailed            = "application failed unexpectedly"
	ErrLocalesAccess        = "failed to access embedded locales"
	ErrLocaleLoad           = "failed to load locale file"
	ErrSnapshotDecode       = "failed to decode saved snapshot"
	ErrSnapshotRestore      = "saved snapshot rejected"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackSummary = "Date: %s"

	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgAppStarting    = "Starting application"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgDigitRejected  = "Digit rejected"
	MsgDateComplete   = "Date complete"
	MsgFormatFallback = "Requested format unsupported, using locale default"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedDate    = "Skipping invalid date format"
	MsgPresetLoaded   = "Preset loaded from vCard"
	MsgExported       = "Calendar exported"
	MsgRestored       = "Saved snapshot restored"
	MsgOpenWindow     = "Opening date entry window"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyField     = "field"
	LogKeySlot      = "slot"
	LogKeyDigit     = "digit"
	LogKeyCheck     = "check"
	LogKeyDate      = "date"
	LogKeyFormat    = "format"
	LogKeyName      = "name"
	LogKeyValue     = "value"
	LogKeyYearKnown = "year_known"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI        = "ui"
	CompEngine    = "engine"
	CompMain      = "main"
	CompI18n      = "i18n"
	CompValidator = "validator"
	CompFocus     = "focus"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
)
