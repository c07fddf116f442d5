package constants

import "time"

// EntryCode classifies a timesheet entry
type EntryCode string

// ConflictType represents the type of validation conflict
type ConflictType string

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "shiftlog"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.shiftlog/shiftlog.db"
	Version            = "v0.3.0"

	// RosterTimezone is the fixed zone all rotation math runs in. Platoon and
	// pay-day boundaries are defined by the duty roster's local midnight, never
	// UTC and never the device zone.
	RosterTimezone = "America/Edmonton"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "shiftlog-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "shiftlog-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.watchfour.shiftlog"

	// Entry Code constants
	EntryCodeShift    EntryCode = "shift"
	EntryCodeOvertime EntryCode = "overtime"
	EntryCodeCallout  EntryCode = "callout"
	EntryCodeTraining EntryCode = "training"
	EntryCodeOther    EntryCode = "other"

	// Conflict Types
	ConflictInvalidDate        ConflictType = "invalid_date"
	ConflictInvalidTime        ConflictType = "invalid_time"
	ConflictZeroLengthEntry    ConflictType = "zero_length_entry"
	ConflictBreakExceedsSpan   ConflictType = "break_exceeds_span"
	ConflictOverlappingEntries ConflictType = "overlapping_entries"
	ConflictUnknownCode        ConflictType = "unknown_code"
	ConflictMissingEntryID     ConflictType = "missing_entry_id"

	// Session States
	StateCalendar SessionState = iota
	StateLeave
	StateNotes
	StateLog
	StateNoteForm
	StateEntryForm
	StateConfirmDelete
)

// EntryCodes lists the accepted timesheet entry codes in display order.
func EntryCodes() []EntryCode {
	return []EntryCode{EntryCodeShift, EntryCodeOvertime, EntryCodeCallout, EntryCodeTraining, EntryCodeOther}
}

// ValidEntryCode reports whether code is one of the accepted entry codes.
func ValidEntryCode(code EntryCode) bool {
	for _, c := range EntryCodes() {
		if c == code {
			return true
		}
	}
	return false
}
