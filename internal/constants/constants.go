package constants

import "time"

const (
	AppName           = "lifely"
	DefaultConfigPath = "~/.config/lifely/lifely.db"
	Version           = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// ShortDateFormat labels trend buckets older than yesterday (MM/DD)
	ShortDateFormat = "01/02"

	// Keyring entries
	DefaultKeyringUser   = "database-connection"
	ReasoningKeyringUser = "reasoning-api-key"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "lifely-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "lifely-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.lifely"
)

// Collection names for the entity store. Every durable record lives in
// exactly one of these.
const (
	CollectionChats    = "chats"
	CollectionJournal  = "journal"
	CollectionHabits   = "habits"
	CollectionAlarms   = "alarms"
	CollectionSettings = "settings"
)
