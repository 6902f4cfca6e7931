package constants

import "time"

const (
	DatabaseTimeout = 5 * time.Second
	RequestTimeout  = 30 * time.Second
	ShutdownTimeout = 5 * time.Second
)

const (
	DBMaxOpenConns    = 10
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	// RecentMatchLimit caps the "last matches" list on a profile.
	RecentMatchLimit = 5
	// CalendarRetention is how long past events are kept before the
	// calendar prunes them on load.
	CalendarRetention = 365 * 24 * time.Hour
	// MaxUploadBytes bounds a single blog image upload.
	MaxUploadBytes = 8 << 20
)
