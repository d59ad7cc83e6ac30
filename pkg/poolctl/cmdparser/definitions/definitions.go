package definitions

import "time"

const (
	DefaultInterval    = 5 * time.Second
	DefaultPermissions = "all"
)

// Global settings, Read from poolctl flags
var (
	Server      string
	Timeout     time.Duration
	Interval    time.Duration
	Debug       bool
	Permissions string
)
