package database

import "time"

// Pool sizing and startup
const (
	// MinPoolConns is also the floor applied to MaxConns
	MinPoolConns = 2

	DefaultConnectAttempts = 5
	DefaultConnectBackoff  = 500 * time.Millisecond
	PingTimeout            = 3 * time.Second
)

const (
	ErrMsgParseConnString         = "invalid contest store connection string"
	ErrMsgCreatePool              = "failed to create contest store pool"
	ErrMsgPingDatabase            = "contest store did not answer ping"
	ErrMsgFailedToLoadMigrations  = "failed to load migrations"
	ErrMsgFailedToApplyMigrations = "failed to apply migrations"
)

const (
	LogMsgConnected        = "Contest store connected"
	LogMsgPingRetry        = "Contest store not ready, retrying"
	LogMsgMigrationApplied = "Applied migration"
)
