package db

import "errors"

// ErrKeyNotFound is returned when a key or row does not exist.
var ErrKeyNotFound = errors.New("db: key not found")

// Op constants name the failing command or statement for error context.
const (
	OpPing    = "PING"
	OpDel     = "DEL"
	OpExists  = "EXISTS"
	OpScan    = "SCAN"
	OpGet     = "GET"
	OpSet     = "SET"
	OpIncr    = "INCR"
	OpJSONSet = "JSON.SET"
	OpJSONGet = "JSON.GET"
	OpSelect  = "SELECT"
	OpUpsert  = "UPSERT"
	OpMigrate = "MIGRATE"
	OpOpen    = "OPEN"
	OpDecode  = "DECODE"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
