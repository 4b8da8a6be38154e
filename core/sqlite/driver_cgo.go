//go:build cgo_sqlite

package sqlite

import (
	sqliteexternal "github.com/FocuswithJustin/Compendium/contrib/sqlite-external"
)

const (
	driverName    = sqliteexternal.DriverName
	driverType    = "cgo"
	driverPackage = "github.com/mattn/go-sqlite3"
)

// fileDSN enables WAL and a busy timeout using mattn's query parameters.
func fileDSN(path string) string {
	return "file:" + path + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
}
