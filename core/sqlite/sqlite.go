// Package sqlite opens SQLite databases through whichever driver the build
// selected: modernc.org/sqlite by default, or mattn/go-sqlite3 when built with
// the cgo_sqlite tag. Callers use Open and friends rather than sql.Open so the
// driver name never leaks out of this package.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// DriverName returns the database/sql driver name: "sqlite" or "sqlite3".
func DriverName() string {
	return driverName
}

// DriverType returns "cgo" or "purego".
func DriverType() string {
	return driverType
}

// IsCGO returns true if the CGO implementation is being used.
func IsCGO() bool {
	return driverType == "cgo"
}

// Open opens dataSourceName with the selected driver.
func Open(dataSourceName string) (*sql.DB, error) {
	return sql.Open(driverName, dataSourceName)
}

// OpenReadOnly opens a SQLite database file in read-only mode.
func OpenReadOnly(path string) (*sql.DB, error) {
	return Open("file:" + path + "?mode=ro")
}

// OpenFile opens a database file for shared read-write use: WAL journal,
// a busy timeout, and a ping to surface open errors early.
func OpenFile(ctx context.Context, path string) (*sql.DB, error) {
	db, err := Open(fileDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return db, nil
}

// OpenMemory opens a private in-memory database. The pool is limited to one
// connection so every query sees the same database.
func OpenMemory() (*sql.DB, error) {
	db, err := Open(":memory:")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// Info describes the selected driver.
type Info struct {
	DriverName string `json:"driver_name"`
	DriverType string `json:"driver_type"`
	IsCGO      bool   `json:"is_cgo"`
	Package    string `json:"package"`
}

// GetInfo describes the selected driver.
func GetInfo() Info {
	return Info{
		DriverName: driverName,
		DriverType: driverType,
		IsCGO:      IsCGO(),
		Package:    driverPackage,
	}
}
