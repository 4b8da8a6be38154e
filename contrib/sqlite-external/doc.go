// Package sqliteexternal registers the cgo SQLite driver for the render
// cache store.
//
// The store uses the pure Go modernc.org/sqlite driver unless the binary is
// built with the cgo_sqlite tag:
//
//	CGO_ENABLED=1 go build -tags cgo_sqlite ./cmd/compendium
//
// With the tag set, core/sqlite imports this package and opens databases
// through github.com/mattn/go-sqlite3 instead. Large caches prune and load
// noticeably faster that way, at the cost of a C toolchain in the build.
package sqliteexternal
