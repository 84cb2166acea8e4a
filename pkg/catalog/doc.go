// Package catalog discovers migration source files on disk.
//
// The catalog is built fresh on every run by scanning the configured
// migrations directory, excluding generated Snapshot/Designer artifacts
// and anything not matching the timestamp_name naming convention.
package catalog
