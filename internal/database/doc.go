// Package database persists run outcomes to a SQLite database under
// the XDG data directory, so past mirroring runs can be audited.
package database
