// Package migrations contains all database migration files.
// Each migration file uses init() to call migration.Register().
// The CLI imports this package so every migration is registered
// before a runner command executes.
package migrations
