// Package gormstore implements the sync adapter contract on top of a
// relational database via GORM.
//
// Each item occupies one row of the sync_records table, carrying the
// metadata columns next to the payload blob. Saves are idempotent upserts,
// and metadata listing selects only the metadata columns so large payloads
// never travel during the diff phase.
package gormstore
