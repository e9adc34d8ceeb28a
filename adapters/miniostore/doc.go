// Package miniostore implements the sync adapter contract on top of an
// S3-compatible bucket.
//
// Each item is stored as two objects under a configurable prefix:
//
//	<prefix>/meta/<id>.json   the metadata record (JSON)
//	<prefix>/data/<id>        the detail payload (raw bytes)
//
// Tombstoned items keep their metadata object but have no data object; the
// payload is removed when a deletion is saved. Listing metadata is a single
// paginated walk of the meta/ prefix, with one GET per record.
package miniostore
