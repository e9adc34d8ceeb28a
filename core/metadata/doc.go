// Package metadata defines the lightweight record describing one syncable item.
//
// A Metadata value carries only what the sync engine needs to decide whether an
// item must be transferred: a stable identifier, a modification timestamp, and
// a deletion flag. The full payload (the "detail") is never part of the record;
// adapters fetch it separately when a transfer is actually required.
//
// # Tombstones
//
// Deletion is represented as an ordinary record with IsDeleted set and a fresh
// ModifiedAt. It participates in the same recency comparison as any update, so
// a newer delete wins over an older edit and a newer edit un-deletes an item.
//
// # Serialization
//
// ToMap/FromMap and ToJSON/FromJSON convert a record to and from a flat
// representation with the keys "id", "modifiedAt" (ISO-8601) and "isDeleted".
// The round trip is lossless for all three fields, and "isDeleted" defaults to
// false when absent on read.
package metadata
