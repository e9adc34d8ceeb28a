// Package syncer provides a bidirectional reconciliation engine that keeps two
// independently addressable stores ("local" and "cloud") consistent by
// comparing metadata records and transferring only the items that differ.
//
// The engine never touches a concrete storage technology: callers supply two
// Adapter implementations (or six standalone functions via NewFromFuncs) and
// the engine orchestrates metadata fetching, diffing, transfer dispatch,
// progress reporting, cancellation and disposal on top of them.
//
// # Architecture
//
// A sync pass proceeds in three phases:
//
//  1. Fetch: both adapters' metadata lists are retrieved and indexed by id.
//  2. Diff: for each direction, an item is transferred when it is missing on
//     the destination or the destination's record is strictly older.
//  3. Transfer: the detail is fetched from the source and saved to the
//     destination; per-item failures are reported and skipped, never fatal.
//
// The Strategy selects which directions run and in what order; SyncConcurrent
// (or Simultaneously) runs both directions on concurrent goroutines joined
// before completion is reported.
//
// # Conflict resolution
//
// Conflicts are resolved strictly last-writer-wins by timestamp. The recency
// predicate is a strict "before": records with exactly equal timestamps never
// transfer in either direction, even when their details differ. The engine
// trusts metadata only and never inspects content, so divergent details under
// equal timestamps are deliberately preserved.
//
// # Progress reporting
//
// Every transition is emitted as a State value through an optional callback,
// invoked inline with the pass. Emissions are serialized, so a Saving state
// always precedes its Saved state and the Scanning state of a direction
// precedes that direction's first transfer.
//
// # Usage
//
//	engine := syncer.New(syncer.Spec[metadata.Metadata, []byte]{
//	    Local:    gormstore.New(db),
//	    Cloud:    miniostore.New(client, "backups", "sync"),
//	    Strategy: syncer.UploadFirst,
//	})
//	err := engine.Sync(ctx, func(s syncer.State) { ... })
//
//	// Periodic background syncing:
//	engine.AutoSync(5*time.Minute, onProgress)
//	defer engine.Dispose(context.Background())
package syncer
