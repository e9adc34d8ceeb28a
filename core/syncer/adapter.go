package syncer

import "context"

// Adapter defines the storage-access contract for one side of a sync pair.
// The engine is generic over the metadata type M and the detail type D; it
// treats both as opaque and only moves them between the two adapters.
//
// Implementations must be safe for concurrent use when the engine runs with
// SyncConcurrent or the Simultaneously strategy; the engine imposes no
// locking of its own on adapter calls.
type Adapter[M, D any] interface {
	// MetadataID returns the unique identifier of a metadata record.
	// It must be pure and stable: the same record always yields the same id.
	MetadataID(metadata M) string

	// IsBefore reports whether current was modified strictly before other.
	// For timestamp-based stores this is a plain ModifiedAt comparison, but
	// implementations may consult the store itself, hence the context.
	//
	// The predicate is strict: records that compare equal are not "before"
	// each other in either direction, so equal-timestamp items never
	// transfer even when their details differ.
	IsBefore(ctx context.Context, current, other M) (bool, error)

	// FetchMetadataList returns the metadata of every known item.
	// The result may be empty and must not contain duplicate ids.
	// The returned order must be deterministic for a fixed store state;
	// it is the order in which the engine processes items.
	FetchMetadataList(ctx context.Context) ([]M, error)

	// FetchDetail returns the full payload for a metadata record.
	FetchDetail(ctx context.Context, metadata M) (D, error)

	// Save idempotently upserts a (metadata, detail) pair. Saving the same
	// arguments twice must be observationally a no-op.
	Save(ctx context.Context, metadata M, detail D) error
}

// FuncAdapter implements Adapter from standalone functions. All fields must
// be set; the zero value is not usable.
type FuncAdapter[M, D any] struct {
	MetadataIDFunc        func(metadata M) string
	IsBeforeFunc          func(ctx context.Context, current, other M) (bool, error)
	FetchMetadataListFunc func(ctx context.Context) ([]M, error)
	FetchDetailFunc       func(ctx context.Context, metadata M) (D, error)
	SaveFunc              func(ctx context.Context, metadata M, detail D) error
}

func (a *FuncAdapter[M, D]) MetadataID(metadata M) string {
	return a.MetadataIDFunc(metadata)
}

func (a *FuncAdapter[M, D]) IsBefore(ctx context.Context, current, other M) (bool, error) {
	return a.IsBeforeFunc(ctx, current, other)
}

func (a *FuncAdapter[M, D]) FetchMetadataList(ctx context.Context) ([]M, error) {
	return a.FetchMetadataListFunc(ctx)
}

func (a *FuncAdapter[M, D]) FetchDetail(ctx context.Context, metadata M) (D, error) {
	return a.FetchDetailFunc(ctx, metadata)
}

func (a *FuncAdapter[M, D]) Save(ctx context.Context, metadata M, detail D) error {
	return a.SaveFunc(ctx, metadata, detail)
}
