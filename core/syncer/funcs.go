package syncer

import (
	"context"

	"go.uber.org/zap"

	"cloud-sync/core/metadata"
)

// Funcs bundles six standalone storage-access functions as an alternative to
// implementing two Adapters. The metadata type is fixed to metadata.Metadata
// so the id and recency predicate can be derived from the record itself.
type Funcs[D any] struct {
	// FetchLocalMetadataList returns every item known to the local store.
	FetchLocalMetadataList func(ctx context.Context) ([]metadata.Metadata, error)

	// FetchCloudMetadataList returns every item known to the cloud store.
	FetchCloudMetadataList func(ctx context.Context) ([]metadata.Metadata, error)

	// FetchLocalDetail returns the payload of one local item.
	FetchLocalDetail func(ctx context.Context, m metadata.Metadata) (D, error)

	// FetchCloudDetail returns the payload of one cloud item.
	FetchCloudDetail func(ctx context.Context, m metadata.Metadata) (D, error)

	// SaveToLocal upserts a (metadata, detail) pair into the local store.
	SaveToLocal func(ctx context.Context, m metadata.Metadata, detail D) error

	// SaveToCloud upserts a (metadata, detail) pair into the cloud store.
	SaveToCloud func(ctx context.Context, m metadata.Metadata, detail D) error

	// Strategy, PropagateErrors and Logger behave as in Spec.
	Strategy        Strategy
	PropagateErrors bool
	Logger          *zap.Logger
}

// NewFromFuncs creates a sync engine from six standalone functions. It wraps
// them in FuncAdapters and delegates to the same engine as New, so both
// construction styles share one algorithm.
func NewFromFuncs[D any](f Funcs[D]) *CloudSync[metadata.Metadata, D] {
	id := func(m metadata.Metadata) string { return m.ID }
	before := func(_ context.Context, current, other metadata.Metadata) (bool, error) {
		return current.Before(other), nil
	}

	local := &FuncAdapter[metadata.Metadata, D]{
		MetadataIDFunc:        id,
		IsBeforeFunc:          before,
		FetchMetadataListFunc: f.FetchLocalMetadataList,
		FetchDetailFunc:       f.FetchLocalDetail,
		SaveFunc:              f.SaveToLocal,
	}
	cloud := &FuncAdapter[metadata.Metadata, D]{
		MetadataIDFunc:        id,
		IsBeforeFunc:          before,
		FetchMetadataListFunc: f.FetchCloudMetadataList,
		FetchDetailFunc:       f.FetchCloudDetail,
		SaveFunc:              f.SaveToCloud,
	}

	return New(Spec[metadata.Metadata, D]{
		Local:           local,
		Cloud:           cloud,
		Strategy:        f.Strategy,
		PropagateErrors: f.PropagateErrors,
		Logger:          f.Logger,
	})
}
