package status

import (
	"errors"
	"fmt"
	"testing"

	"cloud-sync/core/metadata"
	"cloud-sync/core/syncer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestServiceRecordsPass(t *testing.T) {
	svc := NewService(zap.NewNop())
	progress := svc.Progress()

	item := metadata.Metadata{ID: "note-1"}
	progress(syncer.FetchingLocalMetadata{})
	progress(syncer.FetchingCloudMetadata{})
	progress(syncer.ScanningCloud{})
	progress(syncer.SavingToCloud[metadata.Metadata]{Metadata: item})
	progress(syncer.SavedToCloud[metadata.Metadata]{Metadata: item})
	progress(syncer.ScanningLocal{})
	progress(syncer.SavingToLocal[metadata.Metadata]{Metadata: item})
	progress(syncer.SavedToLocal[metadata.Metadata]{Metadata: item})
	progress(syncer.SyncCompleted{})

	sum := svc.Snapshot()
	assert.Equal(t, "idle", sum.Phase)
	assert.Equal(t, 1, sum.Uploaded)
	assert.Equal(t, 1, sum.Downloaded)
	assert.Equal(t, 0, sum.Errors)
	require.NotNil(t, sum.LastCompleted)

	events := svc.Events()
	require.Len(t, events, 9)
	assert.Equal(t, "fetching_local_metadata", events[0].State)
	assert.Equal(t, "saved_to_cloud", events[4].State)
	assert.Equal(t, "note-1", events[4].ItemID)
	assert.Equal(t, "sync_completed", events[8].State)
}

func TestServiceCountsErrorsAndRejections(t *testing.T) {
	svc := NewService(zap.NewNop())

	svc.Record(syncer.SyncError{Err: errors.New("bucket unreachable")})
	svc.Record(syncer.InProgress{})
	svc.Record(syncer.SyncCancelled{})

	sum := svc.Snapshot()
	assert.Equal(t, 1, sum.Errors)
	assert.Equal(t, 1, sum.RejectedRuns)
	assert.Equal(t, "idle", sum.Phase)
	assert.Nil(t, sum.LastCompleted)

	events := svc.Events()
	require.Len(t, events, 3)
	assert.Equal(t, "sync_error", events[0].State)
	assert.Equal(t, "bucket unreachable", events[0].Error)
}

func TestServiceBoundsEventRing(t *testing.T) {
	svc := NewService(zap.NewNop())

	for i := 0; i < maxEvents+10; i++ {
		svc.Record(syncer.SavedToCloud[metadata.Metadata]{
			Metadata: metadata.Metadata{ID: fmt.Sprintf("item-%d", i)},
		})
	}

	events := svc.Events()
	require.Len(t, events, maxEvents)
	assert.Equal(t, "item-10", events[0].ItemID)
	assert.Equal(t, fmt.Sprintf("item-%d", maxEvents+9), events[len(events)-1].ItemID)
	assert.Equal(t, maxEvents+10, svc.Snapshot().Uploaded)
}
