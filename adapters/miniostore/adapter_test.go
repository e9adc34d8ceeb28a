package miniostore

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cloud-sync/core/metadata"
	"cloud-sync/core/storage/mocks"
)

func testMeta(id string, deleted bool) metadata.Metadata {
	return metadata.Metadata{
		ID:         id,
		ModifiedAt: time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC),
		IsDeleted:  deleted,
	}
}

func objectChan(infos ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, info := range infos {
		ch <- info
	}
	close(ch)
	return ch
}

func metaBody(t *testing.T, m metadata.Metadata) io.ReadCloser {
	t.Helper()
	data, err := m.ToJSON()
	require.NoError(t, err)
	return io.NopCloser(bytes.NewReader(data))
}

func TestFetchMetadataList(t *testing.T) {
	client := new(mocks.Client)
	adapter := New(client, "test-bucket", "sync")

	client.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).
		Return(objectChan(
			minio.ObjectInfo{Key: "sync/meta/b.json"},
			minio.ObjectInfo{Key: "sync/meta/a.json"},
			minio.ObjectInfo{Key: "sync/meta/ignore.tmp"},
		))
	client.On("GetObject", mock.Anything, "test-bucket", "sync/meta/a.json", mock.Anything).
		Return(metaBody(t, testMeta("a", false)), nil)
	client.On("GetObject", mock.Anything, "test-bucket", "sync/meta/b.json", mock.Anything).
		Return(metaBody(t, testMeta("b", true)), nil)

	list, err := adapter.FetchMetadataList(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	// Sorted by id, non-json keys skipped.
	assert.Equal(t, "a", list[0].ID)
	assert.False(t, list[0].IsDeleted)
	assert.Equal(t, "b", list[1].ID)
	assert.True(t, list[1].IsDeleted)
	client.AssertExpectations(t)
}

func TestFetchMetadataList_ListError(t *testing.T) {
	client := new(mocks.Client)
	adapter := New(client, "test-bucket", "sync")

	client.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).
		Return(objectChan(minio.ObjectInfo{Err: assert.AnError}))

	_, err := adapter.FetchMetadataList(context.Background())
	assert.Error(t, err)
}

func TestFetchDetail(t *testing.T) {
	t.Run("ReadsDataObject", func(t *testing.T) {
		client := new(mocks.Client)
		adapter := New(client, "test-bucket", "sync")

		client.On("GetObject", mock.Anything, "test-bucket", "sync/data/a", mock.Anything).
			Return(io.NopCloser(bytes.NewReader([]byte("payload"))), nil)

		detail, err := adapter.FetchDetail(context.Background(), testMeta("a", false))
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), detail)
	})

	t.Run("TombstoneHasNoPayload", func(t *testing.T) {
		client := new(mocks.Client)
		adapter := New(client, "test-bucket", "sync")

		detail, err := adapter.FetchDetail(context.Background(), testMeta("a", true))
		require.NoError(t, err)
		assert.Nil(t, detail)
		client.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSave(t *testing.T) {
	t.Run("WritesDataThenMetadata", func(t *testing.T) {
		client := new(mocks.Client)
		adapter := New(client, "test-bucket", "sync")

		client.On("PutObject", mock.Anything, "test-bucket", "sync/data/a",
			mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, nil)
		client.On("PutObject", mock.Anything, "test-bucket", "sync/meta/a.json",
			mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, nil)

		err := adapter.Save(context.Background(), testMeta("a", false), []byte("payload"))
		require.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("TombstoneRemovesData", func(t *testing.T) {
		client := new(mocks.Client)
		adapter := New(client, "test-bucket", "sync")

		client.On("RemoveObject", mock.Anything, "test-bucket", "sync/data/a", mock.Anything).
			Return(nil)
		client.On("PutObject", mock.Anything, "test-bucket", "sync/meta/a.json",
			mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, nil)

		err := adapter.Save(context.Background(), testMeta("a", true), nil)
		require.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("DetailUploadFailure", func(t *testing.T) {
		client := new(mocks.Client)
		adapter := New(client, "test-bucket", "sync")

		client.On("PutObject", mock.Anything, "test-bucket", "sync/data/a",
			mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, assert.AnError)

		err := adapter.Save(context.Background(), testMeta("a", false), []byte("payload"))
		assert.Error(t, err)
		// The metadata object is never written when the payload failed.
		client.AssertNotCalled(t, "PutObject", mock.Anything, "test-bucket", "sync/meta/a.json",
			mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestIsBefore(t *testing.T) {
	adapter := New(new(mocks.Client), "b", "p")
	older := testMeta("x", false)
	newer := older
	newer.ModifiedAt = older.ModifiedAt.Add(time.Minute)

	got, err := adapter.IsBefore(context.Background(), older, newer)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = adapter.IsBefore(context.Background(), older, older)
	require.NoError(t, err)
	assert.False(t, got)
}
