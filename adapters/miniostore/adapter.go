package miniostore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"

	"cloud-sync/core/metadata"
	"cloud-sync/core/storage"
)

// Adapter is the object-store side of a sync pair.
type Adapter struct {
	client storage.Client
	bucket string
	prefix string
}

// New creates an adapter reading and writing under prefix in bucket.
func New(client storage.Client, bucket, prefix string) *Adapter {
	return &Adapter{client: client, bucket: bucket, prefix: prefix}
}

func (a *Adapter) metaKey(id string) string {
	return path.Join(a.prefix, "meta", id+".json")
}

func (a *Adapter) dataKey(id string) string {
	return path.Join(a.prefix, "data", id)
}

// MetadataID returns the record's id.
func (a *Adapter) MetadataID(m metadata.Metadata) string {
	return m.ID
}

// IsBefore compares records by modification timestamp. The comparison is
// strict, so equal timestamps are not before each other.
func (a *Adapter) IsBefore(_ context.Context, current, other metadata.Metadata) (bool, error) {
	return current.Before(other), nil
}

// FetchMetadataList walks the meta/ prefix and decodes every record.
// The result is sorted by id so passes process items deterministically.
func (a *Adapter) FetchMetadataList(ctx context.Context) ([]metadata.Metadata, error) {
	listPrefix := path.Join(a.prefix, "meta") + "/"
	var list []metadata.Metadata

	for info := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{
		Prefix:    listPrefix,
		Recursive: true,
	}) {
		if info.Err != nil {
			return nil, fmt.Errorf("miniostore: list %s: %w", listPrefix, info.Err)
		}
		if !strings.HasSuffix(info.Key, ".json") {
			continue
		}
		m, err := a.readMetadata(ctx, info.Key)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}

	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (a *Adapter) readMetadata(ctx context.Context, key string) (metadata.Metadata, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return metadata.Metadata{}, fmt.Errorf("miniostore: get %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return metadata.Metadata{}, fmt.Errorf("miniostore: read %s: %w", key, err)
	}
	m, err := metadata.FromJSON(data)
	if err != nil {
		return metadata.Metadata{}, fmt.Errorf("miniostore: decode %s: %w", key, err)
	}
	return m, nil
}

// FetchDetail returns the item's payload. Tombstones carry no payload, so a
// deleted record yields nil without touching the store.
func (a *Adapter) FetchDetail(ctx context.Context, m metadata.Metadata) ([]byte, error) {
	if m.IsDeleted {
		return nil, nil
	}

	obj, err := a.client.GetObject(ctx, a.bucket, a.dataKey(m.ID), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("miniostore: get detail %s: %w", m.ID, err)
	}
	defer obj.Close()

	detail, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("miniostore: read detail %s: %w", m.ID, err)
	}
	return detail, nil
}

// Save upserts the (metadata, detail) pair. The data object is written
// before the metadata object so a listed record always has its payload;
// for tombstones the data object is removed instead.
func (a *Adapter) Save(ctx context.Context, m metadata.Metadata, detail []byte) error {
	if m.IsDeleted {
		if err := a.client.RemoveObject(ctx, a.bucket, a.dataKey(m.ID), minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("miniostore: remove detail %s: %w", m.ID, err)
		}
	} else {
		_, err := a.client.PutObject(ctx, a.bucket, a.dataKey(m.ID),
			bytes.NewReader(detail), int64(len(detail)), minio.PutObjectOptions{
				ContentType: "application/octet-stream",
			})
		if err != nil {
			return fmt.Errorf("miniostore: put detail %s: %w", m.ID, err)
		}
	}

	encoded, err := m.ToJSON()
	if err != nil {
		return fmt.Errorf("miniostore: encode metadata %s: %w", m.ID, err)
	}
	_, err = a.client.PutObject(ctx, a.bucket, a.metaKey(m.ID),
		bytes.NewReader(encoded), int64(len(encoded)), minio.PutObjectOptions{
			ContentType: "application/json",
		})
	if err != nil {
		return fmt.Errorf("miniostore: put metadata %s: %w", m.ID, err)
	}
	return nil
}
