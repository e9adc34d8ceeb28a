package gormstore

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cloud-sync/core/metadata"
)

// Record is the persisted form of one sync item.
type Record struct {
	// ID is the item's stable identifier.
	ID string `gorm:"primaryKey;size:191"`
	// ModifiedAt is the timestamp of the last logical update.
	ModifiedAt time.Time `gorm:"index"`
	// IsDeleted marks the row as a tombstone.
	IsDeleted bool
	// Detail is the opaque payload.
	Detail []byte `gorm:"type:longblob"`
}

// TableName fixes the table independent of GORM's pluralization settings.
func (Record) TableName() string {
	return "sync_records"
}

// Adapter is the database side of a sync pair.
type Adapter struct {
	db *gorm.DB
}

// New creates an adapter over the given connection.
func New(db *gorm.DB) *Adapter {
	return &Adapter{db: db}
}

// AutoMigrate creates or updates the sync_records table.
func (a *Adapter) AutoMigrate() error {
	return a.db.AutoMigrate(&Record{})
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

// FetchMetadataList returns the metadata of every row, ordered by id.
// Only the metadata columns are selected; payloads stay in the database
// until an item actually transfers.
func (a *Adapter) FetchMetadataList(ctx context.Context) ([]metadata.Metadata, error) {
	var rows []Record
	err := a.db.WithContext(ctx).
		Select("id", "modified_at", "is_deleted").
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("gormstore: list metadata: %w", err)
	}

	list := make([]metadata.Metadata, len(rows))
	for i, row := range rows {
		list[i] = metadata.Metadata{
			ID:         row.ID,
			ModifiedAt: row.ModifiedAt,
			IsDeleted:  row.IsDeleted,
		}
	}
	return list, nil
}

// FetchDetail returns the payload of one row.
func (a *Adapter) FetchDetail(ctx context.Context, m metadata.Metadata) ([]byte, error) {
	var row Record
	err := a.db.WithContext(ctx).First(&row, "id = ?", m.ID).Error
	if err != nil {
		return nil, fmt.Errorf("gormstore: fetch detail %s: %w", m.ID, err)
	}
	return row.Detail, nil
}

// Save upserts the (metadata, detail) pair. Re-saving identical arguments
// is observationally a no-op.
func (a *Adapter) Save(ctx context.Context, m metadata.Metadata, detail []byte) error {
	row := Record{
		ID:         m.ID,
		ModifiedAt: m.ModifiedAt,
		IsDeleted:  m.IsDeleted,
		Detail:     detail,
	}
	err := a.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("gormstore: save %s: %w", m.ID, err)
	}
	return nil
}
