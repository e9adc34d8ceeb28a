package metadata

import (
	"encoding/json"
	"fmt"
	"time"
)

// Map keys used by the flat representation.
const (
	KeyID         = "id"
	KeyModifiedAt = "modifiedAt"
	KeyIsDeleted  = "isDeleted"
)

// Metadata describes one logical item known to a store.
type Metadata struct {
	// ID is the opaque stable identifier, unique within a store's namespace.
	ID string `json:"id"`

	// ModifiedAt is the timestamp of the last logical update. It advances
	// monotonically on each change, including deletion.
	ModifiedAt time.Time `json:"modifiedAt"`

	// IsDeleted marks the record as a tombstone.
	IsDeleted bool `json:"isDeleted"`
}

// Before reports whether m was modified strictly before other.
// Equal timestamps are not "before" in either direction, so two records with
// the same ModifiedAt never supersede each other even if their details differ.
func (m Metadata) Before(other Metadata) bool {
	return m.ModifiedAt.Before(other.ModifiedAt)
}

// ToMap returns the flat map representation of the record.
// ModifiedAt is rendered as an ISO-8601 string.
func (m Metadata) ToMap() map[string]any {
	return map[string]any{
		KeyID:         m.ID,
		KeyModifiedAt: m.ModifiedAt.Format(time.RFC3339Nano),
		KeyIsDeleted:  m.IsDeleted,
	}
}

// FromMap reconstructs a record from its flat map representation.
// The "isDeleted" key defaults to false when absent.
func FromMap(data map[string]any) (Metadata, error) {
	var m Metadata

	id, ok := data[KeyID].(string)
	if !ok {
		return m, fmt.Errorf("metadata: %q must be a string", KeyID)
	}
	m.ID = id

	raw, ok := data[KeyModifiedAt]
	if !ok {
		return m, fmt.Errorf("metadata: %q is required", KeyModifiedAt)
	}
	switch v := raw.(type) {
	case string:
		ts, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return m, fmt.Errorf("metadata: invalid %q: %w", KeyModifiedAt, err)
		}
		m.ModifiedAt = ts
	case time.Time:
		m.ModifiedAt = v
	default:
		return m, fmt.Errorf("metadata: %q must be an ISO-8601 string", KeyModifiedAt)
	}

	if raw, ok := data[KeyIsDeleted]; ok {
		deleted, ok := raw.(bool)
		if !ok {
			return m, fmt.Errorf("metadata: %q must be a bool", KeyIsDeleted)
		}
		m.IsDeleted = deleted
	}

	return m, nil
}

// ToJSON returns the JSON encoding of the record.
func (m Metadata) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FromJSON reconstructs a record from its JSON encoding.
// A missing "isDeleted" field defaults to false.
func FromJSON(data []byte) (Metadata, error) {
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return Metadata{}, fmt.Errorf("metadata: decode: %w", err)
	}
	return m, nil
}
