// This file implements the snapshot codec: the whole collection as one JSON
// array, written under types.TopicsKey.
package topics

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/topics/pkg/types"
)

// ErrInvalidSnapshot is returned by DecodeSnapshot for values that are not a
// usable topic collection.
var ErrInvalidSnapshot = errors.New("invalid topics snapshot")

// EncodeSnapshot serializes the full collection. Nil link lists are written
// as empty arrays.
func EncodeSnapshot(topics []types.Topic) (string, error) {
	records := cloneTopics(topics)
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("marshaling snapshot: %w", err)
	}
	return string(data), nil
}

// DecodeSnapshot parses a serialized collection. Unknown fields are ignored.
// Records with an empty id or name, and duplicate ids, make the whole
// snapshot invalid.
func DecodeSnapshot(value string) ([]types.Topic, error) {
	var records []types.Topic
	if err := json.Unmarshal([]byte(value), &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	if records == nil {
		return nil, fmt.Errorf("%w: null collection", ErrInvalidSnapshot)
	}

	seen := make(map[string]bool, len(records))
	for i := range records {
		rec := &records[i]
		if rec.ID == "" {
			return nil, fmt.Errorf("%w: record %d has no id", ErrInvalidSnapshot, i)
		}
		if rec.Name == "" {
			return nil, fmt.Errorf("%w: record %q has no name", ErrInvalidSnapshot, rec.ID)
		}
		if seen[rec.ID] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidSnapshot, rec.ID)
		}
		seen[rec.ID] = true
		if rec.Links == nil {
			rec.Links = []string{}
		}
	}
	return records, nil
}
