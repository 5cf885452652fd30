package domain

import (
	"time"

	"github.com/google/uuid"
)

// TimeFormat is the ISO-8601 layout used for timestamps in records.
const TimeFormat = time.RFC3339Nano

// Record is the deterministic field-to-value mapping of an entity.
// It is what the transport layer serializes.
type Record map[string]any

// Fields is a partial update: record key to new value.
// Values arrive untyped (usually decoded JSON) and are checked by the validators.
type Fields map[string]any

// now is the clock used for timestamps. Tests may replace it.
var now = func() time.Time {
	return time.Now().UTC()
}

// Entity carries the identity and timestamps shared by every stored record.
type Entity struct {
	// ID is an opaque UUID assigned at creation. Never changes.
	ID string `json:"id"`

	// CreatedAt is the creation time.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the time of the last successful mutation.
	// Invariant: UpdatedAt >= CreatedAt.
	UpdatedAt time.Time `json:"updated_at"`
}

func newEntity() Entity {
	t := now()
	return Entity{
		ID:        uuid.NewString(),
		CreatedAt: t,
		UpdatedAt: t,
	}
}

// GetID returns the entity id.
func (e *Entity) GetID() string {
	return e.ID
}

// touch moves UpdatedAt forward. It always advances, even when the clock
// has not ticked since the previous mutation.
func (e *Entity) touch() {
	t := now()
	if !t.After(e.UpdatedAt) {
		t = e.UpdatedAt.Add(time.Nanosecond)
	}
	e.UpdatedAt = t
}

func (e *Entity) record() Record {
	return Record{
		"id":         e.ID,
		"created_at": e.CreatedAt.Format(TimeFormat),
		"updated_at": e.UpdatedAt.Format(TimeFormat),
	}
}

// appendUnique appends id unless already present. Reports whether it was added.
func appendUnique(ids []string, id string) ([]string, bool) {
	for _, existing := range ids {
		if existing == id {
			return ids, false
		}
	}
	return append(ids, id), true
}

// removeID returns ids without id. Reports whether it was present.
func removeID(ids []string, id string) ([]string, bool) {
	for i, existing := range ids {
		if existing == id {
			out := make([]string, 0, len(ids)-1)
			out = append(out, ids[:i]...)
			return append(out, ids[i+1:]...), true
		}
	}
	return ids, false
}

func copyIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// applyFields runs set for every key of fields that appears in keys, in the
// order of keys. Keys outside the list are ignored.
func applyFields(fields Fields, keys []string, set func(key string, value any) error) error {
	for _, key := range keys {
		value, ok := fields[key]
		if !ok {
			continue
		}
		if err := set(key, value); err != nil {
			return err
		}
	}
	return nil
}
