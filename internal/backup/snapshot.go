// Package backup implements versioned whole-state snapshots of every
// persisted domain, with atomic export, schema validation and path-confined
// import.
package backup

import (
	"bytes"
	"encoding/json"
	"fmt"

	"lifetracker/internal/store"
)

// Version is the snapshot schema version this engine writes and the newest
// it will read. A snapshot whose version exceeds it is forward-incompatible
// and rejected before any data is touched.
const Version = 1

// Snapshot is the backup file envelope.
type Snapshot struct {
	Version   int     `json:"version"`
	CreatedAt string  `json:"created_at"`
	Timestamp int64   `json:"timestamp"`
	Data      Payload `json:"data"`
}

// Payload carries the per-domain documents. Every section is optional: a
// partial backup is valid and restores only the sections it contains.
type Payload struct {
	Settings        *store.Settings   `json:"settings,omitempty"`
	PersistentNotes string            `json:"persistent_notes,omitempty"`
	Quests          *store.Quests     `json:"quests,omitempty"`
	Logs            store.Logs        `json:"logs,omitempty"`
	Reminders       []*store.Reminder `json:"reminders,omitempty"`
}

// SchemaError reports a structurally invalid or forward-incompatible
// snapshot. It is raised before any domain write happens.
type SchemaError struct {
	Reason string
}

func (e SchemaError) Error() string {
	return "invalid backup: " + e.Reason
}

// PathError reports a rejected backup file path.
type PathError struct {
	Path   string
	Reason string
}

func (e PathError) Error() string {
	return fmt.Sprintf("unsafe backup path %q: %s", e.Path, e.Reason)
}

// ValidateSnapshot checks the envelope of an already-decoded snapshot.
func ValidateSnapshot(s *Snapshot) error {
	if s == nil {
		return SchemaError{Reason: "empty snapshot"}
	}
	if s.Version < 1 {
		return SchemaError{Reason: "missing or non-positive version"}
	}
	if s.Version > Version {
		return SchemaError{Reason: fmt.Sprintf("version %d is newer than supported version %d", s.Version, Version)}
	}
	return nil
}

// decodeSnapshot parses raw backup bytes, mapping malformed versions and
// mistyped sections to SchemaError so nothing malformed reaches a restore.
func decodeSnapshot(data []byte) (*Snapshot, error) {
	var probe struct {
		Version *json.Number `json:"version"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&probe); err != nil {
		return nil, SchemaError{Reason: "not a JSON object: " + err.Error()}
	}
	if probe.Version == nil {
		return nil, SchemaError{Reason: "version is missing"}
	}
	if _, err := probe.Version.Int64(); err != nil {
		return nil, SchemaError{Reason: fmt.Sprintf("version %q is not an integer", probe.Version.String())}
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, SchemaError{Reason: "malformed section: " + err.Error()}
	}
	if err := ValidateSnapshot(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
