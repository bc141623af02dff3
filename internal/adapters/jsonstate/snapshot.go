package jsonstate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"focusly/internal/ports"
)

// Storage keys, shared with browser exports of the same data
const (
	KeyNodes = "focusly_nodes"
	KeyStats = "focusly_stats"
	KeyTopic = "focusly_topic"
)

// Encode writes snap as one JSON object keyed by the storage keys
func Encode(w io.Writer, snap *ports.Snapshot) error {
	doc := map[string]any{
		KeyNodes: snap.Nodes,
		KeyStats: snap.Stats,
		KeyTopic: snap.Topic,
	}
	if snap.Nodes == nil {
		doc[KeyNodes] = []any{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// Decode reads a snapshot. Each value may be the JSON document itself or a
// string holding it, which is how browser storage dumps look.
func Decode(r io.Reader) (*ports.Snapshot, error) {
	var doc map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	snap := &ports.Snapshot{}

	if raw, ok := doc[KeyNodes]; ok {
		nodes, err := DecodeNodes(unwrapString(raw))
		if err != nil {
			return nil, err
		}
		snap.Nodes = nodes
	}

	stats, err := DecodeStats(unwrapString(doc[KeyStats]))
	if err != nil {
		return nil, err
	}
	snap.Stats = stats

	if raw, ok := doc[KeyTopic]; ok {
		var topic string
		if err := json.Unmarshal(raw, &topic); err != nil {
			return nil, fmt.Errorf("failed to decode topic: %w", err)
		}
		snap.Topic = topic
	}
	return snap, nil
}

// unwrapString returns the inner document when raw is a JSON string
func unwrapString(raw json.RawMessage) []byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return trimmed
	}
	var inner string
	if err := json.Unmarshal(trimmed, &inner); err != nil {
		return trimmed
	}
	return []byte(inner)
}

// WriteFile encodes snap to path, creating parent directories
func WriteFile(path string, snap *ports.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Encode(f, snap); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile decodes the snapshot at path
func ReadFile(path string) (*ports.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}
