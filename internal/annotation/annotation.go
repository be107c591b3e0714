// Package annotation models the temporal and spatial annotation
// collections: JSON objects mapping an external note identifier to one
// annotation entry or a list of them.
//
// Collections are decoded into an explicit ordered sequence of
// (id, entries) groups. Document order is part of the observable
// contract — duplicate fragments under one id resolve last-write-wins —
// so the decoder preserves it instead of round-tripping through a map.
package annotation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Selector is the fragment selector attached to an annotation target.
type Selector struct {
	Type  string `json:"@type"`
	Value string `json:"value"`
}

// Target is the resource an annotation points at: a source locator plus
// a selector narrowing it to a time span or page region.
type Target struct {
	Full     string   `json:"full"`
	Selector Selector `json:"selector"`
}

// Entry is one raw annotation record keyed under an external note id.
type Entry struct {
	ID string `json:"@id"`
	On Target `json:"on"`
}

// Accepted reports whether the entry carries usable evidence: a
// non-empty source locator and a selector declared as a fragment
// selector. Entries failing this are expected noise, not corruption.
func (e Entry) Accepted() bool {
	return e.On.Full != "" && strings.HasSuffix(e.On.Selector.Type, "FragmentSelector")
}

// Group is one external id with its annotation entries, in document
// order.
type Group struct {
	ID      string
	Entries []Entry
}

// DecodeCollection parses a collection document into ordered groups.
// Each value may be a single entry object or an array of entries.
func DecodeCollection(data []byte) ([]Group, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to decode collection: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("collection must be a JSON object, got %v", tok)
	}

	var groups []Group
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to decode collection key: %w", err)
		}
		id, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected collection key %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to decode entries for %q: %w", id, err)
		}

		entries, err := decodeEntries(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode entries for %q: %w", id, err)
		}
		groups = append(groups, Group{ID: id, Entries: entries})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to decode collection: %w", err)
	}
	return groups, nil
}

// decodeEntries accepts either a single entry object or an array.
func decodeEntries(raw json.RawMessage) ([]Entry, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var entries []Entry
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, err
		}
		return entries, nil
	}
	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, err
	}
	return []Entry{entry}, nil
}
