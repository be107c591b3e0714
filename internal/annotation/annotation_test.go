package annotation

import (
	"testing"
)

func TestDecodeCollectionPreservesOrder(t *testing.T) {
	data := []byte(`{
		"note-3": {"@id": "a3", "on": {"full": "c1", "selector": {"@type": "oa:FragmentSelector", "value": "t=3,4"}}},
		"note-1": {"@id": "a1", "on": {"full": "c1", "selector": {"@type": "oa:FragmentSelector", "value": "t=1,2"}}},
		"note-2": {"@id": "a2", "on": {"full": "c1", "selector": {"@type": "oa:FragmentSelector", "value": "t=2,3"}}}
	}`)

	groups, err := DecodeCollection(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	wantOrder := []string{"note-3", "note-1", "note-2"}
	if len(groups) != len(wantOrder) {
		t.Fatalf("group count: got %d, want %d", len(groups), len(wantOrder))
	}
	for i, want := range wantOrder {
		if groups[i].ID != want {
			t.Errorf("group %d: got %q, want %q", i, groups[i].ID, want)
		}
	}
}

func TestDecodeCollectionEntryForms(t *testing.T) {
	data := []byte(`{
		"single": {"@id": "a1", "on": {"full": "c1", "selector": {"@type": "oa:FragmentSelector", "value": "t=1,2"}}},
		"list": [
			{"@id": "a2", "on": {"full": "c1", "selector": {"@type": "oa:FragmentSelector", "value": "t=2,3"}}},
			{"@id": "a3", "on": {"full": "c2", "selector": {"@type": "oa:FragmentSelector", "value": "t=3,4"}}}
		]
	}`)

	groups, err := DecodeCollection(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("group count: got %d, want 2", len(groups))
	}
	if len(groups[0].Entries) != 1 {
		t.Errorf("single entry count: got %d, want 1", len(groups[0].Entries))
	}
	if len(groups[1].Entries) != 2 {
		t.Errorf("list entry count: got %d, want 2", len(groups[1].Entries))
	}
	if groups[1].Entries[1].On.Full != "c2" {
		t.Errorf("entry source: got %q, want %q", groups[1].Entries[1].On.Full, "c2")
	}
}

func TestDecodeCollectionRejectsNonObject(t *testing.T) {
	if _, err := DecodeCollection([]byte(`["not", "an", "object"]`)); err == nil {
		t.Error("expected error for array document")
	}
}

func TestEntryAccepted(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  bool
	}{
		{
			name: "fragment selector with source",
			entry: Entry{On: Target{
				Full:     "https://example.org/canvas/1",
				Selector: Selector{Type: "oa:FragmentSelector", Value: "t=1,2"},
			}},
			want: true,
		},
		{
			name: "bare FragmentSelector type",
			entry: Entry{On: Target{
				Full:     "https://example.org/canvas/1",
				Selector: Selector{Type: "FragmentSelector", Value: "t=1,2"},
			}},
			want: true,
		},
		{
			name: "missing source",
			entry: Entry{On: Target{
				Selector: Selector{Type: "oa:FragmentSelector", Value: "t=1,2"},
			}},
			want: false,
		},
		{
			name: "missing selector type",
			entry: Entry{On: Target{
				Full:     "https://example.org/canvas/1",
				Selector: Selector{Value: "t=1,2"},
			}},
			want: false,
		},
		{
			name: "wrong selector type",
			entry: Entry{On: Target{
				Full:     "https://example.org/canvas/1",
				Selector: Selector{Type: "oa:SvgSelector", Value: "..."},
			}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.Accepted(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
