package model

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNormalize(t *testing.T) {
	d := Dataset{
		Records: []Record{
			{ID: "a", Category: "x", Importance: 0},
			{ID: "b", Category: "y", Importance: 25},
			{Category: "x", Importance: 5},
		},
		Links: []Link{
			{Source: "a", Target: "b"},
			{Source: "a", Target: "ghost"},
		},
	}
	d.Normalize()

	if d.Records[0].Importance != MinImportance {
		t.Errorf("low importance = %d, want %d", d.Records[0].Importance, MinImportance)
	}
	if d.Records[1].Importance != MaxImportance {
		t.Errorf("high importance = %d, want %d", d.Records[1].Importance, MaxImportance)
	}
	if d.Records[2].ID == "" {
		t.Error("empty id not generated")
	}
	if !d.Links[0].CrossCategory {
		t.Error("x->y link not marked cross-category")
	}
	if d.Links[1].CrossCategory {
		t.Error("dangling link marked cross-category")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		d       Dataset
		wantErr string
	}{
		{
			name: "valid",
			d: Dataset{
				Records: []Record{{ID: "a", Category: "x"}, {ID: "b", Category: "x"}},
				Links:   []Link{{Source: "a", Target: "b"}},
			},
		},
		{
			name:    "duplicate id",
			d:       Dataset{Records: []Record{{ID: "a"}, {ID: "a"}}},
			wantErr: "duplicate record id",
		},
		{
			name:    "empty id",
			d:       Dataset{Records: []Record{{}}},
			wantErr: "empty id",
		},
		{
			name: "dangling link",
			d: Dataset{
				Records: []Record{{ID: "a"}},
				Links:   []Link{{Source: "a", Target: "nope"}},
			},
			wantErr: "unknown record",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.d.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestReadDataset(t *testing.T) {
	input := `{
		"records": [
			{"id": "a", "category": "x", "importance": 7, "content": "first\nsecond"},
			{"id": "b", "category": "y", "importance": 99}
		],
		"links": [{"source": "a", "target": "b"}]
	}`
	d, err := ReadDataset(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if d.Records[1].Importance != MaxImportance {
		t.Errorf("importance = %d, want clamped to %d", d.Records[1].Importance, MaxImportance)
	}
	if !d.Links[0].CrossCategory {
		t.Error("cross-category flag not derived")
	}

	if _, err := ReadDataset(strings.NewReader(`{"records": [{"id": "a"}, {"id": "a"}]}`)); err == nil {
		t.Error("duplicate ids accepted")
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		max     int
		want    string
	}{
		{name: "short", content: "hello", max: 10, want: "hello"},
		{name: "first line only", content: "head\nbody", max: 10, want: "head"},
		{name: "truncated", content: "a very long title here", max: 10, want: "a very l.."},
		{name: "tiny max", content: "abcdef", max: 2, want: "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Record{Content: tt.content}
			if got := r.Title(tt.max); got != tt.want {
				t.Errorf("Title(%d) = %q, want %q", tt.max, got, tt.want)
			}
		})
	}
}

func TestSortKey(t *testing.T) {
	short := Record{Content: "brief"}
	if got := short.SortKey(); got != "brief" {
		t.Errorf("SortKey = %q, want %q", got, "brief")
	}

	// Truncation lands on a rune boundary, never mid-character.
	multi := Record{Content: strings.Repeat("é", 35)}
	key := multi.SortKey()
	if !utf8.ValidString(key) {
		t.Errorf("SortKey %q is not valid UTF-8", key)
	}
	if n := len([]rune(key)); n != 30 {
		t.Errorf("SortKey length = %d runes, want 30", n)
	}
}

func TestRegionKeyRoundTrip(t *testing.T) {
	key := RegionKey("engineering")
	name, ok := ParseRegionKey(key)
	if !ok || name != "engineering" {
		t.Errorf("ParseRegionKey(%q) = %q, %v", key, name, ok)
	}
	if _, ok := ParseRegionKey("plain-record-id"); ok {
		t.Error("record id parsed as region key")
	}
}

func TestCategoryNames(t *testing.T) {
	d := Dataset{
		Records:    []Record{{ID: "a", Category: "x"}},
		Categories: map[string]CategoryMetadata{"meta-only": {}},
	}
	names := d.CategoryNames()
	if !names["x"] || !names["meta-only"] {
		t.Errorf("names = %v", names)
	}
}
