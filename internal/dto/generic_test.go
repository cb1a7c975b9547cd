package dto

import (
	"testing"

	apperrors "github.com/ashdowne/daybook/internal/errors"
	"github.com/google/uuid"
)

func TestParseUUIDList(t *testing.T) {
	valid := uuid.New()

	tests := []struct {
		name    string
		raw     []string
		wantLen int
		wantErr bool
	}{
		{
			name:    "Empty input",
			raw:     nil,
			wantLen: 0,
		},
		{
			name:    "Single valid id",
			raw:     []string{valid.String()},
			wantLen: 1,
		},
		{
			name:    "Whitespace trimmed",
			raw:     []string{"  " + valid.String() + " "},
			wantLen: 1,
		},
		{
			name:    "One malformed id",
			raw:     []string{valid.String(), "not-a-uuid"},
			wantErr: true,
		},
		{
			name:    "All malformed",
			raw:     []string{"x", "y"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := ParseUUIDList(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected wantErr %v, got %v", tt.wantErr, err)
			}
			if err != nil {
				if !apperrors.IsCode(err, apperrors.CodeValidation) {
					t.Errorf("Expected validation error, got %v", err)
				}
				return
			}
			if len(ids) != tt.wantLen {
				t.Errorf("Expected %d ids, got %d", tt.wantLen, len(ids))
			}
		})
	}
}

func TestPageQueryToStoreNormalizes(t *testing.T) {
	tests := []struct {
		name     string
		query    PageQuery
		wantPage int
		wantSize int
	}{
		{"Zero value gets defaults", PageQuery{}, 1, 100},
		{"Valid values pass through", PageQuery{CurrentPage: 3, PageSize: 25}, 3, 25},
		{"Negative page reset", PageQuery{CurrentPage: -1, PageSize: 25}, 1, 25},
		{"Oversized page capped", PageQuery{CurrentPage: 1, PageSize: 99999}, 1, 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.query.ToStore()
			if got.CurrentPage != tt.wantPage || got.PageSize != tt.wantSize {
				t.Errorf("Expected %d/%d, got %d/%d", tt.wantPage, tt.wantSize, got.CurrentPage, got.PageSize)
			}
		})
	}
}

func TestSortQueryToStoreDefaults(t *testing.T) {
	got := SortQuery{}.ToStore()
	if got.SortBy != "id" || got.SortDirection != "asc" {
		t.Errorf("Expected id/asc defaults, got %s/%s", got.SortBy, got.SortDirection)
	}

	got = SortQuery{SortBy: "created_at", SortDirection: "desc"}.ToStore()
	if got.SortBy != "created_at" || got.SortDirection != "desc" {
		t.Errorf("Expected created_at/desc, got %s/%s", got.SortBy, got.SortDirection)
	}
}

func TestNewPaginated(t *testing.T) {
	page := PageQuery{CurrentPage: 2, PageSize: 10}
	sort := SortQuery{SortBy: "created_at", SortDirection: "desc"}

	resp := NewPaginated(page, sort, 25, []string{"a", "b"})

	if resp.CurrentPage != 2 || resp.PageSize != 10 {
		t.Errorf("Expected page 2 size 10, got %d/%d", resp.CurrentPage, resp.PageSize)
	}
	if resp.TotalRecords != 25 {
		t.Errorf("Expected 25 total records, got %d", resp.TotalRecords)
	}
	if resp.TotalPages != 3 {
		t.Errorf("Expected 3 total pages, got %d", resp.TotalPages)
	}
	if resp.SortBy != "created_at" || resp.SortDirection != "desc" {
		t.Errorf("Expected sort echoed back, got %s %s", resp.SortBy, resp.SortDirection)
	}
}

func TestNewPaginatedNilData(t *testing.T) {
	resp := NewPaginated[string](PageQuery{CurrentPage: 1, PageSize: 100}, SortQuery{SortBy: "id", SortDirection: "asc"}, 0, nil)

	// The data field serializes as [] rather than null.
	if resp.Data == nil {
		t.Error("Expected empty slice, got nil")
	}
	if resp.TotalPages != 0 {
		t.Errorf("Expected 0 total pages, got %d", resp.TotalPages)
	}
}

func TestParsePatchPayloads(t *testing.T) {
	id := uuid.New()

	t.Run("Valid patch preserves nulls and drops id from changes", func(t *testing.T) {
		patches, err := ParsePatchPayloads([]map[string]any{
			{"id": id.String(), "name": "rose", "size": nil},
		})
		if err != nil {
			t.Fatalf("ParsePatchPayloads failed: %v", err)
		}
		if len(patches) != 1 {
			t.Fatalf("Expected 1 patch, got %d", len(patches))
		}
		p := patches[0]
		if p.ID != id {
			t.Errorf("Expected id %s, got %s", id, p.ID)
		}
		if _, ok := p.Changes["id"]; ok {
			t.Error("Expected id to be removed from changes")
		}
		if v, ok := p.Changes["size"]; !ok || v != nil {
			t.Errorf("Expected explicit null to survive, got %v present=%v", v, ok)
		}
		if p.Changes["name"] != "rose" {
			t.Errorf("Expected name rose, got %v", p.Changes["name"])
		}
	})

	errorCases := []struct {
		name  string
		items []map[string]any
	}{
		{"Empty body", nil},
		{"Missing id", []map[string]any{{"name": "x"}}},
		{"Non-string id", []map[string]any{{"id": 42}}},
		{"Malformed uuid", []map[string]any{{"id": "nope"}}},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePatchPayloads(tt.items); err == nil {
				t.Error("Expected an error")
			} else if !apperrors.IsCode(err, apperrors.CodeValidation) {
				t.Errorf("Expected validation error, got %v", err)
			}
		})
	}
}
