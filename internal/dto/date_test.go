package dto

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "Valid date",
			input: "2024-03-15",
			want:  "2024-03-15",
		},
		{
			name:  "Leap day",
			input: "2024-02-29",
			want:  "2024-02-29",
		},
		{
			name:    "Non-leap February 29th",
			input:   "2023-02-29",
			wantErr: true,
		},
		{
			name:    "Wrong layout",
			input:   "15/03/2024",
			wantErr: true,
		},
		{
			name:    "Date with time component",
			input:   "2024-03-15T10:00:00Z",
			wantErr: true,
		},
		{
			name:    "Empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected wantErr %v, got %v", tt.wantErr, err)
			}
			if err == nil && got.String() != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got.String())
			}
		})
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}

	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(raw) != `"2024-03-15"` {
		t.Errorf("Expected \"2024-03-15\", got %s", raw)
	}

	var back Date
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back.String() != d.String() {
		t.Errorf("Expected %s, got %s", d, back)
	}
}

func TestDateUnmarshalRejectsEmptyAndNull(t *testing.T) {
	for _, raw := range []string{`""`, `null`} {
		var d Date
		if err := json.Unmarshal([]byte(raw), &d); err == nil {
			t.Errorf("Expected %s to be rejected", raw)
		}
	}
}

func TestNewDateTruncatesTime(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	d := NewDate(time.Date(2024, 3, 15, 23, 45, 12, 0, loc))

	if d.String() != "2024-03-15" {
		t.Errorf("Expected 2024-03-15, got %s", d)
	}
	if h, m, s := d.Clock(); h != 0 || m != 0 || s != 0 {
		t.Errorf("Expected midnight, got %02d:%02d:%02d", h, m, s)
	}
}

func TestDateAddDaysAndAfter(t *testing.T) {
	start, _ := ParseDate("2024-02-28")

	next := start.AddDays(1)
	if next.String() != "2024-02-29" {
		t.Errorf("Expected 2024-02-29, got %s", next)
	}
	if !next.After(start) {
		t.Error("Expected next day to be after start")
	}
	if start.After(start) {
		t.Error("Expected a date not to be after itself")
	}
}
