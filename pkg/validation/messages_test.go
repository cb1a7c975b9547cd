package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestDefaultMessage(t *testing.T) {
	tests := []struct {
		name  string
		field string
		tag   string
		want  string
	}{
		{"Required field", "Email", "required", "email must not be empty"},
		{"Email format", "Email", "email", "email must be a valid email address"},
		{"Rating lower bound", "SleepQuality", "gte", "sleepquality is below the allowed minimum"},
		{"Rating upper bound", "SleepQuality", "lte", "sleepquality is above the allowed maximum"},
		{"Date format", "StartDate", "dateformat", "startdate must be a date in YYYY-MM-DD format"},
		{"Unknown tag falls back", "Thing", "hexadecimal", "thing is not valid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultMessage(tt.field, tt.tag); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	type payload struct {
		Email string  `validate:"required,email"`
		Mood  float64 `validate:"gte=1,lte=7"`
	}

	v := validator.New()

	err := v.Struct(payload{Email: "not-an-email", Mood: 9})
	got := Describe(err)
	if len(got) != 2 {
		t.Fatalf("Expected 2 messages, got %d: %v", len(got), got)
	}
	if got[0] != "email must be a valid email address" {
		t.Errorf("Expected email message first, got %q", got[0])
	}
	if got[1] != "mood is above the allowed maximum" {
		t.Errorf("Expected mood message second, got %q", got[1])
	}
}

func TestDescribeNonFieldError(t *testing.T) {
	got := Describe(errors.New("unexpected EOF"))
	if len(got) != 1 || got[0] != "request body is malformed" {
		t.Errorf("Expected generic message, got %v", got)
	}
}
