package crypt

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func testKey(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	return base64.StdEncoding.EncodeToString(key)
}

func TestNewCodecRejectsBadKeys(t *testing.T) {
	cases := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"not base64", "not-valid-base64!!!"},
		{"too short", base64.StdEncoding.EncodeToString([]byte("short"))},
		{"too long", base64.StdEncoding.EncodeToString(make([]byte, 48))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewCodec(tc.key); err == nil {
				t.Fatalf("expected error for key %q", tc.key)
			}
		})
	}
}

func TestNewCodecAcceptsURLSafeKey(t *testing.T) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		t.Fatal(err)
	}
	if _, err := NewCodec(base64.URLEncoding.EncodeToString(key)); err != nil {
		t.Fatalf("url-safe key rejected: %v", err)
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	codec, err := NewCodec(testKey(t))
	if err != nil {
		t.Fatal(err)
	}

	for _, plaintext := range []string{"", "hello", "# A journal entry\n\nwith *markdown*", strings.Repeat("x", 64*1024)} {
		in := plaintext
		sealed, err := codec.Encrypt(&in)
		if err != nil {
			t.Fatalf("encrypt: %v", err)
		}
		if sealed == nil || *sealed == plaintext {
			t.Fatal("ciphertext should differ from plaintext")
		}
		out, err := codec.Decrypt(sealed)
		if err != nil {
			t.Fatalf("decrypt: %v", err)
		}
		if out == nil || *out != plaintext {
			t.Fatalf("round trip mismatch: got %q want %q", *out, plaintext)
		}
	}
}

func TestNilPassthrough(t *testing.T) {
	codec, err := NewCodec(testKey(t))
	if err != nil {
		t.Fatal(err)
	}
	if sealed, err := codec.Encrypt(nil); err != nil || sealed != nil {
		t.Fatalf("Encrypt(nil) = %v, %v; want nil, nil", sealed, err)
	}
	if out, err := codec.Decrypt(nil); err != nil || out != nil {
		t.Fatalf("Decrypt(nil) = %v, %v; want nil, nil", out, err)
	}
}

func TestEncryptIsNonDeterministic(t *testing.T) {
	codec, err := NewCodec(testKey(t))
	if err != nil {
		t.Fatal(err)
	}
	in := "same plaintext"
	a, err := codec.Encrypt(&in)
	if err != nil {
		t.Fatal(err)
	}
	b, err := codec.Encrypt(&in)
	if err != nil {
		t.Fatal(err)
	}
	if *a == *b {
		t.Fatal("two encryptions of the same plaintext should produce different tokens")
	}
}

func TestDecryptRejectsTamperedToken(t *testing.T) {
	codec, err := NewCodec(testKey(t))
	if err != nil {
		t.Fatal(err)
	}
	in := "secret"
	sealed, err := codec.Encrypt(&in)
	if err != nil {
		t.Fatal(err)
	}

	raw, err := base64.RawURLEncoding.DecodeString(*sealed)
	if err != nil {
		t.Fatal(err)
	}
	raw[len(raw)-1] ^= 0xff
	tampered := base64.RawURLEncoding.EncodeToString(raw)

	if _, err := codec.Decrypt(&tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestDecryptRejectsWrongKey(t *testing.T) {
	codecA, err := NewCodec(testKey(t))
	if err != nil {
		t.Fatal(err)
	}
	codecB, err := NewCodec(testKey(t))
	if err != nil {
		t.Fatal(err)
	}

	in := "secret"
	sealed, err := codecA.Encrypt(&in)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := codecB.Decrypt(sealed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestDecryptRejectsGarbage(t *testing.T) {
	codec, err := NewCodec(testKey(t))
	if err != nil {
		t.Fatal(err)
	}
	for _, token := range []string{"not base64 at all %%%", "c2hvcnQ", base64.RawURLEncoding.EncodeToString([]byte{0x02, 0, 0, 0, 0, 0, 0, 0, 0})} {
		tok := token
		if _, err := codec.Decrypt(&tok); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}
