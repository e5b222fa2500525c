package session

import (
	"encoding/json"
	"testing"
	"time"

	"urbanmind-be/models"
)

func TestDecodeRoundTrip(t *testing.T) {
	s := Session{
		Token: "token-123",
		Profile: models.PublicProfile{
			Name:  "Ada",
			Email: "ada@example.com",
			Role:  models.RoleCitizen,
		},
		SavedAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	got, err := Decode(payload)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got.Token != s.Token || got.Profile.Email != s.Profile.Email || got.Profile.Role != s.Profile.Role {
		t.Fatalf("decoded session mismatch: %+v", got)
	}
}

func TestDecodeToleratesCorruptPayloads(t *testing.T) {
	payloads := [][]byte{
		nil,
		{},
		[]byte("{"),
		[]byte("not json at all"),
		[]byte(`{"profile":{}}`), // missing token
	}

	for _, p := range payloads {
		if _, err := Decode(p); err != ErrNotFound {
			t.Errorf("Decode(%q) err = %v, want ErrNotFound", p, err)
		}
	}
}
