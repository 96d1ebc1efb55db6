package core

import (
	"testing"
	"time"
)

func TestTrackDisplayName(t *testing.T) {
	if got := (Track{Title: "Song", Artist: "Band"}).DisplayName(); got != "Band - Song" {
		t.Errorf("DisplayName() = %q, want %q", got, "Band - Song")
	}
	if got := (Track{Title: "Song"}).DisplayName(); got != "Song" {
		t.Errorf("DisplayName() = %q, want %q", got, "Song")
	}
}

func TestCredentialsIsExpired(t *testing.T) {
	tests := []struct {
		name    string
		expires time.Time
		want    bool
	}{
		{name: "zero never expires", want: false},
		{name: "future", expires: time.Now().Add(time.Hour), want: false},
		{name: "within buffer", expires: time.Now().Add(30 * time.Second), want: true},
		{name: "past", expires: time.Now().Add(-time.Hour), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Credentials{Token: "t", TokenExpiresAt: tt.expires}
			if got := c.IsExpired(); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}
