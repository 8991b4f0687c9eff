package api

import (
	"testing"
	"time"
)

func TestAuth_Validate(t *testing.T) {
	tests := []struct {
		name    string
		auth    Auth
		wantErr bool
	}{
		{
			name: "valid",
			auth: Auth{AccessToken: "tok", AccessTokenExpiresIn: "1700000000000"},
		},
		{
			name:    "missing access token",
			auth:    Auth{AccessTokenExpiresIn: "1700000000000"},
			wantErr: true,
		},
		{
			name:    "malformed expiry",
			auth:    Auth{AccessToken: "tok", AccessTokenExpiresIn: "tomorrow"},
			wantErr: true,
		},
		{
			name:    "empty expiry",
			auth:    Auth{AccessToken: "tok"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.auth.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMsEpochTime(t *testing.T) {
	want := time.UnixMilli(1700000000000)
	if got := msEpochTime("1700000000000"); !got.Equal(want) {
		t.Errorf("msEpochTime() = %v, want %v", got, want)
	}
	if got := msEpochTime("not-a-number"); !got.IsZero() {
		t.Errorf("msEpochTime(malformed) = %v, want zero time", got)
	}
	if got := msEpochTime(""); !got.IsZero() {
		t.Errorf("msEpochTime(empty) = %v, want zero time", got)
	}
}
