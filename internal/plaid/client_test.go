package plaid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid sandbox config",
			config: Config{
				ClientID:    "client-id",
				Secret:      "secret",
				Environment: "sandbox",
				AccessToken: "access-token",
			},
		},
		{
			name: "valid production config",
			config: Config{
				ClientID:    "client-id",
				Secret:      "secret",
				Environment: "production",
				AccessToken: "access-token",
			},
		},
		{
			name: "missing client ID",
			config: Config{
				Secret:      "secret",
				Environment: "sandbox",
				AccessToken: "access-token",
			},
			wantErr: true,
		},
		{
			name: "missing secret",
			config: Config{
				ClientID:    "client-id",
				Environment: "sandbox",
				AccessToken: "access-token",
			},
			wantErr: true,
		},
		{
			name: "missing access token",
			config: Config{
				ClientID:    "client-id",
				Secret:      "secret",
				Environment: "sandbox",
			},
			wantErr: true,
		},
		{
			name: "invalid environment",
			config: Config{
				ClientID:    "client-id",
				Secret:      "secret",
				Environment: "development",
				AccessToken: "access-token",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCleanMerchantName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "title cases",
			input:    "NETFLIX STREAMING",
			expected: "Netflix Streaming",
		},
		{
			name:     "strips trailing transaction id",
			input:    "CITY GYM 928374651",
			expected: "City Gym",
		},
		{
			name:     "keeps short numbers",
			input:    "STORE 42",
			expected: "Store 42",
		},
		{
			name:     "removes corporate suffixes",
			input:    "ACME POWER CO",
			expected: "Acme Power",
		},
		{
			name:     "removes stacked suffixes",
			input:    "WIDGETS INC LLC",
			expected: "Widgets",
		},
		{
			name:     "collapses whitespace",
			input:    "SPOTIFY   USA",
			expected: "Spotify Usa",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanMerchantName(tt.input))
		})
	}
}

func TestNewClient_InvalidConfig(t *testing.T) {
	_, err := NewClient(Config{ClientID: "only-id"})
	assert.Error(t, err)
}
