//go:build unit
// +build unit

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientSettingsValidation(t *testing.T) {
	tests := []struct {
		name          string
		settings      *ClientSettings
		expectedError bool
	}{
		{
			name: "valid settings",
			settings: &ClientSettings{
				BaseURL:        "http://localhost:8000/api/v1/bertron",
				TimeoutSeconds: 30,
			},
			expectedError: false,
		},
		{
			name: "default production url",
			settings: &ClientSettings{
				BaseURL:  DefaultBaseURL,
				Insecure: true,
			},
			expectedError: false,
		},
		{
			name:          "missing base url",
			settings:      &ClientSettings{TimeoutSeconds: 30},
			expectedError: true,
		},
		{
			name: "malformed base url",
			settings: &ClientSettings{
				BaseURL: "not-a-url",
			},
			expectedError: true,
		},
		{
			name: "timeout out of range",
			settings: &ClientSettings{
				BaseURL:        "http://localhost:8000",
				TimeoutSeconds: 100000,
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.expectedError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
