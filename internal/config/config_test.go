package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "Valid development config",
			config:  Config{Port: "8460", JWTSecret: "dev-secret", Env: "development"},
			wantErr: false,
		},
		{
			name:    "Missing port",
			config:  Config{JWTSecret: "dev-secret"},
			wantErr: true,
		},
		{
			name:    "Missing JWT secret",
			config:  Config{Port: "8460"},
			wantErr: true,
		},
		{
			name: "Production with default JWT secret",
			config: Config{
				Port:      "8460",
				JWTSecret: "your-secret-key-change-in-production",
				Env:       "production",
			},
			wantErr: true,
		},
		{
			name: "Production with short JWT secret",
			config: Config{
				Port:      "8460",
				JWTSecret: "short",
				Env:       "production",
			},
			wantErr: true,
		},
		{
			name: "Production with weak DB password",
			config: Config{
				Port:       "8460",
				JWTSecret:  "a-very-long-production-secret-value-123456",
				DBPassword: "password",
				Env:        "production",
			},
			wantErr: true,
		},
		{
			name: "Valid production config",
			config: Config{
				Port:       "8460",
				JWTSecret:  "a-very-long-production-secret-value-123456",
				DBPassword: "str0ng-db-password",
				DBSSLMode:  "require",
				Env:        "production",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
