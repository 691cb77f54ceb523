package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordValidator_ValidateEmail(t *testing.T) {
	validator := NewPasswordValidator()

	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{
			name:    "valid email",
			email:   "user@example.com",
			wantErr: false,
		},
		{
			name:    "valid with plus tag",
			email:   "user+budget@example.com",
			wantErr: false,
		},
		{
			name:    "empty",
			email:   "",
			wantErr: true,
		},
		{
			name:    "missing domain",
			email:   "user@",
			wantErr: true,
		},
		{
			name:    "missing at sign",
			email:   "user.example.com",
			wantErr: true,
		},
		{
			name:    "too long",
			email:   strings.Repeat("a", 250) + "@x.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPasswordValidator_ValidatePassword(t *testing.T) {
	validator := NewPasswordValidator()

	tests := []struct {
		name        string
		password    string
		wantErr     bool
		expectedErr string
	}{
		{
			name:     "valid password",
			password: "Sup3rSecret",
			wantErr:  false,
		},
		{
			name:        "too short",
			password:    "Ab1",
			wantErr:     true,
			expectedErr: "password must be at least 8 characters",
		},
		{
			name:        "no uppercase",
			password:    "sup3rsecret",
			wantErr:     true,
			expectedErr: "password must contain at least one uppercase letter",
		},
		{
			name:        "no lowercase",
			password:    "SUP3RSECRET",
			wantErr:     true,
			expectedErr: "password must contain at least one lowercase letter",
		},
		{
			name:        "no digit",
			password:    "SuperSecret",
			wantErr:     true,
			expectedErr: "password must contain at least one digit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
