package service

import (
	"errors"
	"testing"
)

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"meets all rules", "Str0ng!pass", false},
		{"too short", "S1!a", true},
		{"missing uppercase", "weak1pass!", true},
		{"missing lowercase", "WEAK1PASS!", true},
		{"missing digit", "WeakPass!!", true},
		{"missing special character", "WeakPass123", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePasswordStrength(tt.password)
			if tt.wantErr && !errors.Is(err, ErrWeakPassword) {
				t.Errorf("validatePasswordStrength(%q) = %v, want ErrWeakPassword", tt.password, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("validatePasswordStrength(%q) = %v, want nil", tt.password, err)
			}
		})
	}
}
