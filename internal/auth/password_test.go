package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{"accepts strong password", "GoodPass123!", ""},
		{"too short", "Sh0rt!", "at least 8 characters"},
		{"missing uppercase", "alllowercase1!", "uppercase letter"},
		{"missing lowercase", "ALLUPPERCASE1!", "lowercase letter"},
		{"missing digit", "NoDigitsHere!", "digit"},
		{"missing special", "NoSpecial123", "special character"},
		// Length is checked first, so a short password with several
		// violations reports only the length.
		{"short reports length first", "aB1", "at least 8 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var weak *WeakPasswordError
			require.ErrorAs(t, err, &weak)
			assert.Contains(t, weak.Reason, tt.wantErr)
		})
	}
}

func TestValidateUsername(t *testing.T) {
	valid := []string{"bob", "alice_99", "X_Y_Z", "abc"}
	for _, name := range valid {
		assert.NoError(t, ValidateUsername(name), name)
	}

	invalid := []string{"", "ab", "has space", "dash-ed", "café", "a!b@c"}
	for _, name := range invalid {
		assert.ErrorIs(t, ValidateUsername(name), ErrInvalidUsername, name)
	}
}
