package rema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginResponseSucceeded(t *testing.T) {
	truth := true
	falsehood := false
	tests := []struct {
		name string
		resp LoginResponse
		want bool
	}{
		{"user_id without success field", LoginResponse{UserID: "42"}, true},
		{"user_id with success true", LoginResponse{UserID: "42", Success: &truth}, true},
		{"user_id with success false", LoginResponse{UserID: "42", Success: &falsehood}, false},
		{"no user_id", LoginResponse{}, false},
		{"success true without user_id", LoginResponse{Success: &truth}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.resp.Succeeded())
		})
	}
}

func TestUserIDAcceptsNumberAndString(t *testing.T) {
	var fromNumber LoginResponse
	require.NoError(t, json.Unmarshal([]byte(`{"user_id": 42}`), &fromNumber))
	assert.Equal(t, UserID("42"), fromNumber.UserID)

	var fromString LoginResponse
	require.NoError(t, json.Unmarshal([]byte(`{"user_id": "42"}`), &fromString))
	assert.Equal(t, UserID("42"), fromString.UserID)

	var invalid LoginResponse
	assert.Error(t, json.Unmarshal([]byte(`{"user_id": {"nested": true}}`), &invalid))
}
