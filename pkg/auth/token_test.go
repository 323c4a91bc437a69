package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSecret(t *testing.T) {
	a, err := NewSecret()
	require.NoError(t, err)
	b, err := NewSecret()
	require.NoError(t, err)

	assert.Len(t, a, secretLength)
	assert.NotEqual(t, a, b)
}

func TestHashAndMatch(t *testing.T) {
	hash := HashSecret("s3cret")
	assert.Len(t, hash, 64)
	assert.True(t, Matches("s3cret", hash))
	assert.False(t, Matches("s3cret ", hash))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		presented string
		wantID    int64
		wantSec   string
		wantErr   bool
	}{
		{name: "id and secret", presented: "42|abc", wantID: 42, wantSec: "abc"},
		{name: "bare secret", presented: "abc", wantID: 0, wantSec: "abc"},
		{name: "secret containing pipe", presented: "7|a|b", wantID: 7, wantSec: "a|b"},
		{name: "empty", presented: "  ", wantErr: true},
		{name: "non numeric id", presented: "x|abc", wantErr: true},
		{name: "empty secret", presented: "3|", wantErr: true},
		{name: "negative id", presented: "-1|abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, secret, err := Parse(tt.presented)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedToken)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantSec, secret)
		})
	}
}

func TestPlainTextRoundTrip(t *testing.T) {
	id, secret, err := Parse(PlainText(99, "tok"))
	require.NoError(t, err)
	assert.Equal(t, int64(99), id)
	assert.Equal(t, "tok", secret)
}
