package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	clientID := uint(9)

	tokens, err := m.Issue(42, "ADMIN", &clientID)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.User, tokens.Role)

	claims, err := m.ParseCookies(tokens.User, tokens.Role)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)
	require.NotNil(t, claims.ClientID)
	assert.Equal(t, uint(9), *claims.ClientID)

	claims, err = m.ParseUser(tokens.User)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestParse_RejectsWrongKind(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	tokens, err := m.Issue(1, "USER", nil)
	require.NoError(t, err)

	_, err = m.ParseUser(tokens.Role)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ParseCookies(tokens.Role, tokens.User)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_RejectsForeignSecret(t *testing.T) {
	tokens, err := NewManager("one", time.Hour).Issue(1, "USER", nil)
	require.NoError(t, err)

	_, err = NewManager("two", time.Hour).ParseUser(tokens.User)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	m := NewManager("test-secret", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tokens, err := m.Issue(1, "USER", nil)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ParseUser(tokens.User)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestParseCookies_Mismatch(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	alice, err := m.Issue(1, "USER", nil)
	require.NoError(t, err)
	admin, err := m.Issue(2, "ADMIN", nil)
	require.NoError(t, err)

	_, err = m.ParseCookies(alice.User, admin.Role)
	assert.ErrorIs(t, err, ErrMismatch)
}

func TestParse_Garbage(t *testing.T) {
	_, err := NewManager("s", time.Hour).ParseUser("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
