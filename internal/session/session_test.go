package session

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "nested", "TaskGenie.json"))
}

func TestLoad_Missing(t *testing.T) {
	_, err := newStore(t).Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSaveLoadClear(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Save(Record{Token: "abc"}))

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	rec, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc", rec.Token)

	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())
	_, err = s.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLoad_EmptyTokenIsNoSession(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Save(Record{}))

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLoad_Corrupt(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0700))
	require.NoError(t, os.WriteFile(s.Path(), []byte("{"), 0600))

	_, err := s.Load()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSession)
}

func TestTokenSource_ReadsOnEveryCall(t *testing.T) {
	s := newStore(t)
	ts := s.TokenSource()

	tok, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "", tok.AccessToken)

	require.NoError(t, s.Save(Record{Token: "fresh"}))

	tok, err = ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "fresh", tok.AccessToken)

	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	tok.SetAuthHeader(req)
	assert.Equal(t, "Bearer fresh", req.Header.Get("Authorization"))
}

func TestUserID(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": "user-42"}).SignedString([]byte("k"))
	require.NoError(t, err)

	id, err := Record{Token: signed}.UserID()
	require.NoError(t, err)
	assert.Equal(t, "user-42", id)
}

func TestUserID_FallsBackToSubject(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u-7"}).SignedString([]byte("k"))
	require.NoError(t, err)

	id, err := Record{Token: signed}.UserID()
	require.NoError(t, err)
	assert.Equal(t, "u-7", id)
}

func TestUserID_NotAJWT(t *testing.T) {
	_, err := Record{Token: "opaque"}.UserID()
	assert.Error(t, err)
}

func TestUserID_NoClaim(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": "admin"}).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = Record{Token: signed}.UserID()
	assert.Error(t, err)
}
