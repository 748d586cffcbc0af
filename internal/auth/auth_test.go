package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsEmptySecret(t *testing.T) {
	_, err := New("", time.Hour)
	require.ErrorIs(t, err, ErrEmptySecret)
}

func TestHashSecret_ProducesVerifiableDigest(t *testing.T) {
	digest, err := HashSecret("pw1")
	require.NoError(t, err)

	assert.NotEqual(t, "pw1", digest)
	assert.True(t, CheckSecret("pw1", digest))
	assert.False(t, CheckSecret("pw2", digest))
}

func TestHashSecret_SaltsEachDigest(t *testing.T) {
	first, err := HashSecret("pw1")
	require.NoError(t, err)
	second, err := HashSecret("pw1")
	require.NoError(t, err)

	// Random per-digest salt: same input, different digests, both verify.
	assert.NotEqual(t, first, second)
	assert.True(t, CheckSecret("pw1", first))
	assert.True(t, CheckSecret("pw1", second))
}

func TestIssueToken_BindsUserID(t *testing.T) {
	a, err := New("secret-key", time.Hour)
	require.NoError(t, err)

	tokenStr, err := a.IssueToken("user-42")
	require.NoError(t, err)

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.Secret(), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "user-42", claims["user_id"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp.Time, time.Minute)
}

func TestIssueToken_NotVerifiableWithOtherKey(t *testing.T) {
	a, err := New("secret-key", time.Hour)
	require.NoError(t, err)

	tokenStr, err := a.IssueToken("user-42")
	require.NoError(t, err)

	_, err = jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return []byte("other-key"), nil
	})
	assert.Error(t, err)
}
