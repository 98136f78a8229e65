package token

import (
	"fmt"
	"testing"
	"time"

	"tasktrack/internal/config"
	"tasktrack/pkg/util/aescrypt"
	"tasktrack/pkg/util/encoding"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrambledClaims(t *testing.T) *TokenClaims {
	t.Helper()

	key := config.Get().JWT.SecretKey
	id, err := aescrypt.EncryptAES("7", key)
	require.NoError(t, err)
	roleId, err := aescrypt.EncryptAES("2", key)
	require.NoError(t, err)
	entityId, err := aescrypt.EncryptAES("3", key)
	require.NoError(t, err)

	return &TokenClaims{
		ID:        id,
		RoleID:    roleId,
		EntityID:  entityId,
		Email:     encoding.Encode("someone@example.com"),
		UuidLogin: encoding.Encode("uuid-1"),
		Exp:       time.Now().Add(time.Hour).Unix(),
	}
}

func TestAuthContextDecodesScrambledClaims(t *testing.T) {
	auth, err := scrambledClaims(t).AuthContext()
	require.NoError(t, err)

	assert.Equal(t, 7, auth.ID)
	assert.Equal(t, 2, auth.RoleID)
	assert.Equal(t, 3, auth.EntityID)
	assert.Equal(t, "someone@example.com", auth.Email)
	assert.Equal(t, "uuid-1", auth.UuidLogin)
}

func TestAuthContextAcceptsPlainNumericClaims(t *testing.T) {
	claims := scrambledClaims(t)
	claims.ID = "7"
	claims.RoleID = "2"
	claims.EntityID = "3"

	auth, err := claims.AuthContext()
	require.NoError(t, err)
	assert.Equal(t, 7, auth.ID)
	assert.Equal(t, 3, auth.EntityID)
}

func TestAuthContextRejectsEmptyClaims(t *testing.T) {
	claims := scrambledClaims(t)
	claims.EntityID = ""

	_, err := claims.AuthContext()
	assert.Error(t, err)
}

func TestAuthTokenRoundTrip(t *testing.T) {
	claims := scrambledClaims(t)
	signed, err := NewAuthToken(claims).Token()
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
}

func TestEksternalTokenRoundTrip(t *testing.T) {
	eksternal := &AuthEksternalToken{UserId: 12}
	token, err := eksternal.GenerateTokenEksternal()
	require.NoError(t, err)

	parsed, err := ValidateTokenEksternal(*token)
	require.NoError(t, err)
	assert.Equal(t, 12, parsed.UserId)

	_, err = ValidateTokenEksternal(fmt.Sprintf("%s-tampered", *token))
	assert.Error(t, err)
}
