package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop_backend/internal/model"
)

const (
	testSecret   = "unit-test-secret"
	testIssuer   = "shop_backend"
	testAudience = "shop_frontend"
)

func testUser() *model.User {
	return &model.User{
		ID:        "7f0c9a34-1111-2222-3333-444455556666",
		FirstName: "Ivan",
		LastName:  "Petrov",
		Email:     "ivan@example.com",
		Username:  "ivanp",
		Roles:     []string{"Customer", "Manager"},
	}
}

func newTestCodec(t *testing.T, ttl time.Duration) *Codec {
	t.Helper()
	c, err := NewCodec([]byte(testSecret), testIssuer, testAudience, ttl)
	require.NoError(t, err)
	return c
}

func TestNewCodec_Validation(t *testing.T) {
	_, err := NewCodec(nil, testIssuer, testAudience, time.Minute)
	assert.Error(t, err)

	_, err = NewCodec([]byte(testSecret), testIssuer, testAudience, 0)
	assert.Error(t, err)
}

func TestCodec_RoundTrip(t *testing.T) {
	c := newTestCodec(t, 15*time.Minute)
	user := testUser()

	signed, err := c.Encode(ClaimsFor(user))
	require.NoError(t, err)

	claims, err := c.Decode(signed, false)
	require.NoError(t, err)

	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, "Ivan Petrov", claims.Name)
	assert.Equal(t, "Ivan", claims.GivenName)
	assert.Equal(t, "Petrov", claims.FamilyName)
	assert.Equal(t, "ivanp", claims.PreferredUsername)
	assert.Equal(t, []string{"Customer", "Manager"}, claims.Roles)
	assert.Equal(t, testIssuer, claims.Issuer)
}

func TestClaimsFor_Deterministic(t *testing.T) {
	user := testUser()
	assert.Equal(t, ClaimsFor(user), ClaimsFor(user))
}

func TestCodec_WrongKey(t *testing.T) {
	c := newTestCodec(t, 15*time.Minute)
	other, err := NewCodec([]byte("another-secret"), testIssuer, testAudience, 15*time.Minute)
	require.NoError(t, err)

	signed, err := other.Encode(ClaimsFor(testUser()))
	require.NoError(t, err)

	_, err = c.Decode(signed, false)
	assert.ErrorIs(t, err, ErrTokenSignatureInvalid)

	// Чужой ключ отклоняется и при выключенной проверке срока
	_, err = c.Decode(signed, true)
	assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
}

func TestCodec_NoneAlgorithmRejected(t *testing.T) {
	c := newTestCodec(t, 15*time.Minute)

	claims := ClaimsFor(testUser())
	claims.Issuer = testIssuer
	claims.Audience = jwt.ClaimStrings{testAudience}
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Minute))

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = c.Decode(unsigned, false)
	assert.ErrorIs(t, err, ErrTokenSignatureInvalid)

	_, err = c.Decode(unsigned, true)
	assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
}

func TestCodec_Expired(t *testing.T) {
	c := newTestCodec(t, time.Millisecond)

	signed, err := c.Encode(ClaimsFor(testUser()))
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = c.Decode(signed, false)
	assert.ErrorIs(t, err, ErrTokenExpired)

	// Режим ignoreExpiry принимает истекший токен и отдает identity
	claims, err := c.Decode(signed, true)
	require.NoError(t, err)
	assert.Equal(t, "ivanp", claims.PreferredUsername)
}

func TestCodec_Malformed(t *testing.T) {
	c := newTestCodec(t, 15*time.Minute)

	_, err := c.Decode("definitely.not.a-token", false)
	assert.ErrorIs(t, err, ErrTokenMalformed)

	_, err = c.Decode("", true)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestCodec_IssuerAudienceMismatch(t *testing.T) {
	c := newTestCodec(t, 15*time.Minute)

	foreign, err := NewCodec([]byte(testSecret), "someone-else", "other-app", 15*time.Minute)
	require.NoError(t, err)

	signed, err := foreign.Encode(ClaimsFor(testUser()))
	require.NoError(t, err)

	_, err = c.Decode(signed, false)
	assert.Error(t, err)

	// iss/aud проверяются и в режиме ignoreExpiry
	_, err = c.Decode(signed, true)
	assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
}
