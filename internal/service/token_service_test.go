package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testJWTSecret = "test-secret-at-least-32-bytes-long!!"
	testJWTIssuer = "tokenvine-auth"
)

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func baseClaims(accountID, familyID uuid.UUID, role string) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub":       accountID.String(),
		"family_id": familyID.String(),
		"role":      role,
		"iss":       testJWTIssuer,
		"iat":       now.Unix(),
		"exp":       now.Add(time.Hour).Unix(),
	}
}

func TestJWTTokenVerifier_Valid(t *testing.T) {
	accountID, familyID := uuid.New(), uuid.New()
	v := NewJWTTokenVerifier(testJWTSecret, testJWTIssuer)

	claims, err := v.Validate(signTestToken(t, testJWTSecret, baseClaims(accountID, familyID, "child")))
	require.NoError(t, err)
	assert.Equal(t, accountID, claims.AccountID)
	assert.Equal(t, familyID, claims.FamilyID)
	assert.Equal(t, "child", claims.Role)
}

func TestJWTTokenVerifier_Rejections(t *testing.T) {
	accountID, familyID := uuid.New(), uuid.New()
	v := NewJWTTokenVerifier(testJWTSecret, testJWTIssuer)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := v.Validate(signTestToken(t, "some-other-secret-32-bytes-long!!!!!", baseClaims(accountID, familyID, "child")))
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		c := baseClaims(accountID, familyID, "child")
		c["iss"] = "someone-else"
		_, err := v.Validate(signTestToken(t, testJWTSecret, c))
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		c := baseClaims(accountID, familyID, "child")
		c["exp"] = time.Now().Add(-time.Minute).Unix()
		_, err := v.Validate(signTestToken(t, testJWTSecret, c))
		assert.Error(t, err)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := v.Validate(signTestToken(t, testJWTSecret, baseClaims(accountID, familyID, "admin")))
		assert.Error(t, err)
	})

	t.Run("missing family claim", func(t *testing.T) {
		c := baseClaims(accountID, familyID, "parent")
		delete(c, "family_id")
		_, err := v.Validate(signTestToken(t, testJWTSecret, c))
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := v.Validate("not.a.jwt")
		assert.Error(t, err)
	})
}
