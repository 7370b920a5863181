package service

import (
	"fmt"

	"tokenvine/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTTokenVerifier implements ports.TokenVerifier for HS256 session
// tokens issued by the auth collaborator. This subsystem only verifies;
// it never issues tokens.
type JWTTokenVerifier struct {
	secret []byte
	issuer string
}

// NewJWTTokenVerifier creates a new JWT token verifier.
func NewJWTTokenVerifier(secret, issuer string) *JWTTokenVerifier {
	return &JWTTokenVerifier{secret: []byte(secret), issuer: issuer}
}

// Validate parses and validates a session token, returning the claims.
func (s *JWTTokenVerifier) Validate(tokenString string) (*ports.SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, fmt.Errorf("missing subject claim")
	}
	accountID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("invalid account ID in token: %w", err)
	}

	familyRaw, ok := claims["family_id"].(string)
	if !ok {
		return nil, fmt.Errorf("missing family claim")
	}
	familyID, err := uuid.Parse(familyRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid family ID in token: %w", err)
	}

	role, ok := claims["role"].(string)
	if !ok || (role != "parent" && role != "child") {
		return nil, fmt.Errorf("missing or unknown role claim")
	}

	return &ports.SessionClaims{
		AccountID: accountID,
		FamilyID:  familyID,
		Role:      role,
	}, nil
}
