// Copyright (c) 2026 Shelfmark. All rights reserved.

package sec

import (
	"context"
	"crypto/rsa"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents the payload embedded inside an access token issued by
// the external session provider.
//
// # Why custom claims?
//
// By embedding the UserID directly inside the JWT, [middleware.Authenticate]
// can reconstruct the acting identity WITHOUT querying the session provider
// on every single API request. Shelfmark trusts the identifier as-is.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID string `json:"uid"`
}

// Identity returns the opaque [Identity] carried by the claims.
func (claims *AuthClaims) Identity() Identity {
	return Identity(claims.UserID)
}

// TokenVerifier checks access tokens using the session provider's RS256
// public key. Shelfmark never issues or signs tokens — the credential flow
// is owned entirely by the external provider.
type TokenVerifier struct {
	publicKey   *rsa.PublicKey
	issuer      string
	revocations RevocationStore
}

// NewTokenVerifier creates a TokenVerifier.
// It reads the RSA public key from the provided filesystem path. The
// revocation store may be nil, in which case only signature and expiry
// are checked.
func NewTokenVerifier(publicKeyPath, issuer string, revocations RevocationStore) (*TokenVerifier, error) {
	publicKeyData, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to read public key from %s: %w", publicKeyPath, err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyData)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to parse public key: %w", err)
	}

	return &TokenVerifier{
		publicKey:   publicKey,
		issuer:      issuer,
		revocations: revocations,
	}, nil
}

// VerifyToken checks the signature, validity, and revocation status of a
// JWT string and returns its claims.
func (verifier *TokenVerifier) VerifyToken(ctx context.Context, tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return verifier.publicKey, nil
	}, jwt.WithIssuer(verifier.issuer))

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	// The session provider can pull a token before its natural expiry
	// (sign-out, credential reset). Those revocations are shared via Redis.
	if verifier.revocations != nil && claims.ID != "" {
		revoked, err := verifier.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("sec: revocation lookup failed: %w", err)
		}
		if revoked {
			return nil, fmt.Errorf("sec: token has been revoked")
		}
	}

	return claims, nil
}
