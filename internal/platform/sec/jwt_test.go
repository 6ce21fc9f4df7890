// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kmdb/internal/platform/sec"
)

const testIssuer = "kmdb.test"

func newKeyPair(t *testing.T) (*rsa.PrivateKey, []byte) {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	require.NoError(t, err)

	return privateKey, pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
}

func sign(t *testing.T, key *rsa.PrivateKey, method jwt.SigningMethod, claims sec.AuthClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func claimsFor(role sec.UserRole, issuer string, ttl time.Duration) sec.AuthClaims {
	now := time.Now()
	return sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: "curator-1",
		Role:   string(role),
	}
}

/*
TestTokenVerifier_Valid verifies a correctly signed, unexpired token.
*/
func TestTokenVerifier_Valid(t *testing.T) {
	privateKey, publicPEM := newKeyPair(t)
	verifier, err := sec.NewTokenVerifierFromPEM(publicPEM, testIssuer)
	require.NoError(t, err)

	token := sign(t, privateKey, jwt.SigningMethodRS256, claimsFor(sec.RoleEditor, testIssuer, time.Hour))

	claims, err := verifier.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "curator-1", claims.UserID)
	assert.Equal(t, "editor", claims.Role)
}

/*
TestTokenVerifier_Rejects covers expired tokens, wrong issuers and foreign keys.
*/
func TestTokenVerifier_Rejects(t *testing.T) {
	privateKey, publicPEM := newKeyPair(t)
	otherKey, _ := newKeyPair(t)

	verifier, err := sec.NewTokenVerifierFromPEM(publicPEM, testIssuer)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"expired", sign(t, privateKey, jwt.SigningMethodRS256, claimsFor(sec.RoleAdmin, testIssuer, -time.Minute))},
		{"wrong_issuer", sign(t, privateKey, jwt.SigningMethodRS256, claimsFor(sec.RoleAdmin, "someone.else", time.Hour))},
		{"foreign_key", sign(t, otherKey, jwt.SigningMethodRS256, claimsFor(sec.RoleAdmin, testIssuer, time.Hour))},
		{"garbage", "not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.VerifyToken(tt.token)
			assert.Error(t, err)
		})
	}
}

/*
TestUserRole_AtLeast checks the role hierarchy.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleEditor))
	assert.True(t, sec.RoleEditor.AtLeast(sec.RoleEditor))
	assert.False(t, sec.RoleViewer.AtLeast(sec.RoleEditor))
	assert.False(t, sec.UserRole("guest").AtLeast(sec.RoleViewer))
}
