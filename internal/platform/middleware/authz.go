// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"strings"

	"github.com/taibuivan/kmdb/internal/platform/apperr"
	"github.com/taibuivan/kmdb/internal/platform/constants"
	"github.com/taibuivan/kmdb/internal/platform/ctxutil"
	"github.com/taibuivan/kmdb/internal/platform/respond"
	"github.com/taibuivan/kmdb/internal/platform/sec"
)

// TokenVerifier is implemented by [*sec.TokenVerifier].
type TokenVerifier interface {
	VerifyToken(tokenString string) (*sec.AuthClaims, error)
}

// bearerToken returns the token of an "Authorization: Bearer" header. The
// scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	prefix := constants.BearerPrefix
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return header[len(prefix):], true
}

// Authenticate stores verified claims in the request context. Requests without
// an Authorization header pass through anonymously; a malformed or rejected
// token is answered with 401.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			header := request.Header.Get(constants.HeaderAuthorization)
			if header == "" {
				next.ServeHTTP(writer, request)
				return
			}

			token, ok := bearerToken(header)
			if !ok {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}
			claims, err := verifier.VerifyToken(token)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			next.ServeHTTP(writer, request.WithContext(ctxutil.WithClaims(request.Context(), claims)))
		})
	}
}

// RequireRoleForWrites leaves safe methods open and demands role for the
// rest. It must run after [Authenticate].
func RequireRoleForWrites(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if isSafeMethod(request.Method) {
				next.ServeHTTP(writer, request)
				return
			}

			claims := ctxutil.GetClaims(request.Context())
			switch {
			case claims == nil:
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			case !sec.UserRole(claims.Role).AtLeast(role):
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
			default:
				next.ServeHTTP(writer, request)
			}
		})
	}
}

func isSafeMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}
