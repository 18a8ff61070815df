package blogsphere

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": "7"}
	if !exp.IsZero() {
		claims["exp"] = exp.Unix()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestTokenExpired(t *testing.T) {
	if tokenExpired(signedToken(t, time.Now().Add(time.Hour))) {
		t.Error("future exp reported expired")
	}
	if !tokenExpired(signedToken(t, time.Now().Add(-time.Hour))) {
		t.Error("past exp not reported expired")
	}
	if tokenExpired(signedToken(t, time.Time{})) {
		t.Error("token without exp claim reported expired")
	}
}

func TestTokenExpiredOpaqueToken(t *testing.T) {
	// Non-JWT tokens carry no readable exp; only the backend can judge
	// them, so they are never treated as expired here.
	if tokenExpired("opaque-session-token-123") {
		t.Error("opaque token reported expired")
	}
}
