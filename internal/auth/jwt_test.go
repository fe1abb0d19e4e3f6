package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ammanharoon/Gym-Membership-and-Fitness-Tracking/internal/models"
)

func testUser() models.User {
	return models.User{
		ID:    "user-123",
		Name:  "Alice",
		Email: "a@x.com",
	}
}

func TestGenerateAndValidate_RoundTrip(t *testing.T) {
	t.Parallel()

	tok, err := GenerateJWT(testUser())
	if err != nil {
		t.Fatalf("GenerateJWT error: %v", err)
	}

	claims, err := ValidateJWT(tok)
	if err != nil {
		t.Fatalf("ValidateJWT error: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Fatalf("UserID mismatch: got %q want %q", claims.UserID, "user-123")
	}
	if claims.Email != "a@x.com" {
		t.Fatalf("Email mismatch: got %q want %q", claims.Email, "a@x.com")
	}
	if claims.Subject != "a@x.com" {
		t.Fatalf("Subject mismatch: got %q want %q", claims.Subject, "a@x.com")
	}

	// Expiry must be one hour out, give or take scheduling slack.
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 59*time.Minute || ttl > 61*time.Minute {
		t.Fatalf("unexpected token TTL: %v", ttl)
	}
}

func TestValidateJWT_Expired(t *testing.T) {
	t.Parallel()

	tok, err := generateJWT(testUser(), -1*time.Minute)
	if err != nil {
		t.Fatalf("generateJWT error: %v", err)
	}

	if _, err := ValidateJWT(tok); err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	t.Parallel()

	claims := &Claims{
		UserID: "u2",
		Email:  "b@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("some-other-secret"))
	if err != nil {
		t.Fatalf("signing error: %v", err)
	}

	if _, err := ValidateJWT(tok); err == nil {
		t.Fatal("expected error for token signed with a different secret, got nil")
	}
}

func TestValidateJWT_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := ValidateJWT("not.a.jwt"); err == nil {
		t.Fatal("expected error for malformed token, got nil")
	}
}

// protectedProbe records whether the guarded handler ran and with which claims.
type protectedProbe struct {
	called bool
	claims *Claims
}

func (p *protectedProbe) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.called = true
		p.claims, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func doGuarded(t *testing.T, authHeader string) (*httptest.ResponseRecorder, *protectedProbe) {
	t.Helper()
	probe := &protectedProbe{}
	guarded := JWTMiddleware()(probe.handler())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)
	return rec, probe
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	t.Parallel()

	rec, probe := doGuarded(t, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusUnauthorized)
	}
	if probe.called {
		t.Fatal("protected handler ran without a token")
	}
}

func TestJWTMiddleware_InvalidToken(t *testing.T) {
	t.Parallel()

	rec, probe := doGuarded(t, "Bearer garbage")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusBadRequest)
	}
	if probe.called {
		t.Fatal("protected handler ran with an invalid token")
	}
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	t.Parallel()

	tok, err := GenerateJWT(testUser())
	if err != nil {
		t.Fatalf("GenerateJWT error: %v", err)
	}

	rec, probe := doGuarded(t, "Bearer "+tok)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusOK)
	}
	if !probe.called || probe.claims == nil {
		t.Fatal("protected handler did not receive claims")
	}
	if probe.claims.Email != "a@x.com" {
		t.Fatalf("claims email: got %q want %q", probe.claims.Email, "a@x.com")
	}
}

func TestJWTMiddleware_ToleratesWhitespaceAndBarePrefix(t *testing.T) {
	t.Parallel()

	tok, err := GenerateJWT(testUser())
	if err != nil {
		t.Fatalf("GenerateJWT error: %v", err)
	}

	for _, header := range []string{
		"  Bearer   " + tok + "  ",
		tok, // no Bearer prefix at all
	} {
		rec, _ := doGuarded(t, header)
		if rec.Code != http.StatusOK {
			t.Fatalf("header %q: status got %d want %d", header, rec.Code, http.StatusOK)
		}
	}
}
