package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/ammanharoon/Gym-Membership-and-Fitness-Tracking/internal/models"
)

// tokenTTL is the validity window of every issued session token. There is no
// server-side revocation: a token stays usable for the full hour even if the
// account changes afterwards.
const tokenTTL = 1 * time.Hour

var jwtKey = []byte(secretFromEnv())

// SecretConfigured reports whether JWT_SECRET was provided by the environment.
func SecretConfigured() bool {
	return os.Getenv("JWT_SECRET") != ""
}

func secretFromEnv() string {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return s
	}
	// Insecure development fallback, matching the deployed default.
	return "your_jwt_secret_key"
}

// Claims defines the JWT claims structure.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// contextKey is the private type for context values set by this package.
type contextKey string

// UserClaimsKey is the context key for user claims.
const UserClaimsKey = contextKey("userClaims")

// GenerateJWT creates a new session token for a given user.
func GenerateJWT(user models.User) (string, error) {
	return generateJWT(user, tokenTTL)
}

func generateJWT(user models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// ValidateJWT parses and validates a JWT string. Expired tokens, bad
// signatures and malformed input all come back as an error.
func ValidateJWT(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return jwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// JWTMiddleware creates a middleware for protecting routes. A missing header
// is rejected with 401; a token that fails verification with 400, matching
// the API contract the front-end already handles.
func JWTMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
			if authHeader == "" {
				respondMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
				return
			}

			// Tolerate both "Bearer <token>" and a bare token value, with
			// surrounding whitespace.
			tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
			if tokenStr == "" {
				respondMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
				return
			}

			claims, err := ValidateJWT(tokenStr)
			if err != nil {
				log.Warn().Err(err).Msg("Rejected request with invalid token")
				respondMessage(w, http.StatusBadRequest, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext retrieves the verified claims stored by JWTMiddleware.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(*Claims)
	return claims, ok
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
