// Package auth verifies the bearer tokens issued to BioPatch companion apps.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AccessTokenDuration is the lifetime of tokens minted by IssueToken.
const AccessTokenDuration = 24 * time.Hour

// UserIDKey is the echo context key holding the authenticated user id.
const UserIDKey = "user_id"

var errMissingToken = errors.New("missing bearer token")

type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 access token for userID.
func IssueToken(secret, userID string, now time.Time) (string, error) {
	claims := JwtCustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenDuration)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken validates tokenString and returns its claims.
func ParseToken(secret, tokenString string) (*JwtCustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired(), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*JwtCustomClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func bearerToken(c echo.Context) (string, error) {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(h, "Bearer ") {
		return "", errMissingToken
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")), nil
}

// JwtAuthMiddleware rejects requests without a valid bearer token. When the
// route has a :user_id parameter it must match the token's user.
func JwtAuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := bearerToken(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Missing or malformed token"})
			}

			claims, err := ParseToken(secret, tokenString)
			if err != nil {
				log.Debug().Err(err).Str("path", c.Path()).Msg("Token validation failed")
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
			}

			if pathUser := c.Param("user_id"); pathUser != "" && pathUser != claims.UserID {
				log.Warn().
					Str("token_user", claims.UserID).
					Str("path_user", pathUser).
					Msg("Token user does not match requested user")
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Access to another user's data is not allowed"})
			}

			c.Set(UserIDKey, claims.UserID)
			return next(c)
		}
	}
}
