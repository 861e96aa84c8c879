package authz

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"

	"github.com/AlexSaifo/school-management-system-sub003/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is the result of verifying a bearer token: who the caller is and
// what role they were issued. Everything downstream treats this pair as
// immutable for the lifetime of the request or socket connection.
type Identity struct {
	UserID string
	Role   models.UserRole
}

// IssueToken signs an HS256 token for the given user, valid for ttl.
func IssueToken(secret string, user models.User, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"name": user.DisplayName(),
		"exp":  time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return signed, nil
}

// VerifyToken parses and validates a bearer token and extracts the identity.
// It is used by both the REST middleware and the websocket handshake.
func VerifyToken(secret, tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !claims.VerifyExpiresAt(time.Now().Unix(), true) {
		return Identity{}, ErrInvalidToken
	}

	userID, _ := claims["sub"].(string)
	rawRole, _ := claims["role"].(string)
	role, ok := models.NormalizeRole(rawRole)
	if userID == "" || !ok {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: userID, Role: role}, nil
}
